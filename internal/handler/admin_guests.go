package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-invitation/internal/model"
	"github.com/iliyamo/wedding-invitation/internal/repository"
)

// guestReq is the JSON body for guest create and update.
type guestReq struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	GroupName     string  `json:"group_name"`
	Notes         *string `json:"notes"`
	MaxCompanions uint32  `json:"max_companions"`
}

func (r *guestReq) toModel() model.Guest {
	return model.Guest{
		Name:          r.Name,
		Email:         r.Email,
		Phone:         r.Phone,
		GroupName:     r.GroupName,
		Notes:         r.Notes,
		MaxCompanions: r.MaxCompanions,
	}
}

// ListGuests handles GET /v1/admin/guests.  Optional query filters:
// ?group= for a guest group and ?confirmed=true|false for RSVP state.
func (h *AdminHandler) ListGuests(c echo.Context) error {
	group := c.QueryParam("group")
	var confirmed *bool
	if raw := c.QueryParam("confirmed"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid confirmed filter"})
		}
		confirmed = &v
	}
	items, err := h.GuestRepo.List(c.Request().Context(), group, confirmed)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load guests"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
	})
}

// CreateGuest handles POST /v1/admin/guests.  The invite token is
// generated server-side; the response carries it so the admin can hand
// out the invite link immediately.
func (h *AdminHandler) CreateGuest(c echo.Context) error {
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	g := req.toModel()
	if err := h.GuestRepo.Create(c.Request().Context(), &g); err != nil {
		if errors.Is(err, repository.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create guest"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"guest": g,
	})
}

// GetGuest handles GET /v1/admin/guests/:id.
func (h *AdminHandler) GetGuest(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	g, err := h.GuestRepo.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"guest": g,
	})
}

// UpdateGuest handles PUT /v1/admin/guests/:id.  RSVP state and the
// invite token are not editable here; they belong to the public
// confirm flow and to token generation at create time.
func (h *AdminHandler) UpdateGuest(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	var req guestReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	g := req.toModel()
	g.ID = id
	if err := h.GuestRepo.Update(c.Request().Context(), &g); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		if errors.Is(err, repository.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update guest"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"guest": g,
	})
}

// DeleteGuest handles DELETE /v1/admin/guests/:id.  Reservations made
// by the guest survive with their guest reference cleared, so the
// contribution history stays intact.
func (h *AdminHandler) DeleteGuest(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	if err := h.GuestRepo.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete guest"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GuestStatistics handles GET /v1/admin/guests/statistics.  Totals,
// confirmations, headcount including companions, confirmation rate and
// a per-group breakdown, all computed in SQL.
func (h *AdminHandler) GuestStatistics(c echo.Context) error {
	stats, err := h.GuestRepo.Statistics(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load statistics"})
	}
	return c.JSON(http.StatusOK, stats)
}
