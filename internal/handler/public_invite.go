package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-invitation/internal/repository"
)

// GetInvite handles GET /v1/invite/:token.  It resolves the invite
// token to a guest record, bumps the page view counter and returns the
// guest together with the current RSVP state.  Unknown tokens yield
// 404 so the token doubles as the page's only access control.
func (h *PublicHandler) GetInvite(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invite token"})
	}
	ctx := c.Request().Context()
	guest, err := h.GuestRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	// best-effort view tracking; a failed bump never hides the invite
	if err := h.GuestRepo.TouchView(ctx, guest.ID); err == nil {
		guest.ViewCount++
	}
	return c.JSON(http.StatusOK, echo.Map{
		"guest": guest,
	})
}

// ConfirmPresence handles POST /v1/invite/:token/confirm.  The body
// carries the attendance flag, the companion headcount and an optional
// message for the hosts.  The companion count is validated against the
// guest's allowance inside the UPDATE itself.  Returns the updated
// guest, 404 for unknown tokens and 400 when the companion count
// exceeds the allowance.
func (h *PublicHandler) ConfirmPresence(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invite token"})
	}
	var body struct {
		Attending      bool    `json:"attending"`
		CompanionCount uint32  `json:"companion_count"`
		Message        *string `json:"message"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	guest, err := h.GuestRepo.ConfirmByToken(c.Request().Context(), token, body.Attending, body.CompanionCount, body.Message)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invite not found"})
		}
		if errors.Is(err, repository.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "companion_count exceeds allowance"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to confirm presence"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"guest": guest,
	})
}

// ListGuestReservations handles GET /v1/invite/:token/reservations.
// It returns the contributions made from this invite page, newest
// first.
func (h *PublicHandler) ListGuestReservations(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invite token"})
	}
	ctx := c.Request().Context()
	guest, err := h.GuestRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.ReservationRepo.ListByGuest(ctx, guest.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
	})
}

// CancelGuestReservation handles DELETE /v1/invite/:token/reservations/:id.
// A guest may cancel their own contribution; the transaction deletes the
// reservation row and returns the quotas to the gift's pool.  The
// rows-affected check on the delete makes a double cancel come back as
// 404 instead of releasing quotas twice.  Reservations belonging to
// other guests are reported as 404 rather than 403 so the endpoint does
// not confirm foreign reservation IDs.
func (h *PublicHandler) CancelGuestReservation(c echo.Context) error {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid invite token"})
	}
	resID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
	guest, err := h.GuestRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrGuestNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "invite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}

	tx, err := h.GiftRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.ReservationRepo.GetForCancelTx(ctx, tx, resID)
	if err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservation"})
	}
	if res.GuestID == nil || *res.GuestID != guest.ID {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	if err := h.ReservationRepo.DeleteTx(ctx, tx, resID); err != nil {
		if errors.Is(err, repository.ErrReservationNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservation"})
	}
	if err := h.GiftRepo.ReleaseQuotasTx(ctx, tx, res.GiftID, res.Quantity); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to release quotas"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}
