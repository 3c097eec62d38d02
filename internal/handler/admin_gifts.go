package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-invitation/internal/model"
	"github.com/iliyamo/wedding-invitation/internal/repository"
)

// AdminHandler bundles the repositories behind the ADMIN back office:
// gift CRUD, the manual quotas-sold override, reservation management,
// the registry dashboard, the guest directory and invitation dispatch.
// All methods assume JWT authentication and the ADMIN role have
// already been enforced by middleware.
type AdminHandler struct {
	GiftRepo        *repository.GiftRepo
	ReservationRepo *repository.ReservationRepo
	GuestRepo       *repository.GuestRepo
}

// NewAdminHandler constructs a new AdminHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewAdminHandler(giftRepo *repository.GiftRepo, reservationRepo *repository.ReservationRepo, guestRepo *repository.GuestRepo) *AdminHandler {
	if giftRepo == nil || reservationRepo == nil || guestRepo == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		GiftRepo:        giftRepo,
		ReservationRepo: reservationRepo,
		GuestRepo:       guestRepo,
	}
}

// giftReq is the JSON body for gift create and update.
type giftReq struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	TotalValueCents int64   `json:"total_value_cents"`
	HasQuotas       bool    `json:"has_quotas"`
	TotalQuotas     uint32  `json:"total_quotas"`
	ImageURL        *string `json:"image_url"`
	StoreURL        *string `json:"store_url"`
	Active          *bool   `json:"active"`
}

func (r *giftReq) toModel() model.Gift {
	g := model.Gift{
		Name:            r.Name,
		Description:     r.Description,
		TotalValueCents: r.TotalValueCents,
		HasQuotas:       r.HasQuotas,
		TotalQuotas:     r.TotalQuotas,
		ImageURL:        r.ImageURL,
		StoreURL:        r.StoreURL,
		Active:          true,
	}
	if r.Active != nil {
		g.Active = *r.Active
	}
	return g
}

// ListGifts handles GET /v1/admin/gifts.  Unlike the public listing it
// includes inactive gifts.
func (h *AdminHandler) ListGifts(c echo.Context) error {
	gifts, err := h.GiftRepo.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gifts"})
	}
	items := make([]model.GiftView, 0, len(gifts))
	for _, g := range gifts {
		items = append(items, g.View())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
	})
}

// CreateGift handles POST /v1/admin/gifts.  Validation failures come
// back as 400; quotas_sold always starts at zero regardless of the
// body.
func (h *AdminHandler) CreateGift(c echo.Context) error {
	var req giftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	g := req.toModel()
	if err := h.GiftRepo.Create(c.Request().Context(), &g); err != nil {
		if errors.Is(err, repository.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create gift"})
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"gift": g.View(),
	})
}

// UpdateGift handles PUT /v1/admin/gifts/:id.  quotas_sold cannot be
// edited here; shrinking total_quotas below the sold count is rejected
// with 400.
func (h *AdminHandler) UpdateGift(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gift id"})
	}
	var req giftReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	g := req.toModel()
	g.ID = id
	if err := h.GiftRepo.Update(c.Request().Context(), &g); err != nil {
		if errors.Is(err, repository.ErrGiftNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gift not found"})
		}
		if errors.Is(err, repository.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update gift"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"gift": g.View(),
	})
}

// SetQuotasSold handles PUT /v1/admin/gifts/:id/quotas-sold.  This is
// the trusted manual correction path; it deliberately bypasses the
// reservation records but still rejects values above total_quotas.
func (h *AdminHandler) SetQuotasSold(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gift id"})
	}
	var body struct {
		QuotasSold uint32 `json:"quotas_sold"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	ctx := c.Request().Context()
	if err := h.GiftRepo.SetQuotasSold(ctx, id, body.QuotasSold); err != nil {
		if errors.Is(err, repository.ErrGiftNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gift not found"})
		}
		if errors.Is(err, repository.ErrValidation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update quotas"})
	}
	g, err := h.GiftRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gift"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"gift": g.View(),
	})
}

// DeleteGift handles DELETE /v1/admin/gifts/:id.  While reservations
// reference the gift the delete is refused with 409 so contribution
// history is never silently orphaned; ?cascade=true removes the gift
// and its reservations in one transaction.
func (h *AdminHandler) DeleteGift(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gift id"})
	}
	cascade, _ := strconv.ParseBool(c.QueryParam("cascade"))

	ctx := c.Request().Context()
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

	if cascade {
		if _, err := h.ReservationRepo.DeleteByGiftTx(ctx, tx, id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete reservations"})
		}
	}
	if err := h.GiftRepo.DeleteTx(ctx, tx, id); err != nil {
		if errors.Is(err, repository.ErrGiftNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gift not found"})
		}
		if errors.Is(err, repository.ErrConflict) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "gift has reservations; pass cascade=true to delete them too",
				"code":  "has_reservations",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete gift"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true
	return c.NoContent(http.StatusNoContent)
}

// ListGiftReservations handles GET /v1/admin/gifts/:id/reservations.
func (h *AdminHandler) ListGiftReservations(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gift id"})
	}
	ctx := c.Request().Context()
	if _, err := h.GiftRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrGiftNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gift not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	items, err := h.ReservationRepo.ListByGift(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items": items,
	})
}

// DeleteReservation handles DELETE /v1/admin/reservations/:id.  The
// admin cancel mirrors the guest self-service cancel without the
// ownership check: the reservation row is removed and its quotas are
// returned to the gift's pool in one transaction.  A repeated delete
// returns 404.
func (h *AdminHandler) DeleteReservation(c echo.Context) error {
	resID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	ctx := c.Request().Context()
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

// Dashboard handles GET /v1/admin/dashboard.  It folds the gift and
// reservation collections into the registry summary and pairs it with
// the guest RSVP statistics.  The collected total sums the frozen
// per-reservation amounts, so price edits made after a purchase never
// rewrite what contributors actually paid.
func (h *AdminHandler) Dashboard(c echo.Context) error {
	ctx := c.Request().Context()
	gifts, err := h.GiftRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load gifts"})
	}
	reservations, err := h.ReservationRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	guestStats, err := h.GuestRepo.Statistics(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load guest statistics"})
	}
	items := make([]model.GiftView, 0, len(gifts))
	for _, g := range gifts {
		items = append(items, g.View())
	}
	return c.JSON(http.StatusOK, echo.Map{
		"registry": model.BuildRegistrySummary(gifts, reservations),
		"gifts":    items,
		"guests":   guestStats,
	})
}
