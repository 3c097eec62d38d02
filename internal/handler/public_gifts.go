package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-invitation/internal/model"
	"github.com/iliyamo/wedding-invitation/internal/queue"
	"github.com/iliyamo/wedding-invitation/internal/repository"
	queuepublisher "github.com/iliyamo/wedding-invitation/internal/service"
)

// PublicHandler groups the repositories behind the unauthenticated
// surface: the gift store, the purchase flow and the invite pages.
// The quota purchase runs inside a transaction so the availability
// check and the increment are a single atomic step; two concurrent
// buyers of the last quota can never both succeed.
type PublicHandler struct {
	GiftRepo        *repository.GiftRepo
	ReservationRepo *repository.ReservationRepo
	GuestRepo       *repository.GuestRepo
}

// NewPublicHandler constructs a new PublicHandler with the provided
// repositories.  All dependencies must be non-nil.
func NewPublicHandler(giftRepo *repository.GiftRepo, reservationRepo *repository.ReservationRepo, guestRepo *repository.GuestRepo) *PublicHandler {
	if giftRepo == nil || reservationRepo == nil || guestRepo == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{
		GiftRepo:        giftRepo,
		ReservationRepo: reservationRepo,
		GuestRepo:       guestRepo,
	}
}

// ListGifts handles GET /v1/gifts.  It returns all active gifts with
// their derived fields (quota price, availability, funded percentage)
// in insertion order.  Inactive gifts are hidden from guests.
func (h *PublicHandler) ListGifts(c echo.Context) error {
	gifts, err := h.GiftRepo.ListActive(c.Request().Context())
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

// PurchaseQuota handles POST /v1/gifts/:id/purchase.  The request body
// carries the quantity, the contributor's display name, an optional
// message and an optional invite token linking the purchase to a
// directory guest.  The availability check and the quota increment are
// one conditional UPDATE inside the transaction, and the paid amount is
// snapshotted from the quota price at commit time so later price edits
// never rewrite history.  Returns 201 with the reservation, 404 when
// the gift is missing or inactive, and 409 with code
// "insufficient_quota" when fewer quotas remain than requested.
func (h *PublicHandler) PurchaseQuota(c echo.Context) error {
	giftID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid gift id"})
	}
	var body struct {
		Quantity        uint32  `json:"quantity"`
		ContributorName string  `json:"contributor_name"`
		Message         *string `json:"message"`
		InviteToken     string  `json:"invite_token"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	body.ContributorName = strings.TrimSpace(body.ContributorName)
	if body.Quantity < 1 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "quantity must be at least 1"})
	}
	if body.ContributorName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "contributor_name is required"})
	}

	ctx := c.Request().Context()

	// resolve the invite token to a guest before opening the transaction
	var guestID *uint64
	if tok := strings.TrimSpace(body.InviteToken); tok != "" {
		guest, err := h.GuestRepo.GetByToken(ctx, tok)
		if err != nil {
			if errors.Is(err, repository.ErrGuestNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		guestID = &guest.ID
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

	gift, err := h.GiftRepo.SellQuotasTx(ctx, tx, giftID, body.Quantity)
	if err != nil {
		if errors.Is(err, repository.ErrGiftNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "gift not found"})
		}
		if errors.Is(err, repository.ErrInsufficientQuota) {
			return c.JSON(http.StatusConflict, echo.Map{
				"error": "not enough quotas available",
				"code":  "insufficient_quota",
			})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reserve quotas"})
	}

	res := &model.Reservation{
		GiftID:          giftID,
		GuestID:         guestID,
		ContributorName: body.ContributorName,
		Quantity:        body.Quantity,
		AmountPaidCents: gift.QuotaPriceCents() * int64(body.Quantity),
		Message:         body.Message,
	}
	if err := h.ReservationRepo.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create reservation"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
	}
	committed = true

	// fire-and-forget event; a broker outage never fails a committed purchase
	go func(ev queue.QuotaPurchasedEvent) {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = queuepublisher.PublishQuotaPurchased(ctx, ev)
	}(queue.QuotaPurchasedEvent{
		ReservationID:   res.ID,
		GiftID:          gift.ID,
		GiftName:        gift.Name,
		ContributorName: res.ContributorName,
		Quantity:        res.Quantity,
		AmountPaidCents: res.AmountPaidCents,
		QuotasSold:      gift.QuotasSold,
		TotalQuotas:     gift.TotalQuotas,
		PurchasedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation": res,
		"gift":        gift.View(),
	})
}
