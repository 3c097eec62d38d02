package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-invitation/internal/config"
	"github.com/iliyamo/wedding-invitation/internal/notification"
	"github.com/iliyamo/wedding-invitation/internal/repository"
)

// InvitationHandler dispatches invitations to directory guests over
// email, SMS or WhatsApp deep links.  Mailer and SMS may be nil when
// the corresponding provider is not configured; the endpoints then
// answer 503 instead of attempting a send.  Provider failures surface
// as 502 and are never retried here.
type InvitationHandler struct {
	Cfg    config.Config
	Guests *repository.GuestRepo
	Mailer notification.Mailer
	SMS    notification.SMSSender
}

// NewInvitationHandler constructs an InvitationHandler.  Only the
// guest repository is mandatory.
func NewInvitationHandler(cfg config.Config, guests *repository.GuestRepo, mailer notification.Mailer, sms notification.SMSSender) *InvitationHandler {
	if guests == nil {
		panic("nil repository passed to NewInvitationHandler")
	}
	return &InvitationHandler{Cfg: cfg, Guests: guests, Mailer: mailer, SMS: sms}
}

// inviteText builds the invitation message and link for a guest.
func (h *InvitationHandler) inviteText(name, token string) (link, message string) {
	link = notification.InviteURL(h.Cfg.InviteBaseURL, token)
	message = notification.InviteMessage(name, h.Cfg.CoupleNames, h.Cfg.WeddingDate, link)
	return link, message
}

// sendEmail dispatches one invitation email and marks the guest.
func (h *InvitationHandler) sendEmail(c echo.Context, guestID uint64) error {
	ctx := c.Request().Context()
	g, err := h.Guests.GetByID(ctx, guestID)
	if err != nil {
		return err
	}
	if g.Email == "" {
		return errors.New("guest has no email address")
	}
	if h.Mailer == nil {
		return notification.ErrNotConfigured
	}
	_, msg := h.inviteText(g.Name, g.InviteToken)
	if err := h.Mailer.Send(ctx, g.Email, notification.InviteEmailSubject(h.Cfg.CoupleNames), msg); err != nil {
		return err
	}
	return h.Guests.MarkInviteSent(ctx, g.ID)
}

// sendSMS dispatches one invitation SMS and marks the guest.
func (h *InvitationHandler) sendSMS(c echo.Context, guestID uint64) error {
	ctx := c.Request().Context()
	g, err := h.Guests.GetByID(ctx, guestID)
	if err != nil {
		return err
	}
	if g.Phone == "" {
		return errors.New("guest has no phone number")
	}
	if h.SMS == nil {
		return notification.ErrNotConfigured
	}
	_, msg := h.inviteText(g.Name, g.InviteToken)
	if err := h.SMS.Send(ctx, g.Phone, msg); err != nil {
		return err
	}
	return h.Guests.MarkInviteSent(ctx, g.ID)
}

// dispatchStatus maps a dispatch error to an HTTP response.
func dispatchStatus(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrGuestNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "guest not found"})
	case errors.Is(err, notification.ErrNotConfigured):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "dispatch channel not configured"})
	case errors.Is(err, notification.ErrProvider):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "provider error"})
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
}

// SendEmail handles POST /v1/admin/invitations/email/:id.
func (h *InvitationHandler) SendEmail(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	if err := h.sendEmail(c, id); err != nil {
		return dispatchStatus(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sent": true})
}

// SendSMS handles POST /v1/admin/invitations/sms/:id.
func (h *InvitationHandler) SendSMS(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	if err := h.sendSMS(c, id); err != nil {
		return dispatchStatus(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"sent": true})
}

// WhatsAppInvite handles GET /v1/admin/invitations/whatsapp/:id.  No
// provider is involved: the endpoint returns a wa.me deep link with
// the url-encoded invitation message, and the send happens when the
// operator opens it.  The guest is marked as invited at link time.
func (h *InvitationHandler) WhatsAppInvite(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid guest id"})
	}
	link, err := h.buildWhatsApp(c, id)
	if err != nil {
		return dispatchStatus(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"link": link,
	})
}

// buildWhatsApp resolves a guest to a wa.me link and marks the invite.
func (h *InvitationHandler) buildWhatsApp(c echo.Context, guestID uint64) (string, error) {
	ctx := c.Request().Context()
	g, err := h.Guests.GetByID(ctx, guestID)
	if err != nil {
		return "", err
	}
	if g.Phone == "" {
		return "", errors.New("guest has no phone number")
	}
	_, msg := h.inviteText(g.Name, g.InviteToken)
	link := notification.WhatsAppLink(g.Phone, msg)
	if err := h.Guests.MarkInviteSent(ctx, g.ID); err != nil {
		return "", err
	}
	return link, nil
}

// BulkSend handles POST /v1/admin/invitations/bulk.  The body carries
// guest_ids and a method ("email", "sms" or "whatsapp").  Each guest
// is attempted independently; one provider failure never aborts the
// batch.  The response reports success and error counts plus per-guest
// error details; for whatsapp it also returns the generated links.
func (h *InvitationHandler) BulkSend(c echo.Context) error {
	var body struct {
		GuestIDs []uint64 `json:"guest_ids"`
		Method   string   `json:"method"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.GuestIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_ids is required"})
	}
	switch body.Method {
	case "email", "sms", "whatsapp":
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "method must be email, sms or whatsapp"})
	}

	success := 0
	type sendError struct {
		GuestID uint64 `json:"guest_id"`
		Error   string `json:"error"`
	}
	type guestLink struct {
		GuestID uint64 `json:"guest_id"`
		Link    string `json:"link"`
	}
	details := make([]sendError, 0)
	links := make([]guestLink, 0)
	for _, id := range body.GuestIDs {
		if id == 0 {
			continue
		}
		var err error
		switch body.Method {
		case "email":
			err = h.sendEmail(c, id)
		case "sms":
			err = h.sendSMS(c, id)
		case "whatsapp":
			var link string
			if link, err = h.buildWhatsApp(c, id); err == nil {
				links = append(links, guestLink{GuestID: id, Link: link})
			}
		}
		if err != nil {
			details = append(details, sendError{GuestID: id, Error: err.Error()})
			continue
		}
		success++
	}
	resp := echo.Map{
		"success":       success,
		"errors":        len(details),
		"error_details": details,
	}
	if body.Method == "whatsapp" {
		resp["links"] = links
	}
	return c.JSON(http.StatusOK, resp)
}
