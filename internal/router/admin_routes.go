package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-invitation/internal/handler"
	"github.com/iliyamo/wedding-invitation/internal/middleware"
)

// RegisterAdmin registers the back-office endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.  Admins manage
// the gift registry, reservations, the guest directory and invitation
// dispatch.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, inv *handler.InvitationHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// gift registry
	g.GET("/gifts", a.ListGifts)
	g.POST("/gifts", a.CreateGift)
	g.PUT("/gifts/:id", a.UpdateGift)
	g.DELETE("/gifts/:id", a.DeleteGift)
	// trusted manual correction of the sold counter
	g.PUT("/gifts/:id/quotas-sold", a.SetQuotasSold)
	g.GET("/gifts/:id/reservations", a.ListGiftReservations)
	g.DELETE("/reservations/:id", a.DeleteReservation)

	// portfolio dashboard
	g.GET("/dashboard", a.Dashboard)

	// guest directory; the statistics route is registered before the
	// :id routes so echo does not swallow it as a path parameter
	g.GET("/guests/statistics", a.GuestStatistics)
	g.GET("/guests", a.ListGuests)
	g.POST("/guests", a.CreateGuest)
	g.GET("/guests/:id", a.GetGuest)
	g.PUT("/guests/:id", a.UpdateGuest)
	g.DELETE("/guests/:id", a.DeleteGuest)

	// invitation dispatch
	g.POST("/invitations/email/:id", inv.SendEmail)
	g.POST("/invitations/sms/:id", inv.SendSMS)
	g.GET("/invitations/whatsapp/:id", inv.WhatsAppInvite)
	g.POST("/invitations/bulk", inv.BulkSend)
}
