package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-invitation/internal/handler"
)

// RegisterPublic registers the unauthenticated surface: the gift store,
// the quota purchase flow and the invite pages.  rateLimit is applied
// to the whole group and cache to idempotent GETs; either may be nil
// when Redis is not available, in which case the routes run without
// them.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, rateLimit, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	if rateLimit != nil {
		g.Use(rateLimit)
	}

	cached := func(h echo.HandlerFunc) echo.HandlerFunc {
		if cache == nil {
			return h
		}
		return cache(h)
	}

	// gift store
	g.GET("/gifts", cached(p.ListGifts))
	g.POST("/gifts/:id/purchase", p.PurchaseQuota)

	// invite pages; GET /invite/:token bumps the view counter so it is
	// deliberately not cached
	g.GET("/invite/:token", p.GetInvite)
	g.POST("/invite/:token/confirm", p.ConfirmPresence)
	g.GET("/invite/:token/reservations", p.ListGuestReservations)
	g.DELETE("/invite/:token/reservations/:id", p.CancelGuestReservation)
}
