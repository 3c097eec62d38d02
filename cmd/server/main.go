package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-invitation/internal/config"
	"github.com/iliyamo/wedding-invitation/internal/database"
	"github.com/iliyamo/wedding-invitation/internal/handler"
	"github.com/iliyamo/wedding-invitation/internal/middleware"
	"github.com/iliyamo/wedding-invitation/internal/migrations"
	"github.com/iliyamo/wedding-invitation/internal/notification"
	"github.com/iliyamo/wedding-invitation/internal/queue"
	"github.com/iliyamo/wedding-invitation/internal/repository"
	"github.com/iliyamo/wedding-invitation/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := migrations.Run(ctx, db); err != nil {
		cancel()
		log.Fatalf("migrations: %v", err)
	}
	cancel()

	giftRepo := repository.NewGiftRepo(db)
	reservationRepo := repository.NewReservationRepo(db)
	guestRepo := repository.NewGuestRepo(db)
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)

	seedAdmin(userRepo, cfg)

	// Redis backs the rate limiter and the public response cache; both
	// degrade to pass-through when it is unreachable.
	var rateLimit, cache echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		rateLimit = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
		cache = middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	} else {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}

	var mailer notification.Mailer
	if cfg.SendGridKey != "" && cfg.MailFrom != "" {
		mailer = notification.NewSendGridMailer(cfg.SendGridKey, cfg.MailFrom)
	}
	var sms notification.SMSSender
	if cfg.SMSEndpoint != "" {
		sms = notification.NewHTTPSMSSender(cfg.SMSEndpoint, cfg.SMSToken)
	}

	// purchase event consumer; reconnects on its own and never blocks startup
	go func() {
		if err := queue.StartPurchaseConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, userRepo, tokenRepo), cfg.JWTSecret)
	router.RegisterPublic(e, handler.NewPublicHandler(giftRepo, reservationRepo, guestRepo), rateLimit, cache)
	router.RegisterAdmin(e,
		handler.NewAdminHandler(giftRepo, reservationRepo, guestRepo),
		handler.NewInvitationHandler(cfg, guestRepo, mailer, sms),
		cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// seedAdmin creates the first ADMIN account from the environment when
// no users exist yet.  Without it the back office would be unreachable
// on a fresh database.
func seedAdmin(users *repository.UserRepo, cfg config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := users.Count(ctx)
	if err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	if n > 0 {
		return
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("no users exist and ADMIN_EMAIL/ADMIN_PASSWORD are unset; back office is unreachable")
		return
	}
	if _, err := users.Create(ctx, cfg.AdminEmail, cfg.AdminPassword, "ADMIN", cfg.BcryptCost); err != nil {
		log.Fatalf("seed admin: %v", err)
	}
	log.Printf("seeded admin account %s", cfg.AdminEmail)
}
