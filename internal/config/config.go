package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field maps to
// one environment variable; required values abort startup when unset
// so a half-configured service never comes up.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign admin JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	AdminEmail    string // seed admin login, created when no users exist
	AdminPassword string // seed admin password

	InviteBaseURL string // public base URL the invite tokens are appended to
	CoupleNames   string // display names used in invitation messages
	WeddingDate   string // human-readable wedding date for invitation messages

	SendGridKey string // SendGrid API key; email dispatch is disabled when empty
	MailFrom    string // sender address for invitation emails
	SMSEndpoint string // SMS provider URL; SMS dispatch is disabled when empty
	SMSToken    string // bearer token for the SMS provider
}

// Load reads configuration from environment variables.  Required
// variables are enforced by must(); optional integrations (SendGrid,
// SMS) default to empty and their handlers degrade accordingly.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		InviteBaseURL: must("INVITE_BASE_URL"),
		CoupleNames:   os.Getenv("COUPLE_NAMES"),
		WeddingDate:   os.Getenv("WEDDING_DATE"),

		SendGridKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:    os.Getenv("MAIL_FROM"),
		SMSEndpoint: os.Getenv("SMS_PROVIDER_URL"),
		SMSToken:    os.Getenv("SMS_PROVIDER_TOKEN"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
