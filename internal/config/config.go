package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// JWTConfig defines issuer/secret pair for auth verification.
type JWTConfig struct {
	Issuer string
	Secret []byte
}

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr           string
	AllowedOrigins []string
	LogJSON        bool
	LogDebug       bool

	MongoURI                     string
	MongoDatabase                string
	UserCollection               string
	OrganizationCollection       string
	AssessmentCollection         string
	InvitationCollection         string
	ResponseCollection           string
	ContactCollection            string
	FailedNotificationCollection string
	ConnectTimeout               time.Duration

	JWTConfigs  []JWTConfig
	JWTAudience string
	TokenTTL    time.Duration

	BillingEndpoint      string
	BillingWebhookSecret []byte
	BillingTimeout       time.Duration

	SMTPAddr     string
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	SalesEmail   string
	DashboardURL string

	CaptchaEndpoint string
	CaptchaSecret   string

	GeminiAPIKey  string
	GeminiModel   string
	RedisAddr     string
	ScoreCacheTTL time.Duration
}

// Load reads environment variables and returns a fully populated Config.
// At least one JWT secret must be configured or the server cannot
// authenticate anything.
func Load() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("API_ALLOWED_ORIGINS", "*")
	v.SetDefault("LOG_JSON", true)
	v.SetDefault("LOG_DEBUG", false)

	v.SetDefault("MONGO_URI", "mongodb://mongo:27017")
	v.SetDefault("MONGO_DB", "assessly")
	v.SetDefault("USER_COLLECTION", "users")
	v.SetDefault("ORGANIZATION_COLLECTION", "organizations")
	v.SetDefault("ASSESSMENT_COLLECTION", "assessments")
	v.SetDefault("INVITATION_COLLECTION", "invitations")
	v.SetDefault("RESPONSE_COLLECTION", "responses")
	v.SetDefault("CONTACT_COLLECTION", "contact_messages")
	v.SetDefault("FAILED_NOTIFICATION_COLLECTION", "failed_notifications")
	v.SetDefault("MONGO_CONNECT_TIMEOUT", "10s")

	v.SetDefault("AUTH_JWT_ISSUER", "assessly-api")
	v.SetDefault("AUTH_TOKEN_TTL", "24h")

	v.SetDefault("BILLING_GATEWAY_TIMEOUT", "5s")

	v.SetDefault("MAIL_FROM", "no-reply@assessly.app")

	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("SCORE_CACHE_TTL", "1h")

	var jwtConfigs []JWTConfig
	if secret := strings.TrimSpace(v.GetString("AUTH_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: strings.TrimSpace(v.GetString("AUTH_JWT_ISSUER")),
			Secret: []byte(secret),
		})
	}
	// A secondary issuer lets dashboard sessions survive a secret rotation.
	if secret := strings.TrimSpace(v.GetString("AUTH_LEGACY_JWT_SECRET")); secret != "" {
		jwtConfigs = append(jwtConfigs, JWTConfig{
			Issuer: strings.TrimSpace(v.GetString("AUTH_LEGACY_JWT_ISSUER")),
			Secret: []byte(secret),
		})
	}
	if len(jwtConfigs) == 0 {
		return Config{}, errors.New("JWT secret not configured, set AUTH_JWT_SECRET")
	}

	cfg := Config{
		Addr:           v.GetString("HTTP_ADDR"),
		AllowedOrigins: splitList(v.GetString("API_ALLOWED_ORIGINS")),
		LogJSON:        v.GetBool("LOG_JSON"),
		LogDebug:       v.GetBool("LOG_DEBUG"),

		MongoURI:                     v.GetString("MONGO_URI"),
		MongoDatabase:                v.GetString("MONGO_DB"),
		UserCollection:               v.GetString("USER_COLLECTION"),
		OrganizationCollection:       v.GetString("ORGANIZATION_COLLECTION"),
		AssessmentCollection:         v.GetString("ASSESSMENT_COLLECTION"),
		InvitationCollection:         v.GetString("INVITATION_COLLECTION"),
		ResponseCollection:           v.GetString("RESPONSE_COLLECTION"),
		ContactCollection:            v.GetString("CONTACT_COLLECTION"),
		FailedNotificationCollection: v.GetString("FAILED_NOTIFICATION_COLLECTION"),
		ConnectTimeout:               v.GetDuration("MONGO_CONNECT_TIMEOUT"),

		JWTConfigs:  jwtConfigs,
		JWTAudience: strings.TrimSpace(v.GetString("AUTH_JWT_AUDIENCE")),
		TokenTTL:    v.GetDuration("AUTH_TOKEN_TTL"),

		BillingEndpoint:      strings.TrimSpace(v.GetString("BILLING_GATEWAY_URL")),
		BillingWebhookSecret: []byte(strings.TrimSpace(v.GetString("BILLING_WEBHOOK_SECRET"))),
		BillingTimeout:       v.GetDuration("BILLING_GATEWAY_TIMEOUT"),

		SMTPAddr:     strings.TrimSpace(v.GetString("SMTP_ADDR")),
		SMTPUsername: v.GetString("SMTP_USERNAME"),
		SMTPPassword: v.GetString("SMTP_PASSWORD"),
		MailFrom:     strings.TrimSpace(v.GetString("MAIL_FROM")),
		SalesEmail:   strings.TrimSpace(v.GetString("SALES_EMAIL")),
		DashboardURL: strings.TrimRight(strings.TrimSpace(v.GetString("DASHBOARD_URL")), "/"),

		CaptchaEndpoint: strings.TrimSpace(v.GetString("CAPTCHA_VERIFY_URL")),
		CaptchaSecret:   strings.TrimSpace(v.GetString("CAPTCHA_SECRET")),

		GeminiAPIKey:  strings.TrimSpace(v.GetString("GEMINI_API_KEY")),
		GeminiModel:   strings.TrimSpace(v.GetString("GEMINI_MODEL")),
		RedisAddr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
		ScoreCacheTTL: v.GetDuration("SCORE_CACHE_TTL"),
	}

	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return []string{"*"}
	}
	return values
}
