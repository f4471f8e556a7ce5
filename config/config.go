package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	GinMode     string
	FrontendURL string
	TrustProxy  bool // Honour X-Forwarded-For when resolving client IPs
	// Site metadata used by the feed and the catalog endpoints
	SiteURL         string
	SiteTitle       string
	SiteDescription string
	// Content source
	ContentDir         string
	ContentDatabaseURL string // Optional: read blog posts from Postgres instead of markdown files
	// Brevo transactional email (the API key itself is read per request, see EnvSecrets)
	BrevoAPIURL           string
	ContactSenderName     string
	ContactSenderEmail    string
	ContactRecipientName  string
	ContactRecipientEmail string
	BrevoRatePerSecond    int // Outbound pacing for the Brevo API
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Contact form rate limiting
	ContactRateLimit           int
	ContactRateWindowSeconds   int
	ContactRateLimitFailClosed bool // Reject submissions while Redis is unreachable
}

func LoadConfig() (*Config, error) {
	// Local development only: a missing .env file is not an error
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:4321"), "/"),
		TrustProxy:  getEnvBool("TRUST_PROXY", false),
		// Trailing slash removed so item links never render as .com//blog
		SiteURL:         strings.TrimRight(getEnv("SITE_URL", "https://area1337.com"), "/"),
		SiteTitle:       getEnv("SITE_TITLE", "Area 1337"),
		SiteDescription: getEnv("SITE_DESCRIPTION", DefaultSiteDescription),
		// Content
		ContentDir:         getEnv("CONTENT_DIR", "./content"),
		ContentDatabaseURL: getEnv("CONTENT_DATABASE_URL", ""),
		// Brevo
		BrevoAPIURL:           getEnv("BREVO_API_URL", "https://api.brevo.com/v3/smtp/email"),
		ContactSenderName:     getEnv("CONTACT_SENDER_NAME", "Area 1337 Website"),
		ContactSenderEmail:    getEnv("CONTACT_SENDER_EMAIL", "noreply@area1337.com"), // Must be verified in Brevo
		ContactRecipientName:  getEnv("CONTACT_RECIPIENT_NAME", "Area 1337"),
		ContactRecipientEmail: getEnv("CONTACT_RECIPIENT_EMAIL", "contact@area1337.com"),
		BrevoRatePerSecond:    getEnvInt("BREVO_RATE_PER_SECOND", 10),
		// Redis
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate limiting
		ContactRateLimit:           getEnvInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindowSeconds:   getEnvInt("CONTACT_RATE_WINDOW_SECONDS", 600),
		ContactRateLimitFailClosed: getEnvBool("CONTACT_RATE_LIMIT_FAIL_CLOSED", false),
	}

	if _, ok := os.LookupEnv(BrevoAPIKeyEnv); !ok {
		log.Printf("WARNING: %s is not set. Contact submissions will fail until it is configured.", BrevoAPIKeyEnv)
	}

	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// DefaultSiteDescription is the description used in the feed channel and site metadata.
const DefaultSiteDescription = "Elite software for professionals who demand the best. Area 1337 builds enterprise-grade tools for security, compliance, encryption, and beyond."

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
