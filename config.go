package hobbies

import (
	"os"
	"strconv"
	"strings"
)

// AppConfig is the concrete configuration loaded from the environment
type AppConfig struct {
	SigningKey      string
	SigningMethod   string
	ContextKey      string
	TokenExpiration int
	TokenLookup     string
	AuthScheme      string
	Issuer          string
	Audience        []string

	DSN        string
	Port       int
	UploadsDir string
	Debug      bool

	AdminEmail    string
	AdminPassword string
}

var _ Config = (*AppConfig)(nil)

// LoadConfig reads configuration from the environment with working defaults
// for local development. The signing key default is only good for that.
func LoadConfig() *AppConfig {
	return &AppConfig{
		SigningKey:      getEnv("AUTH_SIGNING_KEY", "dev-signing-key-change-me"),
		SigningMethod:   getEnv("AUTH_SIGNING_METHOD", "HS256"),
		ContextKey:      getEnv("AUTH_CONTEXT_KEY", "user"),
		TokenExpiration: getEnvInt("AUTH_TOKEN_EXPIRATION", 72),
		TokenLookup:     getEnv("AUTH_TOKEN_LOOKUP", "header:Authorization"),
		AuthScheme:      getEnv("AUTH_SCHEME", "Bearer"),
		Issuer:          getEnv("AUTH_ISSUER", "go-hobbies"),
		Audience:        getEnvList("AUTH_AUDIENCE", []string{"api"}),

		DSN:        getEnv("DATABASE_DSN", "file:hobbies.db?cache=shared&mode=rwc"),
		Port:       getEnvInt("HTTP_PORT", 8080),
		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),
		Debug:      getEnvBool("APP_DEBUG", false),

		AdminEmail:    getEnv("ADMIN_EMAIL", "super@admin.com"),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),
	}
}

func (c *AppConfig) GetSigningKey() string {
	return c.SigningKey
}

func (c *AppConfig) GetSigningMethod() string {
	return c.SigningMethod
}

func (c *AppConfig) GetContextKey() string {
	return c.ContextKey
}

func (c *AppConfig) GetTokenExpiration() int {
	return c.TokenExpiration
}

func (c *AppConfig) GetTokenLookup() string {
	return c.TokenLookup
}

func (c *AppConfig) GetAuthScheme() string {
	return c.AuthScheme
}

func (c *AppConfig) GetIssuer() string {
	return c.Issuer
}

func (c *AppConfig) GetAudience() []string {
	return c.Audience
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}

	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	if len(out) == 0 {
		return def
	}
	return out
}
