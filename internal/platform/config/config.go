// Package config loads runtime configuration from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"
)

// devJWTSecret signs sessions when running fully in memory without JWT_SECRET.
const devJWTSecret = "career-canvas-dev-secret"

// OAuthClient holds one provider's client credentials.
type OAuthClient struct {
	ClientID     string
	ClientSecret string
	Tenant       string
}

// Configured reports whether the provider can be offered at login.
func (c OAuthClient) Configured() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Config is the typed runtime configuration.
type Config struct {
	Port         string
	LogLevel     string
	StoreBackend string
	CORSOrigins  []string

	FirebaseProjectID   string
	GoogleCredentials   string
	FirebaseAuthEnabled bool

	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	JWTSecret string
	JWTTTL    time.Duration

	OAuthRedirectBaseURL string
	FrontendURL          string
	Google               OAuthClient
	Microsoft            OAuthClient
	LinkedIn             OAuthClient

	AIAPIKey  string
	AIBaseURL string
	AIModel   string

	SeedMentors bool
}

// Load reads .env files (when present) then the environment. Files never
// override variables that are already set.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("FIREBASE_AUTH_ENABLED", false)
	v.SetDefault("MONGODB_DATABASE", "career_canvas")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "60s")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("OAUTH_REDIRECT_BASE_URL", "http://localhost:8080")
	v.SetDefault("MICROSOFT_TENANT", "common")
	v.SetDefault("AI_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("AI_MODEL", "gpt-4o-mini")
	v.SetDefault("SEED_MENTORS", false)
	return v
}

// FromViper builds and validates a Config from v.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:         v.GetString("PORT"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		StoreBackend: strings.ToLower(v.GetString("STORE_BACKEND")),
		CORSOrigins:  splitList(v.GetString("CORS_ORIGINS")),

		FirebaseProjectID:   firstNonEmpty(v.GetString("FIREBASE_PROJECT_ID"), v.GetString("GOOGLE_CLOUD_PROJECT")),
		GoogleCredentials:   v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		FirebaseAuthEnabled: v.GetBool("FIREBASE_AUTH_ENABLED"),

		MongoURI:      v.GetString("MONGODB_URI"),
		MongoDatabase: v.GetString("MONGODB_DATABASE"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),
		CacheTTL:      v.GetDuration("CACHE_TTL"),

		JWTSecret: v.GetString("JWT_SECRET"),
		JWTTTL:    v.GetDuration("JWT_TTL"),

		OAuthRedirectBaseURL: strings.TrimRight(v.GetString("OAUTH_REDIRECT_BASE_URL"), "/"),
		FrontendURL:          strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		Google: OAuthClient{
			ClientID:     v.GetString("GOOGLE_CLIENT_ID"),
			ClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		},
		Microsoft: OAuthClient{
			ClientID:     v.GetString("MICROSOFT_CLIENT_ID"),
			ClientSecret: v.GetString("MICROSOFT_CLIENT_SECRET"),
			Tenant:       v.GetString("MICROSOFT_TENANT"),
		},
		LinkedIn: OAuthClient{
			ClientID:     v.GetString("LINKEDIN_CLIENT_ID"),
			ClientSecret: v.GetString("LINKEDIN_CLIENT_SECRET"),
		},

		AIAPIKey:  v.GetString("AI_API_KEY"),
		AIBaseURL: strings.TrimRight(v.GetString("AI_BASE_URL"), "/"),
		AIModel:   v.GetString("AI_MODEL"),

		SeedMentors: v.GetBool("SEED_MENTORS"),
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	switch c.StoreBackend {
	case BackendMemory:
		if c.JWTSecret == "" {
			c.JWTSecret = devJWTSecret
		}
	case BackendFirestore:
		if c.FirebaseProjectID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required for the firestore backend"))
		}
	case BackendMongo:
		if c.MongoURI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required for the mongo backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.FirebaseAuthEnabled && c.FirebaseProjectID == "" {
		errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required when FIREBASE_AUTH_ENABLED is set"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// UsesFirestore reports whether a Firestore client is needed.
func (c *Config) UsesFirestore() bool {
	return c.StoreBackend == BackendFirestore
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
