package app

import (
	"fmt"
	"strings"
	"time"

	"carlog/pkg/storage"
	"carlog/pkg/store"
)

// Config holds runtime configuration for the core application.
type Config struct {
	DatabaseURL   string
	JWTSecret     string
	SessionTTL    time.Duration
	RedisAddr     string
	RedisPassword string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Injectable for tests; built from the settings above when nil.
	Store    store.Store
	Sessions store.SessionStore
	Objects  storage.ObjectStore
}

// App wires storage, sessions, and object storage behind the resource
// operations the HTTP layer calls.
type App struct {
	store      store.Store
	sessions   store.SessionStore
	objects    storage.ObjectStore
	invoiceTTL time.Duration
}

// New constructs the application. Database and session stores are required;
// object storage is optional (invoice upload endpoints fail cleanly without it).
func New(cfg Config) (*App, error) {
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 15 * time.Minute
	}

	dataStore := cfg.Store
	if dataStore == nil {
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("database URL required")
		}
		var err error
		dataStore, err = store.NewGormStore(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("init postgres store: %w", err)
		}
	}

	sessions := cfg.Sessions
	if sessions == nil {
		if strings.TrimSpace(cfg.JWTSecret) == "" {
			return nil, fmt.Errorf("jwtSecret is required")
		}
		var revoker store.TokenRevoker
		if strings.TrimSpace(cfg.RedisAddr) != "" {
			revoker = store.NewRedisTokenRevoker(cfg.RedisAddr, cfg.RedisPassword)
		} else {
			revoker = store.NewMemoryTokenRevoker()
		}
		var err error
		sessions, err = store.NewJWTSessionStore(cfg.JWTSecret, cfg.SessionTTL, revoker)
		if err != nil {
			return nil, fmt.Errorf("init jwt session store: %w", err)
		}
	}

	objects := cfg.Objects
	if objects == nil && strings.TrimSpace(cfg.MinioEndpoint) != "" {
		var err error
		objects, err = storage.NewMinioStore(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			return nil, fmt.Errorf("init object store: %w", err)
		}
	}

	return &App{
		store:      dataStore,
		sessions:   sessions,
		objects:    objects,
		invoiceTTL: 15 * time.Minute,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

func normalizeRegistration(registration string) string {
	return strings.ToUpper(strings.TrimSpace(registration))
}
