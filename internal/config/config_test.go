package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "JWT_TTL_HOURS", "MEALS_CACHE_TTL_SECONDS", "CORS_ORIGIN", "MIGRATIONS_DIR"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "5050" {
		t.Fatalf("Port = %q, want 5050", cfg.Port)
	}
	if cfg.JWTTTL != 1 {
		t.Fatalf("JWTTTL = %d, want 1", cfg.JWTTTL)
	}
	if cfg.MealsCacheTTL != 5*time.Minute {
		t.Fatalf("MealsCacheTTL = %v, want 5m", cfg.MealsCacheTTL)
	}
	if cfg.CORSOrigin != "*" || cfg.MigrationsDir != "migrations" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("JWT_TTL_HOURS", "3")
	t.Setenv("RATE_LIMIT_BULK_RPS", "0.5")
	t.Setenv("DB_CONNECT_RETRIES", "not-a-number")

	cfg := Load()
	if cfg.Port != "9000" || cfg.JWTTTL != 3 {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.RateLimitBulkRPS != 0.5 {
		t.Fatalf("RateLimitBulkRPS = %v, want 0.5", cfg.RateLimitBulkRPS)
	}
	if cfg.DBConnectRetries != 5 {
		t.Fatalf("invalid int should fall back to default, got %d", cfg.DBConnectRetries)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "complete", cfg: Config{DatabaseURL: "postgres://x", JWTSecret: "s", JWTTTL: 1}},
		{name: "missing database", cfg: Config{JWTSecret: "s", JWTTTL: 1}, wantErr: true},
		{name: "missing secret", cfg: Config{DatabaseURL: "postgres://x", JWTTTL: 1}, wantErr: true},
		{name: "zero ttl", cfg: Config{DatabaseURL: "postgres://x", JWTSecret: "s"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
