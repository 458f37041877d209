package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:               ":8080",
		DatabaseURL:        "postgres://localhost:5432/enroll",
		JWTSecret:          "secret",
		FormEncryptionKey:  "0123456789abcdef0123456789abcdef",
		TokenTTL:           time.Hour,
		FrontendDir:        "frontend/dist",
		Environment:        "development",
		MaxBodyBytes:       1048576,
		RateLimitPerMinute: 60,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}, wantErr: false},
		{name: "missing database url", mutate: func(c *Config) { c.DatabaseURL = "" }, wantErr: true},
		{name: "missing jwt secret", mutate: func(c *Config) { c.JWTSecret = "" }, wantErr: true},
		{name: "missing encryption key", mutate: func(c *Config) { c.FormEncryptionKey = "" }, wantErr: true},
		{name: "allowed public fields", mutate: func(c *Config) { c.PublicFields = []string{"name", "surname", "pesel"} }, wantErr: false},
		{name: "unsupported public field", mutate: func(c *Config) { c.PublicFields = []string{"email"} }, wantErr: true},
		{name: "zero token ttl", mutate: func(c *Config) { c.TokenTTL = 0 }, wantErr: true},
		{name: "tiny body limit", mutate: func(c *Config) { c.MaxBodyBytes = 100 }, wantErr: true},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimitPerMinute = 0 }, wantErr: true},
		{
			name: "production seed without password",
			mutate: func(c *Config) {
				c.Environment = "production"
				c.RunSeed = true
				c.SeedSuperadminPass = ""
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{name: "empty", raw: "", want: 0},
		{name: "single", raw: "name", want: 1},
		{name: "spaced list", raw: " name , surname ", want: 2},
		{name: "trailing comma", raw: "name,surname,", want: 2},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := splitFields(tc.raw); len(got) != tc.want {
				t.Fatalf("splitFields(%q) = %v, want %d fields", tc.raw, got, tc.want)
			}
		})
	}
}
