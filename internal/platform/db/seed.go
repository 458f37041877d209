package db

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"enroll/internal/domain/auth"
	"enroll/internal/platform/config"
)

// Seed ensures the bootstrap superadmin exists. It runs before any request
// is served, so the bootstrap account always takes the lowest id.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	return ensureSuperadmin(ctx, pool, cfg.SeedSuperadminName, cfg.SeedSuperadminPass)
}

func ensureSuperadmin(ctx context.Context, pool *pgxpool.Pool, username, password string) error {
	if strings.TrimSpace(username) == "" || strings.TrimSpace(password) == "" {
		return nil
	}

	var id int64
	err := pool.QueryRow(ctx, "SELECT id FROM users WHERE username = $1", username).Scan(&id)
	if err == nil {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	err = pool.QueryRow(ctx, `
    INSERT INTO users (username, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING id
  `, username, hash, auth.RoleSuperadmin).Scan(&id)
	return err
}
