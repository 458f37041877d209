package accounts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) FindByUsername(ctx context.Context, username string) (*Account, error) {
	row := s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, role, mfa_enabled, mfa_secret_enc, created_at
    FROM users
    WHERE username = $1
  `, username)

	var acc Account
	err := row.Scan(&acc.ID, &acc.Username, &acc.PasswordHash, &acc.Role, &acc.MFAEnabled, &acc.MFASecretEnc, &acc.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// Create inserts a new account. A unique violation on username is mapped to
// ErrDuplicate here, once, instead of string-matching at call sites.
func (s *Store) Create(ctx context.Context, username, passwordHash, role string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING id
  `, username, passwordHash, role).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	return id, nil
}

func (s *Store) List(ctx context.Context) ([]Info, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, username, role, created_at
    FROM users
    ORDER BY id
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Info
	for rows.Next() {
		var info Info
		if err := rows.Scan(&info.ID, &info.Username, &info.Role, &info.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, info)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	cmd, err := s.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) UpdateMFASecret(ctx context.Context, id int64, secretEnc []byte) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_secret_enc = $1, mfa_enabled = false WHERE id = $2", secretEnc, id)
	return err
}

func (s *Store) GetMFASecret(ctx context.Context, id int64) ([]byte, error) {
	var secretEnc []byte
	err := s.DB.QueryRow(ctx, "SELECT mfa_secret_enc FROM users WHERE id = $1", id).Scan(&secretEnc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return secretEnc, nil
}

func (s *Store) SetMFAEnabled(ctx context.Context, id int64, enabled bool) error {
	_, err := s.DB.Exec(ctx, "UPDATE users SET mfa_enabled = $1 WHERE id = $2", enabled, id)
	return err
}
