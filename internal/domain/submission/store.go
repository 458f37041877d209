package submission

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Insert persists one encoded record. Records are written once and never
// updated.
func (s *Store) Insert(ctx context.Context, rec StoredRecord) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO form_submissions (name, surname, pesel, payload_enc)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, nullIfEmpty(rec.Name), nullIfEmpty(rec.Surname), nullIfEmpty(rec.Pesel), rec.Ciphertext).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// List returns all stored records, newest first.
func (s *Store) List(ctx context.Context) ([]StoredRecord, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id,
           COALESCE(name, ''),
           COALESCE(surname, ''),
           COALESCE(pesel, ''),
           payload_enc,
           created_at
    FROM form_submissions
    ORDER BY created_at DESC, id DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		var rec StoredRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Surname, &rec.Pesel, &rec.Ciphertext, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM form_submissions").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
