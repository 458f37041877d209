package accounts

import (
	"context"

	"enroll/internal/domain/auth"
)

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

// CreateAdmin hashes the password and stores a regular admin account.
// Superadmins are only ever created by the seed.
func (s *Service) CreateAdmin(ctx context.Context, username, password string) (int64, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, err
	}
	return s.Store.Create(ctx, username, hash, auth.RoleAdmin)
}

func (s *Service) List(ctx context.Context) ([]Info, error) {
	return s.Store.List(ctx)
}

// Delete removes an account after the guards pass: nobody deletes the
// bootstrap superadmin, and nobody deletes themselves.
func (s *Service) Delete(ctx context.Context, callerID, targetID int64) error {
	if err := CanDelete(callerID, targetID); err != nil {
		return err
	}
	return s.Store.Delete(ctx, targetID)
}

// CanDelete holds the delete guards as a pure rule so it can be exercised
// without a database.
func CanDelete(callerID, targetID int64) error {
	if targetID == BootstrapID || targetID == callerID {
		return ErrProtected
	}
	return nil
}

func (s *Service) FindByUsername(ctx context.Context, username string) (*Account, error) {
	return s.Store.FindByUsername(ctx, username)
}
