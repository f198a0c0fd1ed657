package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/curioapp/curio-server/internal/domain"
)

// CreateUser creates a new user account.
// Returns ErrEmailExists if the email is already registered.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	err := s.Users.Create(ctx, user.ID, user)
	if err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			// ID collisions are vanishingly rare; an index conflict
			// means the email is taken.
			return ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.Users.Get(ctx, id)
}

// GetUserByEmail retrieves a user by email address.
// Lookup is case-insensitive.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.Users.GetByIndex(ctx, "email", email)
}

// UpdateUser updates an existing user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	return s.Users.Update(ctx, user.ID, user)
}
