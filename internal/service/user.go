package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/leadboard/leadboard-server/internal/domain"
	domainerrors "github.com/leadboard/leadboard-server/internal/errors"
	"github.com/leadboard/leadboard-server/internal/store"
)

// UserService reads user accounts.
type UserService struct {
	store store.Store
}

// NewUserService creates a new user service.
func NewUserService(store store.Store) *UserService {
	return &UserService{store: store}
}

// ListUsers returns every user ordered by name.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// GetUser returns a user by id.
func (s *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return getUser(ctx, s.store, id)
}

func getUser(ctx context.Context, st store.Store, id string) (*domain.User, error) {
	u, err := st.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("user not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
