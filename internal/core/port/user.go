package port

import (
	"context"

	"github.com/rafaelleal24/inventory/internal/core/domain"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

type UserPort interface {
	GetByID(ctx context.Context, id domain.ID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// Upsert creates the user or replaces the password and role of the
	// existing user with the same username.
	Upsert(ctx context.Context, user *domain.User) error
}
