package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

type Repository interface {
	Create(ctx context.Context, p Profile) error
	// Update persists the whole profile record; merge decisions are made by
	// the caller before saving.
	Update(ctx context.Context, p Profile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	List(ctx context.Context) ([]Profile, error)
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
