// Package storage defines profile persistence and an in-memory store.
package storage

import (
	"context"
	"errors"

	"synastry-service/models"
)

var (
	// ErrNotFound is returned when no profile has the requested ID.
	ErrNotFound = errors.New("profile not found")

	// ErrAlreadyExists is returned when a username is already taken.
	ErrAlreadyExists = errors.New("profile already exists")
)

// ProfileStore persists profiles. Usernames are unique ignoring case.
type ProfileStore interface {
	// Create inserts p, failing with ErrAlreadyExists on a taken username
	Create(ctx context.Context, p models.Profile) error
	Get(ctx context.Context, id string) (models.Profile, error)
	// List returns all profiles, oldest first
	List(ctx context.Context) ([]models.Profile, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
