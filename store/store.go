// Package store persists gallery records. Two interchangeable backends
// satisfy ImageStore: MongoStore for durable mode and SnapshotStore for
// demo mode, selected once at startup.
package store

import (
	"context"
	"errors"

	"github.com/SergioCaMi/Gallery/models"
)

// ErrNotFound is returned by GetByID, GetByURL and Update when no record
// matches. A miss is an expected outcome, not a backend failure.
var ErrNotFound = errors.New("store: image not found")

// ErrDuplicateURL is returned by Create when a record with the same
// source URL already exists.
var ErrDuplicateURL = errors.New("store: source url already exists")

// ImageStore is the persistence contract shared by both backends.
type ImageStore interface {
	// List returns all records ordered by date ascending.
	List(ctx context.Context) ([]models.Image, error)

	// GetByID returns the record with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Image, error)

	// GetByURL returns the record with the given source URL, or
	// ErrNotFound. Used by the duplicate check before create.
	GetByURL(ctx context.Context, url string) (*models.Image, error)

	// Create persists a new record, assigning its id and, when the
	// caller left it zero, its date. Returns ErrDuplicateURL when the
	// source URL is already taken.
	Create(ctx context.Context, img models.Image) (*models.Image, error)

	// Update merges the non-nil fields of upd into the record with the
	// given id and returns the updated record, or ErrNotFound.
	Update(ctx context.Context, id string, upd models.ImageUpdate) (*models.Image, error)

	// Delete removes the record with the given id, reporting whether a
	// record was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
