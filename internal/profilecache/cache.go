// Package profilecache stores confirmed contact and education data per user
// and per target language. A cached profile lets a returning user skip the
// contact and education steps after an explicit opt-in; entries for one
// language are never offered for another.
package profilecache

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matthias/cv-wizard/internal/cvdata"
)

// ErrNotFound is returned when no profile is cached for the owner and
// language pair.
var ErrNotFound = errors.New("cached profile not found")

// Entry is the reusable slice of a finished wizard run. Only data the user
// explicitly confirmed lands here.
type Entry struct {
	OwnerID   uuid.UUID               `json:"owner_id"`
	Language  string                  `json:"language"`
	Contact   cvdata.Contact          `json:"contact"`
	Education []cvdata.EducationEntry `json:"education"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// Store reads and writes cached profiles keyed by (owner, language).
type Store interface {
	// Put stores the entry, replacing any previous one for the same owner
	// and language.
	Put(ctx context.Context, e *Entry) error
	// Get returns the entry for the owner and language, or ErrNotFound.
	Get(ctx context.Context, ownerID uuid.UUID, language string) (*Entry, error)
}
