package memory

import (
	"sync/atomic"
	"time"

	"github.com/omarshaarawi/tempad/internal/models"
)

type bootstrapEntry struct {
	data      *models.BootstrapStatic
	fetchedAt time.Time
}

// Repository holds the process-wide reference data in a single slot.
// Writers replace the slot atomically; concurrent refreshes race and the last one wins.
type Repository struct {
	bootstrap atomic.Pointer[bootstrapEntry]
	now       func() time.Time
}

func NewRepository() *Repository {
	return &Repository{now: time.Now}
}

// NewRepositoryWithClock is used by tests to control staleness.
func NewRepositoryWithClock(now func() time.Time) *Repository {
	return &Repository{now: now}
}

func (r *Repository) SaveBootstrap(data *models.BootstrapStatic) {
	r.bootstrap.Store(&bootstrapEntry{data: data, fetchedAt: r.now()})
}

// GetBootstrap returns the cached data if it is younger than ttl.
func (r *Repository) GetBootstrap(ttl time.Duration) (*models.BootstrapStatic, bool) {
	e := r.bootstrap.Load()
	if e == nil || r.now().Sub(e.fetchedAt) >= ttl {
		return nil, false
	}
	return e.data, true
}

// LastUpdated is the zero time when nothing has been cached yet.
func (r *Repository) LastUpdated() time.Time {
	e := r.bootstrap.Load()
	if e == nil {
		return time.Time{}
	}
	return e.fetchedAt
}
