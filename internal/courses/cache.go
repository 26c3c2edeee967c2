// Package courses holds the in-memory course collection for the current
// session: loaded on demand, filtered into derived views, and optimistically
// mutated by create operations with explicit pending/confirmed tracking.
package courses

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
	"github.com/classconnect-grupo3/classconnect-cli/internal/log"
)

// Entry is one course in the collection. Pending marks an optimistic local
// record whose create call has not been confirmed by the server yet; a
// confirmed entry always carries the server-assigned id.
type Entry struct {
	api.Course
	Pending bool
}

// Cache is the in-memory course collection. Only the cache mutates its
// state; consumers receive copied snapshots.
type Cache struct {
	client *api.Client
	logger *log.Logger

	mu        sync.RWMutex
	courses   []Entry
	favorites map[string]struct{}
	loading   bool
	lastErr   error
	loaded    bool
}

// NewCache creates an empty course collection backed by the given client.
func NewCache(client *api.Client, logger *log.Logger) *Cache {
	return &Cache{
		client:    client,
		logger:    logger,
		favorites: make(map[string]struct{}),
	}
}

// Reload fetches the full course list and replaces the collection. The
// loading flag is set for the duration of the call. On failure the prior
// collection is left untouched and the error is also kept for Err.
func (c *Cache) Reload(ctx context.Context) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	fetched, err := c.client.ListCourses(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = false
	if err != nil {
		c.lastErr = err
		c.logger.WithError(err).Debug("course reload failed, keeping previous collection")
		return err
	}

	entries := make([]Entry, len(fetched))
	for i, course := range fetched {
		entries[i] = Entry{Course: course}
	}

	c.courses = entries
	c.lastErr = nil
	c.loaded = true

	c.logger.Debug("course collection reloaded", "count", len(entries))

	return nil
}

// Snapshot returns a copy of the current collection.
func (c *Cache) Snapshot() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Entry, len(c.courses))
	copy(out, c.courses)
	return out
}

// Loading reports whether a reload is in flight.
func (c *Cache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the error of the most recent failed reload, or nil after a
// successful one.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Loaded reports whether the collection has been populated at least once.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// FilterByRole returns the courses where the user has the given role. Pure
// derived view; no network call.
func (c *Cache) FilterByRole(role string) []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Entry
	for _, entry := range c.courses {
		if entry.Role == role {
			out = append(out, entry)
		}
	}
	return out
}

// Favorites returns the courses currently marked as favorite.
func (c *Cache) Favorites() []Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []Entry
	for _, entry := range c.courses {
		if _, ok := c.favorites[entry.ID]; ok {
			out = append(out, entry)
		}
	}
	return out
}

// ToggleFavorite flips the local favorite mark for a course and reports the
// new state. Favorite status is local-only; the platform contract has no
// favorites endpoint.
func (c *Cache) ToggleFavorite(courseID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for _, entry := range c.courses {
		if entry.ID == courseID {
			found = true
			break
		}
	}
	if !found {
		return false, errors.NewCourseNotFoundError(courseID)
	}

	if _, ok := c.favorites[courseID]; ok {
		delete(c.favorites, courseID)
		return false, nil
	}
	c.favorites[courseID] = struct{}{}
	return true, nil
}

// Find returns the entry with the given id, if present.
func (c *Cache) Find(courseID string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, entry := range c.courses {
		if entry.ID == courseID {
			return entry, true
		}
	}
	return Entry{}, false
}

// Create posts a new course. A pending entry with a client-generated id is
// appended immediately; on confirmation it is replaced by the
// server-assigned record, and on failure it is removed. The collection
// therefore grows by exactly one confirmed entry per successful create.
func (c *Cache) Create(ctx context.Context, draft api.CourseDraft) (*api.Course, error) {
	if strings.TrimSpace(draft.Title) == "" {
		return nil, errors.NewFieldRequiredError("title")
	}

	pendingID := "pending-" + uuid.NewString()

	c.mu.Lock()
	c.courses = append(c.courses, Entry{
		Course: api.Course{
			ID:          pendingID,
			Title:       draft.Title,
			Description: draft.Description,
			StartDate:   draft.StartDate,
			EndDate:     draft.EndDate,
			Capacity:    draft.Capacity,
			Role:        api.RoleTeacher,
		},
		Pending: true,
	})
	c.mu.Unlock()

	created, err := c.client.CreateCourse(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()

	idx := -1
	for i, entry := range c.courses {
		if entry.ID == pendingID {
			idx = i
			break
		}
	}

	if err != nil {
		if idx >= 0 {
			c.courses = append(c.courses[:idx], c.courses[idx+1:]...)
		}
		return nil, err
	}

	confirmed := Entry{Course: *created}
	if confirmed.Role == "" {
		confirmed.Role = api.RoleTeacher
	}

	if idx >= 0 {
		c.courses[idx] = confirmed
	} else {
		// The pending entry was dropped by a concurrent reload; the reload
		// already carries the confirmed record or the next one will.
		c.courses = append(c.courses, confirmed)
	}

	c.logger.Debug("course created", "id", created.ID)

	return created, nil
}

// Enroll enrolls the current user in a course and reloads the collection so
// the local state reflects the server-confirmed membership.
func (c *Cache) Enroll(ctx context.Context, courseID string) error {
	if err := c.client.Enroll(ctx, courseID); err != nil {
		return err
	}
	return c.Reload(ctx)
}
