package courses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
	"github.com/classconnect-grupo3/classconnect-cli/internal/log"
)

// courseServer serves a mutable course list and can be switched to fail.
type courseServer struct {
	*httptest.Server
	courses []api.Course
	fail    atomic.Bool
	nextID  atomic.Int64
}

func newCourseServer(t *testing.T, initial []api.Course) *courseServer {
	t.Helper()

	s := &courseServer{courses: initial}
	s.nextID.Store(100)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"service unavailable"}`))
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/courses":
			_ = json.NewEncoder(w).Encode(s.courses)
		case r.Method == http.MethodPost && r.URL.Path == "/courses":
			var draft api.CourseDraft
			_ = json.NewDecoder(r.Body).Decode(&draft)
			course := api.Course{
				ID:          "42",
				Title:       draft.Title,
				Description: draft.Description,
				Role:        api.RoleTeacher,
			}
			s.courses = append(s.courses, course)
			_ = json.NewEncoder(w).Encode(course)
		case r.Method == http.MethodPost && r.URL.Path == "/courses/c2/enroll":
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(s.Close)

	return s
}

func seedCourses() []api.Course {
	return []api.Course{
		{ID: "c1", Title: "Algebra", Role: api.RoleTeacher},
		{ID: "c2", Title: "Biology", Role: api.RoleStudent},
		{ID: "c3", Title: "Chemistry", Role: api.RoleStudent},
	}
}

func newTestCache(t *testing.T, server *courseServer) *Cache {
	t.Helper()
	return NewCache(api.NewClient(server.URL), log.Default())
}

func TestReload(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)

	require.NoError(t, cache.Reload(context.Background()))

	assert.Len(t, cache.Snapshot(), 3)
	assert.True(t, cache.Loaded())
	assert.False(t, cache.Loading())
	assert.NoError(t, cache.Err())
}

func TestFailedReloadKeepsPriorCollection(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)

	require.NoError(t, cache.Reload(context.Background()))

	server.fail.Store(true)
	err := cache.Reload(context.Background())
	require.Error(t, err)

	// Prior state untouched, error surfaced.
	assert.Len(t, cache.Snapshot(), 3)
	assert.Error(t, cache.Err())
	assert.False(t, cache.Loading())

	// A later successful reload clears the error flag.
	server.fail.Store(false)
	require.NoError(t, cache.Reload(context.Background()))
	assert.NoError(t, cache.Err())
}

func TestFilterByRolePartition(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)
	require.NoError(t, cache.Reload(context.Background()))

	teaching := cache.FilterByRole(api.RoleTeacher)
	enrolled := cache.FilterByRole(api.RoleStudent)

	assert.Len(t, teaching, 1)
	assert.Len(t, enrolled, 2)

	// The partition is disjoint and covers the collection.
	seen := make(map[string]int)
	for _, entry := range teaching {
		seen[entry.ID]++
	}
	for _, entry := range enrolled {
		seen[entry.ID]++
	}
	assert.Len(t, seen, 3)
	for id, count := range seen {
		assert.Equal(t, 1, count, "course %s appears in more than one role view", id)
	}
}

func TestToggleFavorite(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)
	require.NoError(t, cache.Reload(context.Background()))

	on, err := cache.ToggleFavorite("c1")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Len(t, cache.Favorites(), 1)

	off, err := cache.ToggleFavorite("c1")
	require.NoError(t, err)
	assert.False(t, off)
	assert.Empty(t, cache.Favorites())
}

func TestToggleFavoriteUnknownCourse(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)
	require.NoError(t, cache.Reload(context.Background()))

	_, err := cache.ToggleFavorite("nope")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeCourseNotFound, errors.CodeOf(err))
}

func TestCreateAppendsConfirmedCourse(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)
	require.NoError(t, cache.Reload(context.Background()))

	created, err := cache.Create(context.Background(), api.CourseDraft{Title: "X"})
	require.NoError(t, err)
	assert.Equal(t, "42", created.ID)

	snapshot := cache.Snapshot()
	require.Len(t, snapshot, 4, "collection grows by exactly one")

	var matches int
	for _, entry := range snapshot {
		if entry.ID == "42" {
			matches++
			assert.False(t, entry.Pending, "confirmed entry must not stay pending")
		}
	}
	assert.Equal(t, 1, matches, "exactly one course with the server id")
}

func TestCreateFailureRemovesPendingEntry(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)
	require.NoError(t, cache.Reload(context.Background()))

	server.fail.Store(true)
	_, err := cache.Create(context.Background(), api.CourseDraft{Title: "X"})
	require.Error(t, err)

	assert.Len(t, cache.Snapshot(), 3, "failed create must not leave a pending entry")
}

func TestCreateValidation(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)

	_, err := cache.Create(context.Background(), api.CourseDraft{Title: "  "})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, cache.Snapshot())
}

func TestEnrollReloads(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)

	require.NoError(t, cache.Enroll(context.Background(), "c2"))
	assert.Len(t, cache.Snapshot(), 3, "enroll reloads the collection")
}

func TestFind(t *testing.T) {
	server := newCourseServer(t, seedCourses())
	cache := newTestCache(t, server)
	require.NoError(t, cache.Reload(context.Background()))

	entry, ok := cache.Find("c2")
	require.True(t, ok)
	assert.Equal(t, "Biology", entry.Title)

	_, ok = cache.Find("nope")
	assert.False(t, ok)
}
