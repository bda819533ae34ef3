package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DEVLlN/canvas-todoist-sync/internal/core/domain"
	"github.com/DEVLlN/canvas-todoist-sync/internal/core/ports/driven"
)

// newTestClient points a client at a stub API server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(context.Background(), "test-token",
		WithBaseURLs(srv.URL, srv.URL+"/sync"))
}

func TestEnsureProject_UsesExisting(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]project{{ID: "p1", Name: "Canvas Assignments"}})
	})

	c := newTestClient(t, mux)
	id, err := c.EnsureProject(context.Background(), "Canvas Assignments")
	require.NoError(t, err)
	assert.Equal(t, "p1", id)
}

func TestEnsureProject_CreatesAndCaches(t *testing.T) {
	var creates int
	mux := http.NewServeMux()
	mux.HandleFunc("GET /projects", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]project{})
	})
	mux.HandleFunc("POST /projects", func(w http.ResponseWriter, r *http.Request) {
		creates++
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		json.NewEncoder(w).Encode(project{ID: "p-new", Name: body["name"]})
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	id, err := c.EnsureProject(ctx, "Canvas Assignments")
	require.NoError(t, err)
	assert.Equal(t, "p-new", id)

	id, err = c.EnsureProject(ctx, "Canvas Assignments")
	require.NoError(t, err)
	assert.Equal(t, "p-new", id)
	assert.Equal(t, 1, creates, "second call must hit the cache")
}

func TestEnsureLabel_SanitisesBeforeLookup(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /labels", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode([]label{{ID: "l1", Name: "CHEM_350"}})
	})

	c := newTestClient(t, mux)
	name, err := c.EnsureLabel(context.Background(), "CHEM 350")
	require.NoError(t, err)
	assert.Equal(t, "CHEM_350", name)
}

func TestCreateTask_SendsPayload(t *testing.T) {
	var got taskPayload
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(task{ID: "t1"})
	})

	c := newTestClient(t, mux)
	id, err := c.CreateTask(context.Background(), driven.TaskRequest{
		Title:       "Problem Set 4",
		Description: "Chapters 7-9",
		DueAt:       time.Date(2026, 3, 15, 23, 59, 0, 0, time.UTC),
		Priority:    domain.TierUrgent,
		ProjectID:   "p1",
		Labels:      []string{"CHEM_350"},
	})
	require.NoError(t, err)
	assert.Equal(t, "t1", id)

	assert.Equal(t, "Problem Set 4", got.Content)
	assert.Equal(t, "p1", got.ProjectID)
	assert.Equal(t, "2026-03-15 at 23:59", got.DueString)
	assert.Equal(t, 4, got.Priority)
	assert.Equal(t, []string{"CHEM_350"}, got.Labels)
}

func TestTaskExists(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks/alive", func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(task{ID: "alive"})
	})
	mux.HandleFunc("GET /tasks/gone", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	})

	c := newTestClient(t, mux)
	ctx := context.Background()

	exists, err := c.TaskExists(ctx, "alive")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = c.TaskExists(ctx, "gone")
	require.NoError(t, err, "a 404 is an answer, not an error")
	assert.False(t, exists)
}

func TestAddReminder_GoesThroughSyncAPI(t *testing.T) {
	var got syncRequest
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sync", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte("{}"))
	})

	c := newTestClient(t, mux)
	remindAt := time.Date(2026, 3, 14, 23, 59, 0, 0, time.UTC)
	require.NoError(t, c.AddReminder(context.Background(), "t1", remindAt))

	require.Len(t, got.Commands, 1)
	cmd := got.Commands[0]
	assert.Equal(t, "reminder_add", cmd.Type)
	assert.NotEmpty(t, cmd.UUID)
	assert.Equal(t, "t1", cmd.Args["item_id"])
	assert.Equal(t, map[string]any{"date": "2026-03-14T23:59:00"}, cmd.Args["due"])
}

func TestErrorTranslation(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, domain.ErrAuthInvalid},
		{"forbidden", http.StatusForbidden, domain.ErrAuthInvalid},
		{"rate limited", http.StatusTooManyRequests, domain.ErrRateLimited},
		{"server error", http.StatusInternalServerError, domain.ErrTaskService},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "nope", tt.status)
			}))

			_, err := c.CreateTask(context.Background(), driven.TaskRequest{Title: "x"})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPriorityValue(t *testing.T) {
	assert.Equal(t, 4, priorityValue(domain.TierUrgent))
	assert.Equal(t, 3, priorityValue(domain.TierHigh))
	assert.Equal(t, 2, priorityValue(domain.TierMedium))
	assert.Equal(t, 1, priorityValue(domain.TierNormal))
}

func TestBuildPayload_TruncatesDescription(t *testing.T) {
	long := make([]byte, maxDescriptionLen+100)
	for i := range long {
		long[i] = 'a'
	}

	p := buildPayload(driven.TaskRequest{Title: "x", Description: string(long)})
	assert.Len(t, p.Description, maxDescriptionLen)
}
