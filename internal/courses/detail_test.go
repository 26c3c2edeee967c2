package courses

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classconnect-grupo3/classconnect-cli/internal/api"
	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

// detailServer stubs the per-course task/exam/module endpoints.
type detailServer struct {
	*httptest.Server
	fail atomic.Bool
}

func newDetailServer(t *testing.T) *detailServer {
	t.Helper()

	s := &detailServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"detail":"service unavailable"}`))
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/tasks/course/c1":
			_, _ = w.Write([]byte(`[{"id":"t1","title":"Homework 1","deadline":"2026-09-20"}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/exams/course/c1":
			_, _ = w.Write([]byte(`[{"id":"e1","title":"Midterm","due_date":"2026-10-01","submission":{"score":8.5}}]`))
		case r.Method == http.MethodGet && r.URL.Path == "/modules/course/c1":
			_, _ = w.Write([]byte(`[{"id":"m1","title":"Unit 1","resources":[{"id":"r1","name":"notes.pdf"}]}]`))
		case r.Method == http.MethodPost && r.URL.Path == "/tasks/course/c1":
			var draft api.TaskDraft
			_ = json.NewDecoder(r.Body).Decode(&draft)
			_ = json.NewEncoder(w).Encode(api.Task{ID: "t42", Title: draft.Title, Deadline: draft.Deadline})
		case r.Method == http.MethodPost && r.URL.Path == "/exams/course/c1":
			var draft api.ExamDraft
			_ = json.NewDecoder(r.Body).Decode(&draft)
			_ = json.NewEncoder(w).Encode(api.Exam{ID: "e42", Title: draft.Title, DueDate: draft.DueDate})
		case r.Method == http.MethodPost && r.URL.Path == "/modules/course/c1":
			var draft api.ModuleDraft
			_ = json.NewDecoder(r.Body).Decode(&draft)
			_ = json.NewEncoder(w).Encode(api.Module{ID: "m42", Title: draft.Title})
		case r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/modules/"):
			var draft api.ModuleDraft
			_ = json.NewDecoder(r.Body).Decode(&draft)
			_ = json.NewEncoder(w).Encode(api.Module{ID: "m1", Title: draft.Title, Description: draft.Description})
		case r.Method == http.MethodPost && r.URL.Path == "/modules/m1/resources":
			_ = json.NewEncoder(w).Encode(api.Resource{ID: "r42", Name: "slides.pdf"})
		case r.Method == http.MethodDelete:
			_, _ = w.Write([]byte(`{}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(s.Close)

	return s
}

func newTestDetail(t *testing.T) (*Detail, *detailServer) {
	t.Helper()
	server := newDetailServer(t)
	return NewDetail(api.NewClient(server.URL), "c1"), server
}

func TestDetailLoad(t *testing.T) {
	detail, _ := newTestDetail(t)

	require.NoError(t, detail.Load(context.Background()))

	require.Len(t, detail.Tasks(), 1)
	assert.Equal(t, "Homework 1", detail.Tasks()[0].Title)

	require.Len(t, detail.Exams(), 1)
	require.NotNil(t, detail.Exams()[0].Submission)
	assert.Equal(t, 8.5, detail.Exams()[0].Submission.Score)

	require.Len(t, detail.Modules(), 1)
	require.Len(t, detail.Modules()[0].Resources, 1)
}

func TestCreateTaskReconcilesServerID(t *testing.T) {
	detail, _ := newTestDetail(t)
	require.NoError(t, detail.Load(context.Background()))

	created, err := detail.CreateTask(context.Background(), api.TaskDraft{Title: "Homework 2"})
	require.NoError(t, err)
	assert.Equal(t, "t42", created.ID)

	tasks := detail.Tasks()
	require.Len(t, tasks, 2)

	var confirmed int
	for _, task := range tasks {
		assert.False(t, task.Pending, "no pending entries after confirmation")
		if task.ID == "t42" {
			confirmed++
		}
	}
	assert.Equal(t, 1, confirmed, "exactly one entry carries the server id")
}

func TestCreateTaskFailureRollsBack(t *testing.T) {
	detail, server := newTestDetail(t)
	require.NoError(t, detail.Load(context.Background()))

	server.fail.Store(true)
	_, err := detail.CreateTask(context.Background(), api.TaskDraft{Title: "Homework 2"})
	require.Error(t, err)

	assert.Len(t, detail.Tasks(), 1, "failed create leaves no pending entry")
}

func TestCreateTaskValidation(t *testing.T) {
	detail, _ := newTestDetail(t)

	_, err := detail.CreateTask(context.Background(), api.TaskDraft{Title: ""})
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestDeleteTaskRestoresOnFailure(t *testing.T) {
	detail, server := newTestDetail(t)
	require.NoError(t, detail.Load(context.Background()))

	server.fail.Store(true)
	err := detail.DeleteTask(context.Background(), "t1")
	require.Error(t, err)

	require.Len(t, detail.Tasks(), 1, "failed delete restores the entry")
	assert.Equal(t, "t1", detail.Tasks()[0].ID)
}

func TestDeleteTask(t *testing.T) {
	detail, _ := newTestDetail(t)
	require.NoError(t, detail.Load(context.Background()))

	require.NoError(t, detail.DeleteTask(context.Background(), "t1"))
	assert.Empty(t, detail.Tasks())
}

func TestCreateExam(t *testing.T) {
	detail, _ := newTestDetail(t)
	require.NoError(t, detail.Load(context.Background()))

	created, err := detail.CreateExam(context.Background(), api.ExamDraft{Title: "Final", DueDate: "2026-12-01"})
	require.NoError(t, err)
	assert.Equal(t, "e42", created.ID)
	assert.Len(t, detail.Exams(), 2)
}

func TestCreateModule(t *testing.T) {
	detail, _ := newTestDetail(t)
	require.NoError(t, detail.Load(context.Background()))

	created, err := detail.CreateModule(context.Background(), api.ModuleDraft{Title: "Unit 2"})
	require.NoError(t, err)
	assert.Equal(t, "m42", created.ID)
	assert.Len(t, detail.Modules(), 2)
}

func TestUpdateModule(t *testing.T) {
	detail, _ := newTestDetail(t)
	require.NoError(t, detail.Load(context.Background()))

	require.NoError(t, detail.UpdateModule(context.Background(), "m1", api.ModuleDraft{Title: "Unit 1 (rev)"}))
	assert.Equal(t, "Unit 1 (rev)", detail.Modules()[0].Title)
}

func TestAddAndRemoveResource(t *testing.T) {
	detail, _ := newTestDetail(t)
	require.NoError(t, detail.Load(context.Background()))

	require.NoError(t, detail.AddResource(context.Background(), "m1", "slides.pdf"))
	require.Len(t, detail.Modules()[0].Resources, 2)

	require.NoError(t, detail.RemoveResource(context.Background(), "m1", "r1"))
	resources := detail.Modules()[0].Resources
	require.Len(t, resources, 1)
	assert.Equal(t, "r42", resources[0].ID)
}

func TestAddResourceValidation(t *testing.T) {
	detail, _ := newTestDetail(t)

	err := detail.AddResource(context.Background(), "m1", "  ")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}
