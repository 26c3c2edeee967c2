package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classconnect-grupo3/classconnect-cli/internal/errors"
)

func TestBearerHeaderFromTokenSource(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer abc123" {
			t.Errorf("unexpected auth header: %s", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(UserProfile{UID: "u1", Email: "a@b.com"})
	}))
	defer server.Close()

	client := NewClient(server.URL).WithTokenSource(func() string { return "abc123" })

	user, err := client.CurrentUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UID)
}

func TestNoHeaderWhenUnauthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("expected no auth header, got %q", got)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"token":"t"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL).WithTokenSource(func() string { return "" })

	_, err := client.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
}

func TestTokenReadAtRequestTime(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	token := ""
	client := NewClient(server.URL).WithTokenSource(func() string { return token })

	_, err := client.ListCourses(context.Background())
	require.NoError(t, err)

	token = "later-token"
	_, err = client.ListCourses(context.Background())
	require.NoError(t, err)

	require.Len(t, seen, 2)
	assert.Equal(t, "", seen[0])
	assert.Equal(t, "Bearer later-token", seen[1])
}

func TestLogin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/login" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var req LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a@b.com", req.Email)
		assert.Equal(t, "secret", req.Password)

		_, _ = w.Write([]byte(`{"token":"abc123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	token, err := client.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse all connections

	client := NewClient(server.URL)

	_, err := client.ListCourses(context.Background())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNetworkFailure, errors.CodeOf(err))
}

func TestEndpointPaths(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var got []call

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, call{r.Method, r.URL.RequestURI()})
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	require.NoError(t, client.Register(ctx, RegisterRequest{Email: "a@b.com", Password: "p", Name: "A", Surname: "B"}))
	require.NoError(t, client.ForgotPassword(ctx, "a@b.com"))
	require.NoError(t, client.UpdateLocation(ctx, "AR"))
	require.NoError(t, client.RegisterPushToken(ctx, "u1", "fcm-token"))
	require.NoError(t, client.Enroll(ctx, "42"))
	_, err := client.CreateModule(ctx, "42", ModuleDraft{Title: "m"})
	require.NoError(t, err)
	_, err = client.CreateTask(ctx, "42", TaskDraft{Title: "t"})
	require.NoError(t, err)
	_, err = client.CreateExam(ctx, "42", ExamDraft{Title: "e"})
	require.NoError(t, err)

	want := []call{
		{"POST", "/register"},
		{"POST", "/users/forgot-password"},
		{"POST", "/users/me/location"},
		{"POST", "/user/token"},
		{"POST", "/courses/42/enroll"},
		{"POST", "/modules/course/42"},
		{"POST", "/tasks/course/42"},
		{"POST", "/exams/course/42"},
	}
	assert.Equal(t, want, got)
}

func TestSearchQueryEscaping(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "a b", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.SearchUsers(context.Background(), "a b")
	require.NoError(t, err)
}

func TestListModulesDecodesResources(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/modules/course/7", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":"m1","title":"Intro","resources":[{"id":"r1","name":"slides.pdf"}]}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	modules, err := client.ListModules(context.Background(), "7")
	require.NoError(t, err)
	require.Len(t, modules, 1)
	require.Len(t, modules[0].Resources, 1)
	assert.Equal(t, "slides.pdf", modules[0].Resources[0].Name)
}

func TestContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient(server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.ListCourses(ctx)
	require.Error(t, err)
}
