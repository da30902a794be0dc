package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unirecords/client-go/internal/api"
	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/internal/session"
	"github.com/unirecords/client-go/internal/store"
	"github.com/unirecords/client-go/internal/transport"
	"github.com/unirecords/client-go/pkg/config"
)

// fakeRecordsService is a minimal in-memory stand-in for the remote API,
// covering the routes the scenario below walks through.
type fakeRecordsService struct {
	students     []models.Student
	studentCalls int32
	lastAuth     string
}

func (f *fakeRecordsService) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds models.Credentials
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "x" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid email or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(models.AuthResponse{
			Token: "tok-e2e",
			User:  models.User{ID: 1, Email: creds.Email},
		})
	})
	mux.HandleFunc("/students", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		switch r.Method {
		case http.MethodGet:
			atomic.AddInt32(&f.studentCalls, 1)
			_ = json.NewEncoder(w).Encode(f.students)
		case http.MethodPost:
			var payload models.CreateStudent
			_ = json.NewDecoder(r.Body).Decode(&payload)
			student := models.Student{
				ID:         int64(len(f.students) + 1),
				Name:       payload.Name,
				GroupID:    payload.GroupID,
				Major:      payload.Major,
				CourseYear: payload.CourseYear,
				Gender:     payload.Gender,
				BirthDate:  payload.BirthDate,
			}
			f.students = append(f.students, student)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(student)
		}
	})
	return mux
}

func TestLoginThenCreateAndListStudents(t *testing.T) {
	service := &fakeRecordsService{}
	server := httptest.NewServer(service.handler())
	t.Cleanup(server.Close)

	tokens := session.NewFileTokenStore(filepath.Join(t.TempDir(), "token"))

	var sess *session.Session
	client := transport.New(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second},
		transport.TokenFunc(func() string {
			if sess == nil {
				return ""
			}
			return sess.Token()
		}), nil, nil)
	apis := api.NewSet(client)
	sess = session.New(apis.Auth, tokens, nil, nil)

	cache := store.NewCache(0, nil, nil)
	students := store.NewStudentStore(apis.Students, cache, time.Minute, nil, nil)

	// Login persists the credential and seeds the identity.
	user, err := sess.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", user.Email)
	assert.True(t, sess.Authenticated())

	persisted, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-e2e", persisted)

	// Reads carry the bearer credential and cache per filter.
	initial, err := students.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Empty(t, initial)
	assert.Equal(t, "Bearer tok-e2e", service.lastAuth)

	created, err := students.Create(context.Background(), models.CreateStudent{
		Name:       "Jane Doe",
		GroupID:    5,
		Major:      "CS",
		CourseYear: 2,
		Gender:     "F",
		BirthDate:  time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// The write invalidated the cached list, so the new student shows up.
	after, err := students.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, created.ID, after[0].ID)

	// Unchanged filter, no intervening write: served from cache.
	_, err = students.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&service.studentCalls))

	// Logout drops both credential and identity.
	sess.Logout()
	assert.False(t, sess.Authenticated())
	assert.Empty(t, sess.Token())
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	service := &fakeRecordsService{}
	server := httptest.NewServer(service.handler())
	t.Cleanup(server.Close)

	client := transport.New(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil, nil, nil)
	apis := api.NewSet(client)
	sess := session.New(apis.Auth, session.NewFileTokenStore(filepath.Join(t.TempDir(), "token")), nil, nil)

	_, err := sess.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)
	assert.False(t, sess.Authenticated())
	assert.Contains(t, err.Error(), "invalid email or password")
}
