package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unirecords/client-go/internal/models"
	"github.com/unirecords/client-go/internal/transport"
	"github.com/unirecords/client-go/pkg/config"
)

type recordedRequest struct {
	method string
	path   string
	query  string
}

func newRecordingSet(t *testing.T, status int, body any) (*Set, *recordedRequest) {
	t.Helper()
	rec := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
	t.Cleanup(server.Close)
	client := transport.New(config.APIConfig{BaseURL: server.URL, Timeout: 5 * time.Second}, nil, nil, nil)
	return NewSet(client), rec
}

func TestStudentsAPIListBuildsFilterQuery(t *testing.T) {
	apis, rec := newRecordingSet(t, http.StatusOK, []models.Student{})
	_, err := apis.Students.List(context.Background(), models.StudentFilter{GroupID: 5, CourseYear: 2})
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/students", rec.path)
	assert.Equal(t, "course_year=2&group_id=5", rec.query)
}

func TestStudentsAPIGPA(t *testing.T) {
	apis, rec := newRecordingSet(t, http.StatusOK, models.StudentGPA{GPA: 3.75})
	gpa, err := apis.Students.GPA(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 3.75, gpa)
	assert.Equal(t, "/students/7/gpa", rec.path)
}

func TestStudentsAPIUpdateUsesPatch(t *testing.T) {
	apis, rec := newRecordingSet(t, http.StatusOK, models.Student{ID: 7})
	name := "New Name"
	_, err := apis.Students.Update(context.Background(), 7, models.UpdateStudent{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/students/7", rec.path)
}

func TestAttendanceAPIDeleteUsesDivergentPrefix(t *testing.T) {
	apis, rec := newRecordingSet(t, http.StatusNoContent, nil)
	require.NoError(t, apis.Attendance.Delete(context.Background(), 12))
	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/api/attendance/12", rec.path)
}

func TestAttendanceAPIListAndUpdateUsePlainPrefix(t *testing.T) {
	apis, rec := newRecordingSet(t, http.StatusOK, []models.AttendanceRecord{})
	_, err := apis.Attendance.List(context.Background(), models.AttendanceFilter{StudentID: 3})
	require.NoError(t, err)
	assert.Equal(t, "/attendance", rec.path)
	assert.Equal(t, "student_id=3", rec.query)
}

func TestGradebookAPIRankings(t *testing.T) {
	apis, rec := newRecordingSet(t, http.StatusOK, []models.RankingEntry{{StudentID: 1, GPA: 4.0}})
	entries, err := apis.Gradebook.Rankings(context.Background(), models.RankingFilter{GroupID: 5, SubjectName: "Algebra"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/rankings", rec.path)
	assert.Equal(t, "group_id=5&subject_name=Algebra", rec.query)
}

func TestAuthAPILogin(t *testing.T) {
	apis, rec := newRecordingSet(t, http.StatusOK, models.AuthResponse{Token: "tok", User: models.User{ID: 1, Email: "a@b.com"}})
	resp, err := apis.Auth.Login(context.Background(), models.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/auth/login", rec.path)
	assert.Equal(t, "tok", resp.Token)
	assert.Equal(t, int64(1), resp.User.ID)
}

func TestSubjectsAPIList(t *testing.T) {
	apis, rec := newRecordingSet(t, http.StatusOK, []models.Subject{{Name: "Algebra"}})
	subjects, err := apis.Subjects.List(context.Background())
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "/subjects", rec.path)
}
