package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unirecords/client-go/internal/models"
	appErrors "github.com/unirecords/client-go/pkg/errors"
)

type mockStudentsClient struct {
	students  map[int64]models.Student
	nextID    int64
	listCalls int
	createErr error
	deleteErr error
}

func newMockStudentsClient() *mockStudentsClient {
	return &mockStudentsClient{students: make(map[int64]models.Student), nextID: 1}
}

func (m *mockStudentsClient) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	m.listCalls++
	var out []models.Student
	for _, s := range m.students {
		if filter.GroupID != 0 && s.GroupID != filter.GroupID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentsClient) Get(ctx context.Context, id int64) (*models.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, appErrors.NewHTTP(404, "student not found")
	}
	return &s, nil
}

func (m *mockStudentsClient) Create(ctx context.Context, payload models.CreateStudent) (*models.Student, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	s := models.Student{
		ID:         m.nextID,
		Name:       payload.Name,
		GroupID:    payload.GroupID,
		Major:      payload.Major,
		CourseYear: payload.CourseYear,
		Gender:     payload.Gender,
		BirthDate:  payload.BirthDate,
	}
	m.nextID++
	m.students[s.ID] = s
	return &s, nil
}

func (m *mockStudentsClient) Update(ctx context.Context, id int64, payload models.UpdateStudent) (*models.Student, error) {
	s, ok := m.students[id]
	if !ok {
		return nil, appErrors.NewHTTP(404, "student not found")
	}
	if payload.Name != nil {
		s.Name = *payload.Name
	}
	if payload.GroupID != nil {
		s.GroupID = *payload.GroupID
	}
	m.students[id] = s
	return &s, nil
}

func (m *mockStudentsClient) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.students, id)
	return nil
}

func (m *mockStudentsClient) GPA(ctx context.Context, id int64) (float64, error) {
	return 3.5, nil
}

func newStudentStore(client *mockStudentsClient) *StudentStore {
	return NewStudentStore(client, NewCache(0, nil, nil), time.Minute, nil, nil)
}

func janeDoe() models.CreateStudent {
	return models.CreateStudent{
		Name:       "Jane Doe",
		GroupID:    5,
		Major:      "CS",
		CourseYear: 2,
		Gender:     "F",
		BirthDate:  time.Date(2003, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStudentStoreListIsIdempotentWithoutWrites(t *testing.T) {
	client := newMockStudentsClient()
	st := newStudentStore(client)

	_, err := st.Create(context.Background(), janeDoe())
	require.NoError(t, err)

	first, err := st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	second, err := st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, client.listCalls, "repeated read with unchanged filter hits the cache")
}

func TestStudentStoreCreateThenListReflectsWrite(t *testing.T) {
	client := newMockStudentsClient()
	st := newStudentStore(client)

	before, err := st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Empty(t, before)

	created, err := st.Create(context.Background(), janeDoe())
	require.NoError(t, err)

	after, err := st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, created.ID, after[0].ID)
	assert.Equal(t, "Jane Doe", after[0].Name)
}

func TestStudentStoreFailedWriteLeavesCacheUntouched(t *testing.T) {
	client := newMockStudentsClient()
	st := newStudentStore(client)

	_, err := st.Create(context.Background(), janeDoe())
	require.NoError(t, err)
	cachedList, err := st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	callsAfterRead := client.listCalls

	client.createErr = appErrors.NewHTTP(500, "boom")
	_, err = st.Create(context.Background(), janeDoe())
	require.Error(t, err)

	again, err := st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Equal(t, cachedList, again)
	assert.Equal(t, callsAfterRead, client.listCalls, "failed write must not invalidate")
}

func TestStudentStoreValidationFailureNeverReachesClient(t *testing.T) {
	client := newMockStudentsClient()
	st := newStudentStore(client)

	payload := janeDoe()
	payload.CourseYear = 9
	_, err := st.Create(context.Background(), payload)
	require.Error(t, err)
	assert.True(t, appErrors.IsKind(err, appErrors.KindValidation))
	assert.Empty(t, client.students)
}

func TestStudentStoreFilterChangeIsNewCacheKey(t *testing.T) {
	client := newMockStudentsClient()
	st := newStudentStore(client)

	payload := janeDoe()
	_, err := st.Create(context.Background(), payload)
	require.NoError(t, err)
	payload.GroupID = 6
	_, err = st.Create(context.Background(), payload)
	require.NoError(t, err)

	group5, err := st.List(context.Background(), models.StudentFilter{GroupID: 5})
	require.NoError(t, err)
	group6, err := st.List(context.Background(), models.StudentFilter{GroupID: 6})
	require.NoError(t, err)
	assert.Len(t, group5, 1)
	assert.Len(t, group6, 1)
	assert.Equal(t, 2, client.listCalls)

	// Switching back to a previously observed filter is a cache hit.
	_, err = st.List(context.Background(), models.StudentFilter{GroupID: 5})
	require.NoError(t, err)
	assert.Equal(t, 2, client.listCalls)
}

func TestStudentStoreUpdateInvalidates(t *testing.T) {
	client := newMockStudentsClient()
	st := newStudentStore(client)

	created, err := st.Create(context.Background(), janeDoe())
	require.NoError(t, err)
	_, err = st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	callsAfterRead := client.listCalls

	name := "Jane Roe"
	_, err = st.Update(context.Background(), created.ID, models.UpdateStudent{Name: &name})
	require.NoError(t, err)

	after, err := st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "Jane Roe", after[0].Name)
	assert.Equal(t, callsAfterRead+1, client.listCalls, "update discards the cached list")
}

func TestStudentStoreDeleteInvalidates(t *testing.T) {
	client := newMockStudentsClient()
	st := newStudentStore(client)

	created, err := st.Create(context.Background(), janeDoe())
	require.NoError(t, err)
	_, err = st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)

	require.NoError(t, st.Delete(context.Background(), created.ID))

	after, err := st.List(context.Background(), models.StudentFilter{})
	require.NoError(t, err)
	assert.Empty(t, after)
}
