package classroom_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/idgen"
	"github.com/saulo-duarte/quizroom/internal/storage"
)

func newBackend(t *testing.T) storage.Backend {
	t.Helper()
	b, err := storage.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	return b
}

func newRepo(t *testing.T, backend storage.Backend) classroom.ClassroomRepository {
	t.Helper()
	repo := classroom.NewRepository(backend)
	require.NoError(t, repo.Load(context.Background()))
	return repo
}

func TestCreateClassroom(t *testing.T) {
	repo := newRepo(t, newBackend(t))

	c, err := repo.CreateClassroom("Algebra", "Math", "t1")
	require.NoError(t, err)
	assert.True(t, idgen.Valid(c.ClassCode))
	assert.Equal(t, "t1", c.TeacherUsername)
	assert.Empty(t, c.StudentUsernames)
	assert.Empty(t, c.QuizIDs)

	found, ok := repo.FindClassroom(c.ClassCode)
	require.True(t, ok)
	assert.Equal(t, "Algebra", found.ClassName)
}

func TestFindClassroomUnknownCode(t *testing.T) {
	repo := newRepo(t, newBackend(t))

	_, ok := repo.FindClassroom("ZZZZZZ")
	assert.False(t, ok)
}

func TestJoinClassroom(t *testing.T) {
	repo := newRepo(t, newBackend(t))
	c, err := repo.CreateClassroom("Algebra", "Math", "t1")
	require.NoError(t, err)

	require.NoError(t, repo.JoinClassroom(c.ClassCode, "s1"))
	assert.ErrorIs(t, repo.JoinClassroom(c.ClassCode, "s1"), classroom.ErrAlreadyJoined)
	assert.ErrorIs(t, repo.JoinClassroom("ZZZZZZ", "s1"), classroom.ErrClassroomNotFound)

	got, ok := repo.Get(c.ClassCode)
	require.True(t, ok)
	assert.Equal(t, []string{"s1"}, got.StudentUsernames)
}

func TestGetReturnsCopy(t *testing.T) {
	repo := newRepo(t, newBackend(t))
	c, err := repo.CreateClassroom("Algebra", "Math", "t1")
	require.NoError(t, err)
	require.NoError(t, repo.JoinClassroom(c.ClassCode, "s1"))

	got, _ := repo.Get(c.ClassCode)
	got.StudentUsernames[0] = "mallory"

	again, _ := repo.Get(c.ClassCode)
	assert.Equal(t, "s1", again.StudentUsernames[0])
}

func TestListByCodesSkipsUnknown(t *testing.T) {
	repo := newRepo(t, newBackend(t))
	a, err := repo.CreateClassroom("A", "Math", "t1")
	require.NoError(t, err)
	b, err := repo.CreateClassroom("B", "Art", "t1")
	require.NoError(t, err)

	list := repo.ListByCodes([]string{b.ClassCode, "ZZZZZZ", a.ClassCode})
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].ClassName)
	assert.Equal(t, "A", list[1].ClassName)
}

func TestPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	backend := newBackend(t)
	repo := newRepo(t, backend)

	c, err := repo.CreateClassroom("Algebra", "Math", "t1")
	require.NoError(t, err)
	require.NoError(t, repo.JoinClassroom(c.ClassCode, "s1"))
	require.NoError(t, repo.AttachQuiz(c.ClassCode, "Q00001"))
	require.NoError(t, repo.Persist(ctx))

	reloaded := newRepo(t, backend)
	got, ok := reloaded.Get(c.ClassCode)
	require.True(t, ok)
	assert.Equal(t, classroom.Classroom{
		ClassName:        "Algebra",
		Subject:          "Math",
		ClassCode:        c.ClassCode,
		TeacherUsername:  "t1",
		StudentUsernames: []string{"s1"},
		QuizIDs:          []string{"Q00001"},
	}, got)
}
