package classroom_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/storage"
	"github.com/saulo-duarte/quizroom/internal/user"
)

type fixture struct {
	users user.UserRepository
	repo  classroom.ClassroomRepository
	svc   classroom.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	backend := newBackend(t)

	users := user.NewRepository(backend, storage.Bootstrap)
	require.NoError(t, users.Load(ctx))
	users.CreateTeacher("Teacher", "t1", "t1@x.com", "pw")
	users.CreateStudent("Student", "s1", "s1@x.com", "pw")

	repo := newRepo(t, backend)
	return fixture{users: users, repo: repo, svc: classroom.NewService(repo, users)}
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.svc.Create(ctx, "t1", classroom.CreateClassroomRequest{ClassName: "Algebra", Subject: "Math"})
	require.NoError(t, err)

	rec, ok := f.users.Get(user.RoleTeacher, "t1")
	require.True(t, ok)
	assert.Equal(t, []string{c.ClassCode}, rec.ClassroomIDs)

	t.Run("MissingFields", func(t *testing.T) {
		_, err := f.svc.Create(ctx, "t1", classroom.CreateClassroomRequest{ClassName: " "})
		assert.ErrorIs(t, err, classroom.ErrInvalidInput)
	})

	t.Run("UnknownTeacher", func(t *testing.T) {
		_, err := f.svc.Create(ctx, "ghost", classroom.CreateClassroomRequest{ClassName: "A", Subject: "B"})
		assert.ErrorIs(t, err, user.ErrUserNotFound)
	})
}

func TestServiceJoin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	c, err := f.svc.Create(ctx, "t1", classroom.CreateClassroomRequest{ClassName: "Algebra", Subject: "Math"})
	require.NoError(t, err)

	joined, err := f.svc.Join(ctx, "s1", c.ClassCode)
	require.NoError(t, err)
	assert.Equal(t, []string{"s1"}, joined.StudentUsernames)

	rec, _ := f.users.Get(user.RoleStudent, "s1")
	assert.Equal(t, []string{c.ClassCode}, rec.ClassroomIDs)

	_, err = f.svc.Join(ctx, "s1", c.ClassCode)
	assert.ErrorIs(t, err, classroom.ErrAlreadyJoined)

	_, err = f.svc.Join(ctx, "s1", "ZZZZZZ")
	assert.ErrorIs(t, err, classroom.ErrClassroomNotFound)

	_, err = f.svc.Join(ctx, "s1", "bad")
	assert.ErrorIs(t, err, classroom.ErrInvalidCode)
}

func TestServiceGetAccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.users.CreateStudent("Outsider", "s2", "s2@x.com", "pw")

	c, err := f.svc.Create(ctx, "t1", classroom.CreateClassroomRequest{ClassName: "Algebra", Subject: "Math"})
	require.NoError(t, err)
	_, err = f.svc.Join(ctx, "s1", c.ClassCode)
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, user.RoleTeacher, "t1", c.ClassCode)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, user.RoleStudent, "s1", c.ClassCode)
	assert.NoError(t, err)
	_, err = f.svc.Get(ctx, user.RoleStudent, "s2", c.ClassCode)
	assert.ErrorIs(t, err, classroom.ErrForbidden)

	list, err := f.svc.ListForUser(ctx, user.RoleStudent, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ClassCode, list[0].ClassCode)
}
