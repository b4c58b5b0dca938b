package container_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizroom/internal/attempt"
	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/container"
	"github.com/saulo-duarte/quizroom/internal/quiz"
	"github.com/saulo-duarte/quizroom/internal/storage"
	"github.com/saulo-duarte/quizroom/internal/user"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataDir:       t.TempDir(),
		StorageDriver: "file",
		Bootstrap:     true,
		JWTSecret:     "test-secret",
		SessionTTL:    time.Hour,
	}
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func signup(t *testing.T, h http.Handler, username, email string, role user.Role) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/auth/signup", "", user.SignupRequest{
		Name: username, Username: username, Email: email, Password: "pw", Role: role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[user.SessionResponse](t, rec).Token
}

func TestClassroomQuizScenario(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	c, err := container.New(ctx, cfg)
	require.NoError(t, err)
	h := c.Router()

	teacher := signup(t, h, "t1", "t1@x.com", user.RoleTeacher)

	rec := do(t, h, http.MethodPost, "/classrooms", teacher, classroom.CreateClassroomRequest{
		ClassName: "Algebra", Subject: "Math",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	code := decode[classroom.Classroom](t, rec).ClassCode
	require.Len(t, code, 6)

	opts := []string{"a", "b", "c", "d"}
	rec = do(t, h, http.MethodPost, "/quizzes", teacher, quiz.CreateQuizRequest{
		QuizTitle:        "Quiz1",
		ClassroomID:      code,
		TimeLimitMinutes: 5,
		Questions: []quiz.Question{
			{QuestionText: "first", Options: opts, CorrectAnswerIndex: 0},
			{QuestionText: "second", Options: opts, CorrectAnswerIndex: 3},
		},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	quizID := decode[quiz.Quiz](t, rec).QuizID

	student := signup(t, h, "s1", "s1@x.com", user.RoleStudent)

	rec = do(t, h, http.MethodPost, "/classrooms/join", student, classroom.JoinClassroomRequest{ClassCode: code})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/classrooms/"+code+"/quizzes", student, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, decode[[]quiz.Summary](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/attempts/"+quizID+"/start", student, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	start := decode[attempt.StartResponse](t, rec)

	submit := attempt.SubmitRequest{StartTime: start.StartTime, Answers: map[int]int{0: 0, 1: 1}}
	rec = do(t, h, http.MethodPost, "/attempts/"+quizID, student, submit)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, decode[attempt.QuizResult](t, rec).Score)

	rec = do(t, h, http.MethodPost, "/attempts/"+quizID, student, submit)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/leaderboards/"+quizID, teacher, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	lb := decode[attempt.Leaderboard](t, rec)
	require.Len(t, lb.Entries, 1)
	assert.Equal(t, 1, lb.Entries[0].Rank)
	assert.Equal(t, "s1", lb.Entries[0].StudentUsername)
	assert.Equal(t, 1, lb.Entries[0].Score)

	t.Run("RolesEnforced", func(t *testing.T) {
		rec := do(t, h, http.MethodPost, "/classrooms", student, classroom.CreateClassroomRequest{ClassName: "X", Subject: "Y"})
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = do(t, h, http.MethodGet, "/attempts/me", teacher, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = do(t, h, http.MethodGet, "/classrooms", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("StateSurvivesRestart", func(t *testing.T) {
		require.NoError(t, c.Close(ctx))

		cfg.Bootstrap = false
		reopened, err := container.New(ctx, cfg)
		require.NoError(t, err)
		defer reopened.Close(ctx)

		_, ok := reopened.ClassroomContainer.Repo.FindClassroom(code)
		assert.True(t, ok)
		assert.True(t, reopened.AttemptContainer.Repo.HasStudentAttempted("s1", quizID))
		username, ok := reopened.UserContainer.Repo.FindUsernameByEmail("s1@x.com")
		require.True(t, ok)
		assert.Equal(t, "s1", username)
	})
}

func TestRequiredTablesMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Bootstrap = false

	_, err := container.New(context.Background(), cfg)
	assert.ErrorIs(t, err, storage.ErrTableNotFound)
}

func TestUnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.StorageDriver = "floppy"

	_, err := container.New(context.Background(), cfg)
	assert.ErrorIs(t, err, storage.ErrUnknownDriver)
}
