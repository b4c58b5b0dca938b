package attempt_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/quizroom/internal/attempt"
	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/quiz"
	"github.com/saulo-duarte/quizroom/internal/user"
)

type fixture struct {
	svc    attempt.Service
	repo   attempt.ResultRepository
	quizID string
	clock  time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	backend := newBackend(t)

	classrooms := classroom.NewRepository(backend)
	require.NoError(t, classrooms.Load(ctx))
	c, err := classrooms.CreateClassroom("Algebra", "Math", "t1")
	require.NoError(t, err)
	for _, s := range []string{"s1", "s2"} {
		require.NoError(t, classrooms.JoinClassroom(c.ClassCode, s))
	}

	quizzes := quiz.NewRepository(backend)
	require.NoError(t, quizzes.Load(ctx))
	opts := []string{"a", "b", "c", "d"}
	q, err := quizzes.CreateQuiz("Fractions", c.ClassCode, 5, []quiz.Question{
		{QuestionText: "1", Options: opts, CorrectAnswerIndex: 1},
		{QuestionText: "2", Options: opts, CorrectAnswerIndex: 0},
		{QuestionText: "3", Options: opts, CorrectAnswerIndex: 2},
	})
	require.NoError(t, err)

	repo := attempt.NewRepository(backend)
	require.NoError(t, repo.Load(ctx))

	f := &fixture{repo: repo, quizID: q.QuizID, clock: time.Unix(1_700_000_000, 0)}
	f.svc = attempt.NewService(repo, quizzes, classrooms, func() time.Time { return f.clock })
	return f
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	start, err := f.svc.Start(ctx, "s1", f.quizID)
	require.NoError(t, err)
	assert.Len(t, start.Quiz.Questions, 3)

	f.clock = f.clock.Add(90 * time.Second)
	res, err := f.svc.Submit(ctx, "s1", f.quizID, attempt.SubmitRequest{
		StartTime: start.StartTime,
		Answers:   map[int]int{0: 1, 1: 1, 2: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, []int{1, 1, 2}, res.SubmittedAnswers)
	assert.Equal(t, 90.0, res.TimeTakenSeconds)

	t.Run("SecondSubmissionRejected", func(t *testing.T) {
		_, err := f.svc.Submit(ctx, "s1", f.quizID, attempt.SubmitRequest{
			StartTime: start.StartTime,
			Answers:   map[int]int{0: 1, 1: 0, 2: 2},
		})
		assert.ErrorIs(t, err, attempt.ErrAlreadyAttempted)
		assert.Len(t, f.repo.FindResultsForQuiz(f.quizID), 1)
	})

	t.Run("StartAfterAttempt", func(t *testing.T) {
		_, err := f.svc.Start(ctx, "s1", f.quizID)
		assert.ErrorIs(t, err, attempt.ErrAlreadyAttempted)
	})

	t.Run("MissingStartTime", func(t *testing.T) {
		_, err := f.svc.Submit(ctx, "s2", f.quizID, attempt.SubmitRequest{})
		assert.ErrorIs(t, err, attempt.ErrInvalidStartTime)
	})

	t.Run("NotEnrolled", func(t *testing.T) {
		_, err := f.svc.Start(ctx, "s9", f.quizID)
		assert.ErrorIs(t, err, attempt.ErrForbidden)
	})

	t.Run("UnknownQuiz", func(t *testing.T) {
		_, err := f.svc.Start(ctx, "s1", "ZZZZZZ")
		assert.ErrorIs(t, err, quiz.ErrQuizNotFound)
	})
}

func TestConcurrentSubmitRecordsOneResult(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	startTime := f.clock.Unix() - 30

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Submit(ctx, "s2", f.quizID, attempt.SubmitRequest{StartTime: startTime})
		}(i)
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, attempt.ErrAlreadyAttempted)
	}
	assert.Equal(t, 1, ok)
	assert.Len(t, f.repo.FindResultsForQuiz(f.quizID), 1)
}

func TestLeaderboardAndHistory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	startTime := f.clock.Unix()

	f.clock = f.clock.Add(50 * time.Second)
	_, err := f.svc.Submit(ctx, "s1", f.quizID, attempt.SubmitRequest{StartTime: startTime, Answers: map[int]int{0: 1, 1: 0}})
	require.NoError(t, err)

	f.clock = f.clock.Add(75 * time.Second)
	_, err = f.svc.Submit(ctx, "s2", f.quizID, attempt.SubmitRequest{StartTime: startTime, Answers: map[int]int{0: 1, 1: 0, 2: 2}})
	require.NoError(t, err)

	lb, err := f.svc.Leaderboard(ctx, user.RoleTeacher, "t1", f.quizID)
	require.NoError(t, err)
	assert.Equal(t, "Fractions", lb.QuizTitle)
	assert.Equal(t, 3, lb.TotalQuestions)
	assert.Equal(t, []attempt.Entry{
		{Rank: 1, StudentUsername: "s2", Score: 3, TimeTaken: "2:05"},
		{Rank: 2, StudentUsername: "s1", Score: 2, TimeTaken: "0:50"},
	}, lb.Entries)

	_, err = f.svc.Leaderboard(ctx, user.RoleTeacher, "t2", f.quizID)
	assert.ErrorIs(t, err, attempt.ErrForbidden)

	history, err := f.svc.History(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, attempt.HistoryItem{
		QuizID: f.quizID, QuizTitle: "Fractions", Score: 2, TotalQuestions: 3, TimeTaken: "0:50",
	}, history[0])
}
