package attempt

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/idgen"
	"github.com/saulo-duarte/quizroom/internal/quiz"
	"github.com/saulo-duarte/quizroom/internal/user"
)

var (
	ErrAlreadyAttempted = errors.New("quiz already attempted")
	ErrInvalidStartTime = errors.New("missing or invalid start time")
	ErrForbidden        = errors.New("quiz not accessible to this user")
)

type Service interface {
	Start(ctx context.Context, studentUsername, quizID string) (*StartResponse, error)
	Submit(ctx context.Context, studentUsername, quizID string, req SubmitRequest) (*QuizResult, error)
	Leaderboard(ctx context.Context, role user.Role, username, quizID string) (*Leaderboard, error)
	History(ctx context.Context, studentUsername string) ([]HistoryItem, error)
}

type service struct {
	repo       ResultRepository
	quizzes    quiz.QuizRepository
	classrooms classroom.ClassroomRepository
	now        func() time.Time

	// submitMu makes the attempted check and the insert one step.
	submitMu sync.Mutex
}

// NewService uses time.Now when now is nil.
func NewService(repo ResultRepository, quizzes quiz.QuizRepository, classrooms classroom.ClassroomRepository, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, quizzes: quizzes, classrooms: classrooms, now: now}
}

// quizFor resolves the quiz and checks that the caller can see its classroom.
func (s *service) quizFor(role user.Role, username, quizID string) (*quiz.Quiz, error) {
	q, ok := s.quizzes.FindQuiz(idgen.Normalize(quizID))
	if !ok {
		return nil, quiz.ErrQuizNotFound
	}
	c, ok := s.classrooms.Get(q.ClassroomID)
	if !ok || !c.VisibleTo(role, username) {
		return nil, ErrForbidden
	}
	return q, nil
}

func (s *service) Start(ctx context.Context, studentUsername, quizID string) (*StartResponse, error) {
	q, err := s.quizFor(user.RoleStudent, studentUsername, quizID)
	if err != nil {
		return nil, err
	}

	if s.repo.HasStudentAttempted(studentUsername, q.QuizID) {
		config.WithContext(ctx).WithFields(logrus.Fields{
			"quiz_id": q.QuizID,
			"student": studentUsername,
		}).Info("Start refused, quiz already attempted")
		return nil, ErrAlreadyAttempted
	}

	return &StartResponse{
		Quiz:      quiz.PublicView(q),
		StartTime: s.now().Unix(),
	}, nil
}

func (s *service) Submit(ctx context.Context, studentUsername, quizID string, req SubmitRequest) (*QuizResult, error) {
	log := config.WithContext(ctx)

	q, err := s.quizFor(user.RoleStudent, studentUsername, quizID)
	if err != nil {
		return nil, err
	}

	end := s.now().Unix()
	if req.StartTime <= 0 || req.StartTime > end {
		return nil, ErrInvalidStartTime
	}
	taken := float64(end - req.StartTime)

	score, submitted := quiz.Score(q, req.Answers)

	s.submitMu.Lock()
	if s.repo.HasStudentAttempted(studentUsername, q.QuizID) {
		s.submitMu.Unlock()
		log.WithFields(logrus.Fields{
			"quiz_id": q.QuizID,
			"student": studentUsername,
		}).Warn("Rejected second submission")
		return nil, ErrAlreadyAttempted
	}
	res, err := s.repo.AddResult(q.QuizID, studentUsername, score, taken, submitted)
	s.submitMu.Unlock()
	if err != nil {
		log.WithError(err).Error("Failed to record quiz result")
		return nil, err
	}

	if err := s.repo.Persist(ctx); err != nil {
		log.WithError(err).Error("Failed to persist quiz results")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"quiz_id":   q.QuizID,
		"student":   studentUsername,
		"score":     score,
		"time_secs": taken,
	}).Info("Quiz submitted successfully")
	return res, nil
}

func (s *service) Leaderboard(_ context.Context, role user.Role, username, quizID string) (*Leaderboard, error) {
	q, err := s.quizFor(role, username, quizID)
	if err != nil {
		return nil, err
	}

	return &Leaderboard{
		QuizID:         q.QuizID,
		QuizTitle:      q.QuizTitle,
		TotalQuestions: len(q.Questions),
		Entries:        Rank(s.repo.FindResultsForQuiz(q.QuizID)),
	}, nil
}

func (s *service) History(ctx context.Context, studentUsername string) ([]HistoryItem, error) {
	results := s.repo.FindResultsForStudent(studentUsername)

	out := make([]HistoryItem, 0, len(results))
	for _, res := range results {
		q, ok := s.quizzes.FindQuiz(res.QuizID)
		if !ok {
			config.WithContext(ctx).WithField("quiz_id", res.QuizID).Warn("Result references a missing quiz")
			continue
		}
		out = append(out, HistoryItem{
			QuizID:         q.QuizID,
			QuizTitle:      q.QuizTitle,
			Score:          res.Score,
			TotalQuestions: len(q.Questions),
			TimeTaken:      FormatDuration(res.TimeTakenSeconds),
		})
	}
	return out, nil
}
