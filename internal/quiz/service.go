package quiz

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizroom/internal/classroom"
	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/idgen"
	"github.com/saulo-duarte/quizroom/internal/user"
)

var ErrForbidden = errors.New("quiz not accessible to this user")

type QuizService interface {
	Create(ctx context.Context, teacherUsername string, req CreateQuizRequest) (*Quiz, error)
	Get(ctx context.Context, id string) (*Quiz, error)
	GetOwned(ctx context.Context, teacherUsername, id string) (*Quiz, error)
	GetForStudent(ctx context.Context, studentUsername, id string) (*PublicQuiz, error)
	ListForClassroom(ctx context.Context, role user.Role, username, code string) ([]Summary, error)
}

type quizService struct {
	repo       QuizRepository
	classrooms classroom.ClassroomRepository
}

func NewService(repo QuizRepository, classrooms classroom.ClassroomRepository) QuizService {
	return &quizService{repo: repo, classrooms: classrooms}
}

func (s *quizService) Create(ctx context.Context, teacherUsername string, req CreateQuizRequest) (*Quiz, error) {
	log := config.WithContext(ctx)

	req.QuizTitle = strings.TrimSpace(req.QuizTitle)
	req.ClassroomID = idgen.Normalize(req.ClassroomID)
	if err := Validate(req); err != nil {
		log.WithError(err).Warn("Rejected quiz creation")
		return nil, err
	}

	c, ok := s.classrooms.Get(req.ClassroomID)
	if !ok {
		return nil, classroom.ErrClassroomNotFound
	}
	if c.TeacherUsername != teacherUsername {
		log.WithFields(logrus.Fields{
			"class_code": req.ClassroomID,
			"teacher":    teacherUsername,
		}).Warn("Quiz creation for a classroom owned by someone else")
		return nil, ErrForbidden
	}

	q, err := s.repo.CreateQuiz(req.QuizTitle, req.ClassroomID, req.TimeLimitMinutes, req.Questions)
	if err != nil {
		log.WithError(err).Error("Failed to create quiz")
		return nil, err
	}

	if err := s.classrooms.AttachQuiz(req.ClassroomID, q.QuizID); err != nil {
		log.WithError(err).Error("Failed to attach quiz to classroom")
		return nil, err
	}

	if err := s.repo.Persist(ctx); err != nil {
		log.WithError(err).Error("Failed to persist quizzes")
		return nil, err
	}
	if err := s.classrooms.Persist(ctx); err != nil {
		log.WithError(err).Error("Failed to persist classrooms")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"quiz_id":    q.QuizID,
		"class_code": q.ClassroomID,
		"questions":  len(q.Questions),
	}).Info("Quiz created successfully")
	return q, nil
}

func (s *quizService) Get(_ context.Context, id string) (*Quiz, error) {
	q, ok := s.repo.FindQuiz(idgen.Normalize(id))
	if !ok {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

func (s *quizService) GetOwned(ctx context.Context, teacherUsername, id string) (*Quiz, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, ok := s.classrooms.Get(q.ClassroomID)
	if !ok || c.TeacherUsername != teacherUsername {
		return nil, ErrForbidden
	}
	return q, nil
}

func (s *quizService) GetForStudent(ctx context.Context, studentUsername, id string) (*PublicQuiz, error) {
	q, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c, ok := s.classrooms.Get(q.ClassroomID)
	if !ok || !c.HasStudent(studentUsername) {
		return nil, ErrForbidden
	}
	view := PublicView(q)
	return &view, nil
}

func (s *quizService) ListForClassroom(ctx context.Context, role user.Role, username, code string) ([]Summary, error) {
	c, ok := s.classrooms.Get(idgen.Normalize(code))
	if !ok {
		return nil, classroom.ErrClassroomNotFound
	}
	if !c.VisibleTo(role, username) {
		return nil, ErrForbidden
	}

	out := make([]Summary, 0, len(c.QuizIDs))
	for _, id := range c.QuizIDs {
		q, ok := s.repo.FindQuiz(id)
		if !ok {
			config.WithContext(ctx).WithField("quiz_id", id).Warn("Classroom references a missing quiz")
			continue
		}
		out = append(out, q.Summary())
	}
	return out, nil
}
