package classroom

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/quizroom/internal/config"
	"github.com/saulo-duarte/quizroom/internal/idgen"
	"github.com/saulo-duarte/quizroom/internal/user"
)

var (
	ErrInvalidInput = errors.New("class name and subject are required")
	ErrInvalidCode  = errors.New("class code must be 6 characters of 0-9 or A-Z")
	ErrForbidden    = errors.New("classroom not accessible to this user")
)

type Service interface {
	Create(ctx context.Context, teacherUsername string, req CreateClassroomRequest) (*Classroom, error)
	Join(ctx context.Context, studentUsername, code string) (*Classroom, error)
	Get(ctx context.Context, role user.Role, username, code string) (*Classroom, error)
	ListForUser(ctx context.Context, role user.Role, username string) ([]Classroom, error)
}

type service struct {
	repo  ClassroomRepository
	users user.UserRepository
}

func NewService(repo ClassroomRepository, users user.UserRepository) Service {
	return &service{repo: repo, users: users}
}

func (s *service) Create(ctx context.Context, teacherUsername string, req CreateClassroomRequest) (*Classroom, error) {
	log := config.WithContext(ctx)

	name := strings.TrimSpace(req.ClassName)
	subject := strings.TrimSpace(req.Subject)
	if name == "" || subject == "" {
		return nil, ErrInvalidInput
	}

	if _, ok := s.users.FindTeacher(teacherUsername); !ok {
		log.WithField("username", teacherUsername).Warn("Classroom creation by unknown teacher")
		return nil, user.ErrUserNotFound
	}

	c, err := s.repo.CreateClassroom(name, subject, teacherUsername)
	if err != nil {
		log.WithError(err).Error("Failed to create classroom")
		return nil, err
	}

	if err := s.users.AppendClassroom(user.RoleTeacher, teacherUsername, c.ClassCode); err != nil {
		log.WithError(err).Error("Failed to link classroom to teacher")
		return nil, err
	}

	if err := s.repo.Persist(ctx); err != nil {
		log.WithError(err).Error("Failed to persist classrooms")
		return nil, err
	}
	if err := s.users.PersistTeachers(ctx); err != nil {
		log.WithError(err).Error("Failed to persist teachers")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"class_code": c.ClassCode,
		"teacher":    teacherUsername,
	}).Info("Classroom created successfully")

	out, _ := s.repo.Get(c.ClassCode)
	return &out, nil
}

func (s *service) Join(ctx context.Context, studentUsername, code string) (*Classroom, error) {
	log := config.WithContext(ctx)

	code = idgen.Normalize(code)
	if !idgen.Valid(code) {
		return nil, ErrInvalidCode
	}

	if _, ok := s.repo.FindClassroom(code); !ok {
		log.WithField("class_code", code).Warn("Join attempt for unknown classroom")
		return nil, ErrClassroomNotFound
	}
	if _, ok := s.users.FindStudent(studentUsername); !ok {
		return nil, user.ErrUserNotFound
	}

	if err := s.repo.JoinClassroom(code, studentUsername); err != nil {
		if !errors.Is(err, ErrAlreadyJoined) {
			log.WithError(err).Error("Failed to join classroom")
		}
		return nil, err
	}

	if err := s.users.AppendClassroom(user.RoleStudent, studentUsername, code); err != nil {
		log.WithError(err).Error("Failed to link classroom to student")
		return nil, err
	}

	if err := s.repo.Persist(ctx); err != nil {
		log.WithError(err).Error("Failed to persist classrooms")
		return nil, err
	}
	if err := s.users.PersistStudents(ctx); err != nil {
		log.WithError(err).Error("Failed to persist students")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"class_code": code,
		"student":    studentUsername,
	}).Info("Student joined classroom successfully")

	out, _ := s.repo.Get(code)
	return &out, nil
}

func (s *service) Get(_ context.Context, role user.Role, username, code string) (*Classroom, error) {
	c, ok := s.repo.Get(idgen.Normalize(code))
	if !ok {
		return nil, ErrClassroomNotFound
	}

	if !c.VisibleTo(role, username) {
		return nil, ErrForbidden
	}
	return &c, nil
}

func (s *service) ListForUser(_ context.Context, role user.Role, username string) ([]Classroom, error) {
	rec, ok := s.users.Get(role, username)
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return s.repo.ListByCodes(rec.ClassroomIDs), nil
}
