package classroom

import (
	"context"
	"errors"
	"sync"

	"github.com/saulo-duarte/quizroom/internal/hashindex"
	"github.com/saulo-duarte/quizroom/internal/idgen"
	"github.com/saulo-duarte/quizroom/internal/storage"
)

const classroomBuckets = 50

var (
	ErrClassroomNotFound = errors.New("classroom not found")
	ErrAlreadyJoined     = errors.New("student already joined this classroom")
)

type ClassroomRepository interface {
	Load(ctx context.Context) error
	CreateClassroom(name, subject, ownerUsername string) (*Classroom, error)
	FindClassroom(code string) (*Classroom, bool)
	Get(code string) (Classroom, bool)
	JoinClassroom(code, studentUsername string) error
	AttachQuiz(code, quizID string) error
	ListByCodes(codes []string) []Classroom
	Persist(ctx context.Context) error
}

type classroomRepository struct {
	backend storage.Backend

	mu         sync.RWMutex
	classrooms *hashindex.Index[*Classroom]

	writeMu sync.Mutex
}

func NewRepository(backend storage.Backend) ClassroomRepository {
	return &classroomRepository{
		backend:    backend,
		classrooms: hashindex.New[*Classroom](classroomBuckets),
	}
}

func (r *classroomRepository) Load(ctx context.Context) error {
	rows, err := storage.LoadTable[*Classroom](ctx, r.backend, storage.ClassroomsTable, storage.Bootstrap)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.classrooms = hashindex.New[*Classroom](classroomBuckets)
	for _, c := range rows {
		if c.StudentUsernames == nil {
			c.StudentUsernames = []string{}
		}
		if c.QuizIDs == nil {
			c.QuizIDs = []string{}
		}
		r.classrooms.Put(c.ClassCode, c)
	}
	return nil
}

func (r *classroomRepository) CreateClassroom(name, subject, ownerUsername string) (*Classroom, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	code, err := idgen.GenerateUnique(r.classrooms.Contains)
	if err != nil {
		return nil, err
	}

	c := &Classroom{
		ClassName:        name,
		Subject:          subject,
		ClassCode:        code,
		TeacherUsername:  ownerUsername,
		StudentUsernames: []string{},
		QuizIDs:          []string{},
	}
	r.classrooms.Put(code, c)
	return c, nil
}

func (r *classroomRepository) FindClassroom(code string) (*Classroom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.classrooms.Get(code)
}

func (r *classroomRepository) Get(code string) (Classroom, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.classrooms.Get(code)
	if !ok {
		return Classroom{}, false
	}
	return c.clone(), true
}

// JoinClassroom scans the member list, so it costs O(class size).
func (r *classroomRepository) JoinClassroom(code, studentUsername string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.classrooms.Get(code)
	if !ok {
		return ErrClassroomNotFound
	}
	if c.HasStudent(studentUsername) {
		return ErrAlreadyJoined
	}
	c.StudentUsernames = append(c.StudentUsernames, studentUsername)
	return nil
}

func (r *classroomRepository) AttachQuiz(code, quizID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.classrooms.Get(code)
	if !ok {
		return ErrClassroomNotFound
	}
	c.QuizIDs = append(c.QuizIDs, quizID)
	return nil
}

// ListByCodes resolves each code in order, skipping codes with no classroom.
func (r *classroomRepository) ListByCodes(codes []string) []Classroom {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Classroom, 0, len(codes))
	for _, code := range codes {
		if c, ok := r.classrooms.Get(code); ok {
			out = append(out, c.clone())
		}
	}
	return out
}

func (r *classroomRepository) Persist(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.RLock()
	rows := make([]Classroom, 0, r.classrooms.Len())
	r.classrooms.Each(func(_ string, c *Classroom) bool {
		rows = append(rows, c.clone())
		return true
	})
	r.mu.RUnlock()

	return storage.SaveTable(ctx, r.backend, storage.ClassroomsTable, rows)
}
