package user

import (
	"context"
	"errors"
	"sync"

	"github.com/saulo-duarte/quizroom/internal/hashindex"
	"github.com/saulo-duarte/quizroom/internal/storage"
)

const (
	userBuckets  = 100
	emailBuckets = 2 * userBuckets
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	Load(ctx context.Context) error
	CreateStudent(name, username, email, password string) *Student
	CreateTeacher(name, username, email, password string) *Teacher
	FindStudent(username string) (*Student, bool)
	FindTeacher(username string) (*Teacher, bool)
	FindUsernameByEmail(email string) (string, bool)
	Get(role Role, username string) (Record, bool)
	AppendClassroom(role Role, username, classCode string) error
	UpdatePassword(role Role, username, password string) error
	PersistStudents(ctx context.Context) error
	PersistTeachers(ctx context.Context) error
}

type userRepository struct {
	backend storage.Backend
	mode    storage.Mode

	mu       sync.RWMutex
	students *hashindex.Index[*Student]
	teachers *hashindex.Index[*Teacher]
	emails   *hashindex.Index[string]

	studentsWrite sync.Mutex
	teachersWrite sync.Mutex
}

// NewRepository returns an empty repository. The student and teacher tables
// are required at Load time unless mode is storage.Bootstrap.
func NewRepository(backend storage.Backend, mode storage.Mode) UserRepository {
	return &userRepository{
		backend:  backend,
		mode:     mode,
		students: hashindex.New[*Student](userBuckets),
		teachers: hashindex.New[*Teacher](userBuckets),
		emails:   hashindex.New[string](emailBuckets),
	}
}

func (r *userRepository) Load(ctx context.Context) error {
	students, err := storage.LoadTable[*Student](ctx, r.backend, storage.StudentsTable, r.mode)
	if err != nil {
		return err
	}
	teachers, err := storage.LoadTable[*Teacher](ctx, r.backend, storage.TeachersTable, r.mode)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.students = hashindex.New[*Student](userBuckets)
	r.teachers = hashindex.New[*Teacher](userBuckets)
	r.emails = hashindex.New[string](emailBuckets)

	for _, s := range students {
		if s.ClassroomIDs == nil {
			s.ClassroomIDs = []string{}
		}
		r.students.Put(s.Username, s)
		r.emails.Put(normalizeEmail(s.Email), s.Username)
	}
	for _, t := range teachers {
		if t.ClassroomIDs == nil {
			t.ClassroomIDs = []string{}
		}
		r.teachers.Put(t.Username, t)
		r.emails.Put(normalizeEmail(t.Email), t.Username)
	}
	return nil
}

// CreateStudent never fails; email and username uniqueness are checked by
// the caller.
func (r *userRepository) CreateStudent(name, username, email, password string) *Student {
	s := &Student{Record{
		Name:         name,
		Username:     username,
		Email:        email,
		Password:     password,
		ClassroomIDs: []string{},
	}}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.students.Put(username, s)
	r.emails.Put(normalizeEmail(email), username)
	return s
}

func (r *userRepository) CreateTeacher(name, username, email, password string) *Teacher {
	t := &Teacher{Record{
		Name:         name,
		Username:     username,
		Email:        email,
		Password:     password,
		ClassroomIDs: []string{},
	}}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.teachers.Put(username, t)
	r.emails.Put(normalizeEmail(email), username)
	return t
}

func (r *userRepository) FindStudent(username string) (*Student, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.students.Get(username)
}

func (r *userRepository) FindTeacher(username string) (*Teacher, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.teachers.Get(username)
}

// FindUsernameByEmail matches emails case-insensitively; records keep the
// email as stored.
func (r *userRepository) FindUsernameByEmail(email string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.emails.Get(normalizeEmail(email))
}

// lookup must be called with r.mu held.
func (r *userRepository) lookup(role Role, username string) (*Record, bool) {
	switch role {
	case RoleStudent:
		if s, ok := r.students.Get(username); ok {
			return &s.Record, true
		}
	case RoleTeacher:
		if t, ok := r.teachers.Get(username); ok {
			return &t.Record, true
		}
	}
	return nil, false
}

// Get returns a copy of the record, safe to read without the lock.
func (r *userRepository) Get(role Role, username string) (Record, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.lookup(role, username)
	if !ok {
		return Record{}, false
	}
	return rec.clone(), true
}

// AppendClassroom records classCode on the user. Codes already present are
// not appended twice.
func (r *userRepository) AppendClassroom(role Role, username, classCode string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.lookup(role, username)
	if !ok {
		return ErrUserNotFound
	}
	if !rec.hasClassroom(classCode) {
		rec.ClassroomIDs = append(rec.ClassroomIDs, classCode)
	}
	return nil
}

func (r *userRepository) UpdatePassword(role Role, username, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.lookup(role, username)
	if !ok {
		return ErrUserNotFound
	}
	rec.Password = password
	return nil
}

func (r *userRepository) PersistStudents(ctx context.Context) error {
	r.studentsWrite.Lock()
	defer r.studentsWrite.Unlock()

	r.mu.RLock()
	rows := make([]Student, 0, r.students.Len())
	r.students.Each(func(_ string, s *Student) bool {
		rows = append(rows, Student{s.clone()})
		return true
	})
	r.mu.RUnlock()

	return storage.SaveTable(ctx, r.backend, storage.StudentsTable, rows)
}

func (r *userRepository) PersistTeachers(ctx context.Context) error {
	r.teachersWrite.Lock()
	defer r.teachersWrite.Unlock()

	r.mu.RLock()
	rows := make([]Teacher, 0, r.teachers.Len())
	r.teachers.Each(func(_ string, t *Teacher) bool {
		rows = append(rows, Teacher{t.clone()})
		return true
	})
	r.mu.RUnlock()

	return storage.SaveTable(ctx, r.backend, storage.TeachersTable, rows)
}
