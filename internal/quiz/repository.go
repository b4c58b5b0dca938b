package quiz

import (
	"context"
	"errors"
	"sync"

	"github.com/saulo-duarte/quizroom/internal/hashindex"
	"github.com/saulo-duarte/quizroom/internal/idgen"
	"github.com/saulo-duarte/quizroom/internal/storage"
)

const quizBuckets = 50

var ErrQuizNotFound = errors.New("quiz not found")

type QuizRepository interface {
	Load(ctx context.Context) error
	CreateQuiz(title, classroomID string, timeLimitMinutes int, questions []Question) (*Quiz, error)
	FindQuiz(id string) (*Quiz, bool)
	Persist(ctx context.Context) error
}

type quizRepository struct {
	backend storage.Backend

	mu      sync.RWMutex
	quizzes *hashindex.Index[*Quiz]

	writeMu sync.Mutex
}

func NewRepository(backend storage.Backend) QuizRepository {
	return &quizRepository{
		backend: backend,
		quizzes: hashindex.New[*Quiz](quizBuckets),
	}
}

func (r *quizRepository) Load(ctx context.Context) error {
	rows, err := storage.LoadTable[*Quiz](ctx, r.backend, storage.QuizzesTable, storage.Bootstrap)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.quizzes = hashindex.New[*Quiz](quizBuckets)
	for _, q := range rows {
		r.quizzes.Put(q.QuizID, q)
	}
	return nil
}

// CreateQuiz stores the quiz as given. Quizzes are never modified after
// creation, so the returned pointer is safe to share.
func (r *quizRepository) CreateQuiz(title, classroomID string, timeLimitMinutes int, questions []Question) (*Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := idgen.GenerateUnique(r.quizzes.Contains)
	if err != nil {
		return nil, err
	}

	q := &Quiz{
		QuizID:           id,
		QuizTitle:        title,
		ClassroomID:      classroomID,
		TimeLimitMinutes: timeLimitMinutes,
		Questions:        append([]Question{}, questions...),
	}
	r.quizzes.Put(id, q)
	return q, nil
}

func (r *quizRepository) FindQuiz(id string) (*Quiz, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.quizzes.Get(id)
}

func (r *quizRepository) Persist(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.RLock()
	rows := r.quizzes.Values()
	r.mu.RUnlock()

	return storage.SaveTable(ctx, r.backend, storage.QuizzesTable, rows)
}
