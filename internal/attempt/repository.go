package attempt

import (
	"context"
	"sync"

	"github.com/saulo-duarte/quizroom/internal/hashindex"
	"github.com/saulo-duarte/quizroom/internal/idgen"
	"github.com/saulo-duarte/quizroom/internal/storage"
)

// ResultRepository keys results by result id. Lookups by quiz or student
// scan the whole table.
type ResultRepository interface {
	Load(ctx context.Context) error
	AddResult(quizID, studentUsername string, score int, timeTakenSeconds float64, answers []int) (*QuizResult, error)
	FindResultsForQuiz(quizID string) []*QuizResult
	FindResultsForStudent(studentUsername string) []*QuizResult
	HasStudentAttempted(studentUsername, quizID string) bool
	Persist(ctx context.Context) error
}

type resultRepository struct {
	backend storage.Backend

	mu      sync.RWMutex
	results *hashindex.Index[*QuizResult]

	writeMu sync.Mutex
}

func NewRepository(backend storage.Backend) ResultRepository {
	return &resultRepository{
		backend: backend,
		results: hashindex.New[*QuizResult](hashindex.DefaultBuckets),
	}
}

func (r *resultRepository) Load(ctx context.Context) error {
	rows, err := storage.LoadTable[*QuizResult](ctx, r.backend, storage.QuizResultsTable, storage.Bootstrap)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.results = hashindex.New[*QuizResult](hashindex.DefaultBuckets)
	for _, res := range rows {
		r.results.Put(res.ResultID, res)
	}
	return nil
}

// AddResult does not check for an earlier attempt; callers must.
func (r *resultRepository) AddResult(quizID, studentUsername string, score int, timeTakenSeconds float64, answers []int) (*QuizResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := idgen.GenerateUnique(r.results.Contains)
	if err != nil {
		return nil, err
	}

	res := &QuizResult{
		ResultID:         id,
		QuizID:           quizID,
		StudentUsername:  studentUsername,
		Score:            score,
		TimeTakenSeconds: timeTakenSeconds,
		SubmittedAnswers: append([]int{}, answers...),
	}
	r.results.Put(id, res)
	return res, nil
}

func (r *resultRepository) filter(match func(*QuizResult) bool) []*QuizResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*QuizResult
	r.results.Each(func(_ string, res *QuizResult) bool {
		if match(res) {
			out = append(out, res)
		}
		return true
	})
	return out
}

func (r *resultRepository) FindResultsForQuiz(quizID string) []*QuizResult {
	return r.filter(func(res *QuizResult) bool { return res.QuizID == quizID })
}

func (r *resultRepository) FindResultsForStudent(studentUsername string) []*QuizResult {
	return r.filter(func(res *QuizResult) bool { return res.StudentUsername == studentUsername })
}

func (r *resultRepository) HasStudentAttempted(studentUsername, quizID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	found := false
	r.results.Each(func(_ string, res *QuizResult) bool {
		if res.QuizID == quizID && res.StudentUsername == studentUsername {
			found = true
			return false
		}
		return true
	})
	return found
}

func (r *resultRepository) Persist(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	r.mu.RLock()
	rows := r.results.Values()
	r.mu.RUnlock()

	return storage.SaveTable(ctx, r.backend, storage.QuizResultsTable, rows)
}
