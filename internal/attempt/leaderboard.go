package attempt

import (
	"container/heap"
	"fmt"
)

type Entry struct {
	Rank            int    `json:"rank"`
	StudentUsername string `json:"studentUsername"`
	Score           int    `json:"score"`
	TimeTaken       string `json:"timeTaken"`
}

type ranked struct {
	result *QuizResult
	seq    int
}

// resultHeap pops the highest score first, then the lowest time, then the
// earliest input position.
type resultHeap []ranked

func (h resultHeap) Len() int { return len(h) }

func (h resultHeap) Less(i, j int) bool {
	a, b := h[i].result, h[j].result
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.TimeTakenSeconds != b.TimeTakenSeconds {
		return a.TimeTakenSeconds < b.TimeTakenSeconds
	}
	return h[i].seq < h[j].seq
}

func (h resultHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x any) { *h = append(*h, x.(ranked)) }

func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Rank orders results into leaderboard entries with ranks starting at 1.
func Rank(results []*QuizResult) []Entry {
	h := make(resultHeap, 0, len(results))
	for i, r := range results {
		h = append(h, ranked{result: r, seq: i})
	}
	heap.Init(&h)

	entries := make([]Entry, 0, len(results))
	for h.Len() > 0 {
		top := heap.Pop(&h).(ranked)
		entries = append(entries, Entry{
			Rank:            len(entries) + 1,
			StudentUsername: top.result.StudentUsername,
			Score:           top.result.Score,
			TimeTaken:       FormatDuration(top.result.TimeTakenSeconds),
		})
	}
	return entries
}

// FormatDuration truncates to whole seconds and renders m:ss.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	if total < 0 {
		total = 0
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
