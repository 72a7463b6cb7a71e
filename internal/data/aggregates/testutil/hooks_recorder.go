package testutil

import (
	"sync"
	"time"

	"github.com/yungbote/coursebridge-backend/internal/data/aggregates"
)

// HooksRecorder captures aggregate hook signals. It is safe for concurrent writers.
type HooksRecorder struct {
	mu sync.Mutex

	Operations  []OperationEvent
	Conflicts   []string
	Retries     []string
	Completions []string
}

type OperationEvent struct {
	Name     string
	Status   string
	Duration time.Duration
}

var _ aggregates.Hooks = (*HooksRecorder)(nil)

func (h *HooksRecorder) ObserveOperation(name, status string, dur time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Operations = append(h.Operations, OperationEvent{Name: name, Status: status, Duration: dur})
}

func (h *HooksRecorder) IncConflict(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Conflicts = append(h.Conflicts, name)
}

func (h *HooksRecorder) IncRetry(name string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Retries = append(h.Retries, name)
}

func (h *HooksRecorder) IncCompletion(kind string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Completions = append(h.Completions, kind)
}

// CompletionCount returns how many times kind was signalled.
func (h *HooksRecorder) CompletionCount(kind string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, k := range h.Completions {
		if k == kind {
			n++
		}
	}
	return n
}

// StatusesFor lists the recorded statuses of one operation, in call order.
func (h *HooksRecorder) StatusesFor(op string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, ev := range h.Operations {
		if ev.Name == op {
			out = append(out, ev.Status)
		}
	}
	return out
}
