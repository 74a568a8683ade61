package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/slidesift/slidesift/internal/model"
)

type fakeJob struct {
	name     string
	findings []model.Finding
	err      error
	panics   bool
	run      func()
}

func (j *fakeJob) Name() string { return j.name }

func (j *fakeJob) Execute(ctx context.Context) ([]model.Finding, error) {
	if j.run != nil {
		j.run()
	}
	if j.panics {
		panic("boom")
	}
	return j.findings, j.err
}

func TestPoolRunsAllJobs(t *testing.T) {
	var executed int32
	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = &fakeJob{name: "job", run: func() { atomic.AddInt32(&executed, 1) }}
	}

	results := NewPool(3).Run(context.Background(), jobs)
	if len(results) != 10 {
		t.Errorf("expected 10 results, got %d", len(results))
	}
	if executed != 10 {
		t.Errorf("expected 10 executions, got %d", executed)
	}
}

func TestPoolCollectsFindingsAndErrors(t *testing.T) {
	finding := model.Finding{Slides: []int{1, 2}, Type: model.IssueNumericalConflict, Confidence: 0.9}
	jobs := []Job{
		&fakeJob{name: "ok", findings: []model.Finding{finding}},
		&fakeJob{name: "broken", err: errors.New("evaluator failed")},
	}

	results := NewPool(2).Run(context.Background(), jobs)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	byName := map[string]Result{}
	for _, r := range results {
		byName[r.Job] = r
	}
	if len(byName["ok"].Findings) != 1 || byName["ok"].Err != nil {
		t.Errorf("ok job: %+v", byName["ok"])
	}
	if byName["broken"].Err == nil {
		t.Errorf("broken job must carry its error: %+v", byName["broken"])
	}
}

func TestPoolContainsPanics(t *testing.T) {
	results := NewPool(1).Run(context.Background(), []Job{
		&fakeJob{name: "panicky", panics: true},
		&fakeJob{name: "fine"},
	})
	if len(results) != 2 {
		t.Fatalf("a panicking job must not kill the pool, got %d results", len(results))
	}

	for _, r := range results {
		if r.Job == "panicky" {
			var perr *PanicError
			if !errors.As(r.Err, &perr) {
				t.Errorf("expected PanicError, got %v", r.Err)
			}
		}
	}
}

func TestPoolRespectsWorkerLimit(t *testing.T) {
	workers := 2
	var current, peak int32
	var mu sync.Mutex

	jobs := make([]Job, 8)
	for i := range jobs {
		jobs[i] = &fakeJob{name: "job", run: func() {
			n := atomic.AddInt32(&current, 1)
			mu.Lock()
			if n > peak {
				peak = n
			}
			mu.Unlock()
			time.Sleep(5 * time.Millisecond)
			atomic.AddInt32(&current, -1)
		}}
	}

	NewPool(workers).Run(context.Background(), jobs)

	mu.Lock()
	defer mu.Unlock()
	if peak > int32(workers) {
		t.Errorf("concurrency peak %d exceeded %d workers", peak, workers)
	}
}

func TestPoolClampsWorkerCount(t *testing.T) {
	if p := NewPool(0); p.workers != 1 {
		t.Errorf("expected clamp to 1, got %d", p.workers)
	}
	if p := NewPool(-3); p.workers != 1 {
		t.Errorf("expected clamp to 1, got %d", p.workers)
	}
}
