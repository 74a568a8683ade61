// Package worker runs evaluator jobs concurrently and collects their
// findings.
package worker

import (
	"context"
	"sync"

	"github.com/slidesift/slidesift/internal/model"
)

// Job is one evaluation task producing findings.
type Job interface {
	// Name identifies the job in logs and results.
	Name() string

	// Execute runs the job. Implementations return partial findings with an
	// error when they fail midway.
	Execute(ctx context.Context) ([]model.Finding, error)
}

// Result is the outcome of one job.
type Result struct {
	Job      string
	Findings []model.Finding
	Err      error
}

// Pool fans jobs out over a fixed number of goroutines.
type Pool struct {
	workers int
}

// NewPool creates a pool. Worker counts below 1 are clamped to 1.
func NewPool(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Run executes all jobs and returns one result per job, in completion
// order. Job panics are contained and surface as the job's error.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	jobCh := make(chan Job)
	resultCh := make(chan Result, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobCh {
				resultCh <- runJob(ctx, job)
			}
		}()
	}

	for _, job := range jobs {
		jobCh <- job
	}
	close(jobCh)
	wg.Wait()
	close(resultCh)

	results := make([]Result, 0, len(jobs))
	for r := range resultCh {
		results = append(results, r)
	}
	return results
}

func runJob(ctx context.Context, job Job) (result Result) {
	result.Job = job.Name()
	defer func() {
		if r := recover(); r != nil {
			result.Err = &PanicError{Job: job.Name(), Value: r}
		}
	}()
	result.Findings, result.Err = job.Execute(ctx)
	return result
}

// PanicError reports a job that panicked instead of returning.
type PanicError struct {
	Job   string
	Value any
}

func (e *PanicError) Error() string {
	return "job " + e.Job + " panicked"
}
