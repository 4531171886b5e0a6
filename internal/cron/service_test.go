package cron

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/velvetcrown/wigmatch-backend/pkg/logger"
)

type fakeLock struct {
	held    bool
	denied  bool
	acquire int
}

func (f *fakeLock) Acquire(context.Context) (bool, error) {
	f.acquire++
	if f.denied {
		return false, nil
	}
	f.held = true
	return true, nil
}

func (f *fakeLock) Release(context.Context) error {
	f.held = false
	return nil
}

type countingJob struct {
	name string
	err  error
	runs int
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run(context.Context) error {
	j.runs++
	return j.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cron-test", Output: io.Discard})
}

func TestRunCycle(t *testing.T) {
	t.Run("a failing job does not stop the rest", func(t *testing.T) {
		broken := &countingJob{name: "broken", err: errors.New("boom")}
		healthy := &countingJob{name: "healthy"}
		service, err := NewService(ServiceParams{
			Logger:   testLogger(),
			Registry: NewRegistry(broken, healthy),
			Lock:     &fakeLock{},
		})
		if err != nil {
			t.Fatalf("construct service: %v", err)
		}
		if err := service.runCycle(context.Background()); err != nil {
			t.Fatalf("run cycle: %v", err)
		}
		if broken.runs != 1 || healthy.runs != 1 {
			t.Fatalf("expected both jobs to run once, got broken=%d healthy=%d", broken.runs, healthy.runs)
		}
	})

	t.Run("held lock skips the cycle", func(t *testing.T) {
		job := &countingJob{name: "job"}
		lock := &fakeLock{denied: true}
		service, err := NewService(ServiceParams{
			Logger:   testLogger(),
			Registry: NewRegistry(job),
			Lock:     lock,
		})
		if err != nil {
			t.Fatalf("construct service: %v", err)
		}
		if err := service.runCycle(context.Background()); err != nil {
			t.Fatalf("run cycle: %v", err)
		}
		if job.runs != 0 {
			t.Fatalf("expected job to be skipped, ran %d times", job.runs)
		}
		if lock.acquire != 1 {
			t.Fatalf("expected one acquire attempt, got %d", lock.acquire)
		}
	})

	t.Run("lock released after cycle", func(t *testing.T) {
		lock := &fakeLock{}
		service, err := NewService(ServiceParams{
			Logger:   testLogger(),
			Registry: NewRegistry(&countingJob{name: "job"}),
			Lock:     lock,
		})
		if err != nil {
			t.Fatalf("construct service: %v", err)
		}
		if err := service.runCycle(context.Background()); err != nil {
			t.Fatalf("run cycle: %v", err)
		}
		if lock.held {
			t.Fatal("expected lock to be released")
		}
	})
}

func TestRegistry(t *testing.T) {
	a := &countingJob{name: "a"}
	b := &countingJob{name: "b"}
	registry := NewRegistry(a, nil)
	registry.Register(b)
	registry.Register(nil)

	jobs := registry.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Name() != "a" || jobs[1].Name() != "b" {
		t.Fatalf("jobs out of order: %s, %s", jobs[0].Name(), jobs[1].Name())
	}

	jobs[0] = nil
	if registry.Jobs()[0] == nil {
		t.Fatal("registry leaked its internal slice")
	}
}
