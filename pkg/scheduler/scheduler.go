// Package scheduler polls news sources in cycles and notifies about new items.
// Coordinator runs a single cycle, Scheduler repeats cycles with a fixed pause between them.
package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/newsbot/pkg/domain"
)

//go:generate moq -out mocks/cycle_runner.go -pkg mocks -skip-ensure -fmt goimports . CycleRunner

// CycleRunner runs one poll cycle
type CycleRunner interface {
	RunCycle(ctx context.Context) domain.CycleReport
}

// State of the scheduler loop
type State string

// scheduler states
const (
	StateIdle    State = "idle"
	StateRunning State = "running"
)

// Scheduler runs poll cycles forever. The pause is measured from the end of one cycle
// to the start of the next one and doesn't depend on the cycle result.
type Scheduler struct {
	runner   CycleRunner
	interval time.Duration

	wg     sync.WaitGroup
	cancel context.CancelFunc

	mu     sync.RWMutex
	state  State
	cycles int
	panics int
	next   time.Time
}

// NewScheduler makes a scheduler, zero interval means 5 minutes
func NewScheduler(runner CycleRunner, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{runner: runner, interval: interval, state: StateIdle}
}

// Start runs the loop in background, the first cycle starts immediately
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go s.loop(ctx)
	lgr.Printf("[INFO] scheduler started with interval %v", s.interval)
}

// Stop cancels the loop and waits for the running cycle to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunNow runs a single cycle in the caller goroutine, a panic is reported as error
func (s *Scheduler) RunNow(ctx context.Context) (domain.CycleReport, error) {
	return s.runCycle(ctx)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()
	for {
		if _, err := s.runCycle(ctx); err != nil {
			lgr.Printf("[ERROR] %v", err)
		}

		s.mu.Lock()
		s.next = time.Now().Add(s.interval)
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}

// runCycle runs the cycle with panic recovery, the loop must survive anything a cycle does
func (s *Scheduler) runCycle(ctx context.Context) (report domain.CycleReport, err error) {
	s.setState(StateRunning)
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.panics++
			s.mu.Unlock()
			err = fmt.Errorf("poll cycle panic: %v\n%s", r, debug.Stack())
		}
		s.mu.Lock()
		s.state = StateIdle
		s.cycles++
		s.mu.Unlock()
	}()
	return s.runner.RunCycle(ctx), nil
}

func (s *Scheduler) setState(st State) {
	s.mu.Lock()
	s.state = st
	s.mu.Unlock()
}

// Status is a snapshot of the scheduler loop
type Status struct {
	State     State         `json:"state"`
	Interval  time.Duration `json:"interval"`
	Cycles    int           `json:"cycles"`
	Panics    int           `json:"panics"`
	NextCycle time.Time     `json:"next_cycle,omitempty"`
}

// Status returns current state of the loop
func (s *Scheduler) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{State: s.state, Interval: s.interval, Cycles: s.cycles, Panics: s.panics, NextCycle: s.next}
}
