package internal

import (
	"context"
	"log/slog"
	"sync"
)

// Unit is one independent, long-lived task supervised by a Supervisor.
// It must return when ctx is canceled.
type Unit func(ctx context.Context)

// Supervisor runs a fixed group of Units concurrently and waits for all
// of them to return. Unlike a pool dispatching tasks from a shared
// queue, each Unit owns its own loop; Supervisor only aggregates their
// lifetimes.
//
// It exists to run several worker loops (each its own Claimer consumer)
// as goroutines of one process, for operators who would rather launch
// one binary with --concurrency N than N separate OS processes. The
// queue kernel does not require this: any number of separate processes
// pointed at the same store works identically.
type Supervisor struct {
	wg  sync.WaitGroup
	log *slog.Logger
}

// NewSupervisor creates a Supervisor that logs recovered panics via log.
func NewSupervisor(log *slog.Logger) *Supervisor {
	return &Supervisor{log: log}
}

func (s *Supervisor) runOne(ctx context.Context, u Unit) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("supervised unit panic recovered", "err", r)
		}
	}()
	u(ctx)
}

// Run starts each of units as its own goroutine.
func (s *Supervisor) Run(ctx context.Context, units ...Unit) {
	for _, u := range units {
		s.wg.Add(1)
		go s.runOne(ctx, u)
	}
}

// Wait returns a DoneChan that closes once every started Unit has
// returned.
func (s *Supervisor) Wait() DoneChan {
	return wrapWaitGroup(&s.wg)
}
