package directory

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Simulator periodically reassigns doctor availability via the Service.
type Simulator struct {
	svc      *Service
	interval time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSimulator constructs a Simulator that ticks at the given interval.
func NewSimulator(svc *Service, interval time.Duration, log zerolog.Logger) *Simulator {
	return &Simulator{svc: svc, interval: interval, log: log}
}

// Start begins the periodic reassignment loop. Starting again cancels the
// previous loop first, so at most one timer runs at a time.
func (s *Simulator) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done

	go func() {
		defer close(done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-runCtx.Done():
				return
			case <-ticker.C:
				if _, err := s.svc.RefreshAvailability(runCtx); err != nil && runCtx.Err() == nil {
					s.log.Error().Err(err).Msg("availability refresh failed")
				}
			}
		}
	}()
}

// Stop cancels the loop and waits for the in-flight tick to finish.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Simulator) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// Running reports whether the loop is active.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
