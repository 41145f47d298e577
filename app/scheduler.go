package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs ingest passes on an interval. Passes are sequential; a
// trigger or tick arriving while a pass is running waits for it.
type Scheduler struct {
	ingestor *Ingestor
	log      *zap.Logger

	mu       sync.Mutex
	interval time.Duration
	ctx      context.Context
	cancel   context.CancelFunc
	stopCh   chan struct{}
	trigger  chan struct{}
	started  bool
}

func NewScheduler(ingestor *Ingestor, interval time.Duration, log *zap.Logger) *Scheduler {
	return &Scheduler{ingestor: ingestor, interval: interval, log: log, trigger: make(chan struct{}, 1)}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return errors.New("scheduler already started")
	}
	s.ctx, s.cancel = context.WithCancel(ctx)
	s.stopCh = make(chan struct{})
	s.started = true
	go s.loop()
	return nil
}

func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil
	}
	cancel := s.cancel
	stopCh := s.stopCh
	s.started = false
	s.mu.Unlock()

	close(stopCh)
	cancel()
	return nil
}

// SetInterval changes the tick period. When running, the current ticker is
// replaced via the stop channel so the new period takes effect immediately.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		s.interval = d
		return
	}
	close(s.stopCh)
	s.stopCh = make(chan struct{})
	s.interval = d
}

func (s *Scheduler) CurrentInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// TriggerRun requests an immediate pass. Coalesces when one is already queued.
func (s *Scheduler) TriggerRun() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop() {
	s.runPass()
	for {
		s.mu.Lock()
		interval := s.interval
		stopCh := s.stopCh
		s.mu.Unlock()

		ticker := time.NewTicker(interval)
		select {
		case <-s.ctx.Done():
			ticker.Stop()
			return
		case <-stopCh:
			ticker.Stop()
			continue
		case <-s.trigger:
			ticker.Stop()
		case <-ticker.C:
			ticker.Stop()
		}
		s.runPass()
	}
}

func (s *Scheduler) runPass() {
	if _, err := s.ingestor.Run(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
		s.log.Error("ingest pass aborted", zap.Error(err))
	}
}
