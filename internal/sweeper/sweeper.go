package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/onurcolak/listener-text-service/pkg/logger"
)

// expiredSweeper matches session.MemoryStore.SweepExpired and lets us unit
// test the sweeper with a small fake.
type expiredSweeper interface {
	SweepExpired(ctx context.Context) (int, error)
}

// Sweeper periodically purges expired in-memory sessions. Valkey expires its
// keys itself, so the sweeper only runs for the memory fallback store.
type Sweeper struct {
	store    expiredSweeper
	interval time.Duration

	// Internal state
	running  bool
	stopChan chan struct{}
	doneChan chan struct{}
	mu       sync.RWMutex

	// Statistics
	lastRunAt    time.Time
	runsCount    int64
	totalRemoved int64
	lastError    string
}

func NewSweeper(store expiredSweeper, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &Sweeper{
		store:    store,
		interval: interval,
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()

	if s.running {
		s.mu.Unlock()
		logger.Warnf("Session sweeper is already running")
		return nil
	}

	s.running = true
	s.stopChan = make(chan struct{})
	s.doneChan = make(chan struct{})
	s.mu.Unlock()

	logger.Infof("Starting session sweeper with interval: %v", s.interval)

	go s.run(ctx)

	return nil
}

func (s *Sweeper) run(ctx context.Context) {
	defer close(s.doneChan)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.sweep(ctx)

		case <-s.stopChan:
			logger.Debugf("Session sweeper received stop signal")
			return

		case <-ctx.Done():
			logger.Warnf("Session sweeper context cancelled")
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return
		}
	}
}

// RunNow purges expired sessions immediately, outside the ticker.
func (s *Sweeper) RunNow(ctx context.Context) (int, error) {
	return s.sweep(ctx)
}

func (s *Sweeper) sweep(ctx context.Context) (int, error) {
	removed, err := s.store.SweepExpired(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastRunAt = time.Now()
	s.runsCount++

	if err != nil {
		s.lastError = err.Error()
		logger.Errorf("[Sweep #%d] Failed to purge expired sessions: %v", s.runsCount, err)
		return 0, err
	}

	s.lastError = ""
	s.totalRemoved += int64(removed)
	if removed > 0 {
		logger.Infof("[Sweep #%d] Purged %d expired sessions", s.runsCount, removed)
	}
	return removed, nil
}

func (s *Sweeper) Stop() error {
	s.mu.Lock()

	if !s.running {
		s.mu.Unlock()
		return nil
	}

	s.running = false
	stopChan := s.stopChan
	doneChan := s.doneChan
	s.mu.Unlock()

	close(stopChan)
	<-doneChan

	logger.Infof("Session sweeper stopped")
	return nil
}

func (s *Sweeper) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Sweeper) GetStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := Status{
		Running:      s.running,
		LastRunAt:    s.lastRunAt,
		RunsCount:    s.runsCount,
		TotalRemoved: s.totalRemoved,
		Interval:     s.interval.String(),
		LastError:    s.lastError,
	}

	if s.running && !s.lastRunAt.IsZero() {
		status.NextRunAt = s.lastRunAt.Add(s.interval)
	}

	return status
}

type Status struct {
	Running      bool      `json:"running"`
	LastRunAt    time.Time `json:"lastRunAt,omitempty"`
	NextRunAt    time.Time `json:"nextRunAt,omitempty"`
	RunsCount    int64     `json:"runsCount"`
	TotalRemoved int64     `json:"totalRemoved"`
	Interval     string    `json:"interval"`
	LastError    string    `json:"lastError,omitempty"`
}
