package poller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/newnonsick/Football-APP-Backend/internal/platform/logging"
)

const defaultInterval = 60 * time.Second

// readyFailureLimit is the number of consecutive failed cycles after which a
// resource is reported as not ready.
const readyFailureLimit = 3

// CycleFunc performs one fetch/compare/dispatch cycle for a resource.
type CycleFunc func(ctx context.Context) error

// Poller runs a cycle immediately and then on every tick. Cycles never overlap:
// a slow cycle delays the next tick of the same resource only.
type Poller struct {
	name     string
	cycle    CycleFunc
	logger   *logging.Logger
	interval time.Duration
	now      func() time.Time

	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poll loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutiveFailures"`
	LastError           string    `json:"lastError,omitempty"`
	LastAttempt         time.Time `json:"lastAttempt"`
	LastSuccess         time.Time `json:"lastSuccess"`
}

// IsReady reports whether a cycle has succeeded and the loop is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < readyFailureLimit
}

func New(name string, cycle CycleFunc, interval time.Duration, logger *logging.Logger) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		name:     name,
		cycle:    cycle,
		logger:   logger.With("resource", name),
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

func (p *Poller) Name() string {
	return p.name
}

// Run blocks until ctx is cancelled or Stop is called. A second call returns immediately.
func (p *Poller) Run(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.logger.Info("poller started", "interval", p.interval.String())
	p.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poller stopped")
			return
		case <-p.done:
			p.logger.Info("poller stopped")
			return
		case <-ticker.C:
			p.runOnce(ctx)
		}
	}
}

// Stop halts the loop; it is safe to call more than once.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
	})
}

func (p *Poller) runOnce(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)

	err := p.safeCycle(ctx)
	if err != nil {
		p.logger.WarnContext(ctx, "poll cycle failed",
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		p.recordFailure(err)
		return
	}

	p.recordSuccess(start)
	p.logger.DebugContext(ctx, "poll cycle completed", "duration_ms", time.Since(start).Milliseconds())
}

func (p *Poller) safeCycle(ctx context.Context) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("poll cycle panic: %v", rec)
		}
	}()
	return p.cycle(ctx)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
}

// Status returns a copy of the loop's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
