package resilience

import (
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// ErrCircuitOpen is returned while the breaker is rejecting calls.
var ErrCircuitOpen = eris.New("circuit breaker is open")

// Breaker stops calling an upstream after Threshold consecutive failures
// and lets a single probe through once Cooldown has elapsed.
type Breaker struct {
	name      string
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	failures int
	openedAt time.Time
	open     bool
}

// NewBreaker creates a closed breaker. A threshold below 1 never trips.
func NewBreaker(name string, threshold int, cooldown time.Duration) *Breaker {
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Breaker{name: name, threshold: threshold, cooldown: cooldown, now: time.Now}
}

// Allow returns ErrCircuitOpen while the breaker is open and the cooldown
// has not yet elapsed.
func (b *Breaker) Allow() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.open && b.now().Sub(b.openedAt) < b.cooldown {
		return ErrCircuitOpen
	}
	return nil
}

// Record feeds the outcome of a call back into the breaker.
func (b *Breaker) Record(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		if b.open {
			zap.L().Info("circuit closed", zap.String("service", b.name))
		}
		b.failures = 0
		b.open = false
		return
	}

	b.failures++
	if b.threshold > 0 && b.failures >= b.threshold {
		if !b.open {
			zap.L().Warn("circuit opened",
				zap.String("service", b.name),
				zap.Int("consecutive_failures", b.failures),
			)
		}
		b.open = true
		b.openedAt = b.now()
	}
}

// Open reports whether the breaker has tripped.
func (b *Breaker) Open() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}
