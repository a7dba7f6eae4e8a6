package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/amirhossein-jamali/transaction-service/internal/domain/port/core"
)

// FixedTimeProvider implements core.TimeProvider with a controllable clock
type FixedTimeProvider struct {
	mu      sync.Mutex
	current time.Time
}

// NewFixedTimeProvider creates a time provider pinned to the given instant
func NewFixedTimeProvider(t time.Time) *FixedTimeProvider {
	return &FixedTimeProvider{current: t}
}

var _ core.TimeProvider = (*FixedTimeProvider)(nil)

// Now returns the pinned instant
func (p *FixedTimeProvider) Now() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Since returns the elapsed time relative to the pinned instant
func (p *FixedTimeProvider) Since(t time.Time) time.Duration {
	return p.Now().Sub(t)
}

// WithTimeout delegates to the real context machinery
func (p *FixedTimeProvider) WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// Advance moves the pinned instant forward
func (p *FixedTimeProvider) Advance(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = p.current.Add(d)
}
