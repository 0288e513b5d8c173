package inference

import (
	"context"
	"sync"
	"time"
)

// Paced spaces the start of successive completions by at least delay. Callers
// reserve a start slot in order and wait for it without holding the lock.
type Paced struct {
	next  Client
	delay time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewPaced wraps next so that completions start at least delay apart.
func NewPaced(next Client, delay time.Duration) *Paced {
	return &Paced{next: next, delay: delay}
}

func (p *Paced) Complete(ctx context.Context, prompt string) (string, error) {
	wait := p.reserve()

	if wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", ctx.Err()
		case <-timer.C:
		}
	}

	return p.next.Complete(ctx, prompt)
}

func (p *Paced) reserve() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := time.Now()
	start := now
	if !p.last.IsZero() {
		if next := p.last.Add(p.delay); next.After(now) {
			start = next
		}
	}
	p.last = start

	return start.Sub(now)
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
