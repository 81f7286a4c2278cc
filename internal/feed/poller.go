package feed

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/muurk/controlroom/internal/logging"
)

const (
	// DefaultInterval is the delay between polls
	DefaultInterval = 2 * time.Second

	// DefaultStartDelay is the delay before the first poll
	DefaultStartDelay = 2 * time.Second
)

// Fetcher is anything that can produce one feed result
type Fetcher interface {
	Fetch(ctx context.Context) (*Result, error)
}

// Poller fetches on a fixed interval. Polls never overlap, so results are
// delivered in the order they were requested.
type Poller struct {
	Fetcher    Fetcher
	Interval   time.Duration
	StartDelay time.Duration
}

// NewPoller creates a poller with the default timings
func NewPoller(f Fetcher) *Poller {
	return &Poller{
		Fetcher:    f,
		Interval:   DefaultInterval,
		StartDelay: DefaultStartDelay,
	}
}

// Run polls until ctx is done, handing each outcome to deliver. A failed
// fetch is delivered as a nil result with its error.
func (p *Poller) Run(ctx context.Context, deliver func(*Result, error)) error {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	if err := sleep(ctx, p.StartDelay); err != nil {
		return err
	}

	logging.Info("Feed polling started", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		p.poll(ctx, deliver)

		select {
		case <-ctx.Done():
			logging.Info("Feed polling stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (p *Poller) poll(ctx context.Context, deliver func(*Result, error)) {
	result, err := p.Fetcher.Fetch(ctx)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		logging.Warn("Feed poll failed", zap.Error(err))
		deliver(nil, err)
		return
	}
	deliver(result, nil)
}
