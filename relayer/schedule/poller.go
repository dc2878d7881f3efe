// Package schedule periodically polls both sides of a relay for their
// current chain status, supplementing the batching pipeline with the
// status-tracking loop a full relay orchestration needs.
package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/icellan/ibc-relayer-core/internal/logging"
	"github.com/icellan/ibc-relayer-core/relayer/chain"
	"github.com/icellan/ibc-relayer-core/relayer/relay"
)

// StatusFunc reports the latest ChainStatus observed for one side of a
// relay.
type StatusFunc func(chain.ChainStatus)

// Poller wraps a gocron scheduler that periodically queries chain status
// on both sides of a relay.
type Poller[M any, E any] struct {
	scheduler gocron.Scheduler
	relay     *relay.Relay[M, E]
	logger    *slog.Logger

	onSrcStatus StatusFunc
	onDstStatus StatusFunc
}

// New builds a Poller over r. onSrcStatus/onDstStatus may be nil if the
// caller only cares about one side.
func New[M any, E any](r *relay.Relay[M, E], logger *slog.Logger, onSrcStatus, onDstStatus StatusFunc) (*Poller[M, E], error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("schedule: new scheduler: %w", err)
	}

	return &Poller[M, E]{
		scheduler:   scheduler,
		relay:       r,
		logger:      logging.Child(logger, "schedule"),
		onSrcStatus: onSrcStatus,
		onDstStatus: onDstStatus,
	}, nil
}

// Start schedules the status poll at the given interval and starts the
// scheduler. Call Stop to release resources.
func (p *Poller[M, E]) Start(interval time.Duration) error {
	_, err := p.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(p.pollOnce),
		gocron.WithName("relay_status_poll"),
	)
	if err != nil {
		return fmt.Errorf("schedule: create job: %w", err)
	}

	p.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down; it cannot be restarted afterward.
func (p *Poller[M, E]) Stop() error {
	if err := p.scheduler.Shutdown(); err != nil {
		return fmt.Errorf("schedule: shutdown: %w", err)
	}
	return nil
}

func (p *Poller[M, E]) pollOnce(ctx context.Context) {
	if status, err := p.relay.Src.Status(ctx); err != nil {
		p.logger.Error("failed to query source chain status", logging.Error(err), slog.String(logging.ChainKey, p.relay.Src.ChainID))
	} else if p.onSrcStatus != nil {
		p.onSrcStatus(status)
	}

	if status, err := p.relay.Dst.Status(ctx); err != nil {
		p.logger.Error("failed to query destination chain status", logging.Error(err), slog.String(logging.ChainKey, p.relay.Dst.ChainID))
	} else if p.onDstStatus != nil {
		p.onDstStatus(status)
	}
}
