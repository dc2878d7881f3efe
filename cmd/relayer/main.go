// Command relayer wires a batching sink over a pair of bsvchain adapters
// and runs it until interrupted. It exists to exercise the library end to
// end; it is not a substitute for the orchestration a production relayer
// would add (path discovery, packet scanning, retries).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/icellan/ibc-relayer-core/adapters/bsvchain"
	"github.com/icellan/ibc-relayer-core/internal/metrics"
	"github.com/icellan/ibc-relayer-core/relayer/batch"
	"github.com/icellan/ibc-relayer-core/relayer/chain"
	"github.com/icellan/ibc-relayer-core/relayer/orchestrate"
	"github.com/icellan/ibc-relayer-core/relayer/relay"
	"github.com/icellan/ibc-relayer-core/relayer/schedule"
	"github.com/icellan/ibc-relayer-core/relayer/store"
)

func main() {
	srcID := flag.String("src-chain", "bsv-src", "source chain identifier")
	dstID := flag.String("dst-chain", "bsv-dst", "destination chain identifier")
	pollInterval := flag.String("poll-interval", "5s", "chain status poll interval")
	checkpointPath := flag.String("checkpoint-db", "relayer-checkpoints.sqlite", "path to the checkpoint database")
	maxMessageCount := flag.Int("max-message-count", 50, "max messages per submitted transaction")
	maxTxSize := flag.Int("max-tx-size", 1<<20, "max aggregate estimated bytes per submitted transaction")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	interval, err := time.ParseDuration(*pollInterval)
	if err != nil {
		logger.Error("invalid poll interval", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	if err := run(ctx, logger, *srcID, *dstID, *checkpointPath, interval, *maxMessageCount, *maxTxSize); err != nil {
		logger.Error("relayer exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger, srcID, dstID, checkpointPath string, pollInterval time.Duration, maxMessageCount, maxTxSize int) error {
	src := bsvchain.New(srcID, 0)
	dst := bsvchain.New(dstID, 0)

	r := &relay.Relay[bsvchain.Message, bsvchain.Event]{
		Src: src.Ops(),
		Dst: dst.Ops(),
	}

	cp, err := store.Open(checkpointPath, logger)
	if err != nil {
		return fmt.Errorf("open checkpoint store: %w", err)
	}
	defer cp.Close()

	m := metrics.New()

	rl, err := orchestrate.New[bsvchain.Message, bsvchain.Event](r, logger, m,
		batch.WithMaxMessageCount(maxMessageCount),
		batch.WithMaxTxSize(maxTxSize),
	)
	if err != nil {
		return fmt.Errorf("build batching sinks: %w", err)
	}
	defer rl.Close()

	poller, err := schedule.New[bsvchain.Message, bsvchain.Event](r, logger,
		func(status chain.ChainStatus) {
			_ = cp.Save(srcID, status.Height.RevisionNumber, status.Height.RevisionHeight)
		},
		func(status chain.ChainStatus) {
			_ = cp.Save(dstID, status.Height.RevisionNumber, status.Height.RevisionHeight)
		},
	)
	if err != nil {
		return fmt.Errorf("build status poller: %w", err)
	}

	if err := poller.Start(pollInterval); err != nil {
		return fmt.Errorf("start status poller: %w", err)
	}

	logger.Info("relayer started", "src", srcID, "dst", dstID)

	<-ctx.Done()
	logger.Info("shutting down")

	if err := poller.Stop(); err != nil {
		logger.Error("failed to stop status poller", "error", err)
	}

	return nil
}
