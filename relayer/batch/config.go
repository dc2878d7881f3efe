package batch

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/icellan/ibc-relayer-core/internal/logging"
	"github.com/icellan/ibc-relayer-core/internal/metrics"
	"github.com/icellan/ibc-relayer-core/relayer/relay"
	"github.com/icellan/ibc-relayer-core/relayer/runtime"
)

// Config holds the sink's tuning knobs. It is built exclusively through the
// With* options below; there is no file or environment-variable form, by
// design.
type Config struct {
	MaxMessageCount int
	MaxTxSize       int
	BufferSize      int
	MaxDelay        time.Duration
	PollInterval    time.Duration

	clock   runtime.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// Option configures a Sink at construction time.
type Option func(*Config)

// defaultConfig mirrors sane single-node defaults; every field is
// overridable via an Option.
func defaultConfig() Config {
	return Config{
		MaxMessageCount: 50,
		MaxTxSize:       1 << 20,
		BufferSize:      256,
		MaxDelay:        500 * time.Millisecond,
		PollInterval:    20 * time.Millisecond,
		clock:           runtime.New(),
	}
}

// WithMaxMessageCount sets the hard upper bound on messages per submission.
func WithMaxMessageCount(n int) Option {
	return func(c *Config) { c.MaxMessageCount = n }
}

// WithMaxTxSize sets the hard upper bound on aggregate estimated bytes per
// submission.
func WithMaxTxSize(n int) Option {
	return func(c *Config) { c.MaxTxSize = n }
}

// WithBufferSize sets the input channel's capacity; saturating it applies
// backpressure to callers of Send.
func WithBufferSize(n int) Option {
	return func(c *Config) { c.BufferSize = n }
}

// WithMaxDelay sets how long a non-full transaction may wait before being
// submitted anyway.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Config) { c.MaxDelay = d }
}

// WithPollInterval sets the worker's idle/poll granularity.
func WithPollInterval(d time.Duration) Option {
	return func(c *Config) { c.PollInterval = d }
}

// WithClock overrides the sink's notion of time, for deterministic tests
// via a mock clock.
func WithClock(c runtime.Clock) Option {
	return func(cfg *Config) { cfg.clock = c }
}

// WithLogger attaches a logger; a nil logger falls back to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) { c.logger = logging.Child(logger, "batch_sink") }
}

// WithMetrics attaches a metrics bundle the worker updates on every
// submission.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Config) { c.metrics = m }
}

// validate rejects a Config that would leave the worker stalled or
// spinning: a non-positive bound on either axis of partitioning, a
// negative buffer, a negative deadline, or a non-positive poll interval.
func (c Config) validate() error {
	switch {
	case c.MaxMessageCount <= 0:
		return relay.ErrConfig(fmt.Errorf("max_message_count must be positive, got %d", c.MaxMessageCount))
	case c.MaxTxSize <= 0:
		return relay.ErrConfig(fmt.Errorf("max_tx_size must be positive, got %d", c.MaxTxSize))
	case c.BufferSize < 0:
		return relay.ErrConfig(fmt.Errorf("buffer_size must not be negative, got %d", c.BufferSize))
	case c.MaxDelay < 0:
		return relay.ErrConfig(fmt.Errorf("max_delay must not be negative, got %s", c.MaxDelay))
	case c.PollInterval <= 0:
		return relay.ErrConfig(fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval))
	default:
		return nil
	}
}
