package walletpay

import (
	"time"

	"github.com/google/uuid"

	"github.com/sumup/walletpay/logger"
	"github.com/sumup/walletpay/metrics"
)

type config struct {
	logger      logger.Logger
	metrics     metrics.Recorder
	callbacks   []AttemptCallback
	clock       func() time.Time
	idGenerator func() string
}

func defaultConfig() config {
	return config{
		logger:      logger.NoopLogger{},
		metrics:     metrics.NoopRecorder{},
		clock:       time.Now,
		idGenerator: uuid.NewString,
	}
}

// Option customizes the flow behavior.
type Option func(*config)

// WithLogger routes flow diagnostics to the given logger.
func WithLogger(log logger.Logger) Option {
	return func(cfg *config) {
		if log == nil {
			return
		}
		cfg.logger = log
	}
}

// WithMetrics records attempt counters and latencies on the given recorder.
func WithMetrics(rec metrics.Recorder) Option {
	return func(cfg *config) {
		if rec == nil {
			return
		}
		cfg.metrics = rec
	}
}

// WithAttemptCallbacks appends lifecycle callbacks in the order provided.
// Callbacks run synchronously inside the attempt.
func WithAttemptCallbacks(cbs ...AttemptCallback) Option {
	return func(cfg *config) {
		for _, cb := range cbs {
			if cb == nil {
				continue
			}
			cfg.callbacks = append(cfg.callbacks, cb)
		}
	}
}

// withClock provides deterministic time in tests.
func withClock(fn func() time.Time) Option {
	return func(cfg *config) {
		cfg.clock = fn
	}
}

// withAttemptID provides deterministic attempt identifiers in tests.
func withAttemptID(fn func() string) Option {
	return func(cfg *config) {
		cfg.idGenerator = fn
	}
}
