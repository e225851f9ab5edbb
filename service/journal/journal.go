package journal

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Unit names tagged on put/take/ack events
const (
	UnitProducer = "producer"
	UnitConsumer = "consumer"
)

// Journal is the append-only progress log of a transfer run.  Every put, take
// and acknowledge event goes through a single zerolog logger over a serialized
// sink, so lines never interleave mid-record; ordering across the two units is
// best-effort and diagnostic only.
type Journal struct {
	logger zerolog.Logger
	closer io.Closer
}

// Option customizes a journal
type Option func(*settings)

type settings struct {
	writers []io.Writer
	file    string
	console bool
}

// WithWriter adds a raw JSON sink
func WithWriter(writer io.Writer) Option {
	return func(s *settings) {
		s.writers = append(s.writers, writer)
	}
}

// WithConsole adds a human-readable sink on stderr
func WithConsole() Option {
	return func(s *settings) {
		s.console = true
	}
}

// WithFile adds an append-only file sink
func WithFile(location string) Option {
	return func(s *settings) {
		s.file = location
	}
}

// New creates a journal writing to the configured sinks.  Without options the
// journal is silent.
func New(options ...Option) (*Journal, error) {
	config := &settings{}
	for _, option := range options {
		option(config)
	}
	var closer io.Closer
	writers := config.writers
	if config.console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}
	if config.file != "" {
		file, err := os.OpenFile(config.file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal file %v: %w", config.file, err)
		}
		writers = append(writers, file)
		closer = file
	}
	var sink io.Writer
	switch len(writers) {
	case 0:
		return Nop(), nil
	case 1:
		sink = writers[0]
	default:
		sink = zerolog.MultiLevelWriter(writers...)
	}
	logger := zerolog.New(zerolog.SyncWriter(sink)).With().Timestamp().Logger()
	return &Journal{logger: logger, closer: closer}, nil
}

// Nop returns a journal that discards every event
func Nop() *Journal {
	return &Journal{logger: zerolog.Nop()}
}

// WithRun returns a derived journal tagging every event with the run
// identity.  Derived journals share the parent sink and never own it.
func (j *Journal) WithRun(runID, scenario string) *Journal {
	logger := j.logger.With().Str("run_id", runID)
	if scenario != "" {
		logger = logger.Str("scenario", scenario)
	}
	return &Journal{logger: logger.Logger()}
}

// WithUnit returns a derived journal tagging events with the emitting unit
func (j *Journal) WithUnit(unit string) *Journal {
	return &Journal{logger: j.logger.With().Str("unit", unit).Logger()}
}

// Started records the beginning of a run
func (j *Journal) Started(expected, capacity int) {
	j.logger.Info().
		Str("event", "start").
		Int("expected", expected).
		Int("capacity", capacity).
		Msg("run started")
}

// Put records one item appended to the channel together with the buffered
// count observed right after the append
func (j *Journal) Put(seq int, item interface{}, depth int) {
	j.logger.Info().
		Str("event", "put").
		Int("seq", seq).
		Interface("item", item).
		Int("depth", depth).
		Msg("produced item")
}

// Take records one item removed from the channel together with the buffered
// count observed right after the removal
func (j *Journal) Take(seq int, item interface{}, depth int) {
	j.logger.Info().
		Str("event", "take").
		Int("seq", seq).
		Interface("item", item).
		Int("depth", depth).
		Msg("consumed item")
}

// Ack records one acknowledgment
func (j *Journal) Ack(seq int) {
	j.logger.Info().
		Str("event", "ack").
		Int("seq", seq).
		Msg("acknowledged item")
}

// Transition records a run state change
func (j *Journal) Transition(from, to string) {
	j.logger.Info().
		Str("event", "state").
		Str("from", from).
		Str("to", to).
		Msg("run state changed")
}

// Mismatch records an output sequence that diverged from its source
func (j *Journal) Mismatch(diff string) {
	j.logger.Error().
		Str("event", "mismatch").
		Str("diff", diff).
		Msg("output diverged from source")
}

// Finished records the terminal outcome of a run
func (j *Journal) Finished(success bool, produced, consumed, acknowledged int, elapsed time.Duration) {
	j.logger.Info().
		Str("event", "finish").
		Bool("success", success).
		Int("produced", produced).
		Int("consumed", consumed).
		Int("acknowledged", acknowledged).
		Dur("elapsed", elapsed).
		Msg("run finished")
}

// Failed records a fatal run error
func (j *Journal) Failed(err error) {
	j.logger.Error().
		Str("event", "failure").
		Err(err).
		Msg("run failed")
}

// Close releases the file sink when this journal owns one
func (j *Journal) Close() error {
	if j.closer == nil {
		return nil
	}
	return j.closer.Close()
}
