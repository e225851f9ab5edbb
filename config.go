package conveyor

import (
	"fmt"

	"github.com/viant/conveyor/service/coordinator"
)

// Config is a serialisable representation of the runtime configuration. It can
// be populated from JSON, YAML, environment variables, etc. The zero-value is
// useful – all fields inherit their package defaults.

type Config struct {
	// Capacity bounds every transfer channel; zero selects the coordinator default
	Capacity int `json:"capacity" yaml:"capacity"`

	// ProducerThrottleMs paces puts in demo runs; zero disables pacing
	ProducerThrottleMs int `json:"producerThrottleMs,omitempty" yaml:"producerThrottleMs,omitempty"`

	// ConsumerThrottleMs paces takes in demo runs; zero disables pacing
	ConsumerThrottleMs int `json:"consumerThrottleMs,omitempty" yaml:"consumerThrottleMs,omitempty"`

	// ConsoleJournal adds a human-readable journal sink on stderr
	ConsoleJournal bool `json:"consoleJournal,omitempty" yaml:"consoleJournal,omitempty"`

	// JournalFile adds an append-only journal file sink
	JournalFile string `json:"journalFile,omitempty" yaml:"journalFile,omitempty"`
}

// DefaultConfig returns a Config populated with the package defaults. Callers
// may modify the returned struct before passing it to WithConfig.
func DefaultConfig() *Config {
	return &Config{
		Capacity: coordinator.DefaultCapacity,
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Capacity < 0 {
		return fmt.Errorf("capacity must be at least 1, had %d", c.Capacity)
	}
	if c.ProducerThrottleMs < 0 || c.ConsumerThrottleMs < 0 {
		return fmt.Errorf("throttle must not be negative")
	}
	return nil
}
