package model

import (
	"fmt"
	"time"
)

// Item kinds a scenario source can declare.
const (
	KindInt    = "int"
	KindFloat  = "float"
	KindString = "string"
	KindBool   = "bool"
)

// Scenario represents a declarative transfer definition: the ordered source
// sequence, the channel capacity and optional pacing for demos.
type Scenario struct {

	// Origin provides information about where the scenario was loaded from
	Origin *Origin `json:"origin,omitempty" yaml:"origin,omitempty"`

	// Name is the unique identifier for the scenario
	Name string `json:"name" yaml:"name"`

	// Description provides a human-readable description of the scenario
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Kind optionally declares the scalar type source items are coerced to,
	// one of int, float, string or bool; empty keeps the decoded types
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Capacity bounds the transfer channel; it must be at least 1
	Capacity int `json:"capacity" yaml:"capacity"`

	// Source is the ordered item sequence pushed through the channel
	Source []interface{} `json:"source,omitempty" yaml:"source,omitempty"`

	// ProducerThrottle delays consecutive puts; zero disables pacing
	ProducerThrottle time.Duration `json:"producerThrottle,omitempty" yaml:"producerThrottle,omitempty"`

	// ConsumerThrottle delays consecutive takes; zero disables pacing
	ConsumerThrottle time.Duration `json:"consumerThrottle,omitempty" yaml:"consumerThrottle,omitempty"`
}

// Origin describes where a scenario document came from.
type Origin struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// Expected returns the number of items a run of this scenario has to drain.
func (s *Scenario) Expected() int {
	return len(s.Source)
}

// Validate performs a structural validation of the scenario. The returned
// slice is empty when the scenario is sound; otherwise it contains
// human-readable error descriptions.
func (s *Scenario) Validate() []error {
	var issues []error
	if s.Capacity < 1 {
		issues = append(issues, fmt.Errorf("capacity must be at least 1, had %d", s.Capacity))
	}
	switch s.Kind {
	case "", KindInt, KindFloat, KindString, KindBool:
	default:
		issues = append(issues, fmt.Errorf("unknown item kind %q", s.Kind))
	}
	if s.ProducerThrottle < 0 {
		issues = append(issues, fmt.Errorf("producer throttle must not be negative, had %v", s.ProducerThrottle))
	}
	if s.ConsumerThrottle < 0 {
		issues = append(issues, fmt.Errorf("consumer throttle must not be negative, had %v", s.ConsumerThrottle))
	}
	return issues
}

// Clone creates a deep copy of the scenario.
func (s *Scenario) Clone() *Scenario {
	if s == nil {
		return nil
	}
	clone := &Scenario{
		Name:             s.Name,
		Description:      s.Description,
		Kind:             s.Kind,
		Capacity:         s.Capacity,
		ProducerThrottle: s.ProducerThrottle,
		ConsumerThrottle: s.ConsumerThrottle,
	}
	if s.Origin != nil {
		origin := *s.Origin
		clone.Origin = &origin
	}
	if s.Source != nil {
		clone.Source = make([]interface{}, len(s.Source))
		copy(clone.Source, s.Source)
	}
	return clone
}

// NewScenario creates a new scenario with the given name
func NewScenario(name string) *Scenario {
	return &Scenario{Name: name, Capacity: 1}
}

// WithDescription sets the description of the scenario
func (s *Scenario) WithDescription(description string) *Scenario {
	s.Description = description
	return s
}

// WithCapacity sets the channel capacity
func (s *Scenario) WithCapacity(capacity int) *Scenario {
	s.Capacity = capacity
	return s
}

// WithSource sets the source sequence
func (s *Scenario) WithSource(items ...interface{}) *Scenario {
	s.Source = items
	return s
}
