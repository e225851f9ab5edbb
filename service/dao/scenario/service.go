// Package scenario loads declarative transfer definitions from YAML
// documents. A document names the run, bounds the channel capacity and
// declares the source sequence either inline or as an expression:
//
//	name: backpressure
//	capacity: 3
//	source: 1..8
//
// Parsed documents are cached by URL.
package scenario

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/viant/afs"
	"github.com/viant/conveyor/internal/yml"
	"github.com/viant/conveyor/model"
	"github.com/viant/conveyor/service/dao/scenario/source"
	"github.com/viant/conveyor/service/dao/store"
	"github.com/viant/conveyor/service/meta"
	"github.com/viant/toolbox"
	"gopkg.in/yaml.v3"
)

// Service loads and parses scenario documents
type Service struct {
	metaService *meta.Service
	cache       *store.MemoryStore[string, model.Scenario]
}

// Option customizes the scenario service
type Option func(*Service)

// WithMetaService sets the document loader
func WithMetaService(service *meta.Service) Option {
	return func(s *Service) {
		s.metaService = service
	}
}

// DecodeYAML decodes a scenario from YAML
func (s *Service) DecodeYAML(encoded []byte) (*model.Scenario, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(encoded, &node); err != nil {
		return nil, err
	}
	return s.ParseScenario("", &node)
}

// Load loads a scenario from YAML at the specified URL
func (s *Service) Load(ctx context.Context, URL string) (*model.Scenario, error) {
	ext := filepath.Ext(URL)
	if ext == "" {
		URL += ".yaml"
	}
	if cached, _ := s.cache.Load(ctx, URL); cached != nil {
		return cached.Clone(), nil
	}
	var node yaml.Node
	if err := s.metaService.Load(ctx, URL, &node); err != nil {
		return nil, fmt.Errorf("failed to load scenario from %s: %w", URL, err)
	}
	scenario, err := s.ParseScenario(URL, &node)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Save(ctx, scenario)
	return scenario.Clone(), nil
}

// ParseScenario builds a scenario from a decoded YAML document
func (s *Service) ParseScenario(URL string, node *yaml.Node) (*model.Scenario, error) {
	scenario := &model.Scenario{}
	if URL != "" {
		scenario.Origin = &model.Origin{URL: URL}
		scenario.Name = getScenarioNameFromURL(URL)
	}
	if err := s.parseScenario((*yml.Node)(node), scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario from %s: %w", URL, err)
	}
	if scenario.Name == "" {
		scenario.Name = generateAnonymousName()
	}
	if scenario.Kind != "" {
		items, err := coerceItems(scenario.Source, scenario.Kind)
		if err != nil {
			return nil, fmt.Errorf("failed to coerce scenario %s source: %w", scenario.Name, err)
		}
		scenario.Source = items
	}
	if issues := scenario.Validate(); len(issues) > 0 {
		return nil, fmt.Errorf("invalid scenario %s: %v", scenario.Name, issues)
	}
	return scenario, nil
}

// parseScenario converts YAML node to scenario model
func (s *Service) parseScenario(node *yml.Node, scenario *model.Scenario) error {
	rootNode := node
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		rootNode = (*yml.Node)(node.Content[0])
	}
	return rootNode.Pairs(func(key string, valueNode *yml.Node) error {
		switch strings.ToLower(key) {
		case "name":
			if valueNode.Kind == yaml.ScalarNode {
				scenario.Name = valueNode.Value
			}
		case "description":
			if valueNode.Kind == yaml.ScalarNode {
				scenario.Description = valueNode.Value
			}
		case "kind":
			if valueNode.Kind == yaml.ScalarNode {
				scenario.Kind = strings.ToLower(valueNode.Value)
			}
		case "capacity":
			value, ok := valueNode.Interface().(int)
			if !ok {
				return fmt.Errorf("capacity should be an integer")
			}
			scenario.Capacity = value
		case "source":
			items, err := parseSource(valueNode)
			if err != nil {
				return fmt.Errorf("failed to parse source: %w", err)
			}
			scenario.Source = items
		case "producerthrottle":
			throttle, err := parseThrottle(valueNode)
			if err != nil {
				return fmt.Errorf("failed to parse producer throttle: %w", err)
			}
			scenario.ProducerThrottle = throttle
		case "consumerthrottle":
			throttle, err := parseThrottle(valueNode)
			if err != nil {
				return fmt.Errorf("failed to parse consumer throttle: %w", err)
			}
			scenario.ConsumerThrottle = throttle
		}
		return nil
	})
}

// parseSource materializes the source sequence from either an inline YAML
// list or a scalar expression such as "1..100".
func parseSource(node *yml.Node) ([]interface{}, error) {
	switch node.Kind {
	case yaml.SequenceNode:
		items := make([]interface{}, 0, len(node.Content))
		if err := node.Items(func(index int, item *yml.Node) error {
			items = append(items, item.Interface())
			return nil
		}); err != nil {
			return nil, err
		}
		return items, nil
	case yaml.ScalarNode:
		return source.Parse([]byte(node.Value))
	}
	return nil, fmt.Errorf("source should be a sequence or an expression")
}

// parseThrottle accepts a duration literal ("500ms") or plain milliseconds.
func parseThrottle(node *yml.Node) (time.Duration, error) {
	switch value := node.Interface().(type) {
	case int:
		return time.Duration(value) * time.Millisecond, nil
	case string:
		return time.ParseDuration(value)
	}
	return 0, fmt.Errorf("throttle should be a duration or milliseconds")
}

// coerceItems converts every source item to the declared kind.
func coerceItems(items []interface{}, kind string) ([]interface{}, error) {
	out := make([]interface{}, len(items))
	for i, item := range items {
		value, err := coerceItem(item, kind)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out[i] = value
	}
	return out, nil
}

func coerceItem(item interface{}, kind string) (interface{}, error) {
	switch kind {
	case model.KindInt:
		var v int
		if err := toolbox.DefaultConverter.AssignConverted(&v, item); err != nil {
			return nil, err
		}
		return v, nil
	case model.KindFloat:
		var v float64
		if err := toolbox.DefaultConverter.AssignConverted(&v, item); err != nil {
			return nil, err
		}
		return v, nil
	case model.KindString:
		var v string
		if err := toolbox.DefaultConverter.AssignConverted(&v, item); err != nil {
			return nil, err
		}
		return v, nil
	case model.KindBool:
		var v bool
		if err := toolbox.DefaultConverter.AssignConverted(&v, item); err != nil {
			return nil, err
		}
		return v, nil
	}
	return item, nil
}

// getScenarioNameFromURL extracts scenario name from URL (file name without extension)
func getScenarioNameFromURL(URL string) string {
	base := filepath.Base(URL)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// New creates a new scenario service instance
func New(opts ...Option) *Service {
	ret := &Service{
		metaService: meta.New(afs.New(), ""),
		cache:       store.NewMemoryStore[string, model.Scenario](scenarioKey),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func scenarioKey(s *model.Scenario) string {
	if s.Origin != nil && s.Origin.URL != "" {
		return s.Origin.URL
	}
	return s.Name
}
