package conveyor

import (
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/conveyor/progress"
	"github.com/viant/conveyor/service/coordinator"
	rmemory "github.com/viant/conveyor/service/dao/report/memory"
	"github.com/viant/conveyor/service/dao/scenario"
	"github.com/viant/conveyor/service/journal"
	"github.com/viant/conveyor/service/meta"
)

// Service wires the conveyor runtime: scenario loading, run coordination,
// journaling and report persistence.
type Service struct {
	runtime        *Runtime
	metaService    *meta.Service
	metaBaseURL    string
	metaFsOptions  []storage.Option
	journalOptions []journal.Option
	config         coordinator.Config
	onChange       func(progress.Progress)
}

func (s *Service) init(options []Option) error {
	for _, option := range options {
		option(s)
	}
	return s.ensureBaseSetup()
}

func (s *Service) ensureBaseSetup() error {
	if s.metaService == nil {
		s.metaService = meta.New(afs.New(), s.metaBaseURL, s.metaFsOptions...)
	}
	if s.runtime.scenarioDAO == nil {
		s.runtime.scenarioDAO = scenario.New(scenario.WithMetaService(s.metaService))
	}
	if s.runtime.reportDAO == nil {
		s.runtime.reportDAO = rmemory.New()
	}
	if s.runtime.journal == nil {
		aJournal, err := journal.New(s.journalOptions...)
		if err != nil {
			return err
		}
		s.runtime.journal = aJournal
	}
	s.runtime.config = s.config
	s.runtime.onChange = s.onChange
	return nil
}

// Runtime returns the transfer runtime
func (s *Service) Runtime() *Runtime {
	return s.runtime
}

// New creates a new conveyor service instance
func New(options ...Option) (*Service, error) {
	ret := &Service{runtime: &Runtime{}}
	if err := ret.init(options); err != nil {
		return nil, err
	}
	return ret, nil
}
