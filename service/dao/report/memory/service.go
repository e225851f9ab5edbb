package memory

import (
	"context"
	"sync"

	"github.com/viant/conveyor/runtime/transfer"
	"github.com/viant/conveyor/service/dao"
	"github.com/viant/conveyor/service/dao/criteria"
)

// Service implements an in-memory, thread-safe store for run reports.  All
// API methods work with whole report snapshots, so concurrent readers never
// observe partial updates.
type Service struct {
	reports map[string]*transfer.Report
	mux     sync.RWMutex
}

var _ dao.Service[string, transfer.Report] = (*Service)(nil)

func (s *Service) Save(_ context.Context, report *transfer.Report) error {
	if report == nil {
		return dao.ErrNilEntity
	}
	if report.ID == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()
	s.reports[report.ID] = report
	return nil
}

func (s *Service) Load(_ context.Context, id string) (*transfer.Report, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mux.RLock()
	report, ok := s.reports[id]
	s.mux.RUnlock()

	if !ok {
		return nil, dao.ErrNotFound
	}
	return report, nil
}

func (s *Service) Delete(_ context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if _, ok := s.reports[id]; !ok {
		return dao.ErrNotFound
	}
	delete(s.reports, id)
	return nil
}

func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*transfer.Report, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	out := make([]*transfer.Report, 0, len(s.reports))
	for _, report := range s.reports {
		if !criteria.FilterByState(report.State, parameters) {
			continue
		}
		out = append(out, report)
	}
	return out, nil
}

func New() *Service {
	return &Service{reports: map[string]*transfer.Report{}}
}
