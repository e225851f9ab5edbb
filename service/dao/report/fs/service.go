package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/option"
	"github.com/viant/afs/url"
	"github.com/viant/conveyor/runtime/transfer"
	"github.com/viant/conveyor/service/dao"
	"github.com/viant/conveyor/service/dao/criteria"
)

// Service implements a filesystem-based report storage; every report lives in
// its own JSON document under the base path
type Service struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

// Ensure Service implements dao.Service
var _ dao.Service[string, transfer.Report] = (*Service)(nil)

// Save persists a report to the filesystem
func (s *Service) Save(ctx context.Context, report *transfer.Report) error {
	if report == nil {
		return dao.ErrNilEntity
	}
	if report.ID == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	filePath := s.reportPath(report.ID)
	err = s.fs.Upload(ctx, filePath, file.DefaultFileOsMode, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to save report to file %s: %w", filePath, err)
	}

	return nil
}

// Load retrieves a report from the filesystem
func (s *Service) Load(ctx context.Context, id string) (*transfer.Report, error) {
	if id == "" {
		return nil, dao.ErrInvalidID
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	filePath := s.reportPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to check if report exists: %w", err)
	}

	if !exists {
		return nil, fmt.Errorf("report %s: %w", id, dao.ErrNotFound)
	}

	data, err := s.fs.DownloadWithURL(ctx, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read report file: %w", err)
	}

	var report transfer.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report data: %w", err)
	}

	return &report, nil
}

// Delete removes a report from the filesystem
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return dao.ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	filePath := s.reportPath(id)
	exists, err := s.fs.Exists(ctx, filePath)
	if err != nil {
		return fmt.Errorf("failed to check if report exists: %w", err)
	}

	if !exists {
		return fmt.Errorf("report %s: %w", id, dao.ErrNotFound)
	}

	if err := s.fs.Delete(ctx, filePath); err != nil {
		return fmt.Errorf("failed to delete report file: %w", err)
	}

	return nil
}

// List returns all reports from the filesystem matching the parameters
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*transfer.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	objects, err := s.fs.List(ctx, s.basePath, option.NewRecursive(true))
	if err != nil {
		return nil, fmt.Errorf("failed to list report files: %w", err)
	}

	var reports []*transfer.Report
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		if !strings.HasSuffix(object.Name(), ".json") {
			continue
		}

		data, err := s.fs.Download(ctx, object)
		if err != nil {
			// skip unreadable entries
			continue
		}

		var report transfer.Report
		if err := json.Unmarshal(data, &report); err != nil {
			continue
		}
		if !criteria.FilterByState(report.State, parameters) {
			continue
		}

		reports = append(reports, &report)
	}

	return reports, nil
}

// reportPath returns the file path for a report
func (s *Service) reportPath(id string) string {
	return path.Join(s.basePath, fmt.Sprintf("%s.json", id))
}

// New creates a new filesystem report storage service
func New(basePath string) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}

	fs := afs.New()

	// Ensure the base directory exists
	ctx := context.Background()
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}

	basePath = url.Normalize(basePath, file.Scheme)

	return &Service{
		basePath: basePath,
		fs:       fs,
	}, nil
}
