// Package meta loads configuration documents from any location the
// abstract file system understands, including embedded file systems.
package meta

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service loads YAML documents, resolving relative locations against a base URL
// and expanding ${env.KEY} expressions before decoding.
type Service struct {
	fs        afs.Service
	baseURL   string
	fsOptions []storage.Option
}

// Load reads the document at URL and decodes it into target.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	location := URL
	if s.baseURL != "" && url.IsRelative(URL) {
		location = url.Join(s.baseURL, URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, location, s.fsOptions...)
	if err != nil {
		return fmt.Errorf("failed to download %s: %w", location, err)
	}
	data = []byte(expandEnvExpr(string(data)))
	if err := yaml.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", location, err)
	}
	return nil
}

// Exists checks whether a document is present at URL.
func (s *Service) Exists(ctx context.Context, URL string) (bool, error) {
	location := URL
	if s.baseURL != "" && url.IsRelative(URL) {
		location = url.Join(s.baseURL, URL)
	}
	return s.fs.Exists(ctx, location, s.fsOptions...)
}

// New creates a meta service
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, fsOptions: options}
}
