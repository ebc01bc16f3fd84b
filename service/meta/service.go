package meta

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"gopkg.in/yaml.v3"
)

// Service resolves and decodes configuration documents.
type Service struct {
	fs      afs.Service
	baseURL string
	options []storage.Option
}

// New creates a meta service.  Relative URLs passed to Load are resolved
// against baseURL when one is supplied.
func New(fs afs.Service, baseURL string, options ...storage.Option) *Service {
	return &Service{fs: fs, baseURL: baseURL, options: options}
}

// Load reads the YAML document at URL, expands ${env.KEY} expressions and
// decodes the result into target.
func (s *Service) Load(ctx context.Context, URL string, target interface{}) error {
	location := URL
	if s.baseURL != "" && !strings.Contains(URL, "://") {
		location = url.Join(s.baseURL, URL)
	}
	data, err := s.fs.DownloadWithURL(ctx, location, s.options...)
	if err != nil {
		return fmt.Errorf("failed to load %v: %w", location, err)
	}
	expanded := expandEnvExpr(string(data))
	if err := yaml.Unmarshal([]byte(expanded), target); err != nil {
		return fmt.Errorf("failed to decode %v: %w", location, err)
	}
	return nil
}
