package resolve

import (
	"fmt"
	"time"
)

// Lookup backends.
const (
	BackendEntrez  = "entrez"
	BackendUniProt = "uniprot"
)

// Config holds configuration for the lookup backend and its resilience policy.
type Config struct {
	// Backend selects the lookup service: entrez or uniprot.
	Backend string `mapstructure:"backend" default:"entrez"`
	// BaseURL overrides the public endpoint of the backend.
	BaseURL string `mapstructure:"base_url" default:""`
	// Database is the backend database searched.
	Database string `mapstructure:"database" default:"protein"`
	// CrossRefNamespace switches to cross-reference extraction (e.g. UniProtKB, EMBL).
	CrossRefNamespace string `mapstructure:"cross_ref_namespace" default:""`
	// APIKey raises the NCBI request budget.
	APIKey string `mapstructure:"api_key" default:""`
	Email  string `mapstructure:"email" default:""`
	Tool   string `mapstructure:"tool" default:"id-reconciler"`
	// MinInterval is the spacing between external calls across all workers.
	MinInterval time.Duration `mapstructure:"min_interval" default:"340ms"`
	// Timeout bounds every external call.
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
	// MaxRetries is the number of attempts per call, the first one included.
	MaxRetries int `mapstructure:"max_retries" default:"3"`
	// InitialBackoff is the wait before the first retry.
	InitialBackoff time.Duration `mapstructure:"initial_backoff" default:"680ms"`
	// MaxBackoff caps the wait between retries.
	MaxBackoff time.Duration `mapstructure:"max_backoff" default:"10s"`
}

// Validate checks the backend and the numeric bounds.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendEntrez, BackendUniProt:
	default:
		return fmt.Errorf("unknown lookup backend %q", c.Backend)
	}
	if c.MaxRetries < 1 {
		return fmt.Errorf("lookup max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.MinInterval < 0 {
		return fmt.Errorf("lookup min_interval must not be negative")
	}
	return nil
}

// Policy returns the retry policy described by the configuration.
func (c Config) Policy() Policy {
	p := DefaultPolicy()
	if c.MaxRetries > 0 {
		p.MaxRetries = c.MaxRetries
	}
	if c.InitialBackoff > 0 {
		p.InitialInterval = c.InitialBackoff
	}
	if c.MaxBackoff > 0 {
		p.MaxInterval = c.MaxBackoff
	}
	return p
}

// Options returns the resolution options described by the configuration.
func (c Config) Options() Options {
	return Options{Database: c.Database, CrossRefNamespace: c.CrossRefNamespace}
}
