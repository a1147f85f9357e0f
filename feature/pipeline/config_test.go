package pipeline

import (
	"testing"

	"id-reconciler/core/reconcile"

	"github.com/stretchr/testify/assert"
)

func validConfig() Config {
	return Config{
		Predicted:   "p.tsv",
		Reference:   "r.tsv",
		Sink:        SinkLocal,
		Workers:     1,
		Granularity: "accession",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"Valid", func(*Config) {}, ""},
		{"NoPredicted", func(c *Config) { c.Predicted = "" }, "predicted table is required"},
		{"NoReference", func(c *Config) { c.Reference = "" }, "reference table is required"},
		{"ZeroWorkers", func(c *Config) { c.Workers = 0 }, "workers must be at least 1"},
		{"BadGranularity", func(c *Config) { c.Granularity = "gene" }, "unknown granularity"},
		{"BadScope", func(c *Config) { c.IdentifierScope = "cluster" }, "unknown identifier scope"},
		{"BadSink", func(c *Config) { c.Sink = "ftp" }, "unknown sink"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_Options(t *testing.T) {
	cfg := validConfig()
	cfg.AccessionPrefix = "NC_"
	assert.Equal(t, reconcile.Options{Granularity: reconcile.AccessionOnly, AccessionPrefix: "NC_"}, cfg.Options())

	cfg.IdentifierScope = "accession"
	assert.Equal(t, reconcile.ScopeAccession, cfg.Options().IdentifierScope)
}
