package storage

// Config holds configuration for the snapshot object store.
type Config struct {
	// Endpoint is the host (and optional scheme) of the S3 or MinIO service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	UseSSL    bool   `mapstructure:"use_ssl" default:"false"`
	// Bucket receives the snapshot tables.
	Bucket string `mapstructure:"bucket" default:"id-reconciler"`
	// Prefix is prepended to every object name (e.g. "runs/2024-05").
	Prefix string `mapstructure:"prefix" default:""`
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds bounds connection setup and the wait for response headers.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
