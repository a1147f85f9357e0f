// Package config provides configuration management for id-reconciler.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of every section.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Log: logging level and format
//   - Server: lookup API port, API key and metrics path
//   - Storage: S3/MinIO credentials and bucket for snapshot tables
//   - Lookup: backend (entrez or uniprot), rate gate and retry policy
//   - Pipeline: input tables, output sink, workers and granularity
//
// Environment keys are the section and field joined by an underscore, for example
// LOOKUP_MIN_INTERVAL=340ms or PIPELINE_WORKERS=4.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Lookup.Backend)
package config
