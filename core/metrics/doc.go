// Package metrics exposes Prometheus instrumentation for identifier resolution.
//
// A Metrics value owns its own registry so tests and parallel runs never collide
// on the global default registerer. Every recording method is nil-safe: a nil
// *Metrics is a valid no-op recorder.
//
// # Collectors
//
//   - idrec_lookup_calls_total{op,result}: external search/summary calls.
//   - idrec_lookup_duration_seconds{op}: latency of external calls.
//   - idrec_lookup_retries_total{op}: retry attempts after a transient failure.
//   - idrec_cache_hits_total: resolutions served from the run cache.
//   - idrec_classifications_total{namespace,source}: final classifications.
//
// Handler serves the registry for the `serve` command's /metrics route.
package metrics
