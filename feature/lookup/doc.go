// Package lookup exposes the resolver over HTTP.
//
// Routes:
//
//	GET  /lookup/:identifier  classify one identifier
//	POST /lookup              classify a batch: {"identifiers": ["WP_1.1", ...]}
//	GET  /lookup/stats        run ID and cache size
//
// The server keeps one resolver, so its cache and rate gate are shared by every
// request for the lifetime of the process.
package lookup
