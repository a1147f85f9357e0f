// Package server holds the configuration of the lookup HTTP server started by
// the serve command.
//
// The Config struct defines the listen port, the API key protecting every route
// and the path of the Prometheus metrics endpoint.
package server
