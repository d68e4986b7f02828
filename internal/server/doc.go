// Package server wires and runs the application's transport server.
//
// It owns the HTTP server lifecycle — startup, signal handling, graceful
// shutdown — and starts the background workers under the same lifecycle
// context, so a termination signal stops everything together.
package server
