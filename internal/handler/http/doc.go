// Package http implements the HTTP transport layer of the application.
//
// It exposes two surfaces over the same service layer: server-rendered HTML
// pages driven by form posts and redirects, and a JSON API under /api for
// programmatic clients. Cross-cutting concerns such as session
// authentication, request tracing, access logging, and response compression
// are handled in this package before requests are delegated to the service
// layer.
package http
