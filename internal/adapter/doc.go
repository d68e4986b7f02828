// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-task-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// application from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) that talks to the server's JSON API
// and authenticates with the session cookie issued at sign-in.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401, [ErrNotFound] for 404).
package adapter
