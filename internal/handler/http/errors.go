// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the transport layer when resolving the
// authenticated user. Callers can match against them with [errors.Is].
var (
	// ErrNoUserIDInContext is returned when a protected handler runs
	// without the auth middleware having stored a user id in the request
	// context. It indicates a routing bug, not a client mistake.
	ErrNoUserIDInContext = errors.New("no authenticated user in request context")

	// ErrInvalidTaskID is returned when the {taskID} URL segment is not a
	// positive integer.
	ErrInvalidTaskID = errors.New("invalid task id in URL")
)

// Canonical user-facing messages. The sign-in failure message is shared by
// every credential failure so the response cannot reveal whether a login
// exists.
const (
	msgInvalidCredentials = "invalid login or password"
	msgSignInRequired     = "please sign in to continue"
	msgLoginTaken         = "this login is already taken"
)
