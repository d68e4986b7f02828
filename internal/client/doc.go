// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the taskctl command-line application.
//
// It wires subcommand parsing, the server adapter, and session token
// persistence into a single process lifecycle. The session token obtained at
// sign-in is stored in a state file so that consecutive invocations reuse the
// same session until it expires or taskctl logout revokes it.
package client
