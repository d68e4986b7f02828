// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that launches
// multiple workers under a shared lifecycle context.
package workers
