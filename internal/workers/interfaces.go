package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// Run is expected to block until ctx is cancelled; cancellation is the only
// stop signal a worker receives.
type Worker interface {
	Run(ctx context.Context)
}
