package clipwatch

import "context"

// Watcher observes the clips directory and reports newly persisted clips,
// replacing count-polling with an event-driven signal
type Watcher interface {
	// Run blocks until ctx is cancelled, forwarding new-clip signals
	Run(ctx context.Context) error
	// Notifications delivers the number of new clips per signal
	Notifications() <-chan int
	// Stop releases the underlying filesystem watch
	Stop() error
}
