package worker

import "context"

// Task is one audio-chunk work item: the half-open interval
// [StartSec, EndSec) over the source media
type Task struct {
	StartSec float64
	EndSec   float64

	stop bool
}

// Worker is the single background consumer of audio-chunk tasks. Exactly
// one worker runs for the life of the process; tasks are processed one at
// a time in enqueue order.
type Worker interface {
	// Start launches the consumer loop. Call once.
	Start(ctx context.Context)
	// Enqueue hands a task to the worker without ever blocking the
	// caller. Returns false if the task was dropped because the queue
	// was saturated.
	Enqueue(t Task) bool
	// Stop sends the shutdown sentinel and waits for the loop to finish
	// its current task and exit
	Stop()
	// HighlightCount reports highlights detected so far this process run
	HighlightCount() int
}
