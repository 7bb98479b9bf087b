package sequencer

import "context"

// EventKind tags an Event.
type EventKind int

const (
	EventProgress EventKind = iota
	EventFinished
	EventFailed
)

func (k EventKind) String() string {
	switch k {
	case EventProgress:
		return "progress"
	case EventFinished:
		return "finished"
	case EventFailed:
		return "failed"
	}
	return "unknown"
}

// Event is one notification from a background run.
type Event struct {
	Kind      EventKind
	Percent   int
	Message   string
	OutputDir string // EventFinished only
	Err       error  // EventFailed only
}

// Job is a run executing on its own goroutine. Its events arrive in order:
// zero or more EventProgress, then exactly one EventFinished or EventFailed,
// after which the channel is closed.
type Job struct {
	events chan Event
	done   chan struct{}
	err    error
	onEnd  func(error)
}

// StartOption customizes a background run.
type StartOption func(*Job)

// OnEnd registers f to be called with the run's result after the last frame
// and before the terminal event is sent.
func OnEnd(f func(err error)) StartOption {
	return func(j *Job) { j.onEnd = f }
}

// Start runs anim on a dedicated goroutine and returns immediately.
// The caller must drain Events or call Wait.
func (s *Sequencer) Start(ctx context.Context, anim Animation, render RenderFunc, opts ...StartOption) *Job {
	j := &Job{
		events: make(chan Event, 16),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(j)
	}

	go func() {
		defer close(j.done)
		defer close(j.events)

		out, err := s.Run(ctx, anim, render, func(percent int, msg string) {
			j.events <- Event{Kind: EventProgress, Percent: percent, Message: msg}
		})
		if j.onEnd != nil {
			j.onEnd(err)
		}
		if err != nil {
			j.err = err
			j.events <- Event{Kind: EventFailed, Message: err.Error(), Err: err}
			return
		}
		j.events <- Event{Kind: EventFinished, Percent: 100, OutputDir: out}
	}()

	return j
}

// Events returns the job's notification stream.
func (j *Job) Events() <-chan Event {
	return j.events
}

// Done is closed once the run has ended and its terminal event is queued.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait discards any undelivered events, blocks until the run ends and
// returns its error.
func (j *Job) Wait() error {
	for range j.events {
	}
	<-j.done
	return j.err
}
