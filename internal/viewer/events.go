package viewer

import (
	"github.com/rs/zerolog/log"

	"github.com/iburimskiy/galaxy-generator/internal/galaxy"
)

// Event is one message for the viewer loop.
type Event interface {
	event()
}

// FrameEvent fires once per display refresh.
type FrameEvent struct {
	Delta float64 // seconds since the previous frame
}

// ParameterCommitted carries the parameter snapshot after a finished edit.
type ParameterCommitted struct {
	Params galaxy.Parameters
}

type ResizeEvent struct {
	Size Size
}

type FullscreenToggleRequested struct{}

func (FrameEvent) event()                {}
func (ParameterCommitted) event()        {}
func (ResizeEvent) event()               {}
func (FullscreenToggleRequested) event() {}

// Loop queues events and dispatches them to a State in arrival order.
// It is not safe for concurrent use; post and drain from the same goroutine.
type Loop struct {
	state *State
	queue []Event
}

func NewLoop(s *State) *Loop { return &Loop{state: s} }

func (l *Loop) Post(ev Event) {
	if ev == nil {
		return
	}
	l.queue = append(l.queue, ev)
}

func (l *Loop) Pending() int { return len(l.queue) }

// Drain dispatches every queued event, including events posted while
// draining. Commit failures are recorded on the State and do not stop it.
func (l *Loop) Drain() {
	for len(l.queue) > 0 {
		ev := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.Dispatch(ev)
	}
	l.queue = l.queue[:0]
}

// Dispatch runs the handler for ev immediately.
func (l *Loop) Dispatch(ev Event) {
	switch e := ev.(type) {
	case FrameEvent:
		l.state.OnFrame(e.Delta)
	case ParameterCommitted:
		// the State keeps the error; nothing else to do here
		_ = l.state.OnParameterCommitted(e.Params)
	case ResizeEvent:
		l.state.OnResize(e.Size)
	case FullscreenToggleRequested:
		l.state.OnFullscreenToggleRequested()
	default:
		log.Warn().Type("event", ev).Msg("unhandled viewer event")
	}
}
