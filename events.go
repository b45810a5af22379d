package img2text

import "time"

// Event describes one pipeline stage transition. Events carry enough
// context to reconstruct what a render did without the renderer owning
// any global logging state.
type Event struct {
	// Stage is the pipeline stage that produced the event:
	// "decode", "prepare", or "render".
	Stage string

	// Message is a short human-readable description.
	Message string

	// Width and Height are the grid dimensions in character cells,
	// when known at the time of the event.
	Width  int
	Height int

	// Elapsed is the time spent in the stage, set on completion events.
	Elapsed time.Duration
}

// EventSink receives pipeline events. A nil sink disables event emission.
// Sinks must be safe for concurrent use if the owning Renderer is shared
// across goroutines; the renderer itself never synchronizes calls.
type EventSink func(Event)

// emit sends an event to the sink if one is configured.
func (r *Renderer) emit(ev Event) {
	if r.sink != nil {
		r.sink(ev)
	}
}
