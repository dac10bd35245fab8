package ink

import (
	"log"
	"time"
)

// Double-tap window for the stylus pen/eraser toggle. The lower bound
// rejects accidental re-contact of a bouncing pen tip; the upper bound
// separates the gesture from two deliberate strokes.
const (
	doubleTapMin = 50 * time.Millisecond
	doubleTapMax = 300 * time.Millisecond
)

// Session owns the lifecycle of one in-progress stroke: begin, extend,
// end. It locks onto the input channel that started the stroke and
// ignores the other, so devices that deliver the same contact on both
// the touch and the pointer stream do not produce duplicate strokes.
type Session struct {
	tools    *ToolState
	store    *PathStore
	renderer *Renderer
	sched    *Scheduler

	drawing bool
	channel Channel
	points  []Point
	painted int // samples already painted by incremental paints

	// tool triple sampled at stroke start; toolbar changes mid-stroke
	// do not affect the stroke in progress
	tool  Tool
	color string
	size  float64

	lastStylusDown time.Time

	// OnCommit fires after a stroke is appended to the store.
	OnCommit func()

	now func() time.Time
}

func NewSession(tools *ToolState, store *PathStore, renderer *Renderer, sched *Scheduler) *Session {
	return &Session{
		tools:    tools,
		store:    store,
		renderer: renderer,
		sched:    sched,
		now:      time.Now,
	}
}

// Drawing reports whether a stroke is in progress.
func (s *Session) Drawing() bool { return s.drawing }

// Begin starts a stroke, unless the event is the second tap of a
// stylus double-tap, in which case the tool toggles between pen and
// eraser and no stroke starts. Returns true when a stroke began.
func (s *Session) Begin(ev InputEvent) bool {
	if s.drawing {
		// A second contact while drawing neither starts a second
		// stroke nor aborts the first.
		return false
	}
	if ev.Stylus {
		since := s.now().Sub(s.lastStylusDown)
		s.lastStylusDown = s.now()
		if since > doubleTapMin && since < doubleTapMax {
			tool := s.tools.toggleEraser()
			log.Printf("[INK] double-tap: tool is now %s", tool)
			return false
		}
	}
	s.drawing = true
	s.channel = ev.Channel
	s.tool, s.color, s.size = s.tools.Snapshot()
	s.points = Normalize(ev)
	s.painted = 0
	s.sched.MarkDirty()
	return true
}

// Extend appends the event's samples to the stroke. Events from the
// other channel, or extra simultaneous contacts, are ignored.
func (s *Session) Extend(ev InputEvent) {
	if !s.drawing || ev.Channel != s.channel {
		return
	}
	s.points = append(s.points, Normalize(ev)...)
	s.sched.MarkDirty()
}

// End finishes the stroke on release. The release event carries no new
// sample of its own. With two or more buffered points the stroke is
// committed to the store; a bare tap buffered only the press sample
// and leaves the store untouched.
func (s *Session) End(ev InputEvent) {
	if !s.drawing || ev.Channel != s.channel {
		return
	}
	s.drawing = false

	// Paint whatever the frame pacing had not flushed yet, so the
	// raster is complete at the moment of commit.
	s.PaintPending()

	path := SerializedPath{Tool: s.tool, Color: s.color, Size: s.size, Points: s.points}
	s.points = nil
	if !s.store.Append(path) {
		return
	}
	if s.OnCommit != nil {
		s.OnCommit()
	}
}

// Cancel discards the in-progress stroke without committing. The full
// replay restores the raster to the last committed state, wiping any
// partially painted segments.
func (s *Session) Cancel() {
	if !s.drawing {
		return
	}
	s.drawing = false
	s.points = nil
	s.sched.RequestReplay()
}

// PaintPending incrementally paints the samples appended since the
// last paint. Wired as the scheduler's incremental callback.
func (s *Session) PaintPending() {
	if s.points == nil {
		return
	}
	start := s.painted
	if start < 1 {
		start = 1
	}
	for i := start; i < len(s.points); i++ {
		s.renderer.DrawStrokeSegment(s.points, i, s.tool, s.color, s.size)
	}
	s.painted = len(s.points)
}
