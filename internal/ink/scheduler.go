package ink

// Scheduler paces raster painting. While a stroke is active it allows
// at most one incremental paint per tick, so per-frame cost is bounded
// by the samples that arrived since the last tick and not by stroke
// length. A pending structural change (load, undo, clear, resize,
// cancellation) instead forces a full replay on the next tick.
//
// All methods run on the UI thread; the tick source is the host's
// frame driver.
type Scheduler struct {
	incremental func()
	replay      func()

	dirty         bool
	replayPending bool
}

func NewScheduler(incremental, replay func()) *Scheduler {
	return &Scheduler{incremental: incremental, replay: replay}
}

// MarkDirty records that new segments of the in-progress stroke are
// waiting to be painted.
func (s *Scheduler) MarkDirty() {
	s.dirty = true
}

// RequestReplay records a structural change. A replay supersedes any
// pending incremental paint.
func (s *Scheduler) RequestReplay() {
	s.replayPending = true
	s.dirty = false
}

// Tick performs at most one paint. Idle ticks with nothing pending do
// no work.
func (s *Scheduler) Tick() {
	if s.replayPending {
		s.replayPending = false
		s.replay()
		return
	}
	if s.dirty {
		s.dirty = false
		s.incremental()
	}
}

// Pending reports whether the next tick will paint.
func (s *Scheduler) Pending() bool {
	return s.dirty || s.replayPending
}
