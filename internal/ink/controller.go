package ink

import (
	"context"
	"fmt"
	"log"
)

// MaxExtraHeight caps how far a surface can be dragged open past its
// natural content height.
const MaxExtraHeight = 2000

// PassiveAlpha is the fixed opacity used when a surface renders its ink
// as a read-only overlay.
const PassiveAlpha = 0.35

// SurfaceKey identifies one logical drawing area: a chapter of a book
// plus the panel it is displayed in. Panels exist so mirrored views of
// the same chapter (for example two translations side by side) keep
// separate ink.
type SurfaceKey struct {
	Book    string
	Chapter int
	Panel   string
}

func (k SurfaceKey) String() string {
	if k.Panel == "" {
		return fmt.Sprintf("%s:%d", k.Book, k.Chapter)
	}
	return fmt.Sprintf("%s:%d:%s", k.Book, k.Chapter, k.Panel)
}

// Persistence is the boundary to the external record store. Load
// reports ok=false when no record exists for the key, which is
// distinct from an existing record with empty canvas data.
type Persistence interface {
	Save(ctx context.Context, key, canvasData string, height float64) error
	Load(ctx context.Context, key string) (canvasData string, height float64, ok bool, err error)
}

// Controller binds a path store, renderer and stroke session to one
// surface key, and owns the surface's mode, expansion and persistence.
// It is the engine's imperative handle: the host UI calls its methods
// directly.
type Controller struct {
	key      SurfaceKey
	tools    *ToolState
	store    *PathStore
	renderer *Renderer
	session  *Session
	sched    *Scheduler
	persist  Persistence

	active      bool
	extraHeight float64
	dirty       bool // unsaved content or height change

	// OnPainted fires after a tick that actually painted, so the host
	// can refresh whatever displays the raster.
	OnPainted func()
}

// NewController creates a controller with an empty surface of the
// given raster size. Call Switch to bind it to a real surface.
func NewController(tools *ToolState, persist Persistence, w, h int) *Controller {
	c := &Controller{
		tools:    tools,
		store:    NewPathStore(),
		renderer: NewRenderer(w, h),
		persist:  persist,
	}
	c.sched = NewScheduler(nil, nil)
	c.session = NewSession(tools, c.store, c.renderer, c.sched)
	c.sched.incremental = c.session.PaintPending
	c.sched.replay = func() { c.renderer.Replay(c.store.Paths()) }
	c.session.OnCommit = func() { c.saveQuiet() }
	return c
}

func (c *Controller) Key() SurfaceKey     { return c.key }
func (c *Controller) Store() *PathStore   { return c.store }
func (c *Controller) Tools() *ToolState   { return c.tools }
func (c *Controller) Active() bool        { return c.active }
func (c *Controller) ExtraHeight() float64 { return c.extraHeight }

// HasInk reports whether passive display has anything to show.
func (c *Controller) HasInk() bool {
	return c.store.Len() > 0 || c.extraHeight > 0
}

// Raster exposes the renderer so the host can display its image.
func (c *Controller) Raster() *Renderer { return c.renderer }

// SetActive switches between editable and read-only overlay modes.
// Leaving active mode implicitly ends any in-progress stroke without
// committing a partial path.
func (c *Controller) SetActive(active bool) {
	if c.active == active {
		return
	}
	if !active {
		c.session.Cancel()
	}
	c.active = active
}

// Tick drives the render scheduler; the host calls it once per frame.
// Returns true when a paint happened.
func (c *Controller) Tick() bool {
	if !c.sched.Pending() {
		return false
	}
	c.sched.Tick()
	if c.OnPainted != nil {
		c.OnPainted()
	}
	return true
}

// HandleDown routes a press into the stroke session. Input is captured
// only in active mode.
func (c *Controller) HandleDown(ev InputEvent) {
	if !c.active {
		return
	}
	c.session.Begin(ev)
}

func (c *Controller) HandleMove(ev InputEvent) {
	if !c.active {
		return
	}
	c.session.Extend(ev)
}

func (c *Controller) HandleUp(ev InputEvent) {
	if !c.active {
		return
	}
	c.session.End(ev)
}

// HandleCancel discards the in-progress stroke, e.g. when the platform
// preempts the gesture.
func (c *Controller) HandleCancel() {
	c.session.Cancel()
}

// Undo removes the most recent stroke. No-op on an empty store.
func (c *Controller) Undo() {
	if !c.store.Undo() {
		return
	}
	c.sched.RequestReplay()
	c.saveQuiet()
}

// Clear removes every stroke on the surface.
func (c *Controller) Clear() {
	c.store.Clear()
	c.sched.RequestReplay()
	c.saveQuiet()
}

// Tool-state pushes on an inactive surface count as structural events
// and schedule a full replay. An active surface skips it: a replay
// would wipe the incrementally painted segments of an in-progress
// stroke, and the pushed state only applies from the next stroke
// anyway.
func (c *Controller) SetTool(t Tool) {
	c.tools.SetTool(t)
	c.replayIfPassive()
}

func (c *Controller) SetColor(color string) {
	c.tools.SetColor(color)
	c.replayIfPassive()
}

func (c *Controller) SetSize(size float64) {
	c.tools.SetSize(size)
	c.replayIfPassive()
}

func (c *Controller) replayIfPassive() {
	if !c.active {
		c.sched.RequestReplay()
	}
}

// LoadPaths replaces the surface contents wholesale, e.g. from a
// backup import.
func (c *Controller) LoadPaths(paths []SerializedPath) {
	c.session.Cancel()
	c.store.Load(paths)
	c.sched.RequestReplay()
	c.saveQuiet()
}

// SerializedData returns the durable form of the surface's strokes.
func (c *Controller) SerializedData() (string, error) {
	return c.store.Serialize()
}

// Expand grows or shrinks the extra drawing height by delta, clamped
// to [0, MaxExtraHeight]. The new height is persisted but the raster
// is untouched; the host resizes the raster when the widget's size
// actually changes.
func (c *Controller) Expand(delta float64) float64 {
	h := clamp(c.extraHeight+delta, 0, MaxExtraHeight)
	if h != c.extraHeight {
		c.extraHeight = h
		c.saveQuiet()
	}
	return c.extraHeight
}

// Resize replaces the raster backing the surface. Raster content does
// not survive a resize, so a full replay is scheduled. Buffered points
// of an in-progress stroke stay valid; segments painted since the last
// commit are lost until the stroke commits.
func (c *Controller) Resize(w, h int) {
	ow, oh := c.renderer.Size()
	if ow == w && oh == h {
		return
	}
	c.renderer.Resize(w, h)
	c.sched.RequestReplay()
}

// Switch rebinds the controller to a new surface. In order: the
// outgoing surface's unsaved content is persisted, the key swaps, the
// new record loads (absent record means an empty store and zero
// height), and a full replay is scheduled. The save completes before
// the load so that switching away and straight back cannot read stale
// data. An in-progress stroke is implicitly cancelled, never committed
// as a partial path.
func (c *Controller) Switch(ctx context.Context, key SurfaceKey) error {
	c.session.Cancel()
	if c.dirty {
		if err := c.Flush(ctx); err != nil {
			// Durability is at risk, not the live view; keep going so
			// navigation still works.
			log.Printf("[INK] flush of %s failed: %v", c.key, err)
		}
	}
	c.key = key

	data, height, ok, err := c.persist.Load(ctx, key.String())
	if err != nil {
		return fmt.Errorf("load surface %s: %w", key, err)
	}
	if !ok {
		c.store.Clear()
		c.extraHeight = 0
		c.dirty = false
		c.sched.RequestReplay()
		return nil
	}
	paths, perr := ParsePaths(data)
	if perr != nil {
		// Corrupt record: treat as empty, superseded on next save.
		log.Printf("[INK] malformed canvas data for %s: %v", key, perr)
		paths = nil
	}
	c.store.Load(paths)
	c.extraHeight = clamp(height, 0, MaxExtraHeight)
	c.dirty = false
	c.sched.RequestReplay()
	return nil
}

// Flush persists the surface if it has unsaved changes.
func (c *Controller) Flush(ctx context.Context) error {
	if !c.dirty {
		return nil
	}
	data, err := c.store.Serialize()
	if err != nil {
		return err
	}
	if err := c.persist.Save(ctx, c.key.String(), data, c.extraHeight); err != nil {
		return fmt.Errorf("save surface %s: %w", c.key, err)
	}
	c.dirty = false
	return nil
}

// saveQuiet persists after a content or height change. A failed write
// only costs durability; the in-memory store stays the source of truth
// and the surface remains dirty so a later flush can retry.
func (c *Controller) saveQuiet() {
	c.dirty = true
	if err := c.Flush(context.Background()); err != nil {
		log.Printf("[INK] save of %s failed: %v", c.key, err)
	}
}
