package ink

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionFixture struct {
	tools   *ToolState
	store   *PathStore
	session *Session
	clock   time.Time
}

func newSessionFixture(t *testing.T) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		tools: NewToolState(),
		store: NewPathStore(),
		clock: time.Unix(1000, 0),
	}
	renderer := NewRenderer(100, 100)
	sched := NewScheduler(nil, nil)
	f.session = NewSession(f.tools, f.store, renderer, sched)
	sched.incremental = f.session.PaintPending
	sched.replay = func() { renderer.Replay(f.store.Paths()) }
	f.session.now = func() time.Time { return f.clock }
	return f
}

func (f *sessionFixture) advance(d time.Duration) {
	f.clock = f.clock.Add(d)
}

func down(ch Channel, x, y float64) InputEvent {
	return InputEvent{Channel: ch, Primary: Sample{X: x, Y: y}}
}

func stylusDown(x, y float64) InputEvent {
	ev := down(ChannelTouch, x, y)
	ev.Stylus = true
	return ev
}

func TestSessionCommitsStroke(t *testing.T) {
	f := newSessionFixture(t)
	var committed int
	f.session.OnCommit = func() { committed++ }

	require.True(t, f.session.Begin(down(ChannelPointer, 0, 0)))
	f.session.Extend(down(ChannelPointer, 5, 5))
	f.session.End(down(ChannelPointer, 10, 10))

	require.Equal(t, 1, f.store.Len())
	assert.Equal(t, 1, committed)
	assert.Len(t, f.store.Paths()[0].Points, 2)
	assert.False(t, f.session.Drawing())
}

func TestSessionTapCommitsNothing(t *testing.T) {
	f := newSessionFixture(t)
	var committed int
	f.session.OnCommit = func() { committed++ }

	require.True(t, f.session.Begin(down(ChannelPointer, 4, 4)))
	f.session.End(down(ChannelPointer, 4, 4))

	assert.Zero(t, f.store.Len(), "a tap buffers one point and is never appended")
	assert.Zero(t, committed)
}

func TestSessionDoubleTapTogglesTool(t *testing.T) {
	f := newSessionFixture(t)

	require.True(t, f.session.Begin(stylusDown(0, 0)))
	f.session.End(stylusDown(0, 0))

	f.advance(100 * time.Millisecond)
	started := f.session.Begin(stylusDown(0, 0))

	assert.False(t, started, "second tap inside the window starts no stroke")
	assert.Equal(t, ToolEraser, f.tools.Tool())

	// drawing well outside the window draws again, with the toggled
	// tool
	f.advance(time.Second)
	assert.True(t, f.session.Begin(stylusDown(0, 0)))
	f.session.Extend(stylusDown(2, 2))
	f.session.End(stylusDown(2, 2))
	require.Equal(t, 1, f.store.Len())
	assert.Equal(t, ToolEraser, f.store.Paths()[0].Tool)
}

func TestSessionSlowTapsDoNotToggle(t *testing.T) {
	f := newSessionFixture(t)

	require.True(t, f.session.Begin(stylusDown(0, 0)))
	f.session.End(stylusDown(0, 0))

	f.advance(400 * time.Millisecond)
	assert.True(t, f.session.Begin(stylusDown(5, 5)), "400ms apart is two independent strokes")
	assert.Equal(t, ToolPen, f.tools.Tool())
}

func TestSessionRapidRecontactDoesNotToggle(t *testing.T) {
	f := newSessionFixture(t)

	require.True(t, f.session.Begin(stylusDown(0, 0)))
	f.session.End(stylusDown(0, 0))

	f.advance(30 * time.Millisecond) // below the 50ms lower bound
	assert.True(t, f.session.Begin(stylusDown(0, 0)))
	assert.Equal(t, ToolPen, f.tools.Tool())
}

func TestSessionChannelExclusivity(t *testing.T) {
	f := newSessionFixture(t)

	require.True(t, f.session.Begin(down(ChannelTouch, 0, 0)))
	f.session.Extend(down(ChannelPointer, 50, 50)) // duplicate delivery, ignored
	f.session.Extend(down(ChannelTouch, 5, 5))
	f.session.End(down(ChannelPointer, 60, 60)) // must not end the touch stroke
	assert.True(t, f.session.Drawing())

	f.session.End(down(ChannelTouch, 10, 10))
	require.Equal(t, 1, f.store.Len())
	assert.Len(t, f.store.Paths()[0].Points, 2)
}

func TestSessionSecondContactIgnored(t *testing.T) {
	f := newSessionFixture(t)

	require.True(t, f.session.Begin(down(ChannelTouch, 0, 0)))
	assert.False(t, f.session.Begin(down(ChannelTouch, 90, 90)), "multi-touch starts no second stroke")
	assert.True(t, f.session.Drawing(), "and does not abort the first")
}

func TestSessionCancelLeavesStoreUnchanged(t *testing.T) {
	f := newSessionFixture(t)
	f.store.Append(strokePath(ToolPen, pt(0, 0), pt(1, 1)))

	require.True(t, f.session.Begin(down(ChannelTouch, 10, 10)))
	f.session.Extend(down(ChannelTouch, 20, 20))
	f.session.Cancel()

	assert.Equal(t, 1, f.store.Len())
	assert.False(t, f.session.Drawing())
}

func TestSessionSamplesToolAtStrokeStart(t *testing.T) {
	f := newSessionFixture(t)
	f.tools.SetColor("#ff0000")
	f.tools.SetSize(7)

	require.True(t, f.session.Begin(down(ChannelPointer, 0, 0)))
	f.tools.SetColor("#00ff00") // mid-stroke change must not apply
	f.tools.SetTool(ToolMarker)
	f.session.Extend(down(ChannelPointer, 9, 9))
	f.session.End(down(ChannelPointer, 9, 9))

	p := f.store.Paths()[0]
	assert.Equal(t, ToolPen, p.Tool)
	assert.Equal(t, "#ff0000", p.Color)
	assert.Equal(t, 7.0, p.Size)
}
