package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaultsPressure(t *testing.T) {
	pts := Normalize(InputEvent{
		Channel: ChannelTouch,
		Primary: Sample{X: 10, Y: 20},
	})
	assert.Len(t, pts, 1)
	assert.Equal(t, 0.5, pts[0].Pressure, "finger with no force sensor defaults to 0.5")
	assert.Zero(t, pts[0].TiltX)
	assert.Zero(t, pts[0].TiltY)
}

func TestNormalizeKeepsReportedPressure(t *testing.T) {
	pts := Normalize(InputEvent{
		Channel: ChannelPointer,
		Primary: Sample{X: 1, Y: 2, Pressure: 0.8, HasPressure: true, TiltX: 30, TiltY: -10},
	})
	assert.Equal(t, 0.8, pts[0].Pressure)
	assert.Equal(t, 30.0, pts[0].TiltX)
	assert.Equal(t, -10.0, pts[0].TiltY)
}

func TestNormalizeClampsPressure(t *testing.T) {
	pts := Normalize(InputEvent{Primary: Sample{Pressure: 1.7, HasPressure: true}})
	assert.Equal(t, 1.0, pts[0].Pressure)

	pts = Normalize(InputEvent{Primary: Sample{Pressure: -0.2, HasPressure: true}})
	assert.Equal(t, 0.0, pts[0].Pressure)
}

func TestNormalizeCoalescedOrder(t *testing.T) {
	pts := Normalize(InputEvent{
		Coalesced: []Sample{{X: 1}, {X: 2}},
		Primary:   Sample{X: 3},
	})
	xs := []float64{pts[0].X, pts[1].X, pts[2].X}
	assert.Equal(t, []float64{1, 2, 3}, xs, "coalesced sub-samples precede the primary")
}
