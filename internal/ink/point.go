package ink

// Channel identifies which physical event stream a sample arrived on.
// Touch contact and pointer events describe the same physical interaction
// on devices that deliver both, so a stroke locks onto one channel.
type Channel int

const (
	ChannelNone Channel = iota
	ChannelTouch
	ChannelPointer
)

func (c Channel) String() string {
	switch c {
	case ChannelTouch:
		return "touch"
	case ChannelPointer:
		return "pointer"
	}
	return "none"
}

// Point is one normalized input sample in surface-local pixels.
type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
	TiltX    float64 `json:"tiltX"`
	TiltY    float64 `json:"tiltY"`
}

// Sample is one raw reading from the host input system, before defaults
// are applied. HasPressure is false for sources with no force sensor.
type Sample struct {
	X, Y         float64
	Pressure     float64
	HasPressure  bool
	TiltX, TiltY float64
}

// InputEvent is a single native event: a primary sample plus any
// coalesced sub-samples the platform buffered between frames.
// Coalesced samples precede the primary sample in time.
type InputEvent struct {
	Channel   Channel
	Stylus    bool // pen-class device, eligible for the double-tap gesture
	Primary   Sample
	Coalesced []Sample
	Touches   int // simultaneous contacts reported with the event
}

// defaultPressure stands in for input sources that report no force.
const defaultPressure = 0.5

func normalizeSample(s Sample) Point {
	p := Point{X: s.X, Y: s.Y, TiltX: s.TiltX, TiltY: s.TiltY}
	if s.HasPressure {
		p.Pressure = clamp(s.Pressure, 0, 1)
	} else {
		p.Pressure = defaultPressure
	}
	return p
}

// Normalize flattens an event into an ordered point sequence, coalesced
// sub-samples first, then the primary sample. It touches no other state.
func Normalize(ev InputEvent) []Point {
	pts := make([]Point, 0, len(ev.Coalesced)+1)
	for _, s := range ev.Coalesced {
		pts = append(pts, normalizeSample(s))
	}
	pts = append(pts, normalizeSample(ev.Primary))
	return pts
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
