package ink

import "sync"

// Tool selects the visual semantics of a stroke.
type Tool string

const (
	ToolPen         Tool = "pen"
	ToolMarker      Tool = "marker"
	ToolHighlighter Tool = "highlighter"
	ToolEraser      Tool = "eraser"
)

// ToolState is the shared tool/color/size configuration. Every mounted
// surface holds the same *ToolState, so a change made through one
// surface's toolbar is immediately visible to the others. A stroke
// session samples it once at stroke start; changes made mid-stroke do
// not affect the stroke in progress.
type ToolState struct {
	mu    sync.RWMutex
	tool  Tool
	color string
	size  float64
}

func NewToolState() *ToolState {
	return &ToolState{tool: ToolPen, color: "#1a1a1a", size: 3}
}

func (t *ToolState) SetTool(tool Tool) {
	t.mu.Lock()
	t.tool = tool
	t.mu.Unlock()
}

func (t *ToolState) SetColor(color string) {
	t.mu.Lock()
	t.color = color
	t.mu.Unlock()
}

func (t *ToolState) SetSize(size float64) {
	t.mu.Lock()
	t.size = size
	t.mu.Unlock()
}

// Snapshot returns the current triple. Stroke sessions call this at
// stroke start.
func (t *ToolState) Snapshot() (Tool, string, float64) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tool, t.color, t.size
}

func (t *ToolState) Tool() Tool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tool
}

// toggleEraser implements the double-tap gesture: eraser flips back to
// pen, any other tool flips to eraser.
func (t *ToolState) toggleEraser() Tool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.tool == ToolEraser {
		t.tool = ToolPen
	} else {
		t.tool = ToolEraser
	}
	return t.tool
}
