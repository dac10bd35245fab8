package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strokePath(tool Tool, pts ...Point) SerializedPath {
	return SerializedPath{Tool: tool, Color: "#1a1a1a", Size: 3, Points: pts}
}

func pt(x, y float64) Point {
	return Point{X: x, Y: y, Pressure: 0.5}
}

func TestPathStoreRoundTrip(t *testing.T) {
	store := NewPathStore()
	store.Append(strokePath(ToolPen, pt(0, 0), pt(10, 5), pt(20, 7)))
	store.Append(strokePath(ToolHighlighter, pt(3, 3), pt(4, 4)))
	store.Append(SerializedPath{
		Tool: ToolMarker, Color: "rgb(200,40,40)", Size: 6,
		Points: []Point{{X: 1, Y: 2, Pressure: 0.9, TiltX: 20, TiltY: -5}, {X: 8, Y: 9, Pressure: 0.1}},
	})

	data, err := store.Serialize()
	require.NoError(t, err)

	paths, err := ParsePaths(data)
	require.NoError(t, err)
	assert.Equal(t, store.Paths(), paths)
}

func TestPathStoreUndoIsStrictPop(t *testing.T) {
	a := strokePath(ToolPen, pt(0, 0), pt(1, 1))
	b := strokePath(ToolPen, pt(2, 2), pt(3, 3))

	store := NewPathStore()
	require.True(t, store.Append(a))
	require.True(t, store.Append(b))

	assert.True(t, store.Undo())
	assert.Equal(t, []SerializedPath{a}, store.Paths())

	assert.True(t, store.Undo())
	assert.Empty(t, store.Paths())

	assert.False(t, store.Undo(), "undo on empty store is a no-op")
	assert.Empty(t, store.Paths())
}

func TestPathStoreRejectsShortPaths(t *testing.T) {
	store := NewPathStore()
	before, err := store.Serialize()
	require.NoError(t, err)

	assert.False(t, store.Append(strokePath(ToolPen, pt(5, 5))))
	assert.False(t, store.Append(strokePath(ToolPen)))

	after, err := store.Serialize()
	require.NoError(t, err)
	assert.Equal(t, before, after, "a tap must not change the serialized form")
}

func TestPathStoreEmptySerializesToEmptySequence(t *testing.T) {
	store := NewPathStore()
	data, err := store.Serialize()
	require.NoError(t, err)
	assert.Equal(t, "[]", data)
}

func TestPathStoreLoadDropsInvalid(t *testing.T) {
	store := NewPathStore()
	store.Load([]SerializedPath{
		strokePath(ToolPen, pt(0, 0), pt(1, 1)),
		strokePath(ToolPen, pt(9, 9)), // single point, invalid
	})
	assert.Equal(t, 1, store.Len())
}

func TestParsePathsMalformed(t *testing.T) {
	paths, err := ParsePaths("{not json")
	assert.Error(t, err)
	assert.Nil(t, paths)

	paths, err = ParsePaths("")
	assert.NoError(t, err)
	assert.Nil(t, paths)
}
