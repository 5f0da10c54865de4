package utils

import (
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/require"
)

func TestBBPenetrationPicksShallowestAxis(t *testing.T) {
	ledge := cube.Box(0, 0, 0, 2, 1, 2)
	// Sunk 0.1 into the top face, well inside on X and Z.
	feet := cube.Box(0.5, 0.9, 0.5, 1.1, 2.7, 1.1)

	pen, ok := BBPenetration(ledge, feet)
	require.True(t, ok)
	require.Equal(t, 1, pen.Axis)
	require.Equal(t, mgl32.Vec3{0, 1, 0}, pen.Direction)
	require.InDelta(t, 0.1, pen.Depth, 1e-5)

	pushed := feet.Translate(pen.Direction.Mul(pen.Depth + 0.01))
	_, ok = BBPenetration(ledge, pushed)
	require.False(t, ok)
	require.InDelta(t, 0.01, BBClearance(ledge, pushed), 1e-5)
}

func TestBBPenetrationNegativeDirection(t *testing.T) {
	wall := cube.Box(0, 0, 0, 1, 3, 1)
	body := cube.Box(-0.5, 0, 0.2, 0.2, 1.8, 0.8)

	pen, ok := BBPenetration(wall, body)
	require.True(t, ok)
	require.Equal(t, mgl32.Vec3{-1, 0, 0}, pen.Direction)
	require.InDelta(t, 0.2, pen.Depth, 1e-5)
}

func TestBBPenetrationSeparated(t *testing.T) {
	a := cube.Box(0, 0, 0, 1, 1, 1)
	_, ok := BBPenetration(a, cube.Box(1, 0, 0, 2, 1, 1))
	require.False(t, ok, "touching faces do not overlap")
	_, ok = BBPenetration(a, cube.Box(3, 3, 3, 4, 4, 4))
	require.False(t, ok)
	require.InDelta(t, 2, BBClearance(a, cube.Box(3, 3, 3, 4, 4, 4)), 1e-5)
}

func TestBBClearance(t *testing.T) {
	a := cube.Box(0, 0, 0, 1, 1, 1)
	require.InDelta(t, 0.5, BBClearance(a, cube.Box(1.5, 0, 0, 2, 1, 1)), 1e-5)
	require.InDelta(t, 0.25, BBClearance(a, cube.Box(0.5, 1.25, -3, 4, 2, 3)), 1e-5)
	// Overlapping on every axis: the shallowest overlap, negated.
	require.InDelta(t, -0.2, BBClearance(a, cube.Box(0.8, 0.5, 0.5, 2, 2, 2)), 1e-5)
	require.IsType(t, float32(0), BBClearance(a, a))
}
