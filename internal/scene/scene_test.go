package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/shapesort/internal/core/vec"
)

func TestCreateAndRemove(t *testing.T) {
	g := NewGraph(0.6)
	a := g.CreateVisual(KindCube, Material{})
	b := g.CreateVisual(KindCone, Material{})
	assert.NotEqual(t, Handle(0), a)
	assert.NotEqual(t, a, b)
	assert.Equal(t, 2, g.Len())

	g.Remove(a)
	g.Remove(a)
	assert.Equal(t, 1, g.Len())
	_, ok := g.Visual(a)
	assert.False(t, ok)
}

func TestSettersUpdateVisual(t *testing.T) {
	g := NewGraph(0.6)
	h := g.CreateVisual(KindSphere, Material{})
	g.SetPosition(h, vec.Vec3{X: 1, Y: 2, Z: 3})
	g.SetRotation(h, vec.Vec3{Y: 0.5})
	g.SetScale(h, 1.1)

	v, ok := g.Visual(h)
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{X: 1, Y: 2, Z: 3}, v.Position)
	assert.Equal(t, 0.5, v.Rotation.Y)
	assert.Equal(t, 1.1, v.Scale)

	// unknown handle is ignored
	g.SetPosition(Handle(99), vec.Vec3{X: 5})
}

func TestHitTestPicksNearestWithinRadius(t *testing.T) {
	g := NewGraph(0.6)
	far := g.CreateVisual(KindCube, Material{})
	near := g.CreateVisual(KindCube, Material{})
	out := g.CreateVisual(KindCube, Material{})
	g.SetPosition(far, vec.Vec3{X: 0.5})
	g.SetPosition(near, vec.Vec3{X: 0.1})
	g.SetPosition(out, vec.Vec3{X: 3})

	h, ok := g.HitTest(vec.Vec3{}, []Handle{far, near, out})
	require.True(t, ok)
	assert.Equal(t, near, h)

	_, ok = g.HitTest(vec.Vec3{X: 10}, []Handle{far, near, out})
	assert.False(t, ok)
}

func TestHitTestOnlyConsidersGivenHandles(t *testing.T) {
	g := NewGraph(0.6)
	a := g.CreateVisual(KindCube, Material{})
	b := g.CreateVisual(KindCube, Material{})
	g.SetPosition(b, vec.Vec3{X: 0.3})

	h, ok := g.HitTest(vec.Vec3{}, []Handle{b})
	require.True(t, ok)
	assert.Equal(t, b, h)
	assert.NotEqual(t, a, h)
}

func TestHitTestTieKeepsFirst(t *testing.T) {
	g := NewGraph(0.6)
	a := g.CreateVisual(KindCube, Material{})
	b := g.CreateVisual(KindCube, Material{})

	h, ok := g.HitTest(vec.Vec3{}, []Handle{a, b})
	require.True(t, ok)
	assert.Equal(t, a, h)
}

func TestCameraRoundTrip(t *testing.T) {
	cam := Camera{FOVDegrees: 45, Z: 15, Aspect: 1280.0 / 800.0}

	center := cam.Unproject(0, 0)
	assert.InDelta(t, 0, center.X, 1e-9)
	assert.InDelta(t, 0, center.Y, 1e-9)

	p := cam.Unproject(0.5, -0.25)
	sx, sy, ppu := cam.Project(p, 1280, 800)
	assert.InDelta(t, 960, sx, 1e-6)
	assert.InDelta(t, 500, sy, 1e-6)
	assert.Greater(t, ppu, 0.0)

	// top edge of the view at 45 degrees, 15 units away
	top := cam.Unproject(0, 1)
	assert.InDelta(t, 6.2132, top.Y, 1e-3)
}

func TestSortedBackToFront(t *testing.T) {
	g := NewGraph(0.6)
	lifted := g.CreateVisual(KindCube, Material{})
	flat := g.CreateVisual(KindCone, Material{})
	_ = flat
	g.SetPosition(lifted, vec.Vec3{Z: 1})

	order := g.sorted()
	require.Len(t, order, 2)
	assert.Equal(t, KindCone, order[0].Kind)
	assert.Equal(t, KindCube, order[1].Kind)
}
