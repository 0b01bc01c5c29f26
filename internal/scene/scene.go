// Package scene is the retained visual layer between the game core and the
// render backend. The core creates, moves and removes visuals through the
// Scene interface; Graph keeps them in memory and paints them each frame.
package scene

import (
	"image/color"
	"sort"

	"chosenoffset.com/shapesort/internal/core/vec"
)

// Visual kinds understood by Graph.Draw
const (
	KindCube   = "cube"
	KindCone   = "cone"
	KindSphere = "sphere"
	KindTarget = "target"
)

// Handle identifies a visual. The zero handle is never issued.
type Handle uint64

// Material describes how a visual is painted.
type Material struct {
	Color color.RGBA
	Icon  string // target icon kind
}

// Scene is the rendering collaborator used by the match engine.
type Scene interface {
	CreateVisual(kind string, material Material) Handle
	SetPosition(h Handle, p vec.Vec3)
	SetRotation(h Handle, r vec.Vec3)
	SetScale(h Handle, s float64)
	Remove(h Handle)
	// HitTest returns the nearest of handles within hit range of point.
	HitTest(point vec.Vec3, handles []Handle) (Handle, bool)
}

// Visual is one retained drawable.
type Visual struct {
	Kind     string
	Material Material
	Position vec.Vec3
	Rotation vec.Vec3
	Scale    float64
}

// Graph is the in-memory Scene implementation.
type Graph struct {
	hitRadius float64
	visuals   map[Handle]*Visual
	order     []Handle
	next      Handle
}

// NewGraph creates an empty graph. hitRadius is the planar grab radius of a
// unit-scale visual.
func NewGraph(hitRadius float64) *Graph {
	return &Graph{
		hitRadius: hitRadius,
		visuals:   make(map[Handle]*Visual),
	}
}

// CreateVisual adds a visual at the origin.
func (g *Graph) CreateVisual(kind string, material Material) Handle {
	g.next++
	h := g.next
	g.visuals[h] = &Visual{Kind: kind, Material: material, Scale: 1}
	g.order = append(g.order, h)
	return h
}

// SetPosition moves a visual. Unknown handles are ignored.
func (g *Graph) SetPosition(h Handle, p vec.Vec3) {
	if v, ok := g.visuals[h]; ok {
		v.Position = p
	}
}

// SetRotation sets a visual's euler rotation in radians.
func (g *Graph) SetRotation(h Handle, r vec.Vec3) {
	if v, ok := g.visuals[h]; ok {
		v.Rotation = r
	}
}

// SetScale sets a visual's uniform scale.
func (g *Graph) SetScale(h Handle, s float64) {
	if v, ok := g.visuals[h]; ok {
		v.Scale = s
	}
}

// Remove deletes a visual. Removing twice is a no-op.
func (g *Graph) Remove(h Handle) {
	if _, ok := g.visuals[h]; !ok {
		return
	}
	delete(g.visuals, h)
	for i, o := range g.order {
		if o == h {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// HitTest returns the handle nearest to point among handles whose planar
// distance is within the hit radius. Ties keep the earlier handle.
func (g *Graph) HitTest(point vec.Vec3, handles []Handle) (Handle, bool) {
	var (
		best     Handle
		bestDist float64
		found    bool
	)
	for _, h := range handles {
		v, ok := g.visuals[h]
		if !ok {
			continue
		}
		d := vec.PlanarDistance(point, v.Position)
		if d > g.hitRadius*v.Scale {
			continue
		}
		if !found || d < bestDist {
			best, bestDist, found = h, d, true
		}
	}
	return best, found
}

// Visual returns a copy of the visual for h.
func (g *Graph) Visual(h Handle) (Visual, bool) {
	v, ok := g.visuals[h]
	if !ok {
		return Visual{}, false
	}
	return *v, true
}

// Len returns the number of live visuals.
func (g *Graph) Len() int {
	return len(g.visuals)
}

// sorted returns visuals back to front.
func (g *Graph) sorted() []*Visual {
	out := make([]*Visual, 0, len(g.order))
	for _, h := range g.order {
		out = append(out, g.visuals[h])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position.Z < out[j].Position.Z
	})
	return out
}
