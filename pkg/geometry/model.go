package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Model binds one material to an ordered group of primitives. It is the unit
// of material assignment and of broad-phase culling.
type Model struct {
	Name       string
	Material   material.Material
	Primitives []Primitive
	bounds     core.AABB // Derived from Primitives, rebuilt on Transform
}

// NewModel creates a model and validates its material and geometry
func NewModel(mat material.Material, primitives ...Primitive) (*Model, error) {
	m := &Model{
		Material:   mat,
		Primitives: primitives,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.computeBounds()
	return m, nil
}

// MustModel is NewModel for literal scene construction; it panics on invalid input
func MustModel(mat material.Material, primitives ...Primitive) *Model {
	m, err := NewModel(mat, primitives...)
	if err != nil {
		panic(err)
	}
	return m
}

// Named sets the model's display name and returns the model
func (m *Model) Named(name string) *Model {
	m.Name = name
	return m
}

// Validate checks the material and every primitive
func (m *Model) Validate() error {
	if len(m.Primitives) == 0 {
		return ErrEmptyModel
	}
	if err := m.Material.Validate(); err != nil {
		return err
	}
	for i, p := range m.Primitives {
		if p == nil {
			return fmt.Errorf("primitive %d is nil", i)
		}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s %d: %w", Describe(p), i, err)
		}
	}
	return nil
}

// computeBounds recomputes the box enclosing every primitive
func (m *Model) computeBounds() {
	bounds := core.EmptyAABB()
	for _, p := range m.Primitives {
		bounds = bounds.Union(p.Bounds())
	}
	m.bounds = bounds
}

// Bounds returns the model's axis-aligned bounding box
func (m *Model) Bounds() core.AABB {
	return m.bounds
}

// Transformed returns a copy of the model with every primitive transformed
// and the bounding box rebuilt. The receiver is left untouched, also when
// the transformed geometry fails validation.
func (m *Model) Transformed(t Transform) (*Model, error) {
	primitives := make([]Primitive, len(m.Primitives))
	for i, p := range m.Primitives {
		primitives[i] = p.transformed(t)
	}

	out := &Model{Name: m.Name, Material: m.Material, Primitives: primitives}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	out.computeBounds()
	return out, nil
}

// Transform replaces the model's geometry with its transformed copy. It is
// part of the scene build phase and must not be called once rendering has
// started. On error the model is unchanged.
func (m *Model) Transform(t Transform) error {
	out, err := m.Transformed(t)
	if err != nil {
		return err
	}
	m.Primitives = out.Primitives
	m.bounds = out.bounds
	return nil
}

// Hit returns the nearest primitive hit closer than maxDistance. Primitives
// are tested in order; on exactly equal distances the earlier one wins.
func (m *Model) Hit(ray core.Ray, maxDistance float64) (*HitRecord, bool) {
	var nearest Primitive
	closest := maxDistance

	for _, p := range m.Primitives {
		if distance, ok := p.Intersect(ray); ok && distance < closest {
			closest = distance
			nearest = p
		}
	}

	if nearest == nil {
		return nil, false
	}
	return NewHitRecord(ray, closest, nearest, m), true
}

// Occludes reports whether any primitive intersects the ray
func (m *Model) Occludes(ray core.Ray) bool {
	if !m.bounds.Hit(ray) {
		return false
	}
	for _, p := range m.Primitives {
		if _, ok := p.Intersect(ray); ok {
			return true
		}
	}
	return false
}

// NoLimit is the maxDistance for an unbounded nearest-hit search
var NoLimit = math.Inf(1)
