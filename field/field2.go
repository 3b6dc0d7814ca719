package field

import (
	"math"

	"github.com/notargets/gofluid/grid"
)

/*
	Fields are functions over world space, sampled at arbitrary points -
	not only at grid-aligned positions. Signed-distance fields for
	boundaries and fluid regions, and boundary velocity fields, all come
	through these two capabilities. Implementations are either closed
	form (constants, analytic shapes) or grid-backed with interpolation.
*/
type ScalarField2 interface {
	Sample(p grid.Vector2) float64
}

type VectorField2 interface {
	Sample(p grid.Vector2) grid.Vector2
}

type ConstantScalarField2 struct {
	value float64
}

func NewConstantScalarField2(value float64) *ConstantScalarField2 {
	return &ConstantScalarField2{value: value}
}

func (f *ConstantScalarField2) Sample(grid.Vector2) float64 { return f.value }

type ConstantVectorField2 struct {
	value grid.Vector2
}

func NewConstantVectorField2(value grid.Vector2) *ConstantVectorField2 {
	return &ConstantVectorField2{value: value}
}

func (f *ConstantVectorField2) Sample(grid.Vector2) grid.Vector2 { return f.value }

// CircleSDF2 is the analytic signed distance to a circle, negative
// inside. Used as a solid-boundary field for round obstacles.
type CircleSDF2 struct {
	Center grid.Vector2
	Radius float64
}

func (f CircleSDF2) Sample(p grid.Vector2) float64 {
	d := p.Sub(f.Center)
	return math.Sqrt(d.X*d.X+d.Y*d.Y) - f.Radius
}
