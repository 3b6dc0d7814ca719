package field

import (
	"math"

	"github.com/notargets/gofluid/grid"
)

type ScalarField3 interface {
	Sample(p grid.Vector3) float64
}

type VectorField3 interface {
	Sample(p grid.Vector3) grid.Vector3
}

type ConstantScalarField3 struct {
	value float64
}

func NewConstantScalarField3(value float64) *ConstantScalarField3 {
	return &ConstantScalarField3{value: value}
}

func (f *ConstantScalarField3) Sample(grid.Vector3) float64 { return f.value }

type ConstantVectorField3 struct {
	value grid.Vector3
}

func NewConstantVectorField3(value grid.Vector3) *ConstantVectorField3 {
	return &ConstantVectorField3{value: value}
}

func (f *ConstantVectorField3) Sample(grid.Vector3) grid.Vector3 { return f.value }

// SphereSDF3 is the analytic signed distance to a sphere, negative
// inside.
type SphereSDF3 struct {
	Center grid.Vector3
	Radius float64
}

func (f SphereSDF3) Sample(p grid.Vector3) float64 {
	d := p.Sub(f.Center)
	return math.Sqrt(d.X*d.X+d.Y*d.Y+d.Z*d.Z) - f.Radius
}
