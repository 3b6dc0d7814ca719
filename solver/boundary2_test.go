package solver

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/gofluid/field"
	"github.com/notargets/gofluid/grid"
)

// solid SDF that marks exactly one cell: negative at that cell's
// center, positive elsewhere.
type oneCellSolid2 struct {
	shape *grid.Grid2
	i, j  int
}

func (f oneCellSolid2) Sample(p grid.Vector2) float64 {
	c := f.shape.CellCenterPosition(f.i, f.j)
	h := f.shape.GridSpacing()
	if math.Abs(p.X-c.X) < 0.5*h.X && math.Abs(p.Y-c.Y) < 0.5*h.Y {
		return -1
	}
	return 1
}

func TestBlockedBoundaryConditionSolver2_SolidCell(t *testing.T) {
	vel, _ := grid.NewFaceCenteredGrid2(grid.Size2{X: 4, Y: 4},
		grid.Vector2{X: 1, Y: 1}, grid.Vector2{})
	vel.Fill(grid.Vector2{X: 1, Y: 1})

	bc := NewBlockedBoundaryConditionSolver2()
	bc.SetClosedDomainBoundaryFlag(DirectionNone)
	boundarySDF := oneCellSolid2{shape: &vel.Grid2, i: 2, j: 1}
	bc.ConstrainVelocity(vel, boundarySDF, field.NewConstantVectorField2(grid.Vector2{}), DefaultExtrapolationDepth)

	// All four faces of the solid cell carry the (zero) boundary velocity.
	assert.Equal(t, 0., vel.U(2, 1))
	assert.Equal(t, 0., vel.U(3, 1))
	assert.Equal(t, 0., vel.V(2, 1))
	assert.Equal(t, 0., vel.V(2, 2))
	// Tangential components on neighboring faces are untouched (free slip).
	assert.Equal(t, 1., vel.V(1, 1))
	assert.Equal(t, 1., vel.V(3, 2))
	// Far away faces untouched.
	assert.Equal(t, 1., vel.U(0, 3))
}

func TestBlockedBoundaryConditionSolver2_MovingBoundary(t *testing.T) {
	vel, _ := grid.NewFaceCenteredGrid2(grid.Size2{X: 4, Y: 4},
		grid.Vector2{X: 1, Y: 1}, grid.Vector2{})
	vel.Fill(grid.Vector2{})

	bc := NewBlockedBoundaryConditionSolver2()
	bc.SetClosedDomainBoundaryFlag(DirectionNone)
	boundarySDF := oneCellSolid2{shape: &vel.Grid2, i: 1, j: 1}
	bc.ConstrainVelocity(vel, boundarySDF,
		field.NewConstantVectorField2(grid.Vector2{X: 3, Y: -2}), DefaultExtrapolationDepth)

	// Normal components take the boundary velocity's matching component.
	assert.Equal(t, 3., vel.U(1, 1))
	assert.Equal(t, 3., vel.U(2, 1))
	assert.Equal(t, -2., vel.V(1, 1))
	assert.Equal(t, -2., vel.V(1, 2))
}

func TestBlockedBoundaryConditionSolver2_ClosedDomain(t *testing.T) {
	vel, _ := grid.NewFaceCenteredGrid2(grid.Size2{X: 3, Y: 3},
		grid.Vector2{X: 1, Y: 1}, grid.Vector2{})

	{ // default: all directions closed
		vel.Fill(grid.Vector2{X: 1, Y: 1})
		bc := NewBlockedBoundaryConditionSolver2()
		assert.Equal(t, DirectionAll, bc.ClosedDomainBoundaryFlag())
		bc.ConstrainVelocity(vel, nil2Scalar(), nil2Vector(), DefaultExtrapolationDepth)
		for j := 0; j < 3; j++ {
			assert.Equal(t, 0., vel.U(0, j))
			assert.Equal(t, 0., vel.U(3, j))
		}
		for i := 0; i < 3; i++ {
			assert.Equal(t, 0., vel.V(i, 0))
			assert.Equal(t, 0., vel.V(i, 3))
		}
		assert.Equal(t, 1., vel.U(1, 1)) // interior untouched
	}
	{ // open left/right, closed top/bottom
		vel.Fill(grid.Vector2{X: 1, Y: 1})
		bc := NewBlockedBoundaryConditionSolver2()
		bc.SetClosedDomainBoundaryFlag(DirectionDown | DirectionUp)
		bc.ConstrainVelocity(vel, nil2Scalar(), nil2Vector(), DefaultExtrapolationDepth)
		assert.Equal(t, 1., vel.U(0, 0))
		assert.Equal(t, 1., vel.U(3, 2))
		assert.Equal(t, 0., vel.V(1, 0))
		assert.Equal(t, 0., vel.V(1, 3))
	}
}

func TestBlockedBoundaryConditionSolver2_Friction(t *testing.T) {
	vel, _ := grid.NewFaceCenteredGrid2(grid.Size2{X: 4, Y: 4},
		grid.Vector2{X: 1, Y: 1}, grid.Vector2{})
	vel.Fill(grid.Vector2{X: 2, Y: 0})

	bc := NewBlockedBoundaryConditionSolver2()
	bc.SetClosedDomainBoundaryFlag(DirectionNone)
	bc.SetFrictionCoefficient(0.5)
	assert.Equal(t, 0.5, bc.FrictionCoefficient())
	bc.SetFrictionCoefficient(7) // clamps
	assert.Equal(t, 1., bc.FrictionCoefficient())
	bc.SetFrictionCoefficient(0.5)

	boundarySDF := oneCellSolid2{shape: &vel.Grid2, i: 1, j: 1}
	bc.ConstrainVelocity(vel, boundarySDF, field.NewConstantVectorField2(grid.Vector2{}), DefaultExtrapolationDepth)

	// u-face above the solid cell is damped, not zeroed.
	assert.Equal(t, 1., vel.U(1, 2))
	// u-faces of the solid cell itself follow the no-penetration rule.
	assert.Equal(t, 0., vel.U(1, 1))
	// Distant faces unaffected.
	assert.Equal(t, 2., vel.U(3, 3))
}

func TestBlockedBoundaryConditionSolver2_CellMarkers(t *testing.T) {
	shape, _ := grid.NewGrid2(grid.Size2{X: 4, Y: 4}, grid.Vector2{X: 1, Y: 1}, grid.Vector2{})
	bc := NewBlockedBoundaryConditionSolver2()

	boundarySDF := oneCellSolid2{shape: shape, i: 0, j: 0}
	// Fluid below y = 2, air above.
	fluidSDF := planeSDF2{}

	m := bc.CellMarkers(shape, boundarySDF, fluidSDF)
	assert.Equal(t, Solid, m.At(0, 0))
	assert.Equal(t, Fluid, m.At(2, 0))
	assert.Equal(t, Fluid, m.At(2, 1))
	assert.Equal(t, Air, m.At(2, 2))
	assert.Equal(t, Air, m.At(2, 3))
	assert.Equal(t, 7, m.CountOf(Fluid))
	assert.Equal(t, 8, m.CountOf(Air))
	assert.Equal(t, 1, m.CountOf(Solid))
}

// planeSDF2 is positive (fluid) below y = 2.
type planeSDF2 struct{}

func (planeSDF2) Sample(p grid.Vector2) float64 { return 2 - p.Y }

func nil2Scalar() field.ScalarField2 {
	return field.NewConstantScalarField2(math.MaxFloat64)
}

func nil2Vector() field.VectorField2 {
	return field.NewConstantVectorField2(grid.Vector2{})
}
