package solver

import (
	"github.com/notargets/gofluid/field"
	"github.com/notargets/gofluid/grid"
	"github.com/notargets/gofluid/utils"
)

// Direction flags selecting which outer domain boundaries are closed.
// A closed direction zeroes the normal velocity on that side of the
// domain; an open direction leaves it untouched.
const (
	DirectionLeft = 1 << iota
	DirectionRight
	DirectionDown
	DirectionUp
	DirectionBack
	DirectionFront
	DirectionNone = 0
	DirectionAll  = DirectionLeft | DirectionRight | DirectionDown |
		DirectionUp | DirectionBack | DirectionFront
)

// DefaultExtrapolationDepth is the number of cells a boundary condition
// solver may extrapolate velocity into the solid region before
// constraining it.
const DefaultExtrapolationDepth = 5

/*
	GridBoundaryConditionSolver2 constrains a face-centered velocity grid
	against a solid boundary described by a signed-distance field, and
	classifies cells for the pressure solver. Different pressure solver
	formulations need different boundary treatments (binary cell
	classification here, fractional coverage for cut-cell variants), so
	the pairing is declared by the pressure solver via
	SuggestedBoundaryConditionSolver.
*/
type GridBoundaryConditionSolver2 interface {
	// ConstrainVelocity mutates velocity in place so that faces on or
	// inside the solid region carry the boundary's normal velocity.
	// It never fails for well-formed inputs.
	ConstrainVelocity(velocity *grid.FaceCenteredGrid2,
		boundarySDF field.ScalarField2, boundaryVelocity field.VectorField2,
		extrapolationDepth int)
	// CellMarkers classifies every cell of the shape as Solid, Fluid or
	// Air. The returned buffer is owned by the solver and valid until the
	// next call.
	CellMarkers(shape *grid.Grid2, boundarySDF, fluidSDF field.ScalarField2) *Markers2
}

/*
	BlockedBoundaryConditionSolver2 classifies whole cells as solid or
	not (no fractional coverage) from the SDF sign at cell centers.

	Policy: every face adjacent to a solid cell gets its stored normal
	component set to the matching component of the boundary velocity at
	the face center; tangential components on neighboring faces are left
	untouched (free-slip). An optional friction coefficient damps the
	remaining face velocities of cells that touch a solid cell laterally.
	The blocked classification has no sub-cell information to extrapolate
	into, so extrapolationDepth is accepted and ignored.
*/
type BlockedBoundaryConditionSolver2 struct {
	closedDomainBoundaryFlag int
	frictionCoefficient      float64
	markers                  *Markers2
}

func NewBlockedBoundaryConditionSolver2() *BlockedBoundaryConditionSolver2 {
	return &BlockedBoundaryConditionSolver2{
		closedDomainBoundaryFlag: DirectionAll,
	}
}

func (s *BlockedBoundaryConditionSolver2) ClosedDomainBoundaryFlag() int {
	return s.closedDomainBoundaryFlag
}

func (s *BlockedBoundaryConditionSolver2) SetClosedDomainBoundaryFlag(flag int) {
	s.closedDomainBoundaryFlag = flag
}

func (s *BlockedBoundaryConditionSolver2) FrictionCoefficient() float64 {
	return s.frictionCoefficient
}

// SetFrictionCoefficient clamps to [0,1]; 0 is free-slip, 1 zeroes
// tangentially adjacent face velocities.
func (s *BlockedBoundaryConditionSolver2) SetFrictionCoefficient(f float64) {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	s.frictionCoefficient = f
}

func (s *BlockedBoundaryConditionSolver2) ConstrainVelocity(velocity *grid.FaceCenteredGrid2,
	boundarySDF field.ScalarField2, boundaryVelocity field.VectorField2,
	extrapolationDepth int) {
	_ = extrapolationDepth
	var (
		res   = velocity.Resolution()
		solid = s.solidMarkers(&velocity.Grid2, boundarySDF)
	)

	isSolid := func(i, j int) bool {
		return i >= 0 && i < res.X && j >= 0 && j < res.Y && solid.At(i, j) == Solid
	}

	// No-penetration: each face stores exactly the component normal to
	// itself, so setting it to the boundary velocity's matching
	// component enforces the constraint while leaving tangential
	// components (held on other faces) alone.
	for j := 0; j < res.Y; j++ {
		for i := 0; i <= res.X; i++ {
			if isSolid(i-1, j) || isSolid(i, j) {
				velocity.SetU(i, j, boundaryVelocity.Sample(velocity.UPosition(i, j)).X)
			}
		}
	}
	for j := 0; j <= res.Y; j++ {
		for i := 0; i < res.X; i++ {
			if isSolid(i, j-1) || isSolid(i, j) {
				velocity.SetV(i, j, boundaryVelocity.Sample(velocity.VPosition(i, j)).Y)
			}
		}
	}

	if s.frictionCoefficient > 0 {
		damp := 1 - s.frictionCoefficient
		for j := 0; j < res.Y; j++ {
			for i := 0; i <= res.X; i++ {
				if isSolid(i-1, j) || isSolid(i, j) {
					continue // already constrained
				}
				if isSolid(i-1, j-1) || isSolid(i, j-1) || isSolid(i-1, j+1) || isSolid(i, j+1) {
					velocity.SetU(i, j, damp*velocity.U(i, j))
				}
			}
		}
		for j := 0; j <= res.Y; j++ {
			for i := 0; i < res.X; i++ {
				if isSolid(i, j-1) || isSolid(i, j) {
					continue
				}
				if isSolid(i-1, j-1) || isSolid(i-1, j) || isSolid(i+1, j-1) || isSolid(i+1, j) {
					velocity.SetV(i, j, damp*velocity.V(i, j))
				}
			}
		}
	}

	// Outer domain faces, after the solid constraint so a closed wall
	// wins over a moving boundary that overlaps the domain edge.
	if s.closedDomainBoundaryFlag&DirectionLeft != 0 {
		for j := 0; j < res.Y; j++ {
			velocity.SetU(0, j, 0)
		}
	}
	if s.closedDomainBoundaryFlag&DirectionRight != 0 {
		for j := 0; j < res.Y; j++ {
			velocity.SetU(res.X, j, 0)
		}
	}
	if s.closedDomainBoundaryFlag&DirectionDown != 0 {
		for i := 0; i < res.X; i++ {
			velocity.SetV(i, 0, 0)
		}
	}
	if s.closedDomainBoundaryFlag&DirectionUp != 0 {
		for i := 0; i < res.X; i++ {
			velocity.SetV(i, res.Y, 0)
		}
	}
}

func (s *BlockedBoundaryConditionSolver2) CellMarkers(shape *grid.Grid2,
	boundarySDF, fluidSDF field.ScalarField2) *Markers2 {
	var (
		res = shape.Resolution()
		m   = s.ensureMarkers(res)
		pm  = utils.NewPartitionMap(parallelDegree(res.Y), res.Y)
	)
	pm.RunParallel(func(jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			for i := 0; i < res.X; i++ {
				pos := shape.CellCenterPosition(i, j)
				switch {
				case boundarySDF.Sample(pos) < 0:
					m.Set(i, j, Solid)
				case fluidSDF.Sample(pos) > 0:
					m.Set(i, j, Fluid)
				default:
					m.Set(i, j, Air)
				}
			}
		}
	})
	return m
}

// solidMarkers classifies against the boundary SDF only; fluid vs air
// does not matter for the velocity constraint.
func (s *BlockedBoundaryConditionSolver2) solidMarkers(shape *grid.Grid2,
	boundarySDF field.ScalarField2) *Markers2 {
	var (
		res = shape.Resolution()
		m   = s.ensureMarkers(res)
		pm  = utils.NewPartitionMap(parallelDegree(res.Y), res.Y)
	)
	pm.RunParallel(func(jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			for i := 0; i < res.X; i++ {
				if boundarySDF.Sample(shape.CellCenterPosition(i, j)) < 0 {
					m.Set(i, j, Solid)
				} else {
					m.Set(i, j, Fluid)
				}
			}
		}
	})
	return m
}

func (s *BlockedBoundaryConditionSolver2) ensureMarkers(res grid.Size2) *Markers2 {
	if s.markers == nil || s.markers.Size != res {
		s.markers = NewMarkers2(res)
	}
	return s.markers
}
