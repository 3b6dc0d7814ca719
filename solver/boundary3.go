package solver

import (
	"github.com/notargets/gofluid/field"
	"github.com/notargets/gofluid/grid"
	"github.com/notargets/gofluid/utils"
)

type GridBoundaryConditionSolver3 interface {
	ConstrainVelocity(velocity *grid.FaceCenteredGrid3,
		boundarySDF field.ScalarField3, boundaryVelocity field.VectorField3,
		extrapolationDepth int)
	CellMarkers(shape *grid.Grid3, boundarySDF, fluidSDF field.ScalarField3) *Markers3
}

// BlockedBoundaryConditionSolver3 is the 3D blocked solver: whole-cell
// solid classification, free-slip no-penetration at solid faces,
// optional friction, configurable closed outer boundaries.
type BlockedBoundaryConditionSolver3 struct {
	closedDomainBoundaryFlag int
	frictionCoefficient      float64
	markers                  *Markers3
}

func NewBlockedBoundaryConditionSolver3() *BlockedBoundaryConditionSolver3 {
	return &BlockedBoundaryConditionSolver3{
		closedDomainBoundaryFlag: DirectionAll,
	}
}

func (s *BlockedBoundaryConditionSolver3) ClosedDomainBoundaryFlag() int {
	return s.closedDomainBoundaryFlag
}

func (s *BlockedBoundaryConditionSolver3) SetClosedDomainBoundaryFlag(flag int) {
	s.closedDomainBoundaryFlag = flag
}

func (s *BlockedBoundaryConditionSolver3) FrictionCoefficient() float64 {
	return s.frictionCoefficient
}

func (s *BlockedBoundaryConditionSolver3) SetFrictionCoefficient(f float64) {
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	s.frictionCoefficient = f
}

func (s *BlockedBoundaryConditionSolver3) ConstrainVelocity(velocity *grid.FaceCenteredGrid3,
	boundarySDF field.ScalarField3, boundaryVelocity field.VectorField3,
	extrapolationDepth int) {
	_ = extrapolationDepth
	var (
		res   = velocity.Resolution()
		solid = s.solidMarkers(&velocity.Grid3, boundarySDF)
	)

	isSolid := func(i, j, k int) bool {
		return i >= 0 && i < res.X && j >= 0 && j < res.Y && k >= 0 && k < res.Z &&
			solid.At(i, j, k) == Solid
	}

	for k := 0; k < res.Z; k++ {
		for j := 0; j < res.Y; j++ {
			for i := 0; i <= res.X; i++ {
				if isSolid(i-1, j, k) || isSolid(i, j, k) {
					velocity.SetU(i, j, k, boundaryVelocity.Sample(velocity.UPosition(i, j, k)).X)
				}
			}
		}
	}
	for k := 0; k < res.Z; k++ {
		for j := 0; j <= res.Y; j++ {
			for i := 0; i < res.X; i++ {
				if isSolid(i, j-1, k) || isSolid(i, j, k) {
					velocity.SetV(i, j, k, boundaryVelocity.Sample(velocity.VPosition(i, j, k)).Y)
				}
			}
		}
	}
	for k := 0; k <= res.Z; k++ {
		for j := 0; j < res.Y; j++ {
			for i := 0; i < res.X; i++ {
				if isSolid(i, j, k-1) || isSolid(i, j, k) {
					velocity.SetW(i, j, k, boundaryVelocity.Sample(velocity.WPosition(i, j, k)).Z)
				}
			}
		}
	}

	if s.frictionCoefficient > 0 {
		damp := 1 - s.frictionCoefficient
		touchesSolidU := func(i, j, k int) bool {
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				if isSolid(i-1, j+d[0], k+d[1]) || isSolid(i, j+d[0], k+d[1]) {
					return true
				}
			}
			return false
		}
		touchesSolidV := func(i, j, k int) bool {
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				if isSolid(i+d[0], j-1, k+d[1]) || isSolid(i+d[0], j, k+d[1]) {
					return true
				}
			}
			return false
		}
		touchesSolidW := func(i, j, k int) bool {
			for _, d := range [][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
				if isSolid(i+d[0], j+d[1], k-1) || isSolid(i+d[0], j+d[1], k) {
					return true
				}
			}
			return false
		}
		for k := 0; k < res.Z; k++ {
			for j := 0; j < res.Y; j++ {
				for i := 0; i <= res.X; i++ {
					if isSolid(i-1, j, k) || isSolid(i, j, k) {
						continue
					}
					if touchesSolidU(i, j, k) {
						velocity.SetU(i, j, k, damp*velocity.U(i, j, k))
					}
				}
			}
		}
		for k := 0; k < res.Z; k++ {
			for j := 0; j <= res.Y; j++ {
				for i := 0; i < res.X; i++ {
					if isSolid(i, j-1, k) || isSolid(i, j, k) {
						continue
					}
					if touchesSolidV(i, j, k) {
						velocity.SetV(i, j, k, damp*velocity.V(i, j, k))
					}
				}
			}
		}
		for k := 0; k <= res.Z; k++ {
			for j := 0; j < res.Y; j++ {
				for i := 0; i < res.X; i++ {
					if isSolid(i, j, k-1) || isSolid(i, j, k) {
						continue
					}
					if touchesSolidW(i, j, k) {
						velocity.SetW(i, j, k, damp*velocity.W(i, j, k))
					}
				}
			}
		}
	}

	if s.closedDomainBoundaryFlag&DirectionLeft != 0 {
		for k := 0; k < res.Z; k++ {
			for j := 0; j < res.Y; j++ {
				velocity.SetU(0, j, k, 0)
			}
		}
	}
	if s.closedDomainBoundaryFlag&DirectionRight != 0 {
		for k := 0; k < res.Z; k++ {
			for j := 0; j < res.Y; j++ {
				velocity.SetU(res.X, j, k, 0)
			}
		}
	}
	if s.closedDomainBoundaryFlag&DirectionDown != 0 {
		for k := 0; k < res.Z; k++ {
			for i := 0; i < res.X; i++ {
				velocity.SetV(i, 0, k, 0)
			}
		}
	}
	if s.closedDomainBoundaryFlag&DirectionUp != 0 {
		for k := 0; k < res.Z; k++ {
			for i := 0; i < res.X; i++ {
				velocity.SetV(i, res.Y, k, 0)
			}
		}
	}
	if s.closedDomainBoundaryFlag&DirectionBack != 0 {
		for j := 0; j < res.Y; j++ {
			for i := 0; i < res.X; i++ {
				velocity.SetW(i, j, 0, 0)
			}
		}
	}
	if s.closedDomainBoundaryFlag&DirectionFront != 0 {
		for j := 0; j < res.Y; j++ {
			for i := 0; i < res.X; i++ {
				velocity.SetW(i, j, res.Z, 0)
			}
		}
	}
}

func (s *BlockedBoundaryConditionSolver3) CellMarkers(shape *grid.Grid3,
	boundarySDF, fluidSDF field.ScalarField3) *Markers3 {
	var (
		res = shape.Resolution()
		m   = s.ensureMarkers(res)
		pm  = utils.NewPartitionMap(parallelDegree(res.Z), res.Z)
	)
	pm.RunParallel(func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			for j := 0; j < res.Y; j++ {
				for i := 0; i < res.X; i++ {
					pos := shape.CellCenterPosition(i, j, k)
					switch {
					case boundarySDF.Sample(pos) < 0:
						m.Set(i, j, k, Solid)
					case fluidSDF.Sample(pos) > 0:
						m.Set(i, j, k, Fluid)
					default:
						m.Set(i, j, k, Air)
					}
				}
			}
		}
	})
	return m
}

func (s *BlockedBoundaryConditionSolver3) solidMarkers(shape *grid.Grid3,
	boundarySDF field.ScalarField3) *Markers3 {
	var (
		res = shape.Resolution()
		m   = s.ensureMarkers(res)
		pm  = utils.NewPartitionMap(parallelDegree(res.Z), res.Z)
	)
	pm.RunParallel(func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			for j := 0; j < res.Y; j++ {
				for i := 0; i < res.X; i++ {
					if boundarySDF.Sample(shape.CellCenterPosition(i, j, k)) < 0 {
						m.Set(i, j, k, Solid)
					} else {
						m.Set(i, j, k, Fluid)
					}
				}
			}
		}
	})
	return m
}

func (s *BlockedBoundaryConditionSolver3) ensureMarkers(res grid.Size3) *Markers3 {
	if s.markers == nil || s.markers.Size != res {
		s.markers = NewMarkers3(res)
	}
	return s.markers
}
