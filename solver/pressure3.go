package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofluid/fdm"
	"github.com/notargets/gofluid/field"
	"github.com/notargets/gofluid/grid"
	"github.com/notargets/gofluid/utils"
)

type GridPressureSolver3 interface {
	Solve(input *grid.FaceCenteredGrid3, timeIntervalInSeconds float64,
		output *grid.FaceCenteredGrid3,
		boundarySDF field.ScalarField3, boundaryVelocity field.VectorField3,
		fluidSDF field.ScalarField3, useCompressed bool) error
	SuggestedBoundaryConditionSolver() GridBoundaryConditionSolver3
}

// SinglePhasePressureSolver3 is the 3D reference projection: 7-point
// Laplacian over fluid cells, Jacobi preconditioned CG, gradient
// subtraction on fluid/air faces. Semantics match the 2D solver,
// including the non-convergence policy (best iterate applied, error
// wrapping fdm.ErrNotConverged returned).
type SinglePhasePressureSolver3 struct {
	MaxIterations int
	Tolerance     float64

	bcSolver GridBoundaryConditionSolver3
	markers  *Markers3
	system   *fdm.Matrix3
	rhs      []float64
	pressure []float64
	compIdx  []int
}

func NewSinglePhasePressureSolver3() *SinglePhasePressureSolver3 {
	return &SinglePhasePressureSolver3{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		bcSolver:      NewBlockedBoundaryConditionSolver3(),
	}
}

func (s *SinglePhasePressureSolver3) SuggestedBoundaryConditionSolver() GridBoundaryConditionSolver3 {
	return NewBlockedBoundaryConditionSolver3()
}

func (s *SinglePhasePressureSolver3) SetBoundaryConditionSolver(bc GridBoundaryConditionSolver3) {
	if bc == nil {
		bc = s.SuggestedBoundaryConditionSolver()
	}
	s.bcSolver = bc
}

func (s *SinglePhasePressureSolver3) BoundaryConditionSolver() GridBoundaryConditionSolver3 {
	return s.bcSolver
}

func (s *SinglePhasePressureSolver3) Pressure() []float64 {
	return s.pressure
}

func (s *SinglePhasePressureSolver3) Solve(input *grid.FaceCenteredGrid3,
	timeIntervalInSeconds float64, output *grid.FaceCenteredGrid3,
	boundarySDF field.ScalarField3, boundaryVelocity field.VectorField3,
	fluidSDF field.ScalarField3, useCompressed bool) error {
	if input == nil || output == nil {
		return fmt.Errorf("pressure solve requires non-nil input and output grids")
	}
	if timeIntervalInSeconds <= 0 {
		return fmt.Errorf("time interval must be positive, got %g", timeIntervalInSeconds)
	}
	if !input.HasSameShape(&output.Grid3) {
		return fmt.Errorf("input and output grid shapes differ: %v vs %v",
			input.Resolution(), output.Resolution())
	}
	if boundarySDF == nil {
		boundarySDF = noBoundary3
	}
	if boundaryVelocity == nil {
		boundaryVelocity = zeroVelocity3
	}
	if fluidSDF == nil {
		fluidSDF = allFluid3
	}

	if output != input {
		if err := output.Set(input); err != nil {
			return err
		}
	}
	s.bcSolver.ConstrainVelocity(output, boundarySDF, boundaryVelocity,
		DefaultExtrapolationDepth)
	s.markers = s.bcSolver.CellMarkers(&output.Grid3, boundarySDF, fluidSDF)

	nFluid := s.markers.CountOf(Fluid)
	if nFluid == 0 {
		return nil
	}

	var (
		result fdm.SolveResult
		err    error
	)
	if useCompressed {
		result, err = s.solveCompressed(output, nFluid)
	} else {
		result, err = s.solveDense(output)
	}
	s.applyPressureGradient(output)
	if err != nil {
		return fmt.Errorf("pressure system after %d iterations, residual %g: %w",
			result.Iterations, result.ResidualNormInf, err)
	}
	return nil
}

func (s *SinglePhasePressureSolver3) solveDense(vel *grid.FaceCenteredGrid3) (fdm.SolveResult, error) {
	var (
		res     = vel.Resolution()
		n       = res.Count()
		h       = vel.GridSpacing()
		invHSqr = grid.Vector3{X: 1 / (h.X * h.X), Y: 1 / (h.Y * h.Y), Z: 1 / (h.Z * h.Z)}
		m       = s.markers
	)
	if s.system == nil || s.system.Size != res {
		s.system = fdm.NewMatrix3(res)
		s.rhs = make([]float64, n)
		s.pressure = make([]float64, n)
	}
	for i := range s.pressure {
		s.pressure[i] = 0
	}

	pm := utils.NewPartitionMap(parallelDegree(res.Z), res.Z)
	pm.RunParallel(func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			for j := 0; j < res.Y; j++ {
				for i := 0; i < res.X; i++ {
					idx := s.system.Idx(i, j, k)
					row := &s.system.Rows[idx]
					*row = fdm.Row3{}
					if m.At(i, j, k) != Fluid {
						row.Center = 1
						s.rhs[idx] = 0
						continue
					}
					s.rhs[idx] = vel.DivergenceAtCellCenter(i, j, k)
					if i+1 < res.X && m.At(i+1, j, k) != Solid {
						row.Center += invHSqr.X
						if m.At(i+1, j, k) == Fluid {
							row.Right -= invHSqr.X
						}
					}
					if i > 0 && m.At(i-1, j, k) != Solid {
						row.Center += invHSqr.X
					}
					if j+1 < res.Y && m.At(i, j+1, k) != Solid {
						row.Center += invHSqr.Y
						if m.At(i, j+1, k) == Fluid {
							row.Up -= invHSqr.Y
						}
					}
					if j > 0 && m.At(i, j-1, k) != Solid {
						row.Center += invHSqr.Y
					}
					if k+1 < res.Z && m.At(i, j, k+1) != Solid {
						row.Center += invHSqr.Z
						if m.At(i, j, k+1) == Fluid {
							row.Front -= invHSqr.Z
						}
					}
					if k > 0 && m.At(i, j, k-1) != Solid {
						row.Center += invHSqr.Z
					}
				}
			}
		}
	})
	return fdm.SolveCG(s.system, s.rhs, s.pressure, s.MaxIterations, s.Tolerance)
}

func (s *SinglePhasePressureSolver3) solveCompressed(vel *grid.FaceCenteredGrid3,
	nFluid int) (fdm.SolveResult, error) {
	var (
		res     = vel.Resolution()
		n       = res.Count()
		h       = vel.GridSpacing()
		invHSqr = grid.Vector3{X: 1 / (h.X * h.X), Y: 1 / (h.Y * h.Y), Z: 1 / (h.Z * h.Z)}
		m       = s.markers
		slab    = res.X * res.Y
	)
	if len(s.compIdx) != n {
		s.compIdx = make([]int, n)
	}
	if len(s.pressure) != n {
		s.pressure = make([]float64, n)
	}
	next := 0
	for idx, marker := range m.Data {
		if marker == Fluid {
			s.compIdx[idx] = next
			next++
		} else {
			s.compIdx[idx] = -1
		}
	}

	sys := fdm.NewCompressedSystem(func(A utils.DOK, b *mat.VecDense) {
		for k := 0; k < res.Z; k++ {
			for j := 0; j < res.Y; j++ {
				for i := 0; i < res.X; i++ {
					idx := m.Idx(i, j, k)
					if m.Data[idx] != Fluid {
						continue
					}
					rowIdx := s.compIdx[idx]
					center := 0.0
					b.SetVec(rowIdx, vel.DivergenceAtCellCenter(i, j, k))
					if i+1 < res.X && m.At(i+1, j, k) != Solid {
						center += invHSqr.X
						if m.At(i+1, j, k) == Fluid {
							A.Set(rowIdx, s.compIdx[idx+1], -invHSqr.X)
						}
					}
					if i > 0 && m.At(i-1, j, k) != Solid {
						center += invHSqr.X
						if m.At(i-1, j, k) == Fluid {
							A.Set(rowIdx, s.compIdx[idx-1], -invHSqr.X)
						}
					}
					if j+1 < res.Y && m.At(i, j+1, k) != Solid {
						center += invHSqr.Y
						if m.At(i, j+1, k) == Fluid {
							A.Set(rowIdx, s.compIdx[idx+res.X], -invHSqr.Y)
						}
					}
					if j > 0 && m.At(i, j-1, k) != Solid {
						center += invHSqr.Y
						if m.At(i, j-1, k) == Fluid {
							A.Set(rowIdx, s.compIdx[idx-res.X], -invHSqr.Y)
						}
					}
					if k+1 < res.Z && m.At(i, j, k+1) != Solid {
						center += invHSqr.Z
						if m.At(i, j, k+1) == Fluid {
							A.Set(rowIdx, s.compIdx[idx+slab], -invHSqr.Z)
						}
					}
					if k > 0 && m.At(i, j, k-1) != Solid {
						center += invHSqr.Z
						if m.At(i, j, k-1) == Fluid {
							A.Set(rowIdx, s.compIdx[idx-slab], -invHSqr.Z)
						}
					}
					A.Set(rowIdx, rowIdx, center)
				}
			}
		}
	}, nFluid)

	x := make([]float64, nFluid)
	result, err := sys.Solve(x, s.MaxIterations, s.Tolerance)

	for idx := range s.pressure {
		if ci := s.compIdx[idx]; ci >= 0 {
			s.pressure[idx] = x[ci]
		} else {
			s.pressure[idx] = 0
		}
	}
	return result, err
}

func (s *SinglePhasePressureSolver3) applyPressureGradient(vel *grid.FaceCenteredGrid3) {
	var (
		res  = vel.Resolution()
		h    = vel.GridSpacing()
		invH = grid.Vector3{X: 1 / h.X, Y: 1 / h.Y, Z: 1 / h.Z}
		m    = s.markers
		p    = s.pressure
	)
	pm := utils.NewPartitionMap(parallelDegree(res.Z), res.Z)
	pm.RunParallel(func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			for j := 0; j < res.Y; j++ {
				for i := 1; i < res.X; i++ {
					left, right := m.At(i-1, j, k), m.At(i, j, k)
					if left != Solid && right != Solid && (left == Fluid || right == Fluid) {
						grad := invH.X * (p[m.Idx(i, j, k)] - p[m.Idx(i-1, j, k)])
						vel.SetU(i, j, k, vel.U(i, j, k)+grad)
					}
				}
			}
			for j := 1; j < res.Y; j++ {
				for i := 0; i < res.X; i++ {
					down, up := m.At(i, j-1, k), m.At(i, j, k)
					if down != Solid && up != Solid && (down == Fluid || up == Fluid) {
						grad := invH.Y * (p[m.Idx(i, j, k)] - p[m.Idx(i, j-1, k)])
						vel.SetV(i, j, k, vel.V(i, j, k)+grad)
					}
				}
			}
		}
	})
	// Interior w-faces couple adjacent k-slabs; each face has a unique
	// writing cell pair, so a face-wise partition over k stays race free.
	pmW := utils.NewPartitionMap(parallelDegree(res.Z-1), res.Z-1)
	pmW.RunParallel(func(kMin, kMax int) {
		for kf := kMin; kf < kMax; kf++ {
			k := kf + 1
			for j := 0; j < res.Y; j++ {
				for i := 0; i < res.X; i++ {
					back, front := m.At(i, j, k-1), m.At(i, j, k)
					if back != Solid && front != Solid && (back == Fluid || front == Fluid) {
						grad := invH.Z * (p[m.Idx(i, j, k)] - p[m.Idx(i, j, k-1)])
						vel.SetW(i, j, k, vel.W(i, j, k)+grad)
					}
				}
			}
		}
	})
}

var (
	noBoundary3   = field.NewConstantScalarField3(maxSDF)
	allFluid3     = field.NewConstantScalarField3(maxSDF)
	zeroVelocity3 = field.NewConstantVectorField3(grid.Vector3{})
)
