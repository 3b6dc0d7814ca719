package solver

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofluid/fdm"
	"github.com/notargets/gofluid/field"
	"github.com/notargets/gofluid/grid"
	"github.com/notargets/gofluid/utils"
)

const (
	DefaultMaxIterations = 100
	DefaultTolerance     = 1.e-6
)

/*
	GridPressureSolver2 removes the divergent part of a face-centered
	velocity field subject to solid boundaries and a free surface, both
	given as signed-distance fields. Passing nil for a field argument
	selects the default: no boundary anywhere, zero boundary velocity,
	fully fluid.

	Solve mutates output only; input is untouched unless the caller
	aliases the two, which is allowed.
*/
type GridPressureSolver2 interface {
	Solve(input *grid.FaceCenteredGrid2, timeIntervalInSeconds float64,
		output *grid.FaceCenteredGrid2,
		boundarySDF field.ScalarField2, boundaryVelocity field.VectorField2,
		fluidSDF field.ScalarField2, useCompressed bool) error
	SuggestedBoundaryConditionSolver() GridBoundaryConditionSolver2
}

/*
	SinglePhasePressureSolver2 is the reference projection method: binary
	cell classification, 5-point Laplacian over fluid cells, Jacobi
	preconditioned CG, gradient subtraction on fluid/air faces.

	The time interval is validated but does not enter the system - this
	formulation folds density and dt into the pressure scale, so the
	corrected velocity is independent of both. Domain edges without an
	adjacent cell are zero-flux (closed); air neighbors impose p = 0.

	Non-convergence policy: the best available iterate is applied to the
	output and Solve returns an error wrapping fdm.ErrNotConverged. This
	is deterministic - same inputs, same iterate, same error.
*/
type SinglePhasePressureSolver2 struct {
	MaxIterations int
	Tolerance     float64

	bcSolver GridBoundaryConditionSolver2
	markers  *Markers2
	system   *fdm.Matrix2
	rhs      []float64
	pressure []float64
	compIdx  []int
}

func NewSinglePhasePressureSolver2() *SinglePhasePressureSolver2 {
	return &SinglePhasePressureSolver2{
		MaxIterations: DefaultMaxIterations,
		Tolerance:     DefaultTolerance,
		bcSolver:      NewBlockedBoundaryConditionSolver2(),
	}
}

func (s *SinglePhasePressureSolver2) SuggestedBoundaryConditionSolver() GridBoundaryConditionSolver2 {
	return NewBlockedBoundaryConditionSolver2()
}

// SetBoundaryConditionSolver replaces the paired boundary condition
// solver. Passing nil restores the suggested default.
func (s *SinglePhasePressureSolver2) SetBoundaryConditionSolver(bc GridBoundaryConditionSolver2) {
	if bc == nil {
		bc = s.SuggestedBoundaryConditionSolver()
	}
	s.bcSolver = bc
}

func (s *SinglePhasePressureSolver2) BoundaryConditionSolver() GridBoundaryConditionSolver2 {
	return s.bcSolver
}

// Pressure returns the last solved pressure, one value per cell in
// dense grid order (zero at air and solid cells). Valid until the next
// Solve.
func (s *SinglePhasePressureSolver2) Pressure() []float64 {
	return s.pressure
}

func (s *SinglePhasePressureSolver2) Solve(input *grid.FaceCenteredGrid2,
	timeIntervalInSeconds float64, output *grid.FaceCenteredGrid2,
	boundarySDF field.ScalarField2, boundaryVelocity field.VectorField2,
	fluidSDF field.ScalarField2, useCompressed bool) error {
	// Preconditions first; output is not touched until they all pass.
	if input == nil || output == nil {
		return fmt.Errorf("pressure solve requires non-nil input and output grids")
	}
	if timeIntervalInSeconds <= 0 {
		return fmt.Errorf("time interval must be positive, got %g", timeIntervalInSeconds)
	}
	if !input.HasSameShape(&output.Grid2) {
		return fmt.Errorf("input and output grid shapes differ: %v vs %v",
			input.Resolution(), output.Resolution())
	}
	if boundarySDF == nil {
		boundarySDF = noBoundary2
	}
	if boundaryVelocity == nil {
		boundaryVelocity = zeroVelocity2
	}
	if fluidSDF == nil {
		fluidSDF = allFluid2
	}

	if output != input {
		if err := output.Set(input); err != nil {
			return err
		}
	}
	s.bcSolver.ConstrainVelocity(output, boundarySDF, boundaryVelocity,
		DefaultExtrapolationDepth)
	s.markers = s.bcSolver.CellMarkers(&output.Grid2, boundarySDF, fluidSDF)

	nFluid := s.markers.CountOf(Fluid)
	if nFluid == 0 {
		// Fully solid or fully air: the constrained field is the answer.
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

func (s *SinglePhasePressureSolver2) solveDense(vel *grid.FaceCenteredGrid2) (fdm.SolveResult, error) {
	var (
		res     = vel.Resolution()
		n       = res.Count()
		h       = vel.GridSpacing()
		invHSqr = grid.Vector2{X: 1 / (h.X * h.X), Y: 1 / (h.Y * h.Y)}
		m       = s.markers
	)
	if s.system == nil || s.system.Size != res {
		s.system = fdm.NewMatrix2(res)
		s.rhs = make([]float64, n)
		s.pressure = make([]float64, n)
	}
	for i := range s.pressure {
		s.pressure[i] = 0
	}

	pm := utils.NewPartitionMap(parallelDegree(res.Y), res.Y)
	pm.RunParallel(func(jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			for i := 0; i < res.X; i++ {
				idx := s.system.Idx(i, j)
				row := &s.system.Rows[idx]
				*row = fdm.Row2{}
				if m.At(i, j) != Fluid {
					// Inactive unknown: identity row, zero pressure.
					row.Center = 1
					s.rhs[idx] = 0
					continue
				}
				s.rhs[idx] = vel.DivergenceAtCellCenter(i, j)
				if i+1 < res.X && m.At(i+1, j) != Solid {
					row.Center += invHSqr.X
					if m.At(i+1, j) == Fluid {
						row.Right -= invHSqr.X
					}
				}
				if i > 0 && m.At(i-1, j) != Solid {
					row.Center += invHSqr.X
				}
				if j+1 < res.Y && m.At(i, j+1) != Solid {
					row.Center += invHSqr.Y
					if m.At(i, j+1) == Fluid {
						row.Up -= invHSqr.Y
					}
				}
				if j > 0 && m.At(i, j-1) != Solid {
					row.Center += invHSqr.Y
				}
			}
		}
	})
	return fdm.SolveCG(s.system, s.rhs, s.pressure, s.MaxIterations, s.Tolerance)
}

func (s *SinglePhasePressureSolver2) solveCompressed(vel *grid.FaceCenteredGrid2,
	nFluid int) (fdm.SolveResult, error) {
	var (
		res     = vel.Resolution()
		n       = res.Count()
		h       = vel.GridSpacing()
		invHSqr = grid.Vector2{X: 1 / (h.X * h.X), Y: 1 / (h.Y * h.Y)}
		m       = s.markers
	)
	if len(s.compIdx) != n {
		s.compIdx = make([]int, n)
	}
	if len(s.pressure) != n {
		s.pressure = make([]float64, n)
	}
	// Renumber fluid cells in traversal order; deterministic.
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
		for j := 0; j < res.Y; j++ {
			for i := 0; i < res.X; i++ {
				idx := m.Idx(i, j)
				if m.Data[idx] != Fluid {
					continue
				}
				rowIdx := s.compIdx[idx]
				center := 0.0
				b.SetVec(rowIdx, vel.DivergenceAtCellCenter(i, j))
				if i+1 < res.X && m.At(i+1, j) != Solid {
					center += invHSqr.X
					if m.At(i+1, j) == Fluid {
						A.Set(rowIdx, s.compIdx[idx+1], -invHSqr.X)
					}
				}
				if i > 0 && m.At(i-1, j) != Solid {
					center += invHSqr.X
					if m.At(i-1, j) == Fluid {
						A.Set(rowIdx, s.compIdx[idx-1], -invHSqr.X)
					}
				}
				if j+1 < res.Y && m.At(i, j+1) != Solid {
					center += invHSqr.Y
					if m.At(i, j+1) == Fluid {
						A.Set(rowIdx, s.compIdx[idx+res.X], -invHSqr.Y)
					}
				}
				if j > 0 && m.At(i, j-1) != Solid {
					center += invHSqr.Y
					if m.At(i, j-1) == Fluid {
						A.Set(rowIdx, s.compIdx[idx-res.X], -invHSqr.Y)
					}
				}
				A.Set(rowIdx, rowIdx, center)
			}
		}
	}, nFluid)

	x := make([]float64, nFluid)
	result, err := sys.Solve(x, s.MaxIterations, s.Tolerance)

	// Scatter back to dense grid order; air and solid cells stay zero.
	for idx := range s.pressure {
		if ci := s.compIdx[idx]; ci >= 0 {
			s.pressure[idx] = x[ci]
		} else {
			s.pressure[idx] = 0
		}
	}
	return result, err
}

// applyPressureGradient corrects every interior face separating two
// fluid cells or a fluid and an air cell. Solid-adjacent faces and
// outer domain faces are left exactly as the boundary condition solver
// set them.
func (s *SinglePhasePressureSolver2) applyPressureGradient(vel *grid.FaceCenteredGrid2) {
	var (
		res  = vel.Resolution()
		h    = vel.GridSpacing()
		invH = grid.Vector2{X: 1 / h.X, Y: 1 / h.Y}
		m    = s.markers
		p    = s.pressure
	)
	pm := utils.NewPartitionMap(parallelDegree(res.Y), res.Y)
	pm.RunParallel(func(jMin, jMax int) {
		for j := jMin; j < jMax; j++ {
			for i := 1; i < res.X; i++ {
				left, right := m.At(i-1, j), m.At(i, j)
				if left != Solid && right != Solid && (left == Fluid || right == Fluid) {
					grad := invH.X * (p[m.Idx(i, j)] - p[m.Idx(i-1, j)])
					vel.SetU(i, j, vel.U(i, j)+grad)
				}
			}
		}
	})
	pmV := utils.NewPartitionMap(parallelDegree(res.Y-1), res.Y-1)
	pmV.RunParallel(func(jMin, jMax int) {
		for jf := jMin; jf < jMax; jf++ {
			j := jf + 1 // interior v-faces only
			for i := 0; i < res.X; i++ {
				down, up := m.At(i, j-1), m.At(i, j)
				if down != Solid && up != Solid && (down == Fluid || up == Fluid) {
					grad := invH.Y * (p[m.Idx(i, j)] - p[m.Idx(i, j-1)])
					vel.SetV(i, j, vel.V(i, j)+grad)
				}
			}
		}
	})
}

var (
	noBoundary2   = field.NewConstantScalarField2(maxSDF)
	allFluid2     = field.NewConstantScalarField2(maxSDF)
	zeroVelocity2 = field.NewConstantVectorField2(grid.Vector2{})
)
