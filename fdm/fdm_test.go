package fdm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofluid/grid"
	"github.com/notargets/gofluid/utils"
)

func TestMatrix2_MulVec(t *testing.T) {
	// 2x2 Poisson-like stencil, h = 1: symmetric storage must expand to
	// the full matrix product.
	m := NewMatrix2(grid.Size2{X: 2, Y: 2})
	m.Row(0, 0).Center = 2
	m.Row(0, 0).Right = -1
	m.Row(0, 0).Up = -1
	m.Row(1, 0).Center = 2
	m.Row(1, 0).Up = -1
	m.Row(0, 1).Center = 2
	m.Row(0, 1).Right = -1
	m.Row(1, 1).Center = 2

	x := []float64{1, 2, 3, 4}
	y := make([]float64, 4)
	m.MulVec(x, y)
	// Full matrix:
	//  [ 2 -1 -1  0] [1]   [-3]
	//  [-1  2  0 -1] [2] = [-1]
	//  [-1  0  2 -1] [3]   [ 1]
	//  [ 0 -1 -1  2] [4]   [ 3]
	assert.InDeltaSlice(t, []float64{-3, -1, 1, 3}, y, 1.e-12)
}

func TestMatrix3_MulVec(t *testing.T) {
	m := NewMatrix3(grid.Size3{X: 2, Y: 1, Z: 2})
	m.Row(0, 0, 0).Center = 2
	m.Row(0, 0, 0).Right = -1
	m.Row(0, 0, 0).Front = -1
	m.Row(1, 0, 0).Center = 2
	m.Row(1, 0, 0).Front = -1
	m.Row(0, 0, 1).Center = 2
	m.Row(0, 0, 1).Right = -1
	m.Row(1, 0, 1).Center = 2

	x := []float64{1, 2, 3, 4}
	y := make([]float64, 4)
	m.MulVec(x, y)
	assert.InDeltaSlice(t, []float64{-3, -1, 1, 3}, y, 1.e-12)
}

func TestSolveCG_Dense(t *testing.T) {
	// 1D Poisson with Dirichlet ends on a 4-cell strip.
	m := NewMatrix2(grid.Size2{X: 4, Y: 1})
	for i := 0; i < 4; i++ {
		m.Row(i, 0).Center = 2
		if i < 3 {
			m.Row(i, 0).Right = -1
		}
	}
	b := []float64{1, 0, 0, 1}
	x := make([]float64, 4)
	res, err := SolveCG(m, b, x, 100, 1.e-10)
	assert.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDeltaSlice(t, []float64{1, 1, 1, 1}, x, 1.e-8)

	// Residual check: A*x = b.
	y := make([]float64, 4)
	m.MulVec(x, y)
	assert.True(t, floats.EqualApprox(b, y, 1.e-8))
}

func TestSolveCG_NotConverged(t *testing.T) {
	m := NewMatrix2(grid.Size2{X: 32, Y: 32})
	for j := 0; j < 32; j++ {
		for i := 0; i < 32; i++ {
			row := m.Row(i, j)
			row.Center = 4
			if i < 31 {
				row.Right = -1
			}
			if j < 31 {
				row.Up = -1
			}
		}
	}
	b := make([]float64, m.Dim())
	b[0] = 1
	x := make([]float64, m.Dim())
	_, err := SolveCG(m, b, x, 1, 1.e-14) // one iteration cannot suffice
	assert.ErrorIs(t, err, ErrNotConverged)
}

func TestCompressedSystem(t *testing.T) {
	// Same strip as the dense test, assembled through DOK/CSR.
	sys := NewCompressedSystem(func(A utils.DOK, b *mat.VecDense) {
		for i := 0; i < 4; i++ {
			A.Set(i, i, 2)
			if i < 3 {
				A.Set(i, i+1, -1)
				A.Set(i+1, i, -1)
			}
		}
		b.SetVec(0, 1)
		b.SetVec(3, 1)
	}, 4)

	assert.Equal(t, 4, sys.Dim())
	d := make([]float64, 4)
	sys.Diagonal(d)
	assert.InDeltaSlice(t, []float64{2, 2, 2, 2}, d, 1.e-12)

	x := make([]float64, 4)
	res, err := sys.Solve(x, 100, 1.e-10)
	assert.NoError(t, err)
	assert.True(t, res.Converged)
	assert.InDeltaSlice(t, []float64{1, 1, 1, 1}, x, 1.e-8)
}
