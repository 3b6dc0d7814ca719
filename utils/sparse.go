package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

/*
	Thin wrappers over james-bowman/sparse. The pressure solvers assemble
	the compressed Poisson system into a DOK, convert once to CSR, and
	iterate matrix-vector products against raw float64 slices.
*/
type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{sparse.NewDOK(nr, nc)}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

func (m DOK) Set(i, j int, val float64) { m.M.Set(i, j, val) }

func (m DOK) Add(i, j int, val float64) { m.M.Set(i, j, m.M.At(i, j)+val) }

func (m DOK) ToCSR() CSR {
	return CSR{m.M.ToCSR()}
}

type CSR struct {
	M *sparse.CSR
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

func (m CSR) NNZ() int { return m.M.NNZ() }

// MulVec computes y = M*x over raw slices.
func (m CSR) MulVec(x, y []float64) {
	var (
		nr, nc = m.M.Dims()
	)
	if len(x) != nc || len(y) != nr {
		panic(fmt.Errorf("dimension mismatch in sparse MulVec: matrix %dx%d, x %d, y %d",
			nr, nc, len(x), len(y)))
	}
	for n := range y {
		y[n] = 0
	}
	m.M.DoNonZero(func(i, j int, v float64) {
		y[i] += v * x[j]
	})
}

// Diagonal extracts the main diagonal into a fresh slice.
func (m CSR) Diagonal() (d []float64) {
	var (
		nr, _ = m.M.Dims()
	)
	d = make([]float64, nr)
	m.M.DoNonZero(func(i, j int, v float64) {
		if i == j {
			d[i] = v
		}
	})
	return
}
