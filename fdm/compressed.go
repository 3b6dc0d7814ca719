package fdm

import (
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gofluid/utils"
)

/*
	CompressedSystem renumbers only the active (fluid) unknowns and holds
	the Poisson system in CSR form. Assembly goes through a DOK and is
	converted once; the CG iteration then runs over the CSR non-zeros.
*/
type CompressedSystem struct {
	A    utils.CSR
	B    *mat.VecDense
	diag []float64
}

func NewCompressedSystem(assemble func(A utils.DOK, b *mat.VecDense), n int) (s *CompressedSystem) {
	var (
		dok = utils.NewDOK(n, n)
		b   = mat.NewVecDense(n, nil)
	)
	assemble(dok, b)
	s = &CompressedSystem{
		A: dok.ToCSR(),
		B: b,
	}
	s.diag = s.A.Diagonal()
	return
}

func (s *CompressedSystem) Dim() int {
	r, _ := s.A.Dims()
	return r
}

func (s *CompressedSystem) MulVec(x, y []float64) {
	s.A.MulVec(x, y)
}

func (s *CompressedSystem) Diagonal(d []float64) {
	copy(d, s.diag)
}

// Solve runs the shared CG kernel against the compressed operator.
func (s *CompressedSystem) Solve(x []float64, maxIterations int, tolerance float64) (SolveResult, error) {
	return SolveCG(s, s.B.RawVector().Data, x, maxIterations, tolerance)
}
