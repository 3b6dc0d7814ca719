package fdm

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

// ErrNotConverged is returned (wrapped, with iteration and residual
// detail) when the iterative solve exhausts its iteration budget. The
// best available iterate is still written to x so that callers can
// choose to proceed with it.
var ErrNotConverged = errors.New("conjugate gradient failed to converge")

// Operator is a symmetric positive-(semi)definite linear operator over
// flat float64 unknowns. Both the dense-indexed stencil matrices and
// the compressed CSR system implement it.
type Operator interface {
	Dim() int
	MulVec(x, y []float64)
	Diagonal(d []float64)
}

type SolveResult struct {
	Iterations      int
	ResidualNormInf float64
	Converged       bool
}

/*
	SolveCG runs Jacobi-preconditioned conjugate gradient on A*x = b,
	using x as the initial guess and writing the solution back into it.
	Zero diagonal entries fall back to an identity preconditioner row, so
	rank-deficient systems (closed all-fluid domains have a constant null
	space) iterate deterministically instead of dividing by zero.
*/
func SolveCG(A Operator, b, x []float64, maxIterations int, tolerance float64) (res SolveResult, err error) {
	var (
		n  = A.Dim()
		r  = make([]float64, n)
		z  = make([]float64, n)
		p  = make([]float64, n)
		ap = make([]float64, n)
		d  = make([]float64, n)
	)
	A.Diagonal(d)
	for i := range d {
		if d[i] == 0 {
			d[i] = 1
		}
	}
	precondition := func(r, z []float64) {
		for i := range z {
			z[i] = r[i] / d[i]
		}
	}

	// r = b - A*x
	A.MulVec(x, r)
	floats.Scale(-1, r)
	floats.Add(r, b)

	res.ResidualNormInf = floats.Norm(r, math.Inf(1))
	if res.ResidualNormInf <= tolerance {
		res.Converged = true
		return
	}

	precondition(r, z)
	copy(p, z)
	rz := floats.Dot(r, z)

	for iter := 1; iter <= maxIterations; iter++ {
		A.MulVec(p, ap)
		pap := floats.Dot(p, ap)
		if pap == 0 {
			// Search direction annihilated; nothing left to reduce.
			res.Iterations = iter
			res.Converged = true
			return
		}
		alpha := rz / pap
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, ap)

		res.Iterations = iter
		res.ResidualNormInf = floats.Norm(r, math.Inf(1))
		if res.ResidualNormInf <= tolerance {
			res.Converged = true
			return
		}

		precondition(r, z)
		rzNext := floats.Dot(r, z)
		beta := rzNext / rz
		rz = rzNext
		for i := range p {
			p[i] = z[i] + beta*p[i]
		}
	}
	err = ErrNotConverged
	return
}
