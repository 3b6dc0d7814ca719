package fdm

import "github.com/notargets/gofluid/grid"

/*
	Matrix2 is the dense-indexed representation of the 5-point pressure
	Poisson stencil: one row per grid cell, addressed by full grid
	coordinates. The matrix is symmetric, so each row stores only the
	center coefficient and the couplings to its +x and +y neighbors; the
	-x and -y couplings are read from the neighbors' rows.
*/
type Row2 struct {
	Center, Right, Up float64
}

type Matrix2 struct {
	Size grid.Size2
	Rows []Row2
}

func NewMatrix2(size grid.Size2) *Matrix2 {
	return &Matrix2{
		Size: size,
		Rows: make([]Row2, size.Count()),
	}
}

func (m *Matrix2) Idx(i, j int) int { return i + m.Size.X*j }

func (m *Matrix2) Row(i, j int) *Row2 { return &m.Rows[m.Idx(i, j)] }

func (m *Matrix2) Dim() int { return len(m.Rows) }

func (m *Matrix2) Clear() {
	for n := range m.Rows {
		m.Rows[n] = Row2{}
	}
}

// MulVec computes y = A*x exploiting the symmetric stencil storage.
func (m *Matrix2) MulVec(x, y []float64) {
	var (
		nx, ny = m.Size.X, m.Size.Y
	)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n := i + nx*j
			row := &m.Rows[n]
			sum := row.Center * x[n]
			if i+1 < nx {
				sum += row.Right * x[n+1]
			}
			if j+1 < ny {
				sum += row.Up * x[n+nx]
			}
			if i > 0 {
				sum += m.Rows[n-1].Right * x[n-1]
			}
			if j > 0 {
				sum += m.Rows[n-nx].Up * x[n-nx]
			}
			y[n] = sum
		}
	}
}

func (m *Matrix2) Diagonal(d []float64) {
	for n := range m.Rows {
		d[n] = m.Rows[n].Center
	}
}
