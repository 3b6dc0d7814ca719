package fdm

import "github.com/notargets/gofluid/grid"

// Matrix3 is the dense-indexed 7-point stencil, symmetric storage with
// couplings to the +x, +y and +z neighbors only.
type Row3 struct {
	Center, Right, Up, Front float64
}

type Matrix3 struct {
	Size grid.Size3
	Rows []Row3
}

func NewMatrix3(size grid.Size3) *Matrix3 {
	return &Matrix3{
		Size: size,
		Rows: make([]Row3, size.Count()),
	}
}

func (m *Matrix3) Idx(i, j, k int) int {
	return i + m.Size.X*(j+m.Size.Y*k)
}

func (m *Matrix3) Row(i, j, k int) *Row3 { return &m.Rows[m.Idx(i, j, k)] }

func (m *Matrix3) Dim() int { return len(m.Rows) }

func (m *Matrix3) Clear() {
	for n := range m.Rows {
		m.Rows[n] = Row3{}
	}
}

func (m *Matrix3) MulVec(x, y []float64) {
	var (
		nx, ny, nz = m.Size.X, m.Size.Y, m.Size.Z
		slab       = nx * ny
	)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				n := i + nx*j + slab*k
				row := &m.Rows[n]
				sum := row.Center * x[n]
				if i+1 < nx {
					sum += row.Right * x[n+1]
				}
				if j+1 < ny {
					sum += row.Up * x[n+nx]
				}
				if k+1 < nz {
					sum += row.Front * x[n+slab]
				}
				if i > 0 {
					sum += m.Rows[n-1].Right * x[n-1]
				}
				if j > 0 {
					sum += m.Rows[n-nx].Up * x[n-nx]
				}
				if k > 0 {
					sum += m.Rows[n-slab].Front * x[n-slab]
				}
				y[n] = sum
			}
		}
	}
}

func (m *Matrix3) Diagonal(d []float64) {
	for n := range m.Rows {
		d[n] = m.Rows[n].Center
	}
}
