package grid

import "fmt"

// FaceCenteredGrid3 is the 3D MAC velocity grid. For parent resolution
// (X,Y,Z) the sub-grids are u: (X+1) x Y x Z, v: X x (Y+1) x Z,
// w: X x Y x (Z+1), flat storage with i varying fastest.
type FaceCenteredGrid3 struct {
	Grid3
	u, v, w []float64
}

func NewFaceCenteredGrid3(resolution Size3, gridSpacing, origin Vector3) (g *FaceCenteredGrid3, err error) {
	var (
		shape *Grid3
	)
	if shape, err = NewGrid3(resolution, gridSpacing, origin); err != nil {
		return
	}
	g = &FaceCenteredGrid3{
		Grid3: *shape,
		u:     make([]float64, (resolution.X+1)*resolution.Y*resolution.Z),
		v:     make([]float64, resolution.X*(resolution.Y+1)*resolution.Z),
		w:     make([]float64, resolution.X*resolution.Y*(resolution.Z+1)),
	}
	return
}

func (g *FaceCenteredGrid3) USize() Size3 {
	return Size3{g.resolution.X + 1, g.resolution.Y, g.resolution.Z}
}

func (g *FaceCenteredGrid3) VSize() Size3 {
	return Size3{g.resolution.X, g.resolution.Y + 1, g.resolution.Z}
}

func (g *FaceCenteredGrid3) WSize() Size3 {
	return Size3{g.resolution.X, g.resolution.Y, g.resolution.Z + 1}
}

func (g *FaceCenteredGrid3) uIndex(i, j, k int) int {
	return i + (g.resolution.X+1)*(j+g.resolution.Y*k)
}

func (g *FaceCenteredGrid3) vIndex(i, j, k int) int {
	return i + g.resolution.X*(j+(g.resolution.Y+1)*k)
}

func (g *FaceCenteredGrid3) wIndex(i, j, k int) int {
	return i + g.resolution.X*(j+g.resolution.Y*k)
}

func (g *FaceCenteredGrid3) U(i, j, k int) float64 { return g.u[g.uIndex(i, j, k)] }

func (g *FaceCenteredGrid3) V(i, j, k int) float64 { return g.v[g.vIndex(i, j, k)] }

func (g *FaceCenteredGrid3) W(i, j, k int) float64 { return g.w[g.wIndex(i, j, k)] }

func (g *FaceCenteredGrid3) SetU(i, j, k int, val float64) { g.u[g.uIndex(i, j, k)] = val }

func (g *FaceCenteredGrid3) SetV(i, j, k int, val float64) { g.v[g.vIndex(i, j, k)] = val }

func (g *FaceCenteredGrid3) SetW(i, j, k int, val float64) { g.w[g.wIndex(i, j, k)] = val }

func (g *FaceCenteredGrid3) UPosition(i, j, k int) Vector3 {
	return Vector3{
		g.origin.X + float64(i)*g.gridSpacing.X,
		g.origin.Y + (float64(j)+0.5)*g.gridSpacing.Y,
		g.origin.Z + (float64(k)+0.5)*g.gridSpacing.Z,
	}
}

func (g *FaceCenteredGrid3) VPosition(i, j, k int) Vector3 {
	return Vector3{
		g.origin.X + (float64(i)+0.5)*g.gridSpacing.X,
		g.origin.Y + float64(j)*g.gridSpacing.Y,
		g.origin.Z + (float64(k)+0.5)*g.gridSpacing.Z,
	}
}

func (g *FaceCenteredGrid3) WPosition(i, j, k int) Vector3 {
	return Vector3{
		g.origin.X + (float64(i)+0.5)*g.gridSpacing.X,
		g.origin.Y + (float64(j)+0.5)*g.gridSpacing.Y,
		g.origin.Z + float64(k)*g.gridSpacing.Z,
	}
}

func (g *FaceCenteredGrid3) DivergenceAtCellCenter(i, j, k int) float64 {
	return (g.U(i+1, j, k)-g.U(i, j, k))/g.gridSpacing.X +
		(g.V(i, j+1, k)-g.V(i, j, k))/g.gridSpacing.Y +
		(g.W(i, j, k+1)-g.W(i, j, k))/g.gridSpacing.Z
}

func (g *FaceCenteredGrid3) Fill(val Vector3) {
	for n := range g.u {
		g.u[n] = val.X
	}
	for n := range g.v {
		g.v[n] = val.Y
	}
	for n := range g.w {
		g.w[n] = val.Z
	}
}

func (g *FaceCenteredGrid3) Set(other *FaceCenteredGrid3) error {
	if !g.HasSameShape(&other.Grid3) {
		return fmt.Errorf("face-centered grid shape mismatch: %v vs %v",
			g.resolution, other.resolution)
	}
	copy(g.u, other.u)
	copy(g.v, other.v)
	copy(g.w, other.w)
	return nil
}

func (g *FaceCenteredGrid3) Clone() (o *FaceCenteredGrid3) {
	o = &FaceCenteredGrid3{
		Grid3: g.Grid3,
		u:     make([]float64, len(g.u)),
		v:     make([]float64, len(g.v)),
		w:     make([]float64, len(g.w)),
	}
	copy(o.u, g.u)
	copy(o.v, g.v)
	copy(o.w, g.w)
	return
}

func (g *FaceCenteredGrid3) Resize(resolution Size3, gridSpacing, origin Vector3) error {
	fresh, err := NewFaceCenteredGrid3(resolution, gridSpacing, origin)
	if err != nil {
		return err
	}
	g.Grid3.Swap(&fresh.Grid3)
	g.u, fresh.u = fresh.u, g.u
	g.v, fresh.v = fresh.v, g.v
	g.w, fresh.w = fresh.w, g.w
	return nil
}
