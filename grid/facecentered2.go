package grid

import "fmt"

/*
	FaceCenteredGrid2 is a staggered (MAC) velocity grid: the u component
	is sampled at x-face centers, the v component at y-face centers. For a
	parent resolution (X,Y) the u sub-grid is (X+1) x Y and the v sub-grid
	is X x (Y+1).

	Storage is a flat slice per component, i varying fastest.
*/
type FaceCenteredGrid2 struct {
	Grid2
	u, v []float64
}

func NewFaceCenteredGrid2(resolution Size2, gridSpacing, origin Vector2) (g *FaceCenteredGrid2, err error) {
	var (
		shape *Grid2
	)
	if shape, err = NewGrid2(resolution, gridSpacing, origin); err != nil {
		return
	}
	g = &FaceCenteredGrid2{
		Grid2: *shape,
		u:     make([]float64, (resolution.X+1)*resolution.Y),
		v:     make([]float64, resolution.X*(resolution.Y+1)),
	}
	return
}

// USize and VSize are the sub-grid resolutions: parent resolution plus
// one along the component's own axis.
func (g *FaceCenteredGrid2) USize() Size2 {
	return Size2{g.resolution.X + 1, g.resolution.Y}
}

func (g *FaceCenteredGrid2) VSize() Size2 {
	return Size2{g.resolution.X, g.resolution.Y + 1}
}

func (g *FaceCenteredGrid2) uIndex(i, j int) int { return i + (g.resolution.X+1)*j }

func (g *FaceCenteredGrid2) vIndex(i, j int) int { return i + g.resolution.X*j }

func (g *FaceCenteredGrid2) U(i, j int) float64 { return g.u[g.uIndex(i, j)] }

func (g *FaceCenteredGrid2) V(i, j int) float64 { return g.v[g.vIndex(i, j)] }

func (g *FaceCenteredGrid2) SetU(i, j int, val float64) { g.u[g.uIndex(i, j)] = val }

func (g *FaceCenteredGrid2) SetV(i, j int, val float64) { g.v[g.vIndex(i, j)] = val }

// UPosition returns the world-space center of u-face (i,j): offset half
// a spacing along y from the grid origin.
func (g *FaceCenteredGrid2) UPosition(i, j int) Vector2 {
	return Vector2{
		g.origin.X + float64(i)*g.gridSpacing.X,
		g.origin.Y + (float64(j)+0.5)*g.gridSpacing.Y,
	}
}

// VPosition returns the world-space center of v-face (i,j): offset half
// a spacing along x.
func (g *FaceCenteredGrid2) VPosition(i, j int) Vector2 {
	return Vector2{
		g.origin.X + (float64(i)+0.5)*g.gridSpacing.X,
		g.origin.Y + float64(j)*g.gridSpacing.Y,
	}
}

// DivergenceAtCellCenter computes the discrete divergence of the face
// velocities around cell (i,j).
func (g *FaceCenteredGrid2) DivergenceAtCellCenter(i, j int) float64 {
	return (g.U(i+1, j)-g.U(i, j))/g.gridSpacing.X +
		(g.V(i, j+1)-g.V(i, j))/g.gridSpacing.Y
}

func (g *FaceCenteredGrid2) Fill(val Vector2) {
	for n := range g.u {
		g.u[n] = val.X
	}
	for n := range g.v {
		g.v[n] = val.Y
	}
}

// Set copies the contents of a same-shaped grid into g.
func (g *FaceCenteredGrid2) Set(other *FaceCenteredGrid2) error {
	if !g.HasSameShape(&other.Grid2) {
		return fmt.Errorf("face-centered grid shape mismatch: %v vs %v",
			g.resolution, other.resolution)
	}
	copy(g.u, other.u)
	copy(g.v, other.v)
	return nil
}

func (g *FaceCenteredGrid2) Clone() (o *FaceCenteredGrid2) {
	o = &FaceCenteredGrid2{
		Grid2: g.Grid2,
		u:     make([]float64, len(g.u)),
		v:     make([]float64, len(g.v)),
	}
	copy(o.u, g.u)
	copy(o.v, g.v)
	return
}

// Resize reshapes the grid by building a fresh grid and swapping it in,
// discarding previous contents.
func (g *FaceCenteredGrid2) Resize(resolution Size2, gridSpacing, origin Vector2) error {
	fresh, err := NewFaceCenteredGrid2(resolution, gridSpacing, origin)
	if err != nil {
		return err
	}
	g.Grid2.Swap(&fresh.Grid2)
	g.u, fresh.u = fresh.u, g.u
	g.v, fresh.v = fresh.v, g.v
	return nil
}

// ForEachUIndex invokes f per u-face index serially, i fastest.
func (g *FaceCenteredGrid2) ForEachUIndex(f func(i, j int)) {
	for j := 0; j < g.resolution.Y; j++ {
		for i := 0; i < g.resolution.X+1; i++ {
			f(i, j)
		}
	}
}

// ForEachVIndex invokes f per v-face index serially, i fastest.
func (g *FaceCenteredGrid2) ForEachVIndex(f func(i, j int)) {
	for j := 0; j < g.resolution.Y+1; j++ {
		for i := 0; i < g.resolution.X; i++ {
			f(i, j)
		}
	}
}
