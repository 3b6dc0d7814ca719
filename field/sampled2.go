package field

import (
	"math"

	"github.com/notargets/gofluid/grid"
)

// CellCenteredScalarField2 is a grid-backed scalar field with one value
// per cell center, bilinearly interpolated between centers and clamped
// at the domain edge. Typical use is a fluid SDF rasterized from a
// surface, sampled back by the pressure solver at cell centers.
type CellCenteredScalarField2 struct {
	grid.Grid2
	data []float64
}

func NewCellCenteredScalarField2(resolution grid.Size2, gridSpacing, origin grid.Vector2, initial float64) (f *CellCenteredScalarField2, err error) {
	var (
		shape *grid.Grid2
	)
	if shape, err = grid.NewGrid2(resolution, gridSpacing, origin); err != nil {
		return
	}
	f = &CellCenteredScalarField2{
		Grid2: *shape,
		data:  make([]float64, resolution.Count()),
	}
	for n := range f.data {
		f.data[n] = initial
	}
	return
}

func (f *CellCenteredScalarField2) At(i, j int) float64 {
	return f.data[i+f.Resolution().X*j]
}

func (f *CellCenteredScalarField2) Set(i, j int, val float64) {
	f.data[i+f.Resolution().X*j] = val
}

func (f *CellCenteredScalarField2) Sample(p grid.Vector2) float64 {
	var (
		res    = f.Resolution()
		h      = f.GridSpacing()
		origin = f.Origin()
	)
	// Normalized coordinates relative to the first cell center.
	x := (p.X-origin.X)/h.X - 0.5
	y := (p.Y-origin.Y)/h.Y - 0.5
	i := clampIndex(int(math.Floor(x)), res.X-1)
	j := clampIndex(int(math.Floor(y)), res.Y-1)
	i2 := clampIndex(i+1, res.X-1)
	j2 := clampIndex(j+1, res.Y-1)
	fx := clampFrac(x - float64(i))
	fy := clampFrac(y - float64(j))
	return bilerp(
		f.At(i, j), f.At(i2, j),
		f.At(i, j2), f.At(i2, j2),
		fx, fy)
}

func clampIndex(i, max int) int {
	if i < 0 {
		return 0
	}
	if i > max {
		return max
	}
	return i
}

func clampFrac(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func lerp(a, b, f float64) float64 {
	return a + f*(b-a)
}

func bilerp(v00, v10, v01, v11, fx, fy float64) float64 {
	return lerp(lerp(v00, v10, fx), lerp(v01, v11, fx), fy)
}
