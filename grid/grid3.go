package grid

import "fmt"

// Grid3 is the 3D counterpart of Grid2: shape only, no physical data.
// Cell index (i,j,k) with i varying fastest, k last.
type Grid3 struct {
	resolution  Size3
	origin      Vector3
	gridSpacing Vector3
}

func NewGrid3(resolution Size3, gridSpacing, origin Vector3) (g *Grid3, err error) {
	if resolution.X < 0 || resolution.Y < 0 || resolution.Z < 0 {
		err = fmt.Errorf("grid resolution must be non-negative, got %v", resolution)
		return
	}
	if gridSpacing.X <= 0 || gridSpacing.Y <= 0 || gridSpacing.Z <= 0 {
		err = fmt.Errorf("grid spacing must be positive, got %v", gridSpacing)
		return
	}
	g = &Grid3{
		resolution:  resolution,
		origin:      origin,
		gridSpacing: gridSpacing,
	}
	return
}

func (g *Grid3) Resolution() Size3 { return g.resolution }

func (g *Grid3) Origin() Vector3 { return g.origin }

func (g *Grid3) GridSpacing() Vector3 { return g.gridSpacing }

func (g *Grid3) BoundingBox() (lower, upper Vector3) {
	lower = g.origin
	upper = g.origin.Add(Vector3{
		float64(g.resolution.X) * g.gridSpacing.X,
		float64(g.resolution.Y) * g.gridSpacing.Y,
		float64(g.resolution.Z) * g.gridSpacing.Z,
	})
	return
}

func (g *Grid3) CellCenterPosition(i, j, k int) Vector3 {
	return Vector3{
		g.origin.X + (float64(i)+0.5)*g.gridSpacing.X,
		g.origin.Y + (float64(j)+0.5)*g.gridSpacing.Y,
		g.origin.Z + (float64(k)+0.5)*g.gridSpacing.Z,
	}
}

func (g *Grid3) HasSameShape(other *Grid3) bool {
	return g.resolution == other.resolution &&
		g.gridSpacing == other.gridSpacing &&
		g.origin == other.origin
}

func (g *Grid3) Swap(other *Grid3) {
	g.resolution, other.resolution = other.resolution, g.resolution
	g.origin, other.origin = other.origin, g.origin
	g.gridSpacing, other.gridSpacing = other.gridSpacing, g.gridSpacing
}

// ForEachCellIndex invokes f once per cell index serially, i varying
// fastest, k last.
func (g *Grid3) ForEachCellIndex(f func(i, j, k int)) {
	for k := 0; k < g.resolution.Z; k++ {
		for j := 0; j < g.resolution.Y; j++ {
			for i := 0; i < g.resolution.X; i++ {
				f(i, j, k)
			}
		}
	}
}
