package grid

import "fmt"

/*
	A Grid2 is the shape of a 2D structured grid: resolution, origin and
	per-axis spacing. It carries no physical data - velocity and scalar
	grids embed it and allocate their own storage against the shape.

	Index convention: cell (i,j) with i varying fastest. All per-cell
	traversal in this package follows that order, which callers rely on
	when they accumulate state across a traversal.
*/
type Grid2 struct {
	resolution  Size2
	origin      Vector2
	gridSpacing Vector2
}

func NewGrid2(resolution Size2, gridSpacing, origin Vector2) (g *Grid2, err error) {
	if resolution.X < 0 || resolution.Y < 0 {
		err = fmt.Errorf("grid resolution must be non-negative, got %v", resolution)
		return
	}
	if gridSpacing.X <= 0 || gridSpacing.Y <= 0 {
		err = fmt.Errorf("grid spacing must be positive, got %v", gridSpacing)
		return
	}
	g = &Grid2{
		resolution:  resolution,
		origin:      origin,
		gridSpacing: gridSpacing,
	}
	return
}

func (g *Grid2) Resolution() Size2 { return g.resolution }

func (g *Grid2) Origin() Vector2 { return g.origin }

func (g *Grid2) GridSpacing() Vector2 { return g.gridSpacing }

// BoundingBox returns the lower and upper corners of the domain covered
// by the grid.
func (g *Grid2) BoundingBox() (lower, upper Vector2) {
	lower = g.origin
	upper = g.origin.Add(Vector2{
		float64(g.resolution.X) * g.gridSpacing.X,
		float64(g.resolution.Y) * g.gridSpacing.Y,
	})
	return
}

func (g *Grid2) CellCenterPosition(i, j int) Vector2 {
	return Vector2{
		g.origin.X + (float64(i)+0.5)*g.gridSpacing.X,
		g.origin.Y + (float64(j)+0.5)*g.gridSpacing.Y,
	}
}

// HasSameShape reports whether two grids agree on resolution, spacing
// and origin.
func (g *Grid2) HasSameShape(other *Grid2) bool {
	return g.resolution == other.resolution &&
		g.gridSpacing == other.gridSpacing &&
		g.origin == other.origin
}

// Swap exchanges the shapes of two grids. Data-bearing grids embedding
// Grid2 swap their storage alongside this to implement reallocation
// free resizing.
func (g *Grid2) Swap(other *Grid2) {
	g.resolution, other.resolution = other.resolution, g.resolution
	g.origin, other.origin = other.origin, g.origin
	g.gridSpacing, other.gridSpacing = other.gridSpacing, g.gridSpacing
}

// ForEachCellIndex invokes f once per cell index serially, i varying
// fastest, j last.
func (g *Grid2) ForEachCellIndex(f func(i, j int)) {
	for j := 0; j < g.resolution.Y; j++ {
		for i := 0; i < g.resolution.X; i++ {
			f(i, j)
		}
	}
}
