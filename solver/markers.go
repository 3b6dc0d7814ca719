package solver

import (
	"math"
	"runtime"

	"github.com/notargets/gofluid/grid"
)

// maxSDF is the "no surface anywhere" sentinel: the default boundary
// SDF (no solid) and fluid SDF (fully fluid) are constant fields at
// this value.
const maxSDF = math.MaxFloat64

// CellMarker classifies a grid cell against the boundary and fluid
// signed-distance fields. Boundary SDF negative means Solid; otherwise
// fluid SDF positive means Fluid and non-positive means Air
// (atmosphere). Markers are transient - rebuilt from the fields on
// every solve.
type CellMarker uint8

const (
	Fluid CellMarker = iota
	Air
	Solid
)

type Markers2 struct {
	Size grid.Size2
	Data []CellMarker
}

func NewMarkers2(size grid.Size2) *Markers2 {
	return &Markers2{
		Size: size,
		Data: make([]CellMarker, size.Count()),
	}
}

func (m *Markers2) Idx(i, j int) int { return i + m.Size.X*j }

func (m *Markers2) At(i, j int) CellMarker { return m.Data[m.Idx(i, j)] }

func (m *Markers2) Set(i, j int, val CellMarker) { m.Data[m.Idx(i, j)] = val }

func (m *Markers2) CountOf(marker CellMarker) (count int) {
	for _, v := range m.Data {
		if v == marker {
			count++
		}
	}
	return
}

type Markers3 struct {
	Size grid.Size3
	Data []CellMarker
}

func NewMarkers3(size grid.Size3) *Markers3 {
	return &Markers3{
		Size: size,
		Data: make([]CellMarker, size.Count()),
	}
}

func (m *Markers3) Idx(i, j, k int) int {
	return i + m.Size.X*(j+m.Size.Y*k)
}

func (m *Markers3) At(i, j, k int) CellMarker { return m.Data[m.Idx(i, j, k)] }

func (m *Markers3) Set(i, j, k int, val CellMarker) { m.Data[m.Idx(i, j, k)] = val }

func (m *Markers3) CountOf(marker CellMarker) (count int) {
	for _, v := range m.Data {
		if v == marker {
			count++
		}
	}
	return
}

// parallelDegree caps the goroutine fan-out by the outer loop extent so
// small grids don't spawn idle workers.
func parallelDegree(outer int) (np int) {
	np = runtime.NumCPU()
	if np > outer {
		np = outer
	}
	if np < 1 {
		np = 1
	}
	return
}
