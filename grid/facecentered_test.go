package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFaceCenteredGrid2_Layout(t *testing.T) {
	g, err := NewFaceCenteredGrid2(Size2{4, 3}, Vector2{1, 1}, Vector2{})
	assert.NoError(t, err)
	assert.Equal(t, Size2{5, 3}, g.USize())
	assert.Equal(t, Size2{4, 4}, g.VSize())

	// u-faces sit on x-aligned cell borders, offset half a spacing in y.
	assert.Equal(t, Vector2{0, 0.5}, g.UPosition(0, 0))
	assert.Equal(t, Vector2{4, 2.5}, g.UPosition(4, 2))
	assert.Equal(t, Vector2{0.5, 0}, g.VPosition(0, 0))
	assert.Equal(t, Vector2{3.5, 3}, g.VPosition(3, 3))
}

func TestFaceCenteredGrid2_Divergence(t *testing.T) {
	g, _ := NewFaceCenteredGrid2(Size2{4, 4}, Vector2{0.5, 0.5}, Vector2{})

	// Uniform field is divergence free.
	g.Fill(Vector2{2, -1})
	g.ForEachCellIndex(func(i, j int) {
		assert.InDelta(t, 0, g.DivergenceAtCellCenter(i, j), 1.e-12)
	})

	// u = x gives du/dx = 1 everywhere.
	g.ForEachUIndex(func(i, j int) {
		g.SetU(i, j, g.UPosition(i, j).X)
	})
	g.ForEachVIndex(func(i, j int) {
		g.SetV(i, j, 0)
	})
	g.ForEachCellIndex(func(i, j int) {
		assert.InDelta(t, 1, g.DivergenceAtCellCenter(i, j), 1.e-12)
	})
}

func TestFaceCenteredGrid2_SetCloneResize(t *testing.T) {
	g, _ := NewFaceCenteredGrid2(Size2{3, 3}, Vector2{1, 1}, Vector2{})
	g.Fill(Vector2{1, 2})

	same, _ := NewFaceCenteredGrid2(Size2{3, 3}, Vector2{1, 1}, Vector2{})
	assert.NoError(t, same.Set(g))
	assert.Equal(t, 1., same.U(1, 1))
	assert.Equal(t, 2., same.V(1, 1))

	other, _ := NewFaceCenteredGrid2(Size2{4, 3}, Vector2{1, 1}, Vector2{})
	assert.Error(t, other.Set(g))

	c := g.Clone()
	c.SetU(0, 0, 42)
	assert.Equal(t, 1., g.U(0, 0)) // clone does not alias

	assert.NoError(t, g.Resize(Size2{5, 2}, Vector2{2, 2}, Vector2{1, 1}))
	assert.Equal(t, Size2{5, 2}, g.Resolution())
	assert.Equal(t, Size2{6, 2}, g.USize())
	assert.Equal(t, 0., g.U(0, 0)) // resize discards contents
	assert.Error(t, g.Resize(Size2{5, 2}, Vector2{0, 2}, Vector2{}))
}

func TestFaceCenteredGrid3_Layout(t *testing.T) {
	g, err := NewFaceCenteredGrid3(Size3{2, 3, 4}, Vector3{1, 1, 1}, Vector3{})
	assert.NoError(t, err)
	assert.Equal(t, Size3{3, 3, 4}, g.USize())
	assert.Equal(t, Size3{2, 4, 4}, g.VSize())
	assert.Equal(t, Size3{2, 3, 5}, g.WSize())

	assert.Equal(t, Vector3{0, 0.5, 0.5}, g.UPosition(0, 0, 0))
	assert.Equal(t, Vector3{0.5, 0, 0.5}, g.VPosition(0, 0, 0))
	assert.Equal(t, Vector3{0.5, 0.5, 0}, g.WPosition(0, 0, 0))

	g.Fill(Vector3{1, 1, 1})
	g.ForEachCellIndex(func(i, j, k int) {
		assert.InDelta(t, 0, g.DivergenceAtCellCenter(i, j, k), 1.e-12)
	})

	// w = z gives dw/dz = 1.
	for k := 0; k <= 4; k++ {
		for j := 0; j < 3; j++ {
			for i := 0; i < 2; i++ {
				g.SetW(i, j, k, g.WPosition(i, j, k).Z)
				if k < 4 {
					g.SetU(i, j, k, 0)
					g.SetV(i, j, k, 0)
				}
			}
		}
	}
	for j := 0; j < 3; j++ {
		for k := 0; k < 4; k++ {
			g.SetU(2, j, k, 0)
		}
	}
	for i := 0; i < 2; i++ {
		for k := 0; k < 4; k++ {
			g.SetV(i, 3, k, 0)
		}
	}
	g.ForEachCellIndex(func(i, j, k int) {
		assert.InDelta(t, 1, g.DivergenceAtCellCenter(i, j, k), 1.e-12)
	})
}
