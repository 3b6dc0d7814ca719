package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDOKToCSR(t *testing.T) {
	dok := NewDOK(3, 3)
	dok.Set(0, 0, 2)
	dok.Set(0, 1, -1)
	dok.Set(1, 0, -1)
	dok.Set(1, 1, 2)
	dok.Set(1, 2, -1)
	dok.Set(2, 1, -1)
	dok.Set(2, 2, 2)
	dok.Add(2, 2, 1) // accumulate onto an existing entry

	csr := dok.ToCSR()
	r, c := csr.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 7, csr.NNZ())
	assert.Equal(t, 3., csr.At(2, 2))
	assert.Equal(t, 0., csr.At(0, 2))
}

func TestCSR_MulVecAndDiagonal(t *testing.T) {
	dok := NewDOK(3, 3)
	dok.Set(0, 0, 2)
	dok.Set(0, 1, -1)
	dok.Set(1, 0, -1)
	dok.Set(1, 1, 2)
	dok.Set(1, 2, -1)
	dok.Set(2, 1, -1)
	dok.Set(2, 2, 2)
	csr := dok.ToCSR()

	x := []float64{1, 2, 3}
	y := make([]float64, 3)
	csr.MulVec(x, y)
	assert.InDeltaSlice(t, []float64{0, 0, 4}, y, 1.e-12)

	assert.InDeltaSlice(t, []float64{2, 2, 2}, csr.Diagonal(), 1.e-12)

	assert.Panics(t, func() {
		csr.MulVec([]float64{1, 2}, y)
	})
}
