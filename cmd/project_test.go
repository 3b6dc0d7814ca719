package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputParameters_Parse(t *testing.T) {
	data := []byte(`
Title: "Flow Past Disc"
Dimensions: 2
Resolution: [32, 16]
GridSpacing: [0.5, 0.5]
TimeStep: 0.02
Frames: 3
InitialVelocity: [1., 0.]
ObstacleCenter: [8., 4.]
ObstacleRadius: 2.
MaxIterations: 200
Tolerance: 1.e-8
`)
	ip := &InputParameters{}
	require.NoError(t, ip.Parse(data))
	assert.Equal(t, "Flow Past Disc", ip.Title)
	assert.Equal(t, 2, ip.Dimensions)
	assert.Equal(t, []int{32, 16}, ip.Resolution)
	assert.Equal(t, []float64{0.5, 0.5}, ip.GridSpacing)
	assert.Equal(t, 0.02, ip.TimeStep)
	assert.Equal(t, 3, ip.Frames)
	assert.Equal(t, 2., ip.ObstacleRadius)
	assert.Equal(t, 200, ip.MaxIterations)
	assert.Equal(t, 1.e-8, ip.Tolerance)
}

func TestRunProject_SmallScenario(t *testing.T) {
	ip := &InputParameters{
		Dimensions:      2,
		Resolution:      []int{8, 8},
		GridSpacing:     []float64{1, 1},
		TimeStep:        0.02,
		Frames:          2,
		InitialVelocity: []float64{1, 0},
		ObstacleCenter:  []float64{4, 4},
		ObstacleRadius:  1.5,
	}
	require.NoError(t, RunProject(&ProjectModel{}, ip))
	require.NoError(t, RunProject(&ProjectModel{UseCompressed: true}, ip))

	ip3 := &InputParameters{
		Dimensions:  3,
		Resolution:  []int{4, 4, 4},
		GridSpacing: []float64{1, 1, 1},
		TimeStep:    0.02,
		Frames:      1,
	}
	require.NoError(t, RunProject(&ProjectModel{}, ip3))

	assert.Error(t, RunProject(&ProjectModel{}, &InputParameters{Dimensions: 4, TimeStep: 0.02, Frames: 1}))
}
