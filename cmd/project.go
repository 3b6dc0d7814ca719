/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"io/ioutil"
	"math"
	"os"

	"github.com/ghodss/yaml"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/notargets/gofluid/field"
	"github.com/notargets/gofluid/grid"
	"github.com/notargets/gofluid/solver"
)

type ProjectModel struct {
	ParamFile     string
	UseCompressed bool
	Profile       bool
}

type InputParameters struct {
	Title           string    `yaml:"Title"`
	Dimensions      int       `yaml:"Dimensions"`
	Resolution      []int     `yaml:"Resolution"`
	GridSpacing     []float64 `yaml:"GridSpacing"`
	Origin          []float64 `yaml:"Origin"`
	TimeStep        float64   `yaml:"TimeStep"`
	Frames          int       `yaml:"Frames"`
	InitialVelocity []float64 `yaml:"InitialVelocity"`
	ObstacleCenter  []float64 `yaml:"ObstacleCenter"`
	ObstacleRadius  float64   `yaml:"ObstacleRadius"`
	MaxIterations   int       `yaml:"MaxIterations"`
	Tolerance       float64   `yaml:"Tolerance"`
}

func (ip *InputParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *InputParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%d]\t\t\t= Dimensions\n", ip.Dimensions)
	fmt.Printf("%v\t\t= Resolution\n", ip.Resolution)
	fmt.Printf("%v\t= GridSpacing\n", ip.GridSpacing)
	fmt.Printf("%8.5f\t\t= TimeStep\n", ip.TimeStep)
	fmt.Printf("[%d]\t\t\t= Frames\n", ip.Frames)
	if ip.ObstacleRadius > 0 {
		fmt.Printf("%v r=%v\t= Obstacle\n", ip.ObstacleCenter, ip.ObstacleRadius)
	}
}

// ProjectCmd represents the project command
var ProjectCmd = &cobra.Command{
	Use:   "project",
	Short: "Run the pressure projection on a configured scenario",
	Long: `
Reads a YAML scenario (grid shape, initial velocity, optional round
solid obstacle), runs the pressure projection once per frame and prints
the residual divergence per frame.`,
	Run: func(cmd *cobra.Command, args []string) {
		pmod := &ProjectModel{}
		pmod.ParamFile, _ = cmd.Flags().GetString("inputConditionsFile")
		pmod.UseCompressed, _ = cmd.Flags().GetBool("compressed")
		pmod.Profile, _ = cmd.Flags().GetBool("profile")
		if pmod.Profile {
			defer profile.Start(profile.CPUProfile).Stop()
		}
		ip := processProjectInput(pmod)
		if err := RunProject(pmod, ip); err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
	},
}

func processProjectInput(pmod *ProjectModel) (ip *InputParameters) {
	var (
		err error
	)
	if len(pmod.ParamFile) == 0 {
		err = fmt.Errorf("must supply a scenario file (-I, --inputConditionsFile) in YAML format")
		fmt.Printf("error: %s\n", err.Error())
		exampleFile := `
########################################
Title: "Lid Driven Box"
Dimensions: 2
Resolution: [64, 64]
GridSpacing: [1., 1.]
TimeStep: 0.02
Frames: 10
InitialVelocity: [1., 0.]
ObstacleCenter: [32., 32.]
ObstacleRadius: 8.
########################################
`
		fmt.Printf("Example File:%s\n", exampleFile)
		os.Exit(1)
	}
	var data []byte
	if data, err = ioutil.ReadFile(pmod.ParamFile); err != nil {
		panic(err)
	}
	ip = &InputParameters{
		Dimensions: 2,
		TimeStep:   0.02,
		Frames:     1,
	}
	if err = ip.Parse(data); err != nil {
		panic(err)
	}
	ip.Print()
	return
}

func init() {
	rootCmd.AddCommand(ProjectCmd)
	ProjectCmd.Flags().StringP("inputConditionsFile", "I", "", "YAML scenario file")
	ProjectCmd.Flags().BoolP("compressed", "c", false, "use the compressed (fluid cells only) linear system")
	ProjectCmd.Flags().BoolP("profile", "p", false, "write a CPU profile for the run")
}

func RunProject(pmod *ProjectModel, ip *InputParameters) error {
	switch ip.Dimensions {
	case 2:
		return runProject2D(pmod, ip)
	case 3:
		return runProject3D(pmod, ip)
	default:
		return fmt.Errorf("dimensions must be 2 or 3, got %d", ip.Dimensions)
	}
}

func runProject2D(pmod *ProjectModel, ip *InputParameters) error {
	var (
		res     = grid.Size2{X: at(ip.Resolution, 0, 64), Y: at(ip.Resolution, 1, 64)}
		h       = grid.Vector2{X: atF(ip.GridSpacing, 0, 1), Y: atF(ip.GridSpacing, 1, 1)}
		origin  = grid.Vector2{X: atF(ip.Origin, 0, 0), Y: atF(ip.Origin, 1, 0)}
		initial = grid.Vector2{X: atF(ip.InitialVelocity, 0, 0), Y: atF(ip.InitialVelocity, 1, 0)}
	)
	vel, err := grid.NewFaceCenteredGrid2(res, h, origin)
	if err != nil {
		return err
	}
	vel.Fill(initial)

	var boundarySDF field.ScalarField2
	if ip.ObstacleRadius > 0 {
		boundarySDF = field.CircleSDF2{
			Center: grid.Vector2{X: atF(ip.ObstacleCenter, 0, 0), Y: atF(ip.ObstacleCenter, 1, 0)},
			Radius: ip.ObstacleRadius,
		}
	}

	ps := solver.NewSinglePhasePressureSolver2()
	if ip.MaxIterations > 0 {
		ps.MaxIterations = ip.MaxIterations
	}
	if ip.Tolerance > 0 {
		ps.Tolerance = ip.Tolerance
	}

	for frame := 1; frame <= ip.Frames; frame++ {
		if err = ps.Solve(vel, ip.TimeStep, vel, boundarySDF, nil, nil,
			pmod.UseCompressed); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		fmt.Printf("frame %4d: max |divergence| = %g\n", frame, maxDivergence2(vel))
	}
	return nil
}

func runProject3D(pmod *ProjectModel, ip *InputParameters) error {
	var (
		res = grid.Size3{
			X: at(ip.Resolution, 0, 32), Y: at(ip.Resolution, 1, 32),
			Z: at(ip.Resolution, 2, 32),
		}
		h = grid.Vector3{
			X: atF(ip.GridSpacing, 0, 1), Y: atF(ip.GridSpacing, 1, 1),
			Z: atF(ip.GridSpacing, 2, 1),
		}
		origin = grid.Vector3{
			X: atF(ip.Origin, 0, 0), Y: atF(ip.Origin, 1, 0), Z: atF(ip.Origin, 2, 0),
		}
		initial = grid.Vector3{
			X: atF(ip.InitialVelocity, 0, 0), Y: atF(ip.InitialVelocity, 1, 0),
			Z: atF(ip.InitialVelocity, 2, 0),
		}
	)
	vel, err := grid.NewFaceCenteredGrid3(res, h, origin)
	if err != nil {
		return err
	}
	vel.Fill(initial)

	var boundarySDF field.ScalarField3
	if ip.ObstacleRadius > 0 {
		boundarySDF = field.SphereSDF3{
			Center: grid.Vector3{
				X: atF(ip.ObstacleCenter, 0, 0), Y: atF(ip.ObstacleCenter, 1, 0),
				Z: atF(ip.ObstacleCenter, 2, 0),
			},
			Radius: ip.ObstacleRadius,
		}
	}

	ps := solver.NewSinglePhasePressureSolver3()
	if ip.MaxIterations > 0 {
		ps.MaxIterations = ip.MaxIterations
	}
	if ip.Tolerance > 0 {
		ps.Tolerance = ip.Tolerance
	}

	for frame := 1; frame <= ip.Frames; frame++ {
		if err = ps.Solve(vel, ip.TimeStep, vel, boundarySDF, nil, nil,
			pmod.UseCompressed); err != nil {
			return fmt.Errorf("frame %d: %w", frame, err)
		}
		fmt.Printf("frame %4d: max |divergence| = %g\n", frame, maxDivergence3(vel))
	}
	return nil
}

func maxDivergence2(vel *grid.FaceCenteredGrid2) (max float64) {
	vel.ForEachCellIndex(func(i, j int) {
		if d := math.Abs(vel.DivergenceAtCellCenter(i, j)); d > max {
			max = d
		}
	})
	return
}

func maxDivergence3(vel *grid.FaceCenteredGrid3) (max float64) {
	vel.ForEachCellIndex(func(i, j, k int) {
		if d := math.Abs(vel.DivergenceAtCellCenter(i, j, k)); d > max {
			max = d
		}
	})
	return
}

func at(s []int, i, def int) int {
	if i < len(s) {
		return s[i]
	}
	return def
}

func atF(s []float64, i int, def float64) float64 {
	if i < len(s) {
		return s[i]
	}
	return def
}
