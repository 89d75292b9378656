/*
Copyright © 2026 the WrapSim authors.
This file is part of WrapSim.

WrapSim is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

WrapSim is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with WrapSim.  If not, see <http://www.gnu.org/licenses/>.
*/

package wrapsim

import (
	"fmt"
	"math"
)

// Simulator rasterizes taping sessions onto layer maps. A Simulator holds no
// state between calls, so one instance may be reused for any number of
// shells, but a Layermap must not be shared between concurrent calls.
type Simulator struct {
	Config SimulationConfig
}

// NewSimulator returns a simulator for the given raster settings.
func NewSimulator(c SimulationConfig) *Simulator {
	return &Simulator{Config: c}
}

// NewLayermap allocates a layer map sized for s.
func (s *Simulator) NewLayermap() *Layermap {
	return NewLayermap(s.Config.LayermapSize)
}

// Simulate clears lm and fills it with the layers laid down by the taping
// schedule in shell.
//
// The rim is advanced in fixed angular steps while the arm is held at each
// scheduled angle. At every step the tape is sampled across its width and
// the covered pixels are marked in the scratch grid; each time the rim
// completes a full turn the scratch grid is folded into the layer counts.
// The rim position is tracked in units of steps so that turn boundaries are
// found by integer comparison.
func (s *Simulator) Simulate(shell ShellConfig, lm *Layermap) error {
	size := s.Config.LayermapSize
	if lm.Size != size {
		return fmt.Errorf("wrapsim: layer map is %dx%d but the simulation is configured for %dx%d",
			lm.Size, lm.Size, size, size)
	}
	lm.Reset()

	stepsPerTurn := s.Config.StepsPerTurn()
	step := s.Config.StepSize()

	// Mark the circle where the chuck holds the shell, for reference.
	chuck := shell.ChuckContactAngle()
	for i := 0; float64(i) < stepsPerTurn; i++ {
		u, v := ChuckToUV(chuck, float64(i)*step)
		lm.markUV(u, v, ChuckMarker)
	}

	tapeWidth := shell.TapeWidthRadians()
	tapeSamples := int(math.Floor(tapeWidth/step)) + 1
	tapeStart := -tapeWidth / 2
	tape := make([]Vec3, tapeSamples)
	for j := range tape {
		tape[j] = tapeDirection(tapeStart + float64(j)*step)
	}

	var shellRotation float64
	var pos float64 // rim position in steps
	for a := 0; a < shell.NumAngles; a++ {
		arm := shell.ShellArmAngles[a] * math.Pi / 180
		speed := shell.ShellStepperSpeed[a]
		end := stepsPerTurn * shell.RimRotationsUntilNextAngle[a]

		for ; pos < end; pos++ {
			frame := ShellFrame(pos*step, arm, shellRotation)
			for _, t := range tape {
				u, v := ProjectToUV(frame.Apply(t))
				lm.markUV(u, v, 1)
			}

			// Each full rim turn lays down one layer.
			if math.Floor((pos+1)/stepsPerTurn) > math.Floor(pos/stepsPerTurn) {
				lm.fold()
			}

			shellRotation += step * speed
		}

		// Each application starts a fresh rim count. Positions are whole
		// steps, so no sub-step remainder carries over.
		pos = 0
	}
	return nil
}

// Simulate runs a single taping simulation and returns the resulting layer
// map.
func Simulate(sim SimulationConfig, shell ShellConfig) (*Layermap, error) {
	s := NewSimulator(sim)
	lm := s.NewLayermap()
	if err := s.Simulate(shell, lm); err != nil {
		return nil, err
	}
	return lm, nil
}
