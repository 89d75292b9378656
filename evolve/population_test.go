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

package evolve

import (
	"testing"

	"github.com/spatialmodel/wrapsim"
	"gonum.org/v1/gonum/floats"
)

func TestInitialize(t *testing.T) {
	const tol = 1e-12
	c := testConfig()
	speed := wrapsim.SpeedFromFraction

	t.Run("square", func(t *testing.T) {
		pop := Initialize(c, 4)
		want := []struct{ angles, speeds []float64 }{
			{[]float64{20, 40}, []float64{speed(0.2), speed(0.3)}},
			{[]float64{60, 80}, []float64{speed(0.2), speed(0.3)}},
			{[]float64{20, 40}, []float64{speed(0.5), speed(0.6)}},
			{[]float64{60, 80}, []float64{speed(0.5), speed(0.6)}},
		}
		for i, m := range pop {
			if !floats.EqualApprox(m.Config.ShellArmAngles, want[i].angles, tol) {
				t.Errorf("member %d angles %v != %v", i, m.Config.ShellArmAngles, want[i].angles)
			}
			if !floats.EqualApprox(m.Config.ShellStepperSpeed, want[i].speeds, tol) {
				t.Errorf("member %d speeds %v != %v", i, m.Config.ShellStepperSpeed, want[i].speeds)
			}
			for j, s := range m.Config.ShellStepperSpeed {
				if r := m.Config.RimRotationsUntilNextAngle[j]; !floats.EqualWithinAbsOrRel(r, 1/s, tol, tol) {
					t.Errorf("member %d rim rotations %g != %g", i, r, 1/s)
				}
			}
			if err := m.Config.Validate(); err != nil {
				t.Errorf("member %d: %v", i, err)
			}
			if m.Fitness != 0 {
				t.Errorf("member %d fitness %g != 0", i, m.Fitness)
			}
		}
	})
	t.Run("ragged", func(t *testing.T) {
		pop := Initialize(c, 5)
		if len(pop) != 5 {
			t.Fatalf("size %d != 5", len(pop))
		}
		// The centre of a 3×3 grid.
		mid := pop[4].Config
		if !floats.EqualApprox(mid.ShellArmAngles, []float64{40, 60}, tol) {
			t.Errorf("angles %v", mid.ShellArmAngles)
		}
		if !floats.EqualApprox(mid.ShellStepperSpeed, []float64{speed(0.35), speed(0.45)}, tol) {
			t.Errorf("speeds %v", mid.ShellStepperSpeed)
		}
	})
	t.Run("single", func(t *testing.T) {
		pop := Initialize(c, 1)
		if !floats.EqualApprox(pop[0].Config.ShellArmAngles, c.MinShellArmAngles, tol) {
			t.Errorf("angles %v", pop[0].Config.ShellArmAngles)
		}
	})
	t.Run("empty", func(t *testing.T) {
		if pop := Initialize(c, 0); len(pop) != 0 {
			t.Errorf("size %d != 0", len(pop))
		}
	})
	t.Run("geometry", func(t *testing.T) {
		for _, m := range Initialize(c, 3) {
			s := m.Config
			if s.NumAngles != 2 || s.ShellDiameter != 10 || s.TapeWidth != 1 || s.ShellChuckDiameter != 2 {
				t.Errorf("geometry not copied: %+v", s)
			}
		}
	})
}

func TestPopulationSort(t *testing.T) {
	pop := Population{
		{Config: wrapsim.ShellConfig{NumAngles: 0}, Fitness: 3},
		{Config: wrapsim.ShellConfig{NumAngles: 1}, Fitness: 1},
		{Config: wrapsim.ShellConfig{NumAngles: 2}, Fitness: 2},
		{Config: wrapsim.ShellConfig{NumAngles: 3}, Fitness: 1},
	}
	pop.Sort()
	want := []int{1, 3, 2, 0}
	for i, m := range pop {
		if m.Config.NumAngles != want[i] {
			t.Errorf("position %d holds member %d, want %d", i, m.Config.NumAngles, want[i])
		}
	}
	if f := pop.Fitnesses(); !floats.Equal(f, []float64{1, 1, 2, 3}) {
		t.Errorf("fitnesses %v", f)
	}
}
