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
	"math"
	"sort"

	"github.com/spatialmodel/wrapsim"
)

// Member is a candidate schedule paired with its fitness. Lower fitness is
// better; zero means the member has not been evaluated yet.
type Member struct {
	Config  wrapsim.ShellConfig
	Fitness float64
}

// Population is an ordered set of candidate schedules.
type Population []Member

// Initialize returns n members spread over a ⌈√n⌉×⌈√n⌉ grid of the search
// space. The grid column interpolates every arm angle between its bounds
// and the grid row interpolates every stepper speed fraction. When n is not
// a perfect square the last row is only partly filled.
func Initialize(c *EvolutionConfig, n int) Population {
	pop := make(Population, n)
	side := int(math.Ceil(math.Sqrt(float64(n))))
	for i := range pop {
		var a, b float64
		if side > 1 {
			a = float64(i%side) / float64(side-1)
			b = float64(i/side) / float64(side-1)
		}
		s := wrapsim.ShellConfig{
			NumAngles:                  c.NumAngles,
			ShellDiameter:              c.ShellDiameter,
			TapeWidth:                  c.TapeWidth,
			ShellChuckDiameter:         c.ShellChuckDiameter,
			ShellArmAngles:             make([]float64, c.NumAngles),
			ShellStepperSpeed:          make([]float64, c.NumAngles),
			RimRotationsUntilNextAngle: make([]float64, c.NumAngles),
		}
		for j := 0; j < c.NumAngles; j++ {
			s.ShellArmAngles[j] = lerp(c.MinShellArmAngles[j], c.MaxShellArmAngles[j], a)
			f := lerp(c.MinShellStepperSpeedFraction[j], c.MaxShellStepperSpeedFraction[j], b)
			s.ShellStepperSpeed[j] = wrapsim.SpeedFromFraction(f)
			s.RimRotationsUntilNextAngle[j] = wrapsim.RimRotations(s.ShellStepperSpeed[j])
		}
		pop[i] = Member{Config: s}
	}
	return pop
}

// Sort orders p by ascending fitness. Members with equal fitness keep
// their relative order.
func (p Population) Sort() {
	sort.SliceStable(p, func(i, j int) bool { return p[i].Fitness < p[j].Fitness })
}

// Fitnesses returns the fitness of every member, in order.
func (p Population) Fitnesses() []float64 {
	f := make([]float64, len(p))
	for i, m := range p {
		f[i] = m.Fitness
	}
	return f
}
