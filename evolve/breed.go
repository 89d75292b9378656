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
	"math/rand"

	"github.com/spatialmodel/wrapsim"
)

// Breed returns a child of schedules a and b. Each arm angle and stepper
// speed is a random interpolation between the parents' values that is then
// mutated by up to ±MaxMutationPercentage. Arm angles are clamped to
// [MinShellArmAngle, 90]; speeds are not clamped. The child takes its
// geometry from c.
func Breed(c *EvolutionConfig, a, b wrapsim.ShellConfig, rng *rand.Rand) wrapsim.ShellConfig {
	child := a.Clone()
	c.setGeometry(&child)
	for i := 0; i < child.NumAngles; i++ {
		angle := lerp(a.ShellArmAngles[i], b.ShellArmAngles[i], rng.Float64())
		speed := lerp(a.ShellStepperSpeed[i], b.ShellStepperSpeed[i], rng.Float64())

		angle = mutate(angle, c.MaxMutationPercentage, rng)
		speed = mutate(speed, c.MaxMutationPercentage, rng)

		child.ShellArmAngles[i] = math.Max(c.MinShellArmAngle, math.Min(90, angle))
		child.ShellStepperSpeed[i] = speed
		child.RimRotationsUntilNextAngle[i] = wrapsim.RimRotations(speed)
	}
	return child
}

// setGeometry overwrites the shell geometry of s with that of c.
func (c *EvolutionConfig) setGeometry(s *wrapsim.ShellConfig) {
	s.NumAngles = c.NumAngles
	s.ShellDiameter = c.ShellDiameter
	s.TapeWidth = c.TapeWidth
	s.ShellChuckDiameter = c.ShellChuckDiameter
}

// mutate scales v by 1 ± maxMutation·m for a uniformly drawn m in [0, 1].
func mutate(v, maxMutation float64, rng *rand.Rand) float64 {
	sign := 1.
	if rng.Intn(2) == 0 {
		sign = -1
	}
	return v * (1 + maxMutation*sign*rng.Float64())
}

// Counts returns the number of elite and reinjected members in a
// population of n.
func (c *EvolutionConfig) Counts(n int) (elite, random int) {
	elite = int(math.Floor(float64(n) * c.ElitePercentage))
	random = int(math.Floor(float64(n) * c.RandomPercentage))
	return elite, random
}

// NaturalSelection builds the next generation from the ranked population.
// The best members are carried over unchanged, freshly initialized members
// are reinjected for diversity, and the remaining slots are filled with
// children of parents drawn, with replacement, from every ranked member
// outside the reinjection tail. The result is ordered elite, children,
// reinjected.
func NaturalSelection(c *EvolutionConfig, ranked Population, rng *rand.Rand) Population {
	n := len(ranked)
	elite, random := c.Counts(n)
	parents := n - random

	next := make(Population, 0, n)
	next = append(next, ranked[:elite]...)
	for len(next) < n-random {
		a := ranked[rng.Intn(parents)].Config
		b := ranked[rng.Intn(parents)].Config
		next = append(next, Member{Config: Breed(c, a, b, rng)})
	}
	return append(next, Initialize(c, random)...)
}
