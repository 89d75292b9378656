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
	"fmt"
	"math"
)

// EvolutionConfig holds the search bounds and meta-parameters. It is
// read-only once loaded.
type EvolutionConfig struct {
	// Shell geometry copied into every candidate schedule.
	NumAngles          int     `json:"numAngles" toml:"numAngles"`
	ShellDiameter      float64 `json:"shellDiameter" toml:"shellDiameter"`
	TapeWidth          float64 `json:"tapeWidth" toml:"tapeWidth"`
	ShellChuckDiameter float64 `json:"shellChuckDiameter" toml:"shellChuckDiameter"`

	// TargetLayers is the uniform layer count the search aims for.
	TargetLayers int `json:"targetLayers" toml:"targetLayers"`

	MaxGenerations int `json:"maxGenerations" toml:"maxGenerations"`
	PopulationSize int `json:"populationSize" toml:"populationSize"`

	// ElitePercentage is the fraction of the ranked population kept
	// unchanged each generation.
	ElitePercentage float64 `json:"elitePercentage" toml:"elitePercentage"`

	// RandomPercentage is the fraction of the population replaced by
	// freshly initialized schedules each generation.
	RandomPercentage float64 `json:"randomPercentage" toml:"randomPercentage"`

	// MaxMutationPercentage bounds the relative change applied to a bred
	// value.
	MaxMutationPercentage float64 `json:"maxMutationPercentage" toml:"maxMutationPercentage"`

	// MinShellArmAngle is the lowest arm angle, in degrees, the machine can
	// physically reach.
	MinShellArmAngle float64 `json:"minShellArmAngle" toml:"minShellArmAngle"`

	// Per-angle search bounds. Arm angles are in degrees and stepper speeds
	// are fractions of the rim speed.
	MinShellArmAngles            []float64 `json:"minShellArmAngles" toml:"minShellArmAngles"`
	MaxShellArmAngles            []float64 `json:"maxShellArmAngles" toml:"maxShellArmAngles"`
	MinShellStepperSpeedFraction []float64 `json:"minShellStepperSpeedFraction" toml:"minShellStepperSpeedFraction"`
	MaxShellStepperSpeedFraction []float64 `json:"maxShellStepperSpeedFraction" toml:"maxShellStepperSpeedFraction"`
}

// Validate checks that the search bounds describe valid schedules.
func (c *EvolutionConfig) Validate() error {
	if c.NumAngles < 1 {
		return fmt.Errorf("evolve: numAngles=%d but should be >0", c.NumAngles)
	}
	if c.PopulationSize < 1 {
		return fmt.Errorf("evolve: populationSize=%d but should be >0", c.PopulationSize)
	}
	if c.MaxGenerations < 0 {
		return fmt.Errorf("evolve: maxGenerations=%d but should be >=0", c.MaxGenerations)
	}
	if c.TargetLayers < 0 {
		return fmt.Errorf("evolve: targetLayers=%d but should be >=0", c.TargetLayers)
	}
	if !(c.ElitePercentage >= 0) || !(c.RandomPercentage >= 0) || c.ElitePercentage+c.RandomPercentage > 1 {
		return fmt.Errorf("evolve: elitePercentage=%g and randomPercentage=%g should be >=0 and sum to at most 1",
			c.ElitePercentage, c.RandomPercentage)
	}
	if !(c.MaxMutationPercentage >= 0 && c.MaxMutationPercentage < 1) {
		return fmt.Errorf("evolve: maxMutationPercentage=%g but should be in [0, 1)", c.MaxMutationPercentage)
	}
	if !(c.MinShellArmAngle > 0 && c.MinShellArmAngle <= 90) {
		return fmt.Errorf("evolve: minShellArmAngle=%g but should be in (0, 90]", c.MinShellArmAngle)
	}

	bounds := [][]float64{c.MinShellArmAngles, c.MaxShellArmAngles,
		c.MinShellStepperSpeedFraction, c.MaxShellStepperSpeedFraction}
	names := []string{"minShellArmAngles", "maxShellArmAngles",
		"minShellStepperSpeedFraction", "maxShellStepperSpeedFraction"}
	for i, b := range bounds {
		if len(b) != c.NumAngles {
			return fmt.Errorf("evolve: %s has %d entries but numAngles=%d", names[i], len(b), c.NumAngles)
		}
	}
	for i := 0; i < c.NumAngles; i++ {
		lo, hi := c.MinShellArmAngles[i], c.MaxShellArmAngles[i]
		if lo < c.MinShellArmAngle || hi > 90 || lo > hi {
			return fmt.Errorf("evolve: arm angle bounds [%g, %g] for angle %d should satisfy %g <= min <= max <= 90",
				lo, hi, i, c.MinShellArmAngle)
		}
		lo, hi = c.MinShellStepperSpeedFraction[i], c.MaxShellStepperSpeedFraction[i]
		if !(lo > 0) || lo > hi || math.IsInf(hi, 0) {
			return fmt.Errorf("evolve: stepper speed fraction bounds [%g, %g] for angle %d should satisfy 0 < min <= max",
				lo, hi, i)
		}
	}

	// Every candidate shares the geometry, so check it once here.
	return Initialize(c, 1)[0].Config.Validate()
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
