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

// SimulationConfig holds the raster settings shared by every simulation run.
// It is read-only once loaded.
type SimulationConfig struct {
	// LayermapSize is the width and height of the layer map in pixels.
	LayermapSize int `json:"layermapSize" toml:"layermapSize"`

	// MapFillPrecisionMult multiplies the number of angular raster steps
	// per full turn. A good starting value is 2-3.
	MapFillPrecisionMult float64 `json:"mapFillPrecisionMult" toml:"mapFillPrecisionMult"`

	// ErrorCalcYAxisSweeps is the number of evenly spaced columns sampled
	// when calculating the layer map error. A good starting value is 8.
	ErrorCalcYAxisSweeps int `json:"errorCalcYAxisSweeps" toml:"errorCalcYAxisSweeps"`
}

// Validate checks that the configuration describes a usable raster.
func (c SimulationConfig) Validate() error {
	if c.LayermapSize < 2 {
		return fmt.Errorf("wrapsim: layermapSize=%d but should be >1", c.LayermapSize)
	}
	if !(c.MapFillPrecisionMult > 0) {
		return fmt.Errorf("wrapsim: mapFillPrecisionMult=%g but should be >0", c.MapFillPrecisionMult)
	}
	if c.ErrorCalcYAxisSweeps < 1 || c.ErrorCalcYAxisSweeps > c.LayermapSize {
		return fmt.Errorf("wrapsim: errorCalcYAxisSweeps=%d but should be between 1 and layermapSize (%d)",
			c.ErrorCalcYAxisSweeps, c.LayermapSize)
	}
	return nil
}

// StepsPerTurn returns the number of angular raster steps in one full turn.
func (c SimulationConfig) StepsPerTurn() float64 {
	return float64(c.LayermapSize) * c.MapFillPrecisionMult
}

// StepSize returns the angular raster step in radians.
func (c SimulationConfig) StepSize() float64 {
	return 2 * math.Pi / c.StepsPerTurn()
}

// ShellConfig is the taping schedule for a single shell: one entry per
// application in each of the per-angle sequences.
type ShellConfig struct {
	NumAngles          int     `json:"numAngles" toml:"numAngles"`
	ShellDiameter      float64 `json:"shellDiameter" toml:"shellDiameter"`           // inches
	TapeWidth          float64 `json:"tapeWidth" toml:"tapeWidth"`                   // inches
	ShellChuckDiameter float64 `json:"shellChuckDiameter" toml:"shellChuckDiameter"` // inches

	// ShellArmAngles is each application's arm angle in degrees.
	ShellArmAngles []float64 `json:"shellArmAngles" toml:"shellArmAngles"`

	// ShellStepperSpeed is each application's shell stepper speed
	// relative to the rim speed.
	ShellStepperSpeed []float64 `json:"shellStepperSpeed" toml:"shellStepperSpeed"`

	// RimRotationsUntilNextAngle is the number of rim rotations each
	// application is held for. See RimRotations.
	RimRotationsUntilNextAngle []float64 `json:"rimRotationsUntilNextAngle" toml:"rimRotationsUntilNextAngle"`
}

// RimRotations returns the number of rim rotations an application with
// the given stepper speed is held for, so that the shell makes one full
// rotation per application.
func RimRotations(speed float64) float64 {
	return 1 / speed
}

// SpeedFromFraction converts a configured stepper speed fraction into the
// internal stepper speed.
func SpeedFromFraction(fraction float64) float64 {
	return 1 / (fraction * 2)
}

// FractionFromSpeed is the inverse of SpeedFromFraction.
func FractionFromSpeed(speed float64) float64 {
	return 0.5 / speed
}

// TapeWidthRadians returns the angular width of the tape on the shell.
func (s ShellConfig) TapeWidthRadians() float64 {
	return (s.TapeWidth / (s.ShellDiameter * math.Pi)) * math.Pi
}

// ChuckContactAngle returns the colatitude, in radians, of the circle
// where the chuck holds the shell.
func (s ShellConfig) ChuckContactAngle() float64 {
	return 2 * math.Pi * (s.ShellChuckDiameter / (math.Pi * s.ShellDiameter))
}

// Validate checks the schedule invariants and the physical bounds that the
// simulator depends on.
func (s ShellConfig) Validate() error {
	if s.NumAngles < 1 {
		return fmt.Errorf("wrapsim: numAngles=%d but should be >0", s.NumAngles)
	}
	seqs := [][]float64{s.ShellArmAngles, s.ShellStepperSpeed, s.RimRotationsUntilNextAngle}
	names := []string{"shellArmAngles", "shellStepperSpeed", "rimRotationsUntilNextAngle"}
	for i, seq := range seqs {
		if len(seq) != s.NumAngles {
			return fmt.Errorf("wrapsim: %s has %d entries but numAngles=%d", names[i], len(seq), s.NumAngles)
		}
	}
	vars := []float64{s.ShellDiameter, s.TapeWidth, s.ShellChuckDiameter}
	varNames := []string{"shellDiameter", "tapeWidth", "shellChuckDiameter"}
	for i, v := range vars {
		if !(v > 0) {
			return fmt.Errorf("wrapsim: %s=%g but should be >0", varNames[i], v)
		}
	}
	if w := s.TapeWidthRadians(); w >= 2*math.Pi {
		return fmt.Errorf("wrapsim: tape width of %g radians covers the whole rim", w)
	}
	for i := 0; i < s.NumAngles; i++ {
		if a := s.ShellArmAngles[i]; !(a > 0 && a <= 90) {
			return fmt.Errorf("wrapsim: shellArmAngles[%d]=%g but should be in (0, 90]", i, a)
		}
		if v := s.ShellStepperSpeed[i]; !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("wrapsim: shellStepperSpeed[%d]=%g but should be >0", i, v)
		}
		if r := s.RimRotationsUntilNextAngle[i]; r < 0 || math.IsInf(r, 0) || math.IsNaN(r) {
			return fmt.Errorf("wrapsim: rimRotationsUntilNextAngle[%d]=%g is invalid", i, r)
		}
	}
	return nil
}

// Clone returns a deep copy of s.
func (s ShellConfig) Clone() ShellConfig {
	o := s
	o.ShellArmAngles = append([]float64(nil), s.ShellArmAngles...)
	o.ShellStepperSpeed = append([]float64(nil), s.ShellStepperSpeed...)
	o.RimRotationsUntilNextAngle = append([]float64(nil), s.RimRotationsUntilNextAngle...)
	return o
}
