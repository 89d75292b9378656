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
	"reflect"
	"testing"
)

// bandShell winds a single application at 60° onto a shell whose chuck
// ring falls in the top row of an 8×8 map.
func bandShell() ShellConfig {
	return ShellConfig{
		NumAngles:                  1,
		ShellDiameter:              10,
		TapeWidth:                  1,
		ShellChuckDiameter:         2,
		ShellArmAngles:             []float64{60},
		ShellStepperSpeed:          []float64{0.25},
		RimRotationsUntilNextAngle: []float64{1},
	}
}

func bandSim() SimulationConfig {
	return SimulationConfig{
		LayermapSize:         8,
		MapFillPrecisionMult: 2,
		ErrorCalcYAxisSweeps: 8,
	}
}

func TestSimulate_band(t *testing.T) {
	lm, err := Simulate(bandSim(), bandShell())
	if err != nil {
		t.Fatal(err)
	}

	var ring, band int
	for y := 0; y < lm.Size; y++ {
		for x := 0; x < lm.Size; x++ {
			c := lm.At(x, y)
			switch {
			case y == 0:
				if c != 0 && c != ChuckMarker {
					t.Errorf("ring row (%d,%d) = %d", x, y, c)
				}
				if c == ChuckMarker {
					ring++
				}
			case y >= 2 && y <= 4:
				if c > 1 {
					t.Errorf("one turn laid %d layers at (%d,%d)", c, x, y)
				}
				if c == 1 {
					band++
				}
			default:
				if c != 0 {
					t.Errorf("(%d,%d) = %d outside the taped band", x, y, c)
				}
			}
		}
	}
	if ring == 0 {
		t.Error("chuck ring was not marked")
	}
	if band == 0 {
		t.Error("no layers were laid in the taped band")
	}

	// The band wraps all the way around the shell.
	for x := 0; x < lm.Size; x++ {
		var covered bool
		for y := 2; y <= 4; y++ {
			if lm.At(x, y) != 0 {
				covered = true
			}
		}
		if !covered {
			t.Errorf("column %d has no layers in the taped band", x)
		}
	}
}

func TestSimulate_deterministic(t *testing.T) {
	shell := bandShell()
	shell.NumAngles = 2
	shell.ShellArmAngles = []float64{35, 70}
	shell.ShellStepperSpeed = []float64{0.3, 0.7}
	shell.RimRotationsUntilNextAngle = []float64{2.5, 1.25}

	s := NewSimulator(bandSim())
	a, b := s.NewLayermap(), s.NewLayermap()
	if err := s.Simulate(shell, a); err != nil {
		t.Fatal(err)
	}
	if err := s.Simulate(shell, b); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Counts, b.Counts) {
		t.Error("identical inputs produced different layer maps")
	}

	// A reused layer map is cleared first.
	if err := s.Simulate(shell, a); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a.Counts, b.Counts) {
		t.Error("reusing a layer map changed the result")
	}
}

func TestSimulate_layersAccumulate(t *testing.T) {
	once := bandShell()
	twice := bandShell()
	twice.NumAngles = 2
	twice.ShellArmAngles = []float64{60, 60}
	twice.ShellStepperSpeed = []float64{0.25, 0.25}
	twice.RimRotationsUntilNextAngle = []float64{1, 1}

	a, err := Simulate(bandSim(), once)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Simulate(bandSim(), twice)
	if err != nil {
		t.Fatal(err)
	}
	var sumA, sumB int
	for i := range a.Counts {
		if b.Counts[i] < a.Counts[i] {
			t.Errorf("pixel %d: %d layers after two applications but %d after one", i, b.Counts[i], a.Counts[i])
		}
		sumA += int(a.Counts[i])
		sumB += int(b.Counts[i])
	}
	if sumB <= sumA {
		t.Errorf("second application added no layers: %d <= %d", sumB, sumA)
	}
}

func TestSimulate_fractionalStepsPerTurn(t *testing.T) {
	sim := bandSim()
	sim.MapFillPrecisionMult = 2.3
	lm, err := Simulate(sim, bandShell())
	if err != nil {
		t.Fatal(err)
	}
	var band int
	for y := 2; y <= 4; y++ {
		for x := 0; x < lm.Size; x++ {
			band += int(lm.At(x, y))
		}
	}
	if band == 0 {
		t.Error("a full turn with a fractional step count laid no layers")
	}
}

func TestSimulate_sizeMismatch(t *testing.T) {
	s := NewSimulator(bandSim())
	if err := s.Simulate(bandShell(), NewLayermap(4)); err == nil {
		t.Error("expected an error for a mismatched layer map")
	}
}

func TestLayermapMax(t *testing.T) {
	lm := NewLayermap(3)
	lm.Counts[4] = 7
	lm.Counts[8] = 2
	if m := lm.Max(); m != 7 {
		t.Errorf("max %d != 7", m)
	}
	lm.Reset()
	if m := lm.Max(); m != 0 {
		t.Errorf("max after reset %d != 0", m)
	}
}
