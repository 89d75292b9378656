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
	"reflect"
	"testing"

	"github.com/spatialmodel/wrapsim"
)

func TestBreed_clamp(t *testing.T) {
	c := testConfig()
	c.MaxMutationPercentage = 0.9
	rng := rand.New(rand.NewSource(1))
	pop := Initialize(c, 9)
	high := pop[0].Config.Clone()
	high.ShellArmAngles = []float64{90, 90}
	low := pop[0].Config.Clone()
	low.ShellArmAngles = []float64{c.MinShellArmAngle, c.MinShellArmAngle}
	parents := append([]wrapsim.ShellConfig{high, low}, pop[0].Config, pop[8].Config)

	for i := 0; i < 2000; i++ {
		a := parents[rng.Intn(len(parents))]
		b := parents[rng.Intn(len(parents))]
		child := Breed(c, a, b, rng)
		for j, angle := range child.ShellArmAngles {
			if angle < c.MinShellArmAngle || angle > 90 {
				t.Fatalf("child arm angle %g out of [%g, 90]", angle, c.MinShellArmAngle)
			}
			s := child.ShellStepperSpeed[j]
			if !(s > 0) {
				t.Fatalf("child speed %g", s)
			}
			if r := child.RimRotationsUntilNextAngle[j]; r != wrapsim.RimRotations(s) {
				t.Fatalf("child rim rotations %g != %g", r, wrapsim.RimRotations(s))
			}
		}
	}
}

func TestBreed_geometry(t *testing.T) {
	c := testConfig()
	rng := rand.New(rand.NewSource(1))
	a := Initialize(c, 4)[1].Config
	b := Initialize(c, 4)[2].Config
	a.ShellDiameter, a.TapeWidth, a.ShellChuckDiameter = 50, 5, 7
	b.ShellDiameter = 60

	child := Breed(c, a, b, rng)
	if child.NumAngles != c.NumAngles || child.ShellDiameter != c.ShellDiameter ||
		child.TapeWidth != c.TapeWidth || child.ShellChuckDiameter != c.ShellChuckDiameter {
		t.Errorf("child geometry %d/%g/%g/%g, want %d/%g/%g/%g",
			child.NumAngles, child.ShellDiameter, child.TapeWidth, child.ShellChuckDiameter,
			c.NumAngles, c.ShellDiameter, c.TapeWidth, c.ShellChuckDiameter)
	}
	if a.ShellDiameter != 50 {
		t.Error("breeding modified a parent")
	}
}

func TestBreed_noMutation(t *testing.T) {
	const tol = 1e-9
	c := testConfig()
	c.MaxMutationPercentage = 0
	rng := rand.New(rand.NewSource(2))
	pop := Initialize(c, 4)
	a, b := pop[0].Config, pop[3].Config
	for i := 0; i < 100; i++ {
		child := Breed(c, a, b, rng)
		for j := range child.ShellArmAngles {
			lo, hi := math.Min(a.ShellArmAngles[j], b.ShellArmAngles[j]), math.Max(a.ShellArmAngles[j], b.ShellArmAngles[j])
			if v := child.ShellArmAngles[j]; v < lo-tol || v > hi+tol {
				t.Errorf("arm angle %g not between parents [%g, %g]", v, lo, hi)
			}
			lo, hi = math.Min(a.ShellStepperSpeed[j], b.ShellStepperSpeed[j]), math.Max(a.ShellStepperSpeed[j], b.ShellStepperSpeed[j])
			if v := child.ShellStepperSpeed[j]; v < lo-tol || v > hi+tol {
				t.Errorf("speed %g not between parents [%g, %g]", v, lo, hi)
			}
		}
	}

	// Breeding a schedule with itself reproduces it.
	child := Breed(c, a, a, rng)
	if !reflect.DeepEqual(child, a) {
		t.Errorf("%+v != %+v", child, a)
	}
}

func TestBreed_doesNotAlias(t *testing.T) {
	c := testConfig()
	pop := Initialize(c, 4)
	a := pop[1].Config
	before := a.Clone()
	child := Breed(c, a, pop[2].Config, rand.New(rand.NewSource(3)))
	child.ShellArmAngles[0] = -1
	if !reflect.DeepEqual(a, before) {
		t.Error("breeding modified a parent")
	}
}

func TestMutate(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	var up, down bool
	for i := 0; i < 1000; i++ {
		v := mutate(10, 0.3, rng)
		if v < 7 || v > 13 {
			t.Fatalf("mutated value %g outside [7, 13]", v)
		}
		up = up || v > 10
		down = down || v < 10
	}
	if !up || !down {
		t.Error("mutation only moved in one direction")
	}
}

func TestNaturalSelection(t *testing.T) {
	tests := []struct {
		n             int
		elite, random float64
		wantE, wantR  int
	}{
		{n: 4, elite: 0.25, random: 0.25, wantE: 1, wantR: 1},
		{n: 10, elite: 0.3, random: 0.2, wantE: 3, wantR: 2},
		{n: 7, elite: 0, random: 0, wantE: 0, wantR: 0},
		{n: 5, elite: 1, random: 0, wantE: 5, wantR: 0},
		{n: 5, elite: 0, random: 1, wantE: 0, wantR: 5},
	}
	for _, test := range tests {
		c := testConfig()
		c.PopulationSize = test.n
		c.ElitePercentage = test.elite
		c.RandomPercentage = test.random
		ranked := Initialize(c, test.n)
		for i := range ranked {
			ranked[i].Fitness = float64(i + 1)
		}

		if e, r := c.Counts(test.n); e != test.wantE || r != test.wantR {
			t.Errorf("n=%d: counts (%d, %d) != (%d, %d)", test.n, e, r, test.wantE, test.wantR)
		}

		next := NaturalSelection(c, ranked, rand.New(rand.NewSource(5)))
		if len(next) != test.n {
			t.Fatalf("n=%d: size %d", test.n, len(next))
		}
		for i := 0; i < test.wantE; i++ {
			if !reflect.DeepEqual(next[i], ranked[i]) {
				t.Errorf("n=%d: elite %d changed", test.n, i)
			}
		}
		for i := test.wantE; i < test.n-test.wantR; i++ {
			if next[i].Fitness != 0 {
				t.Errorf("n=%d: child %d has fitness %g", test.n, i, next[i].Fitness)
			}
		}
		if !reflect.DeepEqual(next[test.n-test.wantR:], Initialize(c, test.wantR)) {
			t.Errorf("n=%d: reinjected members are not freshly initialized", test.n)
		}
	}
}

func TestNaturalSelection_parentPool(t *testing.T) {
	c := testConfig()
	c.PopulationSize = 4
	c.ElitePercentage = 0
	c.RandomPercentage = 0.75
	c.MaxMutationPercentage = 0
	ranked := Initialize(c, 4)
	ranked.Sort()

	// Only ranked[0] lies outside the reinjection tail, so the single
	// child is bred from it alone.
	next := NaturalSelection(c, ranked, rand.New(rand.NewSource(6)))
	if !reflect.DeepEqual(next[0].Config, ranked[0].Config) {
		t.Errorf("child %+v was not bred from the first ranked member %+v", next[0].Config, ranked[0].Config)
	}
}
