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

	"github.com/spatialmodel/wrapsim"
)

// Range is the half-open member index range [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of members in r.
func (r Range) Len() int { return r.End - r.Start }

// Partition splits [0, n) into w contiguous ranges of ⌈n/w⌉ members each.
// The last non-empty range is truncated at n, and any ranges after it are
// empty.
func Partition(n, w int) []Range {
	if w < 1 {
		w = 1
	}
	size := (n + w - 1) / w
	r := make([]Range, w)
	for i := range r {
		r[i].Start = min(i*size, n)
		r[i].End = min(r[i].Start+size, n)
	}
	return r
}

// Dispatcher runs independent units of work and blocks until they have
// all finished. Unit indices passed to f are in [0, n).
type Dispatcher interface {
	Workers() int
	Run(n int, f func(unit int) error) error
}

// Evaluator calculates the fitness of every member of a population in
// parallel. Each unit of work owns one layer map, which is reused for every
// member in its range and across calls to Evaluate.
type Evaluator struct {
	sim          *wrapsim.Simulator
	targetLayers int
	pool         Dispatcher
	maps         []*wrapsim.Layermap
}

// NewEvaluator returns an evaluator that scores schedules against a
// uniform thickness of targetLayers, dispatching work through pool.
func NewEvaluator(sim wrapsim.SimulationConfig, targetLayers int, pool Dispatcher) *Evaluator {
	e := &Evaluator{
		sim:          wrapsim.NewSimulator(sim),
		targetLayers: targetLayers,
		pool:         pool,
		maps:         make([]*wrapsim.Layermap, max(pool.Workers(), 1)),
	}
	for i := range e.maps {
		e.maps[i] = e.sim.NewLayermap()
	}
	return e
}

// Evaluate sets the Fitness of every member of pop. Each unit of work only
// writes to the members in its own range.
func (e *Evaluator) Evaluate(pop Population) error {
	ranges := Partition(len(pop), len(e.maps))
	return e.pool.Run(len(ranges), func(unit int) error {
		lm := e.maps[unit]
		r := ranges[unit]
		for i := r.Start; i < r.End; i++ {
			if err := e.sim.Simulate(pop[i].Config, lm); err != nil {
				return fmt.Errorf("evolve: evaluating member %d: %v", i, err)
			}
			pop[i].Fitness = wrapsim.LayermapError(e.sim.Config, e.targetLayers, lm)
		}
		return nil
	})
}
