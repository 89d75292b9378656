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

// Package evolve searches for taping schedules whose layer maps best match
// a uniform target thickness, using an elitist evolutionary algorithm.
package evolve

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// State is a step of the search loop.
type State int

// The search moves through these states in order, looping from Selecting
// back to Evaluating until the last generation has been selected.
const (
	Initialized State = iota
	Evaluating
	Ranking
	Persisting
	Selecting
	Terminated
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Evaluating:
		return "evaluating"
	case Ranking:
		return "ranking"
	case Persisting:
		return "persisting"
	case Selecting:
		return "selecting"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// InitFunc creates the population for generation 0.
type InitFunc func(c *EvolutionConfig) (Population, error)

// GenerationFunc is called with every ranked generation before selection.
// pop[0] is the best member. GenerationFuncs must not modify pop.
type GenerationFunc func(generation int, pop Population) error

// Search holds the state of an evolutionary search.
type Search struct {
	Config    *EvolutionConfig
	Evaluator *Evaluator

	// Rand drives breeding. It is only used from the search goroutine.
	Rand *rand.Rand

	Log logrus.FieldLogger

	// InitFunc creates the first generation. If nil, the population is
	// placed on an even grid over the search bounds.
	InitFunc InitFunc

	// GenerationFuncs persist or report each ranked generation.
	GenerationFuncs []GenerationFunc

	// CleanupFuncs are called once after the last generation.
	CleanupFuncs []func() error

	state      State
	generation int
	population Population
}

// NewRand returns a random source seeded with seed, or with the current
// time if seed is zero.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// State returns the current state of the search.
func (s *Search) State() State { return s.state }

// Generation returns the current generation number.
func (s *Search) Generation() int { return s.generation }

func (s *Search) setState(st State) {
	s.state = st
	s.Log.WithFields(logrus.Fields{
		"generation": s.generation,
		"state":      st,
	}).Debug("evolve: state change")
}

// Init creates the first generation.
func (s *Search) Init() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}
	s.generation = 0
	if s.InitFunc == nil {
		s.population = Initialize(s.Config, s.Config.PopulationSize)
	} else {
		pop, err := s.InitFunc(s.Config)
		if err != nil {
			return err
		}
		s.population = pop
	}
	s.setState(Initialized)
	return nil
}

// Step evaluates, ranks, persists and selects a single generation.
func (s *Search) Step() error {
	s.setState(Evaluating)
	start := time.Now()
	if err := s.Evaluator.Evaluate(s.population); err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{
		"generation": s.generation,
		"duration":   time.Since(start),
	}).Debug("evolve: evaluated generation")

	s.setState(Ranking)
	s.population.Sort()

	s.setState(Persisting)
	for _, f := range s.GenerationFuncs {
		if err := f(s.generation, s.population); err != nil {
			return err
		}
	}

	s.setState(Selecting)
	s.population = NaturalSelection(s.Config, s.population, s.Rand)
	s.generation++
	return nil
}

// Run initializes the search, runs MaxGenerations generations and then
// calls the cleanup functions. It returns the population produced by the
// final selection.
func (s *Search) Run() (Population, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}
	for s.generation < s.Config.MaxGenerations {
		if err := s.Step(); err != nil {
			return nil, err
		}
	}
	s.setState(Terminated)
	for _, f := range s.CleanupFuncs {
		if err := f(); err != nil {
			return nil, err
		}
	}
	return s.population, nil
}
