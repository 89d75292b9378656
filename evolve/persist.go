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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/wrapsim"
	"github.com/spatialmodel/wrapsim/internal/hash"
)

// bestConfig is the on-disk form of the best schedule. Stepper speeds are
// written as fractions of the rim speed, under both field names that
// downstream tools read.
type bestConfig struct {
	NumAngles                  int       `json:"numAngles"`
	ShellDiameter              float64   `json:"shellDiameter"`
	TapeWidth                  float64   `json:"tapeWidth"`
	ShellChuckDiameter         float64   `json:"shellChuckDiameter"`
	ShellArmAngles             []float64 `json:"shellArmAngles"`
	ShellStepperSpeedFraction  []float64 `json:"shellStepperSpeedFraction"`
	RimRotationsUntilNextAngle []float64 `json:"rimRotationsUntilNextAngle"`
}

// EncodeBest writes c to w as an indented JSON document that can be read
// back as a shell configuration.
func EncodeBest(w io.Writer, c wrapsim.ShellConfig) error {
	fractions := make([]float64, len(c.ShellStepperSpeed))
	for i, s := range c.ShellStepperSpeed {
		fractions[i] = wrapsim.FractionFromSpeed(s)
	}
	out := bestConfig{
		NumAngles:                  c.NumAngles,
		ShellDiameter:              c.ShellDiameter,
		TapeWidth:                  c.TapeWidth,
		ShellChuckDiameter:         c.ShellChuckDiameter,
		ShellArmAngles:             c.ShellArmAngles,
		ShellStepperSpeedFraction:  fractions,
		RimRotationsUntilNextAngle: fractions,
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "    ")
	if err := e.Encode(out); err != nil {
		return fmt.Errorf("evolve: encoding best configuration: %v", err)
	}
	return nil
}

// WriteBest returns a GenerationFunc that overwrites the file at path with
// the best schedule of every generation.
func WriteBest(path string) GenerationFunc {
	return func(_ int, pop Population) error {
		if len(pop) == 0 {
			return nil
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("evolve: creating best configuration file: %v", err)
		}
		if err := EncodeBest(f, pop[0].Config); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}

// checkpoint is the on-disk form of a ranked population.
type checkpoint struct {
	Generation int                `toml:"generation"`
	Members    []checkpointMember `toml:"member"`
}

type checkpointMember struct {
	ID      string              `toml:"id"`
	Fitness float64             `toml:"fitness"`
	Config  wrapsim.ShellConfig `toml:"config"`
}

// WriteCheckpoint writes pop, evaluated in the given generation, to w as
// TOML.
func WriteCheckpoint(w io.Writer, generation int, pop Population) error {
	c := checkpoint{
		Generation: generation,
		Members:    make([]checkpointMember, len(pop)),
	}
	for i, m := range pop {
		c.Members[i] = checkpointMember{
			ID:      hash.Shell(m.Config),
			Fitness: m.Fitness,
			Config:  m.Config,
		}
	}
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("evolve: writing checkpoint: %v", err)
	}
	return nil
}

// ReadCheckpoint reads a population written by WriteCheckpoint.
func ReadCheckpoint(r io.Reader) (generation int, pop Population, err error) {
	var c checkpoint
	if _, err := toml.DecodeReader(r, &c); err != nil {
		return 0, nil, fmt.Errorf("evolve: reading checkpoint: %v", err)
	}
	pop = make(Population, len(c.Members))
	for i, m := range c.Members {
		pop[i] = Member{Config: m.Config, Fitness: m.Fitness}
	}
	return c.Generation, pop, nil
}

// Checkpoint returns a GenerationFunc that overwrites the file at path
// with every ranked generation.
func Checkpoint(path string) GenerationFunc {
	return func(generation int, pop Population) error {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("evolve: creating checkpoint file: %v", err)
		}
		if err := WriteCheckpoint(f, generation, pop); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}

// Resume returns an InitFunc that starts the search from the population
// in the checkpoint file at path. The population is truncated, or filled
// from the search grid, to the configured size. Every member is marked
// unevaluated and takes the shell geometry of the current configuration.
func Resume(path string) InitFunc {
	return func(c *EvolutionConfig) (Population, error) {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("evolve: opening checkpoint: %v", err)
		}
		defer f.Close()
		_, pop, err := ReadCheckpoint(f)
		if err != nil {
			return nil, err
		}
		for i := range pop {
			if pop[i].Config.NumAngles != c.NumAngles {
				return nil, fmt.Errorf("evolve: checkpoint member %d has %d angles but numAngles=%d",
					i, pop[i].Config.NumAngles, c.NumAngles)
			}
			// The current shell geometry replaces whatever was checkpointed.
			c.setGeometry(&pop[i].Config)
			if err := pop[i].Config.Validate(); err != nil {
				return nil, fmt.Errorf("evolve: checkpoint member %d: %v", i, err)
			}
			pop[i].Fitness = 0
		}
		if len(pop) > c.PopulationSize {
			pop = pop[:c.PopulationSize]
		} else if len(pop) < c.PopulationSize {
			pop = append(pop, Initialize(c, c.PopulationSize-len(pop))...)
		}
		return pop, nil
	}
}
