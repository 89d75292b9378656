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

package wrapsimutil

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/wrapsim"
	"github.com/spatialmodel/wrapsim/evolve"
	"github.com/spatialmodel/wrapsim/internal/workpool"
)

// newLogger returns a logger that writes to w and to the file at logFile.
// The returned function closes the file.
func newLogger(w io.Writer, logFile string, verbose bool) (*logrus.Logger, func() error, error) {
	f, err := os.Create(logFile)
	if err != nil {
		return nil, nil, fmt.Errorf("wrapsimutil: problem creating log file: %v", err)
	}
	log := logrus.New()
	log.Out = io.MultiWriter(w, f)
	log.Formatter = &logrus.TextFormatter{DisableColors: true, FullTimestamp: true}
	if verbose {
		log.Level = logrus.DebugLevel
	}
	return log, f.Close, nil
}

// Run simulates a single taping schedule.
//
// sim holds the raster settings and shell is the schedule to simulate.
//
// If targetLayers is not negative, the error of the resulting layer map
// against a uniform thickness of targetLayers is logged.
//
// LayermapFile and HeatmapFile are the paths where the greyscale layer map
// and the heat map images are written. Either image is skipped if its path
// is empty.
func Run(log logrus.FieldLogger, sim wrapsim.SimulationConfig, shell wrapsim.ShellConfig, targetLayers int,
	LayermapFile, HeatmapFile string) error {
	if err := sim.Validate(); err != nil {
		return err
	}
	if err := shell.Validate(); err != nil {
		return err
	}

	start := time.Now()
	lm, err := wrapsim.Simulate(sim, shell)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"duration":  time.Since(start),
		"maxLayers": lm.Max(),
	}).Info("wrapsim: finished simulation")

	images := []struct {
		path  string
		write func(io.Writer, *wrapsim.Layermap) error
	}{
		{path: LayermapFile, write: wrapsim.WriteLayermapPNG},
		{path: HeatmapFile, write: wrapsim.WriteHeatmapPNG},
	}
	for _, img := range images {
		if img.path == "" {
			continue
		}
		if err := writeFile(os.ExpandEnv(img.path), lm, img.write); err != nil {
			return err
		}
		log.WithField("file", img.path).Info("wrapsim: wrote image")
	}

	if targetLayers >= 0 {
		log.WithFields(logrus.Fields{
			"targetLayers": targetLayers,
			"error":        wrapsim.LayermapError(sim, targetLayers, lm),
		}).Info("wrapsim: layer map error")
	}
	return nil
}

func writeFile(path string, lm *wrapsim.Layermap, write func(io.Writer, *wrapsim.Layermap) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wrapsimutil: problem creating output file: %v", err)
	}
	if err := write(f, lm); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Evolve searches for the best taping schedule.
//
// sim holds the raster settings and evo the search settings.
//
// workers is the number of schedules evaluated at once; values less than
// one use the number of available processors. seed seeds the search; zero
// seeds it from the current time.
//
// BestConfigFile is where the best schedule is written after every
// generation.
//
// CheckpointFile, if not empty, is where the ranked population is written
// after every generation. If resume is true the search starts from the
// population in CheckpointFile.
//
// HistoryPlot, if not empty, is where a plot of the fitness of every
// generation is written when the search finishes.
func Evolve(log logrus.FieldLogger, sim wrapsim.SimulationConfig, evo *evolve.EvolutionConfig, workers int, seed int64,
	BestConfigFile, CheckpointFile string, resume bool, HistoryPlot string) error {
	if BestConfigFile == "" {
		return fmt.Errorf("wrapsimutil: BestConfigFile is not specified")
	}
	pool := workpool.New(workers)
	s := &evolve.Search{
		Config:    evo,
		Evaluator: evolve.NewEvaluator(sim, evo.TargetLayers, pool),
		Rand:      evolve.NewRand(seed),
		Log:       log,
		GenerationFuncs: []evolve.GenerationFunc{
			evolve.WriteBest(os.ExpandEnv(BestConfigFile)),
			evolve.Report(log),
		},
	}
	if CheckpointFile != "" {
		s.GenerationFuncs = append(s.GenerationFuncs, evolve.Checkpoint(os.ExpandEnv(CheckpointFile)))
	}
	if resume {
		if CheckpointFile == "" {
			return fmt.Errorf("wrapsimutil: Resume is set but CheckpointFile is not specified")
		}
		s.InitFunc = evolve.Resume(os.ExpandEnv(CheckpointFile))
	}
	if HistoryPlot != "" {
		h := new(evolve.History)
		s.GenerationFuncs = append(s.GenerationFuncs, evolve.RecordHistory(h))
		s.CleanupFuncs = append(s.CleanupFuncs, h.SavePlot(os.ExpandEnv(HistoryPlot)))
	}

	log.WithFields(logrus.Fields{
		"populationSize": evo.PopulationSize,
		"maxGenerations": evo.MaxGenerations,
		"workers":        pool.Workers(),
	}).Info("wrapsim: starting search")
	start := time.Now()
	pop, err := s.Run()
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"duration":    time.Since(start),
		"generations": s.Generation(),
		"population":  len(pop),
	}).Info("wrapsim: finished search")
	return nil
}
