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
	"image/color"
	"io"
	"os"

	"github.com/GaryBoone/GoStats/stats"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/wrapsim/internal/hash"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Report returns a GenerationFunc that logs the best fitness and summary
// statistics of every generation.
func Report(log logrus.FieldLogger) GenerationFunc {
	return func(generation int, pop Population) error {
		if len(pop) == 0 {
			return nil
		}
		f := pop.Fitnesses()
		fields := logrus.Fields{
			"generation": generation,
			"best":       pop[0].Fitness,
			"mean":       stats.StatsMean(f),
			"worst":      stats.StatsMax(f),
			"config":     hash.Shell(pop[0].Config),
		}
		if len(f) > 1 {
			fields["stddev"] = stats.StatsSampleStandardDeviation(f)
		}
		log.WithFields(fields).Info("evolve: generation complete")
		return nil
	}
}

// History records the best and mean fitness of every generation.
type History struct {
	Best, Mean []float64
}

// RecordHistory returns a GenerationFunc that appends every generation's
// statistics to h.
func RecordHistory(h *History) GenerationFunc {
	return func(_ int, pop Population) error {
		if len(pop) == 0 {
			return nil
		}
		h.Best = append(h.Best, pop[0].Fitness)
		h.Mean = append(h.Mean, stats.StatsMean(pop.Fitnesses()))
		return nil
	}
}

// Plot returns a line chart of h against generation number.
func (h *History) Plot() (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = "Fitness history"
	p.X.Label.Text = "Generation"
	p.Y.Label.Text = "Layer map error"
	p.Y.Min = 0

	series := []struct {
		name  string
		v     []float64
		color color.Color
	}{
		{name: "best", v: h.Best, color: color.NRGBA{0, 0, 0, 255}},
		{name: "mean", v: h.Mean, color: color.NRGBA{127, 127, 127, 255}},
	}
	for _, s := range series {
		xy := make(plotter.XYs, len(s.v))
		for i, v := range s.v {
			xy[i].X = float64(i)
			xy[i].Y = v
		}
		l, err := plotter.NewLine(xy)
		if err != nil {
			return nil, err
		}
		l.Color = s.color
		p.Add(l)
		p.Legend.Add(s.name, l)
	}
	p.Legend.Top = true
	return p, nil
}

// WritePNG draws h as a PNG image to w.
func (h *History) WritePNG(w io.Writer) error {
	p, err := h.Plot()
	if err != nil {
		return fmt.Errorf("evolve: plotting fitness history: %v", err)
	}
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("evolve: plotting fitness history: %v", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("evolve: writing fitness history: %v", err)
	}
	return nil
}

// SavePlot returns a cleanup function that writes h as a PNG image to the
// file at path.
func (h *History) SavePlot(path string) func() error {
	return func() error {
		if len(h.Best) == 0 {
			return nil
		}
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("evolve: creating fitness history file: %v", err)
		}
		if err := h.WritePNG(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}
