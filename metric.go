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

import "math"

// LayermapError scores lm against a uniform thickness of targetLayers.
// Lower is better and zero is a perfect match.
//
// The map is sampled along ErrorCalcYAxisSweeps evenly spaced columns. Each
// sampled pixel contributes the fourth power of its deviation from the
// target plus the fourth power of its difference from the pixel above it,
// so that a few large defects cost more than many small ones and abrupt
// steps in thickness are penalized. The sum is normalized by the map width
// and the number of sweeps.
func LayermapError(sim SimulationConfig, targetLayers int, lm *Layermap) float64 {
	size := lm.Size
	stride := size / sim.ErrorCalcYAxisSweeps
	if stride < 1 {
		stride = 1
	}
	errFactor := 1 / float64(size)
	target := float64(targetLayers)

	var total float64
	for x := 0; x < size; x += stride {
		for y := 0; y < size; y++ {
			above := float64(lm.At(x, max(y-1, 0)))
			layers := float64(lm.At(x, y))
			layerErr := pow4(target - layers)
			smoothnessErr := pow4(layers - above)
			total += (layerErr + smoothnessErr) * errFactor
		}
	}
	return total / float64(sim.ErrorCalcYAxisSweeps)
}

func pow4(d float64) float64 {
	d = math.Abs(d)
	d *= d
	return d * d
}
