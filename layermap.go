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

// ChuckMarker is the value stamped into the layer map along the chuck
// contact circle. It is a reference mark, not a layer count.
const ChuckMarker = 3

// Layermap records how many tape layers cover each pixel of the shell
// surface. Counts are stored row-major, Size×Size.
//
// Each Layermap carries a scratch grid of the same size that collects one
// rim rotation's worth of coverage before it is folded into Counts, so that
// overlapping raster samples within a rotation add a single layer.
type Layermap struct {
	Size    int
	Counts  []uint16
	scratch []uint16
}

// NewLayermap allocates a zeroed size×size layer map and its scratch grid.
func NewLayermap(size int) *Layermap {
	return &Layermap{
		Size:    size,
		Counts:  make([]uint16, size*size),
		scratch: make([]uint16, size*size),
	}
}

// At returns the layer count at pixel (x, y).
func (l *Layermap) At(x, y int) uint16 {
	return l.Counts[y*l.Size+x]
}

// Reset clears both the layer counts and the scratch grid.
func (l *Layermap) Reset() {
	for i := range l.Counts {
		l.Counts[i] = 0
	}
	l.clearScratch()
}

func (l *Layermap) clearScratch() {
	for i := range l.scratch {
		l.scratch[i] = 0
	}
}

// markUV sets the scratch pixel under surface coordinates (u, v) to value.
func (l *Layermap) markUV(u, v float64, value uint16) {
	x, y := UVToCell(u, v, l.Size)
	l.scratch[y*l.Size+x] = value
}

// fold adds the scratch grid into the layer counts and clears it.
func (l *Layermap) fold() {
	for i, s := range l.scratch {
		l.Counts[i] += s
	}
	l.clearScratch()
}

// Max returns the largest layer count in the map.
func (l *Layermap) Max() uint16 {
	var m uint16
	for _, c := range l.Counts {
		if c > m {
			m = c
		}
	}
	return m
}
