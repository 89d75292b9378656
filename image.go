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
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"gonum.org/v1/plot/palette/moreland"
)

// LayermapImage returns lm as an 8-bit greyscale image, with layer counts
// above 255 clamped.
func LayermapImage(lm *Layermap) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, lm.Size, lm.Size))
	for i, c := range lm.Counts {
		if c > math.MaxUint8 {
			c = math.MaxUint8
		}
		img.Pix[i] = uint8(c)
	}
	return img
}

// WriteLayermapPNG writes lm to w as a greyscale PNG image.
func WriteLayermapPNG(w io.Writer, lm *Layermap) error {
	if err := png.Encode(w, LayermapImage(lm)); err != nil {
		return fmt.Errorf("wrapsim: encoding layer map image: %v", err)
	}
	return nil
}

// stampRadius is the radius, in pixels, of the kernel each layer is spread
// over in the heat map.
const stampRadius = 1

// Density returns the visitation density of lm: every layer on a pixel adds
// a cone-shaped stamp of radius stampRadius centred on that pixel.
func Density(lm *Layermap) []float64 {
	n := lm.Size
	d := make([]float64, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			c := float64(lm.At(x, y))
			if c == 0 {
				continue
			}
			for dy := -stampRadius; dy <= stampRadius; dy++ {
				for dx := -stampRadius; dx <= stampRadius; dx++ {
					xx, yy := x+dx, y+dy
					if xx < 0 || yy < 0 || xx >= n || yy >= n {
						continue
					}
					dist := math.Hypot(float64(dx), float64(dy)) / (stampRadius + 1)
					d[yy*n+xx] += c * (1 - math.Min(dist, 1))
				}
			}
		}
	}
	return d
}

// HeatmapImage renders the visitation density of lm through a diverging
// colour map. Pixels that no layer touches are transparent.
func HeatmapImage(lm *Layermap) (*image.NRGBA, error) {
	density := Density(lm)
	img := image.NewNRGBA(image.Rect(0, 0, lm.Size, lm.Size))

	var maxDensity float64
	for _, v := range density {
		maxDensity = math.Max(maxDensity, v)
	}
	if maxDensity == 0 {
		return img, nil
	}

	cm := moreland.SmoothBlueRed()
	cm.SetMin(0)
	cm.SetMax(maxDensity)
	for i, v := range density {
		if v == 0 {
			continue
		}
		c, err := cm.At(v)
		if err != nil {
			return nil, fmt.Errorf("wrapsim: creating heat map: %v", err)
		}
		img.Set(i%lm.Size, i/lm.Size, color.NRGBAModel.Convert(c))
	}
	return img, nil
}

// WriteHeatmapPNG writes the heat map of lm to w as a PNG image.
func WriteHeatmapPNG(w io.Writer, lm *Layermap) error {
	img, err := HeatmapImage(lm)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("wrapsim: encoding heat map image: %v", err)
	}
	return nil
}
