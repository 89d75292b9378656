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

// Vec3 is a direction in shell coordinates, where +Y points from the
// shell center to the chuck pole.
type Vec3 struct {
	X, Y, Z float64
}

// up is the reference direction that all machine rotations are applied to.
var up = Vec3{0, 1, 0}

// Rotation is a 3x3 rotation matrix in row-major order.
type Rotation [9]float64

// Identity is the rotation that leaves directions unchanged.
var Identity = Rotation{1, 0, 0, 0, 1, 0, 0, 0, 1}

// RotX returns a right-handed rotation of angle radians about the X
// (forward) axis.
func RotX(angle float64) Rotation {
	s, c := math.Sincos(angle)
	return Rotation{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a right-handed rotation of angle radians about the Y
// (vertical) axis.
func RotY(angle float64) Rotation {
	s, c := math.Sincos(angle)
	return Rotation{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a right-handed rotation of angle radians about the Z
// (lateral) axis.
func RotZ(angle float64) Rotation {
	s, c := math.Sincos(angle)
	return Rotation{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Mul returns the composition r·o, which applies o first and then r.
func (r Rotation) Mul(o Rotation) Rotation {
	var p Rotation
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			p[i*3+j] = r[i*3]*o[j] + r[i*3+1]*o[3+j] + r[i*3+2]*o[6+j]
		}
	}
	return p
}

// Apply rotates v.
func (r Rotation) Apply(v Vec3) Vec3 {
	return Vec3{
		X: r[0]*v.X + r[1]*v.Y + r[2]*v.Z,
		Y: r[3]*v.X + r[4]*v.Y + r[5]*v.Z,
		Z: r[6]*v.X + r[7]*v.Y + r[8]*v.Z,
	}
}

// saturate clamps f to [0, 1].
func saturate(f float64) float64 {
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// ProjectToUV converts the unit direction dir into normalized surface
// coordinates. u is the azimuth and v is the polar angle, both scaled to
// [0, 1].
func ProjectToUV(dir Vec3) (u, v float64) {
	u = saturate((math.Atan2(dir.X, dir.Z) + math.Pi) / (2 * math.Pi))
	v = saturate(math.Acos(math.Max(-1, math.Min(1, dir.Y))) / math.Pi)
	return u, v
}

// ShellFrame returns the rotation for a given shell spin, arm angle and
// rim rotation, in that order from outermost to innermost. All angles are
// in radians.
func ShellFrame(rim, arm, shell float64) Rotation {
	return RotY(shell).Mul(RotZ(arm)).Mul(RotX(rim))
}

// tapeDirection is the reference direction rotated by the tape offset
// about the lateral axis.
func tapeDirection(tape float64) Vec3 {
	s, c := math.Sincos(tape)
	return Vec3{-s, c, 0}
}

// ShellToUV returns the surface coordinates of the point under the tape at
// offset tape from the tape center, for the given machine axes.
func ShellToUV(rim, arm, tape, shell float64) (u, v float64) {
	return ProjectToUV(ShellFrame(rim, arm, shell).Apply(tapeDirection(tape)))
}

// ChuckToUV returns the surface coordinates of the point on the chuck
// contact circle at colatitude chuckAngle, turned by step about the
// vertical axis.
func ChuckToUV(chuckAngle, step float64) (u, v float64) {
	return ProjectToUV(RotY(step).Mul(RotX(chuckAngle)).Apply(up))
}

// UVToCell maps surface coordinates to a pixel in a size×size grid.
func UVToCell(u, v float64, size int) (x, y int) {
	return int(u * float64(size-1)), int(v * float64(size-1))
}
