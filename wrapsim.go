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

// Package wrapsim simulates tape being wound onto a hemispherical shell. A
// winding arm lays tape along the rim of a spinning shell at a schedule of
// arm angles and stepper speeds, and the simulator rasterizes the tape path
// into a per-pixel layer count map of the shell surface.
package wrapsim

// Version gives the version number.
const Version = "1.0.0"
