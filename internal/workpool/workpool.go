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

// Package workpool dispatches independent units of work to a bounded
// number of goroutines and waits for all of them to finish.
package workpool

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool runs units of work in parallel. The zero value is not usable; call
// New.
type Pool struct {
	workers int
}

// New returns a pool that runs at most workers units at once. If workers
// is less than one, the number of usable CPUs is used.
func New(workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the maximum number of units that run at once.
func (p *Pool) Workers() int { return p.workers }

// Run calls f once for every unit index in [0, n) and blocks until all
// calls have returned. Each call receives its own index. The first non-nil
// error is returned; the remaining units still run to completion.
func (p *Pool) Run(n int, f func(unit int) error) error {
	var g errgroup.Group
	g.SetLimit(p.workers)
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error { return f(i) })
	}
	return g.Wait()
}
