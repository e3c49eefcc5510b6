/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "bookcanvas/internal/vector"

// Resolver turns raw drag or nudge coordinates into snapped ones.
//
// The first Resolve after construction or EndDrag records its input as the
// gesture start point. Later calls run the strategy pipeline unless the
// Precise modifier is held, in which case the input is returned untouched and
// no strategy state changes.
type Resolver struct {
	opts     Options
	pipeline []Strategy
	mem      Memory
}

// NewResolver builds a resolver with the standard pipeline: grid, then axis
// lock.
func NewResolver(opts Options) *Resolver {
	opts = opts.withDefaults()
	return &Resolver{
		opts: opts,
		pipeline: []Strategy{
			GridStrategy(opts.GridSize),
			AxisLockStrategy(opts.AxisLockThreshold),
		},
		mem: emptyMemory(),
	}
}

// NewResolverWithPipeline builds a resolver running the given strategies in
// order. MinimumStepSize and Quantize still use opts.
func NewResolverWithPipeline(opts Options, pipeline ...Strategy) *Resolver {
	return &Resolver{opts: opts.withDefaults(), pipeline: pipeline, mem: emptyMemory()}
}

func (r *Resolver) Options() Options { return r.opts }

// Pipeline returns the strategy names in execution order.
func (r *Resolver) Pipeline() []string {
	names := make([]string, len(r.pipeline))
	for i, s := range r.pipeline {
		names[i] = s.Name
	}
	return names
}

// Resolve returns the adjusted position for one pointer sample or nudge.
func (r *Resolver) Resolve(mods Modifiers, x, y float64) (float64, float64) {
	if !r.mem.started {
		r.mem.start = vector.Pt{X: x, Y: y}
		r.mem.started = true
	}
	if mods.Precise {
		return x, y
	}
	for _, s := range r.pipeline {
		x, y = s.Apply(&r.mem, mods, x, y)
	}
	return x, y
}

// ResolveCoordinate resolves p in unscaled space and returns the result with
// p's label and scale provider.
func (r *Resolver) ResolveCoordinate(p vector.Coordinate, mods Modifiers) vector.Coordinate {
	x, y := r.Resolve(mods, p.UnscaledX(), p.UnscaledY())
	return vector.UnscaledCoordinate(x, y, p.Label(), p.Provider())
}

// ResolveAxis resolves a single value along axis with the other axis held at
// zero. Use it for one-dimensional adjustments such as edge resizing.
func (r *Resolver) ResolveAxis(v float64, mods Modifiers, axis Axis) float64 {
	if axis == AxisVertical {
		_, y := r.Resolve(mods, 0, v)
		return y
	}
	x, _ := r.Resolve(mods, v, 0)
	return x
}

// MinimumStepSize is how far one key press moves an element.
func (r *Resolver) MinimumStepSize(mods Modifiers) float64 {
	if mods.Precise {
		return r.opts.PreciseStepSize
	}
	return r.opts.GridSize
}

// Quantize snaps x,y to the grid without touching gesture memory.
func (r *Resolver) Quantize(x, y float64) (float64, float64) {
	return quantize(x, r.opts.GridSize), quantize(y, r.opts.GridSize)
}

// OnGrid reports whether x,y is already a grid point.
func (r *Resolver) OnGrid(x, y float64) bool {
	qx, qy := r.Quantize(x, y)
	return qx == x && qy == y
}

// EndDrag discards the gesture memory. The next Resolve starts a new gesture.
func (r *Resolver) EndDrag() { r.mem = emptyMemory() }

// Active reports whether a gesture start point has been recorded.
func (r *Resolver) Active() bool { return r.mem.started }

func (r *Resolver) Start() (vector.Pt, bool) { return r.mem.Start() }

func (r *Resolver) LockedAxis() Axis { return r.mem.Locked() }
