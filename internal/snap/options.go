/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

// Defaults used when Options fields are left at zero.
const (
	DefaultGridSize          = 10.0
	DefaultAxisLockThreshold = 5.0
	DefaultPreciseStepSize   = 1.0
)

// Modifiers is the live modifier-key state of the event being resolved.
// Precise (Ctrl) bypasses all snapping; AxisLock (Shift) constrains movement
// to one axis.
type Modifiers struct {
	Precise  bool
	AxisLock bool
}

// Axis identifies a locked movement direction.
type Axis int

const (
	AxisNone Axis = iota
	AxisHorizontal
	AxisVertical
)

func (a Axis) String() string {
	switch a {
	case AxisHorizontal:
		return "horizontal"
	case AxisVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Options tunes the resolver. Zero values fall back to the defaults.
type Options struct {
	GridSize          float64
	AxisLockThreshold float64
	PreciseStepSize   float64
}

func (o Options) withDefaults() Options {
	if o.GridSize <= 0 {
		o.GridSize = DefaultGridSize
	}
	if o.AxisLockThreshold <= 0 {
		o.AxisLockThreshold = DefaultAxisLockThreshold
	}
	if o.PreciseStepSize <= 0 {
		o.PreciseStepSize = DefaultPreciseStepSize
	}
	return o
}
