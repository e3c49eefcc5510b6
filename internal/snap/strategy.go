/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "math"

// Strategy is one step of the snap pipeline. Apply may read and update the
// gesture memory it is handed but owns no state of its own.
type Strategy struct {
	Name  string
	Apply func(m *Memory, mods Modifiers, x, y float64) (float64, float64)
}

// GridStrategy rounds both coordinates to the nearest multiple of size.
func GridStrategy(size float64) Strategy {
	return Strategy{
		Name: "grid",
		Apply: func(_ *Memory, _ Modifiers, x, y float64) (float64, float64) {
			return quantize(x, size), quantize(y, size)
		},
	}
}

// AxisLockStrategy constrains movement to the dominant axis while the lock
// modifier is held. The axis is chosen once movement from the start point
// reaches threshold on either axis and sticks until the modifier is released.
// Distances are measured on the coordinates it receives, so placing it after
// GridStrategy measures quantized movement.
func AxisLockStrategy(threshold float64) Strategy {
	return Strategy{
		Name: "axis-lock",
		Apply: func(m *Memory, mods Modifiers, x, y float64) (float64, float64) {
			if !mods.AxisLock {
				m.locked = AxisNone
				return x, y
			}
			if m.locked == AxisNone {
				dx := math.Abs(x - m.start.X)
				dy := math.Abs(y - m.start.Y)
				if dx < threshold && dy < threshold {
					return x, y
				}
				if dx > dy {
					m.locked = AxisHorizontal
				} else {
					m.locked = AxisVertical
				}
			}
			switch m.locked {
			case AxisHorizontal:
				y = m.start.Y
			case AxisVertical:
				x = m.start.X
			}
			return x, y
		},
	}
}

// quantize rounds half up, so -5 on a 10 grid goes to 0 rather than -10.
func quantize(v, size float64) float64 {
	return math.Floor(v/size+0.5) * size
}
