/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import "bookcanvas/internal/vector"

// Memory is the per-gesture state shared by the strategies of one Resolver.
// It is only ever reset as a whole, via emptyMemory.
type Memory struct {
	start   vector.Pt
	started bool
	locked  Axis
}

func emptyMemory() Memory { return Memory{} }

// Start returns the first raw point of the gesture, if one was recorded.
func (m *Memory) Start() (vector.Pt, bool) { return m.start, m.started }

// Locked returns the axis movement is constrained to, if any.
func (m *Memory) Locked() Axis { return m.locked }
