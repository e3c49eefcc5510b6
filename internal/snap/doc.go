/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package snap resolves the effective position of an element during a drag or
// keyboard nudge. A Resolver runs raw coordinates through an ordered pipeline
// of strategies (grid quantization, then single-axis lock) and keeps a small
// per-gesture memory that the strategies consult.
//
// A Resolver is single-gesture and not safe for concurrent use. Callers must
// call EndDrag on every path that terminates a gesture (pointer up, cancel,
// focus loss, Escape), otherwise the stale start point seeds the next drag.
// Inputs must be finite; NaN and Inf are not checked.
package snap
