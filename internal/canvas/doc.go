/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package canvas drives the snap resolver the way the page editor does: it
// owns a set of positioned elements inside a container, turns pointer and
// keyboard input into move, resize and nudge gestures, and guarantees that
// every gesture ends with the resolver's memory cleared.
//
// A Canvas is meant to be used from a single event loop; it is not safe for
// concurrent use.
package canvas
