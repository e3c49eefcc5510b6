/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"errors"

	"bookcanvas/internal/snap"
	"bookcanvas/internal/vector"
)

var (
	ErrUnknownElement   = errors.New("unknown element")
	ErrDuplicateElement = errors.New("duplicate element id")
	ErrNoGesture        = errors.New("no gesture in progress")
	ErrGestureActive    = errors.New("gesture already in progress")
	ErrNoRoom           = errors.New("container too small")
)

// Defaults for Options fields left at zero.
const (
	DefaultMinWidth   = 30.0
	DefaultMinHeight  = 30.0
	DefaultMinVisible = 10.0
)

// Options configures a Canvas. Width and Height are the container size in
// unscaled units; zero leaves that axis unbounded.
type Options struct {
	Width, Height float64
	Snap          snap.Options
	MinWidth      float64
	MinHeight     float64
	// MinVisible is how much of an element must stay inside the container.
	MinVisible     float64
	GuideThreshold float64
	DisableGuides  bool
}

func (o Options) withDefaults() Options {
	if o.MinWidth <= 0 {
		o.MinWidth = DefaultMinWidth
	}
	if o.MinHeight <= 0 {
		o.MinHeight = DefaultMinHeight
	}
	if o.MinVisible <= 0 {
		o.MinVisible = DefaultMinVisible
	}
	if o.GuideThreshold <= 0 {
		o.GuideThreshold = vector.DefaultProximityThreshold
	}
	return o
}

// Element is a positioned box on the canvas.
type Element struct {
	ID     string
	Bounds vector.Rect
}

// Side is the element edge grabbed by a resize handle.
type Side int

const (
	East Side = iota
	West
	South
	North
)

var sideNames = [...]string{"e", "w", "s", "n"}

func (s Side) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return "?"
	}
	return sideNames[s]
}

// ParseSide accepts e, w, s, n (or east, west, south, north).
func ParseSide(s string) (Side, bool) {
	switch s {
	case "e", "east":
		return East, true
	case "w", "west":
		return West, true
	case "s", "south":
		return South, true
	case "n", "north":
		return North, true
	}
	return 0, false
}

// Direction of a keyboard nudge.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// ParseDirection accepts left/right/up/down and the Arrow* key names.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "left", "ArrowLeft":
		return Left, true
	case "right", "ArrowRight":
		return Right, true
	case "up", "ArrowUp":
		return Up, true
	case "down", "ArrowDown":
		return Down, true
	}
	return 0, false
}

// Frame is the outcome of one gesture sample: where the element ended up and
// which guides to show for it.
type Frame struct {
	ID     string
	Bounds vector.Rect
	Locked snap.Axis
	Guides []vector.GuideLine
	Equal  []vector.DimensionMatch
}
