/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export renders a canvas snapshot, with the guides of the last
// gesture sample, as PNG or SVG for debugging snap behavior.
package export

import (
	"math"

	"bookcanvas/internal/canvas"
	"bookcanvas/internal/snap"
	"bookcanvas/internal/vector"
)

// sceneMargin pads the extent of an unbounded canvas.
const sceneMargin = 20.0

// Scene is everything a renderer draws, in unscaled units.
type Scene struct {
	// Width and Height of the container; zero means unbounded, in which case
	// the extent is derived from the elements.
	Width, Height float64
	GridSize      float64
	Elements      []canvas.Element
	// Active is the element the guides belong to.
	Active string
	Guides []vector.GuideLine
	Equal  []vector.DimensionMatch
}

// SceneFrom assembles a scene from canvas options, an element snapshot and an
// optional frame.
func SceneFrom(opts canvas.Options, elements []canvas.Element, f *canvas.Frame) Scene {
	s := Scene{
		Width:    opts.Width,
		Height:   opts.Height,
		GridSize: opts.Snap.GridSize,
		Elements: elements,
	}
	if s.GridSize <= 0 {
		s.GridSize = snap.DefaultGridSize
	}
	if f != nil {
		s.Active = f.ID
		s.Guides = f.Guides
		s.Equal = f.Equal
	}
	return s
}

// Extent is the area to render.
func (s Scene) Extent() vector.Rect {
	if s.Width > 0 && s.Height > 0 {
		return vector.R(0, 0, s.Width, s.Height)
	}
	var r vector.Rect
	for i, el := range s.Elements {
		if i == 0 {
			r = el.Bounds
			continue
		}
		r = r.Union(el.Bounds)
	}
	r = vector.R(math.Min(r.X, 0)-sceneMargin, math.Min(r.Y, 0)-sceneMargin, 0, 0).Union(r)
	r.W += sceneMargin
	r.H += sceneMargin
	if s.Width > 0 {
		r.X, r.W = 0, s.Width
	}
	if s.Height > 0 {
		r.Y, r.H = 0, s.Height
	}
	return r
}
