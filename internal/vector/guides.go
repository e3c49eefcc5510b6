/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

// Alignment and equal-dimension guides shown while an element is dragged or
// resized. These helpers are UI-agnostic and deterministic: callers pass plain
// rectangles and render the returned lines however they like.

import "math"

// DefaultProximityThreshold is the distance within which two features count as
// aligned. It is non-zero only to absorb rounding; elements on the grid are
// either exactly aligned or clearly not.
const DefaultProximityThreshold = 1.0

// Orientation of a guide line.
const (
	Horizontal = "horizontal"
	Vertical   = "vertical"
)

// Alignment names the feature of the dragged element a guide was found for.
type Alignment int

const (
	AlignTop Alignment = iota
	AlignMiddle
	AlignBottom
	AlignLeft
	AlignCenter
	AlignRight
)

var alignmentNames = [...]string{"top", "middle", "bottom", "left", "center", "right"}

func (a Alignment) String() string {
	if a < 0 || int(a) >= len(alignmentNames) {
		return "unknown"
	}
	return alignmentNames[a]
}

// Horizontal reports whether the alignment produces a horizontal line.
func (a Alignment) Horizontal() bool { return a <= AlignBottom }

// GuideLine is an alignment line through all elements sharing a coordinate.
// Position is the y (horizontal) or x (vertical) of the line; From and To span
// the outermost edges of the aligned group. Aligned counts the elements in the
// group, the dragged one included.
type GuideLine struct {
	Orientation string
	Alignment   Alignment
	Position    float64
	From        Pt
	To          Pt
	Aligned     int
}

// Dimension is "width" or "height".
type Dimension string

const (
	Width  Dimension = "width"
	Height Dimension = "height"
)

// DimensionMatch marks one element whose width or height equals the resized
// element's. The indicator runs through the element's middle: horizontally
// for width, vertically for height.
type DimensionMatch struct {
	Dimension Dimension
	Rect      Rect
	From      Pt
	To        Pt
}

func horizontalFeatures(r Rect) [3]float64 { return [3]float64{r.Y, r.Y + r.H/2, r.Y + r.H} }
func verticalFeatures(r Rect) [3]float64   { return [3]float64{r.X, r.X + r.W/2, r.X + r.W} }

// ComputeAlignmentGuides returns a line for every feature of dragged (top,
// middle, bottom, left, center, right) that lines up within threshold with
// any feature of the same orientation on at least one target. Targets equal
// to dragged by identity are the caller's concern; pass only the others.
func ComputeAlignmentGuides(dragged Rect, targets []Rect, threshold float64) []GuideLine {
	if threshold <= 0 {
		threshold = DefaultProximityThreshold
	}
	if len(targets) == 0 {
		return nil
	}
	all := make([]Rect, 0, len(targets)+1)
	all = append(all, dragged)
	all = append(all, targets...)

	var guides []GuideLine
	hf := horizontalFeatures(dragged)
	for i, v := range hf {
		if g, ok := alignedGroup(Alignment(i), v, all, threshold, horizontalFeatures); ok {
			guides = append(guides, g)
		}
	}
	vf := verticalFeatures(dragged)
	for i, v := range vf {
		if g, ok := alignedGroup(AlignLeft+Alignment(i), v, all, threshold, verticalFeatures); ok {
			guides = append(guides, g)
		}
	}
	return guides
}

func alignedGroup(a Alignment, v float64, all []Rect, threshold float64, features func(Rect) [3]float64) (GuideLine, bool) {
	var group []Rect
	for _, r := range all {
		for _, f := range features(r) {
			if math.Abs(v-f) <= threshold {
				group = append(group, r)
				break
			}
		}
	}
	// the dragged element always matches itself
	if len(group) < 2 {
		return GuideLine{}, false
	}
	span := group[0]
	for _, r := range group[1:] {
		span = span.Union(r)
	}
	pos := FloatRound(v, 3)
	g := GuideLine{Alignment: a, Position: pos, Aligned: len(group)}
	if a.Horizontal() {
		g.Orientation = Horizontal
		g.From = Pt{FloatRound(span.X, 3), pos}
		g.To = Pt{FloatRound(span.Right(), 3), pos}
	} else {
		g.Orientation = Vertical
		g.From = Pt{pos, FloatRound(span.Y, 3)}
		g.To = Pt{pos, FloatRound(span.Bottom(), 3)}
	}
	return g, true
}

// ComputeEqualDimensions reports targets whose width or height is within
// threshold of dragged's. When any target matches a dimension, dragged is
// appended to that dimension's matches so it gets an indicator too.
func ComputeEqualDimensions(dragged Rect, targets []Rect, threshold float64) []DimensionMatch {
	if threshold <= 0 {
		threshold = DefaultProximityThreshold
	}
	var widths, heights []Rect
	for _, r := range targets {
		if math.Abs(dragged.W-r.W) <= threshold {
			widths = append(widths, r)
		}
		if math.Abs(dragged.H-r.H) <= threshold {
			heights = append(heights, r)
		}
	}
	var out []DimensionMatch
	if len(widths) > 0 {
		for _, r := range append(widths, dragged) {
			mid := r.Y + r.H/2
			out = append(out, DimensionMatch{Dimension: Width, Rect: r, From: Pt{r.X, mid}, To: Pt{r.Right(), mid}})
		}
	}
	if len(heights) > 0 {
		for _, r := range append(heights, dragged) {
			c := r.X + r.W/2
			out = append(out, DimensionMatch{Dimension: Height, Rect: r, From: Pt{c, r.Y}, To: Pt{c, r.Bottom()}})
		}
	}
	return out
}
