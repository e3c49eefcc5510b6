/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package canvas

import (
	"fmt"
	"log/slog"
	"math"

	applog "bookcanvas/internal/log"
	"bookcanvas/internal/snap"
	"bookcanvas/internal/vector"
)

type gestureKind int

const (
	moving gestureKind = iota
	resizing
)

func (k gestureKind) String() string {
	if k == resizing {
		return "resize"
	}
	return "move"
}

type gesture struct {
	kind     gestureKind
	el       *Element
	side     Side
	grab     vector.Coordinate // pointer offset from the element origin (move)
	pointer  vector.Coordinate // pointer at gesture start (resize)
	original vector.Rect
}

// Canvas holds the elements of one container and the gesture in progress.
type Canvas struct {
	opts     Options
	scale    vector.ScaleProvider
	resolver *snap.Resolver
	elements []*Element
	byID     map[string]*Element
	g        *gesture
	log      *slog.Logger
}

// New creates an empty canvas. Pointer positions given to gesture methods are
// in scaled (screen) units and are converted with scale.
func New(opts Options, scale vector.ScaleProvider) *Canvas {
	opts = opts.withDefaults()
	return &Canvas{
		opts:     opts,
		scale:    scale,
		resolver: snap.NewResolver(opts.Snap),
		byID:     make(map[string]*Element),
		log:      applog.WithComponent("canvas"),
	}
}

// SetLogger replaces the component logger.
func (c *Canvas) SetLogger(l *slog.Logger) {
	if l == nil {
		l = applog.Discard()
	}
	c.log = l
}

func (c *Canvas) Options() Options { return c.opts }

// Resolver exposes the snap resolver, mainly for inspection.
func (c *Canvas) Resolver() *snap.Resolver { return c.resolver }

// Add places a new element. The bounds are taken as given.
func (c *Canvas) Add(id string, bounds vector.Rect) (*Element, error) {
	if _, ok := c.byID[id]; ok {
		return nil, fmt.Errorf("add %q: %w", id, ErrDuplicateElement)
	}
	el := &Element{ID: id, Bounds: bounds}
	c.elements = append(c.elements, el)
	c.byID[id] = el
	return el, nil
}

// AddCentered adds an element sized to fraction of the container, snapped to
// the grid and centered. The container must be bounded on both axes.
func (c *Canvas) AddCentered(id string, fraction float64) (*Element, error) {
	if c.opts.Width <= 0 || c.opts.Height <= 0 {
		return nil, fmt.Errorf("add centered %q: %w", id, ErrNoRoom)
	}
	w, h := c.resolver.Quantize(c.opts.Width*fraction, c.opts.Height*fraction)
	w = math.Max(w, c.opts.MinWidth)
	h = math.Max(h, c.opts.MinHeight)
	if w > c.opts.Width || h > c.opts.Height {
		return nil, fmt.Errorf("add centered %q: %w", id, ErrNoRoom)
	}
	x, y := c.resolver.Quantize((c.opts.Width-w)/2, (c.opts.Height-h)/2)
	return c.Add(id, vector.R(x, y, w, h))
}

// Element returns the element with id.
func (c *Canvas) Element(id string) (*Element, bool) {
	el, ok := c.byID[id]
	return el, ok
}

// Elements returns a snapshot of all elements in insertion order.
func (c *Canvas) Elements() []Element {
	out := make([]Element, len(c.elements))
	for i, el := range c.elements {
		out[i] = *el
	}
	return out
}

// Active reports whether a move or resize gesture is in progress.
func (c *Canvas) Active() bool { return c.g != nil }

func (c *Canvas) lookup(id string) (*Element, error) {
	el, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("element %q: %w", id, ErrUnknownElement)
	}
	return el, nil
}

func (c *Canvas) pointer(sx, sy float64) (vector.Coordinate, error) {
	return vector.NewCoordinate(sx, sy, vector.Scaled, "pointer", c.scale)
}

// BeginMove starts dragging element id with the pointer at sx,sy.
func (c *Canvas) BeginMove(id string, sx, sy float64) error {
	if c.g != nil {
		return ErrGestureActive
	}
	el, err := c.lookup(id)
	if err != nil {
		return err
	}
	p, err := c.pointer(sx, sy)
	if err != nil {
		return fmt.Errorf("begin move %q: %w", id, err)
	}
	origin := vector.UnscaledCoordinate(el.Bounds.X, el.Bounds.Y, "origin", c.scale)
	c.resolver.EndDrag()
	// seed the gesture start with the element's origin; a precise sample
	// records it without running any strategy
	c.resolver.Resolve(snap.Modifiers{Precise: true}, el.Bounds.X, el.Bounds.Y)
	c.g = &gesture{kind: moving, el: el, grab: p.Subtract(origin), original: el.Bounds}
	c.log.Debug("gesture begin", slog.String("kind", "move"), slog.String("id", id))
	return nil
}

// Move updates the dragged element for a pointer sample at sx,sy.
func (c *Canvas) Move(sx, sy float64, mods snap.Modifiers) (Frame, error) {
	g := c.g
	if g == nil || g.kind != moving {
		return Frame{}, ErrNoGesture
	}
	p, err := c.pointer(sx, sy)
	if err != nil {
		return Frame{}, c.abort(err)
	}
	target := c.resolver.ResolveCoordinate(p.Subtract(g.grab), mods)
	pos := c.keepVisible(g.el.Bounds, target.Pt())
	g.el.Bounds = g.el.Bounds.MoveTo(pos)
	return c.frame(g.el, false), nil
}

// BeginResize starts dragging the given edge of element id.
func (c *Canvas) BeginResize(id string, side Side, sx, sy float64) error {
	if c.g != nil {
		return ErrGestureActive
	}
	el, err := c.lookup(id)
	if err != nil {
		return err
	}
	p, err := c.pointer(sx, sy)
	if err != nil {
		return fmt.Errorf("begin resize %q: %w", id, err)
	}
	c.resolver.EndDrag()
	c.g = &gesture{kind: resizing, el: el, side: side, pointer: p, original: el.Bounds}
	c.log.Debug("gesture begin", slog.String("kind", "resize"), slog.String("id", id), slog.String("side", side.String()))
	return nil
}

// Resize updates the resized element for a pointer sample at sx,sy. The
// grabbed edge follows the pointer, snapped, and never makes the element
// smaller than the configured minimum. The opposite edge stays put.
func (c *Canvas) Resize(sx, sy float64, mods snap.Modifiers) (Frame, error) {
	g := c.g
	if g == nil || g.kind != resizing {
		return Frame{}, ErrNoGesture
	}
	p, err := c.pointer(sx, sy)
	if err != nil {
		return Frame{}, c.abort(err)
	}
	d := p.Subtract(g.pointer)
	o := g.original
	b := o
	switch g.side {
	case East:
		b.W = math.Max(c.resolver.ResolveAxis(o.W+d.UnscaledX(), mods, snap.AxisHorizontal), c.opts.MinWidth)
	case West:
		b.W = math.Max(c.resolver.ResolveAxis(o.W-d.UnscaledX(), mods, snap.AxisHorizontal), c.opts.MinWidth)
		b.X = o.Right() - b.W
	case South:
		b.H = math.Max(c.resolver.ResolveAxis(o.H+d.UnscaledY(), mods, snap.AxisVertical), c.opts.MinHeight)
	case North:
		b.H = math.Max(c.resolver.ResolveAxis(o.H-d.UnscaledY(), mods, snap.AxisVertical), c.opts.MinHeight)
		b.Y = o.Bottom() - b.H
	}
	g.el.Bounds = b
	return c.frame(g.el, true), nil
}

// End finishes the current gesture, keeping the element where it is.
func (c *Canvas) End() (Element, error) {
	g := c.g
	if g == nil {
		return Element{}, ErrNoGesture
	}
	c.finish()
	c.log.Debug("gesture end", slog.String("kind", g.kind.String()), slog.String("id", g.el.ID))
	return *g.el, nil
}

// Cancel finishes the current gesture and restores the element's bounds from
// before it started.
func (c *Canvas) Cancel() error {
	g := c.g
	if g == nil {
		return ErrNoGesture
	}
	g.el.Bounds = g.original
	c.finish()
	c.log.Debug("gesture cancel", slog.String("kind", g.kind.String()), slog.String("id", g.el.ID))
	return nil
}

// Nudge moves element id one step in dir: one grid cell, or the precise step
// while Precise is held. Without Precise the result lands on the grid.
func (c *Canvas) Nudge(id string, dir Direction, mods snap.Modifiers) (vector.Rect, error) {
	if c.g != nil {
		return vector.Rect{}, ErrGestureActive
	}
	el, err := c.lookup(id)
	if err != nil {
		return vector.Rect{}, err
	}
	step := c.resolver.MinimumStepSize(mods)
	x, y := el.Bounds.X, el.Bounds.Y
	switch dir {
	case Left:
		x -= step
	case Right:
		x += step
	case Up:
		y -= step
	case Down:
		y += step
	}
	// a nudge is already single-axis; the lock modifier has nothing to do
	c.resolver.EndDrag()
	x, y = c.resolver.Resolve(snap.Modifiers{Precise: mods.Precise}, x, y)
	c.resolver.EndDrag()
	pos := c.keepVisible(el.Bounds, vector.Pt{X: x, Y: y})
	el.Bounds = el.Bounds.MoveTo(pos)
	return el.Bounds, nil
}

// Reshape gives element id a new size around its current center, as when its
// content changes. An element that sat on the grid is put back on it.
func (c *Canvas) Reshape(id string, w, h float64) (vector.Rect, error) {
	el, err := c.lookup(id)
	if err != nil {
		return vector.Rect{}, err
	}
	old := el.Bounds
	b := vector.Rect{
		X: old.X + (old.W-w)/2,
		Y: old.Y + (old.H-h)/2,
		W: w,
		H: h,
	}
	if c.resolver.OnGrid(old.X, old.Y) {
		b.X, b.Y = c.resolver.Quantize(b.X, b.Y)
	}
	el.Bounds = b.MoveTo(c.keepVisible(b, b.Min()))
	return el.Bounds, nil
}

func (c *Canvas) finish() {
	c.resolver.EndDrag()
	c.g = nil
}

// abort ends the gesture after a failed sample, leaving the element where the
// last good sample put it.
func (c *Canvas) abort(err error) error {
	g := c.g
	c.finish()
	c.log.Warn("gesture aborted", slog.String("kind", g.kind.String()), slog.String("id", g.el.ID), slog.Any("err", err))
	return fmt.Errorf("%s %q aborted: %w", g.kind, g.el.ID, err)
}

// keepVisible adjusts the top-left p so at least MinVisible of b's size stays
// inside the container on each bounded axis.
func (c *Canvas) keepVisible(b vector.Rect, p vector.Pt) vector.Pt {
	mv := c.opts.MinVisible
	if c.opts.Width > 0 {
		if p.X+b.W < mv {
			p.X = mv - b.W
		}
		if p.X > c.opts.Width-mv {
			p.X = c.opts.Width - mv
		}
	}
	if c.opts.Height > 0 {
		if p.Y+b.H < mv {
			p.Y = mv - b.H
		}
		if p.Y > c.opts.Height-mv {
			p.Y = c.opts.Height - mv
		}
	}
	return p
}

func (c *Canvas) frame(el *Element, resize bool) Frame {
	f := Frame{ID: el.ID, Bounds: el.Bounds, Locked: c.resolver.LockedAxis()}
	if c.opts.DisableGuides {
		return f
	}
	others := make([]vector.Rect, 0, len(c.elements))
	for _, o := range c.elements {
		if o != el {
			others = append(others, o.Bounds)
		}
	}
	f.Guides = vector.ComputeAlignmentGuides(el.Bounds, others, c.opts.GuideThreshold)
	if resize {
		f.Equal = vector.ComputeEqualDimensions(el.Bounds, others, c.opts.GuideThreshold)
	}
	return f
}
