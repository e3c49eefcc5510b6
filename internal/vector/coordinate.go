/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import (
	"errors"
	"fmt"
	"math"
)

// Space names the coordinate space a value is expressed in.
type Space int

const (
	// Unscaled is the logical document space used for storage.
	Unscaled Space = iota
	// Scaled is the on-screen space after the page zoom transform.
	Scaled
)

func (s Space) String() string {
	if s == Scaled {
		return "scaled"
	}
	return "unscaled"
}

var (
	// ErrConfiguration is returned when a scaled conversion is requested but no
	// usable scale factor is available.
	ErrConfiguration = errors.New("scale factor unavailable")
	// ErrDivisionByZero is returned by Coordinate.Divide for a zero denominator.
	ErrDivisionByZero = errors.New("division by zero")
)

// ScaleProvider supplies the current visual zoom ratio of the page.
// It is read on every scaled conversion and must return a positive value.
type ScaleProvider interface {
	Scale() float64
}

// ScaleFunc adapts a getter to ScaleProvider.
type ScaleFunc func() float64

func (f ScaleFunc) Scale() float64 { return f() }

// FixedScale is a constant ScaleProvider, handy for tests and headless use.
type FixedScale float64

func (s FixedScale) Scale() float64 { return float64(s) }

// CurrentScale reads and validates the provider's scale factor.
func CurrentScale(p ScaleProvider) (float64, error) {
	if p == nil {
		return 0, fmt.Errorf("%w: no provider", ErrConfiguration)
	}
	if f, ok := p.(ScaleFunc); ok && f == nil {
		return 0, fmt.Errorf("%w: nil scale func", ErrConfiguration)
	}
	s := p.Scale()
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return 0, fmt.Errorf("%w: scale %v", ErrConfiguration, s)
	}
	return s, nil
}

// Coordinate is an immutable 2D point stored in unscaled space.
// Scaled values are derived on demand from the live scale factor, so the same
// logical point follows zoom changes without being rebuilt.
type Coordinate struct {
	x, y  float64
	label string
	scale ScaleProvider
}

// NewCoordinate builds a Coordinate from x,y given in space. Scaled input is
// divided by the current scale factor before it is stored. Unscaled input does
// not consult the provider.
func NewCoordinate(x, y float64, space Space, label string, scale ScaleProvider) (Coordinate, error) {
	if space == Scaled {
		s, err := CurrentScale(scale)
		if err != nil {
			return Coordinate{}, fmt.Errorf("coordinate %q: %w", label, err)
		}
		x, y = x/s, y/s
	}
	return Coordinate{x: x, y: y, label: label, scale: scale}, nil
}

// UnscaledCoordinate returns a Coordinate for values already in document space.
func UnscaledCoordinate(x, y float64, label string, scale ScaleProvider) Coordinate {
	return Coordinate{x: x, y: y, label: label, scale: scale}
}

func (c Coordinate) Label() string { return c.label }

// Provider returns the scale provider the coordinate converts with.
func (c Coordinate) Provider() ScaleProvider { return c.scale }

func (c Coordinate) UnscaledX() float64 { return c.x }
func (c Coordinate) UnscaledY() float64 { return c.y }

// Pt returns the unscaled point.
func (c Coordinate) Pt() Pt { return Pt{c.x, c.y} }

func (c Coordinate) ScaledX() (float64, error) {
	s, err := CurrentScale(c.scale)
	if err != nil {
		return 0, err
	}
	return c.x * s, nil
}

func (c Coordinate) ScaledY() (float64, error) {
	s, err := CurrentScale(c.scale)
	if err != nil {
		return 0, err
	}
	return c.y * s, nil
}

// Add returns c+o.
func (c Coordinate) Add(o Coordinate) Coordinate {
	return c.derive(c.x+o.x, c.y+o.y, fmt.Sprintf("%s+%s", c.label, o.label), o)
}

// Subtract returns c-o.
func (c Coordinate) Subtract(o Coordinate) Coordinate {
	return c.derive(c.x-o.x, c.y-o.y, fmt.Sprintf("%s-%s", c.label, o.label), o)
}

// Multiply scales both components by f.
func (c Coordinate) Multiply(f float64) Coordinate {
	return c.derive(c.x*f, c.y*f, fmt.Sprintf("%s*%g", c.label, f), c)
}

// Divide divides both components by d.
func (c Coordinate) Divide(d float64) (Coordinate, error) {
	if d == 0 {
		return Coordinate{}, fmt.Errorf("coordinate %q: %w", c.label, ErrDivisionByZero)
	}
	return c.derive(c.x/d, c.y/d, fmt.Sprintf("%s/%g", c.label, d), c), nil
}

// Magnitude is the Euclidean length in unscaled space.
func (c Coordinate) Magnitude() float64 { return math.Hypot(c.x, c.y) }

func (c Coordinate) Clone() Coordinate {
	return Coordinate{x: c.x, y: c.y, label: c.label, scale: c.scale}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%s(%g,%g)", c.label, c.x, c.y)
}

func (c Coordinate) derive(x, y float64, label string, o Coordinate) Coordinate {
	p := c.scale
	if p == nil {
		p = o.scale
	}
	return Coordinate{x: x, y: y, label: label, scale: p}
}
