/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package snap

import (
	"testing"

	"bookcanvas/internal/vector"
)

var (
	none    = Modifiers{}
	lock    = Modifiers{AxisLock: true}
	precise = Modifiers{Precise: true}
)

func assertXY(t *testing.T, gotX, gotY, wantX, wantY float64) {
	t.Helper()
	if gotX != wantX || gotY != wantY {
		t.Fatalf("got (%v,%v), want (%v,%v)", gotX, gotY, wantX, wantY)
	}
}

func TestResolveQuantizesToGrid(t *testing.T) {
	r := NewResolver(Options{})
	x, y := r.Resolve(none, 23, 47)
	assertXY(t, x, y, 20, 50)
}

func TestResolveRecordsStartOnFirstCall(t *testing.T) {
	r := NewResolver(Options{})
	if r.Active() {
		t.Fatalf("new resolver must be idle")
	}
	r.Resolve(none, 23, 47)
	start, ok := r.Start()
	if !ok || start != (vector.Pt{X: 23, Y: 47}) {
		t.Fatalf("start = %v (%v), want raw (23,47)", start, ok)
	}
	r.Resolve(none, 80, 90)
	if start, _ := r.Start(); start != (vector.Pt{X: 23, Y: 47}) {
		t.Fatalf("start point must not move, got %v", start)
	}
}

func TestAxisLockScenario(t *testing.T) {
	r := NewResolver(Options{GridSize: 10, AxisLockThreshold: 5})
	x, y := r.Resolve(lock, 0, 0)
	assertXY(t, x, y, 0, 0)

	x, y = r.Resolve(lock, 2, 1)
	assertXY(t, x, y, 0, 0)
	if r.LockedAxis() != AxisNone {
		t.Fatalf("below threshold the axis must stay undetermined, got %v", r.LockedAxis())
	}

	x, y = r.Resolve(lock, 12, 1)
	assertXY(t, x, y, 10, 0)
	if r.LockedAxis() != AxisHorizontal {
		t.Fatalf("LockedAxis = %v, want horizontal", r.LockedAxis())
	}

	// releasing the modifier clears the lock and leaves plain grid snapping
	x, y = r.Resolve(none, 12, 8)
	assertXY(t, x, y, 10, 10)
	if r.LockedAxis() != AxisNone {
		t.Fatalf("LockedAxis after release = %v, want none", r.LockedAxis())
	}
}

func TestAxisLockIsStickyWhileHeld(t *testing.T) {
	r := NewResolver(Options{})
	r.Resolve(lock, 0, 0)
	r.Resolve(lock, 12, 1)
	for _, p := range []vector.Pt{{X: 0, Y: 50}, {X: -40, Y: 200}, {X: 3, Y: 3}, {X: 100, Y: -100}} {
		x, y := r.Resolve(lock, p.X, p.Y)
		if r.LockedAxis() != AxisHorizontal {
			t.Fatalf("lock changed to %v at %v", r.LockedAxis(), p)
		}
		if y != 0 {
			t.Fatalf("horizontal lock must pin y to the start, got (%v,%v)", x, y)
		}
	}
}

func TestAxisLockRearmsFromStartPoint(t *testing.T) {
	r := NewResolver(Options{})
	r.Resolve(lock, 0, 0)
	r.Resolve(lock, 12, 1) // horizontal
	r.Resolve(none, 12, 8) // release

	x, y := r.Resolve(lock, 12, 40)
	if r.LockedAxis() != AxisVertical {
		t.Fatalf("LockedAxis = %v, want vertical", r.LockedAxis())
	}
	assertXY(t, x, y, 0, 40)
}

func TestAxisLockThresholdBoundary(t *testing.T) {
	opts := Options{GridSize: 1, AxisLockThreshold: 5}

	r := NewResolver(opts)
	r.Resolve(lock, 0, 0)
	x, y := r.Resolve(lock, 3, 4)
	assertXY(t, x, y, 3, 4)
	if r.LockedAxis() != AxisNone {
		t.Fatalf("below threshold should not lock")
	}
	x, y = r.Resolve(lock, 5, 0)
	assertXY(t, x, y, 5, 0)
	if r.LockedAxis() != AxisHorizontal {
		t.Fatalf("distance equal to threshold should lock, got %v", r.LockedAxis())
	}

	// ties go vertical
	r = NewResolver(opts)
	r.Resolve(lock, 0, 0)
	x, y = r.Resolve(lock, 7, 7)
	assertXY(t, x, y, 0, 7)
	if r.LockedAxis() != AxisVertical {
		t.Fatalf("tie should lock vertical, got %v", r.LockedAxis())
	}
}

func TestAxisLockPinsToRawStart(t *testing.T) {
	r := NewResolver(Options{})
	r.Resolve(lock, 3, 4)
	x, y := r.Resolve(lock, 43, 6)
	assertXY(t, x, y, 40, 4)
}

func TestPreciseBypassIsTransparent(t *testing.T) {
	r := NewResolver(Options{})
	x, y := r.Resolve(Modifiers{Precise: true, AxisLock: true}, 33, 6)
	assertXY(t, x, y, 33, 6)

	// with a lock established, bypass neither adjusts nor clears it
	r = NewResolver(Options{})
	r.Resolve(lock, 0, 0)
	r.Resolve(lock, 12, 1)
	for _, mods := range []Modifiers{precise, {Precise: true, AxisLock: true}} {
		x, y = r.Resolve(mods, 33, 6)
		assertXY(t, x, y, 33, 6)
		if r.LockedAxis() != AxisHorizontal {
			t.Fatalf("bypass changed the lock to %v", r.LockedAxis())
		}
	}
}

func TestPreciseFirstCallStillStartsGesture(t *testing.T) {
	r := NewResolver(Options{})
	r.Resolve(precise, 7, 3)
	start, ok := r.Start()
	if !ok || start != (vector.Pt{X: 7, Y: 3}) {
		t.Fatalf("start = %v (%v)", start, ok)
	}
}

func TestEndDragResets(t *testing.T) {
	r := NewResolver(Options{})
	r.Resolve(lock, 0, 0)
	r.Resolve(lock, 30, 0)
	if r.LockedAxis() != AxisHorizontal {
		t.Fatalf("expected horizontal lock before EndDrag")
	}
	r.EndDrag()
	if r.Active() || r.LockedAxis() != AxisNone {
		t.Fatalf("EndDrag left state behind: active=%v lock=%v", r.Active(), r.LockedAxis())
	}
	x, y := r.Resolve(lock, 100, 200)
	assertXY(t, x, y, 100, 200)
	if start, _ := r.Start(); start != (vector.Pt{X: 100, Y: 200}) {
		t.Fatalf("new gesture start = %v", start)
	}
	if r.LockedAxis() != AxisNone {
		t.Fatalf("new gesture must start unlocked")
	}
}

func TestGridIdempotence(t *testing.T) {
	r := NewResolver(Options{})
	for _, v := range []float64{-1234.5, -15, -5, -4.9, 0, 0.1, 4.999, 5, 23, 47, 99.5, 1e6 + 3} {
		x1, y1 := r.Quantize(v, v/2)
		x2, y2 := r.Quantize(x1, y1)
		if x1 != x2 || y1 != y2 {
			t.Fatalf("quantize not idempotent for %v: (%v,%v) then (%v,%v)", v, x1, y1, x2, y2)
		}
		if !r.OnGrid(x1, y1) {
			t.Fatalf("(%v,%v) should be on the grid", x1, y1)
		}
	}
}

func TestQuantizeRoundsHalfUp(t *testing.T) {
	r := NewResolver(Options{})
	cases := []struct{ in, want float64 }{
		{5, 10}, {4.9, 0}, {-5, 0}, {-5.1, -10}, {15, 20}, {-15, -10},
	}
	for _, tc := range cases {
		if got, _ := r.Quantize(tc.in, 0); got != tc.want {
			t.Fatalf("Quantize(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
	if r.Active() {
		t.Fatalf("Quantize must not start a gesture")
	}
}

func TestMinimumStepSize(t *testing.T) {
	r := NewResolver(Options{})
	if got := r.MinimumStepSize(precise); got != 1 {
		t.Fatalf("precise step = %v, want 1", got)
	}
	if got := r.MinimumStepSize(none); got != 10 {
		t.Fatalf("grid step = %v, want 10", got)
	}
	r = NewResolver(Options{GridSize: 8, PreciseStepSize: 0.5})
	if r.MinimumStepSize(none) != 8 || r.MinimumStepSize(precise) != 0.5 {
		t.Fatalf("custom steps not honoured: %+v", r.Options())
	}
}

func TestResolveAxis(t *testing.T) {
	r := NewResolver(Options{})
	if got := r.ResolveAxis(123, none, AxisHorizontal); got != 120 {
		t.Fatalf("ResolveAxis x = %v, want 120", got)
	}
	if got := r.ResolveAxis(127, none, AxisVertical); got != 130 {
		t.Fatalf("ResolveAxis y = %v, want 130", got)
	}
	if got := r.ResolveAxis(127, precise, AxisVertical); got != 127 {
		t.Fatalf("precise ResolveAxis = %v, want 127", got)
	}
}

func TestResolveCoordinate(t *testing.T) {
	r := NewResolver(Options{})
	p := vector.UnscaledCoordinate(23, 47, "drop", vector.FixedScale(2))
	got := r.ResolveCoordinate(p, none)
	if got.UnscaledX() != 20 || got.UnscaledY() != 50 {
		t.Fatalf("ResolveCoordinate = %v", got)
	}
	if got.Label() != "drop" {
		t.Fatalf("label lost: %q", got.Label())
	}
	sx, err := got.ScaledX()
	if err != nil || sx != 40 {
		t.Fatalf("scaled x = %v (%v), want 40", sx, err)
	}
}

func TestPipelineOrder(t *testing.T) {
	r := NewResolver(Options{})
	got := r.Pipeline()
	if len(got) != 2 || got[0] != "grid" || got[1] != "axis-lock" {
		t.Fatalf("pipeline = %v, want [grid axis-lock]", got)
	}

	// locking on raw coordinates first: a 4 unit move does not lock, even
	// though quantized it would be 10
	opts := Options{}.withDefaults()
	raw := NewResolverWithPipeline(Options{}, AxisLockStrategy(opts.AxisLockThreshold), GridStrategy(opts.GridSize))
	raw.Resolve(lock, 0, 0)
	x, y := raw.Resolve(lock, 6, 1)
	assertXY(t, x, y, 10, 0)
	if raw.LockedAxis() != AxisHorizontal {
		t.Fatalf("raw-first pipeline should lock on 6 units, got %v", raw.LockedAxis())
	}
	q := NewResolver(Options{})
	q.Resolve(lock, 0, 0)
	q.Resolve(lock, 4, 1)
	if q.LockedAxis() != AxisNone {
		t.Fatalf("quantized 4 is 0, no lock expected, got %v", q.LockedAxis())
	}
}

func TestAxisString(t *testing.T) {
	if AxisNone.String() != "none" || AxisHorizontal.String() != "horizontal" || AxisVertical.String() != "vertical" {
		t.Fatalf("unexpected axis names")
	}
}
