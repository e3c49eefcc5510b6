/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"image/png"
	"strings"
	"testing"

	"bookcanvas/internal/canvas"
	"bookcanvas/internal/vector"
)

func sampleScene() Scene {
	a := vector.R(40, 40, 50, 40)
	b := vector.R(200, 40, 50, 40)
	f := &canvas.Frame{ID: "a", Bounds: a, Guides: vector.ComputeAlignmentGuides(a, []vector.Rect{b}, 1)}
	return SceneFrom(canvas.Options{Width: 400, Height: 300}, []canvas.Element{{ID: "a", Bounds: a}, {ID: "b", Bounds: b}}, f)
}

func TestSceneFrom(t *testing.T) {
	s := sampleScene()
	if s.GridSize != 10 || s.Active != "a" || len(s.Guides) != 3 || len(s.Elements) != 2 {
		t.Fatalf("unexpected scene: %+v", s)
	}
	if got := s.Extent(); got != vector.R(0, 0, 400, 300) {
		t.Fatalf("bounded extent = %+v", got)
	}
	free := Scene{Elements: []canvas.Element{{ID: "a", Bounds: vector.R(20, 20, 50, 40)}}}
	if got := free.Extent(); got != vector.R(-20, -20, 110, 100) {
		t.Fatalf("unbounded extent = %+v", got)
	}
}

func TestRasterize(t *testing.T) {
	s := sampleScene()
	img, err := Rasterize(s, PNGOptions{Grid: true, Labels: true})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 400 || b.Dy() != 300 {
		t.Fatalf("image size = %v", b)
	}
	if got := img.RGBAAt(10, 10); got != gray {
		t.Fatalf("grid dot = %v", got)
	}
	if got := img.RGBAAt(40, 50); got != blue {
		t.Fatalf("active element edge = %v", got)
	}
	if got := img.RGBAAt(200, 50); got != black {
		t.Fatalf("element edge = %v", got)
	}
	top := s.Guides[0]
	mid := (top.From.X + top.To.X) / 2
	if got := img.RGBAAt(int(mid), int(top.From.Y)); got != magenta {
		t.Fatalf("guide pixel at (%v,%v) = %v", mid, top.From.Y, got)
	}
	label := 0
	for y := 42; y < 56; y++ {
		for x := 43; x < 52; x++ {
			if img.RGBAAt(x, y) == black {
				label++
			}
		}
	}
	if label == 0 {
		t.Fatalf("no label pixels drawn")
	}
}

func TestRasterizeScaleAndLimits(t *testing.T) {
	img, err := Rasterize(sampleScene(), PNGOptions{Scale: 0.5})
	if err != nil {
		t.Fatalf("Rasterize: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 150 {
		t.Fatalf("scaled size = %v", b)
	}
	huge := Scene{Width: 1e6, Height: 1e6}
	if _, err := Rasterize(huge, PNGOptions{}); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestRenderPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPNG(&buf, sampleScene(), PNGOptions{Scale: 2}); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 600 {
		t.Fatalf("decoded size = %v", b)
	}
}

func TestRenderSVG(t *testing.T) {
	s := sampleScene()
	s.Elements = append(s.Elements, canvas.Element{ID: `x<"y"`, Bounds: vector.R(300, 200, 40, 40)})
	s.Equal = vector.ComputeEqualDimensions(s.Elements[0].Bounds, []vector.Rect{s.Elements[1].Bounds}, 1)
	var buf bytes.Buffer
	if err := RenderSVG(&buf, s, SVGOptions{Grid: true, Labels: true}); err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`width="400px" height="300px" viewBox="0 0 400 300"`,
		`<rect id="a" x="40" y="40" width="50" height="40"`,
		`class="guide top"`,
		`class="equal width"`,
		`id="x&lt;&quot;y&quot;"`,
		`>x&lt;"y"</text>`,
		`<circle cx="10" cy="10" r="0.5"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("svg not terminated")
	}
}
