/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package trace

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"bookcanvas/internal/canvas"
	applog "bookcanvas/internal/log"
	"bookcanvas/internal/snap"
	"bookcanvas/internal/vector"
)

func init() {
	applog.Init(applog.Options{Level: "error"})
}

func TestLoadSample(t *testing.T) {
	tr, err := Load(filepath.Join("testdata", "drag.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tr.Version != 1 || tr.Canvas.Width != 400 || len(tr.Elements) != 2 || len(tr.Steps) != 11 {
		t.Fatalf("unexpected trace: %+v", tr)
	}
	if m := tr.Steps[1].Modifiers(); m != (snap.Modifiers{AxisLock: true}) {
		t.Fatalf("step 1 modifiers = %+v", m)
	}
}

func TestParseDefaults(t *testing.T) {
	tr, err := Parse([]byte(`{"canvas":{"width":10,"height":10},"steps":[]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tr.Version != 1 || tr.Canvas.Scale != 1 {
		t.Fatalf("defaults not applied: %+v", tr)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"unknown op":          `{"canvas":{"width":1,"height":1},"steps":[{"op":"teleport"}]}`,
		"extra field":         `{"canvas":{"width":1,"height":1},"steps":[{"op":"end","shift":true}]}`,
		"negative width":      `{"canvas":{"width":-1,"height":1},"steps":[]}`,
		"zero scale":          `{"canvas":{"width":1,"height":1,"scale":0},"steps":[]}`,
		"missing steps":       `{"canvas":{"width":1,"height":1}}`,
		"bad side":            `{"canvas":{"width":1,"height":1},"steps":[{"op":"begin-resize","id":"a","side":"ne"}]}`,
		"begin without id":    `{"canvas":{"width":1,"height":1},"steps":[{"op":"begin-move","x":1,"y":1}]}`,
		"resize without side": `{"canvas":{"width":1,"height":1},"steps":[{"op":"begin-resize","id":"a"}]}`,
		"nudge without dir":   `{"canvas":{"width":1,"height":1},"steps":[{"op":"nudge","id":"a"}]}`,
		"duplicate element":   `{"canvas":{"width":1,"height":1},"elements":[{"id":"a","width":1,"height":1},{"id":"a","width":1,"height":1}],"steps":[]}`,
		"not json":            `{"canvas":`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			if !errors.Is(err, ErrInvalidTrace) {
				t.Fatalf("err = %v, want ErrInvalidTrace", err)
			}
		})
	}
}

func TestReplaySample(t *testing.T) {
	tr, err := Load(filepath.Join("testdata", "drag.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	res, err := Replay(context.Background(), tr, canvas.Options{})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	want := []canvas.Element{
		{ID: "a", Bounds: vector.R(51, 20, 70, 40)},
		{ID: "b", Bounds: vector.R(200, 50, 50, 40)},
		{ID: "c", Bounds: vector.R(140, 110, 120, 80)},
	}
	if diff := cmp.Diff(want, res.Elements); diff != "" {
		t.Fatalf("elements (-want +got):\n%s", diff)
	}
	if len(res.Steps) != len(tr.Steps) {
		t.Fatalf("recorded %d steps, want %d", len(res.Steps), len(tr.Steps))
	}
	locked := res.Steps[2].Frame
	if locked == nil || locked.Locked != snap.AxisHorizontal || locked.Bounds.Y != 20 {
		t.Fatalf("step 2 frame = %+v", locked)
	}
	if res.LastFrame == nil || res.LastFrame.Bounds.W != 70 {
		t.Fatalf("last frame = %+v", res.LastFrame)
	}
	if res.Options.Width != 400 || res.Options.MinVisible != canvas.DefaultMinVisible {
		t.Fatalf("options = %+v", res.Options)
	}
}

func TestReplayLiveZoom(t *testing.T) {
	doc := `{
	  "canvas": {"width": 400, "height": 300, "scale": 2},
	  "elements": [{"id": "a", "x": 20, "y": 20, "width": 50, "height": 40}],
	  "steps": [
	    {"op": "begin-move", "id": "a", "x": 60, "y": 60},
	    {"op": "move", "x": 106, "y": 94},
	    {"op": "scale", "scale": 1},
	    {"op": "move", "x": 73, "y": 47},
	    {"op": "end"}
	  ]
	}`
	tr, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Replay(context.Background(), tr, canvas.Options{})
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if got := res.Steps[1].Frame.Bounds; got.X != 40 || got.Y != 40 {
		t.Fatalf("move at zoom 2 = %+v", got)
	}
	if got := res.Elements[0].Bounds; got.X != 60 || got.Y != 40 {
		t.Fatalf("move after zoom change = %+v", got)
	}
	if res.Scale != 1 {
		t.Fatalf("Scale = %v", res.Scale)
	}
}

func TestReplayStopsOnError(t *testing.T) {
	doc := `{"canvas":{"width":100,"height":100},
	  "elements":[{"id":"a","width":40,"height":40}],
	  "steps":[{"op":"nudge","id":"a","direction":"right"},{"op":"move","x":1,"y":1},{"op":"end"}]}`
	tr, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	res, err := Replay(context.Background(), tr, canvas.Options{})
	if !errors.Is(err, canvas.ErrNoGesture) {
		t.Fatalf("err = %v, want ErrNoGesture", err)
	}
	if !strings.Contains(err.Error(), "step 1 (move)") {
		t.Fatalf("error should name the step: %v", err)
	}
	if len(res.Steps) != 1 || res.Elements[0].Bounds.X != 10 {
		t.Fatalf("partial result = %+v", res)
	}
}

func TestReplayHonorsContext(t *testing.T) {
	tr, err := Load(filepath.Join("testdata", "drag.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Replay(ctx, tr, canvas.Options{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(res.Steps) != 0 || len(res.Elements) != 2 {
		t.Fatalf("canceled replay result = %+v", res)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tr, err := Load(filepath.Join("testdata", "drag.json"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out", "copy.json")
	if err := Save(path, tr); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load copy: %v", err)
	}
	if diff := cmp.Diff(tr, back); diff != "" {
		t.Fatalf("round trip (-want +got):\n%s", diff)
	}
}
