/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package trace reads gesture trace files and replays them against a canvas.
//
// A trace is a JSON document with the container size and zoom, the initial
// elements and an ordered list of steps. Pointer coordinates in steps are in
// scaled (screen) units, as a browser would report them.
package trace

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"bookcanvas/internal/snap"
)

//go:embed schema.json
var schemaJSON []byte

// ErrInvalidTrace is returned for documents that fail validation.
var ErrInvalidTrace = errors.New("invalid trace")

// Step operations.
const (
	OpBeginMove   = "begin-move"
	OpMove        = "move"
	OpBeginResize = "begin-resize"
	OpResize      = "resize"
	OpEnd         = "end"
	OpCancel      = "cancel"
	OpNudge       = "nudge"
	OpScale       = "scale"
	OpPlace       = "place"
	OpReshape     = "reshape"
)

type Canvas struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale,omitempty"`
}

type Element struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Step is one recorded input event. Which fields matter depends on Op.
type Step struct {
	Op        string  `json:"op"`
	ID        string  `json:"id,omitempty"`
	X         float64 `json:"x,omitempty"`
	Y         float64 `json:"y,omitempty"`
	Side      string  `json:"side,omitempty"`
	Direction string  `json:"direction,omitempty"`
	Precise   bool    `json:"precise,omitempty"`
	AxisLock  bool    `json:"axisLock,omitempty"`
	Scale     float64 `json:"scale,omitempty"`
	Fraction  float64 `json:"fraction,omitempty"`
	Width     float64 `json:"width,omitempty"`
	Height    float64 `json:"height,omitempty"`
}

// Modifiers returns the modifier keys held for the step.
func (s Step) Modifiers() snap.Modifiers {
	return snap.Modifiers{Precise: s.Precise, AxisLock: s.AxisLock}
}

type Trace struct {
	Version  int       `json:"version,omitempty"`
	Name     string    `json:"name,omitempty"`
	Canvas   Canvas    `json:"canvas"`
	Elements []Element `json:"elements,omitempty"`
	Steps    []Step    `json:"steps"`
}

// Load reads and parses the trace at path.
func Load(path string) (*Trace, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	t, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// Parse validates data against the trace schema and decodes it.
func Parse(data []byte) (*Trace, error) {
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTrace, err)
	}
	if !res.Valid() {
		msgs := make([]string, 0, len(res.Errors()))
		for _, e := range res.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidTrace, strings.Join(msgs, "; "))
	}
	var t Trace
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}
	if err := t.check(); err != nil {
		return nil, err
	}
	if t.Version == 0 {
		t.Version = 1
	}
	if t.Canvas.Scale == 0 {
		t.Canvas.Scale = 1
	}
	return &t, nil
}

// check covers the per-operation requirements the schema leaves out.
func (t *Trace) check() error {
	seen := make(map[string]bool, len(t.Elements))
	for _, e := range t.Elements {
		if seen[e.ID] {
			return fmt.Errorf("%w: duplicate element %q", ErrInvalidTrace, e.ID)
		}
		seen[e.ID] = true
	}
	for i, s := range t.Steps {
		var missing string
		switch s.Op {
		case OpBeginMove, OpNudge, OpPlace, OpReshape:
			if s.ID == "" {
				missing = "id"
			}
		case OpBeginResize:
			if s.ID == "" {
				missing = "id"
			} else if s.Side == "" {
				missing = "side"
			}
		case OpScale:
			if s.Scale <= 0 {
				missing = "scale"
			}
		}
		switch {
		case missing != "":
		case s.Op == OpNudge && s.Direction == "":
			missing = "direction"
		case s.Op == OpPlace && s.Fraction <= 0:
			missing = "fraction"
		case s.Op == OpReshape && (s.Width <= 0 || s.Height <= 0):
			missing = "width/height"
		}
		if missing != "" {
			return fmt.Errorf("%w: step %d (%s) needs %s", ErrInvalidTrace, i, s.Op, missing)
		}
	}
	return nil
}

// Save writes t as indented JSON, replacing path atomically.
func Save(path string, t *Trace) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal trace: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure trace dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := writeFileSync(tmp, data); err != nil {
		return fmt.Errorf("write temp trace: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace trace: %w", err)
	}
	return nil
}

func writeFileSync(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if _, err = f.Write(data); err != nil {
		return err
	}
	return f.Sync()
}
