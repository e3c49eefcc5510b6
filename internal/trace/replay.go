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
	"fmt"
	"log/slog"

	"bookcanvas/internal/canvas"
	applog "bookcanvas/internal/log"
	"bookcanvas/internal/vector"
)

// StepResult records what one step did.
type StepResult struct {
	Index int
	Op    string
	// Frame is set for move and resize samples.
	Frame *canvas.Frame
	// Bounds is the affected element's bounds after the step, when there is one.
	Bounds *vector.Rect
}

// Result is the outcome of a replay.
type Result struct {
	Options  canvas.Options
	Steps    []StepResult
	Elements []canvas.Element
	// LastFrame is the most recent move or resize frame, nil if there was none.
	LastFrame *canvas.Frame
	// Scale is the zoom in effect when the replay stopped.
	Scale float64
}

// Replay builds a canvas from t and feeds it every step in order. The
// container size in opts is replaced by the trace's. Replay stops at the
// first failing step or when ctx is done; the partial result is returned
// together with the error.
func Replay(ctx context.Context, t *Trace, opts canvas.Options) (Result, error) {
	l := applog.WithOperation(applog.WithComponent("trace"), "replay")
	zoom := t.Canvas.Scale
	if zoom == 0 {
		zoom = 1
	}
	opts.Width, opts.Height = t.Canvas.Width, t.Canvas.Height
	c := canvas.New(opts, vector.ScaleFunc(func() float64 { return zoom }))
	c.SetLogger(l)

	res := Result{Options: c.Options(), Scale: zoom}
	for _, e := range t.Elements {
		if _, err := c.Add(e.ID, vector.R(e.X, e.Y, e.Width, e.Height)); err != nil {
			return res, err
		}
	}

	for i, s := range t.Steps {
		if err := ctx.Err(); err != nil {
			res.Elements = c.Elements()
			return res, err
		}
		sr := StepResult{Index: i, Op: s.Op}
		var err error
		switch s.Op {
		case OpBeginMove:
			err = c.BeginMove(s.ID, s.X, s.Y)
		case OpMove:
			var f canvas.Frame
			if f, err = c.Move(s.X, s.Y, s.Modifiers()); err == nil {
				sr.Frame, sr.Bounds = &f, &f.Bounds
				res.LastFrame = &f
			}
		case OpBeginResize:
			side, ok := canvas.ParseSide(s.Side)
			if !ok {
				err = fmt.Errorf("%w: side %q", ErrInvalidTrace, s.Side)
				break
			}
			err = c.BeginResize(s.ID, side, s.X, s.Y)
		case OpResize:
			var f canvas.Frame
			if f, err = c.Resize(s.X, s.Y, s.Modifiers()); err == nil {
				sr.Frame, sr.Bounds = &f, &f.Bounds
				res.LastFrame = &f
			}
		case OpEnd:
			var el canvas.Element
			if el, err = c.End(); err == nil {
				sr.Bounds = &el.Bounds
			}
		case OpCancel:
			err = c.Cancel()
		case OpNudge:
			dir, ok := canvas.ParseDirection(s.Direction)
			if !ok {
				err = fmt.Errorf("%w: direction %q", ErrInvalidTrace, s.Direction)
				break
			}
			var b vector.Rect
			if b, err = c.Nudge(s.ID, dir, s.Modifiers()); err == nil {
				sr.Bounds = &b
			}
		case OpScale:
			// the canvas reads the zoom on every sample, so a change applies
			// to a gesture already in progress
			zoom = s.Scale
			res.Scale = zoom
		case OpPlace:
			var el *canvas.Element
			if el, err = c.AddCentered(s.ID, s.Fraction); err == nil {
				b := el.Bounds
				sr.Bounds = &b
			}
		case OpReshape:
			var b vector.Rect
			if b, err = c.Reshape(s.ID, s.Width, s.Height); err == nil {
				sr.Bounds = &b
			}
		default:
			err = fmt.Errorf("%w: unknown op %q", ErrInvalidTrace, s.Op)
		}
		if err != nil {
			res.Elements = c.Elements()
			l.Warn("replay stopped", slog.Int("step", i), slog.String("op", s.Op), slog.Any("err", err))
			return res, fmt.Errorf("step %d (%s): %w", i, s.Op, err)
		}
		res.Steps = append(res.Steps, sr)
	}
	res.Elements = c.Elements()
	l.Debug("replay done", slog.Int("steps", len(res.Steps)), slog.Int("elements", len(res.Elements)))
	return res, nil
}
