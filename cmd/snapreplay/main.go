/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"

	"github.com/sanity-io/litter"
	"gopkg.in/yaml.v3"

	"bookcanvas/internal/config"
	"bookcanvas/internal/crash"
	"bookcanvas/internal/export"
	applog "bookcanvas/internal/log"
	"bookcanvas/internal/snap"
	"bookcanvas/internal/trace"
	"bookcanvas/internal/version"
)

func usage() {
	fmt.Println("snapreplay — replay canvas drag traces through the snap resolver")
	fmt.Printf("Version: %s\n", version.String())
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  snapreplay version|-v|--version                        Show version")
	fmt.Println("  snapreplay config                                      Print the effective configuration")
	fmt.Println("  snapreplay snap <x> <y> [precise] [lock]               Resolve one point as the first sample of a drag")
	fmt.Println("  snapreplay replay <trace.json> [-png f] [-svg f] [-scale n] [-grid] [-labels] [-dump]")
	fmt.Println("                                                         Replay a trace and optionally render the result")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(cfg.LogOptions())
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}
	rc := &crash.Context{}
	defer crash.Recover(rc)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) > 1 {
		rc.Command = args[1]
		if err := cfg.Validate(); err != nil {
			fmt.Println("Error:", err)
			os.Exit(1)
		}
		switch args[1] {
		case "version", "--version", "-v":
			fmt.Println("snapreplay")
			fmt.Println(version.String())
			return
		case "config":
			if err := printConfig(os.Stdout, cfg); err != nil {
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		case "snap":
			if len(args) < 4 {
				fmt.Println("snap requires <x> and <y>")
				usage()
				os.Exit(2)
			}
			if err := snapPoint(os.Stdout, cfg, args[2:]); err != nil {
				fmt.Println("Error:", err)
				os.Exit(2)
			}
			return
		case "replay":
			if len(args) < 3 {
				fmt.Println("replay requires <trace.json>")
				usage()
				os.Exit(2)
			}
			rc.Input = args[2]
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			err := replay(ctx, os.Stdout, cfg, args[2], args[3:])
			stop()
			if err != nil {
				l.Error("replay failed", slog.String("trace", args[2]), slog.Any("err", err))
				fmt.Println("Error:", err)
				os.Exit(1)
			}
			return
		}
	}

	usage()
}

func printConfig(w io.Writer, cfg config.AppConfig) error {
	if p, err := config.ConfigPath(); err == nil {
		_, _ = fmt.Fprintf(w, "# file: %s\n", p)
	}
	for _, key := range []string{"snap.grid_size", "snap.axis_lock_threshold", "snap.precise_step_size", "logging.level", "logging.format", "logging.source", "logging.file"} {
		if env, ok := config.EnvOverrideFor(key); ok {
			_, _ = fmt.Fprintf(w, "# %s overridden by %s\n", key, env)
		}
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

func snapPoint(w io.Writer, cfg config.AppConfig, args []string) error {
	x, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("y: %w", err)
	}
	var mods snap.Modifiers
	for _, a := range args[2:] {
		switch a {
		case "precise":
			mods.Precise = true
		case "lock":
			mods.AxisLock = true
		default:
			return fmt.Errorf("unknown modifier %q", a)
		}
	}
	r := snap.NewResolver(cfg.SnapOptions())
	defer r.EndDrag()
	rx, ry := r.Resolve(mods, x, y)
	_, err = fmt.Fprintf(w, "%g %g\n", rx, ry)
	return err
}

func replay(ctx context.Context, w io.Writer, cfg config.AppConfig, path string, args []string) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	pngOut := fs.String("png", "", "write the final scene as PNG")
	svgOut := fs.String("svg", "", "write the final scene as SVG")
	scale := fs.Float64("scale", 1, "output pixels per canvas unit")
	grid := fs.Bool("grid", false, "draw the snap grid")
	labels := fs.Bool("labels", true, "draw element ids")
	dump := fs.Bool("dump", false, "dump the full replay result")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := trace.Load(path)
	if err != nil {
		return err
	}
	res, rerr := trace.Replay(ctx, t, cfg.CanvasOptions())
	for _, s := range res.Steps {
		line := fmt.Sprintf("%3d %-12s", s.Index, s.Op)
		if s.Bounds != nil {
			b := s.Bounds
			line += fmt.Sprintf(" (%g,%g %gx%g)", b.X, b.Y, b.W, b.H)
		}
		if s.Frame != nil {
			if s.Frame.Locked != snap.AxisNone {
				line += " lock=" + s.Frame.Locked.String()
			}
			if n := len(s.Frame.Guides); n > 0 {
				line += fmt.Sprintf(" guides=%d", n)
			}
			if n := len(s.Frame.Equal); n > 0 {
				line += fmt.Sprintf(" equal=%d", n)
			}
		}
		_, _ = fmt.Fprintln(w, line)
	}
	for _, el := range res.Elements {
		b := el.Bounds
		_, _ = fmt.Fprintf(w, "%s: (%g,%g %gx%g)\n", el.ID, b.X, b.Y, b.W, b.H)
	}
	if *dump {
		_, _ = fmt.Fprintln(w, litter.Options{StripPackageNames: true, HidePrivateFields: true}.Sdump(res))
	}
	if rerr != nil && !errors.Is(rerr, context.Canceled) {
		return rerr
	}

	scene := export.SceneFrom(res.Options, res.Elements, res.LastFrame)
	if *pngOut != "" {
		if err := writeOut(*pngOut, func(f io.Writer) error {
			return export.RenderPNG(f, scene, export.PNGOptions{Scale: *scale, Grid: *grid, Labels: *labels})
		}); err != nil {
			return err
		}
	}
	if *svgOut != "" {
		if err := writeOut(*svgOut, func(f io.Writer) error {
			return export.RenderSVG(f, scene, export.SVGOptions{Scale: *scale, Grid: *grid, Labels: *labels})
		}); err != nil {
			return err
		}
	}
	return rerr
}

func writeOut(path string, render func(io.Writer) error) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return render(f)
}
