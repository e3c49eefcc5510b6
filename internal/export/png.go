/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"bookcanvas/internal/vector"
)

// maxPixels caps the raster size so a runaway extent cannot exhaust memory.
const maxPixels = 64 << 20

// PNGOptions controls PNG rendering. Zero colors fall back to the defaults.
// - Scale: output pixels per canvas unit, default 1
// - Grid: draw the snap grid as dots
// - Labels: draw element IDs
type PNGOptions struct {
	Scale       float64
	Grid        bool
	Labels      bool
	Background  color.RGBA
	GridColor   color.RGBA
	ElementFill color.RGBA
	ElementEdge color.RGBA
	ActiveEdge  color.RGBA
	GuideColor  color.RGBA
	EqualColor  color.RGBA
	LabelColor  color.RGBA
}

var (
	white   = color.RGBA{255, 255, 255, 255}
	black   = color.RGBA{0, 0, 0, 255}
	gray    = color.RGBA{200, 200, 200, 255}
	paper   = color.RGBA{240, 244, 250, 255}
	blue    = color.RGBA{30, 100, 220, 255}
	magenta = color.RGBA{220, 0, 160, 255}
	orange  = color.RGBA{240, 140, 0, 255}
)

func orDefault(c, def color.RGBA) color.RGBA {
	if c == (color.RGBA{}) {
		return def
	}
	return c
}

func (o PNGOptions) withDefaults() PNGOptions {
	if o.Scale <= 0 {
		o.Scale = 1
	}
	o.Background = orDefault(o.Background, white)
	o.GridColor = orDefault(o.GridColor, gray)
	o.ElementFill = orDefault(o.ElementFill, paper)
	o.ElementEdge = orDefault(o.ElementEdge, black)
	o.ActiveEdge = orDefault(o.ActiveEdge, blue)
	o.GuideColor = orDefault(o.GuideColor, magenta)
	o.EqualColor = orDefault(o.EqualColor, orange)
	o.LabelColor = orDefault(o.LabelColor, black)
	return o
}

// raster maps canvas units to pixels for one render.
type raster struct {
	img    *image.RGBA
	origin vector.Pt
	scale  float64
}

func (r raster) px(x, y float64) (int, int) {
	return int(math.Round((x - r.origin.X) * r.scale)), int(math.Round((y - r.origin.Y) * r.scale))
}

// Rasterize draws the scene into a new image.
func Rasterize(s Scene, opt PNGOptions) (*image.RGBA, error) {
	opt = opt.withDefaults()
	ext := s.Extent()
	pixW := int(math.Ceil(ext.W * opt.Scale))
	pixH := int(math.Ceil(ext.H * opt.Scale))
	if pixW <= 0 || pixH <= 0 {
		return nil, fmt.Errorf("empty scene extent %gx%g", ext.W, ext.H)
	}
	if pixW*pixH > maxPixels {
		return nil, fmt.Errorf("scene too large: %dx%d px", pixW, pixH)
	}
	r := raster{img: image.NewRGBA(image.Rect(0, 0, pixW, pixH)), origin: ext.Min(), scale: opt.Scale}
	// Background
	draw.Draw(r.img, r.img.Bounds(), &image.Uniform{C: opt.Background}, image.Point{}, draw.Src)

	if opt.Grid && s.GridSize > 0 {
		g := s.GridSize
		for y := math.Ceil(ext.Y/g) * g; y <= ext.Bottom(); y += g {
			for x := math.Ceil(ext.X/g) * g; x <= ext.Right(); x += g {
				px, py := r.px(x, y)
				r.img.SetRGBA(px, py, opt.GridColor)
			}
		}
	}

	for _, el := range s.Elements {
		b := el.Bounds
		x0, y0 := r.px(b.X, b.Y)
		x1, y1 := r.px(b.Right(), b.Bottom())
		fillRect(r.img, x0, y0, x1-1, y1-1, opt.ElementFill)
		edge := opt.ElementEdge
		if el.ID == s.Active {
			edge = opt.ActiveEdge
		}
		strokeRect(r.img, x0, y0, x1-1, y1-1, edge)
		if opt.Labels {
			d := &font.Drawer{Dst: r.img, Src: image.NewUniform(opt.LabelColor), Face: basicfont.Face7x13,
				Dot: fixed.P(x0+3, y0+13)}
			d.DrawString(el.ID)
		}
	}

	for _, g := range s.Guides {
		x0, y0 := r.px(g.From.X, g.From.Y)
		x1, y1 := r.px(g.To.X, g.To.Y)
		line(r.img, x0, y0, x1, y1, opt.GuideColor)
	}
	for _, m := range s.Equal {
		x0, y0 := r.px(m.From.X, m.From.Y)
		x1, y1 := r.px(m.To.X, m.To.Y)
		line(r.img, x0, y0, x1, y1, opt.EqualColor)
	}
	return r.img, nil
}

// RenderPNG rasterizes the scene and encodes it to w.
func RenderPNG(w io.Writer, s Scene, opt PNGOptions) error {
	img, err := Rasterize(s, opt)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// line draws an axis-aligned 1px line; guides never run diagonally.
func line(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	if y0 == y1 {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y0, col)
		}
		return
	}
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
	}
}

// strokeRect draws a 1px axis-aligned rectangle border inclusive of endpoints.
func strokeRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	// top and bottom
	for x := x0; x <= x1; x++ {
		img.SetRGBA(x, y0, col)
		img.SetRGBA(x, y1, col)
	}
	// left and right
	for y := y0; y <= y1; y++ {
		img.SetRGBA(x0, y, col)
		img.SetRGBA(x1, y, col)
	}
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}
