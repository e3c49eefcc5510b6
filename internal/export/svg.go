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
	"fmt"
	"image/color"
	"io"
	"math"
)

// SVGOptions controls SVG rendering.
// - Scale defines the pixel size; width/height attributes are the extent times Scale.
// - The coordinate system matches the canvas (unscaled units). A viewBox is provided to scale.
type SVGOptions struct {
	Scale  float64
	Grid   bool
	Labels bool
}

// RenderSVG writes the scene as a standalone SVG document.
func RenderSVG(w io.Writer, s Scene, opt SVGOptions) error {
	if opt.Scale <= 0 {
		opt.Scale = 1
	}
	ext := s.Extent()
	if ext.W <= 0 || ext.H <= 0 {
		return fmt.Errorf("empty scene extent %gx%g", ext.W, ext.H)
	}
	pxW := int(math.Ceil(ext.W * opt.Scale))
	pxH := int(math.Ceil(ext.H * opt.Scale))

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"%g %g %g %g\">\n", pxW, pxH, ext.X, ext.Y, ext.W, ext.H)
	// Background white
	wf("  <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\"/>\n", ext.X, ext.Y, ext.W, ext.H, svgColor(white))

	if opt.Grid && s.GridSize > 0 {
		g := s.GridSize
		wf("  <g fill=\"%s\">\n", svgColor(gray))
		for y := math.Ceil(ext.Y/g) * g; y <= ext.Bottom(); y += g {
			for x := math.Ceil(ext.X/g) * g; x <= ext.Right(); x += g {
				wf("    <circle cx=\"%g\" cy=\"%g\" r=\"0.5\"/>\n", x, y)
			}
		}
		wf("  </g>\n")
	}

	for _, el := range s.Elements {
		b := el.Bounds
		edge := black
		if el.ID == s.Active {
			edge = blue
		}
		wf("  <rect id=\"%s\" x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" fill=\"%s\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			escAttr(el.ID), b.X, b.Y, b.W, b.H, svgColor(paper), svgColor(edge))
		if opt.Labels {
			wf("  <text x=\"%g\" y=\"%g\" font-family=\"monospace\" font-size=\"11\" fill=\"#000\">%s</text>\n", b.X+3, b.Y+13, escText(el.ID))
		}
	}

	for _, g := range s.Guides {
		wf("  <line class=\"guide %s\" x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"0.5\"/>\n",
			g.Alignment, g.From.X, g.From.Y, g.To.X, g.To.Y, svgColor(magenta))
	}
	for _, m := range s.Equal {
		wf("  <line class=\"equal %s\" x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"0.5\" stroke-dasharray=\"2 2\"/>\n",
			m.Dimension, m.From.X, m.From.Y, m.To.X, m.To.Y, svgColor(orange))
	}

	wf("</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func svgColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func escAttr(s string) string {
	// naive escaping sufficient for our simple usage
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '"':
			out = append(out, '&', 'q', 'u', 'o', 't', ';')
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '\n':
			out = append(out, ' ')
		case '\r':
			// skip
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch ch {
		case '&':
			out = append(out, '&', 'a', 'm', 'p', ';')
		case '<':
			out = append(out, '&', 'l', 't', ';')
		case '>':
			out = append(out, '&', 'g', 't', ';')
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
