// Package icons renders the tray, menu and dialog icons and slices the
// decorative sprite sheet used in random icon mode.
package icons

import (
	"fmt"
	"image"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

type Glyph string

const (
	Tray    Glyph = "tray"
	File    Glyph = "file"
	Folder  Glyph = "folder"
	Exit    Glyph = "exit"
	Info    Glyph = "info"
	Warning Glyph = "warning"
	Success Glyph = "success"
	Error   Glyph = "error"
)

// All sources share a 48x48 view box.
var sources = map[Glyph]string{
	Tray: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 48">
  <rect x="8" y="4" width="32" height="40" rx="3" fill="#f6d55c"/>
  <rect x="8" y="4" width="32" height="8" rx="3" fill="#d9a932"/>
  <path d="M14 20 H34 M14 27 H34 M14 34 H28" stroke="#6b5a2a" stroke-width="2.5" fill="none"/>
</svg>`,
	File: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 48">
  <path d="M10 4 H30 L40 14 V44 H10 Z" fill="#f2f2f2" stroke="#6d6d6d" stroke-width="2"/>
  <path d="M30 4 V14 H40" fill="#d0d0d0" stroke="#6d6d6d" stroke-width="2"/>
  <path d="M19 20 L33 29 L19 38 Z" fill="#2e9e44"/>
</svg>`,
	Folder: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 48">
  <path d="M4 10 H18 L22 14 H44 V40 H4 Z" fill="#d9a932"/>
  <path d="M4 18 H44 V40 H4 Z" fill="#f6c945"/>
</svg>`,
	Exit: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 48">
  <circle cx="24" cy="24" r="20" fill="#c8372d"/>
  <path d="M16 16 L32 32 M32 16 L16 32" stroke="#ffffff" stroke-width="5" fill="none"/>
</svg>`,
	Info: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 48">
  <circle cx="24" cy="24" r="21" fill="#2f6fdb"/>
  <circle cx="24" cy="13" r="3" fill="#ffffff"/>
  <rect x="21" y="20" width="6" height="17" fill="#ffffff"/>
</svg>`,
	Warning: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 48">
  <path d="M24 3 L46 43 H2 Z" fill="#f2c200"/>
  <rect x="21.5" y="16" width="5" height="15" fill="#1e1e1e"/>
  <circle cx="24" cy="36" r="2.8" fill="#1e1e1e"/>
</svg>`,
	Success: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 48">
  <circle cx="24" cy="24" r="21" fill="#2e9e44"/>
  <path d="M13 25 L21 33 L36 16" stroke="#ffffff" stroke-width="5" fill="none"/>
</svg>`,
	Error: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 48 48">
  <circle cx="24" cy="24" r="21" fill="#c8372d"/>
  <path d="M15 15 L33 33 M33 15 L15 33" stroke="#ffffff" stroke-width="5" fill="none"/>
</svg>`,
}

// Rasterize draws an SVG document into a w x h image.
func Rasterize(svg string, w, h int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

// Render draws a stock glyph at size x size.
func Render(g Glyph, size int) (*image.RGBA, error) {
	src, ok := sources[g]
	if !ok {
		return nil, fmt.Errorf("unknown glyph %q", g)
	}
	return Rasterize(src, size, size)
}
