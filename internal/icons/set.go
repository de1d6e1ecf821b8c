package icons

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math/rand/v2"
	"strings"

	"github.com/nfnt/resize"
)

const (
	MenuSize = 16
	TraySize = 32

	SheetCols = 8
	SheetRows = 4
)

var palette = []string{
	"#c8372d", "#e07b24", "#f2c200", "#2e9e44",
	"#1f8a8a", "#2f6fdb", "#6a4bc4", "#b04a9a",
}

// Sheet renders the decorative sprite sheet: a cols x rows grid of
// cell x cell tiles.
func Sheet(cols, rows, cell int) (*image.RGBA, error) {
	if cols <= 0 || rows <= 0 || cell <= 0 {
		return nil, fmt.Errorf("invalid sheet geometry %dx%d@%d", cols, rows, cell)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d">`, cols*cell, rows*cell)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			px, py := float64(x*cell), float64(y*cell)
			c := float64(cell)
			fill := palette[(x+y*cols)%len(palette)]
			fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g" rx="%g" fill="%s"/>`,
				px+c*0.08, py+c*0.08, c*0.84, c*0.84, c*0.15, fill)
			switch y % 3 {
			case 0:
				fmt.Fprintf(&b, `<circle cx="%g" cy="%g" r="%g" fill="#ffffff" fill-opacity="0.8"/>`,
					px+c/2, py+c/2, c*0.22)
			case 1:
				fmt.Fprintf(&b, `<path d="M%g %g L%g %g L%g %g Z" fill="#ffffff" fill-opacity="0.8"/>`,
					px+c/2, py+c*0.25, px+c*0.75, py+c*0.72, px+c*0.25, py+c*0.72)
			default:
				fmt.Fprintf(&b, `<rect x="%g" y="%g" width="%g" height="%g" fill="#ffffff" fill-opacity="0.8"/>`,
					px+c*0.3, py+c*0.3, c*0.4, c*0.4)
			}
		}
	}
	b.WriteString(`</svg>`)
	return Rasterize(b.String(), cols*cell, rows*cell)
}

// Set is a grid of icons sliced from a sprite sheet, each encoded for the
// tray host.
type Set struct {
	cells [][][]byte
	cols  int
	rows  int
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// NewSet slices sheet into cellW x cellH tiles and scales each to size.
// Partial tiles at the right and bottom edges are dropped.
func NewSet(sheet image.Image, cellW, cellH, size int) (*Set, error) {
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("invalid cell size %dx%d", cellW, cellH)
	}
	bounds := sheet.Bounds()
	cols, rows := bounds.Dx()/cellW, bounds.Dy()/cellH
	if cols == 0 || rows == 0 {
		return nil, errors.New("sprite sheet smaller than one cell")
	}

	s := &Set{cols: cols, rows: rows, cells: make([][][]byte, cols)}
	for x := 0; x < cols; x++ {
		s.cells[x] = make([][]byte, rows)
		for y := 0; y < rows; y++ {
			r := image.Rect(x*cellW, y*cellH, (x+1)*cellW, (y+1)*cellH).Add(bounds.Min)
			tile := crop(sheet, r)
			if size > 0 && (cellW != size || cellH != size) {
				tile = resize.Resize(uint(size), uint(size), tile, resize.Lanczos3)
			}
			data, err := Encode(tile)
			if err != nil {
				return nil, fmt.Errorf("cell %d,%d: %w", x, y, err)
			}
			s.cells[x][y] = data
		}
	}
	return s, nil
}

func crop(img image.Image, r image.Rectangle) image.Image {
	if si, ok := img.(subImager); ok {
		return si.SubImage(r)
	}
	dst := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
	return dst
}

func (s *Set) Dims() (cols, rows int) { return s.cols, s.rows }

func (s *Set) Cell(x, y int) []byte { return s.cells[x][y] }

// Random picks a uniformly random cell using r.
func (s *Set) Random(r *rand.Rand) []byte {
	return s.cells[r.IntN(s.cols)][r.IntN(s.rows)]
}
