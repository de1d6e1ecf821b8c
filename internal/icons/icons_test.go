package icons

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderGlyphs(t *testing.T) {
	for g := range sources {
		img, err := Render(g, 48)
		require.NoError(t, err, g)
		assert.Equal(t, image.Rect(0, 0, 48, 48), img.Bounds())

		var opaque bool
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] != 0 {
				opaque = true
				break
			}
		}
		assert.True(t, opaque, "glyph %s rendered nothing", g)
	}
}

func TestRenderUnknownGlyph(t *testing.T) {
	_, err := Render("nope", 16)
	assert.Error(t, err)
}

func TestICOHeader(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	img.Set(3, 3, color.RGBA{R: 255, A: 255})

	data, err := ICO(img)
	require.NoError(t, err)
	require.Greater(t, len(data), 22)

	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(data[0:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[2:]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(data[4:]))
	assert.Equal(t, byte(16), data[6])
	assert.Equal(t, byte(16), data[7])
	assert.Equal(t, uint16(32), binary.LittleEndian.Uint16(data[12:]))
	size := binary.LittleEndian.Uint32(data[14:])
	offset := binary.LittleEndian.Uint32(data[18:])
	assert.Equal(t, uint32(22), offset)
	assert.Equal(t, len(data)-22, int(size))

	decoded, err := png.Decode(bytes.NewReader(data[offset:]))
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), decoded.Bounds())
}

func TestICOTooLarge(t *testing.T) {
	_, err := ICO(image.NewRGBA(image.Rect(0, 0, 257, 16)))
	assert.Error(t, err)
}

func TestNewSetSlicesGrid(t *testing.T) {
	// 3 full columns and 2 full rows; the remainder is dropped
	sheet := image.NewRGBA(image.Rect(0, 0, 27*3+5, 27*2+10))
	set, err := NewSet(sheet, 27, 27, MenuSize)
	require.NoError(t, err)

	cols, rows := set.Dims()
	assert.Equal(t, 3, cols)
	assert.Equal(t, 2, rows)
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			assert.NotEmpty(t, set.Cell(x, y))
		}
	}
}

func TestNewSetTooSmall(t *testing.T) {
	_, err := NewSet(image.NewRGBA(image.Rect(0, 0, 10, 10)), 27, 27, MenuSize)
	assert.Error(t, err)

	_, err = NewSet(image.NewRGBA(image.Rect(0, 0, 10, 10)), 0, 27, MenuSize)
	assert.Error(t, err)
}

func TestSetRandomIsDeterministicForSeed(t *testing.T) {
	set, err := LoadSet(27)
	require.NoError(t, err)
	cols, rows := set.Dims()
	assert.Equal(t, SheetCols, cols)
	assert.Equal(t, SheetRows, rows)

	a := rand.New(rand.NewPCG(1, 2))
	b := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		assert.Equal(t, set.Random(a), set.Random(b))
	}
}

func TestLoadStock(t *testing.T) {
	s, err := LoadStock()
	require.NoError(t, err)
	for _, b := range [][]byte{s.Tray, s.File, s.Folder, s.Exit} {
		assert.NotEmpty(t, b)
	}
	assert.NotEqual(t, s.File, s.Folder)
}
