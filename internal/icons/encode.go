package icons

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"runtime"
)

func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ICO wraps a PNG encoding of img in a single-image ICO container.
func ICO(img image.Image) ([]byte, error) {
	b := img.Bounds()
	if b.Dx() > 256 || b.Dy() > 256 {
		return nil, fmt.Errorf("ico: image %dx%d exceeds 256x256", b.Dx(), b.Dy())
	}
	data, err := PNG(img)
	if err != nil {
		return nil, err
	}

	const headerSize = 6 + 16
	var buf bytes.Buffer
	buf.Grow(headerSize + len(data))
	// ICONDIR
	binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY; a zero dimension means 256
	buf.WriteByte(byte(b.Dx()))
	buf.WriteByte(byte(b.Dy()))
	buf.WriteByte(0)
	buf.WriteByte(0)
	binary.Write(&buf, binary.LittleEndian, [2]uint16{1, 32})
	binary.Write(&buf, binary.LittleEndian, [2]uint32{uint32(len(data)), headerSize})
	buf.Write(data)
	return buf.Bytes(), nil
}

// Encode produces the bytes the tray host expects for icons: ICO on
// Windows, PNG elsewhere.
func Encode(img image.Image) ([]byte, error) {
	if runtime.GOOS == "windows" {
		return ICO(img)
	}
	return PNG(img)
}
