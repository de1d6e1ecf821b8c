package icons

import "fmt"

// Stock holds the encoded icons the tray menu uses.
type Stock struct {
	Tray   []byte
	File   []byte
	Folder []byte
	Exit   []byte
}

func LoadStock() (*Stock, error) {
	var s Stock
	for _, it := range []struct {
		g    Glyph
		size int
		dst  *[]byte
	}{
		{Tray, TraySize, &s.Tray},
		{File, MenuSize, &s.File},
		{Folder, MenuSize, &s.Folder},
		{Exit, MenuSize, &s.Exit},
	} {
		img, err := Render(it.g, it.size)
		if err != nil {
			return nil, err
		}
		data, err := Encode(img)
		if err != nil {
			return nil, fmt.Errorf("%s icon: %w", it.g, err)
		}
		*it.dst = data
	}
	return &s, nil
}

// LoadSet renders the sprite sheet with the given cell size and slices it
// into menu sized icons.
func LoadSet(cell int) (*Set, error) {
	sheet, err := Sheet(SheetCols, SheetRows, cell)
	if err != nil {
		return nil, err
	}
	return NewSet(sheet, cell, cell, MenuSize)
}
