package menu

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

const DefaultFileName = "Config.txt"

// Load returns the lines of the config file at path. A missing file is not
// an error and yields no lines.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read menu config: %w", err)
	}

	text := strings.TrimPrefix(string(data), "\ufeff")
	if text == "" {
		return nil, nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	// a trailing newline does not start another line
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
