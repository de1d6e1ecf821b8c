//go:build !windows

package launch

import (
	"fmt"

	"github.com/pkg/browser"
)

func open(target string) error {
	if err := browser.OpenFile(target); err != nil {
		return fmt.Errorf("launch %q: %w", target, err)
	}
	return nil
}
