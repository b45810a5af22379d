package imageutil

import (
	"fmt"
	"os"
)

// WriteText writes a text artifact to the specified path verbatim,
// line breaks included. Write failures are surfaced to the caller
// wrapped with the destination path.
func WriteText(art, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString(art); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
