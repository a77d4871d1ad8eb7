package publish

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteImages saves each card's image under dir using its download filename
// and returns the written paths in card order.
func WriteImages(dir string, cards []Card) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}
	paths := make([]string, 0, len(cards))
	for _, c := range cards {
		data, _, err := DecodeDataURL(c.ImageURL)
		if err != nil {
			return paths, fmt.Errorf("%s: %w", c.Platform.Key, err)
		}
		path := filepath.Join(dir, DownloadFilename(c.Platform))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("failed to write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
