package loaders

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

// SaveImage writes img to filename, choosing the encoder from the extension (.bmp or .png)
func SaveImage(filename string, img image.Image) error {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".bmp" && ext != ".png" {
		return fmt.Errorf("unsupported output format %q (expected .bmp or .png)", ext)
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	switch ext {
	case ".bmp":
		err = bmp.Encode(file, img)
	case ".png":
		err = png.Encode(file, img)
	}
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", filename, err)
	}

	return file.Close()
}
