package source

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
)

// ImageSource serves the png/jpeg files of a directory (or a single file)
// as pages, in lexical order.
type ImageSource struct {
	paths []string
}

func NewImageSource(path string) (*ImageSource, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	var paths []string
	if fi.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			switch filepath.Ext(entry.Name()) {
			case ".jpg", ".jpeg", ".png":
				paths = append(paths, filepath.Join(path, entry.Name()))
			}
		}
		sort.Strings(paths)
	} else {
		paths = []string{path}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no images found in %s", path)
	}
	return &ImageSource{paths: paths}, nil
}

func (s *ImageSource) PageCount() int {
	return len(s.paths)
}

func (s *ImageSource) RenderPage(index int) (image.Image, error) {
	f, err := os.Open(s.paths[index])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.paths[index], err)
	}
	return img, nil
}

func (s *ImageSource) Close() error {
	return nil
}
