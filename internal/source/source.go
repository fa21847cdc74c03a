// Package source provides page-based frame backends: directories of still
// images and PDF documents. A source only knows how to count and render
// pages; turning pages into a clip happens at the clip level.
package source

import (
	"image"

	"github.com/gen2brain/go-fitz"
)

type Source interface {
	PageCount() int
	RenderPage(index int) (image.Image, error)
	Close() error
}

// FitzSource renders PDF pages through go-fitz at a fixed DPI.
type FitzSource struct {
	doc  *fitz.Document
	path string
	dpi  int
}

func NewFitzSource(path string, dpi int) (*FitzSource, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, err
	}
	if dpi <= 0 {
		dpi = 150
	}
	return &FitzSource{doc: doc, path: path, dpi: dpi}, nil
}

func (f *FitzSource) PageCount() int {
	return f.doc.NumPage()
}

func (f *FitzSource) RenderPage(index int) (image.Image, error) {
	return f.doc.ImageDPI(index, float64(f.dpi))
}

func (f *FitzSource) Close() error {
	return f.doc.Close()
}
