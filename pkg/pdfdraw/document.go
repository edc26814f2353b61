package pdfdraw

import (
	"image/color"
	"io"

	"github.com/gardar/pdfviz/pkg/geometry"
)

// Document is an open source document that annotations are written to.
// Page numbers are 1-based.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int
	// PageBox returns the bounding box of a page: its crop box, or its media
	// box if it has no crop box.
	PageBox(pageNumber int) geometry.Rectangle
	// OpenSurface returns the drawable surface of a page.
	OpenSurface(pageNumber int) (Surface, error)
	// Save writes the complete document to w.
	Save(w io.Writer) error
	// Close releases the document.
	Close() error
}

// Surface is the drawable surface of one page.
// All coordinates are page-native: the origin is in the lower left corner.
type Surface interface {
	// StrokePath strokes the open path through the given points.
	StrokePath(points []geometry.Point, style Stroke) error
	// ShowText draws text with its baseline starting at the given point.
	ShowText(text string, at geometry.Point, style TextStyle) error
	// Close ends drawing on the surface.
	Close() error
}

// Stroke describes how a path is stroked
type Stroke struct {
	Color color.Color // Stroking and non-stroking color
	Width float64     // Line width in points
}

// TextStyle describes how text is drawn
type TextStyle struct {
	Color color.Color // Fill color
	Font  string      // Font family name, e.g. "Helvetica"
	Size  float64     // Font size in points
}
