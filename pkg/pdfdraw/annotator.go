// Package pdfdraw draws annotations onto the pages of an existing PDF document.
//
// It is meant for visually checking the output of a layout analyzer: the
// bounding boxes of figures, shapes, text blocks and paragraphs can be drawn
// on top of the original pages, together with lines and text labels.
//
// Key Features:
//
// - Draw lines, rectangles, bounding boxes and text on any page
// - Accept page-native coordinates or coordinates measured from the top of the page
// - Optionally group the annotations of each page in a toggleable PDF layer
// - Detect annotation layers that are already present in a PDF
//
// An Annotator is created with Open (or New for a custom Document backend),
// drawn on with the Draw methods and finished with WriteTo. An Annotator is
// not safe for concurrent use; independent documents may be processed in
// parallel with one Annotator each.
package pdfdraw

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"github.com/gardar/pdfviz/pkg/geometry"
	"github.com/gardar/pdfviz/pkg/layout"
)

const (
	DefaultThickness  = 0.1
	DefaultFontSize   = 12
	DefaultFontFamily = "Helvetica"
)

// DefaultColor is used when DrawOptions.Color is nil
var DefaultColor color.Color = color.Black

// Options holds the settings of an Annotator
type Options struct {
	Logger     *slog.Logger // Logger for non-fatal problems (nil = slog.Default())
	LayerName  string       // Base name of the per-page annotation layer ("" = no layer)
	FontFamily string       // Core font used for text ("" = Helvetica)
}

// DefaultOptions returns options without an annotation layer
func DefaultOptions() Options {
	return Options{
		Logger:     nil,
		LayerName:  "",
		FontFamily: DefaultFontFamily,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.Default()
	}
	return o.Logger
}

// DrawOptions controls the appearance and coordinate interpretation of a
// single drawing operation. The zero value draws black lines of thickness
// 0.1 and 12pt text in page-native coordinates.
type DrawOptions struct {
	Color     color.Color // Stroke and text color (nil = black)
	Thickness float64     // Line thickness in points (0 = 0.1)
	FontSize  float64     // Font size in points, text only (0 = 12)

	// RelativeToTopLeft marks y coordinates as measured downwards from the
	// top edge of the page.
	RelativeToTopLeft bool

	// OriginInTopLeft marks rectangles whose MinY is their top edge. It only
	// affects rectangles.
	OriginInTopLeft bool
}

// DefaultDrawOptions returns the options used for a zero DrawOptions value
func DefaultDrawOptions() DrawOptions {
	return DrawOptions{
		Color:     DefaultColor,
		Thickness: DefaultThickness,
		FontSize:  DefaultFontSize,
	}
}

func (o DrawOptions) withDefaults() DrawOptions {
	if o.Color == nil {
		o.Color = DefaultColor
	}
	if o.Thickness <= 0 {
		o.Thickness = DefaultThickness
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	return o
}

// Annotator draws annotations onto the pages of a document
type Annotator struct {
	canvas *pageCanvas
	font   string
}

// New creates an Annotator drawing onto doc and opens a surface for each of
// its pages. The Annotator takes ownership of doc: it is closed by WriteTo or
// Close, and also when New fails.
func New(doc Document, opts Options) (*Annotator, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: no document given", ErrInvalidArgument)
	}
	canvas, err := acquireCanvas(doc, opts.logger())
	if err != nil {
		return nil, err
	}
	font := opts.FontFamily
	if font == "" {
		font = DefaultFontFamily
	}
	return &Annotator{canvas: canvas, font: font}, nil
}

// PageCount returns the number of pages of the document
func (a *Annotator) PageCount() int {
	return a.canvas.pageCount()
}

// PageBox returns the bounding box of the given page
func (a *Annotator) PageBox(pageNumber int) (geometry.Rectangle, error) {
	return a.canvas.pageBox(pageNumber)
}

// PageBoxes returns the bounding boxes of all pages; element i belongs to page i+1
func (a *Annotator) PageBoxes() []geometry.Rectangle {
	return append([]geometry.Rectangle(nil), a.canvas.boxes...)
}

// target returns the surface and bounding box of a page
func (a *Annotator) target(pageNumber int) (Surface, geometry.Rectangle, error) {
	surface, err := a.canvas.obtain(pageNumber)
	if err != nil {
		return nil, geometry.Rectangle{}, err
	}
	box, err := a.canvas.pageBox(pageNumber)
	if err != nil {
		return nil, geometry.Rectangle{}, err
	}
	return surface, box, nil
}

// DrawLine draws a line on the given page
func (a *Annotator) DrawLine(line geometry.Line, pageNumber int, opts DrawOptions) error {
	surface, box, err := a.target(pageNumber)
	if err != nil {
		return err
	}
	opts = opts.withDefaults()
	adapted := AdaptLine(line, box, opts.RelativeToTopLeft)
	return surface.StrokePath([]geometry.Point{adapted.Start, adapted.End},
		Stroke{Color: opts.Color, Width: opts.Thickness})
}

// DrawRectangle draws the outline of rect on the given page.
// A nil rect is ignored.
func (a *Annotator) DrawRectangle(rect *geometry.Rectangle, pageNumber int, opts DrawOptions) error {
	if rect == nil {
		return nil
	}
	surface, box, err := a.target(pageNumber)
	if err != nil {
		return err
	}
	opts = opts.withDefaults()
	adapted := AdaptRectangle(*rect, box, opts.RelativeToTopLeft, opts.OriginInTopLeft)
	return surface.StrokePath(adapted.Corners(), Stroke{Color: opts.Color, Width: opts.Thickness})
}

// DrawBoundingBox draws the bounding box of e on the given page.
// Nothing is drawn if e is nil or has no bounding box.
func (a *Annotator) DrawBoundingBox(e layout.HasBoundingBox, pageNumber int, opts DrawOptions) error {
	if layout.IsNil(e) {
		return nil
	}
	return a.DrawRectangle(e.BoundingBox(), pageNumber, opts)
}

// DrawText draws text on the given page with its baseline starting at at
func (a *Annotator) DrawText(text string, pageNumber int, at geometry.Point, opts DrawOptions) error {
	surface, box, err := a.target(pageNumber)
	if err != nil {
		return err
	}
	opts = opts.withDefaults()
	adapted := AdaptPoint(at, box, opts.RelativeToTopLeft)
	return surface.ShowText(text, adapted, TextStyle{Color: opts.Color, Font: a.font, Size: opts.FontSize})
}

// WriteTo closes all page surfaces, writes the annotated document to w and
// releases the document. Surfaces that fail to close are logged and skipped.
// The Annotator cannot be used afterwards.
func (a *Annotator) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := a.canvas.finalizeAll(cw)
	return cw.n, err
}

// Close releases the document without writing it. It is safe to call Close
// after WriteTo.
func (a *Annotator) Close() error {
	return a.canvas.release()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
