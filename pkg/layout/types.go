// Package layout holds the document model produced by a layout analyzer:
// pages and the positioned elements (figures, shapes, text blocks and
// paragraphs) found on them.
//
// The model is filled by an analyzer adapter (see the hocr and gdocai
// packages) and read by the annotator, the visualizer and the ordering
// helpers. Positions are optional at every level: an element may come without
// a position, and a position may lack its page or its rectangle.
package layout

import (
	"fmt"
	"reflect"

	"github.com/gardar/pdfviz/pkg/geometry"
)

// Document is an analyzed document
type Document struct {
	Pages []*Page // Pages in page-number order
}

// Page is one page of an analyzed document
type Page struct {
	Number     int                // Page number (1-based)
	BBox       geometry.Rectangle // Page bounding box in page space
	Figures    []*Figure          // Figures on this page
	Shapes     []*Shape           // Vector shapes on this page
	TextBlocks []*TextBlock       // Text blocks on this page
	Paragraphs []*Paragraph       // Paragraphs on this page
}

// NewPage creates an empty page
func NewPage(number int, bbox geometry.Rectangle) *Page {
	return &Page{Number: number, BBox: bbox}
}

// Position places an element on a page
type Position struct {
	Page      *Page               // Page of the element, nil if unknown
	Rectangle *geometry.Rectangle // Bounding box of the element, nil if unknown
}

// NewPosition creates a position on the given page with a copy of the rectangle
func NewPosition(page *Page, rect geometry.Rectangle) *Position {
	return &Position{Page: page, Rectangle: &rect}
}

// PageNumber returns the number of the position's page, or 0 if it has none
func (p *Position) PageNumber() int {
	if p == nil || p.Page == nil {
		return 0
	}
	return p.Page.Number
}

func (p *Position) String() string {
	if p == nil {
		return "<no position>"
	}
	rect := "<no rectangle>"
	if p.Rectangle != nil {
		rect = p.Rectangle.String()
	}
	return fmt.Sprintf("page %d %s", p.PageNumber(), rect)
}

// Positioned is anything that may carry a position
type Positioned interface {
	Position() *Position
}

// Element is a positioned element found by the layout analyzer
type Element interface {
	Positioned
	Feature() Feature
	Text() string
}

// HasBoundingBox is anything that may carry a bounding box
type HasBoundingBox interface {
	BoundingBox() *geometry.Rectangle
}

// Base implements the position bookkeeping shared by all element types
type Base struct {
	Pos *Position // Position of the element, nil if unknown
}

// Position returns the element's position
func (b *Base) Position() *Position {
	if b == nil {
		return nil
	}
	return b.Pos
}

// BoundingBox returns the element's rectangle, or nil if it has none
func (b *Base) BoundingBox() *geometry.Rectangle {
	if b == nil || b.Pos == nil {
		return nil
	}
	return b.Pos.Rectangle
}

// Figure is a raster or embedded graphic
type Figure struct {
	Base
}

// Feature returns FeatureFigure
func (*Figure) Feature() Feature { return FeatureFigure }

// Text returns the empty string; figures carry no text
func (*Figure) Text() string { return "" }

func (f *Figure) String() string {
	return fmt.Sprintf("Figure(pos: %s)", f.Pos)
}

// Shape is a vector graphic such as a ruling line or a frame
type Shape struct {
	Base
	Kind string // Analyzer specific kind, e.g. "separator"
}

// Feature returns FeatureShape
func (*Shape) Feature() Feature { return FeatureShape }

// Text returns the empty string; shapes carry no text
func (*Shape) Text() string { return "" }

func (s *Shape) String() string {
	return fmt.Sprintf("Shape(kind: %q, pos: %s)", s.Kind, s.Pos)
}

// TextBlock is a block of text, usually a column area
type TextBlock struct {
	Base
	Content string // Text of the block
}

// Feature returns FeatureTextBlock
func (*TextBlock) Feature() Feature { return FeatureTextBlock }

// Text returns the block's text
func (b *TextBlock) Text() string { return b.Content }

func (b *TextBlock) String() string {
	return fmt.Sprintf("TextBlock(pos: %s)", b.Pos)
}

// Paragraph is a paragraph of text
type Paragraph struct {
	Base
	Content string // Text of the paragraph
}

// Feature returns FeatureParagraph
func (*Paragraph) Feature() Feature { return FeatureParagraph }

// Text returns the paragraph's text
func (p *Paragraph) Text() string { return p.Content }

func (p *Paragraph) String() string {
	return fmt.Sprintf("Paragraph(pos: %s)", p.Pos)
}

// IsNil reports whether v is nil or an interface holding a nil pointer, such
// as a (*Figure)(nil) stored in an Element.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
