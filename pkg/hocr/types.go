package hocr

// HOCR represents the entire hOCR document structure
type HOCR struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // ocr-system, ocr-capabilities and similar meta tags
	Pages    []Page            // Pages in document order
}

// Page is one analyzed page
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID         string      // Unique identifier
	PageNumber int         // Physical page number (ppageno), 0-based
	ImageName  string      // Source image filename
	BBox       BoundingBox // Page coordinates in image pixels
	Areas      []Area      // Content areas (columns, text blocks)
	Paragraphs []Paragraph // Paragraphs outside any area
	Floats     []Float     // Photos, images, separators and line drawings
}

// Area represents a content area (column or region)
// Corresponds to hOCR element with class: 'ocr_carea'
type Area struct {
	ID         string      // Unique identifier
	Lang       string      // Language code
	BBox       BoundingBox // Area coordinates
	Paragraphs []Paragraph // Paragraphs in this area
	Lines      []Line      // Text lines directly under area
	Words      []Word      // Words directly under area (no line parent)
}

// Paragraph represents a paragraph within an area or page
// Corresponds to hOCR element with class: 'ocr_par'
type Paragraph struct {
	ID    string      // Unique identifier
	Lang  string      // Language code
	BBox  BoundingBox // Paragraph coordinates
	Lines []Line      // Text lines in this paragraph
	Words []Word      // Words directly under paragraph (no line parent)
}

// Line represents a line of text
// Corresponds to hOCR elements with class 'ocr_line', 'ocr_header',
// 'ocr_caption' or 'ocr_textfloat'
type Line struct {
	ID       string      // Unique identifier
	BBox     BoundingBox // Line coordinates
	Baseline string      // Baseline information
	Words    []Word      // Words in this line
}

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string      // Unique identifier
	Text       string      // The actual text content
	BBox       BoundingBox // Word coordinates
	Confidence float64     // Recognition confidence (0-100)
}

// Float is a non-text region of a page
type Float struct {
	ID    string      // Unique identifier
	Class string      // hOCR class, e.g. "ocr_photo" or "ocr_separator"
	BBox  BoundingBox // Region coordinates
}

// IsFigure reports whether the region is a picture rather than a vector shape
func (f Float) IsFigure() bool {
	return figureClasses[f.Class]
}

// Kind returns the class without its "ocr_" prefix
func (f Float) Kind() string {
	if len(f.Class) > 4 && f.Class[:4] == "ocr_" {
		return f.Class[4:]
	}
	return f.Class
}

// BoundingBox represents a rectangle in the page image
// Used to store hOCR 'bbox' property values
type BoundingBox struct {
	X1 float64 // Left coordinate
	Y1 float64 // Top coordinate
	X2 float64 // Right coordinate
	Y2 float64 // Bottom coordinate
}

// NewBoundingBox creates a bounding box from coordinates.
// x1, y1 represent the top-left corner, while x2, y2 represent the bottom-right corner.
func NewBoundingBox(x1, y1, x2, y2 float64) BoundingBox {
	return BoundingBox{
		X1: x1,
		Y1: y1,
		X2: x2,
		Y2: y2,
	}
}

// IsZero reports whether no bbox was given
func (b BoundingBox) IsZero() bool {
	return b == BoundingBox{}
}

func (b BoundingBox) Width() float64  { return b.X2 - b.X1 }
func (b BoundingBox) Height() float64 { return b.Y2 - b.Y1 }
