package pdfdraw

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"os"
	"regexp"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/pdfviz/pkg/geometry"
)

var (
	catalogPattern  = regexp.MustCompile(`/Type\s*/Catalog\b`)
	pageTreePattern = regexp.MustCompile(`/Type\s*/Pages\b`)
	objStmPattern   = regexp.MustCompile(`/Type\s*/ObjStm\b`)
)

// Open parses a PDF document and returns an Annotator drawing onto its pages.
//
// Every page is imported as a template onto a new page of the same size, so
// the output contains the original content with the annotations on top.
func Open(data []byte, opts Options) (*Annotator, error) {
	doc, err := openFpdfDocument(data, opts)
	if err != nil {
		return nil, err
	}
	return New(doc, opts)
}

// OpenFile reads the PDF document at path and calls Open.
func OpenFile(path string, opts Options) (*Annotator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Open(data, opts)
}

// checkStructure scans the raw file for the document catalog and page tree.
// Files with object streams may keep both compressed, so they are left to the
// importer.
func checkStructure(data []byte) error {
	if objStmPattern.Match(data) {
		return nil
	}
	if !catalogPattern.Match(data) {
		return fmt.Errorf("%w: no document catalog given", ErrInvalidArgument)
	}
	if !pageTreePattern.Match(data) {
		return fmt.Errorf("%w: no pages given", ErrInvalidArgument)
	}
	return nil
}

// fpdfDocument is a Document backed by fpdf, with the source pages imported
// through gofpdi
type fpdfDocument struct {
	pdf    *fpdf.Fpdf
	boxes  []geometry.Rectangle
	layers []int
	closed bool
}

func openFpdfDocument(data []byte, opts Options) (doc *fpdfDocument, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no document given", ErrInvalidArgument)
	}
	if err := checkStructure(data); err != nil {
		return nil, err
	}

	// gofpdi panics on malformed input
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("%w: failed to import document: %v", ErrInvalidArgument, r)
		}
	}()

	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(data))

	// The source is parsed by the first import; page sizes are known afterwards.
	first := importer.ImportPageFromStream(pdf, &rs, 1, "/CropBox")
	sizes := importer.GetPageSizes()
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: no pages given", ErrInvalidArgument)
	}

	doc = &fpdfDocument{
		pdf:    pdf,
		boxes:  make([]geometry.Rectangle, 0, len(sizes)),
		layers: make([]int, 0, len(sizes)),
	}
	for pageNum := 1; pageNum <= len(sizes); pageNum++ {
		box, ok := pageBoxFromSizes(sizes[pageNum])
		if !ok {
			return nil, fmt.Errorf("%w: page %d has no media box", ErrInvalidArgument, pageNum)
		}
		w, h := box.Width(), box.Height()

		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})
		tpl := first
		if pageNum > 1 {
			tpl = importer.ImportPageFromStream(pdf, &rs, pageNum, "/CropBox")
		}
		importer.UseImportedTemplate(pdf, tpl, 0, 0, w, h)

		layer := -1
		if opts.LayerName != "" {
			layer = pdf.AddLayer(fmt.Sprintf("%s (Page %d)", opts.LayerName, pageNum), true)
		}
		doc.boxes = append(doc.boxes, box)
		doc.layers = append(doc.layers, layer)
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: failed to import document: %w", ErrInvalidArgument, err)
	}
	return doc, nil
}

// pageBoxFromSizes picks the crop box of a page, falling back to its media box
func pageBoxFromSizes(boxes map[string]map[string]float64) (geometry.Rectangle, bool) {
	for _, name := range []string{"/CropBox", "/MediaBox"} {
		dims, ok := boxes[name]
		if !ok || dims["w"] <= 0 || dims["h"] <= 0 {
			continue
		}
		x, y := dims["x"], dims["y"]
		return geometry.NewRectangle(x, y, x+dims["w"], y+dims["h"]), true
	}
	return geometry.Rectangle{}, false
}

func (d *fpdfDocument) PageCount() int {
	return len(d.boxes)
}

func (d *fpdfDocument) PageBox(pageNumber int) geometry.Rectangle {
	return d.boxes[pageNumber-1]
}

func (d *fpdfDocument) OpenSurface(pageNumber int) (Surface, error) {
	if d.closed {
		return nil, ErrClosed
	}
	if pageNumber < 1 || pageNumber > len(d.boxes) {
		return nil, fmt.Errorf("%w: page number %d is outside [1, %d]",
			ErrInvalidArgument, pageNumber, len(d.boxes))
	}
	return &fpdfSurface{
		doc:   d,
		page:  pageNumber,
		box:   d.boxes[pageNumber-1],
		layer: d.layers[pageNumber-1],
	}, nil
}

func (d *fpdfDocument) Save(w io.Writer) error {
	if d.closed {
		return ErrClosed
	}
	// Output stops at the current page, which is wherever the last draw went
	d.pdf.SetPage(len(d.boxes))
	return d.pdf.Output(w)
}

func (d *fpdfDocument) Close() error {
	if d.closed {
		return ErrClosed
	}
	d.closed = true
	d.pdf = nil
	return nil
}

// fpdfSurface draws onto one page of an fpdfDocument. fpdf measures y
// downwards from the top of the page, so page-native coordinates are
// converted on the way in.
type fpdfSurface struct {
	doc    *fpdfDocument
	page   int
	box    geometry.Rectangle
	layer  int
	closed bool
}

func (s *fpdfSurface) toFpdf(p geometry.Point) (float64, float64) {
	return p.X - s.box.MinX, s.box.MaxY - p.Y
}

func (s *fpdfSurface) begin() (*fpdf.Fpdf, error) {
	if s.closed || s.doc.closed {
		return nil, fmt.Errorf("%w: canvas of page %d is closed", ErrIO, s.page)
	}
	pdf := s.doc.pdf
	pdf.SetPage(s.page)
	if s.layer >= 0 {
		pdf.BeginLayer(s.layer)
	}
	return pdf, nil
}

func (s *fpdfSurface) end(pdf *fpdf.Fpdf, op string) error {
	if s.layer >= 0 {
		pdf.EndLayer()
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %s on page %d: %w", ErrIO, op, s.page, err)
	}
	return nil
}

func (s *fpdfSurface) StrokePath(points []geometry.Point, style Stroke) error {
	if len(points) < 2 {
		return nil
	}
	pdf, err := s.begin()
	if err != nil {
		return err
	}

	r, g, b := rgb(style.Color)
	pdf.SetDrawColor(r, g, b)
	pdf.SetFillColor(r, g, b)
	pdf.SetLineWidth(style.Width)

	x, y := s.toFpdf(points[0])
	pdf.MoveTo(x, y)
	for _, p := range points[1:] {
		x, y = s.toFpdf(p)
		pdf.LineTo(x, y)
	}
	pdf.DrawPath("D")

	return s.end(pdf, "stroke")
}

func (s *fpdfSurface) ShowText(text string, at geometry.Point, style TextStyle) error {
	pdf, err := s.begin()
	if err != nil {
		return err
	}

	// Core fonts only cover ISO-8859-1
	latin1, encErr := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).String(text)
	if encErr != nil {
		latin1 = text
	}

	r, g, b := rgb(style.Color)
	pdf.SetTextColor(r, g, b)
	pdf.SetFont(style.Font, "", style.Size)
	// fpdf skips the font operator when the font did not change, but every
	// page content stream needs its own.
	pdf.SetFontSize(style.Size)

	x, y := s.toFpdf(at)
	pdf.Text(x, y, latin1)

	return s.end(pdf, "show text")
}

func (s *fpdfSurface) Close() error {
	if s.closed {
		return fmt.Errorf("%w: canvas of page %d already closed", ErrIO, s.page)
	}
	s.closed = true
	return nil
}

// rgb converts c to 8-bit channels, black for nil
func rgb(c color.Color) (int, int, int) {
	if c == nil {
		c = color.Black
	}
	cr, cg, cb, _ := c.RGBA()
	return int(cr >> 8), int(cg >> 8), int(cb >> 8)
}
