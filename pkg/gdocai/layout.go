package gdocai

import (
	"fmt"
	"math"
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"

	"github.com/gardar/pdfviz/pkg/geometry"
	"github.com/gardar/pdfviz/pkg/layout"
)

// LayoutFromProto converts a Document AI response into layout elements:
// blocks become text blocks, paragraphs become paragraphs, tables become
// "table" shapes and visual elements become figures, except for checkboxes
// and lines which become shapes of their type.
//
// Document AI measures from the top-left corner of the page, so the
// rectangles are drawn with RelativeToTopLeft and OriginInTopLeft set. The
// i-th page is scaled to pageBoxes[i]; without page boxes the page dimension
// reported by Document AI is used.
func LayoutFromProto(doc *documentaipb.Document, pageBoxes []geometry.Rectangle) (*layout.Document, error) {
	if doc == nil || len(doc.GetPages()) == 0 {
		return nil, fmt.Errorf("no pages found in Document AI response")
	}
	pages := doc.GetPages()
	if len(pageBoxes) > 0 && len(pages) > len(pageBoxes) {
		return nil, fmt.Errorf("Document AI returned %d pages but the document only has %d", len(pages), len(pageBoxes))
	}

	result := &layout.Document{Pages: make([]*layout.Page, 0, len(pages))}
	for i, p := range pages {
		dim := p.GetDimension()
		box := geometry.NewRectangle(0, 0, float64(dim.GetWidth()), float64(dim.GetHeight()))
		if len(pageBoxes) > 0 {
			box = pageBoxes[i]
		}
		number := int(p.GetPageNumber())
		if number <= 0 {
			number = i + 1
		}
		page := layout.NewPage(number, box)

		for _, b := range p.GetBlocks() {
			base := &page.AddTextBlock(textFromLayout(b.GetLayout(), doc.GetText()), geometry.Rectangle{}).Base
			place(base, b.GetLayout(), dim, box)
		}
		for _, para := range p.GetParagraphs() {
			base := &page.AddParagraph(textFromLayout(para.GetLayout(), doc.GetText()), geometry.Rectangle{}).Base
			place(base, para.GetLayout(), dim, box)
		}
		for _, t := range p.GetTables() {
			place(&page.AddShape("table", geometry.Rectangle{}).Base, t.GetLayout(), dim, box)
		}
		for _, v := range p.GetVisualElements() {
			var base *layout.Base
			if kind := v.GetType(); isShapeKind(kind) {
				base = &page.AddShape(kind, geometry.Rectangle{}).Base
			} else {
				base = &page.AddFigure(geometry.Rectangle{}).Base
			}
			place(base, v.GetLayout(), dim, box)
		}

		result.Pages = append(result.Pages, page)
	}
	return result, nil
}

func isShapeKind(kind string) bool {
	kind = strings.ToLower(kind)
	return strings.Contains(kind, "checkbox") || strings.Contains(kind, "line")
}

// place sets the rectangle of base from the bounding polygon of l, or clears
// it when there is none
func place(base *layout.Base, l *documentaipb.Document_Page_Layout, dim *documentaipb.Document_Page_Dimension, box geometry.Rectangle) {
	rect, ok := boundingRect(l.GetBoundingPoly(), dim, box)
	if !ok {
		base.Pos.Rectangle = nil
		return
	}
	*base.Pos.Rectangle = rect
}

// boundingRect scales a polygon onto box. Normalized vertices are preferred;
// pixel vertices are scaled through the page dimension.
func boundingRect(poly *documentaipb.BoundingPoly, dim *documentaipb.Document_Page_Dimension, box geometry.Rectangle) (geometry.Rectangle, bool) {
	var xs, ys []float64
	if nv := poly.GetNormalizedVertices(); len(nv) > 0 {
		for _, v := range nv {
			xs = append(xs, float64(v.GetX()))
			ys = append(ys, float64(v.GetY()))
		}
	} else if w, h := float64(dim.GetWidth()), float64(dim.GetHeight()); w > 0 && h > 0 {
		for _, v := range poly.GetVertices() {
			xs = append(xs, float64(v.GetX())/w)
			ys = append(ys, float64(v.GetY())/h)
		}
	}
	if len(xs) == 0 {
		return geometry.Rectangle{}, false
	}

	minX, maxX := extent(xs)
	minY, maxY := extent(ys)
	width, height := box.Width(), box.Height()
	return geometry.NewRectangle(
		box.MinX+minX*width,
		minY*height,
		box.MinX+maxX*width,
		maxY*height,
	), true
}

func extent(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
