package hocr

import (
	"fmt"

	"github.com/gardar/pdfviz/pkg/geometry"
	"github.com/gardar/pdfviz/pkg/layout"
)

// Layout converts the document into layout elements: areas become text
// blocks, paragraphs (inside areas or not) become paragraphs, photos and
// images become figures and separators and line drawings become shapes.
//
// The i-th hOCR page is mapped onto pageBoxes[i]: pixel coordinates are
// scaled to the page box, x is shifted to its left edge and y stays measured
// from its top, so the rectangles are drawn with RelativeToTopLeft and
// OriginInTopLeft set. Without page boxes the pixel coordinates are kept.
// Elements without a bbox get no rectangle.
func (h HOCR) Layout(pageBoxes []geometry.Rectangle) (*layout.Document, error) {
	if len(h.Pages) == 0 {
		return nil, fmt.Errorf("no pages found in hOCR data")
	}
	if len(pageBoxes) > 0 && len(h.Pages) > len(pageBoxes) {
		return nil, fmt.Errorf("hOCR has %d pages but the document only %d", len(h.Pages), len(pageBoxes))
	}

	doc := &layout.Document{Pages: make([]*layout.Page, 0, len(h.Pages))}
	for i, hp := range h.Pages {
		src := hp.BBox
		dst := geometry.NewRectangle(src.X1, src.Y1, src.X2, src.Y2)
		if len(pageBoxes) > 0 {
			dst = pageBoxes[i]
		}
		page := layout.NewPage(i+1, dst)
		scale := func(b BoundingBox) (geometry.Rectangle, bool) {
			if b.IsZero() {
				return geometry.Rectangle{}, false
			}
			return normalizeCoords(b, src, dst), true
		}

		for _, area := range hp.Areas {
			rect, ok := scale(area.BBox)
			block := page.AddTextBlock(area.Text(), rect)
			if !ok {
				block.Pos.Rectangle = nil
			}
			for _, para := range area.Paragraphs {
				addParagraph(page, para, scale)
			}
		}
		for _, para := range hp.Paragraphs {
			addParagraph(page, para, scale)
		}
		for _, f := range hp.Floats {
			rect, ok := scale(f.BBox)
			var base *layout.Base
			if f.IsFigure() {
				base = &page.AddFigure(rect).Base
			} else {
				base = &page.AddShape(f.Kind(), rect).Base
			}
			if !ok {
				base.Pos.Rectangle = nil
			}
		}

		doc.Pages = append(doc.Pages, page)
	}
	return doc, nil
}

func addParagraph(page *layout.Page, para Paragraph, scale func(BoundingBox) (geometry.Rectangle, bool)) {
	rect, ok := scale(para.BBox)
	p := page.AddParagraph(para.Text(), rect)
	if !ok {
		p.Pos.Rectangle = nil
	}
}

// normalizeCoords maps b from the pixel space of the page bbox src onto the
// page box dst, keeping y measured from the top
func normalizeCoords(b, src BoundingBox, dst geometry.Rectangle) geometry.Rectangle {
	sx, sy := 1.0, 1.0
	if w := src.Width(); w > 0 {
		sx = dst.Width() / w
	}
	if h := src.Height(); h > 0 {
		sy = dst.Height() / h
	}
	return geometry.NewRectangle(
		dst.MinX+(b.X1-src.X1)*sx,
		(b.Y1-src.Y1)*sy,
		dst.MinX+(b.X2-src.X1)*sx,
		(b.Y2-src.Y1)*sy,
	)
}
