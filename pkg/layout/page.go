package layout

import "github.com/gardar/pdfviz/pkg/geometry"

// Page returns the page with the given number, or nil if there is none
func (d *Document) Page(number int) *Page {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// AddFigure adds a figure at rect to the page
func (p *Page) AddFigure(rect geometry.Rectangle) *Figure {
	f := &Figure{Base{Pos: NewPosition(p, rect)}}
	p.Figures = append(p.Figures, f)
	return f
}

// AddShape adds a shape of the given kind at rect to the page
func (p *Page) AddShape(kind string, rect geometry.Rectangle) *Shape {
	s := &Shape{Base: Base{Pos: NewPosition(p, rect)}, Kind: kind}
	p.Shapes = append(p.Shapes, s)
	return s
}

// AddTextBlock adds a text block at rect to the page
func (p *Page) AddTextBlock(text string, rect geometry.Rectangle) *TextBlock {
	b := &TextBlock{Base: Base{Pos: NewPosition(p, rect)}, Content: text}
	p.TextBlocks = append(p.TextBlocks, b)
	return b
}

// AddParagraph adds a paragraph at rect to the page
func (p *Page) AddParagraph(text string, rect geometry.Rectangle) *Paragraph {
	para := &Paragraph{Base: Base{Pos: NewPosition(p, rect)}, Content: text}
	p.Paragraphs = append(p.Paragraphs, para)
	return para
}

// ElementsOf returns the page's elements of the given feature in page order
func (p *Page) ElementsOf(f Feature) []Element {
	var result []Element
	switch f {
	case FeatureFigure:
		for _, e := range p.Figures {
			result = append(result, e)
		}
	case FeatureShape:
		for _, e := range p.Shapes {
			result = append(result, e)
		}
	case FeatureTextBlock:
		for _, e := range p.TextBlocks {
			result = append(result, e)
		}
	case FeatureParagraph:
		for _, e := range p.Paragraphs {
			result = append(result, e)
		}
	}
	return result
}

// Elements returns all elements of the page, grouped by feature in the order
// of AllFeatures
func (p *Page) Elements() []Element {
	var result []Element
	for _, f := range AllFeatures {
		result = append(result, p.ElementsOf(f)...)
	}
	return result
}
