package ordering

import (
	"testing"

	"github.com/gardar/pdfviz/pkg/geometry"
	"github.com/gardar/pdfviz/pkg/layout"
)

func at(page *layout.Page, minX float64) *layout.Paragraph {
	return &layout.Paragraph{Base: layout.Base{
		Pos: layout.NewPosition(page, geometry.NewRectangle(minX, 0, minX+10, 10)),
	}}
}

func sign(c int) int {
	switch {
	case c < 0:
		return -1
	case c > 0:
		return 1
	}
	return 0
}

func TestByMinXReadingOrder(t *testing.T) {
	p1 := layout.NewPage(1, geometry.NewRectangle(0, 0, 600, 800))
	p2 := layout.NewPage(2, geometry.NewRectangle(0, 0, 600, 800))

	e1 := at(p1, 5)
	e2 := at(p1, 10)
	e3 := at(p2, 0)
	e4 := &layout.Figure{}
	e5 := &layout.Shape{}

	tests := []struct {
		name string
		a, b layout.Positioned
		want int
	}{
		{"same page by minX", e1, e2, -1},
		{"same page reversed", e2, e1, 1},
		{"page wins over minX", e2, e3, -1},
		{"absent position after present", e4, e3, 1},
		{"present before absent position", e1, e4, -1},
		{"two absent positions equal", e4, e5, 0},
		{"nil element after present", nil, e1, 1},
		{"two nil elements equal", nil, nil, 0},
		{"typed nil element after present", (*layout.Figure)(nil), e1, 1},
		{"present before typed nil element", e3, (*layout.Paragraph)(nil), -1},
		{"typed nil equals nil", (*layout.Shape)(nil), nil, 0},
		{"identical", e1, e1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := sign(ByMinX(tc.a, tc.b)); got != tc.want {
				t.Errorf("ByMinX() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestByMinXPartialPositions(t *testing.T) {
	p1 := layout.NewPage(1, geometry.Rectangle{})
	rect := geometry.NewRectangle(3, 0, 4, 1)

	noPage := &layout.TextBlock{Base: layout.Base{Pos: &layout.Position{Rectangle: &rect}}}
	noPage2 := &layout.TextBlock{Base: layout.Base{Pos: &layout.Position{}}}
	noRect := &layout.TextBlock{Base: layout.Base{Pos: &layout.Position{Page: p1}}}
	noRect2 := &layout.Figure{Base: layout.Base{Pos: &layout.Position{Page: p1}}}
	full := at(p1, 100)

	if got := sign(ByMinX(noPage, full)); got != 1 {
		t.Errorf("missing page should sort after present page, got %d", got)
	}
	if got := sign(ByMinX(noPage, noPage2)); got != 0 {
		t.Errorf("two missing pages should be equal regardless of rectangle, got %d", got)
	}
	if got := sign(ByMinX(noRect, full)); got != 1 {
		t.Errorf("missing rectangle should sort after present rectangle, got %d", got)
	}
	if got := sign(ByMinX(noRect, noRect2)); got != 0 {
		t.Errorf("two missing rectangles should be equal, got %d", got)
	}
}

func TestByMinXIsConsistent(t *testing.T) {
	p1 := layout.NewPage(1, geometry.Rectangle{})
	p2 := layout.NewPage(2, geometry.Rectangle{})
	rect := geometry.NewRectangle(7, 0, 8, 1)

	elems := []layout.Positioned{
		at(p1, 5), at(p1, 10), at(p2, 0), at(p2, 5), at(p1, 5),
		&layout.Figure{},
		&layout.Shape{Base: layout.Base{Pos: &layout.Position{Rectangle: &rect}}},
		&layout.Shape{Base: layout.Base{Pos: &layout.Position{Page: p2}}},
		&layout.Shape{Base: layout.Base{Pos: &layout.Position{Page: p1}}},
		nil,
	}

	for _, a := range elems {
		for _, b := range elems {
			if sign(ByMinX(a, b)) != -sign(ByMinX(b, a)) {
				t.Fatalf("ByMinX is not antisymmetric for %v and %v", a, b)
			}
			for _, c := range elems {
				ab, bc, ac := sign(ByMinX(a, b)), sign(ByMinX(b, c)), sign(ByMinX(a, c))
				if ab <= 0 && bc <= 0 && ac > 0 {
					t.Fatalf("ByMinX is not transitive for %v, %v, %v", a, b, c)
				}
			}
		}
	}
}

func TestSortIsStable(t *testing.T) {
	p1 := layout.NewPage(1, geometry.Rectangle{})
	p2 := layout.NewPage(2, geometry.Rectangle{})

	first := &layout.Figure{}
	second := &layout.Figure{}
	e1, e2, e3 := at(p1, 5), at(p1, 10), at(p2, 0)

	elems := []layout.Element{first, e3, e2, second, e1}
	Sort(elems)

	want := []layout.Element{e1, e2, e3, first, second}
	for i := range want {
		if elems[i] != want[i] {
			t.Errorf("position %d: got %v, want %v", i, elems[i], want[i])
		}
	}
}

func TestSortPutsTypedNilLast(t *testing.T) {
	p1 := layout.NewPage(1, geometry.Rectangle{})
	e1, e2 := at(p1, 5), at(p1, 10)
	var missing *layout.Figure

	elems := []layout.Element{missing, e2, e1}
	Sort(elems)

	want := []layout.Element{e1, e2, missing}
	for i := range want {
		if elems[i] != want[i] {
			t.Errorf("position %d: got %v, want %v", i, elems[i], want[i])
		}
	}
}

func TestSortedElements(t *testing.T) {
	page := layout.NewPage(1, geometry.NewRectangle(0, 0, 600, 800))
	para := page.AddParagraph("b", geometry.NewRectangle(300, 0, 400, 10))
	fig := page.AddFigure(geometry.NewRectangle(10, 0, 20, 10))
	block := page.AddTextBlock("a", geometry.NewRectangle(50, 0, 60, 10))

	got := SortedElements(page)
	want := []layout.Element{fig, block, para}
	if len(got) != len(want) {
		t.Fatalf("got %d elements, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %v, want %v", i, got[i], want[i])
		}
	}

	onlyParagraphs := SortedElements(page, layout.FeatureParagraph)
	if len(onlyParagraphs) != 1 || onlyParagraphs[0] != para {
		t.Errorf("SortedElements(paragraph) = %v", onlyParagraphs)
	}
}
