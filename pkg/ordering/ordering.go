// Package ordering defines the canonical spatial order of positioned elements:
// by page number, then by the left edge of the bounding box.
//
// Missing data never causes a panic. An element, position, page or rectangle
// that is absent sorts after one that is present, and two absent values compare
// equal, which stops the comparison at that level.
package ordering

import (
	"cmp"
	"slices"

	"github.com/gardar/pdfviz/pkg/layout"
)

// ByMinX compares two elements by page number, then by the MinX of their
// bounding rectangles. It returns a negative number if a sorts before b, a
// positive number if it sorts after b and zero if they are equal.
func ByMinX(a, b layout.Positioned) int {
	if c, done := absentLast(layout.IsNil(a), layout.IsNil(b)); done {
		return c
	}

	posA, posB := a.Position(), b.Position()
	if c, done := absentLast(posA == nil, posB == nil); done {
		return c
	}

	if c, done := absentLast(posA.Page == nil, posB.Page == nil); done {
		return c
	}
	if c := cmp.Compare(posA.Page.Number, posB.Page.Number); c != 0 {
		return c
	}

	if c, done := absentLast(posA.Rectangle == nil, posB.Rectangle == nil); done {
		return c
	}
	return cmp.Compare(posA.Rectangle.MinX, posB.Rectangle.MinX)
}

// absentLast applies the absent-sorts-after-present rule to one level of the
// comparison. done is false only when both values are present.
func absentLast(aAbsent, bAbsent bool) (c int, done bool) {
	switch {
	case aAbsent && bAbsent:
		return 0, true
	case aAbsent:
		return 1, true
	case bAbsent:
		return -1, true
	}
	return 0, false
}

// Sort sorts elems in place by ByMinX. Equal elements keep their relative order.
func Sort[E layout.Positioned](elems []E) {
	slices.SortStableFunc(elems, func(a, b E) int {
		return ByMinX(a, b)
	})
}

// SortedElements returns the page's elements of the given features sorted by
// ByMinX. The page itself is not modified.
func SortedElements(page *layout.Page, features ...layout.Feature) []layout.Element {
	if len(features) == 0 {
		features = layout.AllFeatures
	}
	var elems []layout.Element
	for _, f := range features {
		elems = append(elems, page.ElementsOf(f)...)
	}
	Sort(elems)
	return elems
}
