package pdfdraw

import "github.com/gardar/pdfviz/pkg/geometry"

// The adapter functions convert caller coordinates into page-native
// coordinates, where the origin is in the lower left corner of the page.
// Callers whose coordinates are measured from the top of the page set
// relativeToTopLeft; y values are then flipped against the top edge
// (pageBox.MaxY) of the page.

// AdaptPoint returns a copy of p, with y flipped if relativeToTopLeft is set.
func AdaptPoint(p geometry.Point, pageBox geometry.Rectangle, relativeToTopLeft bool) geometry.Point {
	adapted := p
	if relativeToTopLeft {
		adapted.Y = pageBox.MaxY - p.Y
	}
	return adapted
}

// AdaptLine applies AdaptPoint to both endpoints of l.
func AdaptLine(l geometry.Line, pageBox geometry.Rectangle, relativeToTopLeft bool) geometry.Line {
	return geometry.Line{
		Start: AdaptPoint(l.Start, pageBox, relativeToTopLeft),
		End:   AdaptPoint(l.End, pageBox, relativeToTopLeft),
	}
}

// AdaptRectangle returns an adapted copy of r.
//
// If relativeToTopLeft is set, MinY and MaxY are flipped against the top edge
// of the page, each on its own. If originInTopLeft is not set, MaxY is then
// recomputed as the (possibly flipped) MinY plus the height of r. The result
// is not normalized: depending on the flags MinY may exceed MaxY.
func AdaptRectangle(r geometry.Rectangle, pageBox geometry.Rectangle, relativeToTopLeft, originInTopLeft bool) geometry.Rectangle {
	adapted := r
	if relativeToTopLeft {
		adapted.MinY = pageBox.MaxY - r.MinY
		adapted.MaxY = pageBox.MaxY - r.MaxY
	}
	if !originInTopLeft {
		adapted.MaxY = adapted.MinY + r.Height()
	}
	return adapted
}
