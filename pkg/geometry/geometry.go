// Package geometry provides the value types used to place annotations on a page:
// points, lines and axis-aligned rectangles.
//
// All types are plain values. Functions that transform them return new values
// and never modify their inputs.
package geometry

import "fmt"

// Point is a position on a page
type Point struct {
	X float64
	Y float64
}

// NewPoint creates a point from its coordinates
func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}

// Line is a straight segment between two points
type Line struct {
	Start Point
	End   Point
}

// NewLine creates a line from the coordinates of its endpoints
func NewLine(x1, y1, x2, y2 float64) Line {
	return Line{Start: NewPoint(x1, y1), End: NewPoint(x2, y2)}
}

func (l Line) String() string {
	return fmt.Sprintf("%s-%s", l.Start, l.End)
}

// Rectangle is an axis-aligned box given by its lower and upper bounds.
// A normalized rectangle has MinX <= MaxX and MinY <= MaxY; the type itself
// does not enforce it.
type Rectangle struct {
	MinX float64 // Left coordinate
	MinY float64 // Lower coordinate
	MaxX float64 // Right coordinate
	MaxY float64 // Upper coordinate
}

// NewRectangle creates a rectangle from its bounds
func NewRectangle(minX, minY, maxX, maxY float64) Rectangle {
	return Rectangle{
		MinX: minX,
		MinY: minY,
		MaxX: maxX,
		MaxY: maxY,
	}
}

// Width returns MaxX - MinX
func (r Rectangle) Width() float64 {
	return r.MaxX - r.MinX
}

// Height returns MaxY - MinY. It is negative for rectangles whose vertical
// bounds are inverted.
func (r Rectangle) Height() float64 {
	return r.MaxY - r.MinY
}

// IsNormalized reports whether the lower bounds do not exceed the upper bounds.
func (r Rectangle) IsNormalized() bool {
	return r.MinX <= r.MaxX && r.MinY <= r.MaxY
}

// Union returns the smallest rectangle containing both r and o.
// Both rectangles are expected to be normalized.
func (r Rectangle) Union(o Rectangle) Rectangle {
	return Rectangle{
		MinX: min(r.MinX, o.MinX),
		MinY: min(r.MinY, o.MinY),
		MaxX: max(r.MaxX, o.MaxX),
		MaxY: max(r.MaxY, o.MaxY),
	}
}

// Corners returns the closed outline of the rectangle, starting and ending at
// (MinX, MinY) and running through (MaxX, MinY), (MaxX, MaxY) and (MinX, MaxY).
func (r Rectangle) Corners() []Point {
	return []Point{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
		{X: r.MinX, Y: r.MinY},
	}
}

func (r Rectangle) String() string {
	return fmt.Sprintf("[%.2f %.2f %.2f %.2f]", r.MinX, r.MinY, r.MaxX, r.MaxY)
}
