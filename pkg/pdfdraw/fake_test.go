package pdfdraw

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gardar/pdfviz/pkg/geometry"
)

// op is one recorded surface call
type op struct {
	Page   int
	Kind   string // "stroke", "text" or "close"
	Points []geometry.Point
	Stroke Stroke
	Text   string
	Style  TextStyle
}

type fakeDocument struct {
	boxes []geometry.Rectangle

	ops        []op
	surfaces   []*fakeSurface
	saves      int
	closes     int
	openFailAt int          // page whose OpenSurface fails, 0 = none
	closeFail  map[int]bool // pages whose surface Close fails
	writeFail  map[int]bool // pages whose draw calls fail
	saveErr    error        // returned by Save
	closeErr   error        // returned by Close
	saveData   string       // written by a successful Save
	closeOrder []int        // pages in the order their surfaces were closed
}

func newFakeDocument(boxes ...geometry.Rectangle) *fakeDocument {
	return &fakeDocument{
		boxes:     boxes,
		closeFail: make(map[int]bool),
		writeFail: make(map[int]bool),
		saveData:  "%PDF-fake",
	}
}

func (d *fakeDocument) PageCount() int { return len(d.boxes) }

func (d *fakeDocument) PageBox(pageNumber int) geometry.Rectangle { return d.boxes[pageNumber-1] }

func (d *fakeDocument) OpenSurface(pageNumber int) (Surface, error) {
	if pageNumber == d.openFailAt {
		return nil, fmt.Errorf("cannot open page %d", pageNumber)
	}
	s := &fakeSurface{doc: d, page: pageNumber}
	d.surfaces = append(d.surfaces, s)
	return s, nil
}

func (d *fakeDocument) Save(w io.Writer) error {
	d.saves++
	if d.saveErr != nil {
		return d.saveErr
	}
	_, err := io.WriteString(w, d.saveData)
	return err
}

func (d *fakeDocument) Close() error {
	d.closes++
	return d.closeErr
}

func (d *fakeDocument) writes() []op {
	var result []op
	for _, o := range d.ops {
		if o.Kind != "close" {
			result = append(result, o)
		}
	}
	return result
}

type fakeSurface struct {
	doc    *fakeDocument
	page   int
	closed bool
}

var errWrite = errors.New("write failed")

func (s *fakeSurface) StrokePath(points []geometry.Point, style Stroke) error {
	if s.doc.writeFail[s.page] {
		return fmt.Errorf("%w: %w", ErrIO, errWrite)
	}
	s.doc.ops = append(s.doc.ops, op{Page: s.page, Kind: "stroke", Points: points, Stroke: style})
	return nil
}

func (s *fakeSurface) ShowText(text string, at geometry.Point, style TextStyle) error {
	if s.doc.writeFail[s.page] {
		return fmt.Errorf("%w: %w", ErrIO, errWrite)
	}
	s.doc.ops = append(s.doc.ops, op{Page: s.page, Kind: "text", Points: []geometry.Point{at}, Text: text, Style: style})
	return nil
}

func (s *fakeSurface) Close() error {
	s.closed = true
	s.doc.closeOrder = append(s.doc.closeOrder, s.page)
	s.doc.ops = append(s.doc.ops, op{Page: s.page, Kind: "close"})
	if s.doc.closeFail[s.page] {
		return errors.New("close failed")
	}
	return nil
}

func quietOptions() Options {
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return opts
}

// twoPages returns a document whose first page is 600x800 and second 400x500
func twoPages() *fakeDocument {
	return newFakeDocument(
		geometry.NewRectangle(0, 0, 600, 800),
		geometry.NewRectangle(0, 0, 400, 500),
	)
}
