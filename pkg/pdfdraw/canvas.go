package pdfdraw

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/gardar/pdfviz/pkg/geometry"
)

// pageCanvas owns the document and one surface per page. Surfaces are stored
// by page-1; page numbers are 1-based everywhere else.
type pageCanvas struct {
	doc      Document
	surfaces []Surface
	boxes    []geometry.Rectangle
	logger   *slog.Logger
	released bool
}

// acquireCanvas opens a surface for every page of doc. If any page fails, the
// surfaces opened so far and doc itself are released before returning.
func acquireCanvas(doc Document, logger *slog.Logger) (*pageCanvas, error) {
	n := doc.PageCount()
	pc := &pageCanvas{
		doc:      doc,
		surfaces: make([]Surface, 0, n),
		boxes:    make([]geometry.Rectangle, 0, n),
		logger:   logger,
	}
	if n < 1 {
		pc.release()
		return nil, fmt.Errorf("%w: document has no pages", ErrInvalidArgument)
	}

	for page := 1; page <= n; page++ {
		surface, err := doc.OpenSurface(page)
		if err != nil {
			pc.release()
			return nil, fmt.Errorf("failed to open canvas of page %d: %w", page, err)
		}
		pc.surfaces = append(pc.surfaces, surface)
		pc.boxes = append(pc.boxes, doc.PageBox(page))
	}
	logger.Debug("canvases acquired", "pages", n)
	return pc, nil
}

func (pc *pageCanvas) pageCount() int {
	return len(pc.surfaces)
}

func (pc *pageCanvas) checkPage(pageNumber int) error {
	if pc.released {
		return ErrClosed
	}
	if pageNumber < 1 || pageNumber > len(pc.surfaces) {
		return fmt.Errorf("%w: page number %d is outside [1, %d]",
			ErrInvalidArgument, pageNumber, len(pc.surfaces))
	}
	return nil
}

// obtain returns the surface of the given page
func (pc *pageCanvas) obtain(pageNumber int) (Surface, error) {
	if err := pc.checkPage(pageNumber); err != nil {
		return nil, err
	}
	return pc.surfaces[pageNumber-1], nil
}

// pageBox returns the bounding box of the given page
func (pc *pageCanvas) pageBox(pageNumber int) (geometry.Rectangle, error) {
	if err := pc.checkPage(pageNumber); err != nil {
		return geometry.Rectangle{}, err
	}
	return pc.boxes[pageNumber-1], nil
}

// closeSurfaces closes every surface in page order. A failing surface is
// logged and skipped.
func (pc *pageCanvas) closeSurfaces() {
	for i, s := range pc.surfaces {
		if err := s.Close(); err != nil {
			pc.logger.Warn("failed to close canvas", "page", i+1, "error", err)
		}
	}
}

// finalizeAll closes all surfaces, saves the document to w and releases the
// document. The document is released even if saving fails.
func (pc *pageCanvas) finalizeAll(w io.Writer) (err error) {
	if pc.released {
		return ErrClosed
	}
	pc.released = true

	defer func() {
		if cerr := pc.doc.Close(); cerr != nil {
			if err == nil {
				err = fmt.Errorf("%w: failed to close document: %w", ErrIO, cerr)
			} else {
				pc.logger.Warn("failed to close document", "error", cerr)
			}
		}
	}()

	pc.closeSurfaces()

	if err := pc.doc.Save(w); err != nil {
		return fmt.Errorf("%w: failed to save document: %w", ErrIO, err)
	}
	pc.logger.Debug("document saved", "pages", len(pc.surfaces))
	return nil
}

// release closes all surfaces and the document without saving.
// It does nothing if the canvas was already finalized or released.
func (pc *pageCanvas) release() error {
	if pc.released {
		return nil
	}
	pc.released = true

	pc.closeSurfaces()
	if err := pc.doc.Close(); err != nil && !errors.Is(err, ErrClosed) {
		return fmt.Errorf("%w: failed to close document: %w", ErrIO, err)
	}
	return nil
}
