// Package visualize draws analyzed layouts onto the pages they were found
// on: one box per element in the color of its feature, optionally labeled
// with the feature name and the element's place in reading order.
package visualize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gardar/pdfviz/pkg/geometry"
	"github.com/gardar/pdfviz/pkg/layout"
	"github.com/gardar/pdfviz/pkg/ordering"
	"github.com/gardar/pdfviz/pkg/pdfdraw"
)

// Stats counts what Visualize drew
type Stats struct {
	Pages   int                    // Pages with at least one selected element
	Drawn   map[layout.Feature]int // Boxes drawn per feature
	Skipped int                    // Selected elements without a rectangle
}

// Total returns the number of boxes drawn
func (s Stats) Total() int {
	total := 0
	for _, n := range s.Drawn {
		total += n
	}
	return total
}

type featureStyle struct {
	draw  pdfdraw.DrawOptions
	label bool
}

// Visualize draws the selected features of doc with ann. The elements of a
// page are drawn in reading order; an element whose position names another
// page is drawn there. Drawing stops at the first error.
func Visualize(ann *pdfdraw.Annotator, doc *layout.Document, cfg Config) (Stats, error) {
	stats := Stats{Drawn: make(map[layout.Feature]int)}
	if ann == nil || doc == nil {
		return stats, fmt.Errorf("%w: no annotator or layout given", pdfdraw.ErrInvalidArgument)
	}
	if err := cfg.Validate(); err != nil {
		return stats, fmt.Errorf("%w: %w", pdfdraw.ErrInvalidArgument, err)
	}
	features, _ := cfg.FeatureList()
	logger := cfg.logger()

	topLeft := cfg.Origin != OriginBottomLeft
	styles := make(map[layout.Feature]featureStyle, len(features))
	for _, f := range features {
		s := cfg.StyleOf(f)
		c, _ := ParseColor(s.Color)
		styles[f] = featureStyle{
			draw: pdfdraw.DrawOptions{
				Color:             c,
				Thickness:         s.Thickness,
				FontSize:          cfg.FontSize,
				RelativeToTopLeft: topLeft,
				OriginInTopLeft:   topLeft,
			},
			label: s.Label,
		}
	}
	fontSize := cfg.FontSize
	if fontSize <= 0 {
		fontSize = pdfdraw.DefaultFontSize
	}

	for _, page := range doc.Pages {
		if page == nil {
			continue
		}
		elems := ordering.SortedElements(page, features...)
		if len(elems) == 0 {
			continue
		}
		stats.Pages++

		for i, e := range elems {
			if layout.IsNil(e) {
				stats.Skipped++
				continue
			}
			pos := e.Position()
			if pos == nil || pos.Rectangle == nil {
				stats.Skipped++
				continue
			}
			pageNumber := pos.PageNumber()
			if pageNumber == 0 {
				pageNumber = page.Number
			}

			st := styles[e.Feature()]
			if err := ann.DrawRectangle(pos.Rectangle, pageNumber, st.draw); err != nil {
				return stats, fmt.Errorf("failed to draw %s on page %d: %w", e.Feature(), pageNumber, err)
			}
			stats.Drawn[e.Feature()]++

			label := labelFor(e.Feature(), i+1, st.label, cfg.ReadingOrder)
			if label == "" {
				continue
			}
			at := labelPoint(*pos.Rectangle, fontSize, topLeft)
			if err := ann.DrawText(label, pageNumber, at, st.draw); err != nil {
				return stats, fmt.Errorf("failed to label %s on page %d: %w", e.Feature(), pageNumber, err)
			}
		}
		logger.Debug("page visualized", "page", page.Number, "elements", len(elems))
	}
	return stats, nil
}

func labelFor(f layout.Feature, index int, withFeature, withIndex bool) string {
	var parts []string
	if withIndex {
		parts = append(parts, strconv.Itoa(index))
	}
	if withFeature {
		parts = append(parts, f.String())
	}
	return strings.Join(parts, " ")
}

// labelPoint returns the baseline start of a label just inside the top-left
// corner of rect
func labelPoint(rect geometry.Rectangle, fontSize float64, topLeft bool) geometry.Point {
	if topLeft {
		return geometry.NewPoint(rect.MinX+1, min(rect.MinY, rect.MaxY)+fontSize)
	}
	return geometry.NewPoint(rect.MinX+1, max(rect.MinY, rect.MaxY)-fontSize)
}
