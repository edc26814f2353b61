package hocr

import (
	"strings"
)

// Text returns the words of the line separated by spaces
func (l Line) Text() string {
	return joinWords(l.Words)
}

// Text returns the text of the paragraph, one line per row
func (p Paragraph) Text() string {
	var builder strings.Builder
	for _, line := range p.Lines {
		appendRow(&builder, line.Text())
	}
	appendRow(&builder, joinWords(p.Words))
	return builder.String()
}

// Text returns the text of the area with its paragraphs separated by blank lines
func (a Area) Text() string {
	var builder strings.Builder
	for _, para := range a.Paragraphs {
		if text := para.Text(); text != "" {
			if builder.Len() > 0 {
				builder.WriteString("\n\n")
			}
			builder.WriteString(text)
		}
	}
	for _, line := range a.Lines {
		appendRow(&builder, line.Text())
	}
	appendRow(&builder, joinWords(a.Words))
	return builder.String()
}

// ExtractText extracts all text from an hOCR document
// Areas and loose paragraphs are separated by blank lines, pages by form feeds
func ExtractText(doc HOCR) string {
	pages := make([]string, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		var parts []string
		for _, area := range page.Areas {
			if text := area.Text(); text != "" {
				parts = append(parts, text)
			}
		}
		for _, para := range page.Paragraphs {
			if text := para.Text(); text != "" {
				parts = append(parts, text)
			}
		}
		pages = append(pages, strings.Join(parts, "\n\n"))
	}
	return strings.Join(pages, "\f")
}

func joinWords(words []Word) string {
	texts := make([]string, 0, len(words))
	for _, w := range words {
		if w.Text != "" {
			texts = append(texts, w.Text)
		}
	}
	return strings.Join(texts, " ")
}

func appendRow(builder *strings.Builder, row string) {
	if row == "" {
		return
	}
	if builder.Len() > 0 {
		builder.WriteString("\n")
	}
	builder.WriteString(row)
}
