package gdocai

import (
	"strings"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

// textFromLayout returns the text a layout's anchor points at in fullText.
// Segment offsets count runes and are clamped to the text.
func textFromLayout(l *documentaipb.Document_Page_Layout, fullText string) string {
	segments := l.GetTextAnchor().GetTextSegments()
	if len(segments) == 0 {
		return ""
	}
	runes := []rune(fullText)
	clamp := func(i int64) int {
		return int(min(max(i, 0), int64(len(runes))))
	}

	var sb strings.Builder
	for _, seg := range segments {
		start, end := clamp(seg.GetStartIndex()), clamp(seg.GetEndIndex())
		sb.WriteString(string(runes[min(start, end):end]))
	}
	return strings.TrimSpace(sb.String())
}
