package hocr

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

var charsetPattern = regexp.MustCompile(`(?i)charset\s*=\s*["']?([a-z0-9_.:-]+)`)

var (
	lineClasses   = []string{"ocr_line", "ocr_header", "ocr_caption", "ocr_textfloat"}
	floatClasses  = []string{"ocr_photo", "ocr_image", "ocr_float", "ocr_separator", "ocr_linedrawing"}
	figureClasses = map[string]bool{"ocr_photo": true, "ocr_image": true, "ocr_float": true}
)

// Parse converts raw hOCR data into a structured HOCR object.
func Parse(data []byte) (HOCR, error) {
	result := HOCR{Metadata: make(map[string]string)}

	decoded, err := decode(data)
	if err != nil {
		return result, err
	}

	doc, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return result, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	extractDocumentMeta(&result, doc)

	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if hasClass(n, "ocr_page") {
			result.Pages = append(result.Pages, processPage(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(doc)

	if len(result.Pages) == 0 {
		return result, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return result, nil
}

// decode converts data to UTF-8 according to its declared charset
func decode(data []byte) ([]byte, error) {
	m := charsetPattern.FindSubmatch(data)
	if m == nil {
		return data, nil
	}
	name := strings.ToLower(string(m[1]))

	var enc encoding.Encoding
	switch name {
	case "utf-8", "utf8":
		return data, nil
	case "iso-8859-1", "latin1", "latin-1":
		enc = charmap.ISO8859_1
	default:
		var err error
		enc, err = htmlindex.Get(name)
		if err != nil {
			enc = charmap.ISO8859_1
		}
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return decoded, nil
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBoundingBoxFromTitle extracts a bounding box from a title string
// Returns nil if there is no complete bbox property
func ParseBoundingBoxFromTitle(title string) *BoundingBox {
	bbox, ok := ParseTitle(title)["bbox"]
	if !ok || len(bbox) < 4 {
		return nil
	}
	var coords [4]float64
	for i := range coords {
		v, err := strconv.ParseFloat(bbox[i], 64)
		if err != nil {
			return nil
		}
		coords[i] = v
	}
	result := NewBoundingBox(coords[0], coords[1], coords[2], coords[3])
	return &result
}

func bboxOf(n *html.Node) BoundingBox {
	if bbox := ParseBoundingBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		return *bbox
	}
	return BoundingBox{}
}

// extractDocumentMeta extracts document-level metadata from the html and head elements
func extractDocumentMeta(result *HOCR, doc *html.Node) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				if lang := getAttrVal(n, "lang"); lang != "" {
					result.Language = lang
				} else if lang := getAttrVal(n, "xml:lang"); lang != "" {
					result.Language = lang
				}
			case "title":
				if n.FirstChild != nil {
					result.Title = strings.TrimSpace(n.FirstChild.Data)
				}
			case "meta":
				name, content := getAttrVal(n, "name"), getAttrVal(n, "content")
				if strings.HasPrefix(name, "ocr-") && content != "" {
					result.Metadata[name] = content
				}
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

// processPage extracts page information and its areas, paragraphs and floats
func processPage(n *html.Node) Page {
	page := Page{
		ID:   getAttrVal(n, "id"),
		BBox: bboxOf(n),
	}
	props := ParseTitle(getAttrVal(n, "title"))
	if image, ok := props["image"]; ok && len(image) > 0 {
		page.ImageName = strings.Trim(image[0], `"`)
	}
	if ppageno, ok := props["ppageno"]; ok && len(ppageno) > 0 {
		page.PageNumber, _ = strconv.Atoi(ppageno[0])
	}

	var collect func(*html.Node)
	collect = func(node *html.Node) {
		switch {
		case hasClass(node, "ocr_carea"):
			page.Areas = append(page.Areas, processArea(node, &page.Floats))
			return
		case hasClass(node, "ocr_par"):
			page.Paragraphs = append(page.Paragraphs, processParagraph(node))
			return
		case hasClass(node, floatClasses...):
			page.Floats = append(page.Floats, processFloat(node))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}
	return page
}

// processArea extracts an area and its children. Floats nested in the area
// belong to the page and are appended to floats.
func processArea(n *html.Node, floats *[]Float) Area {
	area := Area{
		ID:   getAttrVal(n, "id"),
		Lang: getAttrVal(n, "lang"),
		BBox: bboxOf(n),
	}

	var collect func(*html.Node)
	collect = func(node *html.Node) {
		switch {
		case hasClass(node, "ocr_par"):
			area.Paragraphs = append(area.Paragraphs, processParagraph(node))
			return
		case hasClass(node, lineClasses...):
			area.Lines = append(area.Lines, processLine(node))
			return
		case hasClass(node, "ocrx_word"):
			area.Words = append(area.Words, processWord(node))
			return
		case hasClass(node, floatClasses...):
			*floats = append(*floats, processFloat(node))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}
	return area
}

// processParagraph extracts paragraph information and its children (lines, words)
func processParagraph(n *html.Node) Paragraph {
	paragraph := Paragraph{
		ID:   getAttrVal(n, "id"),
		Lang: getAttrVal(n, "lang"),
		BBox: bboxOf(n),
	}

	var collect func(*html.Node)
	collect = func(node *html.Node) {
		switch {
		case hasClass(node, lineClasses...):
			paragraph.Lines = append(paragraph.Lines, processLine(node))
			return
		case hasClass(node, "ocrx_word"):
			paragraph.Words = append(paragraph.Words, processWord(node))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}
	return paragraph
}

// processLine extracts line information and its words
func processLine(n *html.Node) Line {
	line := Line{
		ID:   getAttrVal(n, "id"),
		BBox: bboxOf(n),
	}
	if baseline, ok := ParseTitle(getAttrVal(n, "title"))["baseline"]; ok {
		line.Baseline = strings.Join(baseline, " ")
	}

	var extractWords func(*html.Node)
	extractWords = func(node *html.Node) {
		if hasClass(node, "ocrx_word") {
			line.Words = append(line.Words, processWord(node))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			extractWords(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractWords(c)
	}
	return line
}

// processWord extracts the text and properties of a word element
func processWord(n *html.Node) Word {
	word := Word{
		ID:   getAttrVal(n, "id"),
		BBox: bboxOf(n),
		Text: extractTextContent(n),
	}
	if conf, ok := ParseTitle(getAttrVal(n, "title"))["x_wconf"]; ok && len(conf) > 0 {
		word.Confidence, _ = strconv.ParseFloat(conf[0], 64)
	}
	return word
}

func processFloat(n *html.Node) Float {
	f := Float{
		ID:   getAttrVal(n, "id"),
		BBox: bboxOf(n),
	}
	for _, class := range floatClasses {
		if hasClass(n, class) {
			f.Class = class
			break
		}
	}
	return f
}

// extractTextContent gets all text from a node and its children
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return strings.TrimSpace(n.Data)
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text.WriteString(extractTextContent(c))
	}
	return strings.TrimSpace(text.String())
}

// hasClass reports whether n is an element carrying one of the classes
func hasClass(n *html.Node, classes ...string) bool {
	if n.Type != html.ElementNode {
		return false
	}
	for _, c := range strings.Fields(getAttrVal(n, "class")) {
		for _, want := range classes {
			if c == want {
				return true
			}
		}
	}
	return false
}

// Get the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
