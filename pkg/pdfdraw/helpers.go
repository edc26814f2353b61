package pdfdraw

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

var pdfEscapes = strings.NewReplacer(
	`\(`, "(",
	`\)`, ")",
	`\\`, `\`,
	`\r`, "\r",
	`\n`, "\n",
	`\t`, "\t",
)

// decodePDFString undoes literal string escaping and decodes UTF-16BE text
// marked with a byte order mark.
func decodePDFString(s string) string {
	s = pdfEscapes.Replace(s)
	if len(s) >= 2 && s[0] == '\xfe' && s[1] == '\xff' {
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().String(s)
		if err == nil {
			return decoded
		}
	}
	return s
}

// DumpStructure writes the first byteCount bytes of the PDF and the context
// of the first optional content group reference to w.
func DumpStructure(pdfData []byte, byteCount int, w io.Writer) {
	if byteCount > len(pdfData) {
		byteCount = len(pdfData)
	}

	fmt.Fprintln(w, "===== PDF STRUCTURE DUMP (FIRST", byteCount, "BYTES) =====")
	fmt.Fprintln(w, string(pdfData[:byteCount]))
	fmt.Fprintln(w, "===== END PDF STRUCTURE DUMP =====")

	ocgIndex := bytes.Index(pdfData, []byte("/OCG"))
	if ocgIndex >= 0 {
		start := max(ocgIndex-20, 0)
		end := min(ocgIndex+100, len(pdfData))
		fmt.Fprintln(w, "===== OCG CONTEXT =====")
		fmt.Fprintln(w, string(pdfData[start:end]))
		fmt.Fprintln(w, "===== END OCG CONTEXT =====")
	}
}
