package pdfdraw

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/unicode"
)

func utf16Name(t *testing.T, s string) string {
	t.Helper()
	enc, err := unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder().String(s)
	if err != nil {
		t.Fatal(err)
	}
	return enc
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`Layout`, "Layout"},
		{`Layout \(Page 1\)`, "Layout (Page 1)"},
		{`back\\slash`, `back\slash`},
		{"\xfe\xff\x00O\x00C\x00R", "OCR"},
	}
	for _, tc := range tests {
		if got := decodePDFString(tc.in); got != tc.want {
			t.Errorf("decodePDFString(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCheckExistingLayers(t *testing.T) {
	escaped := strings.NewReplacer("(", `\(`, ")", `\)`).Replace(utf16Name(t, "Layout (Page 2)"))
	data := []byte("%PDF-1.4\n" +
		"5 0 obj\n<</Type /OCG /Name (OCR Text)>>\nendobj\n" +
		"6 0 obj\n<</Type /OCG /Name (" + escaped + ")>>\nendobj\n" +
		"7 0 obj\n<</Type /OCG /Name (Old Annotations)>>\nendobj\n" +
		"8 0 obj\n<</Type /OCG /Name (OCR Text)>>\nendobj\n")

	result, err := CheckExistingLayers(data, "Layout")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"OCR Text", "Layout (Page 2)", "Old Annotations"}, result.Layers); diff != "" {
		t.Errorf("Layers mismatch (-want +got):\n%s", diff)
	}
	if !result.HasLayer || result.LayerName != "Layout (Page 2)" {
		t.Errorf("HasLayer = %v, LayerName = %q", result.HasLayer, result.LayerName)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "Old Annotations") {
		t.Errorf("Warnings = %q", result.Warnings)
	}

	result, err = CheckExistingLayers(data, "Lay")
	if err != nil {
		t.Fatal(err)
	}
	if result.HasLayer {
		t.Errorf("prefix %q should not match layer %q", "Lay", result.LayerName)
	}
	if len(result.Warnings) != 2 {
		t.Errorf("Warnings = %q, want the layout and annotation layers", result.Warnings)
	}
}

func TestCheckExistingLayersEmpty(t *testing.T) {
	if _, err := CheckExistingLayers(nil, "Layout"); err == nil {
		t.Error("CheckExistingLayers(nil) succeeded")
	}
	result, err := CheckExistingLayers([]byte("%PDF-1.4\n%%EOF\n"), "Layout")
	if err != nil {
		t.Fatal(err)
	}
	if result.HasLayer || len(result.Layers) != 0 {
		t.Errorf("unexpected layers %q", result.Layers)
	}
}

func TestDumpStructure(t *testing.T) {
	data := []byte("%PDF-1.4\n1 0 obj\n<</Type /OCG /Name (Layout)>>\nendobj\n")
	var buf bytes.Buffer
	DumpStructure(data, 1000, &buf)
	out := buf.String()
	for _, want := range []string{fmt.Sprintf("FIRST %d BYTES", len(data)), "OCG CONTEXT", "/Name (Layout)"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump is missing %q:\n%s", want, out)
		}
	}
}
