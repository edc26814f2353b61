package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/pdfviz/pkg/pdfdraw"
)

const testHOCR = `<html><head><title>t</title></head><body>
<div class="ocr_page" id="page_1" title="bbox 0 0 1200 1600; ppageno 0">
 <div class="ocr_carea" id="block_1_1" title="bbox 100 100 700 300">
  <p class="ocr_par" id="par_1_1" title="bbox 100 100 700 200">
   <span class="ocr_line" title="bbox 100 100 700 140"><span class="ocrx_word" title="bbox 100 100 300 140">Hello</span></span>
  </p>
 </div>
 <div class="ocr_photo" id="photo_1" title="bbox 800 100 1100 400"></div>
</div>
</body></html>`

func writeTestFiles(t *testing.T) (dir, pdfPath, hocrPath string) {
	t.Helper()
	dir = t.TempDir()

	pdf := fpdf.New("P", "pt", "", "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.AddPageFormat("P", fpdf.SizeType{Wd: 600, Ht: 800})
	pdf.Text(50, 50, "Hello")
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatal(err)
	}

	pdfPath = filepath.Join(dir, "in.pdf")
	hocrPath = filepath.Join(dir, "in.hocr")
	if err := os.WriteFile(pdfPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(hocrPath, []byte(testHOCR), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, pdfPath, hocrPath
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts options
		ok   bool
	}{
		{"hocr", options{pdfPath: "a.pdf", outputPath: "b.pdf", hocrPath: "a.hocr"}, true},
		{"docai", options{pdfPath: "a.pdf", outputPath: "b.pdf", docaiConfig: "c.yml"}, true},
		{"no pdf", options{outputPath: "b.pdf", hocrPath: "a.hocr"}, false},
		{"no output", options{pdfPath: "a.pdf", hocrPath: "a.hocr"}, false},
		{"no source", options{pdfPath: "a.pdf", outputPath: "b.pdf"}, false},
		{"both sources", options{pdfPath: "a.pdf", outputPath: "b.pdf", hocrPath: "a.hocr", docaiConfig: "c.yml"}, false},
	}
	for _, tc := range tests {
		if err := tc.opts.validate(); (err == nil) != tc.ok {
			t.Errorf("%s: validate() error = %v", tc.name, err)
		}
	}
}

func TestValidateOutputPath(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "exists.pdf")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := validateOutputPath(filepath.Join(dir, "new.pdf"), false); err != nil {
		t.Errorf("new file: %v", err)
	}
	if err := validateOutputPath(existing, false); err == nil || !strings.Contains(err.Error(), "-overwrite") {
		t.Errorf("existing file without overwrite: %v", err)
	}
	if err := validateOutputPath(existing, true); err != nil {
		t.Errorf("existing file with overwrite: %v", err)
	}
	if err := validateOutputPath(dir, true); err == nil {
		t.Error("directory accepted as output")
	}
	if err := validateOutputPath(filepath.Join(dir, "missing", "out.pdf"), false); err == nil {
		t.Error("missing parent directory accepted")
	}
	if err := validateOutputPath(filepath.Join(existing, "out.pdf"), false); err == nil {
		t.Error("file accepted as parent directory")
	}
	if err := validateOutputPath("", false); err == nil {
		t.Error("empty path accepted")
	}
}

func TestRunWithHOCR(t *testing.T) {
	dir, pdfPath, hocrPath := writeTestFiles(t)
	out := filepath.Join(dir, "out.pdf")
	layoutPath := filepath.Join(dir, "layout.json")

	opts := options{
		pdfPath:     pdfPath,
		outputPath:  out,
		hocrPath:    hocrPath,
		debugLayout: layoutPath,
	}
	if err := run(context.Background(), opts, quietLogger()); err != nil {
		t.Fatalf("run() failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
	check, err := pdfdraw.CheckExistingLayers(data, "Layout")
	if err != nil {
		t.Fatal(err)
	}
	if !check.HasLayer {
		t.Errorf("output has no annotation layer, layers: %q", check.Layers)
	}

	var dump []pageDump
	raw, err := os.ReadFile(layoutPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(raw, &dump); err != nil {
		t.Fatalf("layout dump is not valid JSON: %v", err)
	}
	if len(dump) != 1 || len(dump[0].Elements) != 3 {
		t.Fatalf("layout dump = %+v", dump)
	}
	if f := dump[0].Elements[0].Feature; f != "figure" {
		t.Errorf("first element feature = %q", f)
	}

	// the annotated file is refused without -force
	opts.pdfPath = out
	opts.outputPath = filepath.Join(dir, "again.pdf")
	opts.debugLayout = ""
	err = run(context.Background(), opts, quietLogger())
	if err == nil || !strings.Contains(err.Error(), "-force") {
		t.Errorf("second run error = %v, want a request for -force", err)
	}
	if _, statErr := os.Stat(opts.outputPath); !os.IsNotExist(statErr) {
		t.Errorf("output written despite the error")
	}

	opts.force = true
	if err := run(context.Background(), opts, quietLogger()); err != nil {
		t.Errorf("run() with -force failed: %v", err)
	}
}

func TestRunRejectsExistingOutput(t *testing.T) {
	_, pdfPath, hocrPath := writeTestFiles(t)
	opts := options{pdfPath: pdfPath, outputPath: pdfPath, hocrPath: hocrPath}
	if err := run(context.Background(), opts, quietLogger()); err == nil {
		t.Error("run() replaced its input without -overwrite")
	}
}

func TestLoadStyleFeatures(t *testing.T) {
	cfg, err := loadStyle(options{features: "paragraph,figure"})
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.Features) != 2 {
		t.Errorf("Features = %q", cfg.Features)
	}
	if _, err := loadStyle(options{features: "paragraph,tables"}); err == nil {
		t.Error("unknown feature accepted")
	}

	path := filepath.Join(t.TempDir(), "style.yml")
	if err := os.WriteFile(path, []byte("layer_name: Boxes\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadStyle(options{configPath: path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LayerName != "Boxes" {
		t.Errorf("LayerName = %q", cfg.LayerName)
	}
}
