// pdfviz is a command-line tool for visualizing the layout of PDF documents.
//
// It draws the bounding boxes of the figures, shapes, text blocks and
// paragraphs found by a layout analyzer onto the pages of the original PDF,
// on an optional content layer that can be toggled in PDF viewers. The layout
// comes either from an hOCR file or from Google Document AI.
//
// Usage:
//
//	pdfviz -pdf document.pdf -output document_layout.pdf -hocr document.hocr [options]
//
// Required flags:
//
//	-pdf string      Path to the input PDF
//	-output string   Path to save the annotated PDF
//
// Layout source (one required):
//
//	-hocr string          Path to an hOCR file of the document
//	-docai-config string  Path to a Document AI YAML config; the PDF is sent for processing
//
// Options:
//
//	-config string        Path to a YAML style config
//	-features string      Comma separated features to draw (figure,shape,text-block,paragraph)
//	-overwrite            Overwrite the output PDF if it already exists
//	-force                Annotate even if the annotation layer already exists
//	-debug-layout string  Path to save the analyzed layout as JSON
//	-debug-api string     Path to save the raw Document AI response as JSON
//	-debug-pdf            Dump the PDF structure to stderr
//	-v                    Enable debug logging
//
// Example:
//
//	pdfviz -pdf paper.pdf -hocr paper.hocr -output paper_layout.pdf -features paragraph,figure
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/gardar/pdfviz/pkg/gdocai"
	"github.com/gardar/pdfviz/pkg/geometry"
	"github.com/gardar/pdfviz/pkg/hocr"
	"github.com/gardar/pdfviz/pkg/layout"
	"github.com/gardar/pdfviz/pkg/pdfdraw"
	"github.com/gardar/pdfviz/pkg/visualize"
)

// dumpBytes is how much of the PDF -debug-pdf prints
const dumpBytes = 2000

type options struct {
	pdfPath     string
	outputPath  string
	hocrPath    string
	docaiConfig string
	configPath  string
	features    string
	overwrite   bool
	force       bool
	debugLayout string
	debugAPI    string
	dumpPDF     bool
	stderr      io.Writer
}

func main() {
	var opts options
	flag.StringVar(&opts.pdfPath, "pdf", "", "Path to the input PDF (required)")
	flag.StringVar(&opts.outputPath, "output", "", "Path to save the annotated PDF (required)")
	flag.StringVar(&opts.hocrPath, "hocr", "", "Path to an hOCR file with the layout of the PDF")
	flag.StringVar(&opts.docaiConfig, "docai-config", "", "Path to a Document AI config YAML file; the PDF is analyzed by Document AI")
	flag.StringVar(&opts.configPath, "config", "", "Path to a style config YAML file")
	flag.StringVar(&opts.features, "features", "", "Comma separated list of features to draw (default: all)")
	flag.BoolVar(&opts.overwrite, "overwrite", false, "Overwrite the output PDF if it already exists")
	flag.BoolVar(&opts.force, "force", false, "Annotate even if the annotation layer is already present")
	flag.StringVar(&opts.debugLayout, "debug-layout", "", "Path to save the analyzed layout as JSON")
	flag.StringVar(&opts.debugAPI, "debug-api", "", "Path to save the Document AI response as JSON")
	flag.BoolVar(&opts.dumpPDF, "debug-pdf", false, "Dump PDF structure for debugging")
	verbose := flag.Bool("v", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	opts.stderr = os.Stderr

	if err := opts.validate(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, logger); err != nil {
		logger.Error("visualization failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// validate checks the flag combination
func (o options) validate() error {
	if o.pdfPath == "" {
		return errors.New("-pdf flag is required")
	}
	if o.outputPath == "" {
		return errors.New("-output flag is required")
	}
	if (o.hocrPath == "") == (o.docaiConfig == "") {
		return errors.New("either -hocr or -docai-config must be provided (but not both)")
	}
	return nil
}

// validateOutputPath refuses to replace an existing file unless overwrite is
// set and requires the parent directory to exist
func validateOutputPath(path string, overwrite bool) error {
	if path == "" {
		return errors.New("no output path given")
	}
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return fmt.Errorf("output path %s is a directory", path)
	case err == nil && !overwrite:
		return fmt.Errorf("output file %s already exists, use -overwrite to overwrite", path)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("cannot access output path: %w", err)
	}

	dir := filepath.Dir(path)
	info, err = os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("output directory %s is not a directory", dir)
	}
	return nil
}

func loadStyle(opts options) (visualize.Config, error) {
	cfg := visualize.DefaultConfig()
	if opts.configPath != "" {
		var err error
		if cfg, err = visualize.LoadConfig(opts.configPath); err != nil {
			return cfg, err
		}
	}
	if opts.features != "" {
		cfg.Features = strings.Split(opts.features, ",")
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid -features: %w", err)
		}
	}
	return cfg, nil
}

func run(ctx context.Context, opts options, logger *slog.Logger) error {
	if err := validateOutputPath(opts.outputPath, opts.overwrite); err != nil {
		return err
	}
	cfg, err := loadStyle(opts)
	if err != nil {
		return err
	}
	cfg.Logger = logger

	pdfData, err := os.ReadFile(opts.pdfPath)
	if err != nil {
		return fmt.Errorf("failed to read input PDF: %w", err)
	}
	if opts.dumpPDF && opts.stderr != nil {
		pdfdraw.DumpStructure(pdfData, dumpBytes, opts.stderr)
	}

	if cfg.LayerName != "" {
		check, err := pdfdraw.CheckExistingLayers(pdfData, cfg.LayerName)
		if err != nil {
			return err
		}
		for _, w := range check.Warnings {
			logger.Warn(w)
		}
		if check.HasLayer {
			if !opts.force {
				return fmt.Errorf("PDF already has an annotation layer %q, use -force to annotate again", check.LayerName)
			}
			logger.Warn("annotating again", "layer", check.LayerName)
		}
	}

	ann, err := pdfdraw.Open(pdfData, cfg.AnnotatorOptions(nil))
	if err != nil {
		return fmt.Errorf("failed to open input PDF: %w", err)
	}
	defer ann.Close()

	doc, err := analyze(ctx, opts, pdfData, ann.PageBoxes(), logger)
	if err != nil {
		return err
	}
	if opts.debugLayout != "" {
		if err := writeJSON(opts.debugLayout, layoutDump(doc)); err != nil {
			return err
		}
	}

	stats, err := visualize.Visualize(ann, doc, cfg)
	if err != nil {
		return err
	}
	for _, f := range layout.AllFeatures {
		if n := stats.Drawn[f]; n > 0 {
			logger.Info("drawn", "feature", f.String(), "count", n)
		}
	}
	if stats.Skipped > 0 {
		logger.Warn("elements without bounding box skipped", "count", stats.Skipped)
	}

	if err := writeOutput(opts.outputPath, ann); err != nil {
		return err
	}
	logger.Info("annotated PDF created", "path", opts.outputPath, "boxes", stats.Total(), "pages", stats.Pages)
	return nil
}

// analyze obtains the layout of the PDF from the configured source
func analyze(ctx context.Context, opts options, pdfData []byte, boxes []geometry.Rectangle, logger *slog.Logger) (*layout.Document, error) {
	if opts.hocrPath != "" {
		data, err := os.ReadFile(opts.hocrPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read hOCR file: %w", err)
		}
		h, err := hocr.Parse(data)
		if err != nil {
			return nil, err
		}
		logger.Debug("hOCR parsed", "pages", len(h.Pages), "characters", len(hocr.ExtractText(h)))
		return h.Layout(boxes)
	}

	cfg, err := gdocai.LoadConfig(opts.docaiConfig)
	if err != nil {
		return nil, err
	}
	logger.Debug("sending document to Document AI", "processor", cfg.ProcessorName())
	resp, err := gdocai.ProcessDocument(ctx, pdfData, cfg)
	if err != nil {
		return nil, err
	}
	if opts.debugAPI != "" {
		if err := writeJSON(opts.debugAPI, resp); err != nil {
			return nil, err
		}
	}
	return gdocai.LayoutFromProto(resp, boxes)
}

func writeJSON(path string, v any) error {
	out, err := gdocai.ToJSON(v)
	if err != nil {
		return fmt.Errorf("failed to serialize %s: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeOutput writes the annotated PDF, removing the file again on failure
func writeOutput(path string, ann *pdfdraw.Annotator) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output PDF: %w", err)
	}
	_, err = ann.WriteTo(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write output PDF: %w", err)
	}
	return nil
}

type elementDump struct {
	Page      int                 `json:"page"`
	Feature   string              `json:"feature"`
	Kind      string              `json:"kind,omitempty"`
	Text      string              `json:"text,omitempty"`
	Rectangle *geometry.Rectangle `json:"rectangle,omitempty"`
}

type pageDump struct {
	Number   int                `json:"number"`
	BBox     geometry.Rectangle `json:"bbox"`
	Elements []elementDump      `json:"elements"`
}

// layoutDump flattens doc for JSON output; elements point back at their
// pages, so the model itself cannot be marshaled
func layoutDump(doc *layout.Document) []pageDump {
	pages := make([]pageDump, 0, len(doc.Pages))
	for _, p := range doc.Pages {
		pd := pageDump{Number: p.Number, BBox: p.BBox, Elements: []elementDump{}}
		for _, e := range p.Elements() {
			ed := elementDump{
				Page:    e.Position().PageNumber(),
				Feature: e.Feature().String(),
				Text:    e.Text(),
			}
			if pos := e.Position(); pos != nil {
				ed.Rectangle = pos.Rectangle
			}
			if s, ok := e.(*layout.Shape); ok {
				ed.Kind = s.Kind
			}
			pd.Elements = append(pd.Elements, ed)
		}
		pages = append(pages, pd)
	}
	return pages
}
