package pdfdraw

import (
	"fmt"
	"regexp"
	"strings"
)

var layerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/Type\s*/OCG\s*/Name\s*\(((?:\\.|[^\\)])*)\)`),
	regexp.MustCompile(`/OCG\s*<<[^>]*?/Name\s*\(((?:\\.|[^\\)])*)\)`),
	regexp.MustCompile(`<</Type/OCG/Name\(((?:\\.|[^\\)])*)\)`),
	regexp.MustCompile(`/Name\s*\(((?:\\.|[^\\)])*)\)[\s\S]{1,50}/Type\s*/OCG`),
}

// detectLayers returns the names of the optional content groups found in
// the raw PDF data, in order of first appearance.
func detectLayers(pdfData []byte) ([]string, error) {
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("empty PDF data")
	}

	content := string(pdfData)
	var layers []string
	for _, pattern := range layerPatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			if len(match) >= 2 {
				layers = append(layers, decodePDFString(match[1]))
			}
		}
	}

	unique := make([]string, 0, len(layers))
	seen := make(map[string]bool)
	for _, l := range layers {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}
	return unique, nil
}

// LayerCheckResult contains the results of checking for annotation layers
type LayerCheckResult struct {
	Layers    []string // All detected layers
	HasLayer  bool     // True if the annotation layer exists
	LayerName string   // Name of the detected annotation layer (if any)
	Warnings  []string // Layers that look like annotations under another name
}

// CheckExistingLayers reports whether pdfData already contains the
// annotation layer layerName, either under that exact name or with a
// " (Page N)" suffix as written by an Annotator.
func CheckExistingLayers(pdfData []byte, layerName string) (LayerCheckResult, error) {
	result := LayerCheckResult{}

	layers, err := detectLayers(pdfData)
	if err != nil {
		return result, fmt.Errorf("cannot analyze layers: %w", err)
	}
	result.Layers = layers

	pageLayer := regexp.MustCompile(fmt.Sprintf(`^%s\s*\(Page\s*\d+\)$`, regexp.QuoteMeta(layerName)))

	for _, layer := range layers {
		if layer == layerName || pageLayer.MatchString(layer) {
			if !result.HasLayer {
				result.HasLayer = true
				result.LayerName = layer
			}
			continue
		}

		lower := strings.ToLower(layer)
		if strings.Contains(lower, "annotation") || strings.Contains(lower, "layout") {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("existing layer might contain annotations: %s", layer))
		}
	}

	return result, nil
}
