package layout

import (
	"fmt"
	"strings"
)

// Feature identifies the kind of a layout element
type Feature int

const (
	FeatureFigure Feature = iota + 1
	FeatureShape
	FeatureTextBlock
	FeatureParagraph
)

// AllFeatures lists every feature in drawing order
var AllFeatures = []Feature{FeatureFigure, FeatureShape, FeatureTextBlock, FeatureParagraph}

var featureNames = map[Feature]string{
	FeatureFigure:    "figure",
	FeatureShape:     "shape",
	FeatureTextBlock: "text-block",
	FeatureParagraph: "paragraph",
}

func (f Feature) String() string {
	if name, ok := featureNames[f]; ok {
		return name
	}
	return fmt.Sprintf("feature(%d)", int(f))
}

// ParseFeature returns the feature with the given name.
// Names are matched case-insensitively and "_" is accepted for "-".
func ParseFeature(name string) (Feature, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for f, n := range featureNames {
		if n == key {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown feature %q", name)
}

// ParseFeatures parses a comma separated list of feature names.
// An empty list selects all features.
func ParseFeatures(list string) ([]Feature, error) {
	if strings.TrimSpace(list) == "" {
		return AllFeatures, nil
	}
	var result []Feature
	seen := make(map[Feature]bool)
	for _, name := range strings.Split(list, ",") {
		f, err := ParseFeature(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			result = append(result, f)
		}
	}
	return result, nil
}
