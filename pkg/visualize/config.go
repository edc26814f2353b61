package visualize

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/gardar/pdfviz/pkg/layout"
	"github.com/gardar/pdfviz/pkg/pdfdraw"
)

// Origin names the corner layout rectangles are measured from
const (
	OriginTopLeft    = "top-left"
	OriginBottomLeft = "bottom-left"
)

// Style is how the elements of one feature are drawn
type Style struct {
	Color     string  `yaml:"color"`     // CSS color name or #rrggbb ("" = feature default)
	Thickness float64 `yaml:"thickness"` // Line width in points (0 = pdfdraw default)
	Label     bool    `yaml:"label"`     // Write the feature name next to each box
}

// Config controls what is visualized and how
type Config struct {
	LayerName    string           `yaml:"layer_name"`    // Base name of the annotation layer ("" = no layer)
	FontFamily   string           `yaml:"font_family"`   // Core font for labels
	FontSize     float64          `yaml:"font_size"`     // Label font size in points
	Features     []string         `yaml:"features"`      // Features to draw (empty = all)
	ReadingOrder bool             `yaml:"reading_order"` // Number the elements of each page in reading order
	Origin       string           `yaml:"origin"`        // top-left or bottom-left
	Styles       map[string]Style `yaml:"styles"`        // Per-feature styles keyed by feature name

	Logger *slog.Logger `yaml:"-"` // Progress logging (nil = slog.Default())
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

var defaultStyles = map[layout.Feature]Style{
	layout.FeatureFigure:    {Color: "red", Thickness: 1},
	layout.FeatureShape:     {Color: "blue", Thickness: 0.5},
	layout.FeatureTextBlock: {Color: "green", Thickness: 1},
	layout.FeatureParagraph: {Color: "orange", Thickness: 0.5},
}

// DefaultConfig returns a configuration drawing every feature in its own
// color onto a layer named "Layout"
func DefaultConfig() Config {
	styles := make(map[string]Style, len(defaultStyles))
	for f, s := range defaultStyles {
		styles[f.String()] = s
	}
	return Config{
		LayerName:  "Layout",
		FontFamily: pdfdraw.DefaultFontFamily,
		FontSize:   6,
		Origin:     OriginTopLeft,
		Styles:     styles,
	}
}

// LoadConfig reads a YAML style file on top of DefaultConfig
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig parses YAML on top of DefaultConfig and validates the result.
// Style keys may use any spelling ParseFeature accepts.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	cfg.Styles = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	styles := DefaultConfig().Styles
	for name, s := range cfg.Styles {
		f, _ := layout.ParseFeature(name)
		styles[f.String()] = s
	}
	cfg.Styles = styles
	return cfg, nil
}

// Validate checks feature names, colors and the origin
func (c Config) Validate() error {
	var errs []error
	if _, err := c.FeatureList(); err != nil {
		errs = append(errs, err)
	}
	for name, s := range c.Styles {
		if _, err := layout.ParseFeature(name); err != nil {
			errs = append(errs, fmt.Errorf("styles: %w", err))
		}
		if s.Color != "" {
			if _, err := ParseColor(s.Color); err != nil {
				errs = append(errs, fmt.Errorf("styles.%s: %w", name, err))
			}
		}
		if s.Thickness < 0 {
			errs = append(errs, fmt.Errorf("styles.%s: negative thickness %g", name, s.Thickness))
		}
	}
	if c.FontSize < 0 {
		errs = append(errs, fmt.Errorf("negative font size %g", c.FontSize))
	}
	if c.Origin != "" && c.Origin != OriginTopLeft && c.Origin != OriginBottomLeft {
		errs = append(errs, fmt.Errorf("unknown origin %q", c.Origin))
	}
	return errors.Join(errs...)
}

// FeatureList returns the configured features, all of them if none are set
func (c Config) FeatureList() ([]layout.Feature, error) {
	return layout.ParseFeatures(strings.Join(c.Features, ","))
}

// StyleOf returns the style of f with unset fields filled from the defaults
func (c Config) StyleOf(f layout.Feature) Style {
	s, ok := c.Styles[f.String()]
	def := defaultStyles[f]
	if !ok {
		return def
	}
	if s.Color == "" {
		s.Color = def.Color
	}
	if s.Thickness == 0 {
		s.Thickness = def.Thickness
	}
	return s
}

// AnnotatorOptions returns the pdfdraw options matching the configuration.
// A nil logger falls back to the configured one.
func (c Config) AnnotatorOptions(logger *slog.Logger) pdfdraw.Options {
	if logger == nil {
		logger = c.logger()
	}
	opts := pdfdraw.DefaultOptions()
	opts.Logger = logger
	opts.LayerName = c.LayerName
	if c.FontFamily != "" {
		opts.FontFamily = c.FontFamily
	}
	return opts
}

// ParseColor parses a CSS color name, #rgb or #rrggbb
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		hex := s[1:]
		if len(hex) == 3 {
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
		}
		if len(hex) != 6 {
			return nil, fmt.Errorf("invalid color %q", s)
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid color %q", s)
		}
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("unknown color %q", s)
}
