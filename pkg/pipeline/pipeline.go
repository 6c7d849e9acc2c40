// Package pipeline provides the load → layout → render pipeline for argwheel.
//
// The CLI, the HTTP server and the viewer all go through a [Runner] so that
// dataset decoding, zoom handling and artifact caching behave the same
// everywhere.
//
// # Stages
//
//  1. Load: decode a dataset file and build the argument tree
//  2. Layout: apply the zoom state and compute the sunburst layout
//  3. Render: produce artifacts (SVG, JSON, PDF, PNG, DOT)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger, config.Default())
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Dataset: "debate.json",
//	    Zoom:    []argument.ID{"A"},
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/argwheel/pkg/argument"
	"github.com/matzehuels/argwheel/pkg/errors"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/layout"
	"github.com/matzehuels/argwheel/pkg/render/sunburst/zoom"
	"github.com/matzehuels/argwheel/pkg/tree"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 640.0

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 640.0

	// DefaultPNGScale is the rasterization scale for PNG output.
	DefaultPNGScale = 2.0
)

// Visualization types.
const (
	VizSunburst = "sunburst"
	VizNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizSunburst

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatDOT  = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
	FormatPDF:  true,
	FormatPNG:  true,
	FormatDOT:  true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizSunburst: true,
	VizNodelink: true,
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one pipeline run.
type Options struct {
	// Dataset is the path of the dataset file.
	Dataset string `json:"dataset"`

	// View is an explicit zoom state. When empty, the view starts at the
	// thesis and Zoom is applied to it.
	View zoom.ViewState `json:"view,omitempty"`

	// Zoom lists nodes to zoom into, in order. Unknown ids and leaves are
	// skipped.
	Zoom []argument.ID `json:"zoom,omitempty"`

	VizType  string   `json:"viz_type,omitempty"`
	Formats  []string `json:"formats,omitempty"`
	Width    float64  `json:"width,omitempty"`
	Height   float64  `json:"height,omitempty"`
	Labels   bool     `json:"labels,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // nodelink labels with type, speaker and score
	Refresh  bool     `json:"refresh,omitempty"`  // bypass the artifact cache

	Logger *log.Logger `json:"-"`

	validated bool
}

// Loaded is the output of the load stage.
type Loaded struct {
	Dataset *argument.Dataset
	Hash    string
	Tree    *tree.Tree
}

// Result contains the outputs of a pipeline run.
type Result struct {
	*Loaded

	// View is the normalized zoom state the layout was computed for.
	View zoom.ViewState

	Layout    layout.Layout
	Artifacts map[string][]byte
	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	Dropped    int
	MaxDepth   int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LoadHit   bool // dataset hash came from cache
	RenderHit bool // every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, json, pdf, png, dot)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid viz_type: %q (must be one of: sunburst, nodelink)", vizType)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Dataset == "" {
		return errors.New(errors.ErrCodeInvalidInput, "dataset is required")
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.IsNodelink() {
		for _, f := range o.Formats {
			if f == FormatJSON {
				return errors.New(errors.ErrCodeUnsupported, "json output is only available for sunburst views")
			}
		}
	}
	return nil
}

// IsSunburst returns true if this is a sunburst visualization.
func (o *Options) IsSunburst() bool {
	return o.VizType == "" || o.VizType == VizSunburst
}

// IsNodelink returns true if this is a node-link visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizNodelink
}
