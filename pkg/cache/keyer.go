package cache

import (
	"time"
)

// Keyer generates cache keys for each cached stage.
type Keyer interface {
	// DatasetKey identifies raw dataset bytes by source name and file
	// version, so a modified file is re-read.
	DatasetKey(name string, modTime time.Time, size int64) string

	// LayoutKey identifies a computed layout.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies a rendered output.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the inputs of a layout besides the dataset.
type LayoutKeyOpts struct {
	Stack  []string `json:"stack"`
	Config string   `json:"config"` // hash of the layout geometry
}

// ArtifactKeyOpts are the render options of an artifact.
type ArtifactKeyOpts struct {
	VizType string  `json:"viz_type"`
	Format  string  `json:"format"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Labels  bool    `json:"labels"`
	Palette string  `json:"palette"` // hash of the palette
}

// DefaultKeyer builds keys as prefix:sha256(inputs).
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DatasetKey implements [Keyer].
func (DefaultKeyer) DatasetKey(name string, modTime time.Time, size int64) string {
	return hashKey("dataset", name, modTime.UTC().UnixNano(), size)
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}
