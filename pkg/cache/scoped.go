package cache

import "time"

// ScopedKeyer wraps a Keyer with a prefix, giving each tenant (for example
// a server instance sharing one redis) its own namespace.
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "argwheel:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DatasetKey implements [Keyer].
func (k *ScopedKeyer) DatasetKey(name string, modTime time.Time, size int64) string {
	return k.prefix + k.inner.DatasetKey(name, modTime, size)
}

// LayoutKey implements [Keyer].
func (k *ScopedKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(datasetHash, opts)
}

// ArtifactKey implements [Keyer].
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
