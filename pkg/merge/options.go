package merge

import (
	"fmt"

	"go.uber.org/zap"
)

// Markers selects which statements open each sub-object.
type Markers string

// Marker styles.
const (
	MarkersBoth   Markers = "both"   // "o name" followed by "g name"
	MarkersObject Markers = "object" // "o name" only
	MarkersGroup  Markers = "group"  // "g name" only
)

// ParseMarkers validates a marker style name. An empty string selects
// MarkersBoth.
func ParseMarkers(s string) (Markers, error) {
	switch Markers(s) {
	case "", MarkersBoth:
		return MarkersBoth, nil
	case MarkersObject, MarkersGroup:
		return Markers(s), nil
	}
	return "", fmt.Errorf("unknown marker style %q (want both, object or group)", s)
}

// Header is the first line of every merged document.
const Header = "# Merged OBJ file"

// Options controls a Merger.
type Options struct {
	// Markers selects the sub-object statements. Defaults to MarkersBoth.
	Markers Markers

	// Strict rejects element references beyond their source's tables.
	Strict bool

	// Workers parses up to this many sources concurrently. Values below 2
	// parse sequentially.
	Workers int

	// MaxSuffix bounds name disambiguation. Defaults to DefaultMaxSuffix.
	MaxSuffix int

	// Logger receives progress. Defaults to a no-op logger.
	Logger *zap.Logger
}

// DefaultOptions returns the options used by the package-level Merge.
func DefaultOptions() Options {
	return Options{
		Markers:   MarkersBoth,
		Workers:   1,
		MaxSuffix: DefaultMaxSuffix,
	}
}
