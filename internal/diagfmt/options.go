// Package diagfmt renders diagnostics, tokens, syntax trees and canvases
// for the command line.
package diagfmt

import "walle/internal/source"

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

func (m PathMode) String() string {
	switch m {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   int // source lines shown above the offending one
	PathMode  PathMode
	Width     int // truncate source lines to this many columns, 0 = no limit
	ShowNotes bool
}

// JSONOpts configures JSON.
type JSONOpts struct {
	IncludePositions bool
	PathMode         PathMode
	Max              int // limits the output, not the bag
	IncludeNotes     bool
}

func displayPath(fs *source.FileSet, f *source.File, mode PathMode) string {
	if f == nil {
		return "<input>"
	}
	return f.FormatPath(mode.String(), fs.BaseDir())
}
