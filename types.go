package dtoverlay

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned by probes that only work on Linux.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Overlay holds what is known about a single overlay source after parsing.
type Overlay struct {
	// Path is the file the overlay was read from (empty for in-memory sources).
	Path string
	// Description is the first non-license comment line.
	Description string
	// Compatible is the root node's compatible list, in source order.
	Compatible []string
}

// Platform describes the running board as exposed by firmware.
type Platform struct {
	// Compatible is the board's compatible list, most specific first.
	Compatible []string
	// Model is the board model string (empty if unavailable).
	Model string
	// KernelRelease is the running kernel release (empty if unavailable).
	KernelRelease string
}

// Match is the outcome of checking one overlay against a platform.
type Match struct {
	Overlay *Overlay
	// Applicable is true if the overlay and platform compatible lists intersect.
	Applicable bool
	// Matched is the first overlay compatible entry found on the platform.
	Matched string
}

// Source identifies which input a [ReadError] refers to.
type Source int

const (
	// SourceOverlay is an overlay source file.
	SourceOverlay Source = iota
	// SourcePlatform is the platform compatible list.
	SourcePlatform
	// SourceModel is the platform model file.
	SourceModel
	// SourceDirectory is an overlay directory.
	SourceDirectory
)

var sourceNames = map[Source]string{
	SourceOverlay:   "overlay",
	SourcePlatform:  "platform compatible list",
	SourceModel:     "platform model",
	SourceDirectory: "overlay directory",
}

func (s Source) String() string {
	if name, ok := sourceNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Source(%d)", s)
}

// ReadError is returned when an input file cannot be read.
type ReadError struct {
	Source Source
	Path   string
	Err    error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Source, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
