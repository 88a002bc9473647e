package dtoverlay

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/leodido/dtoverlay/internal/logging"
)

// Scan parses every overlay source directly inside dir and checks each one
// against the platform. Subdirectories are not visited. Results are sorted
// by file name.
//
// Files are selected by extension (see [WithExtensions]). Any read failure,
// including an unreadable overlay, aborts the scan.
func Scan(dir string, opts ...Option) ([]Match, error) {
	cfg := newProbeConfig(opts)
	logger := logging.GetLogger("scan")

	platform, err := readPlatformCompatible(cfg.platformPath)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &ReadError{Source: SourceDirectory, Path: dir, Err: err}
	}

	var matches []Match
	for _, e := range entries {
		if e.IsDir() || !hasExtension(e.Name(), cfg.extensions) {
			logger.Trace().Str("name", e.Name()).Msg("skipping entry")
			continue
		}
		o, err := ParseFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		matches = append(matches, o.Match(platform))
	}

	logger.Debug().
		Str("dir", dir).
		Int("overlays", len(matches)).
		Msg("scanned overlay directory")
	return matches, nil
}

// Applicable returns only the matches whose overlay applies.
func Applicable(matches []Match) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		if m.Applicable {
			out = append(out, m)
		}
	}
	return out
}

func hasExtension(name string, exts []string) bool {
	ext := filepath.Ext(name)
	return slices.ContainsFunc(exts, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}
