package dtoverlay

import "github.com/leodido/dtoverlay/internal/logging"

// Check reads the platform compatible list and the overlay at overlayPath
// and reports whether the overlay applies to the platform.
//
// A *[ReadError] is returned if either file cannot be read. An overlay
// without a root compatible property is not an error: it simply does not
// apply.
func Check(overlayPath string, opts ...Option) (*Match, error) {
	cfg := newProbeConfig(opts)

	platform, err := readPlatformCompatible(cfg.platformPath)
	if err != nil {
		return nil, err
	}

	o, err := ParseFile(overlayPath)
	if err != nil {
		return nil, err
	}

	m := o.Match(platform)
	logger := logging.GetLogger("check")
	logger.Debug().
		Str("overlay", overlayPath).
		Strs("compatible", o.Compatible).
		Bool("applicable", m.Applicable).
		Str("matched", m.Matched).
		Msg("checked overlay")
	return &m, nil
}

// IsCompatible reports whether the overlay at overlayPath declares at least
// one compatible string that the platform also declares.
func IsCompatible(overlayPath string, opts ...Option) (bool, error) {
	m, err := Check(overlayPath, opts...)
	if err != nil {
		return false, err
	}
	return m.Applicable, nil
}

// Match checks the overlay against a platform compatible list.
func (o *Overlay) Match(platform []string) Match {
	matched, ok := Intersect(o.Compatible, platform)
	return Match{Overlay: o, Applicable: ok, Matched: matched}
}
