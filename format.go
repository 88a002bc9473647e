package dtoverlay

import (
	"fmt"
	"strings"
)

// String returns a human-readable summary of the platform.
func (p *Platform) String() string {
	var b strings.Builder

	writeField(&b, "Model", p.Model)
	writeField(&b, "Kernel", p.KernelRelease)
	b.WriteString("Compatible:\n")
	if len(p.Compatible) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, c := range p.Compatible {
		fmt.Fprintf(&b, "  %s\n", c)
	}

	return b.String()
}

// String returns a one-line summary of the match.
func (m Match) String() string {
	name := "(unnamed)"
	if m.Overlay != nil && m.Overlay.Path != "" {
		name = m.Overlay.Path
	}
	if m.Applicable {
		return fmt.Sprintf("%s: applicable (%s)", name, m.Matched)
	}
	return fmt.Sprintf("%s: not applicable", name)
}

func writeField(b *strings.Builder, name, value string) {
	if value == "" {
		value = "unknown"
	}
	fmt.Fprintf(b, "%s: %s\n", name, value)
}
