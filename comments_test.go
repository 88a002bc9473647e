package dtoverlay

import (
	"strings"
	"testing"
)

func TestDescription(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "SPDX line skipped",
			src: `// SPDX-License-Identifier: GPL-2.0
// Overlay to enable Foo sensor
/dts-v1/;
`,
			want: "Overlay to enable Foo sensor",
		},
		{
			name: "copyright block skipped",
			src: `// SPDX-License-Identifier: GPL-2.0-or-later OR MIT
/*
 * Copyright 2023 Toradex
 */

// Enable the spidev driver.
`,
			want: "Enable the spidev driver.",
		},
		{
			name: "copyright symbol notice skipped",
			src:  "// Copyright (C) 2021 Foo Ltd.\n// Copyright: Bar\n// Display panel overlay\n",
			want: "Display panel overlay",
		},
		{
			name: "word starting with copyright kept",
			src:  "// Copyright-free overlay for Foo\n/dts-v1/;\n",
			want: "Copyright-free overlay for Foo",
		},
		{
			name: "block comment decoration trimmed",
			src: `/*
 * Generic display timings.
 */
/dts-v1/;
`,
			want: "Generic display timings.",
		},
		{
			name: "single line block comment",
			src:  "/* Short one */\n/dts-v1/;\n",
			want: "Short one",
		},
		{
			name: "code before the first comment",
			src:  "/dts-v1/;\n\n//   Late description  \n",
			want: "Late description",
		},
		{
			name: "trailing comment after code ignored",
			src:  "/dts-v1/; // not a description\n// Real description\n",
			want: "Real description",
		},
		{
			name: "no comments",
			src:  "/dts-v1/;\n/ {\n};\n",
			want: "",
		},
		{
			name: "only license",
			src:  "// SPDX-License-Identifier: MIT\n",
			want: "",
		},
		{
			name: "empty source",
			src:  "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Description(tt.src); got != tt.want {
				t.Errorf("Description() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStripComments_PreservesLineCount(t *testing.T) {
	src := `// header
/* block
   spanning { lines } */
/ {
	compatible = "a"; // trailing
	/* inline */ status = "okay";
};`

	got := StripComments(src)
	if n, want := strings.Count(got, "\n"), strings.Count(src, "\n"); n != want {
		t.Fatalf("line count = %d, want %d\n%s", n, want, got)
	}
	if strings.Contains(got, "header") || strings.Contains(got, "trailing") || strings.Contains(got, "inline") {
		t.Errorf("comment text survived: %q", got)
	}
	if strings.Contains(got, "{ lines }") {
		t.Errorf("braces inside block comment survived: %q", got)
	}
	if !strings.Contains(got, `compatible = "a";`) || !strings.Contains(got, `status = "okay";`) {
		t.Errorf("code lost: %q", got)
	}
}

func TestStripComments_SeparateBlocksDoNotMerge(t *testing.T) {
	src := "/* one */ keep = <1>; /* two */\nalso = <2>;"

	got := StripComments(src)
	want := " keep = <1>; \nalso = <2>;"
	if got != want {
		t.Errorf("StripComments() = %q, want %q", got, want)
	}
}

func TestStripComments_MarkersInsideStrings(t *testing.T) {
	src := `path = "/soc//bus"; // real comment
glob = "/*not a comment*/";`

	got := StripComments(src)
	want := `path = "/soc//bus"; ` + "\n" + `glob = "/*not a comment*/";`
	if got != want {
		t.Errorf("StripComments() = %q, want %q", got, want)
	}
}

func TestStripComments_UnterminatedBlock(t *testing.T) {
	src := "a = <1>;\n/* never closed\nb = <2>;\n"

	got := StripComments(src)
	if got != "a = <1>;\n\n\n" {
		t.Errorf("StripComments() = %q", got)
	}
}

func TestCommentText(t *testing.T) {
	src := `// first
code;
/*
 * second
 */ more;`

	got := CommentText(src)
	want := "first\n\n\nsecond\n"
	if got != want {
		t.Errorf("CommentText() = %q, want %q", got, want)
	}
}
