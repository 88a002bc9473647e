package dtoverlay

import (
	"strings"
	"testing"
)

func TestRootNodeText(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "properties only",
			src:  "/dts-v1/;\n/ {\n\tcompatible = \"vendor,a\";\n\tmodel = \"A\";\n};\n",
			want: "\n\tcompatible = \"vendor,a\";\n\tmodel = \"A\";\n",
		},
		{
			name: "child nodes dropped at any depth",
			src: `/ {
	compatible = "vendor,a", "vendor,b";
	child {
		compatible = "vendor,c";
		grand { deep = <1>; };
	};
	label = "x{y}";
};
&other { foo; };`,
			want: "\n\tcompatible = \"vendor,a\", \"vendor,b\";\n\tlabel = \"x{y}\";\n",
		},
		{
			name: "label references after the root are excluded",
			src:  "/ {\n\ta = <1>;\n};\n&i2c1 {\n\tb = <2>;\n};\n",
			want: "\n\ta = <1>;\n",
		},
		{
			name: "braces in comments ignored",
			src:  "/* { */\n/ {\n\t// }\n\ta = <1>;\n};\n",
			want: "\n\t\n\ta = <1>;\n",
		},
		{
			name: "no root node",
			src:  "/dts-v1/;\n&panel {\n\tstatus = \"okay\";\n};\n",
			want: "/dts-v1/;\n",
		},
		{
			name: "root on the same line as the header",
			src:  `/dts-v1/; /plugin/; / { compatible = "v,a"; };`,
			want: ` compatible = "v,a"; `,
		},
		{
			name: "path reference value kept",
			src:  "/ {\n\tfoo = <&{/soc/i2c}>;\n\tbar = <1>;\n};",
			want: "\n\tfoo = <&{/soc/i2c}>;\n\tbar = <1>;\n",
		},
		{
			name: "path reference node is not the root",
			src:  "&{/} {\n\ta = <1>;\n};\n",
			want: "\n",
		},
		{
			name: "unterminated root",
			src:  "/ {\n\ta = <1>;\n\tchild {\n",
			want: "\n\ta = <1>;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RootNodeText(tt.src); got != tt.want {
				t.Errorf("RootNodeText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRootNodeText_Unbalanced(t *testing.T) {
	inputs := []string{
		"/ {\n\t}}}};\n\ta = <1>;\n};",
		"/ {\n\t{{{{\n};",
		"}}}{{{;;;",
		"/ {",
		"",
	}
	for _, src := range inputs {
		// Must terminate without panicking; the result is unspecified.
		_ = RootNodeText(src)
	}
}

func TestRootNodeText_NoNestedProperties(t *testing.T) {
	src := readTestdata(t, "overlays/verdin-imx8mm_nested_overlay.dts")

	got := RootNodeText(src)
	for _, nested := range []string{"target-path", "status", "verdin-imx8mp", "__overlay__"} {
		if strings.Contains(got, nested) {
			t.Errorf("root text contains nested %q:\n%s", nested, got)
		}
	}
	if !strings.Contains(got, `model = "Verdin iMX8M Mini";`) {
		t.Errorf("root text lost sibling property after child node:\n%s", got)
	}
}

func TestTokenize(t *testing.T) {
	got := tokenize(`a { b = "x;}"; p = <&{/soc}>; };  c;tail`)
	want := []string{"a {", ` b = "x;}";`, " p = <&{/soc}>;", " };", "  c;", "tail"}
	if len(got) != len(want) {
		t.Fatalf("tokenize() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
