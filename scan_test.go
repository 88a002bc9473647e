package dtoverlay

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestScan(t *testing.T) {
	dir := filepath.Join("testdata", "overlays")
	platform := WithPlatformPath(filepath.Join("testdata", "compatible"))

	matches, err := Scan(dir, platform)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []struct {
		name       string
		applicable bool
	}{
		{"display_no_compatible_overlay.dts", false},
		{"verdin-imx8mm_nested_overlay.dts", false},
		{"verdin-imx8mp_spidev_overlay.dts", true},
	}
	if len(matches) != len(want) {
		t.Fatalf("got %d matches, want %d: %v", len(matches), len(want), matches)
	}
	for i, w := range want {
		m := matches[i]
		if filepath.Base(m.Overlay.Path) != w.name {
			t.Errorf("matches[%d] = %s, want %s", i, m.Overlay.Path, w.name)
		}
		if m.Applicable != w.applicable {
			t.Errorf("%s: Applicable = %v, want %v", w.name, m.Applicable, w.applicable)
		}
	}

	applicable := Applicable(matches)
	if len(applicable) != 1 || filepath.Base(applicable[0].Overlay.Path) != "verdin-imx8mp_spidev_overlay.dts" {
		t.Errorf("Applicable() = %v", applicable)
	}
}

func TestScan_ExtensionsAndDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a_overlay.DTSO", `/ { compatible = "vendor,a"; };`)
	writeFile(t, dir, "b_overlay.dts", `/ { compatible = "vendor,b"; };`)
	writeFile(t, dir, "notes.txt", "ignored")
	if err := os.Mkdir(filepath.Join(dir, "sub.dts"), 0755); err != nil {
		t.Fatal(err)
	}
	platform := writeFile(t, t.TempDir(), "compatible", "vendor,a\x00")

	matches, err := Scan(dir, WithPlatformPath(platform), WithExtensions(".dtso"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), matches)
	}
	if !matches[0].Applicable {
		t.Error("a_overlay.DTSO should apply")
	}

	matches, err = Scan(dir, WithPlatformPath(platform))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("default extensions: got %d matches, want 2", len(matches))
	}
}

func TestScan_MissingDirectory(t *testing.T) {
	_, err := Scan("/nonexistent/overlays", WithPlatformPath(filepath.Join("testdata", "compatible")))

	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("error = %v, want *ReadError", err)
	}
	if re.Source != SourceDirectory {
		t.Errorf("Source = %v, want %v", re.Source, SourceDirectory)
	}
}
