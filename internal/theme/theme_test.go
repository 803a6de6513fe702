package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPresetFallsBackToDefault(t *testing.T) {
	if got := Preset("striped"); got.Name != "striped" {
		t.Errorf("Preset(striped).Name = %q", got.Name)
	}
	if got := Preset("no-such-theme"); got.Name != "default" {
		t.Errorf("unknown preset should fall back to default, got %q", got.Name)
	}
	if got := Preset(""); got.Name != "default" {
		t.Errorf("empty preset name should fall back to default, got %q", got.Name)
	}
}

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	thm, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Error("missing file should surface an error")
	}
	if thm.Name != "default" {
		t.Errorf("missing file should yield the default theme, got %q", thm.Name)
	}
}

func TestLoadInheritsUnsetProperties(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	data := `{"name": "custom", "cell": {"header": {"text": "#ff0000"}}}`
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	thm, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if thm.Name != "custom" {
		t.Errorf("Name = %q, want custom", thm.Name)
	}
	if thm.Cell.Header.Text != "#ff0000" {
		t.Errorf("overridden header text = %q", thm.Cell.Header.Text)
	}
	// Untouched groups keep the default preset values.
	if thm.Grid.Border != Default().Grid.Border {
		t.Errorf("unset grid border should inherit default, got %q", thm.Grid.Border)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	want := Striped()
	if err := want.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: %+v != %+v", got, want)
	}
}

func TestCompileUsesFallbacks(t *testing.T) {
	// An empty theme must still compile into usable styles.
	s := Compile(Theme{})
	if s.Header.GetForeground() != Compile(Default()).Header.GetForeground() {
		t.Error("empty theme should compile with default colors")
	}
}
