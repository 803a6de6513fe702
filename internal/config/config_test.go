package config

import "testing"

func TestLoadMissingFileYieldsZeroOptions(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	opts, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.URI != "" || opts.Table != "" || opts.Theme != "" {
		t.Errorf("missing config should be zero, got %+v", opts)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	want := &Options{URI: "postgres://localhost/demo", Table: "items", Theme: "striped"}
	if err := want.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("round trip mismatch: %+v != %+v", got, want)
	}
}
