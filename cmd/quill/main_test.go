package main

import (
	"path/filepath"
	"testing"

	"quill/internal/driver"
)

func TestReadColorMode(t *testing.T) {
	cases := []struct {
		in   string
		want colorMode
	}{
		{"", colorModeAuto},
		{"auto", colorModeAuto},
		{"AUTO", colorModeAuto},
		{"on", colorModeOn},
		{" Off ", colorModeOff},
	}
	for _, tc := range cases {
		got, err := readColorMode(tc.in)
		if err != nil {
			t.Errorf("readColorMode(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("readColorMode(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
	if _, err := readColorMode("rainbow"); err == nil {
		t.Error("invalid mode should fail")
	}
}

func TestDisplayPath(t *testing.T) {
	root := filepath.Join("/", "proj")
	inside := filepath.Join(root, "generated", "com", "A.java")
	if got := displayPath(root, inside); got != filepath.Join("generated", "com", "A.java") {
		t.Errorf("got %q", got)
	}
	outside := filepath.Join("/", "elsewhere", "A.java")
	if got := displayPath(root, outside); got != outside {
		t.Errorf("outside path should stay absolute, got %q", got)
	}
}

func TestStatusLabelStates(t *testing.T) {
	generateDryRun = false
	if got := statusLabel(driver.Result{Cached: true}); got == "" {
		t.Error("empty label for cached result")
	}
	fresh := statusLabel(driver.Result{})
	cached := statusLabel(driver.Result{Cached: true})
	if fresh == cached {
		t.Error("fresh and cached results should label differently")
	}
	generateDryRun = true
	defer func() { generateDryRun = false }()
	if got := statusLabel(driver.Result{}); got == fresh {
		t.Error("dry-run label should differ from a fresh generate")
	}
}
