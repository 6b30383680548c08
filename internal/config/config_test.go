// File: internal/config/config_test.go
// Brief: Internal config package implementation for 'config'.

// config_test.go verifies Options defaults, validation, and sub-path parsing.
package config

import (
	"reflect"
	"testing"
)

func TestNewOptionsDefaults(t *testing.T) {
	opts := NewOptions()
	if opts.Ref != "HEAD" {
		t.Fatalf("ref should default to HEAD, got %q", opts.Ref)
	}
	if opts.Abbrev != DefaultAbbrev {
		t.Fatalf("abbrev default mismatch, got %d", opts.Abbrev)
	}
	if !opts.ShowDirty {
		t.Fatalf("dirty suffixing should be enabled by default")
	}
	if opts.ColorMode != "auto" {
		t.Fatalf("color mode should default to auto, got %q", opts.ColorMode)
	}
}

func TestValidateAbbrevBounds(t *testing.T) {
	for _, n := range []int{0, 3, 41, -7} {
		opts := NewOptions()
		opts.Abbrev = n
		if err := opts.Validate(); err == nil {
			t.Fatalf("expected validation error for abbrev %d", n)
		}
	}
	opts := NewOptions()
	opts.Abbrev = 40
	if err := opts.Validate(); err != nil {
		t.Fatalf("abbrev 40 should pass: %v", err)
	}
}

func TestValidateSplitsSubdirs(t *testing.T) {
	opts := NewOptions()
	opts.SubdirRaw = "app/; docs ;;/vendor/third_party/"
	if err := opts.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	want := []string{"app", "docs", "vendor/third_party"}
	if !reflect.DeepEqual(opts.Subdirs, want) {
		t.Fatalf("subdirs = %v, want %v", opts.Subdirs, want)
	}
}

func TestValidateEmptyRefFallsBackToHead(t *testing.T) {
	opts := NewOptions()
	opts.Ref = ""
	if err := opts.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if opts.Ref != "HEAD" {
		t.Fatalf("expected HEAD fallback, got %q", opts.Ref)
	}
}

func TestValidateRejectsUnknownColorMode(t *testing.T) {
	opts := NewOptions()
	opts.ColorMode = "rainbow"
	if err := opts.Validate(); err == nil {
		t.Fatalf("expected validation error for color mode")
	}
}
