// File: internal/config/config.go
// Brief: Internal config package implementation for 'config'.

// Package config defines the flag plumbing and runtime options for the
// revstamp CLI, translating Cobra/Viper flag values into a strongly typed
// struct consumed by the describe pipeline.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Options holds all CLI configuration for one description run.
type Options struct {
	// Ref is the revision the description starts from.
	Ref string
	// RepoPath is where the repository search begins.
	RepoPath string
	// Abbrev is the abbreviated hash length in the output.
	Abbrev int
	// SubdirRaw is the raw semicolon-separated sub-path restriction.
	SubdirRaw string
	// Subdirs is SubdirRaw split and cleaned by Validate.
	Subdirs []string
	// ShowDirty enables the dirty suffix when the tree has uncommitted changes.
	ShowDirty bool
	// SemverOnly restricts the tag index to parseable semantic versions.
	SemverOnly bool
	// ColorMode is auto, always, or never.
	ColorMode string
	// LogLevel controls diagnostic output (debug, info, warn, error).
	LogLevel string
}

const (
	// DefaultAbbrev matches git's short-hash convention.
	DefaultAbbrev = 7

	minAbbrev = 4
	maxAbbrev = 40
)

// NewOptions returns Options with defaults applied.
func NewOptions() *Options {
	return &Options{
		Ref:       "HEAD",
		RepoPath:  ".",
		Abbrev:    DefaultAbbrev,
		ShowDirty: true,
		ColorMode: "auto",
		LogLevel:  "warn",
	}
}

// BindFlags attaches describe flags to the given FlagSet.
func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.RepoPath, "repo", "C", o.RepoPath, "Path to the repository (or any directory inside it)")
	fs.IntVarP(&o.Abbrev, "abbrev", "a", o.Abbrev, "Length of the abbreviated commit hash")
	fs.StringVarP(&o.SubdirRaw, "subdir", "s", o.SubdirRaw, "Restrict the description to history touching these sub-paths (semicolon-separated)")
	fs.BoolVar(&o.ShowDirty, "dirty", o.ShowDirty, "Append -dirty when the working tree has uncommitted changes")
	fs.BoolVar(&o.SemverOnly, "semver-only", o.SemverOnly, "Consider only tags that parse as semantic versions")
	fs.StringVar(&o.ColorMode, "color", o.ColorMode, "Colorize output (auto, always, never)")
}

// Validate normalizes and checks the options. It must run before any
// repository access, so a bad configuration never starts a traversal.
func (o *Options) Validate() error {
	if o.Ref == "" {
		o.Ref = "HEAD"
	}
	if o.Abbrev < minAbbrev || o.Abbrev > maxAbbrev {
		return fmt.Errorf("abbrev must be between %d and %d, got %d", minAbbrev, maxAbbrev, o.Abbrev)
	}
	switch o.ColorMode {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("unknown color mode %q (expected auto, always, or never)", o.ColorMode)
	}
	o.Subdirs = o.Subdirs[:0]
	for _, part := range strings.Split(o.SubdirRaw, ";") {
		part = strings.Trim(strings.TrimSpace(part), "/")
		if part == "" {
			continue
		}
		o.Subdirs = append(o.Subdirs, part)
	}
	return nil
}
