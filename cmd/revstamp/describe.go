// File: cmd/revstamp/describe.go
// Brief: CLI wiring that runs the describe pipeline and renders the result.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/revstamp/internal/config"
	"github.com/example/revstamp/internal/describe"
	"github.com/example/revstamp/internal/gitrepo"
	"github.com/example/revstamp/internal/logging"
)

// runDescribe drives the full pipeline: open the repository, resolve the
// start, build the tag index, search and score candidates, render.
func runDescribe(cmd *cobra.Command, opts *config.Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	logger, err := logging.New(opts.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	repo, err := gitrepo.Open(opts.RepoPath, logger)
	if err != nil {
		return err
	}
	start, err := repo.ResolveRef(opts.Ref)
	if err != nil {
		return err
	}
	if err := repo.ValidatePaths(opts.Subdirs); err != nil {
		return err
	}
	start, err = repo.NearestTouching(start, opts.Subdirs)
	if err != nil {
		return err
	}
	tags, err := repo.TagIndex(opts.SemverOnly)
	if err != nil {
		return err
	}
	res, err := describe.Describe(repo, start, tags, describe.Options{
		Abbrev:    opts.Abbrev,
		ShowDirty: opts.ShowDirty,
	})
	if err != nil {
		return err
	}
	if opts.ShowDirty {
		res.Dirty = !repo.WorktreeClean()
	}
	fmt.Fprintln(cmd.OutOrStdout(), render(res, opts.ColorMode))
	return nil
}

// render colorizes the description for terminals: the tag in green, the
// dirty suffix in red. Piped output stays plain under mode auto.
func render(res describe.Result, mode string) string {
	if mode == "never" || (mode == "auto" && color.NoColor) {
		return res.String()
	}
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	if mode == "always" {
		green.EnableColor()
		red.EnableColor()
	}
	tag := res.Tag
	if tag != "" {
		tag = green.Sprint(tag)
	}
	suffix := ""
	if res.ShowDirty && res.Dirty {
		suffix = red.Sprint(describe.DirtySuffix)
	}
	return fmt.Sprintf("%s-%d-g%s%s", tag, res.Distance, res.Hash, suffix)
}
