// File: cmd/revstamp/main_test.go
// Brief: Main revstamp CLI entrypoint and root command wiring.

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var testConfigPath string
var testConfigOnce sync.Once

// setTestConfig points REVSTAMP_CONFIG at an empty config file. The file
// outlives individual tests because cobra initializers registered by every
// newRootCommand call re-read it on each Execute.
func setTestConfig(t *testing.T) {
	t.Helper()
	testConfigOnce.Do(func() {
		dir, err := os.MkdirTemp("", "revstamp-test-config")
		if err != nil {
			t.Fatalf("temp dir: %v", err)
		}
		testConfigPath = filepath.Join(dir, "config.yaml")
		if err := os.WriteFile(testConfigPath, []byte("{}\n"), 0o600); err != nil {
			t.Fatalf("write config: %v", err)
		}
	})
	t.Setenv("REVSTAMP_CONFIG", testConfigPath)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// seedRepo creates an on-disk repository with commits A <- B <- C and an
// annotated tag v1 on B. Returns the directory and the hash of C.
func seedRepo(t *testing.T) (string, plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	when := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	commit := func(content, msg string) plumbing.Hash {
		when = when.Add(time.Minute)
		if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := wt.Add("file.txt"); err != nil {
			t.Fatalf("add: %v", err)
		}
		h, err := wt.Commit(msg, &git.CommitOptions{
			Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: when},
		})
		if err != nil {
			t.Fatalf("commit: %v", err)
		}
		return h
	}
	commit("one", "A")
	b := commit("two", "B")
	c := commit("three", "C")
	if _, err := repo.CreateTag("v1", b, &git.CreateTagOptions{
		Tagger:  &object.Signature{Name: "tester", Email: "tester@example.com", When: when},
		Message: "v1",
	}); err != nil {
		t.Fatalf("tag: %v", err)
	}
	return dir, c
}

func TestRootDescribesRepository(t *testing.T) {
	setTestConfig(t)
	dir, head := seedRepo(t)

	out, _, err := execute(t, "-C", dir, "--color", "never")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := "v1-1-g" + head.String()[:7]
	if got := strings.TrimSpace(out); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRootRejectsInvalidAbbrev(t *testing.T) {
	setTestConfig(t)
	if _, _, err := execute(t, "--abbrev", "2"); err == nil {
		t.Fatalf("expected validation error for short abbrev")
	}
}

func TestRootFailsOutsideRepository(t *testing.T) {
	setTestConfig(t)
	if _, _, err := execute(t, "-C", t.TempDir()); err == nil {
		t.Fatalf("expected error outside a repository")
	}
}

func TestRootRejectsMissingSubdir(t *testing.T) {
	setTestConfig(t)
	dir, _ := seedRepo(t)
	_, _, err := execute(t, "-C", dir, "--subdir", "no/such/dir")
	if err == nil || !strings.Contains(err.Error(), "no/such/dir") {
		t.Fatalf("expected sub-path validation error, got %v", err)
	}
}

func TestVersionCommandShort(t *testing.T) {
	setTestConfig(t)
	out, _, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if strings.TrimSpace(out) != "dev" {
		t.Fatalf("expected dev version, got %q", out)
	}
}
