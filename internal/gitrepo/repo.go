// Package gitrepo adapts a go-git repository to the graph, tag, and
// working-tree queries the describe algorithms consume.
package gitrepo

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/blang/semver/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"go.uber.org/zap"

	"github.com/example/revstamp/internal/describe"
)

// Repository wraps an opened git repository. All methods are read-only;
// the repository is assumed quiescent for the duration of one description.
type Repository struct {
	repo *git.Repository
	log  *zap.Logger
}

// Open locates and opens the repository containing path, searching parent
// directories for the .git directory the way the git CLI does.
func Open(path string, log *zap.Logger) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", path, err)
	}
	return Wrap(repo, log), nil
}

// Wrap adapts an already-open go-git repository.
func Wrap(repo *git.Repository, log *zap.Logger) *Repository {
	if log == nil {
		log = zap.NewNop()
	}
	return &Repository{repo: repo, log: log}
}

// ResolveRef resolves a revision name (HEAD, branch, tag, or hash) to a
// commit hash. An unresolvable name is a configuration error.
func (r *Repository) ResolveRef(name string) (plumbing.Hash, error) {
	h, err := r.repo.ResolveRevision(plumbing.Revision(name))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolve %q: %w", name, err)
	}
	return *h, nil
}

// Parents implements describe.Graph. A commit that cannot be loaded means
// corrupt or incomplete history, so the error propagates.
func (r *Repository) Parents(h plumbing.Hash) ([]plumbing.Hash, error) {
	commit, err := r.repo.CommitObject(h)
	if err != nil {
		return nil, fmt.Errorf("commit %s: %w", h, err)
	}
	return commit.ParentHashes, nil
}

// TagIndex enumerates repository tags and maps each target commit to a tag
// name. Annotated tags are dereferenced to their target commit. Tags whose
// target cannot be resolved to a commit are skipped; losing one tag does
// not invalidate the rest of the index. When two tags point at the same
// commit the lexically smallest name wins, keeping the index deterministic
// regardless of ref iteration order.
//
// When semverOnly is set, tags that do not parse as semantic versions
// (after an optional leading "v") are excluded.
func (r *Repository) TagIndex(semverOnly bool) (describe.TagMap, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	tags := describe.TagMap{}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if semverOnly {
			if _, err := semver.Parse(strings.TrimPrefix(name, "v")); err != nil {
				return nil
			}
		}
		target := ref.Hash()
		obj, err := r.repo.TagObject(ref.Hash())
		switch {
		case err == nil:
			target = obj.Target // annotated tag
		case errors.Is(err, plumbing.ErrObjectNotFound):
			// lightweight tag, the ref already points at the commit
		default:
			r.log.Debug("skipping unresolvable tag", zap.String("tag", name), zap.Error(err))
			return nil
		}
		if _, err := r.repo.CommitObject(target); err != nil {
			r.log.Debug("skipping tag with non-commit target",
				zap.String("tag", name), zap.String("target", target.String()), zap.Error(err))
			return nil
		}
		if existing, ok := tags[target]; !ok || name < existing {
			tags[target] = name
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("index tags: %w", err)
	}
	return tags, nil
}

// WorktreeClean reports whether the working tree has no uncommitted
// changes. A failed status check is downgraded to "clean" so a broken
// worktree never blocks stamping, but the failure is logged.
func (r *Repository) WorktreeClean() bool {
	wt, err := r.repo.Worktree()
	if err != nil {
		r.log.Warn("cannot inspect working tree, assuming clean", zap.Error(err))
		return true
	}
	status, err := wt.Status()
	if err != nil {
		r.log.Warn("cannot determine working tree status, assuming clean", zap.Error(err))
		return true
	}
	return status.IsClean()
}

// ValidatePaths checks that every restricted sub-path exists in the
// working tree. An entry that does not exist is a configuration error and
// must be reported before any traversal starts.
func (r *Repository) ValidatePaths(paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	wt, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("working tree unavailable for path validation: %w", err)
	}
	for _, p := range paths {
		if _, err := wt.Filesystem.Stat(p); err != nil {
			return fmt.Errorf("%q does not appear to be a path inside this repository: %w", p, err)
		}
	}
	return nil
}

// NearestTouching walks history from start and returns the most recent
// commit whose change-set touches any of the given paths. The describe
// algorithms stay ignorant of path semantics: restriction only moves the
// effective starting commit. If no commit touches the paths, start is
// returned unchanged.
func (r *Repository) NearestTouching(start plumbing.Hash, paths []string) (plumbing.Hash, error) {
	if len(paths) == 0 {
		return start, nil
	}
	iter, err := r.repo.Log(&git.LogOptions{From: start, PathFilter: pathPredicate(paths)})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("walk history from %s: %w", start, err)
	}
	defer iter.Close()
	commit, err := iter.Next()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return start, nil
		}
		return plumbing.ZeroHash, fmt.Errorf("walk history from %s: %w", start, err)
	}
	return commit.Hash, nil
}

// pathPredicate reports whether a changed file falls under any of the
// restricted sub-paths.
func pathPredicate(paths []string) func(string) bool {
	prefixes := make([]string, 0, len(paths))
	for _, p := range paths {
		prefixes = append(prefixes, strings.TrimSuffix(p, "/")+"/")
	}
	return func(file string) bool {
		for i, p := range paths {
			if file == p || strings.HasPrefix(file, prefixes[i]) {
				return true
			}
		}
		return false
	}
}
