// Package describe computes a human-readable name for a repository
// revision in the style of "git describe": the nearest reachable tag, the
// number of commits between that tag and the revision, and the revision's
// abbreviated hash. It operates purely on the commit ancestry graph; all
// repository access goes through the Graph interface so the algorithms can
// be exercised against in-memory histories.
package describe

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNoTags is returned when the repository carries no usable tags. A
// description is impossible without at least one tag to anchor it.
var ErrNoTags = errors.New("no tags found")

// Graph exposes parent edges of the commit ancestry DAG. Implementations
// must return an error only when a referenced commit cannot be loaded at
// all; a root commit is an empty (or nil) parent slice, not an error.
type Graph interface {
	Parents(h plumbing.Hash) ([]plumbing.Hash, error)
}

// TagMap maps a commit hash to the name of a tag pointing at it.
type TagMap map[plumbing.Hash]string

// Candidate is a tagged ancestor discovered by NearestTags.
type Candidate struct {
	Hash plumbing.Hash
	Tag  string
}

// Options configures a Describe run.
type Options struct {
	// Abbrev is the length of the abbreviated hash in the result.
	Abbrev int
	// ShowDirty controls whether Result.String renders the dirty suffix
	// when the working tree is dirty.
	ShowDirty bool
}

// Describe finds the nearest tagged ancestor of start, computes its
// distance, and assembles the result. Candidates at equal distance are
// resolved by lexical tag-name order so repeated runs over the same
// history produce the same answer regardless of parent ordering.
//
// A non-empty tag map with no reachable tagged ancestor yields a result
// with an empty tag name and distance 0 rather than an error; callers that
// require a tag should check Result.Tag. An empty tag map is ErrNoTags.
func Describe(g Graph, start plumbing.Hash, tags TagMap, opts Options) (Result, error) {
	if len(tags) == 0 {
		return Result{}, ErrNoTags
	}
	candidates, err := NearestTags(g, start, tags)
	if err != nil {
		return Result{}, err
	}

	var best *Candidate
	bestDistance := 0
	for i := range candidates {
		c := candidates[i]
		d, err := Distance(g, start, c.Hash)
		if err != nil {
			if errors.Is(err, ErrUnreachable) {
				continue
			}
			return Result{}, err
		}
		switch {
		case best == nil, d < bestDistance:
			best = &candidates[i]
			bestDistance = d
		case d == bestDistance && c.Tag < best.Tag:
			best = &candidates[i]
		}
	}

	res := Result{
		Hash:      abbreviate(start, opts.Abbrev),
		ShowDirty: opts.ShowDirty,
	}
	if best != nil {
		res.Tag = best.Tag
		res.Distance = bestDistance
	}
	return res, nil
}

// NearestTags walks parent edges breadth-first from start and collects
// every tagged commit reachable without crossing another tagged commit.
// Tagged commits truncate descent along their branch: history beyond a tag
// cannot contain a nearer tag on that path. Candidates come back in
// first-seen (breadth) order.
func NearestTags(g Graph, start plumbing.Hash, tags TagMap) ([]Candidate, error) {
	queue := []plumbing.Hash{start}
	seen := map[plumbing.Hash]struct{}{start: {}}
	var candidates []Candidate

	for len(queue) > 0 {
		commit := queue[0]
		queue = queue[1:]
		if name, ok := tags[commit]; ok {
			candidates = append(candidates, Candidate{Hash: commit, Tag: name})
			continue
		}
		parents, err := g.Parents(commit)
		if err != nil {
			return nil, fmt.Errorf("load parents of %s: %w", commit, err)
		}
		for _, p := range parents {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			queue = append(queue, p)
		}
	}
	return candidates, nil
}

func abbreviate(h plumbing.Hash, n int) string {
	s := h.String()
	if n <= 0 || n > len(s) {
		return s
	}
	return s[:n]
}
