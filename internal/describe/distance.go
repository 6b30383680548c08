package describe

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
)

// ErrUnreachable is returned by Distance when no ancestry path connects
// the two commits.
var ErrUnreachable = errors.New("commit is not an ancestor")

// Distance returns the minimum number of parent-edge hops from `from` to
// its ancestor `to`. It runs a level-synchronized breadth-first search:
// two queues hold the current and next frontier, and the hop count only
// advances when a whole frontier has been drained, so the first hit is
// guaranteed to be the shortest path even through merge reconvergence.
//
// Distance(x, x) is 0. A target that is not an ancestor of `from` yields
// ErrUnreachable rather than a sentinel count.
func Distance(g Graph, from, to plumbing.Hash) (int, error) {
	if from == to {
		return 0, nil
	}

	current := []plumbing.Hash{from}
	var next []plumbing.Hash
	seen := map[plumbing.Hash]struct{}{from: {}}
	distance := 1

	for len(current) > 0 || len(next) > 0 {
		if len(current) == 0 {
			distance++
			current, next = next, current[:0]
		}
		commit := current[0]
		current = current[1:]

		parents, err := g.Parents(commit)
		if err != nil {
			return 0, fmt.Errorf("load parents of %s: %w", commit, err)
		}
		for _, p := range parents {
			if p == to {
				return distance, nil
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			next = append(next, p)
		}
	}
	return 0, ErrUnreachable
}
