package describe

import (
	"fmt"
	"regexp"
	"strconv"
)

// DirtySuffix is appended to a description when the working tree carries
// uncommitted changes and dirty rendering is enabled.
const DirtySuffix = "-dirty"

// Result is the assembled description of a revision. It is a plain value;
// construct it once and treat it as immutable.
type Result struct {
	Tag       string
	Distance  int
	Hash      string
	Dirty     bool
	ShowDirty bool
}

// String renders the description as <tag>-<distance>-g<hash>, with the
// dirty suffix appended only when both ShowDirty and Dirty are set.
func (r Result) String() string {
	suffix := ""
	if r.ShowDirty && r.Dirty {
		suffix = DirtySuffix
	}
	return fmt.Sprintf("%s-%d-g%s%s", r.Tag, r.Distance, r.Hash, suffix)
}

var describePattern = regexp.MustCompile(`^(.*)-(\d+)-g([0-9a-f]+)(-dirty)?$`)

// Parse recovers the (tag, distance, hash, dirty) tuple from a rendered
// description. Tag names containing a "-<digits>-g<hex>" run of their own
// are inherently ambiguous; the leftmost-longest tag wins, matching what
// String produced for any tag that does not end in such a run.
func Parse(s string) (Result, error) {
	m := describePattern.FindStringSubmatch(s)
	if m == nil {
		return Result{}, fmt.Errorf("malformed description %q", s)
	}
	distance, err := strconv.Atoi(m[2])
	if err != nil {
		return Result{}, fmt.Errorf("malformed distance in %q: %w", s, err)
	}
	dirty := m[4] == DirtySuffix
	return Result{
		Tag:       m[1],
		Distance:  distance,
		Hash:      m[3],
		Dirty:     dirty,
		ShowDirty: dirty,
	}, nil
}
