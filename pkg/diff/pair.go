package diff

import (
	"sort"

	"github.com/oneconcern/bommon/pkg/diff/status"
	"github.com/oneconcern/bommon/pkg/tree"
)

// Kind classifies a pair of configurations, or a pair of files
type Kind int

// Classification outcomes
const (
	Identical Kind = iota
	FirstOnly
	SecondOnly
	Differing
)

func (k Kind) String() string {
	switch k {
	case FirstOnly:
		return "first-only"
	case SecondOnly:
		return "second-only"
	case Differing:
		return "differing"
	default:
		return "identical"
	}
}

// Pair holds the libraries or releases found at the same location in two trees.
// At least one side is set.
type Pair struct {
	Key     string
	Project string
	Variant string
	Libtype string

	First  *tree.Key
	Second *tree.Key

	// name of the composite configuration holding each side
	ParentFirst  string
	ParentSecond string

	// CrossProject is set when the trees compared are rooted at different projects or variants
	CrossProject bool

	// IgnoreConfigNames compares libraries and releases only, not configuration names
	IgnoreConfigNames bool
}

// FirstOnly tells if only the first side is set
func (p *Pair) FirstOnly() bool {
	return p.First != nil && p.Second == nil
}

// SecondOnly tells if only the second side is set
func (p *Pair) SecondOnly() bool {
	return p.Second != nil && p.First == nil
}

// BothConfigs tells if both sides are set
func (p *Pair) BothConfigs() bool {
	return p.First != nil && p.Second != nil
}

// Differ tells if both sides differ. It fails when a side is not set.
func (p *Pair) Differ() (bool, error) {
	if !p.BothConfigs() {
		return false, status.ErrSingleSided.Wrapf("%s", p.Key)
	}
	if p.IgnoreConfigNames {
		return p.First.Library != p.Second.Library || p.First.Release != p.Second.Release, nil
	}
	return *p.First != *p.Second, nil
}

// Kind classifies the pair
func (p *Pair) Kind() Kind {
	switch {
	case p.FirstOnly():
		return FirstOnly
	case p.SecondOnly():
		return SecondOnly
	}
	if differ, _ := p.Differ(); differ {
		return Differing
	}
	return Identical
}

// Table indexes pairs by key
type Table map[string]*Pair

// Keys of the table, sorted
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Libtypes found in the table, sorted
func (t Table) Libtypes() []string {
	set := make(map[string]struct{})
	for _, p := range t {
		set[p.Libtype] = struct{}{}
	}
	libtypes := make([]string, 0, len(set))
	for l := range set {
		libtypes = append(libtypes, l)
	}
	sort.Strings(libtypes)
	return libtypes
}
