package diff

import (
	"context"
	"runtime"

	"github.com/oneconcern/bommon/pkg/diff/status"
	"github.com/oneconcern/bommon/pkg/tree"
	"go.uber.org/zap"
)

var defaultConcurrency = 2 * runtime.NumCPU()

type side struct {
	tree *tree.Tree
	root tree.Key
}

// Comparison compares two configuration trees.
//
// The trees may be held by the same Tree, or by different ones.
type Comparison struct {
	first  side
	second side

	// set when roots are in different projects or variants
	crossProject bool

	// nil allows everything
	variants map[string]struct{}
	libtypes map[string]struct{}

	ignoreConfigNames bool
	files             *Cache
	concurrency       int
	l                 *zap.Logger
}

// New prepares the comparison of two composite configurations
func New(first *tree.Tree, firstRoot tree.Key, second *tree.Tree, secondRoot tree.Key, opts ...Option) (*Comparison, error) {
	if !firstRoot.IsComposite() || !secondRoot.IsComposite() {
		return nil, status.ErrNotComposite.Wrapf("cannot compare %s with %s", firstRoot, secondRoot)
	}
	c := &Comparison{
		first:        side{tree: first, root: firstRoot},
		second:       side{tree: second, root: secondRoot},
		crossProject: firstRoot.Project != secondRoot.Project || firstRoot.Variant != secondRoot.Variant,
		concurrency:  defaultConcurrency,
		l:            zap.NewNop(),
	}
	for _, apply := range opts {
		apply(c)
	}
	return c, nil
}

// Decomposition maps composite configurations to their direct libraries and releases
type Decomposition map[tree.Key][]tree.Key

// Composites of the decomposition, sorted
func (d Decomposition) Composites() []tree.Key {
	composites := make([]tree.Key, 0, len(d))
	for k := range d {
		composites = append(composites, k)
	}
	tree.SortKeys(composites)
	return composites
}

// Simples lists the distinct libraries and releases of the decomposition, sorted
func (d Decomposition) Simples() []tree.Key {
	set := make(map[tree.Key]struct{})
	for _, simples := range d {
		for _, s := range simples {
			set[s] = struct{}{}
		}
	}
	simples := make([]tree.Key, 0, len(set))
	for s := range set {
		simples = append(simples, s)
	}
	tree.SortKeys(simples)
	return simples
}

// Decompose maps every composite configuration of a tree to its direct local libraries and releases.
// Composites are filtered by variant, libraries and releases by libtype: nil allow-lists let everything through.
func Decompose(t *tree.Tree, root tree.Key, variants, libtypes map[string]struct{}) Decomposition {
	d := make(Decomposition)
	for _, k := range t.FlattenTree(root) {
		if !k.IsComposite() {
			continue
		}
		if _, ok := variants[k.Variant]; variants != nil && !ok {
			continue
		}
		simples := make([]tree.Key, 0)
		for _, child := range t.Children(k) {
			if child.IsComposite() || !k.IsLocal(child) {
				continue
			}
			if _, ok := libtypes[child.Libtype]; libtypes != nil && !ok {
				continue
			}
			simples = append(simples, child)
		}
		d[k] = simples
	}
	return d
}

// Decompositions of the first and second trees
func (c *Comparison) Decompositions() (Decomposition, Decomposition) {
	return Decompose(c.first.tree, c.first.root, c.variants, c.libtypes),
		Decompose(c.second.tree, c.second.root, c.variants, c.libtypes)
}

func (c *Comparison) pairKey(composite, simple tree.Key) (string, bool) {
	if c.crossProject && (composite.Variant == c.first.root.Variant || composite.Variant == c.second.root.Variant) {
		return GenerateKeyDiffProjects(
			c.first.root.Project, c.first.root.Variant,
			c.second.root.Project, c.second.root.Variant,
			simple.Libtype), true
	}
	return GenerateKey(simple.Project, simple.Variant, simple.Libtype), false
}

// Table pairs the libraries and releases of two decompositions.
//
// Composites and their children are visited in sorted order: when several of them map to the
// same key on one side, the last one visited wins.
func (c *Comparison) Table(first, second Decomposition) Table {
	table := make(Table)
	fill := func(d Decomposition, set func(*Pair, tree.Key, string)) {
		for _, composite := range d.Composites() {
			for _, simple := range d[composite] {
				key, cross := c.pairKey(composite, simple)
				pair, ok := table[key]
				if !ok {
					pair = &Pair{
						Key:               key,
						Project:           simple.Project,
						Variant:           simple.Variant,
						Libtype:           simple.Libtype,
						CrossProject:      cross,
						IgnoreConfigNames: c.ignoreConfigNames,
					}
					table[key] = pair
				}
				set(pair, simple, composite.Config)
			}
		}
	}
	fill(first, func(p *Pair, simple tree.Key, parent string) {
		s := simple
		p.First = &s
		p.ParentFirst = parent
	})
	fill(second, func(p *Pair, simple tree.Key, parent string) {
		s := simple
		p.Second = &s
		p.ParentSecond = parent
	})
	c.l.Debug("paired configurations",
		zap.Stringer("first", c.first.root),
		zap.Stringer("second", c.second.root),
		zap.Int("pairs", len(table)),
	)
	return table
}

// Widths of the first two report columns, wide enough for every library and release of both sides
func (c *Comparison) Widths(first, second Decomposition) (int, int) {
	firstWidth, secondWidth := 1, 1
	simples := append(first.Simples(), second.Simples()...)
	for _, s := range simples {
		var w1 int
		if c.crossProject {
			w1 = len(c.first.root.Project) + len(c.first.root.Variant) +
				len(c.second.root.Project) + len(c.second.root.Variant) + len(s.Libtype) + 5
		} else {
			w1 = len(s.Project) + len(s.Variant) + len(s.Libtype) + 4
		}
		w2 := len(s.Library) + len(s.Release) + len(s.Config) + 2
		if w1 > firstWidth {
			firstWidth = w1
		}
		if w2 > secondWidth {
			secondWidth = w2
		}
	}
	return firstWidth, secondWidth
}

// Run decomposes and pairs both trees, then classifies every pair
func (c *Comparison) Run(ctx context.Context) (*Report, error) {
	first, second := c.Decompositions()
	table := c.Table(first, second)
	results, err := c.classify(ctx, table)
	if err != nil {
		return nil, err
	}
	w1, w2 := c.Widths(first, second)
	return &Report{
		First:        c.first.root,
		Second:       c.second.root,
		CrossProject: c.crossProject,
		IncludeFiles: c.files != nil,
		FirstWidth:   w1,
		SecondWidth:  w2,
		Results:      results,
		table:        table,
	}, nil
}
