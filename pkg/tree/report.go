package tree

import (
	"fmt"
	"sort"
	"strings"
)

// ReportOption tunes Report
type ReportOption func(*reportOptions)

type reportOptions struct {
	simple    bool
	libraries bool
	noHier    bool
}

// ShowSimple lists libraries and releases (the default)
func ShowSimple(enabled bool) ReportOption {
	return func(o *reportOptions) {
		o.simple = enabled
	}
}

// ShowLibraries appends library@release to libraries and releases
func ShowLibraries(enabled bool) ReportOption {
	return func(o *reportOptions) {
		o.libraries = enabled
	}
}

// NoHierarchy lists the composite children of root without descending into them
func NoHierarchy(enabled bool) ReportOption {
	return func(o *reportOptions) {
		o.noHier = enabled
	}
}

// Report renders a tree, one tab-indented line per configuration.
// Libraries and releases come first at each level, then composite configurations, each sorted by full name.
func (t *Tree) Report(root Key, opts ...ReportOption) string {
	o := reportOptions{simple: true}
	for _, apply := range opts {
		apply(&o)
	}
	var b strings.Builder
	t.report(&b, root, 0, o)
	return b.String()
}

func (t *Tree) report(b *strings.Builder, key Key, depth int, o reportOptions) {
	indent := strings.Repeat("\t", depth)
	if !key.IsComposite() {
		b.WriteString(indent + key.FullName())
		if o.libraries {
			b.WriteString(" " + key.Library)
			if key.Release != "" {
				b.WriteString("@" + key.Release)
			}
		}
		b.WriteString("\n")
		return
	}

	b.WriteString(indent + key.FullName() + "\n")
	children := t.Children(key)
	if o.simple {
		for _, child := range children {
			if !child.IsComposite() {
				t.report(b, child, depth+1, o)
			}
		}
	}
	for _, child := range children {
		if !child.IsComposite() {
			continue
		}
		if o.noHier {
			b.WriteString("\t" + child.FullName() + "\n")
			continue
		}
		t.report(b, child, depth+1, o)
	}
}

// Dot lists the edges between composite configurations, in the dot language. Lines are sorted.
func (t *Tree) Dot(root Key) []string {
	lines := make(map[string]struct{})
	t.walkComposites(root, func(k Key) bool {
		for _, child := range t.Children(k) {
			if child.IsComposite() {
				lines[fmt.Sprintf("%q -> %q;", k.FullName(), child.FullName())] = struct{}{}
			}
		}
		return true
	})
	sorted := make([]string, 0, len(lines))
	for line := range lines {
		sorted = append(sorted, line)
	}
	sort.Strings(sorted)
	return sorted
}
