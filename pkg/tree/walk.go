package tree

import (
	"regexp"
	"sort"

	"github.com/oneconcern/bommon/pkg/model"
	"go.uber.org/zap"
)

// walk visits every node reachable from root, root included, depth first and once per key.
// Children are listed after their parent is visited. The walk stops when visit returns false.
func (t *Tree) walk(root Key, visit func(Key) bool) {
	visited := make(keySet)
	var step func(Key) bool
	step = func(k Key) bool {
		if visited.has(k) {
			return true
		}
		visited.add(k)
		if _, ok := t.nodes[k]; !ok {
			return true
		}
		if !visit(k) {
			return false
		}
		for _, child := range t.Children(k) {
			if !step(child) {
				return false
			}
		}
		return true
	}
	step(root)
}

func (t *Tree) walkComposites(root Key, visit func(Key) bool) {
	t.walk(root, func(k Key) bool {
		if !k.IsComposite() {
			return true
		}
		return visit(k)
	})
}

// FlattenTree lists every distinct node reachable from root, root included, sorted
func (t *Tree) FlattenTree(root Key) []Key {
	set := make(keySet)
	t.walk(root, func(k Key) bool {
		set.add(k)
		return true
	})
	return set.sorted()
}

// IsObjectInTree tells if obj is reachable from root
func (t *Tree) IsObjectInTree(root, obj Key) bool {
	return root == obj || t.reaches(root, obj)
}

// LocalObjects lists the nodes of the tree in the same project and variant as root, root included
func (t *Tree) LocalObjects(root Key) []Key {
	var local []Key
	for _, k := range t.FlattenTree(root) {
		if root.IsLocal(k) {
			local = append(local, k)
		}
	}
	return local
}

// ForeignObjects lists the nodes of the tree outside the project and variant of root
func (t *Tree) ForeignObjects(root Key) []Key {
	var foreign []Key
	for _, k := range t.FlattenTree(root) {
		if !root.IsLocal(k) {
			foreign = append(foreign, k)
		}
	}
	return foreign
}

// AllProjects lists the projects found in the tree, sorted
func (t *Tree) AllProjects(root Key) []string {
	set := make(map[string]struct{})
	t.walk(root, func(k Key) bool {
		set[k.Project] = struct{}{}
		return true
	})
	projects := make([]string, 0, len(set))
	for p := range set {
		projects = append(projects, p)
	}
	sort.Strings(projects)
	return projects
}

// Search finds configurations under root matching regular expressions.
//
// When libtype is nil, only composite configurations are matched on project and variant.
// Otherwise only simple configurations are matched, on libtype as well: an empty libtype
// expression matches all of them.
func (t *Tree) Search(root Key, project, variant string, libtype *string) ([]Key, error) {
	if project == "" && variant == "" && (libtype == nil || *libtype == "") {
		t.l.Warn("search called with no search criteria", zap.Stringer("root", root))
		return nil, nil
	}
	projectRe, err := regexp.Compile(project)
	if err != nil {
		return nil, err
	}
	variantRe, err := regexp.Compile(variant)
	if err != nil {
		return nil, err
	}
	var libtypeRe *regexp.Regexp
	if libtype != nil {
		if libtypeRe, err = regexp.Compile(*libtype); err != nil {
			return nil, err
		}
	}

	found := make(keySet)
	t.walk(root, func(k Key) bool {
		if !projectRe.MatchString(k.Project) || !variantRe.MatchString(k.Variant) {
			return true
		}
		switch {
		case libtypeRe == nil && k.IsComposite():
			found.add(k)
		case libtypeRe != nil && !k.IsComposite() && libtypeRe.MatchString(k.Libtype):
			found.add(k)
		}
		return true
	})
	return found.sorted(), nil
}

// EmptyConfigs lists the composite configurations without children under root, root included
func (t *Tree) EmptyConfigs(root Key) []Key {
	var empty []Key
	t.walkComposites(root, func(k Key) bool {
		if len(t.nodes[k].children) == 0 {
			empty = append(empty, k)
		}
		return true
	})
	SortKeys(empty)
	return empty
}

// RemoveEmptyConfigs removes empty composite configurations from the tree, until
// no removal leaves another configuration empty. It returns the number of removals.
func (t *Tree) RemoveEmptyConfigs(root Key) int {
	removed := 0
	for {
		pass := 0
		for _, empty := range t.EmptyConfigs(root) {
			if empty == root {
				continue
			}
			t.l.Debug("removing empty configuration", zap.Stringer("config", empty))
			pass += t.RemoveObjectFromTree(root, empty)
		}
		if pass == 0 {
			return removed
		}
		removed += pass
	}
}

// IsContentEqual tells if two configurations point at the same objects. Files are not compared.
func (t *Tree) IsContentEqual(a, b Key) bool {
	if a == b {
		return true
	}
	if !a.IsLocal(b) || a.Kind != b.Kind {
		return false
	}
	if !a.IsComposite() {
		return a.Libtype == b.Libtype && a.Library == b.Library && a.Release == b.Release
	}
	na, okA := t.nodes[a]
	nb, okB := t.nodes[b]
	return okA && okB && na.children.equal(nb.children)
}

// IsSaved tells if a node has no pending changes. Unless shallow, its whole subtree is checked.
func (t *Tree) IsSaved(key Key, shallow bool) bool {
	n, ok := t.nodes[key]
	if !ok || n.dirty {
		return false
	}
	if shallow {
		return true
	}
	for child := range n.children {
		if !t.IsSaved(child, false) {
			return false
		}
	}
	return true
}

// IsReleased tells if a configuration is a REL configuration or release.
// Unless shallow, its whole subtree must be released.
func (t *Tree) IsReleased(key Key, shallow bool) bool {
	if !key.IsComposite() {
		return key.IsRelease() && model.IsReleasedName(key.Config)
	}
	if !model.IsReleasedName(key.Config) {
		return false
	}
	if shallow {
		return true
	}
	for _, child := range t.Children(key) {
		if !t.IsReleased(child, false) {
			return false
		}
	}
	return true
}

// IsPreleased tells if a configuration is a PREL configuration or release. REL configurations
// count as pre-released unless strict is set. Unless shallow, its whole subtree must be pre-released.
func (t *Tree) IsPreleased(key Key, shallow, strict bool) bool {
	if !key.IsComposite() {
		return key.IsRelease() && model.IsPreleasedName(key.Config, strict)
	}
	if !model.IsPreleasedName(key.Config, strict) {
		return false
	}
	if shallow {
		return true
	}
	for _, child := range t.Children(key) {
		if !t.IsPreleased(child, false, strict) {
			return false
		}
	}
	return true
}
