package tree

import (
	"regexp"

	"github.com/oneconcern/bommon/pkg/tree/status"
	"go.uber.org/zap"
)

// AddChild adds a node to the children of a composite configuration.
//
// The child may not occupy the location of an existing child, and a library or release
// must belong to the same project and variant as its parent. Immutable parents accept
// children in memory: Validate and Save tell whether the result may be persisted.
func (t *Tree) AddChild(parent, child Key) error {
	p, err := t.composite(parent)
	if err != nil {
		return err
	}
	if _, err = t.get(child); err != nil {
		return err
	}
	location := child.Location()
	for existing := range p.children {
		if existing.Location() == location {
			return status.ErrLocationClash.Wrapf("%s clashes with %s in %s", child, existing, parent)
		}
	}
	if !child.IsComposite() && !parent.IsLocal(child) {
		return status.ErrForeignReference.Wrapf("%s is not local to %s", child, parent)
	}
	if child.IsComposite() && (child == parent || t.reaches(child, parent)) {
		return status.ErrCycle.Wrapf("adding %s to %s", child, parent)
	}
	t.link(parent, child)
	return nil
}

// RemoveChild removes a node from the children of a composite configuration.
// It tells whether the node was a child.
func (t *Tree) RemoveChild(parent, child Key) bool {
	p, ok := t.nodes[parent]
	if !ok || !p.children.has(child) {
		return false
	}
	t.unlink(parent, child)
	return true
}

func (t *Tree) link(parent, child Key) {
	p := t.nodes[parent]
	p.children.add(child)
	p.dirty = true
	t.nodes[child].parents.add(parent)
}

func (t *Tree) unlink(parent, child Key) {
	p := t.nodes[parent]
	delete(p.children, child)
	p.dirty = true
	if c, ok := t.nodes[child]; ok {
		delete(c.parents, parent)
	}
}

// reaches tells if target is a descendant of from
func (t *Tree) reaches(from, target Key) bool {
	found := false
	t.walk(from, func(k Key) bool {
		if k == target {
			found = true
		}
		return !found
	})
	return found
}

// ReplaceObjectInTree replaces a node by another one wherever it is a direct child of a
// composite configuration found under root (root included). It returns the number of replacements.
//
// Either every replacement succeeds or the tree is left unchanged.
func (t *Tree) ReplaceObjectInTree(root, old, replacement Key, allowSame bool) (int, error) {
	if old == replacement && !allowSame {
		return 0, status.ErrSameObject.Wrapf("%s", old)
	}
	if _, err := t.get(replacement); err != nil {
		return 0, err
	}
	if old == replacement {
		held := 0
		t.walkComposites(root, func(k Key) bool {
			if t.nodes[k].children.has(old) {
				held++
			}
			return true
		})
		return held, nil
	}
	saved := t.checkpoint()
	replaced := 0
	var err error
	t.walkComposites(root, func(k Key) bool {
		if !t.nodes[k].children.has(old) {
			return true
		}
		t.unlink(k, old)
		if err = t.AddChild(k, replacement); err != nil {
			return false
		}
		replaced++
		return true
	})
	if err != nil {
		t.restore(saved)
		return 0, err
	}
	if replaced > 0 {
		t.l.Debug("replaced object in tree",
			zap.Stringer("root", root),
			zap.Stringer("old", old),
			zap.Stringer("new", replacement),
			zap.Int("count", replaced),
		)
	}
	return replaced, nil
}

// RemoveObjectFromTree removes a node wherever it is a direct child of a composite
// configuration found under root. It returns the number of removals.
func (t *Tree) RemoveObjectFromTree(root, obj Key) int {
	removed := 0
	t.walkComposites(root, func(k Key) bool {
		if t.RemoveChild(k, obj) {
			removed++
		}
		return true
	})
	return removed
}

// RemoveObjectsFromTree removes several nodes from the tree under root
func (t *Tree) RemoveObjectsFromTree(root Key, objs []Key) int {
	removed := 0
	for _, obj := range objs {
		removed += t.RemoveObjectFromTree(root, obj)
	}
	return removed
}

// ReplaceAllInstancesInTree replaces every composite configuration of a project and variant
// by replacement, or every simple configuration of that libtype when libtype is not empty.
func (t *Tree) ReplaceAllInstancesInTree(root Key, project, variant, libtype string, replacement Key) (int, error) {
	var sought []Key
	var err error
	exact := func(s string) string { return "^" + regexp.QuoteMeta(s) + "$" }
	if libtype == "" {
		sought, err = t.Search(root, exact(project), exact(variant), nil)
	} else {
		lt := exact(libtype)
		sought, err = t.Search(root, exact(project), exact(variant), &lt)
	}
	if err != nil {
		return 0, err
	}
	replaced := 0
	for _, obj := range sought {
		n, err := t.ReplaceObjectInTree(root, obj, replacement, true)
		if err != nil {
			return replaced, err
		}
		replaced += n
	}
	return replaced, nil
}
