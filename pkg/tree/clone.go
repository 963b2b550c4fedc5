package tree

import (
	"context"
	"strings"

	"github.com/oneconcern/bommon/pkg/model"
	"github.com/oneconcern/bommon/pkg/tree/status"
	"go.uber.org/zap"
)

// CloneOption tunes CloneTree
type CloneOption func(*cloneOptions)

type cloneOptions struct {
	simple        bool
	immutable     bool
	reuseExisting bool
}

// CloneSimple clones libraries and releases too
func CloneSimple(enabled bool) CloneOption {
	return func(o *cloneOptions) {
		o.simple = enabled
	}
}

// CloneImmutable clones immutable configurations too
func CloneImmutable(enabled bool) CloneOption {
	return func(o *cloneOptions) {
		o.immutable = enabled
	}
}

// ReuseExisting accepts clone targets that already exist in the store
func ReuseExisting(enabled bool) CloneOption {
	return func(o *cloneOptions) {
		o.reuseExisting = enabled
	}
}

// cloneTarget is the key a node gets when cloned to a name.
//
// A library or release cloned to an immutable name becomes a release of the same library.
// Cloned to a mutable name, it becomes a new library.
func cloneTarget(key Key, name string) Key {
	switch {
	case key.IsComposite():
		return CompositeKey(key.Project, key.Variant, name)
	case model.IsImmutableName(name):
		return SimpleKey(key.Project, key.Variant, key.Libtype, key.Library, name)
	default:
		return SimpleKey(key.Project, key.Variant, key.Libtype, name, "")
	}
}

func (t *Tree) existsInStore(ctx context.Context, key Key) (bool, error) {
	switch {
	case key.IsComposite():
		return t.store.ConfigExists(ctx, key.Project, key.Variant, key.Config)
	case key.IsRelease():
		return t.store.ReleaseExists(ctx, key.Project, key.Variant, key.Libtype, key.Library, key.Release)
	default:
		return t.store.LibraryExists(ctx, key.Project, key.Variant, key.Libtype, key.Library)
	}
}

// available checks that a key may be given to a new node. An unsaved node nobody holds is given up.
func (t *Tree) available(key Key) error {
	n, ok := t.nodes[key]
	if !ok {
		return nil
	}
	if n.inStore || len(n.parents) > 0 {
		return status.ErrAlreadyExists.Wrapf("%s is already in the tree", key)
	}
	return nil
}

func (t *Tree) discard(key Key) {
	n, ok := t.nodes[key]
	if !ok {
		return
	}
	for child := range n.children {
		if c, ok := t.nodes[child]; ok {
			delete(c.parents, key)
		}
	}
	delete(t.nodes, key)
}

// makeClone creates the clone of a node in memory: a composite clone holds the same children
func (t *Tree) makeClone(source *node, target Key) {
	t.discard(target)
	c := newNode(target, source.description)
	t.nodes[target] = c
	if target.IsComposite() {
		for child := range source.children {
			t.link(target, child)
		}
		return
	}
	if target.Library != source.key.Library {
		c.srcLibrary = source.key.Library
	}
	c.srcRelease = source.key.Release
}

// Clone creates a copy of a node named name, in memory.
//
// A composite clone holds the same children. Unless skipExistenceCheck is set, the store
// must not hold an object with that name already.
func (t *Tree) Clone(ctx context.Context, key Key, name string, skipExistenceCheck bool) (Key, error) {
	source, err := t.get(key)
	if err != nil {
		return Key{}, err
	}
	target := cloneTarget(key, name)
	if target == key {
		return Key{}, status.ErrSameObject.Wrapf("cannot clone %s to itself", key)
	}
	if !skipExistenceCheck {
		exists, err := t.existsInStore(ctx, target)
		if err != nil {
			return Key{}, err
		}
		if exists {
			return Key{}, status.ErrAlreadyExists.Wrapf("cannot clone %s to %s: it already exists", key, target)
		}
	}
	if err = t.available(target); err != nil {
		return Key{}, err
	}
	t.l.Debug("cloning", zap.Stringer("source", key), zap.Stringer("target", target))
	t.makeClone(source, target)
	return target, nil
}

// CloneTree clones root and every mutable composite configuration below it to name.
// The clones replace the originals throughout the new tree, which is returned.
//
// Options extend the clone to libraries and releases, and to immutable objects.
// All targets are checked before anything is cloned: the tree is left unchanged on error.
func (t *Tree) CloneTree(ctx context.Context, root Key, name string, opts ...CloneOption) (Key, error) {
	var o cloneOptions
	for _, apply := range opts {
		apply(&o)
	}
	if _, err := t.composite(root); err != nil {
		return Key{}, err
	}

	sources := []Key{root}
	for _, k := range t.FlattenTree(root) {
		if k == root {
			continue
		}
		if !k.IsMutable() && !o.immutable {
			t.l.Debug("not cloning immutable object", zap.Stringer("object", k))
			continue
		}
		if k.IsComposite() || o.simple {
			sources = append(sources, k)
		}
	}

	clones := make(map[Key]Key, len(sources))
	origins := make(map[Key]Key, len(sources))
	isSource := make(keySet, len(sources))
	for _, source := range sources {
		isSource.add(source)
	}
	var existing []string
	for _, source := range sources {
		target := cloneTarget(source, name)
		if target == source {
			return Key{}, status.ErrSameObject.Wrapf("cannot clone %s to itself", source)
		}
		if isSource.has(target) {
			return Key{}, status.ErrLocationClash.Wrapf("cannot clone %s to %s: it is part of the tree", source, target)
		}
		if other, ok := origins[target]; ok {
			return Key{}, status.ErrLocationClash.Wrapf("%s and %s would both be cloned to %s", other, source, target)
		}
		if err := t.available(target); err != nil {
			return Key{}, err
		}
		if !o.reuseExisting {
			exists, err := t.existsInStore(ctx, target)
			if err != nil {
				return Key{}, err
			}
			if exists {
				existing = append(existing, target.FullName())
			}
		}
		clones[source] = target
		origins[target] = source
	}
	if len(existing) > 0 {
		return Key{}, status.ErrAlreadyExists.Wrapf("clone targets already exist: %s", strings.Join(existing, ", "))
	}

	for _, source := range sources {
		t.makeClone(t.nodes[source], clones[source])
	}
	for _, source := range sources {
		target := clones[source]
		if !target.IsComposite() {
			continue
		}
		for _, child := range t.Children(target) {
			if replacement, ok := clones[child]; ok {
				t.unlink(target, child)
				t.link(target, replacement)
			}
		}
	}
	t.l.Debug("cloned tree", zap.Stringer("source", root), zap.Stringer("clone", clones[root]), zap.Int("objects", len(sources)))
	return clones[root], nil
}

// ConvertModifiedImmutableConfigsIntoMutable replaces every modified immutable composite configuration
// below root by a mutable clone named name, until none is left. It returns the number of replacements.
func (t *Tree) ConvertModifiedImmutableConfigsIntoMutable(ctx context.Context, root Key, name string) (int, error) {
	if model.IsImmutableName(name) {
		return 0, status.ErrInvalidName.Wrapf("cannot convert a modified immutable configuration into an immutable configuration: %s", name)
	}
	return t.replaceModified(ctx, root, name, t.ModifiedImmutableConfigs)
}

// RenameModifiedMutableConfigs replaces every modified mutable composite configuration below root
// by a clone named name, until none is left. It returns the number of replacements.
func (t *Tree) RenameModifiedMutableConfigs(ctx context.Context, root Key, name string) (int, error) {
	if model.IsImmutableName(name) {
		return 0, status.ErrInvalidName.Wrapf("cannot rename a modified mutable configuration into an immutable configuration: %s", name)
	}
	return t.replaceModified(ctx, root, name, func(root Key) []Key {
		var modified []Key
		for _, k := range t.ModifiedMutableConfigs(root) {
			if k.Config != name {
				modified = append(modified, k)
			}
		}
		return modified
	})
}

func (t *Tree) replaceModified(ctx context.Context, root Key, name string, find func(Key) []Key) (int, error) {
	replaced := 0
	for modified := find(root); len(modified) > 0; modified = find(root) {
		for _, k := range modified {
			clone, err := t.Clone(ctx, k, name, false)
			if err != nil {
				return replaced, err
			}
			n, err := t.ReplaceObjectInTree(root, k, clone, false)
			if err != nil {
				return replaced, err
			}
			replaced += n
		}
	}
	return replaced, nil
}
