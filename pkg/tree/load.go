package tree

import (
	"context"

	bomstatus "github.com/oneconcern/bommon/pkg/bomstore/status"
	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/tree/status"
	"go.uber.org/zap"
)

// Load builds a tree from a composite configuration in the store
func Load(ctx context.Context, store Store, project, variant, config string, opts ...Option) (*Tree, Key, error) {
	t := New(store, opts...)
	root, err := t.Load(ctx, CompositeKey(project, variant, config))
	if err != nil {
		return nil, Key{}, err
	}
	return t, root, nil
}

// LoadFullName loads a configuration, library or release from the store, given its full name
func (t *Tree) LoadFullName(ctx context.Context, fullName string) (Key, error) {
	key, err := KeyFromFullName(fullName)
	if err != nil {
		return Key{}, status.ErrInvalidName.Wrap(err)
	}
	return t.Load(ctx, key)
}

// Load hydrates a node and its whole subtree from the store. Nodes already held by the tree are reused.
func (t *Tree) Load(ctx context.Context, key Key) (Key, error) {
	return t.load(ctx, key, make(keySet))
}

func (t *Tree) load(ctx context.Context, key Key, loading keySet) (Key, error) {
	if _, ok := t.nodes[key]; ok {
		return key, nil
	}
	if loading.has(key) {
		return Key{}, status.ErrCycle.Wrapf("%s contains itself", key)
	}
	if !key.IsComposite() {
		sd, err := t.store.ReadSimple(ctx, key.Project, key.Variant, key.Libtype, key.Library, key.Release)
		if err != nil {
			return Key{}, notFound(err)
		}
		t.hydrate(key, sd.Description)
		return key, nil
	}

	cd, err := t.store.ReadComposite(ctx, key.Project, key.Variant, key.Config)
	if err != nil {
		return Key{}, notFound(err)
	}
	loading.add(key)
	children := make([]Key, 0, len(cd.Children))
	for _, fullName := range cd.Children {
		child, err := KeyFromFullName(fullName)
		if err != nil {
			return Key{}, status.ErrInvalidName.Wrap(err)
		}
		if _, err = t.load(ctx, child, loading); err != nil {
			return Key{}, err
		}
		children = append(children, child)
	}

	n := t.hydrate(key, cd.Description)
	for k, v := range cd.Properties {
		n.properties[k] = v
	}
	for _, child := range children {
		n.children.add(child)
		t.nodes[child].parents.add(key)
	}
	n.snapshot = n.children.clone()
	t.l.Debug("loaded configuration", zap.Stringer("config", key), zap.Int("children", len(children)))
	return key, nil
}

func (t *Tree) hydrate(key Key, description string) *node {
	n := newNode(key, description)
	n.inStore = true
	n.dirty = false
	t.nodes[key] = n
	return n
}

func notFound(err error) error {
	if errors.Is(err, bomstatus.ErrNotFound) {
		return status.ErrNotFound.Wrap(err)
	}
	return err
}
