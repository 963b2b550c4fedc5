package tree

import (
	"context"

	"github.com/oneconcern/bommon/pkg/tree/status"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Save persists the pending changes of a node and, unless shallow, of its whole subtree,
// children first.
//
// Nothing is written when nothing changed. A node is validated first: problems abort the save
// with ErrValidationFailed (see Problems). On error, the node keeps its pending changes and
// the save may be retried.
func (t *Tree) Save(ctx context.Context, key Key, shallow bool) error {
	n, err := t.get(key)
	if err != nil {
		return err
	}
	if t.IsSaved(key, shallow) {
		return nil
	}

	problems, err := t.Validate(ctx, key)
	if err != nil {
		return err
	}
	if len(problems) > 0 {
		for _, problem := range problems {
			t.l.Error("invalid configuration", zap.Stringer("config", key), zap.Error(problem))
		}
		return status.ErrValidationFailed.Wrap(multierr.Combine(problems...))
	}

	if !shallow {
		for _, child := range n.children.sorted() {
			if err = t.Save(ctx, child, false); err != nil {
				return err
			}
		}
	}
	if !n.dirty {
		return nil
	}

	if key.IsComposite() {
		err = t.saveComposite(ctx, n)
	} else {
		err = t.saveSimple(ctx, n)
	}
	if err != nil {
		return err
	}
	if t.preview {
		return nil
	}
	n.dirty = false
	n.inStore = true
	n.propertiesChanged = false
	n.snapshot = n.children.clone()
	return nil
}

func (t *Tree) saveComposite(ctx context.Context, n *node) error {
	key := n.key
	added := toFullNames(n.children.minus(n.snapshot))
	removed := toFullNames(n.snapshot.minus(n.children))

	exists, err := t.store.ConfigExists(ctx, key.Project, key.Variant, key.Config)
	if err != nil {
		return err
	}
	switch {
	case exists && !key.IsMutable() && n.inStore:
		return status.ErrImmutableUpdate.Wrapf("%s", key)
	case exists:
		if len(added) == 0 && len(removed) == 0 {
			t.l.Debug("no change in children, skip update", zap.Stringer("config", key))
			break
		}
		if t.preview {
			t.l.Info("would update configuration", zap.Stringer("config", key), zap.Strings("added", added), zap.Strings("removed", removed))
			return nil
		}
		if err = t.store.UpdateConfigChildren(ctx, key.Project, key.Variant, key.Config, added, removed); err != nil {
			return err
		}
	default:
		if t.preview {
			t.l.Info("would create configuration", zap.Stringer("config", key), zap.Strings("children", added))
			return nil
		}
		if err = t.store.CreateConfig(ctx, key.Project, key.Variant, key.Config, n.description); err != nil {
			return err
		}
		if err = t.store.UpdateConfigChildren(ctx, key.Project, key.Variant, key.Config, added, removed); err != nil {
			return err
		}
	}

	if !n.propertiesChanged || t.preview {
		return nil
	}
	return t.store.UpdateConfigProperties(ctx, key.Project, key.Variant, key.Config, n.properties)
}

func (t *Tree) saveSimple(ctx context.Context, n *node) error {
	key := n.key
	if key.IsLibrary() {
		if t.preview {
			t.l.Info("would create library", zap.Stringer("library", key), zap.String("from", n.srcLibrary))
			return nil
		}
		return t.store.CreateLibrary(ctx, key.Project, key.Variant, key.Libtype, key.Library, n.description, n.srcLibrary, n.srcRelease)
	}

	exists, err := t.store.LibraryExists(ctx, key.Project, key.Variant, key.Libtype, key.Library)
	if err != nil {
		return err
	}
	if !exists {
		return status.ErrNotFound.Wrapf("cannot create a release on a non-existing library: %s", key)
	}
	if t.preview {
		t.l.Info("would create release", zap.Stringer("release", key))
		return nil
	}
	return t.store.CreateRelease(ctx, key.Project, key.Variant, key.Libtype, key.Library, key.Release, n.description, n.srcRelease)
}

func toFullNames(keys []Key) []string {
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.FullName())
	}
	return names
}
