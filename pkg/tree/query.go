package tree

// NextMutableConfig finds a mutable composite configuration to work on: the first one, depth first,
// holding a mutable library or no mutable composite at all.
func (t *Tree) NextMutableConfig(root Key) (Key, bool) {
	var (
		next  Key
		found bool
	)
	for _, child := range t.Children(root) {
		if !child.IsMutable() {
			continue
		}
		if child.IsComposite() {
			next, found = t.NextMutableConfig(child)
			break
		}
		next, found = root, true
	}
	if !found && root.IsComposite() && root.IsMutable() {
		return root, true
	}
	return next, found
}

// ConfigsReadyForSnap lists the mutable composite configurations whose composite children are all immutable
func (t *Tree) ConfigsReadyForSnap(root Key) []Key {
	ready := make(keySet)
	t.readyForSnap(root, ready)
	return ready.sorted()
}

func (t *Tree) readyForSnap(k Key, ready keySet) {
	include := true
	for _, child := range t.Children(k) {
		if child.IsComposite() && child.IsMutable() {
			include = false
			t.readyForSnap(child, ready)
		}
	}
	if include && k.IsMutable() {
		ready.add(k)
	}
}

// ConfigsReadyForRelease lists the composite configurations not released yet whose children are all released
func (t *Tree) ConfigsReadyForRelease(root Key) []Key {
	ready := make(keySet)
	t.readyFor(root, ready, func(k Key) bool { return t.IsReleased(k, false) })
	return ready.sorted()
}

// ConfigsReadyForPrelease lists the composite configurations not pre-released yet whose children
// are all pre-released (or released)
func (t *Tree) ConfigsReadyForPrelease(root Key) []Key {
	ready := make(keySet)
	t.readyFor(root, ready, func(k Key) bool { return t.IsPreleased(k, false, false) })
	return ready.sorted()
}

func (t *Tree) readyFor(k Key, ready keySet, done func(Key) bool) {
	include := true
	for _, child := range t.Children(k) {
		if done(child) {
			continue
		}
		include = false
		if child.IsComposite() {
			t.readyFor(child, ready, done)
		}
	}
	if include && k.IsComposite() && !done(k) {
		ready.add(k)
	}
}

// ConfigsWithOnlyLibraryOrRelease lists the non-empty composite configurations holding no composite child
func (t *Tree) ConfigsWithOnlyLibraryOrRelease(root Key) []Key {
	found := make(keySet)
	t.walkComposites(root, func(k Key) bool {
		children := t.nodes[k].children
		if len(children) == 0 {
			return true
		}
		for child := range children {
			if child.IsComposite() {
				return true
			}
		}
		found.add(k)
		return true
	})
	return found.sorted()
}

// ConfigsToCloneIfSelfChanges lists the configurations that must be cloned when a node changes:
// its immutable parents, their immutable parents and so on.
func (t *Tree) ConfigsToCloneIfSelfChanges(key Key) []Key {
	ancestors := make(keySet)
	t.ancestors(key, ancestors, false)
	return ancestors.sorted()
}

// ConfigsToCloneIfSelfChangesIncludingMutable lists every ancestor of a node
func (t *Tree) ConfigsToCloneIfSelfChangesIncludingMutable(key Key) []Key {
	ancestors := make(keySet)
	t.ancestors(key, ancestors, true)
	return ancestors.sorted()
}

func (t *Tree) ancestors(key Key, found keySet, includeMutable bool) {
	n, ok := t.nodes[key]
	if !ok {
		return
	}
	for parent := range n.parents {
		if found.has(parent) || (!includeMutable && parent.IsMutable()) {
			continue
		}
		found.add(parent)
		t.ancestors(parent, found, includeMutable)
	}
}

// ModifiedImmutableConfigs lists the immutable composite configurations below root with pending changes
func (t *Tree) ModifiedImmutableConfigs(root Key) []Key {
	return t.modified(root, false)
}

// ModifiedMutableConfigs lists the mutable composite configurations below root with pending changes
func (t *Tree) ModifiedMutableConfigs(root Key) []Key {
	return t.modified(root, true)
}

func (t *Tree) modified(root Key, mutable bool) []Key {
	var found []Key
	t.walkComposites(root, func(k Key) bool {
		if k != root && k.IsMutable() == mutable && t.nodes[k].dirty {
			found = append(found, k)
		}
		return true
	})
	SortKeys(found)
	return found
}
