// Package tree models configuration trees.
//
// A tree is an arena of nodes addressed by Key. Composite configurations hold a set of
// child keys; every node keeps the set of composites that hold it. The same node may be
// reachable through several parents: trees are really directed acyclic graphs.
//
// Nodes loaded from a store are clean. Nodes created or cloned in memory are dirty
// until saved. Immutability (REL, PREL and snap- names) governs what may be saved,
// not what may be modified in memory.
package tree

import (
	"context"

	"github.com/oneconcern/bommon/pkg/model"
	"github.com/oneconcern/bommon/pkg/tree/status"
	"go.uber.org/zap"
)

// Store is the configuration store a tree is loaded from and saved to
type Store interface {
	ProjectExists(ctx context.Context, project string) (bool, error)
	VariantExists(ctx context.Context, project, variant string) (bool, error)
	LibtypeExists(ctx context.Context, project, variant, libtype string) (bool, error)
	ConfigExists(ctx context.Context, project, variant, config string) (bool, error)
	LibraryExists(ctx context.Context, project, variant, libtype, library string) (bool, error)
	ReleaseExists(ctx context.Context, project, variant, libtype, library, release string) (bool, error)

	ReadComposite(ctx context.Context, project, variant, config string) (model.ConfigDescriptor, error)
	ReadSimple(ctx context.Context, project, variant, libtype, library, release string) (model.SimpleDescriptor, error)

	CreateConfig(ctx context.Context, project, variant, config, description string) error
	UpdateConfigChildren(ctx context.Context, project, variant, config string, added, removed []string) error
	UpdateConfigProperties(ctx context.Context, project, variant, config string, properties map[string]string) error
	CreateLibrary(ctx context.Context, project, variant, libtype, library, description, srcLibrary, srcRelease string) error
	CreateRelease(ctx context.Context, project, variant, libtype, library, release, description, srcRelease string) error
}

type node struct {
	key         Key
	description string
	properties  map[string]string

	children keySet
	parents  keySet
	// children as last saved
	snapshot keySet

	inStore           bool
	dirty             bool
	propertiesChanged bool

	// origin of a cloned library or release
	srcLibrary string
	srcRelease string
}

func newNode(key Key, description string) *node {
	n := &node{
		key:         key,
		description: description,
		properties:  make(map[string]string),
		parents:     make(keySet),
		snapshot:    make(keySet),
		dirty:       true,
	}
	if key.IsComposite() {
		n.children = make(keySet)
	}
	return n
}

func (n *node) copy() *node {
	c := *n
	c.properties = make(map[string]string, len(n.properties))
	for k, v := range n.properties {
		c.properties[k] = v
	}
	c.parents = n.parents.clone()
	c.snapshot = n.snapshot.clone()
	if n.children != nil {
		c.children = n.children.clone()
	}
	return &c
}

// Tree is an arena of configurations.
//
// A Tree is not safe for concurrent mutation.
type Tree struct {
	nodes   map[Key]*node
	store   Store
	l       *zap.Logger
	preview bool
}

// New builds an empty tree backed by a configuration store
func New(store Store, opts ...Option) *Tree {
	t := &Tree{
		nodes: make(map[Key]*node),
		store: store,
		l:     zap.NewNop(),
	}
	for _, apply := range opts {
		apply(t)
	}
	return t
}

// NewComposite creates a new composite configuration in memory
func (t *Tree) NewComposite(project, variant, config, description string) (Key, error) {
	return t.register(CompositeKey(project, variant, config), description)
}

// NewSimple creates a new library, or a new release when release is not empty, in memory.
//
// Existing libraries and releases are obtained with LoadFullName instead.
func (t *Tree) NewSimple(project, variant, libtype, library, release, description string) (Key, error) {
	return t.register(SimpleKey(project, variant, libtype, library, release), description)
}

func (t *Tree) register(key Key, description string) (Key, error) {
	if _, ok := t.nodes[key]; ok {
		return Key{}, status.ErrAlreadyExists.Wrapf("%s is already in the tree", key)
	}
	t.nodes[key] = newNode(key, description)
	return key, nil
}

// Has tells if a node is held by the tree
func (t *Tree) Has(key Key) bool {
	_, ok := t.nodes[key]
	return ok
}

func (t *Tree) get(key Key) (*node, error) {
	n, ok := t.nodes[key]
	if !ok {
		return nil, status.ErrNotFound.Wrapf("%s is not in the tree", key)
	}
	return n, nil
}

func (t *Tree) composite(key Key) (*node, error) {
	n, err := t.get(key)
	if err != nil {
		return nil, err
	}
	if !key.IsComposite() {
		return nil, status.ErrNotComposite.Wrapf("%s", key)
	}
	return n, nil
}

// Children of a composite configuration, sorted. Simple configurations have none.
func (t *Tree) Children(key Key) []Key {
	n, ok := t.nodes[key]
	if !ok {
		return nil
	}
	return n.children.sorted()
}

// Parents of a node, sorted: every composite of the tree holding it
func (t *Tree) Parents(key Key) []Key {
	n, ok := t.nodes[key]
	if !ok {
		return nil
	}
	return n.parents.sorted()
}

// Description of a node
func (t *Tree) Description(key Key) string {
	n, ok := t.nodes[key]
	if !ok {
		return ""
	}
	return n.description
}

// SetDescription changes the description of a node
func (t *Tree) SetDescription(key Key, description string) error {
	n, err := t.get(key)
	if err != nil {
		return err
	}
	if n.description != description {
		n.description = description
		n.dirty = true
	}
	return nil
}

// Properties returns a copy of the user properties of a composite configuration
func (t *Tree) Properties(key Key) map[string]string {
	n, ok := t.nodes[key]
	if !ok {
		return nil
	}
	properties := make(map[string]string, len(n.properties))
	for k, v := range n.properties {
		properties[k] = v
	}
	return properties
}

// SetProperty adds or changes a user property of a composite configuration
func (t *Tree) SetProperty(key Key, name, value string) error {
	n, err := t.composite(key)
	if err != nil {
		return err
	}
	n.properties[name] = value
	n.dirty = true
	n.propertiesChanged = true
	return nil
}

// RemoveProperty removes a user property of a composite configuration
func (t *Tree) RemoveProperty(key Key, name string) error {
	n, err := t.composite(key)
	if err != nil {
		return err
	}
	if _, ok := n.properties[name]; !ok {
		return nil
	}
	delete(n.properties, name)
	n.dirty = true
	n.propertiesChanged = true
	return nil
}

// InStore tells if a node was loaded from or saved to the store
func (t *Tree) InStore(key Key) bool {
	n, ok := t.nodes[key]
	return ok && n.inStore
}

// IsDirty tells if a node has changes not saved yet
func (t *Tree) IsDirty(key Key) bool {
	n, ok := t.nodes[key]
	return ok && n.dirty
}

// checkpoint captures the state of the arena, to roll back a failed multi-step update
func (t *Tree) checkpoint() map[Key]*node {
	saved := make(map[Key]*node, len(t.nodes))
	for k, n := range t.nodes {
		saved[k] = n.copy()
	}
	return saved
}

func (t *Tree) restore(saved map[Key]*node) {
	t.nodes = saved
}
