package tree

import (
	"context"
	"sort"
	"strings"

	"github.com/oneconcern/bommon/pkg/errors"
	"github.com/oneconcern/bommon/pkg/model"
	"github.com/oneconcern/bommon/pkg/tree/status"
	"go.uber.org/multierr"
)

// Validate checks whether a node may be saved. It returns every problem found, sorted and
// without duplicates. The error reports a failure to query the store.
//
// A composite configuration is checked for its name, its location in the store (unless in preview),
// and its direct children. When it has no parent, the whole tree is checked for location clashes.
func (t *Tree) Validate(ctx context.Context, key Key) ([]error, error) {
	n, err := t.get(key)
	if err != nil {
		return nil, err
	}
	if key.IsComposite() {
		return t.validateComposite(ctx, n)
	}
	return t.validateSimple(ctx, n)
}

func (t *Tree) validateComposite(ctx context.Context, n *node) ([]error, error) {
	key := n.key
	var problems []error
	if err := model.ValidateConfigName(key.Config); err != nil {
		problems = append(problems, status.ErrInvalidName.Wrap(err))
	}
	if !t.preview {
		locationProblems, err := t.validateLocation(ctx, key)
		if err != nil {
			return nil, err
		}
		problems = append(problems, locationProblems...)
	}

	locations := make(map[Location]Key, len(n.children))
	for _, child := range n.children.sorted() {
		if !child.IsComposite() && !key.IsLocal(child) {
			problems = append(problems, status.ErrForeignReference.Wrapf("%s is not local to %s", child, key))
		}
		if !key.IsMutable() && child.IsMutable() {
			problems = append(problems, status.ErrImmutableContainsMutable.Wrapf(
				"%s is a mutable object within an immutable configuration %s", child, key))
		}
		if other, ok := locations[child.Location()]; ok && len(n.parents) > 0 {
			problems = append(problems, status.ErrLocationClash.Wrapf("%s clashes with %s in %s", child, other, key))
		}
		locations[child.Location()] = child
	}

	if len(n.parents) == 0 {
		problems = append(problems, t.clashes(key)...)
	}
	return dedupe(problems), nil
}

func (t *Tree) validateLocation(ctx context.Context, key Key) ([]error, error) {
	exists, err := t.store.VariantExists(ctx, key.Project, key.Variant)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}
	problems := []error{status.ErrNotFound.Wrapf("variant %s does not exist in project %s", key.Variant, key.Project)}
	exists, err = t.store.ProjectExists(ctx, key.Project)
	if err != nil {
		return nil, err
	}
	if !exists {
		problems = append(problems, status.ErrNotFound.Wrapf("project %s does not exist", key.Project))
	}
	return problems, nil
}

func (t *Tree) validateSimple(ctx context.Context, n *node) ([]error, error) {
	key := n.key
	var problems []error
	if err := model.ValidateLibraryName(key.Library); err != nil {
		problems = append(problems, status.ErrInvalidName.Wrap(err))
	}
	if key.Release != "" {
		if err := model.ValidateReleaseName(key.Release); err != nil {
			problems = append(problems, status.ErrInvalidName.Wrap(err))
		}
	}
	if !t.preview {
		exists, err := t.store.LibtypeExists(ctx, key.Project, key.Variant, key.Libtype)
		if err != nil {
			return nil, err
		}
		if !exists {
			problems = append(problems, status.ErrNotFound.Wrapf("libtype %s does not exist in %s/%s", key.Libtype, key.Project, key.Variant))
		}
	}
	return dedupe(problems), nil
}

// clashes reports every location occupied by several objects of the tree, with the chain
// of parents leading to each of them.
func (t *Tree) clashes(root Key) []error {
	index := t.ObjectsByLocation(root)
	inTree := make(keySet, index.Len())
	t.walk(root, func(k Key) bool {
		inTree.add(k)
		return true
	})

	var problems []error
	for _, location := range index.Clashes() {
		var msg strings.Builder
		msg.WriteString("multiple configurations for ")
		msg.WriteString(location.String())
		msg.WriteString(" found:")
		for _, k := range index.At(location) {
			msg.WriteString("\n")
			msg.WriteString(k.FullName())
			t.writeParentChain(&msg, k, inTree, 0)
		}
		problems = append(problems, status.ErrLocationClash.Wrapf("%s", msg.String()))
	}
	return problems
}

func (t *Tree) writeParentChain(msg *strings.Builder, key Key, inTree keySet, depth int) {
	for _, parent := range t.Parents(key) {
		if !inTree.has(parent) {
			continue
		}
		msg.WriteString("\n    ")
		msg.WriteString(strings.Repeat("    ", depth))
		msg.WriteString("-> ")
		msg.WriteString(parent.FullName())
		t.writeParentChain(msg, parent, inTree, depth+1)
	}
}

func dedupe(problems []error) []error {
	if len(problems) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(problems))
	unique := make([]error, 0, len(problems))
	for _, problem := range problems {
		if _, ok := seen[problem.Error()]; ok {
			continue
		}
		seen[problem.Error()] = struct{}{}
		unique = append(unique, problem)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].Error() < unique[j].Error() })
	return unique
}

// Problems extracts the individual problems from an error returned by Save
func Problems(err error) []error {
	for err != nil {
		if e, ok := err.(*errors.Error); ok && e.Is(status.ErrValidationFailed) {
			return multierr.Errors(e.Unwrap())
		}
		err = errors.Unwrap(err)
	}
	return nil
}
