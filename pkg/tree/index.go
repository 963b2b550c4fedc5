package tree

import (
	iradix "github.com/hashicorp/go-immutable-radix"
)

const locationSep = "\x00"

// Index lists the objects of a tree by location.
//
// Entries are keyed by "{location}\x00{full name}", so that the objects at one location
// are contiguous and sorted.
type Index struct {
	tree *iradix.Tree
}

// ObjectsByLocation indexes every object reachable from root by its location
func (t *Tree) ObjectsByLocation(root Key) *Index {
	txn := iradix.New().Txn()
	t.walk(root, func(k Key) bool {
		txn.Insert([]byte(k.Location().String()+locationSep+k.FullName()), k)
		return true
	})
	return &Index{tree: txn.Commit()}
}

// Len is the number of indexed objects
func (i *Index) Len() int {
	return i.tree.Len()
}

// At lists the objects at a location
func (i *Index) At(location Location) []Key {
	var keys []Key
	it := i.tree.Root().Iterator()
	it.SeekPrefix([]byte(location.String() + locationSep))
	for {
		_, v, ok := it.Next()
		if !ok {
			break
		}
		keys = append(keys, v.(Key))
	}
	return keys
}

// Locations lists the distinct locations found in the index
func (i *Index) Locations() []Location {
	var locations []Location
	i.tree.Root().Walk(func(_ []byte, v interface{}) bool {
		location := v.(Key).Location()
		if len(locations) == 0 || locations[len(locations)-1] != location {
			locations = append(locations, location)
		}
		return false
	})
	return locations
}

// Clashes lists the locations occupied by more than one object
func (i *Index) Clashes() []Location {
	var (
		clashes []Location
		last    Location
		count   int
	)
	i.tree.Root().Walk(func(_ []byte, v interface{}) bool {
		location := v.(Key).Location()
		if count > 0 && location == last {
			count++
			if count == 2 {
				clashes = append(clashes, location)
			}
			return false
		}
		last, count = location, 1
		return false
	})
	return clashes
}
