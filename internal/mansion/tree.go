package mansion

import "errors"

// ErrEmptyMap is returned when a tree is built without a root room
var ErrEmptyMap = errors.New("mansion map is empty")

// Tree is the mansion map rooted at the entrance
type Tree struct {
	root *Room
	size int
}

// New wraps an already linked set of rooms. The rooms must form a tree.
func New(root *Room) (*Tree, error) {
	if root == nil {
		return nil, ErrEmptyMap
	}
	t := &Tree{root: root}
	t.Walk(func(*Room, int) bool {
		t.size++
		return true
	})
	return t, nil
}

// Root returns the entrance room
func (t *Tree) Root() *Room {
	return t.root
}

// Len returns the number of rooms
func (t *Tree) Len() int {
	return t.size
}

// WalkFunc is called for every room with its depth (root is 0).
// Returning false stops the walk.
type WalkFunc func(room *Room, depth int) bool

// Walk visits rooms in pre-order, left exit before right exit
func (t *Tree) Walk(f WalkFunc) {
	walk(t.root, 0, f)
}

func walk(r *Room, depth int, f WalkFunc) bool {
	if r == nil {
		return true
	}
	if !f(r, depth) {
		return false
	}
	if !walk(r.Left, depth+1, f) {
		return false
	}
	return walk(r.Right, depth+1, f)
}

// Find returns the first room with the given name in pre-order
func (t *Tree) Find(name string) *Room {
	var found *Room
	t.Walk(func(r *Room, _ int) bool {
		if r.Name == name {
			found = r
			return false
		}
		return true
	})
	return found
}

// Depth returns the number of rooms on the longest root-to-leaf path
func (t *Tree) Depth() int {
	deepest := 0
	t.Walk(func(_ *Room, depth int) bool {
		if depth+1 > deepest {
			deepest = depth + 1
		}
		return true
	})
	return deepest
}

// Leaves returns the names of the rooms without exits, left to right
func (t *Tree) Leaves() []string {
	var names []string
	t.Walk(func(r *Room, _ int) bool {
		if r.IsLeaf() {
			names = append(names, r.Name)
		}
		return true
	})
	return names
}
