package clues

// Insert adds a clue to the tree
func (t *Tree) Insert(text string) {
	t.root = insert(t.root, text)
	t.size++
}

func insert(n *Node, text string) *Node {
	if n == nil {
		return newNode(text)
	}
	if text < n.text {
		n.left = insert(n.left, text)
	} else {
		n.right = insert(n.right, text)
	}
	return n
}

// Len returns the number of clues stored, duplicates included
func (t *Tree) Len() int {
	return t.size
}

// Empty reports whether no clue has been collected
func (t *Tree) Empty() bool {
	return t.root == nil
}

// Contains reports whether the clue is present
func (t *Tree) Contains(text string) bool {
	n := t.root
	for n != nil {
		switch {
		case text < n.text:
			n = n.left
		case text > n.text:
			n = n.right
		default:
			return true
		}
	}
	return false
}

// TraverseFunc is the type of the function called for each clue.
// If the function returns false, the traversal stops.
type TraverseFunc func(text string) bool

// Traverse visits the clues in ascending order
func (t *Tree) Traverse(f TraverseFunc) {
	traverse(t.root, f)
}

func traverse(n *Node, f TraverseFunc) bool {
	if n == nil {
		return true
	}
	if !traverse(n.left, f) {
		return false
	}
	if !f(n.text) {
		return false
	}
	return traverse(n.right, f)
}

// InOrder returns the clues in ascending order
func (t *Tree) InOrder() []string {
	results := make([]string, 0, t.size)
	t.Traverse(func(text string) bool {
		results = append(results, text)
		return true
	})
	return results
}
