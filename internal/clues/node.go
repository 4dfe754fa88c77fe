package clues

// Node represents a node in the clue tree
type Node struct {
	// text is the clue and the ordering key
	text string

	left  *Node
	right *Node
}

// newNode creates a new leaf node
func newNode(text string) *Node {
	return &Node{
		text: text,
	}
}

// Tree is a binary search tree of collected clues ordered byte-wise.
// Equal clues are kept, each new copy sorting to the right of the older ones.
type Tree struct {
	root *Node
	size int
}

// New creates a new empty clue tree
func New() *Tree {
	return &Tree{}
}
