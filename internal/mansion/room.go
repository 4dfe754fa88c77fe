package mansion

// Direction selects one of the two exits of a room.
type Direction int

const (
	// Left is the first exit of a room.
	Left Direction = iota
	// Right is the second exit of a room.
	Right
)

// String returns the label used in narration.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Room is a node of the mansion map
type Room struct {
	// Name is the room label shown to the player
	Name string

	// Clue is the evidence found in the room; empty means none
	Clue string

	Left  *Room
	Right *Room
}

// NewRoom creates a room with no exits
func NewRoom(name, clue string) *Room {
	return &Room{
		Name: name,
		Clue: clue,
	}
}

// HasClue reports whether the room holds a clue
func (r *Room) HasClue() bool {
	return r.Clue != ""
}

// IsLeaf reports whether the room has no exits. Reaching a leaf ends a walk.
func (r *Room) IsLeaf() bool {
	return r.Left == nil && r.Right == nil
}

// Child returns the room behind the given exit, or nil if there is none
func (r *Room) Child(dir Direction) *Room {
	switch dir {
	case Left:
		return r.Left
	case Right:
		return r.Right
	default:
		return nil
	}
}

// Link attaches left and right children and returns r for chaining
func (r *Room) Link(left, right *Room) *Room {
	r.Left = left
	r.Right = right
	return r
}
