package mansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTestTree(t *testing.T) *Tree {
	t.Helper()

	hall := NewRoom("Hall", "mud")
	living := NewRoom("Living Room", "")
	library := NewRoom("Library", "book")
	hall.Link(living, library)
	living.Link(NewRoom("Kitchen", "pan"), NewRoom("Garden", ""))
	library.Link(NewRoom("Office", ""), nil)

	tree, err := New(hall)
	require.NoError(t, err)
	return tree
}

func TestNew_EmptyMap(t *testing.T) {
	tree, err := New(nil)
	assert.ErrorIs(t, err, ErrEmptyMap)
	assert.Nil(t, tree)
}

func TestTree_Shape(t *testing.T) {
	tree := buildTestTree(t)

	assert.Equal(t, "Hall", tree.Root().Name)
	assert.Equal(t, 6, tree.Len())
	assert.Equal(t, 3, tree.Depth())
	assert.Equal(t, []string{"Kitchen", "Garden", "Office"}, tree.Leaves())
}

func TestTree_WalkPreOrder(t *testing.T) {
	tree := buildTestTree(t)

	var names []string
	var depths []int
	tree.Walk(func(r *Room, depth int) bool {
		names = append(names, r.Name)
		depths = append(depths, depth)
		return true
	})

	assert.Equal(t, []string{"Hall", "Living Room", "Kitchen", "Garden", "Library", "Office"}, names)
	assert.Equal(t, []int{0, 1, 2, 2, 1, 2}, depths)
}

func TestTree_WalkStops(t *testing.T) {
	tree := buildTestTree(t)

	visited := 0
	tree.Walk(func(r *Room, _ int) bool {
		visited++
		return r.Name != "Kitchen"
	})
	assert.Equal(t, 3, visited)
}

func TestTree_Find(t *testing.T) {
	tree := buildTestTree(t)

	office := tree.Find("Office")
	require.NotNil(t, office)
	assert.True(t, office.IsLeaf())
	assert.False(t, office.HasClue())

	assert.Nil(t, tree.Find("Cellar"))
}

func TestRoom_Child(t *testing.T) {
	tree := buildTestTree(t)
	library := tree.Find("Library")
	require.NotNil(t, library)

	assert.Equal(t, "Office", library.Child(Left).Name)
	assert.Nil(t, library.Child(Right))
	assert.Nil(t, library.Child(Direction(7)))
	assert.True(t, library.HasClue())
	assert.False(t, library.IsLeaf())
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "unknown", Direction(3).String())
}
