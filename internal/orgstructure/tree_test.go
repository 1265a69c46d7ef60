package orgstructure

import (
	"testing"

	"go-orgkit/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dept(id uuid.UUID, name string, parent *uuid.UUID) Department {
	return Department{ID: id, Name: name, ParentID: parent}
}

func TestBuildTree_NestsByParent(t *testing.T) {
	root := uuid.New()
	childA := uuid.New()
	childB := uuid.New()
	grandchild := uuid.New()

	departments := []Department{
		dept(root, "Direksi", nil),
		dept(childA, "Engineering", &root),
		dept(childB, "Finance", &root),
		dept(grandchild, "Platform", &childA),
	}

	tree := BuildTree(departments, nil)

	require.Len(t, tree, 1)
	assert.Equal(t, "Direksi", tree[0].Name)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, "Engineering", tree[0].Children[0].Name)
	assert.Equal(t, "Finance", tree[0].Children[1].Name)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Platform", tree[0].Children[0].Children[0].Name)
}

func TestBuildTree_AttachesMembers(t *testing.T) {
	root := uuid.New()
	departments := []Department{dept(root, "Direksi", nil)}

	members := map[string][]user.UserResponse{
		root.String(): {{Name: "Alice"}, {Name: "Bob"}},
	}

	tree := BuildTree(departments, members)

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Users, 2)
	assert.Equal(t, "Alice", tree[0].Users[0].Name)

	// Node tanpa member tetap punya slice kosong, bukan nil.
	empty := BuildTree(departments, nil)
	assert.NotNil(t, empty[0].Users)
	assert.Empty(t, empty[0].Users)
}

func TestFlatten_PreOrderWithPrefix(t *testing.T) {
	a := uuid.New()
	b := uuid.New()
	c := uuid.New()
	other := uuid.New()

	// A > B > C plus satu root lain setelah A.
	departments := []Department{
		dept(a, "A", nil),
		dept(other, "Z", nil),
		dept(b, "B", &a),
		dept(c, "C", &b),
	}

	flat := Flatten(BuildTree(departments, nil))

	require.Len(t, flat, 4)
	assert.Equal(t, "A", flat[0].Name)
	assert.Equal(t, 0, flat[0].Level)
	assert.Equal(t, "— B", flat[1].Name)
	assert.Equal(t, 1, flat[1].Level)
	assert.Equal(t, "— — C", flat[2].Name)
	assert.Equal(t, 2, flat[2].Level)
	assert.Equal(t, "Z", flat[3].Name)
	assert.Equal(t, 0, flat[3].Level)
}

func TestFlatten_SiblingOrderFollowsInput(t *testing.T) {
	root := uuid.New()
	first := uuid.New()
	second := uuid.New()

	departments := []Department{
		dept(root, "Root", nil),
		dept(first, "First", &root),
		dept(second, "Second", &root),
	}

	flat := Flatten(BuildTree(departments, nil))

	require.Len(t, flat, 3)
	assert.Equal(t, "— First", flat[1].Name)
	assert.Equal(t, "— Second", flat[2].Name)
}

func TestAncestorChainContains(t *testing.T) {
	// a -> b -> c (c paling atas)
	parents := map[string]string{
		"a": "b",
		"b": "c",
	}

	assert.True(t, ancestorChainContains(parents, "a", "c"))
	assert.True(t, ancestorChainContains(parents, "a", "a"))
	assert.False(t, ancestorChainContains(parents, "c", "a"))
	assert.False(t, ancestorChainContains(parents, "b", "a"))

	// Rantai dengan siklus lama tidak boleh bikin loop tak berujung.
	cyclic := map[string]string{"x": "y", "y": "x"}
	assert.False(t, ancestorChainContains(cyclic, "x", "z"))
}
