package treedb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumatoshi-tech/treeminer/pkg/treedb"
)

func TestParse_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens []int
	}{
		{name: "single_leaf", tokens: []int{1, -1}},
		{name: "chain", tokens: []int{1, 1, -1, -1}},
		{name: "two_children", tokens: []int{1, 1, -1, 1, -1, -1}},
		{
			name:   "s1_tree1",
			tokens: []int{2, 1, 3, 5, -1, -1, -1, 1, 2, -1, 4, -1, -1, -1},
		},
		{
			name:   "s1_tree2",
			tokens: []int{1, 2, 2, -1, 4, -1, -1, 3, -1, -1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tree, err := treedb.Parse(1, tc.tokens)
			require.NoError(t, err)
			assert.Equal(t, tc.tokens, tree.ToVector())

			// Property 1: parse(id, t.toVector()).toVector() == t.toVector().
			reparsed, err := treedb.Parse(1, tree.ToVector())
			require.NoError(t, err)
			assert.Equal(t, tree.ToVector(), reparsed.ToVector())
		})
	}
}

func TestParse_MalformedInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tokens  []int
		wantErr error
	}{
		{name: "empty", tokens: []int{}, wantErr: treedb.ErrEmptySubtree},
		{name: "starts_with_close", tokens: []int{-1}, wantErr: treedb.ErrUnmatchedClose},
		{name: "truncated", tokens: []int{1, 2, -1}, wantErr: treedb.ErrTruncatedSubtree},
		{name: "truncated_no_close_at_all", tokens: []int{1}, wantErr: treedb.ErrTruncatedSubtree},
		{name: "trailing_tokens", tokens: []int{1, -1, 2, -1}, wantErr: treedb.ErrTrailingTokens},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := treedb.Parse(1, tc.tokens)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNode_PositionalMonotonicity(t *testing.T) {
	t.Parallel()

	tree, err := treedb.Parse(1, []int{2, 1, 3, 5, -1, -1, -1, 1, 2, -1, 4, -1, -1, -1})
	require.NoError(t, err)

	assert.Equal(t, 1, tree.Pos)

	left, right := tree.Children[0], tree.Children[1]
	assert.Less(t, left.Pos, right.Pos)

	for _, d := range descendants(left) {
		assert.Greater(t, d.Pos, left.Pos)
		assert.Less(t, d.Pos, right.Pos)
	}

	for _, d := range descendants(right) {
		assert.Greater(t, d.Pos, right.Pos)
	}
}

func descendants(n *treedb.Node) []*treedb.Node {
	var out []*treedb.Node

	for _, child := range n.Children {
		out = append(out, child)
		out = append(out, descendants(child)...)
	}

	return out
}

func TestNode_SubnodeAccounting(t *testing.T) {
	t.Parallel()

	tree, err := treedb.Parse(1, []int{2, 1, 3, 5, -1, -1, -1, 1, 2, -1, 4, -1, -1, -1})
	require.NoError(t, err)

	assert.Equal(t, countNodes(tree), tree.SubnodeCount+1)
}

func countNodes(n *treedb.Node) int {
	total := 1
	for _, child := range n.Children {
		total += countNodes(child)
	}

	return total
}

func TestNode_PushPopChild_StackIntegrity(t *testing.T) {
	t.Parallel()

	root := treedb.NewPatternRoot(1)
	before := root.ToVector()

	child := root.PushChild(2)
	assert.Equal(t, countNodes(root), root.SubnodeCount+1)
	assert.NotEqual(t, before, root.ToVector())

	grandchild := child.PushChild(3)
	assert.Equal(t, 3, root.SubnodeCount+1)

	require.NoError(t, child.PopChild(grandchild, true))
	require.NoError(t, root.PopChild(child, true))

	assert.Equal(t, before, root.ToVector())
	assert.Equal(t, 0, root.SubnodeCount)
}

func TestNode_PopChild_StackMisuse(t *testing.T) {
	t.Parallel()

	root := treedb.NewPatternRoot(1)
	a := root.PushChild(2)
	root.PushChild(3)

	err := root.PopChild(a, true)
	require.Error(t, err)
	assert.ErrorIs(t, err, treedb.ErrStackMisuse)
}

func TestNode_PopChild_UncheckedSkipsValidation(t *testing.T) {
	t.Parallel()

	root := treedb.NewPatternRoot(1)
	a := root.PushChild(2)
	root.PushChild(3)

	// In unchecked mode PopChild always pops the last child regardless of
	// the expected argument; the driver never actually calls it this way,
	// but the contract is that only checked mode validates.
	err := root.PopChild(a, false)
	require.NoError(t, err)
	assert.Len(t, root.Children, 1)
}

func TestNode_GetLabelMapAndNodes(t *testing.T) {
	t.Parallel()

	tree, err := treedb.Parse(1, []int{1, 1, -1, 1, -1, -1})
	require.NoError(t, err)

	m := tree.GetLabelMap()
	require.Contains(t, m, 1)
	assert.Len(t, m[1], 3)

	nodes := tree.GetLabelNodes(1)
	assert.Len(t, nodes, 3)
	assert.Equal(t, m[1], nodes)

	// Pre-order: root, then its two label-1 children in order.
	assert.Equal(t, tree, nodes[0])
	assert.Equal(t, tree.Children[0], nodes[1])
	assert.Equal(t, tree.Children[1], nodes[2])
}

func TestNode_GetLabels(t *testing.T) {
	t.Parallel()

	tree, err := treedb.Parse(1, []int{1, 2, -1, 3, -1, -1})
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3}, tree.GetLabels())
}

func TestNode_Equal(t *testing.T) {
	t.Parallel()

	a, err := treedb.Parse(1, []int{1, 2, -1, -1})
	require.NoError(t, err)

	b, err := treedb.Parse(2, []int{1, 2, -1, -1})
	require.NoError(t, err)

	c, err := treedb.Parse(1, []int{1, 3, -1, -1})
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
