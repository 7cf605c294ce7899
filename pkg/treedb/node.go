// Package treedb implements the tree model shared by input trees and the
// mutable pattern tree: parsing and serialization of the prefix/close
// integer grammar, label indices, and the in-place grow/shrink operations
// the mining engine uses to walk the pattern through its search space.
package treedb

import "fmt"

// PatternTreeID is the id carried by nodes belonging to a pattern tree
// rather than an input tree.
const PatternTreeID = -1

// closeMarker is the token that ends the current open node in the
// serialization grammar.
const closeMarker = -1

// Node is a node of either an input tree (ID >= 1, immutable after
// construction) or a pattern tree (ID == PatternTreeID, mutated exclusively
// through PushChild/PopChild).
type Node struct {
	// ID identifies the tree this node belongs to: the originating input
	// tree's id, or PatternTreeID for a pattern node.
	ID int

	// Label is a non-negative integer; -1 never appears here, it is
	// reserved for the close marker in serialization only.
	Label int

	// Pos is the 1-based pre-order rank of this node within its tree.
	Pos int

	// SubnodeCount is the number of proper descendants. root.SubnodeCount+1
	// is always the total node count of the tree.
	SubnodeCount int

	// Parent is a non-owning back reference, nil at the root.
	Parent *Node

	// Children is the ordered, semantically significant sequence of child
	// nodes. On a pattern node it additionally acts as a push/pop stack.
	Children []*Node
}

// NewPatternRoot creates a fresh, childless pattern tree root carrying the
// given label, ready to be grown by PushChild.
func NewPatternRoot(label int) *Node {
	return &Node{ID: PatternTreeID, Label: label, Pos: 1}
}

// Parse builds a tree from its prefix/close integer serialization,
// attributing every node to input tree id. The grammar: a non-negative
// integer opens a node, -1 closes the node currently open.
func Parse(id int, tokens []int) (*Node, error) {
	node, consumed, err := parseNode(id, tokens, 1)
	if err != nil {
		return nil, err
	}

	if consumed != len(tokens) {
		return nil, fmt.Errorf("%w: %d token(s) left over", ErrTrailingTokens, len(tokens)-consumed)
	}

	return node, nil
}

// parseNode parses exactly one node starting at tokens[0], assigning it the
// given pre-order position. It returns the node and the number of tokens
// consumed (the node's own label plus every descendant's label and close
// marker, plus its own close marker).
func parseNode(id int, tokens []int, pos int) (*Node, int, error) {
	if len(tokens) == 0 {
		return nil, 0, ErrEmptySubtree
	}

	if tokens[0] == closeMarker {
		return nil, 0, ErrUnmatchedClose
	}

	node := &Node{ID: id, Label: tokens[0], Pos: pos}

	i := 1
	for {
		if i >= len(tokens) {
			return nil, 0, ErrTruncatedSubtree
		}

		if tokens[i] == closeMarker {
			i++
			break
		}

		child, consumed, err := parseNode(id, tokens[i:], pos+node.SubnodeCount+1)
		if err != nil {
			return nil, 0, err
		}

		child.Parent = node
		node.Children = append(node.Children, child)
		node.SubnodeCount += child.SubnodeCount + 1
		i += consumed
	}

	return node, i, nil
}

// ToVector serializes the tree back to the prefix/close integer grammar such
// that Parse(n.ID, n.ToVector()) reconstructs a structurally equal tree.
func (n *Node) ToVector() []int {
	v := make([]int, 0, 2*(n.SubnodeCount+1))
	n.appendVector(&v)

	return v
}

func (n *Node) appendVector(v *[]int) {
	*v = append(*v, n.Label)
	for _, child := range n.Children {
		child.appendVector(v)
	}

	*v = append(*v, closeMarker)
}

// GetLabelMap returns, for each label occurring in the subtree rooted at n,
// the ordered (pre-order) list of nodes bearing it.
func (n *Node) GetLabelMap() map[int][]*Node {
	m := make(map[int][]*Node)
	n.collectLabelMap(m)

	return m
}

func (n *Node) collectLabelMap(m map[int][]*Node) {
	m[n.Label] = append(m[n.Label], n)
	for _, child := range n.Children {
		child.collectLabelMap(m)
	}
}

// GetLabelNodes returns, in pre-order, every node in the subtree rooted at n
// (including n itself) bearing the given label.
func (n *Node) GetLabelNodes(label int) []*Node {
	var out []*Node
	if n.Label == label {
		out = append(out, n)
	}

	for _, child := range n.Children {
		out = append(out, child.GetLabelNodes(label)...)
	}

	return out
}

// GetLabels returns the multiset of labels in the subtree rooted at n, in
// pre-order. Duplicates are kept; callers only ever feed this into
// set-insertion, so exact multiplicity is irrelevant.
func (n *Node) GetLabels() []int {
	labels := make([]int, 0, n.SubnodeCount+1)
	n.collectLabels(&labels)

	return labels
}

func (n *Node) collectLabels(labels *[]int) {
	*labels = append(*labels, n.Label)
	for _, child := range n.Children {
		child.collectLabels(labels)
	}
}

// PushChild appends a new child carrying label to n and returns it. n's
// SubnodeCount, and that of every ancestor up to the root, is incremented.
func (n *Node) PushChild(label int) *Node {
	child := &Node{
		ID:     n.ID,
		Label:  label,
		Pos:    n.Pos + n.SubnodeCount + 1,
		Parent: n,
	}

	n.Children = append(n.Children, child)

	for cur := n; cur != nil; cur = cur.Parent {
		cur.SubnodeCount++
	}

	return child
}

// PopChild removes n's last child. When checked is true it verifies that
// the removed child is expected, returning ErrStackMisuse otherwise; this
// indicates a bug in the caller, never malformed input. n's SubnodeCount,
// and that of every ancestor up to the root, is decremented.
func (n *Node) PopChild(expected *Node, checked bool) error {
	if checked {
		if len(n.Children) == 0 {
			return fmt.Errorf("%w: pop on node with no children", ErrStackMisuse)
		}

		if n.Children[len(n.Children)-1] != expected {
			return fmt.Errorf("%w: popped child does not match last pushed child", ErrStackMisuse)
		}
	}

	n.Children = n.Children[:len(n.Children)-1]

	for cur := n; cur != nil; cur = cur.Parent {
		cur.SubnodeCount--
	}

	return nil
}

// Root walks up to and returns the root of n's tree.
func (n *Node) Root() *Node {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}

	return cur
}

// Equal reports whether n and other have the same labels and child
// structure, ignoring ID/Pos/SubnodeCount bookkeeping.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}

	if n.Label != other.Label || len(n.Children) != len(other.Children) {
		return false
	}

	for i, child := range n.Children {
		if !child.Equal(other.Children[i]) {
			return false
		}
	}

	return true
}
