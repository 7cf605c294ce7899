// Package mining implements the pattern-growth enumeration engine: the
// depth-first search that grows a pattern tree one node at a time, tracks a
// projected database of residual occurrences per embedding, and backtracks
// in place. See PrefixESpan for the entry point.
package mining

import "github.com/sumatoshi-tech/treeminer/pkg/treedb"

// Instance is one occurrence of the current pattern inside one input tree:
// a mapping from pattern attachment points to the residual, unexplored
// subtrees of the input tree that remain beneath each attachment point for
// this particular embedding. An attachment point is present only while its
// residual sequence is non-empty.
type Instance struct {
	TreeID      int
	Attachments map[*treedb.Node][]*treedb.Node
}

// newInstance builds the projection of one occurrence node, newly mapped to
// the pattern node it realizes.
func newInstance(occ, mapped *treedb.Node) *Instance {
	inst := &Instance{
		TreeID:      occ.ID,
		Attachments: make(map[*treedb.Node][]*treedb.Node),
	}

	if len(occ.Children) > 0 {
		inst.Attachments[mapped] = occ.Children
	}

	return inst
}

// Split derives the instances of this embedding that remain after the
// pattern has just been extended by mapped, whose label is realized at
// attachment point mapped.Parent.
//
// For every residual subtree at the attachment point, every descendant
// (including itself) bearing mapped's label becomes a new embedding core.
// Nodes to the left of that core — by pre-order position — belong to
// pattern embeddings the search has already enumerated and are discarded;
// nodes to its right survive into the new instance. This right-of-extension
// rule is what makes each embedded occurrence surface exactly once.
//
// Split never fails: it returns nil if this embedding has no work at
// mapped's attachment point. When checked is true it additionally asserts
// mapped.Parent is non-nil, catching a driver that extended a node with no
// attachment point — an implementation bug, never malformed data.
func (inst *Instance) Split(mapped *treedb.Node, checked bool) []*Instance {
	attached := mapped.Parent
	if checked && attached == nil {
		panic("mining: Split called with a root pattern node, which has no attachment point")
	}

	if attached == nil {
		return nil
	}

	residuals, ok := inst.Attachments[attached]
	if !ok {
		return nil
	}

	label := mapped.Label

	var out []*Instance

	for _, residual := range residuals {
		for _, core := range residual.GetLabelNodes(label) {
			out = append(out, inst.splitAt(core, residual, attached, mapped))
		}
	}

	return out
}

// splitAt builds the single new instance anchored at one matching core node.
func (inst *Instance) splitAt(core, residual, attached, mapped *treedb.Node) *Instance {
	next := newInstance(core, mapped)

	// Collateral siblings along the path from core up to (excluding)
	// residual attach to the same point the core's parent extension did.
	for cur := core; cur != residual; cur = cur.Parent {
		for _, sibling := range cur.Parent.Children {
			if sibling.Pos > cur.Pos {
				next.Attachments[attached] = append(next.Attachments[attached], sibling)
			}
		}
	}

	// Every live attachment point, attached included, carries forward
	// whatever residual work still lies to the right of core.
	for point, subtrees := range inst.Attachments {
		for _, sub := range subtrees {
			if sub.Pos > core.Pos {
				next.Attachments[point] = append(next.Attachments[point], sub)
			}
		}
	}

	return next
}
