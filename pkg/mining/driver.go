package mining

import (
	"fmt"

	"github.com/sumatoshi-tech/treeminer/pkg/treedb"
)

// Options controls optional, observable-only behavior of the enumeration
// engine. Checked toggles the §7 StackMisuse / subnode-accounting
// assertions. OnPattern, when non-nil, is invoked with the pattern's root
// once per emitted pattern (the whole tree, not just the new node) and must
// not mutate it; it exists purely for the optional per-pattern dump and
// never affects PatternCount/MaxSize.
type Options struct {
	Checked   bool
	OnPattern func(root *treedb.Node)
}

// Fre is the depth-first enumeration driver. At each level it asks
// scanGrowthElements for every legal single-node extension that still meets
// minSup, grows patternRoot in place through one of them, re-projects the
// database, recurses, and backtracks — so that on return patternRoot is
// structurally identical to its state on entry.
//
// size must equal patternRoot.SubnodeCount+1 on entry. Fre returns the
// number of frequent patterns emitted at or below this level and the
// largest pattern size among them.
func Fre(patternRoot *treedb.Node, size int, prodb []*Instance, minSup int, opts Options) (count, maxSize int, err error) {
	for _, ge := range scanGrowthElements(prodb, minSup) {
		newNode := ge.Attachment.PushChild(ge.Label)

		count++
		if size+1 > maxSize {
			maxSize = size + 1
		}

		if opts.OnPattern != nil {
			opts.OnPattern(patternRoot)
		}

		next := make([]*Instance, 0, len(prodb))
		for _, inst := range prodb {
			next = append(next, inst.Split(newNode, opts.Checked)...)
		}

		childCount, childMax, childErr := Fre(patternRoot, size+1, next, minSup, opts)
		if childErr != nil {
			return count, maxSize, childErr
		}

		count += childCount
		if childMax > maxSize {
			maxSize = childMax
		}

		if popErr := ge.Attachment.PopChild(newNode, opts.Checked); popErr != nil {
			return count, maxSize, popErr
		}

		if opts.Checked && patternRoot.SubnodeCount+1 != size {
			return count, maxSize, fmt.Errorf("%w: pattern has %d node(s) after push/pop, want %d",
				treedb.ErrStackMisuse, patternRoot.SubnodeCount+1, size)
		}
	}

	return count, maxSize, nil
}
