package mining

import (
	"sort"

	"github.com/sumatoshi-tech/treeminer/pkg/treedb"
)

// PrefixESpan is the mining entry point. It builds a label→occurrences
// index from db, seeds a fresh size-1 pattern for every label that occurs
// in at least minSup distinct trees, and grows each seed to exhaustion via
// Fre. It returns the total number of frequent patterns found and the
// largest pattern size among them.
func PrefixESpan(db *treedb.Database, minSup int, opts Options) (count, maxSize int, err error) {
	freq := make(map[int]int)
	occ := make(map[int][]*treedb.Node)

	for _, tree := range db.Trees {
		for label, nodes := range tree.GetLabelMap() {
			freq[label]++
			occ[label] = append(occ[label], nodes...)
		}
	}

	labels := make([]int, 0, len(freq))
	for label := range freq {
		labels = append(labels, label)
	}

	sort.Ints(labels)

	for _, label := range labels {
		if freq[label] < minSup {
			continue
		}

		root := treedb.NewPatternRoot(label)

		count++
		if maxSize < 1 {
			maxSize = 1
		}

		if opts.OnPattern != nil {
			opts.OnPattern(root)
		}

		prodb := make([]*Instance, 0, len(occ[label]))
		for _, node := range occ[label] {
			prodb = append(prodb, newInstance(node, root))
		}

		childCount, childMax, childErr := Fre(root, 1, prodb, minSup, opts)
		if childErr != nil {
			return count, maxSize, childErr
		}

		count += childCount
		if childMax > maxSize {
			maxSize = childMax
		}
	}

	return count, maxSize, nil
}
