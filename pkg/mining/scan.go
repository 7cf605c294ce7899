package mining

import (
	"sort"

	"github.com/sumatoshi-tech/treeminer/pkg/treedb"
)

// GrowthElement is a candidate single-node extension: attach a node labeled
// Label under the pattern node Attachment.
type GrowthElement struct {
	Label      int
	Attachment *treedb.Node
}

// scanGrowthElements returns every growth element whose support — the
// number of distinct tree ids across the projected database carrying it —
// is at least minSup.
//
// Go map iteration order is randomized, so support is accumulated into a
// map keyed by (label, attachment point) and the result is sorted before
// being returned: lexicographically by label, then by the attachment
// point's pre-order position. This matches §4.3's requirement that output
// order be deterministic though not itself semantically meaningful.
func scanGrowthElements(prodb []*Instance, minSup int) []GrowthElement {
	support := make(map[GrowthElement]map[int]struct{})

	for _, inst := range prodb {
		for attachment, residuals := range inst.Attachments {
			for _, residual := range residuals {
				for _, label := range residual.GetLabels() {
					key := GrowthElement{Label: label, Attachment: attachment}

					trees, ok := support[key]
					if !ok {
						trees = make(map[int]struct{})
						support[key] = trees
					}

					trees[inst.TreeID] = struct{}{}
				}
			}
		}
	}

	elements := make([]GrowthElement, 0, len(support))

	for ge, trees := range support {
		if len(trees) >= minSup {
			elements = append(elements, ge)
		}
	}

	sort.Slice(elements, func(i, j int) bool {
		if elements[i].Label != elements[j].Label {
			return elements[i].Label < elements[j].Label
		}

		return elements[i].Attachment.Pos < elements[j].Attachment.Pos
	})

	return elements
}
