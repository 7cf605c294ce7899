package treedb

import "errors"

// Sentinel errors returned by Parse and PopChild. Wrap with fmt.Errorf("%w: ...")
// for additional context (offending line, tree id) at call sites.
var (
	// ErrEmptySubtree is returned when a token slice that should describe a
	// node is empty.
	ErrEmptySubtree = errors.New("treedb: empty subtree")

	// ErrUnmatchedClose is returned when a close marker (-1) appears where a
	// label was expected.
	ErrUnmatchedClose = errors.New("treedb: unmatched close marker")

	// ErrTruncatedSubtree is returned when a subtree's tokens run out before
	// its closing marker is reached.
	ErrTruncatedSubtree = errors.New("treedb: subtree truncated before close")

	// ErrTrailingTokens is returned when tokens remain after the outermost
	// node's close marker.
	ErrTrailingTokens = errors.New("treedb: trailing tokens after outer close")

	// ErrStackMisuse is returned by PopChild, in checked mode, when the
	// popped node does not match the last pushed child. It signals an
	// implementation bug in the caller, never a data problem.
	ErrStackMisuse = errors.New("treedb: stack misuse")
)
