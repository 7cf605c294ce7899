// Package ingest loads a tree database from its line-oriented text format:
// one tree per line, each line a whitespace-separated sequence of integers
// (node labels and -1 close markers), blank lines skipped.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sumatoshi-tech/treeminer/pkg/treedb"
)

// ErrNoTrees is returned when a reader produces zero non-blank lines.
var ErrNoTrees = errors.New("ingest: database contains no trees")

// LoadDatabase reads a tree database from r. Tree ids are assigned
// sequentially from 1 in line order; blank lines do not consume an id. A
// malformed line's error is wrapped with its 1-based line number.
func LoadDatabase(r io.Reader) (*treedb.Database, error) {
	db := &treedb.Database{}

	scanner := bufio.NewScanner(r)
	// Tree lines can be long for databases with large trees; grow past
	// bufio.Scanner's default 64KiB token limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	treeID := 0

	for scanner.Scan() {
		lineNo++

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		tokens := make([]int, len(fields))

		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("ingest: line %d: invalid token %q: %w", lineNo, f, err)
			}

			tokens[i] = v
		}

		treeID++

		tree, err := treedb.Parse(treeID, tokens)
		if err != nil {
			return nil, fmt.Errorf("ingest: line %d: %w", lineNo, err)
		}

		db.Trees = append(db.Trees, tree)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ingest: reading database: %w", err)
	}

	if db.Len() == 0 {
		return nil, ErrNoTrees
	}

	return db, nil
}
