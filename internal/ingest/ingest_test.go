package ingest_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sumatoshi-tech/treeminer/internal/ingest"
)

func TestLoadDatabase_SkipsBlankLinesAndAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	input := "1 -1\n\n1 2 -1 -1\n\n\n2 -1\n"

	db, err := ingest.LoadDatabase(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, db.Len())

	assert.Equal(t, 1, db.Trees[0].ID)
	assert.Equal(t, 2, db.Trees[1].ID)
	assert.Equal(t, 3, db.Trees[2].ID)

	assert.Equal(t, []int{1, -1}, db.Trees[0].ToVector())
	assert.Equal(t, []int{1, 2, -1, -1}, db.Trees[1].ToVector())
	assert.Equal(t, []int{2, -1}, db.Trees[2].ToVector())
}

func TestLoadDatabase_MalformedTokenNamesLine(t *testing.T) {
	t.Parallel()

	input := "1 -1\n1 x -1 -1\n"

	_, err := ingest.LoadDatabase(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadDatabase_MalformedTreeNamesLine(t *testing.T) {
	t.Parallel()

	input := "1 -1\n1 2 -1\n"

	_, err := ingest.LoadDatabase(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadDatabase_EmptyInput(t *testing.T) {
	t.Parallel()

	_, err := ingest.LoadDatabase(strings.NewReader(""))
	require.ErrorIs(t, err, ingest.ErrNoTrees)
}

func TestLoadDatabase_OnlyBlankLines(t *testing.T) {
	t.Parallel()

	_, err := ingest.LoadDatabase(strings.NewReader("\n\n   \n"))
	require.ErrorIs(t, err, ingest.ErrNoTrees)
}
