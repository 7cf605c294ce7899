package treedb

// Database is the in-memory set of input trees a mining run operates over.
// Tree ids are assigned sequentially from 1 by the ingest layer; Database
// itself does not validate or reassign them.
type Database struct {
	Trees []*Node
}

// Len returns the number of trees in the database.
func (d *Database) Len() int {
	if d == nil {
		return 0
	}

	return len(d.Trees)
}
