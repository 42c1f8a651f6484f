// Package summary merges per-ontology level results into the single table
// downstream enrichment-filtering consumers join against by term id.
//
// The ontology column is re-derived for every term through an independent
// id → ontology lookup rather than tagged with the graph the row came from.
// A disagreement between the two is logged as a warning (it indicates a
// snapshot inconsistency worth a human look), while an id that cannot be
// resolved at all aborts the merge.
package summary

import (
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/levels"
	"github.com/mhalvors/golevels/pkg/ontology"
)

// Record is one row of the merged summary table.
type Record struct {
	ID           string            `json:"id" bson:"id"`
	ShortestPath int               `json:"shortest_path" bson:"shortest_path"`
	LongestPath  int               `json:"longest_path" bson:"longest_path"`
	TerminalNode bool              `json:"terminal_node" bson:"terminal_node"`
	Ontology     ontology.Ontology `json:"ontology" bson:"ontology"`
}

// Table is the merged three-ontology summary, the sole artifact the core
// computation produces. Records are ordered by ontology (BP, CC, MF) and
// term id within each ontology for deterministic output; consumers key by
// id and must not rely on row order.
type Table struct {
	Records []Record `json:"records" bson:"records"`
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Records) }

// Lookup returns the record for a term id and true, or a zero record and
// false if the id is not in the table. O(n); build an index for repeated
// lookups.
func (t *Table) Lookup(id string) (Record, bool) {
	for _, r := range t.Records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// ByOntology returns the rows belonging to one ontology, in table order.
func (t *Table) ByOntology(ont ontology.Ontology) []Record {
	var out []Record
	for _, r := range t.Records {
		if r.Ontology == ont {
			out = append(out, r)
		}
	}
	return out
}

// Build concatenates per-ontology level results into one table.
//
// For every term the ontology column is looked up in idx; a mismatch with
// the ontology whose graph produced the row is logged through logger as a
// warning, and the looked-up value wins. A term id with no resolvable
// membership is a LOOKUP error, which aborts the merge - consumers expect a
// complete three-ontology table or nothing.
//
// A nil logger suppresses warnings.
func Build(results map[ontology.Ontology]map[string]levels.Result, idx *ontology.Index, logger *log.Logger) (*Table, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	total := 0
	for _, res := range results {
		total += len(res)
	}
	table := &Table{Records: make([]Record, 0, total)}
	seen := make(map[string]ontology.Ontology, total)

	for _, ont := range ontology.All {
		res, ok := results[ont]
		if !ok {
			continue
		}
		for _, id := range slices.Sorted(maps.Keys(res)) {
			if prev, dup := seen[id]; dup {
				return nil, errors.New(errors.ErrCodeInternal,
					"term %s appears in both %s and %s results", id, prev, ont)
			}
			seen[id] = ont

			derived, err := idx.Lookup(id)
			if err != nil {
				return nil, err
			}
			if derived != ont {
				logger.Warn("term ontology disagrees with originating graph",
					"id", id, "graph", ont, "lookup", derived)
			}

			r := res[id]
			table.Records = append(table.Records, Record{
				ID:           id,
				ShortestPath: r.ShortestPath,
				LongestPath:  r.LongestPath,
				TerminalNode: r.Terminal,
				Ontology:     derived,
			})
		}
	}
	return table, nil
}
