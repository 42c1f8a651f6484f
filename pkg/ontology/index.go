package ontology

import (
	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/obo"
)

// Index resolves term accessions to their ontology membership.
// Membership is derived from each term's OBO namespace, independently of
// which graph a result row came from, so the summary builder can re-derive
// the ontology column and flag disagreements.
type Index struct {
	byID map[string]Ontology
}

// NewIndex builds an index over all non-obsolete terms in the snapshot.
// Secondary (alt_id) accessions resolve to the same ontology as their
// primary term.
func NewIndex(doc *obo.Document) *Index {
	idx := &Index{byID: make(map[string]Ontology, len(doc.Terms))}
	for i := range doc.Terms {
		t := &doc.Terms[i]
		if t.IsObsolete {
			continue
		}
		ont, ok := FromNamespace(t.Namespace)
		if !ok {
			continue
		}
		idx.byID[t.ID] = ont
		for _, alt := range t.AltIDs {
			idx.byID[alt] = ont
		}
	}
	return idx
}

// Lookup returns the ontology a term accession belongs to.
// Unresolvable accessions carry the LOOKUP error code; this aborts a merge
// because a summary row without ontology membership would be unusable
// downstream.
func (idx *Index) Lookup(id string) (Ontology, error) {
	ont, ok := idx.byID[id]
	if !ok {
		return "", errors.New(errors.ErrCodeLookup, "no ontology membership for term %s", id)
	}
	return ont, nil
}

// Len returns the number of indexed accessions, including alt_ids.
func (idx *Index) Len() int { return len(idx.byID) }
