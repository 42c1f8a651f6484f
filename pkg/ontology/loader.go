package ontology

import (
	"fmt"

	"github.com/mhalvors/golevels/pkg/dag"
	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/obo"
)

// BuildAncestry builds the ontology's term graph in the source convention:
// one node per non-obsolete term in the ontology's namespace, one edge
// child → parent per is_a / part_of relation whose target lives in the same
// ontology (a handful of part_of relations cross namespaces; those do not
// contribute to root distance and are skipped). The universal root
// placeholder is kept if the snapshot carries it; Load removes it.
func BuildAncestry(doc *obo.Document, ont Ontology) (*dag.Graph, error) {
	if !ont.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidOntology, "unknown ontology %q", ont)
	}

	g := dag.New()
	member := make(map[string]bool, len(doc.Terms))
	for i := range doc.Terms {
		t := &doc.Terms[i]
		if t.IsObsolete {
			continue
		}
		if o, ok := FromNamespace(t.Namespace); !ok || o != ont {
			continue
		}
		if err := g.AddNode(dag.Node{ID: t.ID, Name: t.Name}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDataSource, err, "add term %s", t.ID)
		}
		member[t.ID] = true
	}

	for i := range doc.Terms {
		t := &doc.Terms[i]
		if !member[t.ID] {
			continue
		}
		for _, rel := range t.Parents {
			if !member[rel.TargetID] {
				continue // cross-namespace or obsolete parent
			}
			if err := g.AddEdge(dag.Edge{From: t.ID, To: rel.TargetID, Rel: rel.Type}); err != nil {
				return nil, errors.Wrap(errors.ErrCodeDataSource, err, "add relation %s → %s", t.ID, rel.TargetID)
			}
		}
	}

	return g, nil
}

// Load builds the ontology's root-outward term graph ready for level
// computation: the ancestry graph is built from the snapshot, the universal
// root placeholder is removed if present, the graph is reversed so edges
// point away from the ontology root, and the result is checked.
//
// Two defensive checks guard against corrupted snapshots:
//   - the graph must be acyclic (DATA_SOURCE on a cycle)
//   - every term must remain reachable from the ontology root after
//     placeholder removal (STRUCTURAL otherwise)
//
// The ancestry-oriented intermediate graph is discarded; callers that need
// the source convention can reverse the result.
func Load(doc *obo.Document, ont Ontology) (*dag.Graph, error) {
	anc, err := BuildAncestry(doc, ont)
	if err != nil {
		return nil, err
	}

	if _, ok := anc.Node(UniversalRoot); ok {
		if err := anc.RemoveNode(UniversalRoot); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStructural, err, "remove universal root from %s", ont)
		}
	}

	if err := anc.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "ontology %s graph", ont)
	}

	down := anc.Reverse()
	if err := CheckRooted(down, ont); err != nil {
		return nil, err
	}
	return down, nil
}

// CheckRooted verifies that every node of a root-outward graph is reachable
// from the ontology's root. A shortfall means placeholder removal (or the
// snapshot itself) disconnected terms, which violates the structure the
// computation assumes; the error carries the STRUCTURAL code.
func CheckRooted(down *dag.Graph, ont Ontology) error {
	root := ont.Root()
	if _, ok := down.Node(root); !ok {
		return errors.New(errors.ErrCodeStructural, "ontology %s root %s missing from graph", ont, root)
	}
	reach := down.Reachable(root)
	if len(reach) == down.NodeCount() {
		return nil
	}

	// Name a few offenders to make the failure diagnosable.
	var orphans []string
	for _, id := range down.NodeIDs() {
		if !reach[id] {
			orphans = append(orphans, id)
			if len(orphans) == 5 {
				break
			}
		}
	}
	return errors.New(errors.ErrCodeStructural,
		"%d of %d terms in %s unreachable from root %s (first: %s)",
		down.NodeCount()-len(reach), down.NodeCount(), ont, root, fmt.Sprint(orphans))
}
