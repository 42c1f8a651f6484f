// Package obo parses Gene Ontology snapshots in OBO flat-file format
// (go-basic.obo). Only the fields the level computation needs are retained:
// term identity, namespace membership, obsolescence, and the hierarchical
// is_a / part_of relations.
package obo

// Document is a parsed OBO snapshot.
type Document struct {
	FormatVersion string // e.g. "1.2"
	DataVersion   string // e.g. "releases/2024-01-17"; keys the computation cache
	Ontology      string // e.g. "go"
	Terms         []Term
}

// Term is a single [Term] stanza.
type Term struct {
	ID         string   // GO accession, e.g. "GO:0008150"
	Name       string   // e.g. "biological_process"
	Namespace  string   // biological_process, cellular_component, molecular_function
	AltIDs     []string // merged secondary accessions
	IsObsolete bool     // obsolete terms carry no hierarchy and are skipped by the loader
	Parents    []Relation
}

// Relation points from a term to one of its parents.
// Type is "is_a" for plain is_a lines and the relationship type
// (e.g. "part_of") for relationship lines.
type Relation struct {
	Type     string
	TargetID string
}
