// Package ontology maps OBO snapshot data onto the three Gene Ontology
// partitions (BP, CC, MF) and builds one directed term graph per partition.
//
// The loader works in the source convention, where every hierarchical
// relation points child → parent, then reverses the graph so that edges
// point away from the distinguished root. The root-outward orientation is
// what the level engine consumes: the ontology root is the single source,
// and terminal (leaf) terms are the sinks.
package ontology

import (
	"strings"

	"github.com/mhalvors/golevels/pkg/errors"
)

// Ontology identifies one of the three GO partitions.
type Ontology string

const (
	BP Ontology = "BP" // biological_process
	CC Ontology = "CC" // cellular_component
	MF Ontology = "MF" // molecular_function
)

// UniversalRoot is the placeholder node some snapshots place above the three
// per-ontology roots. It is removed during loading.
const UniversalRoot = "all"

// Per-ontology root accessions.
const (
	RootBP = "GO:0008150" // biological_process
	RootCC = "GO:0005575" // cellular_component
	RootMF = "GO:0003674" // molecular_function
)

// All lists the three ontologies in canonical order.
var All = []Ontology{BP, CC, MF}

// namespaces maps OBO namespace values to ontologies.
var namespaces = map[string]Ontology{
	"biological_process": BP,
	"cellular_component": CC,
	"molecular_function": MF,
}

// roots maps each ontology to its root accession.
var roots = map[Ontology]string{
	BP: RootBP,
	CC: RootCC,
	MF: RootMF,
}

// Root returns the root term accession of the ontology.
func (o Ontology) Root() string { return roots[o] }

// Valid reports whether o is one of BP, CC, MF.
func (o Ontology) Valid() bool {
	_, ok := roots[o]
	return ok
}

// Parse converts a user-supplied ontology selector ("bp", "BP", "CC", ...)
// to an Ontology. Returns an INVALID_ONTOLOGY error for anything else.
func Parse(s string) (Ontology, error) {
	o := Ontology(strings.ToUpper(s))
	if !o.Valid() {
		return "", errors.New(errors.ErrCodeInvalidOntology, "unknown ontology %q (must be one of: bp, cc, mf)", s)
	}
	return o, nil
}

// FromNamespace converts an OBO namespace value to an Ontology.
// The second return value is false for unknown namespaces (e.g. the
// external namespace carried by the "all" placeholder).
func FromNamespace(ns string) (Ontology, bool) {
	o, ok := namespaces[ns]
	return o, ok
}
