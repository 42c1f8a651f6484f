package obo

import (
	"strings"
	"testing"

	"github.com/mhalvors/golevels/pkg/errors"
)

const sampleOBO = `format-version: 1.2
data-version: releases/2024-01-17
ontology: go

[Term]
id: GO:0008150
name: biological_process
namespace: biological_process

[Term]
id: GO:0008152
name: metabolic process
namespace: biological_process
alt_id: GO:0044236
is_a: GO:0008150 ! biological_process

[Term]
id: GO:0044237
name: cellular metabolic process
namespace: biological_process
is_a: GO:0008152 ! metabolic process
relationship: part_of GO:0008150 ! biological_process
relationship: regulates GO:0008152 ! metabolic process

[Term]
id: GO:0000005
name: obsolete ribosomal chaperone activity
namespace: molecular_function
is_obsolete: true

[Typedef]
id: part_of
name: part of
is_transitive: true
`

func TestParse_Header(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleOBO))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if doc.FormatVersion != "1.2" {
		t.Errorf("FormatVersion = %q, want 1.2", doc.FormatVersion)
	}
	if doc.DataVersion != "releases/2024-01-17" {
		t.Errorf("DataVersion = %q, want releases/2024-01-17", doc.DataVersion)
	}
	if doc.Ontology != "go" {
		t.Errorf("Ontology = %q, want go", doc.Ontology)
	}
}

func TestParse_Terms(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleOBO))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if len(doc.Terms) != 4 {
		t.Fatalf("len(Terms) = %d, want 4", len(doc.Terms))
	}

	root := doc.Terms[0]
	if root.ID != "GO:0008150" || root.Namespace != "biological_process" {
		t.Errorf("root term = %+v", root)
	}
	if len(root.Parents) != 0 {
		t.Errorf("root Parents = %v, want none", root.Parents)
	}

	metab := doc.Terms[1]
	if len(metab.Parents) != 1 || metab.Parents[0].TargetID != "GO:0008150" || metab.Parents[0].Type != "is_a" {
		t.Errorf("metabolic Parents = %v", metab.Parents)
	}
	if len(metab.AltIDs) != 1 || metab.AltIDs[0] != "GO:0044236" {
		t.Errorf("metabolic AltIDs = %v", metab.AltIDs)
	}
}

func TestParse_RelationshipFiltering(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleOBO))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	// cellular metabolic process: one is_a plus one part_of; the
	// regulates relationship must be dropped.
	cellular := doc.Terms[2]
	if len(cellular.Parents) != 2 {
		t.Fatalf("cellular Parents = %v, want 2 relations", cellular.Parents)
	}
	if cellular.Parents[1].Type != "part_of" || cellular.Parents[1].TargetID != "GO:0008150" {
		t.Errorf("part_of relation = %+v", cellular.Parents[1])
	}
}

func TestParse_Obsolete(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleOBO))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	obsolete := doc.Terms[3]
	if !obsolete.IsObsolete {
		t.Error("IsObsolete = false, want true")
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile("testdata/does-not-exist.obo")
	if err == nil {
		t.Fatal("ParseFile() = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeDataSource) {
		t.Errorf("error code = %q, want DATA_SOURCE", errors.GetCode(err))
	}
}
