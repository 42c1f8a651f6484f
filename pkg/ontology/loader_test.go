package ontology

import (
	"testing"

	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/obo"
)

// testDoc builds a small BP-shaped snapshot:
//
//	all → GO:0008150 (root) → GO:0008152 → GO:0044237
//	                        → GO:0065007
//
// plus an obsolete term and an MF term whose parent crosses namespaces.
func testDoc() *obo.Document {
	return &obo.Document{
		DataVersion: "releases/2024-01-17",
		Terms: []obo.Term{
			{ID: "all", Namespace: "external"},
			{ID: "GO:0008150", Name: "biological_process", Namespace: "biological_process"},
			{ID: "GO:0008152", Name: "metabolic process", Namespace: "biological_process",
				Parents: []obo.Relation{{Type: "is_a", TargetID: "GO:0008150"}}},
			{ID: "GO:0044237", Name: "cellular metabolic process", Namespace: "biological_process",
				Parents: []obo.Relation{{Type: "is_a", TargetID: "GO:0008152"}}},
			{ID: "GO:0065007", Name: "biological regulation", Namespace: "biological_process",
				Parents: []obo.Relation{{Type: "is_a", TargetID: "GO:0008150"}}},
			{ID: "GO:0000005", Name: "obsolete", Namespace: "biological_process", IsObsolete: true,
				Parents: []obo.Relation{{Type: "is_a", TargetID: "GO:0008150"}}},
			{ID: "GO:0003674", Name: "molecular_function", Namespace: "molecular_function"},
			{ID: "GO:0016740", Name: "transferase activity", Namespace: "molecular_function",
				Parents: []obo.Relation{
					{Type: "is_a", TargetID: "GO:0003674"},
					{Type: "part_of", TargetID: "GO:0008152"}, // cross-namespace, skipped
				}},
		},
	}
}

func TestBuildAncestry_Membership(t *testing.T) {
	g, err := BuildAncestry(testDoc(), BP)
	if err != nil {
		t.Fatalf("BuildAncestry() error: %v", err)
	}

	// 4 BP terms; obsolete, MF, and "all" (external namespace) excluded.
	if g.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", g.NodeCount())
	}
	if _, ok := g.Node("GO:0000005"); ok {
		t.Error("obsolete term present in graph")
	}
	if _, ok := g.Node("GO:0016740"); ok {
		t.Error("MF term present in BP graph")
	}
}

func TestBuildAncestry_CrossNamespaceRelationSkipped(t *testing.T) {
	g, err := BuildAncestry(testDoc(), MF)
	if err != nil {
		t.Fatalf("BuildAncestry() error: %v", err)
	}

	// Only the is_a to the MF root survives; part_of into BP is skipped.
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if got := g.Successors("GO:0016740"); len(got) != 1 || got[0] != "GO:0003674" {
		t.Errorf("Successors(GO:0016740) = %v, want [GO:0003674]", got)
	}
}

func TestLoad_RootOutward(t *testing.T) {
	down, err := Load(testDoc(), BP)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	sources := down.Sources()
	if len(sources) != 1 || sources[0].ID != RootBP {
		t.Fatalf("Sources() = %v, want the BP root only", sources)
	}
	// Children point away from the root.
	if got := down.Successors("GO:0008152"); len(got) != 1 || got[0] != "GO:0044237" {
		t.Errorf("Successors(GO:0008152) = %v, want [GO:0044237]", got)
	}
	// Leaves are sinks.
	if down.OutDegree("GO:0044237") != 0 {
		t.Error("leaf GO:0044237 has successors")
	}
}

func TestLoad_RemovesUniversalRoot(t *testing.T) {
	doc := testDoc()
	// Attach the three real roots beneath the placeholder, as GO.db does.
	doc.Terms[1].Parents = []obo.Relation{{Type: "is_a", TargetID: "all"}}

	down, err := Load(doc, BP)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, ok := down.Node(UniversalRoot); ok {
		t.Error("universal root still present after Load")
	}
	if down.NodeCount() != 4 {
		t.Errorf("NodeCount() = %d, want 4", down.NodeCount())
	}
}

func TestLoad_StructuralError(t *testing.T) {
	doc := testDoc()
	// A term whose only path upward runs through the placeholder becomes
	// unreachable once the placeholder is removed.
	doc.Terms = append(doc.Terms, obo.Term{
		ID: "GO:0099999", Name: "stranded", Namespace: "biological_process",
		Parents: []obo.Relation{{Type: "is_a", TargetID: "all"}},
	})
	// Make "all" a BP member so the edge is built at all.
	doc.Terms[0].Namespace = "biological_process"

	_, err := Load(doc, BP)
	if err == nil {
		t.Fatal("Load() = nil, want structural error")
	}
	if !errors.Is(err, errors.ErrCodeStructural) {
		t.Errorf("error code = %q, want STRUCTURAL", errors.GetCode(err))
	}
}

func TestLoad_CycleIsDataSourceError(t *testing.T) {
	doc := testDoc()
	// Corrupt the snapshot: the root claims its own grandchild as parent.
	doc.Terms[1].Parents = []obo.Relation{{Type: "is_a", TargetID: "GO:0044237"}}

	_, err := Load(doc, BP)
	if err == nil {
		t.Fatal("Load() = nil, want error")
	}
	if !errors.Is(err, errors.ErrCodeDataSource) {
		t.Errorf("error code = %q, want DATA_SOURCE", errors.GetCode(err))
	}
}
