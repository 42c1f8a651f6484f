package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/mhalvors/golevels/pkg/ontology"
	"github.com/mhalvors/golevels/pkg/pipeline"
	"github.com/mhalvors/golevels/pkg/summary"
)

func testResult() *pipeline.Result {
	return &pipeline.Result{
		RunID:       uuid.New(),
		SourceHash:  "abc123",
		DataVersion: "releases/2026-08-01",
		Table: &summary.Table{Records: []summary.Record{
			{ID: "GO:0008150", Ontology: ontology.BP},
			{ID: "GO:0008152", ShortestPath: 1, LongestPath: 1, TerminalNode: true, Ontology: ontology.BP},
			{ID: "GO:0003674", Ontology: ontology.MF},
		}},
	}
}

func TestAPIHealth(t *testing.T) {
	srv := httptest.NewServer(newAPIRouter(testResult()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestAPITerm(t *testing.T) {
	srv := httptest.NewServer(newAPIRouter(testResult()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/terms/GO:0008152")
	if err != nil {
		t.Fatalf("GET term: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var rec summary.Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.ShortestPath != 1 || !rec.TerminalNode {
		t.Errorf("record = %+v", rec)
	}
}

func TestAPITermNotFound(t *testing.T) {
	srv := httptest.NewServer(newAPIRouter(testResult()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/terms/GO:9999999")
	if err != nil {
		t.Fatalf("GET term: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["code"] != "TERM_NOT_FOUND" {
		t.Errorf("code = %q, want TERM_NOT_FOUND", body["code"])
	}
}

func TestAPIOntology(t *testing.T) {
	srv := httptest.NewServer(newAPIRouter(testResult()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/ontologies/bp")
	if err != nil {
		t.Fatalf("GET ontology: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var table summary.Table
	if err := json.NewDecoder(resp.Body).Decode(&table); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("BP rows = %d, want 2", table.Len())
	}
}

func TestAPIOntologyInvalid(t *testing.T) {
	srv := httptest.NewServer(newAPIRouter(testResult()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/ontologies/zz")
	if err != nil {
		t.Fatalf("GET ontology: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAPIInfo(t *testing.T) {
	srv := httptest.NewServer(newAPIRouter(testResult()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/info")
	if err != nil {
		t.Fatalf("GET info: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["data_version"] != "releases/2026-08-01" {
		t.Errorf("data_version = %v", body["data_version"])
	}
	if body["rows"] != float64(3) {
		t.Errorf("rows = %v, want 3", body["rows"])
	}
}
