package obo

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/mhalvors/golevels/pkg/errors"
)

const (
	initialTermCapacity = 50000   // go-basic has ~47k terms
	scannerBufferSize   = 1 << 20 // 1 MB
)

// internPool avoids duplicate string allocations for repeated values
// (namespaces and relation types repeat tens of thousands of times).
type internPool struct {
	m map[string]string
}

func newInternPool() *internPool {
	return &internPool{m: make(map[string]string, 16)}
}

func (p *internPool) get(s string) string {
	if v, ok := p.m[s]; ok {
		return v
	}
	p.m[s] = s
	return s
}

// ParseFile parses an OBO snapshot from the file at path.
// Failures to open or read the file carry the DATA_SOURCE error code.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "open ontology snapshot %s", path)
	}
	defer f.Close()
	doc, err := Parse(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSource, err, "parse ontology snapshot %s", path)
	}
	return doc, nil
}

// Parse parses an OBO snapshot from the given reader.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, scannerBufferSize), scannerBufferSize)

	doc := &Document{
		Terms: make([]Term, 0, initialTermCapacity),
	}
	pool := newInternPool()

	// Parse header
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line == "[Term]" {
			doc.Terms = append(doc.Terms, parseTerm(scanner, pool))
			break
		}
		if line[0] == '[' {
			// Non-Term stanza ends the header area
			break
		}
		parseHeaderLine(doc, line)
	}

	// Parse remaining stanzas
	for scanner.Scan() {
		if scanner.Text() == "[Term]" {
			doc.Terms = append(doc.Terms, parseTerm(scanner, pool))
		}
		// Typedef and other stanza types carry no hierarchy; skip them.
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func parseHeaderLine(doc *Document, line string) {
	key, val, ok := strings.Cut(line, ": ")
	if !ok {
		return
	}
	switch key {
	case "format-version":
		doc.FormatVersion = val
	case "data-version":
		doc.DataVersion = val
	case "ontology":
		doc.Ontology = val
	}
}

func parseTerm(scanner *bufio.Scanner, pool *internPool) Term {
	var t Term
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			break // End of stanza
		}

		key, val, ok := strings.Cut(line, ": ")
		if !ok {
			continue
		}

		switch key {
		case "id":
			t.ID = val
		case "name":
			t.Name = val
		case "namespace":
			t.Namespace = pool.get(val)
		case "alt_id":
			t.AltIDs = append(t.AltIDs, val)
		case "is_a":
			t.Parents = append(t.Parents, parseIsA(val, pool))
		case "relationship":
			if rel, ok := parseRelationship(val, pool); ok {
				t.Parents = append(t.Parents, rel)
			}
		case "is_obsolete":
			t.IsObsolete = val == "true"
		}
	}
	return t
}

// parseIsA parses: "GO:0008150 ! biological_process"
func parseIsA(val string, pool *internPool) Relation {
	id, _, _ := strings.Cut(val, " ! ")
	return Relation{Type: pool.get("is_a"), TargetID: strings.TrimSpace(id)}
}

// parseRelationship parses: "part_of GO:0005575 ! cellular_component".
// Only part_of contributes to the hierarchy; other relationship types
// (regulates, occurs_in, ...) are dropped.
func parseRelationship(val string, pool *internPool) (Relation, bool) {
	typ, rest, ok := strings.Cut(val, " ")
	if !ok || typ != "part_of" {
		return Relation{}, false
	}
	id, _, _ := strings.Cut(rest, " ! ")
	return Relation{Type: pool.get(typ), TargetID: strings.TrimSpace(id)}, true
}
