package summary

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mhalvors/golevels/pkg/errors"
	"github.com/mhalvors/golevels/pkg/ontology"
)

// Supported serialization formats.
const (
	FormatTSV  = "tsv"
	FormatJSON = "json"
)

// tsvHeader is the fixed column order of the TSV format.
var tsvHeader = []string{"id", "shortest_path", "longest_path", "terminal_node", "ontology"}

// MarshalTSV serializes the table as tab-separated values with a header row.
func MarshalTSV(t *Table) []byte {
	var buf bytes.Buffer
	writeTSVTo(t, &buf)
	return buf.Bytes()
}

// WriteTSV writes the table as TSV to an io.Writer.
func WriteTSV(t *Table, w io.Writer) error {
	return writeTSVTo(t, w)
}

// WriteFile writes the table to a file, choosing the format from the
// extension: .json for JSON, anything else for TSV.
// The file is created with 0644 permissions.
func WriteFile(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return writeJSONTo(t, f)
	}
	return writeTSVTo(t, f)
}

// ReadFile reads a summary table from a file, choosing the format from the
// extension like [WriteFile]. A missing file carries the FILE_NOT_FOUND
// error code.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "summary table %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(f)
	}
	return ReadTSV(f)
}

// MarshalJSON serializes the table as indented JSON.
func MarshalJSON(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONTo(t, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadJSON decodes a JSON summary table from an io.Reader.
func ReadJSON(r io.Reader) (*Table, error) {
	var t Table
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode summary JSON")
	}
	return &t, nil
}

// ReadTSV decodes a TSV summary table from an io.Reader.
// The header row is required and must match the canonical column order.
func ReadTSV(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty summary table")
	}
	if got := scanner.Text(); got != strings.Join(tsvHeader, "\t") {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unexpected header %q", got)
	}

	t := &Table{}
	line := 1
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if text == "" {
			continue
		}
		fields := strings.Split(text, "\t")
		if len(fields) != len(tsvHeader) {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "line %d: %d columns, want %d", line, len(fields), len(tsvHeader))
		}
		shortest, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d: shortest_path", line)
		}
		longest, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d: longest_path", line)
		}
		terminal, err := strconv.ParseBool(fields[3])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "line %d: terminal_node", line)
		}
		t.Records = append(t.Records, Record{
			ID:           fields[0],
			ShortestPath: shortest,
			LongestPath:  longest,
			TerminalNode: terminal,
			Ontology:     ontology.Ontology(fields[4]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return t, nil
}

func writeTSVTo(t *Table, w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, strings.Join(tsvHeader, "\t"))
	for _, r := range t.Records {
		fmt.Fprintf(bw, "%s\t%d\t%d\t%t\t%s\n", r.ID, r.ShortestPath, r.LongestPath, r.TerminalNode, r.Ontology)
	}
	return bw.Flush()
}

func writeJSONTo(t *Table, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
