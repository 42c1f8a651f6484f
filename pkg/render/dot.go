// Package render converts ontology graphs to Graphviz DOT and SVG for
// visual inspection of a term neighborhood or a whole (small) ontology.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mhalvors/golevels/pkg/dag"
)

// Options configures DOT generation.
type Options struct {
	// Labels includes term names under the accession in each node label.
	Labels bool

	// Highlight marks these node ids with a filled accent color,
	// typically the ontology root or a term under investigation.
	Highlight []string
}

// ToDOT converts a graph to Graphviz DOT. Edges carry their relationship
// type: part_of edges are drawn dashed so the two hierarchy sources stay
// distinguishable.
func ToDOT(g *dag.Graph, opts Options) string {
	highlight := make(map[string]bool, len(opts.Highlight))
	for _, id := range opts.Highlight {
		highlight[id] = true
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, opts.Labels))}
		if highlight[id] {
			attrs = append(attrs, "fillcolor=lightblue")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if e.Rel == "part_of" {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed, label=\"part_of\", fontsize=10];\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *dag.Node, withName bool) string {
	if !withName || n.Name == "" {
		return n.ID
	}
	return n.ID + "\n" + n.Name
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
