package dag

import (
	"encoding/json"
	"fmt"
)

// graphJSON is the wire form of a Graph. Nodes are emitted in sorted id
// order so equal graphs serialize to equal bytes, which content-addressed
// cache keys rely on.
type graphJSON struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Marshal serializes the graph to JSON.
func Marshal(g *Graph) ([]byte, error) {
	wire := graphJSON{
		Nodes: make([]Node, 0, g.NodeCount()),
		Edges: g.Edges(),
	}
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		wire.Nodes = append(wire.Nodes, *n)
	}
	return json.Marshal(wire)
}

// Unmarshal reconstructs a graph from its JSON form.
func Unmarshal(data []byte) (*Graph, error) {
	var wire graphJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}

	g := New()
	for _, n := range wire.Nodes {
		if err := g.AddNode(n); err != nil {
			return nil, fmt.Errorf("decode graph: %w", err)
		}
	}
	for _, e := range wire.Edges {
		if err := g.AddEdge(e); err != nil {
			return nil, fmt.Errorf("decode graph: %w", err)
		}
	}
	return g, nil
}
