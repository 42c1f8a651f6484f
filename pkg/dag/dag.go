package dag

import (
	"errors"
	"maps"
	"slices"
)

var (
	// ErrInvalidNodeID is returned by [Graph.AddNode] when the node ID is
	// empty. All terms must have non-empty accessions.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Term accessions must be unique.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownSourceNode is returned by [Graph.AddEdge] when the From node
	// does not exist in the graph.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [Graph.AddEdge] when the To node
	// does not exist in the graph.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrUnknownNode is returned by [Graph.RemoveNode] when the node to
	// remove does not exist.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidEdgeEndpoint is returned by [Graph.Validate] when an edge
	// references a node that doesn't exist. This indicates graph corruption.
	ErrInvalidEdgeEndpoint = errors.New("invalid edge endpoint")

	// ErrGraphHasCycle is returned by [Graph.Validate] when a cycle is
	// detected. Ontology term graphs must be acyclic; a cycle indicates a
	// corrupted snapshot. Cycles are detected using depth-first search with
	// white/gray/black coloring.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Node represents a term vertex in an ontology graph.
//
// The zero value is not usable - ID must be set before adding to a Graph.
type Node struct {
	ID   string // Unique identifier (GO accession, e.g. "GO:0008150")
	Name string // Human-readable term name (optional)
}

// Edge represents a directed hierarchical relation between two terms.
// Rel carries the relation type from the source ontology (is_a, part_of)
// and is preserved by [Graph.Reverse].
type Edge struct {
	From string // Source node ID
	To   string // Target node ID
	Rel  string // Relation type (is_a, part_of); optional
}

// Graph is a directed acyclic graph of ontology terms backed by adjacency
// lists, giving O(1) neighbor lookup and linear-time traversal. One Graph is
// built per ontology (BP, CC, MF).
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent mutation without external synchronization;
// concurrent reads are fine.
type Graph struct {
	nodes    map[string]*Node
	edges    []Edge
	outgoing map[string][]string // nodeID -> successor IDs
	incoming map[string][]string // nodeID -> predecessor IDs
}

// New creates an empty Graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		outgoing: make(map[string][]string),
		incoming: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
// Returns ErrInvalidNodeID if the node ID is empty, or ErrDuplicateNodeID
// if a node with the same ID already exists.
func (g *Graph) AddNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if _, exists := g.nodes[n.ID]; exists {
		return ErrDuplicateNodeID
	}
	node := &n
	g.nodes[node.ID] = node
	return nil
}

// AddEdge adds a directed edge between two existing nodes.
// Returns ErrUnknownSourceNode if the From node doesn't exist, or
// ErrUnknownTargetNode if the To node doesn't exist.
//
// Multiple edges between the same nodes are allowed (a term can relate to
// the same parent through both is_a and part_of).
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return ErrUnknownSourceNode
	}
	if _, ok := g.nodes[e.To]; !ok {
		return ErrUnknownTargetNode
	}
	g.edges = append(g.edges, e)
	g.outgoing[e.From] = append(g.outgoing[e.From], e.To)
	g.incoming[e.To] = append(g.incoming[e.To], e.From)
	return nil
}

// RemoveNode removes a node and every edge touching it.
// Returns ErrUnknownNode if the node does not exist.
//
// This is used to drop the universal root placeholder after loading; the
// operation is O(N+E) as the edge list and adjacency maps are rebuilt.
func (g *Graph) RemoveNode(id string) error {
	if _, ok := g.nodes[id]; !ok {
		return ErrUnknownNode
	}
	delete(g.nodes, id)
	g.edges = slices.DeleteFunc(g.edges, func(e Edge) bool { return e.From == id || e.To == id })
	for _, succ := range g.outgoing[id] {
		g.incoming[succ] = slices.DeleteFunc(g.incoming[succ], func(s string) bool { return s == id })
	}
	for _, pred := range g.incoming[id] {
		g.outgoing[pred] = slices.DeleteFunc(g.outgoing[pred], func(s string) bool { return s == id })
	}
	delete(g.outgoing, id)
	delete(g.incoming, id)
	return nil
}

// Nodes returns all nodes in the graph.
// The order is not guaranteed. The returned slice contains pointers to
// the actual node structs, so modifications affect the graph.
func (g *Graph) Nodes() []*Node {
	nodes := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		nodes = append(nodes, n)
	}
	return nodes
}

// NodeIDs returns all node IDs in sorted order.
func (g *Graph) NodeIDs() []string {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Edges returns a copy of all edges in the graph.
// The order matches insertion order. Modifications to the returned
// slice do not affect the graph.
func (g *Graph) Edges() []Edge { return slices.Clone(g.edges) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Successors returns the IDs of nodes this node has edges to.
// Returns nil if the node has no successors or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (g *Graph) Successors(id string) []string { return g.outgoing[id] }

// Predecessors returns the IDs of nodes that have edges to this node.
// Returns nil if the node has no predecessors or doesn't exist. The returned
// slice should not be modified - use it as a read-only view.
func (g *Graph) Predecessors(id string) []string { return g.incoming[id] }

// OutDegree returns the number of outgoing edges from the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

// InDegree returns the number of incoming edges to the node.
// Returns 0 if the node doesn't exist.
func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Node returns the node with the given ID and true, or nil and false if not
// found.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Sources returns nodes with no incoming edges.
// In a root-outward ontology graph the single source is the ontology root.
// The order is not guaranteed. Returns nil for an empty graph.
func (g *Graph) Sources() []*Node {
	var sources []*Node
	for _, n := range g.nodes {
		if len(g.incoming[n.ID]) == 0 {
			sources = append(sources, n)
		}
	}
	return sources
}

// Sinks returns nodes with no outgoing edges.
// In a root-outward ontology graph these are the terminal (leaf) terms.
// The order is not guaranteed. Returns nil for an empty graph.
func (g *Graph) Sinks() []*Node {
	var sinks []*Node
	for _, n := range g.nodes {
		if len(g.outgoing[n.ID]) == 0 {
			sinks = append(sinks, n)
		}
	}
	return sinks
}

// Reverse returns the transpose graph: the identical node set with every
// edge direction inverted. Edge relation attributes are preserved. The
// receiver is not modified, and reversing twice yields a graph with the
// original edge set.
func (g *Graph) Reverse() *Graph {
	r := New()
	for _, n := range g.nodes {
		r.nodes[n.ID] = &Node{ID: n.ID, Name: n.Name}
	}
	r.edges = make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		rev := Edge{From: e.To, To: e.From, Rel: e.Rel}
		r.edges = append(r.edges, rev)
		r.outgoing[rev.From] = append(r.outgoing[rev.From], rev.To)
		r.incoming[rev.To] = append(r.incoming[rev.To], rev.From)
	}
	return r
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, n := range g.nodes {
		c.nodes[n.ID] = &Node{ID: n.ID, Name: n.Name}
	}
	c.edges = slices.Clone(g.edges)
	for id, succ := range g.outgoing {
		c.outgoing[id] = slices.Clone(succ)
	}
	for id, pred := range g.incoming {
		c.incoming[id] = slices.Clone(pred)
	}
	return c
}

// Reachable returns the set of node IDs reachable from the given start
// node, including the start node itself. Returns an empty set if the start
// node does not exist.
func (g *Graph) Reachable(start string) map[string]bool {
	seen := make(map[string]bool, len(g.nodes))
	if _, ok := g.nodes[start]; !ok {
		return seen
	}
	queue := []string{start}
	seen[start] = true
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, succ := range g.outgoing[curr] {
			if !seen[succ] {
				seen[succ] = true
				queue = append(queue, succ)
			}
		}
	}
	return seen
}

// Validate checks graph integrity and returns nil if valid.
// It verifies that all edges connect existing nodes and that the graph is
// acyclic.
//
// Returns ErrInvalidEdgeEndpoint if an edge references a missing node, or
// ErrGraphHasCycle if a cycle is detected. Use this after loading a
// snapshot and before computing levels.
//
// Cycle detection runs in O(N+E) time using depth-first search.
func (g *Graph) Validate() error {
	for _, e := range g.edges {
		if _, ok := g.nodes[e.From]; !ok {
			return ErrInvalidEdgeEndpoint
		}
		if _, ok := g.nodes[e.To]; !ok {
			return ErrInvalidEdgeEndpoint
		}
	}
	return g.detectCycles()
}

func (g *Graph) detectCycles() error {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, len(g.nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, succ := range g.outgoing[id] {
			switch color[succ] {
			case white:
				dfs(succ)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for id := range g.nodes {
		if color[id] == white {
			dfs(id)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}

// TopoSort returns the node IDs in a topological order using Kahn's
// algorithm. The second return value is false if the graph contains a
// cycle, in which case the returned order is incomplete.
//
// Ties (nodes that become ready at the same time) are broken by insertion
// into the queue; callers that need determinism across runs should not rely
// on a specific order among incomparable nodes.
func (g *Graph) TopoSort() ([]string, bool) {
	inDegree := make(map[string]int, len(g.nodes))
	queue := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		d := len(g.incoming[id])
		inDegree[id] = d
		if d == 0 {
			queue = append(queue, id)
		}
	}

	order := make([]string, 0, len(g.nodes))
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)
		for _, succ := range g.outgoing[curr] {
			inDegree[succ]--
			if inDegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}
	return order, len(order) == len(g.nodes)
}
