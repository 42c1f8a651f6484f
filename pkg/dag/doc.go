// Package dag provides the directed acyclic graph structure underlying
// per-ontology term graphs.
//
// A [Graph] stores terms as nodes and hierarchical relations (is_a, part_of)
// as directed edges, with separate outgoing and incoming adjacency lists for
// O(1) neighbor lookup in either direction.
//
// # Orientation
//
// Ontology sources expose relations child → parent (a term points at the
// terms it specializes). Root-distance algorithms want the opposite: edges
// pointing away from the root. [Graph.Reverse] converts between the two.
// Reversal is an involution - reversing twice restores the original edge
// set - and preserves edge relation attributes.
//
// # Example
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "GO:0008150"})
//	g.AddNode(dag.Node{ID: "GO:0008152"})
//	g.AddEdge(dag.Edge{From: "GO:0008152", To: "GO:0008150", Rel: "is_a"})
//
//	down := g.Reverse() // root-outward orientation
//	order, ok := down.TopoSort()
package dag
