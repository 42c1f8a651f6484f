// Package levels implements the level computation engine: for every term of
// a root-outward ontology graph it derives the shortest and longest directed
// path length from the ontology root, and whether the term is a terminal
// (leaf) node.
//
// Longest path is NP-hard on general graphs but reduces to a linear-time
// dynamic program on a DAG: process nodes in topological order and take the
// max over predecessors. Shortest path falls out of the same sweep with min
// instead of max, so a single Kahn traversal produces both.
//
// # Example
//
//	down, _ := ontology.Load(doc, ontology.BP)
//	res, err := levels.Compute(down, ontology.BP.Root())
//	if err != nil {
//	    return err
//	}
//	r := res["GO:0008152"] // r.ShortestPath, r.LongestPath, r.Terminal
package levels
