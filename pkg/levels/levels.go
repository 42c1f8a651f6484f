package levels

import (
	"fmt"

	"github.com/mhalvors/golevels/pkg/dag"
	"github.com/mhalvors/golevels/pkg/errors"
)

// Result holds the root-distance summary for a single term.
type Result struct {
	// ShortestPath is the edge count of the shortest directed path from the
	// ontology root to the term. The root itself is 0.
	ShortestPath int

	// LongestPath is the edge count of the longest directed path from the
	// root to the term. Always >= ShortestPath; well-defined because the
	// graph is acyclic.
	LongestPath int

	// Terminal is true iff the term has no children (out-degree zero in the
	// root-outward graph).
	Terminal bool
}

// Compute calculates shortest and longest root distances and the terminal
// flag for every node of a root-outward ontology graph. It is a pure
// function of its input: the graph is not modified, and repeated runs yield
// identical results.
//
// Nodes are processed in topological order (Kahn). The root starts at 0/0;
// every other node takes the min/max over its predecessors plus one. Ties
// between equal-length paths are not distinguished - only the numeric
// length matters.
//
// Error cases, all fatal:
//   - the root is missing from the graph (INVALID_INPUT)
//   - the graph contains a cycle (DATA_SOURCE - corrupted snapshot)
//   - a node has no path from the root (UNREACHABLE_NODE)
func Compute(down *dag.Graph, root string) (map[string]Result, error) {
	if _, ok := down.Node(root); !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "root %s not present in graph", root)
	}

	order, acyclic := down.TopoSort()
	if !acyclic {
		return nil, errors.Wrap(errors.ErrCodeDataSource, dag.ErrGraphHasCycle, "level computation")
	}

	res := make(map[string]Result, down.NodeCount())
	res[root] = Result{ShortestPath: 0, LongestPath: 0, Terminal: down.OutDegree(root) == 0}

	var unreachable []string
	for _, id := range order {
		if id == root {
			continue
		}

		shortest, longest := -1, -1
		for _, pred := range down.Predecessors(id) {
			pr, ok := res[pred]
			if !ok {
				continue // predecessor itself unreachable
			}
			if shortest == -1 || pr.ShortestPath+1 < shortest {
				shortest = pr.ShortestPath + 1
			}
			if pr.LongestPath+1 > longest {
				longest = pr.LongestPath + 1
			}
		}

		if shortest == -1 {
			unreachable = append(unreachable, id)
			continue
		}
		res[id] = Result{
			ShortestPath: shortest,
			LongestPath:  longest,
			Terminal:     down.OutDegree(id) == 0,
		}
	}

	if len(unreachable) > 0 {
		sample := unreachable
		if len(sample) > 5 {
			sample = sample[:5]
		}
		return nil, errors.New(errors.ErrCodeUnreachable,
			"%d nodes have no path from root %s (first: %s)",
			len(unreachable), root, fmt.Sprint(sample))
	}
	return res, nil
}
