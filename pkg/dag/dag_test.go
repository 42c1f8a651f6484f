package dag

import (
	"errors"
	"slices"
	"sort"
	"testing"
)

func TestAddNode_Duplicate(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{ID: "a"}); err != nil {
		t.Fatalf("AddNode() error: %v", err)
	}
	if err := g.AddNode(Node{ID: "a"}); !errors.Is(err, ErrDuplicateNodeID) {
		t.Errorf("AddNode() error = %v, want ErrDuplicateNodeID", err)
	}
}

func TestAddNode_EmptyID(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); !errors.Is(err, ErrInvalidNodeID) {
		t.Errorf("AddNode() error = %v, want ErrInvalidNodeID", err)
	}
}

func TestAddEdge_UnknownEndpoints(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})

	if err := g.AddEdge(Edge{From: "x", To: "a"}); !errors.Is(err, ErrUnknownSourceNode) {
		t.Errorf("AddEdge() error = %v, want ErrUnknownSourceNode", err)
	}
	if err := g.AddEdge(Edge{From: "a", To: "x"}); !errors.Is(err, ErrUnknownTargetNode) {
		t.Errorf("AddEdge() error = %v, want ErrUnknownTargetNode", err)
	}
}

func TestAdjacency(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddNode(Node{ID: "c"})
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "a", To: "c"})

	if got := g.OutDegree("a"); got != 2 {
		t.Errorf("OutDegree(a) = %d, want 2", got)
	}
	if got := g.InDegree("b"); got != 1 {
		t.Errorf("InDegree(b) = %d, want 1", got)
	}
	if got := g.Predecessors("c"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Predecessors(c) = %v, want [a]", got)
	}
}

func TestRemoveNode(t *testing.T) {
	// all -> root -> leaf; removing "all" keeps root -> leaf intact.
	g := New()
	g.AddNode(Node{ID: "all"})
	g.AddNode(Node{ID: "root"})
	g.AddNode(Node{ID: "leaf"})
	g.AddEdge(Edge{From: "all", To: "root"})
	g.AddEdge(Edge{From: "root", To: "leaf"})

	if err := g.RemoveNode("all"); err != nil {
		t.Fatalf("RemoveNode() error: %v", err)
	}

	if g.NodeCount() != 2 {
		t.Errorf("NodeCount() = %d, want 2", g.NodeCount())
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if got := g.InDegree("root"); got != 0 {
		t.Errorf("InDegree(root) = %d, want 0 after removal", got)
	}
	if err := g.RemoveNode("all"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("RemoveNode() error = %v, want ErrUnknownNode", err)
	}
}

func TestReverse_RoundTrip(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddNode(Node{ID: "c"})
	g.AddEdge(Edge{From: "a", To: "b", Rel: "is_a"})
	g.AddEdge(Edge{From: "b", To: "c", Rel: "part_of"})
	g.AddEdge(Edge{From: "a", To: "c", Rel: "is_a"})

	rr := g.Reverse().Reverse()

	if rr.NodeCount() != g.NodeCount() {
		t.Fatalf("NodeCount() = %d, want %d", rr.NodeCount(), g.NodeCount())
	}
	want := g.Edges()
	got := rr.Edges()
	sortEdges(want)
	sortEdges(got)
	if !slices.Equal(want, got) {
		t.Errorf("double reversal edges = %v, want %v", got, want)
	}
}

func TestReverse_InvertsDirection(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "child"})
	g.AddNode(Node{ID: "parent"})
	g.AddEdge(Edge{From: "child", To: "parent", Rel: "is_a"})

	r := g.Reverse()

	if got := r.Successors("parent"); !slices.Equal(got, []string{"child"}) {
		t.Errorf("Successors(parent) = %v, want [child]", got)
	}
	if r.Edges()[0].Rel != "is_a" {
		t.Errorf("Rel = %q, want is_a preserved", r.Edges()[0].Rel)
	}
	// Original untouched.
	if got := g.Successors("child"); !slices.Equal(got, []string{"parent"}) {
		t.Errorf("original Successors(child) = %v, want [parent]", got)
	}
}

func TestReachable(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "r"})
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddNode(Node{ID: "island"})
	g.AddEdge(Edge{From: "r", To: "a"})
	g.AddEdge(Edge{From: "a", To: "b"})

	seen := g.Reachable("r")

	if len(seen) != 3 {
		t.Errorf("Reachable(r) size = %d, want 3", len(seen))
	}
	if seen["island"] {
		t.Error("Reachable(r) includes island, want unreachable")
	}
}

func TestValidate_Cycle(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "b", To: "a"})

	if err := g.Validate(); !errors.Is(err, ErrGraphHasCycle) {
		t.Errorf("Validate() error = %v, want ErrGraphHasCycle", err)
	}
}

func TestValidate_DiamondNoCycle(t *testing.T) {
	//   a
	//  / \
	// b   c
	//  \ /
	//   d
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(Node{ID: id})
	}
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "a", To: "c"})
	g.AddEdge(Edge{From: "b", To: "d"})
	g.AddEdge(Edge{From: "c", To: "d"})

	if err := g.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestTopoSort(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c", "d"} {
		g.AddNode(Node{ID: id})
	}
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "a", To: "c"})
	g.AddEdge(Edge{From: "b", To: "d"})
	g.AddEdge(Edge{From: "c", To: "d"})

	order, ok := g.TopoSort()
	if !ok {
		t.Fatal("TopoSort() reported cycle in acyclic graph")
	}
	if len(order) != 4 {
		t.Fatalf("TopoSort() returned %d nodes, want 4", len(order))
	}

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range g.Edges() {
		if pos[e.From] >= pos[e.To] {
			t.Errorf("TopoSort() places %s after %s", e.From, e.To)
		}
	}
}

func TestTopoSort_Cycle(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{From: "a", To: "b"})
	g.AddEdge(Edge{From: "b", To: "a"})

	if _, ok := g.TopoSort(); ok {
		t.Error("TopoSort() ok = true for cyclic graph, want false")
	}
}

func TestSourcesAndSinks(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "root"})
	g.AddNode(Node{ID: "mid"})
	g.AddNode(Node{ID: "leaf"})
	g.AddEdge(Edge{From: "root", To: "mid"})
	g.AddEdge(Edge{From: "mid", To: "leaf"})

	sources := g.Sources()
	if len(sources) != 1 || sources[0].ID != "root" {
		t.Errorf("Sources() = %v, want [root]", ids(sources))
	}
	sinks := g.Sinks()
	if len(sinks) != 1 || sinks[0].ID != "leaf" {
		t.Errorf("Sinks() = %v, want [leaf]", ids(sinks))
	}
}

func TestClone_Independent(t *testing.T) {
	g := New()
	g.AddNode(Node{ID: "a"})
	g.AddNode(Node{ID: "b"})
	g.AddEdge(Edge{From: "a", To: "b"})

	c := g.Clone()
	c.AddNode(Node{ID: "c"})
	c.AddEdge(Edge{From: "b", To: "c"})

	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("original mutated: %d nodes, %d edges", g.NodeCount(), g.EdgeCount())
	}
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func sortEdges(es []Edge) {
	sort.Slice(es, func(i, j int) bool {
		if es[i].From != es[j].From {
			return es[i].From < es[j].From
		}
		if es[i].To != es[j].To {
			return es[i].To < es[j].To
		}
		return es[i].Rel < es[j].Rel
	})
}
