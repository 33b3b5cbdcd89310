// Package graph audits the related-pages graph of a site. None of this runs
// while pages are browsed; it backs the audit command and content tests.
package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/ziadkadry99/archdocs/internal/ui"
)

// Report is the outcome of an audit.
type Report struct {
	Pages       int              `json:"pages"`
	Edges       int              `json:"edges"`
	Dangling    []ui.DanglingRef `json:"dangling,omitempty"`
	SelfRefs    []string         `json:"self_refs,omitempty"`
	Orphans     []string         `json:"orphans,omitempty"`
	Unreachable []string         `json:"unreachable,omitempty"`
	Cycles      [][]string       `json:"cycles,omitempty"`
}

// OK reports whether the site has no broken references. Orphans,
// unreachable pages and cycles are informational.
func (r Report) OK() bool { return len(r.Dangling) == 0 }

// Analyzer holds the related-pages graph of one registry.
type Analyzer struct {
	g        *simple.DirectedGraph
	idToNode map[string]int64
	nodeToID map[int64]string
	order    []string
	reg      *ui.Registry
}

// NewAnalyzer builds the graph. References to unknown pages and
// self-references are left out of the graph; Audit reports them separately.
func NewAnalyzer(reg *ui.Registry) *Analyzer {
	g := simple.NewDirectedGraph()
	ids := reg.IDs()
	idToNode := make(map[string]int64, len(ids))
	nodeToID := make(map[int64]string, len(ids))

	for _, id := range ids {
		n := g.NewNode()
		g.AddNode(n)
		idToNode[id] = n.ID()
		nodeToID[n.ID()] = id
	}

	for from, targets := range reg.Adjacency() {
		u := idToNode[from]
		for _, to := range targets {
			v, ok := idToNode[to]
			if !ok || u == v {
				continue
			}
			g.SetEdge(g.NewEdge(g.Node(u), g.Node(v)))
		}
	}

	return &Analyzer{g: g, idToNode: idToNode, nodeToID: nodeToID, order: ids, reg: reg}
}

// Audit checks the graph. home is the entry page used for reachability;
// when it is empty or unknown the first registered page is used.
func (a *Analyzer) Audit(home string) Report {
	rep := Report{
		Pages:    len(a.order),
		Dangling: a.reg.Dangling(),
	}

	edges := a.g.Edges()
	for edges.Next() {
		rep.Edges++
	}

	for from, targets := range a.reg.Adjacency() {
		for _, to := range targets {
			if to == from {
				rep.SelfRefs = append(rep.SelfRefs, from)
				break
			}
		}
	}
	sort.Strings(rep.SelfRefs)

	if _, ok := a.idToNode[home]; !ok && len(a.order) > 0 {
		home = a.order[0]
	}

	for _, id := range a.order {
		if id == home {
			continue
		}
		n := a.g.Node(a.idToNode[id])
		if a.g.To(n.ID()).Len() == 0 {
			rep.Orphans = append(rep.Orphans, id)
		}
		if !topo.PathExistsIn(a.g, a.g.Node(a.idToNode[home]), n) {
			rep.Unreachable = append(rep.Unreachable, id)
		}
	}

	for _, scc := range topo.TarjanSCC(a.g) {
		if len(scc) < 2 {
			continue
		}
		rep.Cycles = append(rep.Cycles, a.names(scc))
	}
	sort.Slice(rep.Cycles, func(i, j int) bool { return rep.Cycles[i][0] < rep.Cycles[j][0] })

	return rep
}

// Inbound returns the pages whose related panel lists id, in registration
// order.
func (a *Analyzer) Inbound(id string) []string {
	n, ok := a.idToNode[id]
	if !ok {
		return nil
	}
	var from []int64
	nodes := a.g.To(n)
	for nodes.Next() {
		from = append(from, nodes.Node().ID())
	}
	out := make([]string, 0, len(from))
	for _, pid := range a.order {
		for _, f := range from {
			if a.nodeToID[f] == pid {
				out = append(out, pid)
			}
		}
	}
	return out
}

func (a *Analyzer) names(nodes []graph.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, a.nodeToID[n.ID()])
	}
	sort.Strings(out)
	return out
}

// Audit is a shortcut for NewAnalyzer(reg).Audit(home).
func Audit(reg *ui.Registry, home string) Report {
	return NewAnalyzer(reg).Audit(home)
}
