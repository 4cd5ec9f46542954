// Package graph holds the dependency graph built during static
// validation of a component registry. A graph is constructed for one
// validation pass and discarded, so it is not safe for concurrent use.
package graph

type Graph struct {
	nodes map[string]bool
	edges map[string][]string
	order []string
}

func New() *Graph {
	return &Graph{
		nodes: make(map[string]bool),
		edges: make(map[string][]string),
	}
}

func (g *Graph) AddNode(id string, dependencies []string) {
	if !g.nodes[id] {
		g.order = append(g.order, id)
	}
	g.nodes[id] = true
	g.edges[id] = append(g.edges[id], dependencies...)
}

func (g *Graph) HasNode(id string) bool {
	return g.nodes[id]
}

func (g *Graph) Size() int {
	return len(g.nodes)
}

// Nodes returns node IDs in insertion order.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

func (g *Graph) Dependencies(id string) []string {
	deps := g.edges[id]
	out := make([]string, len(deps))
	copy(out, deps)
	return out
}

// Missing returns dependency IDs that were never added as nodes.
func (g *Graph) Missing() []string {
	var missing []string
	seen := make(map[string]bool)

	for _, id := range g.order {
		for _, dep := range g.edges[id] {
			if !g.nodes[dep] && !seen[dep] {
				missing = append(missing, dep)
				seen[dep] = true
			}
		}
	}
	return missing
}
