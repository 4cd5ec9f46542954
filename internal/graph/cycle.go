package graph

// HasCycle runs a three-color depth-first search over the graph.
// Edges to unknown nodes are ignored; Missing reports those.
func (g *Graph) HasCycle() bool {
	white := make(map[string]bool, len(g.nodes))
	gray := make(map[string]bool, len(g.nodes))

	for id := range g.nodes {
		white[id] = true
	}

	var dfs func(id string) bool
	dfs = func(id string) bool {
		white[id] = false
		gray[id] = true

		for _, dep := range g.edges[id] {
			if !g.nodes[dep] {
				continue
			}
			if gray[dep] {
				return true
			}
			if white[dep] && dfs(dep) {
				return true
			}
		}

		gray[id] = false
		return false
	}

	for _, id := range g.order {
		if white[id] && dfs(id) {
			return true
		}
	}
	return false
}

// CyclePath returns one cycle as a node path ending where it began,
// or nil when the graph is acyclic.
func (g *Graph) CyclePath() []string {
	visited := make(map[string]bool)
	inPath := make(map[string]bool)
	var path []string

	var dfs func(id string) []string
	dfs = func(id string) []string {
		if inPath[id] {
			var cycle []string
			found := false
			for _, p := range path {
				if p == id {
					found = true
				}
				if found {
					cycle = append(cycle, p)
				}
			}
			return append(cycle, id)
		}
		if visited[id] {
			return nil
		}

		visited[id] = true
		path = append(path, id)
		inPath[id] = true

		for _, dep := range g.edges[id] {
			if !g.nodes[dep] {
				continue
			}
			if cycle := dfs(dep); cycle != nil {
				return cycle
			}
		}

		path = path[:len(path)-1]
		inPath[id] = false
		return nil
	}

	for _, id := range g.order {
		if cycle := dfs(id); cycle != nil {
			return cycle
		}
	}
	return nil
}
