package algorithms

import (
	"fmt"
	"slices"

	"github.com/abhisek/algolab/internal/step"
)

// Graph generators walk from node 0. The array holds node values for BFS and
// DFS; Dijkstra replaces it with tentative distances after the first step.

func bfs(in Input) *step.Sequence {
	arr := slices.Clone(in.Array)
	rec := step.NewRecorder(string(BFS), arr)
	n := len(arr)
	if n == 0 {
		return emptyGraph(rec)
	}
	adj := graphFor(in).adjacency(n)
	rec.Emit(arr, step.Step{Operation: fmt.Sprintf("Graph with %d nodes, start at node 0", n)})

	visited := step.NewIndexSet(0)
	queue := []int{0}
	rec.Emit(arr, step.Step{
		CurrentIndex: step.Int(0),
		Visited:      visited,
		Operation:    "Enqueue node 0 and mark it visited",
		Line:         step.Int(0),
	})
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		rec.Emit(arr, step.Step{
			CurrentIndex: step.Int(u),
			Visited:      visited,
			Operation:    fmt.Sprintf("Dequeue node %d (value %d)", u, arr[u]),
			Line:         step.Int(1),
		})
		for _, nb := range adj[u] {
			rec.Emit(arr, step.Step{
				CurrentIndex: step.Int(u),
				Comparing:    step.NewIndexSet(u, nb.node),
				Visited:      visited,
				Operation:    fmt.Sprintf("Check edge %d-%d", u, nb.node),
				Line:         step.Int(2),
			})
			if visited.Has(nb.node) {
				continue
			}
			visited = visited.With(nb.node)
			queue = append(queue, nb.node)
			rec.Emit(arr, step.Step{
				CurrentIndex: step.Int(nb.node),
				Visited:      visited,
				Operation:    fmt.Sprintf("Visit node %d and enqueue it", nb.node),
				Line:         step.Int(3),
			})
		}
	}
	rec.Emit(arr, step.Step{
		Visited:   visited,
		Operation: fmt.Sprintf("Traversal complete, %d nodes reached", len(visited)),
		Result:    step.Float(float64(len(visited))),
	})
	return rec.Finish(arr, "Traversal complete")
}

func dfs(in Input) *step.Sequence {
	arr := slices.Clone(in.Array)
	rec := step.NewRecorder(string(DFS), arr)
	n := len(arr)
	if n == 0 {
		return emptyGraph(rec)
	}
	adj := graphFor(in).adjacency(n)
	rec.Emit(arr, step.Step{Operation: fmt.Sprintf("Graph with %d nodes, start at node 0", n)})

	var visited step.IndexSet
	var visit func(u int)
	visit = func(u int) {
		visited = visited.With(u)
		rec.Emit(arr, step.Step{
			CurrentIndex: step.Int(u),
			Visited:      visited,
			Operation:    fmt.Sprintf("Visit node %d (value %d)", u, arr[u]),
			Line:         step.Int(0),
		})
		for _, nb := range adj[u] {
			rec.Emit(arr, step.Step{
				CurrentIndex: step.Int(u),
				Comparing:    step.NewIndexSet(u, nb.node),
				Visited:      visited,
				Operation:    fmt.Sprintf("Check edge %d-%d", u, nb.node),
				Line:         step.Int(1),
			})
			if !visited.Has(nb.node) {
				visit(nb.node)
			}
		}
		rec.Emit(arr, step.Step{
			CurrentIndex: step.Int(u),
			Visited:      visited,
			Operation:    fmt.Sprintf("Backtrack from node %d", u),
			Line:         step.Int(3),
		})
	}
	visit(0)

	rec.Emit(arr, step.Step{
		Visited:   visited,
		Operation: fmt.Sprintf("Traversal complete, %d nodes reached", len(visited)),
		Result:    step.Float(float64(len(visited))),
	})
	return rec.Finish(arr, "Traversal complete")
}

// dijkstra computes the shortest distance from node 0 to the last node. It
// uses a linear scan for the closest unfinished node, which keeps every
// selection visible as a step.
func dijkstra(in Input) *step.Sequence {
	rec := step.NewRecorder(string(Dijkstra), in.Array)
	n := len(in.Array)
	if n == 0 {
		return emptyGraph(rec)
	}
	adj := graphFor(in).adjacency(n)
	rec.Emit(in.Array, step.Step{Operation: fmt.Sprintf("Graph with %d nodes, find the shortest path 0 to %d", n, n-1)})

	dist := make([]int, n)
	for i := range dist {
		dist[i] = Infinity
	}
	dist[0] = 0
	rec.Emit(dist, step.Step{
		CurrentIndex: step.Int(0),
		Operation:    "Distances: 0 for the start, infinity elsewhere",
		Line:         step.Int(0),
	})

	var done step.IndexSet
	for len(done) < n {
		u := -1
		for i, d := range dist {
			if !done.Has(i) && d != Infinity && (u == -1 || d < dist[u]) {
				u = i
			}
		}
		if u == -1 {
			break
		}
		done = done.With(u)
		rec.Emit(dist, step.Step{
			CurrentIndex: step.Int(u),
			Visited:      done,
			Operation:    fmt.Sprintf("Closest unfinished node is %d at distance %d", u, dist[u]),
			Line:         step.Int(1),
		})
		for _, nb := range adj[u] {
			if done.Has(nb.node) {
				continue
			}
			rec.Emit(dist, step.Step{
				CurrentIndex: step.Int(u),
				Comparing:    step.NewIndexSet(u, nb.node),
				Visited:      done,
				Operation:    fmt.Sprintf("Edge %d-%d has weight %d", u, nb.node, nb.weight),
				Line:         step.Int(2),
			})
			if cand := dist[u] + nb.weight; cand < dist[nb.node] {
				dist[nb.node] = cand
				rec.Emit(dist, step.Step{
					CurrentIndex: step.Int(nb.node),
					Swapping:     step.NewIndexSet(nb.node),
					Visited:      done,
					Operation:    fmt.Sprintf("Relax node %d to distance %d", nb.node, cand),
					Line:         step.Int(3),
				})
			}
		}
	}

	result := -1
	op := fmt.Sprintf("Node %d is unreachable", n-1)
	if d := dist[n-1]; d != Infinity {
		result = d
		op = fmt.Sprintf("Shortest distance to node %d is %d", n-1, d)
	}
	rec.Emit(dist, step.Step{
		CurrentIndex: step.Int(n - 1),
		Visited:      done,
		Operation:    op,
		Result:       step.Float(float64(result)),
		Line:         step.Int(4),
	})
	return rec.Finish(dist, op)
}

func emptyGraph(rec *step.Recorder) *step.Sequence {
	rec.Emit(nil, step.Step{Operation: "Empty graph, nothing to traverse", Result: step.Float(0)})
	return rec.Finish(nil, "Empty graph")
}
