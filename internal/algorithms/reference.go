package algorithms

import (
	"fmt"
	"slices"

	"github.com/abhisek/algolab/internal/step"
)

// Verify checks a generated sequence against an independent reference
// computation for the same clamped input. It backs the verify command and
// the package tests.
func Verify(a *Algorithm, raw Input) error {
	in := a.Clamp(raw)
	seq := a.generate(in)
	if seq.Len() == 0 {
		return fmt.Errorf("%s: empty sequence", a.ID)
	}
	for i, s := range seq.Steps {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%s: step %d: %w", a.ID, i, err)
		}
	}
	if !slices.Equal(seq.First().Array, in.Array) {
		return fmt.Errorf("%s: first step %v does not show input %v", a.ID, seq.First().Array, in.Array)
	}

	last := seq.Last()
	switch a.Family {
	case FamilySorting:
		if want := slices.Sorted(slices.Values(in.Array)); !slices.Equal(last.Array, want) {
			return fmt.Errorf("%s: got %v, want %v", a.ID, last.Array, want)
		}
		return nil
	case FamilySearching:
		return verifySearch(a, in, last)
	}

	want, ok := referenceResult(a.ID, in)
	if !ok {
		return fmt.Errorf("%s: no reference", a.ID)
	}
	if last.Result == nil {
		return fmt.Errorf("%s: final step has no result", a.ID)
	}
	if got := int(*last.Result); got != want {
		return fmt.Errorf("%s: result %d, want %d", a.ID, got, want)
	}
	return nil
}

func verifySearch(a *Algorithm, in Input, last step.Step) error {
	if last.Result == nil {
		return fmt.Errorf("%s: final step has no result", a.ID)
	}
	got := int(*last.Result)
	present := slices.Contains(in.Array, in.Target)
	switch {
	case !present && got != -1:
		return fmt.Errorf("%s: target %d absent but got index %d", a.ID, in.Target, got)
	case present && got == -1:
		return fmt.Errorf("%s: target %d present but not found", a.ID, in.Target)
	case !present:
		return nil
	}
	if a.ID == LinearSearch {
		if want := slices.Index(in.Array, in.Target); got != want {
			return fmt.Errorf("%s: index %d, want first occurrence %d", a.ID, got, want)
		}
		return nil
	}
	if got < 0 || got >= len(last.Array) || last.Array[got] != in.Target {
		return fmt.Errorf("%s: index %d does not hold %d in %v", a.ID, got, in.Target, last.Array)
	}
	return nil
}

func referenceResult(id ID, in Input) (int, bool) {
	switch id {
	case BFS, DFS:
		return reachable(in), true
	case Dijkstra:
		return bellmanFord(in), true
	case Fibonacci:
		a, b := 0, 1
		if len(in.Array) > 0 {
			a = in.Array[0]
		}
		if len(in.Array) > 1 {
			b = in.Array[1]
		}
		for i := 2; i <= in.Target; i++ {
			a, b = b, a+b
		}
		return b, true
	case Knapsack:
		return knapsack2D(in.Array, knapsackValues(in), in.Target), true
	case CoinChange:
		return minCoins(in.Array, in.Target), true
	}
	return 0, false
}

func reachable(in Input) int {
	n := len(in.Array)
	if n == 0 {
		return 0
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	for _, e := range graphFor(in).Edges {
		parent[find(e.From)] = find(e.To)
	}
	count := 0
	for i := range n {
		if find(i) == find(0) {
			count++
		}
	}
	return count
}

func bellmanFord(in Input) int {
	n := len(in.Array)
	if n == 0 {
		return 0
	}
	dist := make([]int, n)
	for i := range dist {
		dist[i] = Infinity
	}
	dist[0] = 0
	edges := graphFor(in).Edges
	for range n {
		for _, e := range edges {
			if dist[e.From] != Infinity && dist[e.From]+e.Weight < dist[e.To] {
				dist[e.To] = dist[e.From] + e.Weight
			}
			if dist[e.To] != Infinity && dist[e.To]+e.Weight < dist[e.From] {
				dist[e.From] = dist[e.To] + e.Weight
			}
		}
	}
	if dist[n-1] == Infinity {
		return -1
	}
	return dist[n-1]
}

func knapsack2D(weights, values []int, capacity int) int {
	best := make([][]int, len(weights)+1)
	for i := range best {
		best[i] = make([]int, capacity+1)
	}
	for i := 1; i <= len(weights); i++ {
		w, v := weights[i-1], values[i-1]
		for c := 0; c <= capacity; c++ {
			best[i][c] = best[i-1][c]
			if w <= c && best[i-1][c-w]+v > best[i][c] {
				best[i][c] = best[i-1][c-w] + v
			}
		}
	}
	return best[len(weights)][capacity]
}

func minCoins(coins []int, amount int) int {
	memo := map[int]int{0: 0}
	var solve func(int) int
	solve = func(a int) int {
		if v, ok := memo[a]; ok {
			return v
		}
		best := Infinity
		for _, c := range coins {
			if c <= a {
				if sub := solve(a - c); sub != Infinity && sub+1 < best {
					best = sub + 1
				}
			}
		}
		memo[a] = best
		return best
	}
	if r := solve(amount); r != Infinity {
		return r
	}
	return -1
}
