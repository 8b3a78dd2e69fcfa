package algorithms

import (
	"math"
	"math/rand/v2"
	"slices"
)

// Infinity marks an unreachable distance or unfilled table cell.
const Infinity = math.MaxInt32

// Input is what a generator runs on. Which fields matter depends on the
// family:
//
//	sorting     Array
//	searching   Array, Target (value to find)
//	graph       Array (node values), Graph (optional, derived from Array when nil)
//	fibonacci   Array (seeds), Target (n)
//	knapsack    Array (weights), Values (optional), Target (capacity)
//	coin-change Array (denominations), Target (amount)
type Input struct {
	Array  []int
	Values []int
	Target int
	Graph  *Graph
}

// Limits bound an algorithm's input for legibility.
type Limits struct {
	MinLen, MaxLen     int
	MinValue, MaxValue int
	// MinTarget and MaxTarget are zero for algorithms without a target.
	MinTarget, MaxTarget int
}

// Clamp forces in into the algorithm's limits. Over-long arrays are
// truncated, values and target are clamped to their ranges, graph edges that
// reference missing nodes are dropped.
func (a *Algorithm) Clamp(in Input) Input {
	l := a.Limits
	arr := in.Array
	if len(arr) > l.MaxLen {
		arr = arr[:l.MaxLen]
	}
	out := Input{Array: make([]int, len(arr))}
	for i, v := range arr {
		out.Array[i] = clampInt(v, l.MinValue, l.MaxValue)
	}

	if len(in.Values) > 0 {
		vals := in.Values
		if len(vals) > len(out.Array) {
			vals = vals[:len(out.Array)]
		}
		out.Values = make([]int, len(vals))
		for i, v := range vals {
			out.Values[i] = clampInt(v, 1, 99)
		}
	}

	if l.MaxTarget > 0 {
		out.Target = clampInt(in.Target, l.MinTarget, l.MaxTarget)
	}

	if a.Family == FamilyGraph && in.Graph != nil {
		out.Graph = in.Graph.restrict(len(out.Array))
	}
	return out
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Edge is an undirected weighted edge between two node indices.
type Edge struct {
	From   int `json:"from"`
	To     int `json:"to"`
	Weight int `json:"weight"`
}

// Graph is a small undirected graph over array positions.
type Graph struct {
	Edges []Edge `json:"edges"`
}

type neighbor struct {
	node   int
	weight int
}

// restrict drops edges outside [0,n) and self loops, and clamps weights.
func (g *Graph) restrict(n int) *Graph {
	out := &Graph{}
	for _, e := range g.Edges {
		if e.From < 0 || e.To < 0 || e.From >= n || e.To >= n || e.From == e.To {
			continue
		}
		e.Weight = clampInt(e.Weight, 1, 99)
		out.Edges = append(out.Edges, e)
	}
	return out
}

// adjacency returns neighbors per node sorted by node index; parallel edges
// collapse to the lightest one.
func (g *Graph) adjacency(n int) [][]neighbor {
	best := make([]map[int]int, n)
	for i := range best {
		best[i] = make(map[int]int)
	}
	link := func(u, v, w int) {
		if cur, ok := best[u][v]; !ok || w < cur {
			best[u][v] = w
		}
	}
	for _, e := range g.Edges {
		link(e.From, e.To, e.Weight)
		link(e.To, e.From, e.Weight)
	}
	adj := make([][]neighbor, n)
	for u := range best {
		for v, w := range best[u] {
			adj[u] = append(adj[u], neighbor{node: v, weight: w})
		}
		slices.SortFunc(adj[u], func(a, b neighbor) int { return a.node - b.node })
	}
	return adj
}

// DeriveGraph builds a connected graph from node values: a path through all
// nodes plus value-dependent chords. Weights come from the values so the
// same array always yields the same graph.
func DeriveGraph(values []int) *Graph {
	n := len(values)
	g := &Graph{}
	for i := 0; i+1 < n; i++ {
		g.Edges = append(g.Edges, Edge{From: i, To: i + 1, Weight: abs(values[i]-values[i+1])%9 + 1})
	}
	if n < 4 {
		return g
	}
	for i, v := range values {
		j := (i + 2 + v%(n-1)) % n
		if j == i || abs(i-j) == 1 {
			continue
		}
		g.Edges = append(g.Edges, Edge{From: i, To: j, Weight: v%7 + 1})
	}
	return g
}

func graphFor(in Input) *Graph {
	if in.Graph != nil {
		return in.Graph
	}
	return DeriveGraph(in.Array)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RandomInput builds a legal input for id with roughly size elements.
func RandomInput(id ID, size int, rng *rand.Rand) Input {
	a := Resolve(id)
	l := a.Limits
	size = clampInt(size, l.MinLen, l.MaxLen)

	randomArray := func(n, lo, hi int) []int {
		arr := make([]int, n)
		for i := range arr {
			arr[i] = lo + rng.IntN(hi-lo+1)
		}
		return arr
	}

	switch a.ID {
	case Fibonacci:
		return Input{Array: []int{0, 1}, Target: l.MinTarget + rng.IntN(l.MaxTarget-l.MinTarget+1)}
	case Knapsack:
		return Input{
			Array:  randomArray(size, l.MinValue, l.MaxValue),
			Target: 5 + rng.IntN(l.MaxTarget-4),
		}
	case CoinChange:
		coins := []int{1}
		for len(coins) < size {
			c := 2 + rng.IntN(11)
			if !slices.Contains(coins, c) {
				coins = append(coins, c)
			}
		}
		rng.Shuffle(len(coins), func(i, j int) { coins[i], coins[j] = coins[j], coins[i] })
		return Input{Array: coins, Target: 5 + rng.IntN(l.MaxTarget-4)}
	}

	in := Input{Array: randomArray(size, l.MinValue, l.MaxValue)}
	if a.Family == FamilySearching {
		if rng.IntN(2) == 0 {
			in.Target = in.Array[rng.IntN(len(in.Array))]
		} else {
			in.Target = l.MinTarget + rng.IntN(l.MaxTarget-l.MinTarget+1)
		}
	}
	return in
}
