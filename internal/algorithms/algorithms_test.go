package algorithms

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/algolab/internal/step"
)

func TestCatalog_AllRegistered(t *testing.T) {
	all := All()
	require.Len(t, all, 14)
	for _, a := range all {
		assert.NotEmpty(t, a.Name, a.ID)
		assert.NotEmpty(t, a.Pseudocode, a.ID)
		assert.Positive(t, a.XP, a.ID)
	}
	total := 0
	for _, f := range AllFamilies() {
		total += len(ByFamily(f))
	}
	assert.Equal(t, len(all), total)
}

func TestResolve_UnknownFallsBackToDefault(t *testing.T) {
	a := Resolve("no-such-algorithm")
	assert.Equal(t, DefaultID, a.ID)

	_, ok := Lookup("no-such-algorithm")
	assert.False(t, ok)

	seq := Generate("no-such-algorithm", Input{Array: []int{2, 1}})
	assert.Equal(t, string(DefaultID), seq.Algorithm)
	assert.Equal(t, []int{1, 2}, seq.Last().Array)
}

func TestBubbleSort_CompareBeforeSwap(t *testing.T) {
	seq := Generate(BubbleSort, Input{Array: []int{5, 3, 1}})
	require.GreaterOrEqual(t, seq.Len(), 1)
	assert.Equal(t, []int{5, 3, 1}, seq.First().Array)
	assert.Equal(t, []int{1, 3, 5}, seq.Last().Array)

	compared := false
	for _, s := range seq.Steps {
		if s.Comparing.Has(0) && s.Comparing.Has(1) {
			compared = true
		}
		if s.Swapping.Has(0) || s.Swapping.Has(1) {
			require.True(t, compared, "swap involving 0 or 1 before compare(0,1): %q", s.Operation)
			break
		}
	}
	assert.True(t, compared)
}

func TestEmptyAndSingletonInputs(t *testing.T) {
	for _, a := range All() {
		for _, arr := range [][]int{nil, {7}} {
			seq := a.Generate(Input{Array: arr, Target: 7})
			assert.GreaterOrEqual(t, seq.Len(), 1, "%s %v", a.ID, arr)
			for _, s := range seq.Steps {
				assert.NoError(t, s.Validate(), "%s %v", a.ID, arr)
			}
		}
	}
}

func TestGenerators_MatchReference(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for _, a := range All() {
		t.Run(string(a.ID), func(t *testing.T) {
			for run := range 40 {
				in := RandomInput(a.ID, 3+run%18, rng)
				require.NoError(t, Verify(a, in), "input %+v", in)
			}
		})
	}
}

func TestGenerators_Deterministic(t *testing.T) {
	in := Input{Array: []int{9, 4, 7, 1, 8}, Target: 7}
	for _, a := range All() {
		first := a.Generate(in)
		second := a.Generate(in)
		assert.Equal(t, first.Steps, second.Steps, a.ID)
	}
}

func TestClamp(t *testing.T) {
	a := Resolve(BubbleSort)
	long := make([]int, 30)
	for i := range long {
		long[i] = i * 10
	}
	in := a.Clamp(Input{Array: long})
	assert.Len(t, in.Array, 20)
	assert.Equal(t, 1, in.Array[0])
	assert.Equal(t, 99, in.Array[19])

	s := Resolve(LinearSearch).Clamp(Input{Array: []int{1}, Target: 500})
	assert.Equal(t, 99, s.Target)
}

func TestClamp_GraphDropsInvalidEdges(t *testing.T) {
	in := Resolve(BFS).Clamp(Input{
		Array: []int{1, 2, 3},
		Graph: &Graph{Edges: []Edge{{0, 1, 4}, {1, 1, 2}, {2, 9, 1}, {1, 2, 500}}},
	})
	require.NotNil(t, in.Graph)
	assert.Equal(t, []Edge{{0, 1, 4}, {1, 2, 99}}, in.Graph.Edges)
}

func TestBinarySearch_SortsFirst(t *testing.T) {
	seq := Generate(BinarySearch, Input{Array: []int{9, 2, 5}, Target: 9})
	assert.Equal(t, []int{9, 2, 5}, seq.First().Array)
	assert.Equal(t, []int{2, 5, 9}, seq.At(1).Array)
	require.NotNil(t, seq.Last().Result)
	assert.Equal(t, 2.0, *seq.Last().Result)
}

func TestLinearSearch_NotFound(t *testing.T) {
	seq := Generate(LinearSearch, Input{Array: []int{1, 2, 3}, Target: 50})
	require.NotNil(t, seq.Last().Result)
	assert.Equal(t, -1.0, *seq.Last().Result)
	assert.Equal(t, step.IndexSet{0, 1, 2}, seq.Last().Visited)
}

func TestBFS_DisconnectedGraph(t *testing.T) {
	seq := Generate(BFS, Input{
		Array: []int{1, 2, 3, 4},
		Graph: &Graph{Edges: []Edge{{0, 1, 1}, {2, 3, 1}}},
	})
	require.NotNil(t, seq.Last().Result)
	assert.Equal(t, 2.0, *seq.Last().Result)
	assert.Equal(t, step.IndexSet{0, 1}, seq.Last().Visited)
}

func TestDFS_VisitsDepthFirst(t *testing.T) {
	// 0-1, 0-2, 1-3: DFS reaches 3 before 2.
	seq := Generate(DFS, Input{
		Array: []int{1, 2, 3, 4},
		Graph: &Graph{Edges: []Edge{{0, 1, 1}, {0, 2, 1}, {1, 3, 1}}},
	})
	var order []int
	for _, s := range seq.Steps {
		if s.Line != nil && *s.Line == 0 && s.CurrentIndex != nil {
			order = append(order, *s.CurrentIndex)
		}
	}
	assert.Equal(t, []int{0, 1, 3, 2}, order)
}

func TestDijkstra(t *testing.T) {
	g := &Graph{Edges: []Edge{{0, 1, 4}, {0, 2, 1}, {2, 1, 1}, {1, 3, 5}}}
	seq := Generate(Dijkstra, Input{Array: []int{10, 20, 30, 40}, Graph: g})
	assert.Equal(t, []int{10, 20, 30, 40}, seq.First().Array)
	assert.Equal(t, []int{0, 2, 1, 7}, seq.Last().Array)
	require.NotNil(t, seq.Last().Result)
	assert.Equal(t, 7.0, *seq.Last().Result)

	unreachable := Generate(Dijkstra, Input{Array: []int{1, 2, 3}, Graph: &Graph{Edges: []Edge{{0, 1, 1}}}})
	assert.Equal(t, -1.0, *unreachable.Last().Result)
	assert.Equal(t, Infinity, unreachable.Last().Array[2])
}

func TestDeriveGraph_Connected(t *testing.T) {
	values := []int{5, 17, 3, 42, 8, 99, 1}
	assert.Equal(t, len(values), reachable(Input{Array: values}))
	assert.Equal(t, DeriveGraph(values), DeriveGraph(values))
}

func TestFibonacci(t *testing.T) {
	seq := Generate(Fibonacci, Input{Array: []int{0, 1}, Target: 10})
	require.NotNil(t, seq.Last().Result)
	assert.Equal(t, 55.0, *seq.Last().Result)
	assert.Equal(t, []int{0, 1}, seq.First().Array)
	assert.Len(t, seq.Last().Array, 11)
}

func TestKnapsack(t *testing.T) {
	seq := Generate(Knapsack, Input{Array: []int{1, 3, 4, 5}, Values: []int{1, 4, 5, 7}, Target: 7})
	require.NotNil(t, seq.Last().Result)
	assert.Equal(t, 9.0, *seq.Last().Result)
}

func TestCoinChange(t *testing.T) {
	seq := Generate(CoinChange, Input{Array: []int{1, 5, 6, 9}, Target: 11})
	require.NotNil(t, seq.Last().Result)
	assert.Equal(t, 2.0, *seq.Last().Result)

	impossible := Generate(CoinChange, Input{Array: []int{4, 6}, Target: 7})
	assert.Equal(t, -1.0, *impossible.Last().Result)
}

func TestRandomInput_WithinLimits(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for _, a := range All() {
		for range 20 {
			in := RandomInput(a.ID, 50, rng)
			assert.Equal(t, in, a.Clamp(in), a.ID)
		}
	}
}
