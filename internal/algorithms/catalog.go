package algorithms

import (
	"log/slog"

	"github.com/abhisek/algolab/internal/step"
)

// ID identifies an algorithm, e.g. "bubble-sort".
type ID string

const (
	BubbleSort    ID = "bubble-sort"
	SelectionSort ID = "selection-sort"
	InsertionSort ID = "insertion-sort"
	MergeSort     ID = "merge-sort"
	QuickSort     ID = "quick-sort"
	HeapSort      ID = "heap-sort"
	LinearSearch  ID = "linear-search"
	BinarySearch  ID = "binary-search"
	BFS           ID = "bfs"
	DFS           ID = "dfs"
	Dijkstra      ID = "dijkstra"
	Fibonacci     ID = "fibonacci"
	Knapsack      ID = "knapsack"
	CoinChange    ID = "coin-change"
)

// DefaultID is substituted whenever an unknown id is requested.
const DefaultID = BubbleSort

// Family groups algorithms for display.
type Family string

const (
	FamilySorting   Family = "sorting"
	FamilySearching Family = "searching"
	FamilyGraph     Family = "graph"
	FamilyDynamic   Family = "dynamic-programming"
)

// AllFamilies returns the families in display order.
func AllFamilies() []Family {
	return []Family{FamilySorting, FamilySearching, FamilyGraph, FamilyDynamic}
}

// DisplayName returns a human-readable family label.
func (f Family) DisplayName() string {
	switch f {
	case FamilySorting:
		return "Sorting"
	case FamilySearching:
		return "Searching"
	case FamilyGraph:
		return "Graph Traversal"
	case FamilyDynamic:
		return "Dynamic Programming"
	default:
		return string(f)
	}
}

// Generator produces the step sequence for an already clamped input.
type Generator func(in Input) *step.Sequence

// Algorithm is a catalog entry: metadata plus its generator.
type Algorithm struct {
	ID          ID
	Name        string
	Family      Family
	Description string
	Complexity  string
	// Pseudocode lines referenced by step.Step.Line (0-based).
	Pseudocode []string
	// XP awarded the first time a replay of this algorithm completes.
	XP     int
	Limits Limits

	generate Generator
}

// Generate clamps in to the algorithm's limits and produces its sequence.
func (a *Algorithm) Generate(in Input) *step.Sequence {
	return a.generate(a.Clamp(in))
}

var (
	registry = make(map[ID]*Algorithm)
	ordered  []*Algorithm
)

func register(a *Algorithm) {
	if _, dup := registry[a.ID]; dup {
		panic("algorithms: duplicate id " + string(a.ID))
	}
	registry[a.ID] = a
	ordered = append(ordered, a)
}

// Lookup returns the algorithm registered under id.
func Lookup(id ID) (*Algorithm, bool) {
	a, ok := registry[id]
	return a, ok
}

// Resolve returns the algorithm for id, or the default algorithm when id is
// not registered.
func Resolve(id ID) *Algorithm {
	if a, ok := registry[id]; ok {
		return a
	}
	slog.Debug("unknown algorithm id, using default", "id", id, "default", DefaultID)
	return registry[DefaultID]
}

// Generate resolves id and produces the step sequence for in.
func Generate(id ID, in Input) *step.Sequence {
	return Resolve(id).Generate(in)
}

// All returns every registered algorithm in catalog order.
func All() []*Algorithm {
	out := make([]*Algorithm, len(ordered))
	copy(out, ordered)
	return out
}

// ByFamily returns the algorithms of one family in catalog order.
func ByFamily(f Family) []*Algorithm {
	var out []*Algorithm
	for _, a := range ordered {
		if a.Family == f {
			out = append(out, a)
		}
	}
	return out
}

func init() {
	sortLimits := Limits{MinLen: 3, MaxLen: 20, MinValue: 1, MaxValue: 99}

	register(&Algorithm{
		ID: BubbleSort, Name: "Bubble Sort", Family: FamilySorting,
		Description: "Repeatedly swaps adjacent out-of-order pairs until a pass makes no swaps.",
		Complexity:  "O(n^2)",
		Pseudocode: []string{
			"for i in 0..n-1",
			"  for j in 0..n-i-2",
			"    if a[j] > a[j+1]",
			"      swap a[j], a[j+1]",
			"  if no swaps: stop",
		},
		XP: 100, Limits: sortLimits, generate: bubbleSort,
	})
	register(&Algorithm{
		ID: SelectionSort, Name: "Selection Sort", Family: FamilySorting,
		Description: "Selects the minimum of the unsorted suffix and swaps it into place.",
		Complexity:  "O(n^2)",
		Pseudocode: []string{
			"for i in 0..n-1",
			"  min = i",
			"  for j in i+1..n-1",
			"    if a[j] < a[min]: min = j",
			"  swap a[i], a[min]",
		},
		XP: 100, Limits: sortLimits, generate: selectionSort,
	})
	register(&Algorithm{
		ID: InsertionSort, Name: "Insertion Sort", Family: FamilySorting,
		Description: "Grows a sorted prefix by sliding each new element left into position.",
		Complexity:  "O(n^2)",
		Pseudocode: []string{
			"for i in 1..n-1",
			"  j = i",
			"  while j > 0 and a[j-1] > a[j]",
			"    swap a[j-1], a[j]",
			"    j = j - 1",
		},
		XP: 100, Limits: sortLimits, generate: insertionSort,
	})
	register(&Algorithm{
		ID: MergeSort, Name: "Merge Sort", Family: FamilySorting,
		Description: "Splits the array in halves, sorts each, and merges the sorted halves.",
		Complexity:  "O(n log n)",
		Pseudocode: []string{
			"sort(lo, hi): if lo >= hi return",
			"  mid = (lo + hi) / 2",
			"  sort(lo, mid); sort(mid+1, hi)",
			"  merge: take smaller head of each half",
			"  write into a[k]",
		},
		XP: 150, Limits: sortLimits, generate: mergeSort,
	})
	register(&Algorithm{
		ID: QuickSort, Name: "Quick Sort", Family: FamilySorting,
		Description: "Partitions around a pivot (last element) and recurses on both sides.",
		Complexity:  "O(n log n) average, O(n^2) worst",
		Pseudocode: []string{
			"sort(lo, hi): if lo >= hi return",
			"  pivot = a[hi]; i = lo",
			"  for j in lo..hi-1: if a[j] < pivot",
			"    swap a[i], a[j]; i++",
			"  swap a[i], a[hi]; recurse on both sides",
		},
		XP: 150, Limits: sortLimits, generate: quickSort,
	})
	register(&Algorithm{
		ID: HeapSort, Name: "Heap Sort", Family: FamilySorting,
		Description: "Builds a max-heap, then repeatedly moves the root to the end.",
		Complexity:  "O(n log n)",
		Pseudocode: []string{
			"build max-heap",
			"  sift down: compare parent with children",
			"  swap parent with larger child",
			"for end in n-1..1",
			"  swap a[0], a[end]; sift down a[0]",
		},
		XP: 175, Limits: sortLimits, generate: heapSort,
	})

	searchLimits := Limits{MinLen: 3, MaxLen: 20, MinValue: 1, MaxValue: 99, MinTarget: 1, MaxTarget: 99}
	register(&Algorithm{
		ID: LinearSearch, Name: "Linear Search", Family: FamilySearching,
		Description: "Checks each element in turn until the target is found.",
		Complexity:  "O(n)",
		Pseudocode: []string{
			"for i in 0..n-1",
			"  if a[i] == target: return i",
			"return -1",
		},
		XP: 50, Limits: searchLimits, generate: linearSearch,
	})
	register(&Algorithm{
		ID: BinarySearch, Name: "Binary Search", Family: FamilySearching,
		Description: "Halves a sorted range around its midpoint until the target is found.",
		Complexity:  "O(log n)",
		Pseudocode: []string{
			"sort a",
			"lo = 0; hi = n-1",
			"while lo <= hi: mid = (lo+hi)/2",
			"  if a[mid] == target: return mid",
			"  if a[mid] < target: lo = mid+1 else hi = mid-1",
			"return -1",
		},
		XP: 75, Limits: searchLimits, generate: binarySearch,
	})

	graphLimits := Limits{MinLen: 3, MaxLen: 12, MinValue: 1, MaxValue: 99}
	register(&Algorithm{
		ID: BFS, Name: "Breadth-First Search", Family: FamilyGraph,
		Description: "Visits nodes in order of hop distance from node 0 using a queue.",
		Complexity:  "O(V + E)",
		Pseudocode: []string{
			"enqueue start; mark visited",
			"while queue not empty: u = dequeue",
			"  for each neighbor v of u",
			"    if v not visited: mark, enqueue v",
		},
		XP: 125, Limits: graphLimits, generate: bfs,
	})
	register(&Algorithm{
		ID: DFS, Name: "Depth-First Search", Family: FamilyGraph,
		Description: "Follows each branch as deep as possible before backtracking.",
		Complexity:  "O(V + E)",
		Pseudocode: []string{
			"visit(u): mark u visited",
			"  for each neighbor v of u",
			"    if v not visited: visit(v)",
			"  backtrack",
		},
		XP: 125, Limits: graphLimits, generate: dfs,
	})
	register(&Algorithm{
		ID: Dijkstra, Name: "Dijkstra's Shortest Path", Family: FamilyGraph,
		Description: "Finalizes the closest unvisited node and relaxes its edges, from node 0 to the last node.",
		Complexity:  "O(V^2) with a linear scan",
		Pseudocode: []string{
			"dist[start] = 0; others = inf",
			"pick unvisited u with smallest dist",
			"  for each edge u-v with weight w",
			"    if dist[u] + w < dist[v]: dist[v] = dist[u] + w",
			"return dist[target]",
		},
		XP: 200, Limits: graphLimits, generate: dijkstra,
	})

	register(&Algorithm{
		ID: Fibonacci, Name: "Fibonacci (bottom-up)", Family: FamilyDynamic,
		Description: "Fills a table where each entry is the sum of the previous two.",
		Complexity:  "O(n)",
		Pseudocode: []string{
			"dp[0], dp[1] = seeds",
			"for i in 2..n",
			"  dp[i] = dp[i-1] + dp[i-2]",
			"return dp[n]",
		},
		XP: 75, Limits: Limits{MinLen: 2, MaxLen: 2, MinValue: 0, MaxValue: 99, MinTarget: 2, MaxTarget: 20}, generate: fibonacci,
	})
	register(&Algorithm{
		ID: Knapsack, Name: "0/1 Knapsack", Family: FamilyDynamic,
		Description: "Best total value within a weight capacity, each item used at most once.",
		Complexity:  "O(n * W)",
		Pseudocode: []string{
			"dp[c] = 0 for all c",
			"for each item (w, v)",
			"  for c in W..w",
			"    dp[c] = max(dp[c], dp[c-w] + v)",
			"return dp[W]",
		},
		XP: 200, Limits: Limits{MinLen: 2, MaxLen: 8, MinValue: 1, MaxValue: 15, MinTarget: 1, MaxTarget: 30}, generate: knapsack,
	})
	register(&Algorithm{
		ID: CoinChange, Name: "Coin Change (min coins)", Family: FamilyDynamic,
		Description: "Fewest coins summing to an amount, with unlimited coins of each denomination.",
		Complexity:  "O(amount * coins)",
		Pseudocode: []string{
			"dp[0] = 0; others = inf",
			"for a in 1..amount",
			"  for each coin c <= a",
			"    dp[a] = min(dp[a], dp[a-c] + 1)",
			"return dp[amount] or -1",
		},
		XP: 175, Limits: Limits{MinLen: 1, MaxLen: 6, MinValue: 1, MaxValue: 25, MinTarget: 1, MaxTarget: 40}, generate: coinChange,
	})
}
