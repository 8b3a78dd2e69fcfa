package algorithms

import (
	"fmt"

	"github.com/abhisek/algolab/internal/step"
)

// DP generators show the raw input in their first step and the table from
// then on. Unfilled cells hold Infinity.

var defaultFibSeeds = []int{0, 1}

func fibonacci(in Input) *step.Sequence {
	rec := step.NewRecorder(string(Fibonacci), in.Array)
	rec.Emit(in.Array, step.Step{Operation: fmt.Sprintf("Compute term %d from seeds %v", in.Target, in.Array)})

	seeds := append(append([]int{}, in.Array...), defaultFibSeeds[len(in.Array):]...)
	n := in.Target
	dp := make([]int, n+1)
	for i := range dp {
		dp[i] = Infinity
	}
	dp[0], dp[1] = seeds[0], seeds[1]
	rec.Emit(dp, step.Step{
		Sorted:    step.NewIndexSet(0, 1),
		Operation: fmt.Sprintf("dp[0] = %d, dp[1] = %d", dp[0], dp[1]),
		Line:      step.Int(0),
	})
	filled := step.NewIndexSet(0, 1)
	for i := 2; i <= n; i++ {
		rec.Emit(dp, step.Step{
			CurrentIndex: step.Int(i),
			Comparing:    step.NewIndexSet(i-1, i-2),
			Sorted:       filled,
			Operation:    fmt.Sprintf("dp[%d] = dp[%d] + dp[%d]", i, i-1, i-2),
			Line:         step.Int(2),
		})
		dp[i] = dp[i-1] + dp[i-2]
		filled = filled.With(i)
		rec.Emit(dp, step.Step{
			CurrentIndex: step.Int(i),
			Swapping:     step.NewIndexSet(i),
			Sorted:       filled,
			Operation:    fmt.Sprintf("dp[%d] = %d", i, dp[i]),
			Line:         step.Int(2),
		})
	}
	rec.Emit(dp, step.Step{
		CurrentIndex: step.Int(n),
		Sorted:       filled,
		Operation:    fmt.Sprintf("Term %d is %d", n, dp[n]),
		Result:       step.Float(float64(dp[n])),
		Line:         step.Int(3),
	})
	return rec.Finish(dp, "Table complete")
}

// knapsackValues returns explicit values, or derives one per weight so the
// same weights always describe the same items.
func knapsackValues(in Input) []int {
	values := make([]int, len(in.Array))
	for i, w := range in.Array {
		if i < len(in.Values) {
			values[i] = in.Values[i]
			continue
		}
		values[i] = (w*7+i*3)%20 + 1
	}
	return values
}

func knapsack(in Input) *step.Sequence {
	weights := in.Array
	values := knapsackValues(in)
	capacity := in.Target

	rec := step.NewRecorder(string(Knapsack), weights)
	rec.Emit(weights, step.Step{Operation: fmt.Sprintf("Items (weight, value): %s; capacity %d", itemList(weights, values), capacity)})
	if len(weights) == 0 {
		rec.Emit(weights, step.Step{Operation: "No items, best value is 0", Result: step.Float(0)})
		return rec.Finish(weights, "Table complete")
	}

	dp := make([]int, capacity+1)
	rec.Emit(dp, step.Step{Operation: fmt.Sprintf("dp[c] = 0 for c in 0..%d", capacity), Line: step.Int(0)})
	for i, w := range weights {
		v := values[i]
		rec.Emit(dp, step.Step{
			Operation: fmt.Sprintf("Consider item %d: weight %d, value %d", i, w, v),
			Line:      step.Int(1),
		})
		for c := capacity; c >= w; c-- {
			cand := dp[c-w] + v
			rec.Emit(dp, step.Step{
				CurrentIndex: step.Int(c),
				Comparing:    step.NewIndexSet(c, c-w),
				Operation:    fmt.Sprintf("dp[%d] = max(%d, dp[%d] + %d = %d)", c, dp[c], c-w, v, cand),
				Line:         step.Int(3),
			})
			if cand > dp[c] {
				dp[c] = cand
				rec.Emit(dp, step.Step{
					CurrentIndex: step.Int(c),
					Swapping:     step.NewIndexSet(c),
					Operation:    fmt.Sprintf("dp[%d] = %d", c, cand),
					Line:         step.Int(3),
				})
			}
		}
	}
	rec.Emit(dp, step.Step{
		CurrentIndex: step.Int(capacity),
		Sorted:       step.NewIndexSet(capacity),
		Operation:    fmt.Sprintf("Best value within capacity %d is %d", capacity, dp[capacity]),
		Result:       step.Float(float64(dp[capacity])),
		Line:         step.Int(4),
	})
	return rec.Finish(dp, "Table complete")
}

func itemList(weights, values []int) string {
	s := ""
	for i := range weights {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("(%d, %d)", weights[i], values[i])
	}
	return s
}

func coinChange(in Input) *step.Sequence {
	coins := in.Array
	amount := in.Target
	rec := step.NewRecorder(string(CoinChange), coins)
	rec.Emit(coins, step.Step{Operation: fmt.Sprintf("Coins %v, amount %d", coins, amount)})

	dp := make([]int, amount+1)
	for i := 1; i <= amount; i++ {
		dp[i] = Infinity
	}
	rec.Emit(dp, step.Step{Operation: "dp[0] = 0, infinity elsewhere", Sorted: step.NewIndexSet(0), Line: step.Int(0)})

	for a := 1; a <= amount; a++ {
		for _, c := range coins {
			if c > a || dp[a-c] == Infinity {
				continue
			}
			cand := dp[a-c] + 1
			rec.Emit(dp, step.Step{
				CurrentIndex: step.Int(a),
				Comparing:    step.NewIndexSet(a, a-c),
				Operation:    fmt.Sprintf("Coin %d: dp[%d] + 1 = %d", c, a-c, cand),
				Line:         step.Int(2),
			})
			if cand < dp[a] {
				dp[a] = cand
				rec.Emit(dp, step.Step{
					CurrentIndex: step.Int(a),
					Swapping:     step.NewIndexSet(a),
					Operation:    fmt.Sprintf("dp[%d] = %d", a, cand),
					Line:         step.Int(3),
				})
			}
		}
	}

	result := -1
	op := fmt.Sprintf("Amount %d cannot be made", amount)
	if dp[amount] != Infinity {
		result = dp[amount]
		op = fmt.Sprintf("Amount %d needs %d coins", amount, result)
	}
	rec.Emit(dp, step.Step{
		CurrentIndex: step.Int(amount),
		Operation:    op,
		Result:       step.Float(float64(result)),
		Line:         step.Int(4),
	})
	return rec.Finish(dp, op)
}
