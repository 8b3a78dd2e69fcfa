package algorithms

import (
	"fmt"
	"slices"

	"github.com/abhisek/algolab/internal/step"
)

func linearSearch(in Input) *step.Sequence {
	arr := slices.Clone(in.Array)
	rec := step.NewRecorder(string(LinearSearch), arr)
	rec.Emit(arr, step.Step{Operation: fmt.Sprintf("Search for %d", in.Target)})

	var visited step.IndexSet
	for i, v := range arr {
		visited = visited.With(i)
		rec.Emit(arr, step.Step{
			CurrentIndex: step.Int(i),
			Comparing:    step.NewIndexSet(i),
			Visited:      visited,
			Operation:    fmt.Sprintf("Is a[%d] = %d equal to %d?", i, v, in.Target),
			Line:         step.Int(1),
		})
		if v == in.Target {
			rec.Emit(arr, step.Step{
				CurrentIndex: step.Int(i),
				Sorted:       step.NewIndexSet(i),
				Visited:      visited,
				Operation:    fmt.Sprintf("Found %d at index %d", in.Target, i),
				Result:       step.Float(float64(i)),
				Line:         step.Int(1),
			})
			return rec.Finish(arr, "Search complete")
		}
	}
	rec.Emit(arr, step.Step{
		Visited:   visited,
		Operation: fmt.Sprintf("%d is not in the array", in.Target),
		Result:    step.Float(-1),
		Line:      step.Int(2),
	})
	return rec.Finish(arr, "Search complete")
}

// binarySearch sorts a working copy first; the returned index refers to the
// sorted array shown in the final step.
func binarySearch(in Input) *step.Sequence {
	arr := slices.Clone(in.Array)
	rec := step.NewRecorder(string(BinarySearch), arr)
	rec.Emit(arr, step.Step{Operation: fmt.Sprintf("Search for %d", in.Target)})

	if !slices.IsSorted(arr) {
		slices.Sort(arr)
		rec.Emit(arr, step.Step{Operation: "Sort the array first", Line: step.Int(0)})
	}

	lo, hi := 0, len(arr)-1
	var visited step.IndexSet
	for lo <= hi {
		mid := (lo + hi) / 2
		visited = visited.With(mid)
		rec.Emit(arr, step.Step{
			CurrentIndex: step.Int(mid),
			Comparing:    step.NewIndexSet(lo, mid, hi),
			Visited:      visited,
			Operation:    fmt.Sprintf("Range [%d..%d], middle a[%d] = %d", lo, hi, mid, arr[mid]),
			Line:         step.Int(2),
		})
		switch {
		case arr[mid] == in.Target:
			rec.Emit(arr, step.Step{
				CurrentIndex: step.Int(mid),
				Sorted:       step.NewIndexSet(mid),
				Visited:      visited,
				Operation:    fmt.Sprintf("Found %d at index %d", in.Target, mid),
				Result:       step.Float(float64(mid)),
				Line:         step.Int(3),
			})
			return rec.Finish(arr, "Search complete")
		case arr[mid] < in.Target:
			lo = mid + 1
			rec.Emit(arr, step.Step{
				Visited:   visited,
				Operation: fmt.Sprintf("%d < %d, search right half", arr[mid], in.Target),
				Line:      step.Int(4),
			})
		default:
			hi = mid - 1
			rec.Emit(arr, step.Step{
				Visited:   visited,
				Operation: fmt.Sprintf("%d > %d, search left half", arr[mid], in.Target),
				Line:      step.Int(4),
			})
		}
	}
	rec.Emit(arr, step.Step{
		Visited:   visited,
		Operation: fmt.Sprintf("%d is not in the array", in.Target),
		Result:    step.Float(-1),
		Line:      step.Int(5),
	})
	return rec.Finish(arr, "Search complete")
}
