package algorithms

import (
	"fmt"
	"slices"

	"github.com/abhisek/algolab/internal/step"
)

// sortRun holds the working state shared by the sorting generators.
type sortRun struct {
	rec *step.Recorder
	arr []int
}

func newSortRun(id ID, in Input) *sortRun {
	r := &sortRun{
		rec: step.NewRecorder(string(id), in.Array),
		arr: slices.Clone(in.Array),
	}
	r.emit(step.Step{Operation: fmt.Sprintf("Start with %d elements", len(r.arr))})
	return r
}

func (r *sortRun) emit(s step.Step) { r.rec.Emit(r.arr, s) }

func (r *sortRun) compare(i, j, line int) bool {
	r.emit(step.Step{
		Comparing: step.NewIndexSet(i, j),
		Operation: fmt.Sprintf("Compare %d and %d", r.arr[i], r.arr[j]),
		Line:      step.Int(line),
	})
	return r.arr[i] > r.arr[j]
}

func (r *sortRun) swap(i, j, line int) {
	r.arr[i], r.arr[j] = r.arr[j], r.arr[i]
	r.emit(step.Step{
		Swapping:  step.NewIndexSet(i, j),
		Operation: fmt.Sprintf("Swap %d and %d", r.arr[j], r.arr[i]),
		Line:      step.Int(line),
	})
}

func (r *sortRun) finish() *step.Sequence {
	all := make([]int, len(r.arr))
	for i := range all {
		all[i] = i
	}
	r.rec.MarkSorted(all...)
	r.emit(step.Step{Operation: "Array is sorted"})
	return r.rec.Finish(r.arr, "Array is sorted")
}

func bubbleSort(in Input) *step.Sequence {
	r := newSortRun(BubbleSort, in)
	n := len(r.arr)
	for i := 0; i < n-1; i++ {
		swapped := false
		for j := 0; j < n-i-1; j++ {
			if r.compare(j, j+1, 2) {
				r.swap(j, j+1, 3)
				swapped = true
			}
		}
		r.rec.MarkSorted(n - i - 1)
		if !swapped {
			r.emit(step.Step{Operation: "No swaps in this pass, stopping early", Line: step.Int(4)})
			break
		}
	}
	return r.finish()
}

func selectionSort(in Input) *step.Sequence {
	r := newSortRun(SelectionSort, in)
	n := len(r.arr)
	for i := 0; i < n-1; i++ {
		minIdx := i
		r.emit(step.Step{
			CurrentIndex: step.Int(i),
			Operation:    fmt.Sprintf("Assume %d at position %d is the minimum", r.arr[i], i),
			Line:         step.Int(1),
		})
		for j := i + 1; j < n; j++ {
			if r.compare(minIdx, j, 3) {
				minIdx = j
				r.emit(step.Step{
					CurrentIndex: step.Int(j),
					Operation:    fmt.Sprintf("New minimum %d", r.arr[j]),
					Line:         step.Int(3),
				})
			}
		}
		if minIdx != i {
			r.swap(i, minIdx, 4)
		}
		r.rec.MarkSorted(i)
	}
	return r.finish()
}

func insertionSort(in Input) *step.Sequence {
	r := newSortRun(InsertionSort, in)
	for i := 1; i < len(r.arr); i++ {
		r.emit(step.Step{
			CurrentIndex: step.Int(i),
			Operation:    fmt.Sprintf("Insert %d into the sorted prefix", r.arr[i]),
			Line:         step.Int(1),
		})
		for j := i; j > 0; j-- {
			if !r.compare(j-1, j, 2) {
				break
			}
			r.swap(j-1, j, 3)
		}
	}
	return r.finish()
}

func mergeSort(in Input) *step.Sequence {
	r := newSortRun(MergeSort, in)
	var sortRange func(lo, hi int)
	sortRange = func(lo, hi int) {
		if lo >= hi {
			return
		}
		mid := (lo + hi) / 2
		r.emit(step.Step{
			Comparing: step.NewIndexSet(lo, hi),
			Operation: fmt.Sprintf("Split [%d..%d] at %d", lo, hi, mid),
			Line:      step.Int(1),
		})
		sortRange(lo, mid)
		sortRange(mid+1, hi)
		r.merge(lo, mid, hi)
	}
	sortRange(0, len(r.arr)-1)
	return r.finish()
}

func (r *sortRun) merge(lo, mid, hi int) {
	left := slices.Clone(r.arr[lo : mid+1])
	right := slices.Clone(r.arr[mid+1 : hi+1])
	i, j, k := 0, 0, lo
	for i < len(left) && j < len(right) {
		r.emit(step.Step{
			Comparing: step.NewIndexSet(lo+i, mid+1+j),
			Operation: fmt.Sprintf("Compare %d and %d", left[i], right[j]),
			Line:      step.Int(3),
		})
		if left[i] <= right[j] {
			r.arr[k] = left[i]
			i++
		} else {
			r.arr[k] = right[j]
			j++
		}
		r.write(k)
		k++
	}
	for ; i < len(left); i++ {
		r.arr[k] = left[i]
		r.write(k)
		k++
	}
	for ; j < len(right); j++ {
		r.arr[k] = right[j]
		r.write(k)
		k++
	}
}

func (r *sortRun) write(k int) {
	r.emit(step.Step{
		CurrentIndex: step.Int(k),
		Swapping:     step.NewIndexSet(k),
		Operation:    fmt.Sprintf("Write %d at position %d", r.arr[k], k),
		Line:         step.Int(4),
	})
}

func quickSort(in Input) *step.Sequence {
	r := newSortRun(QuickSort, in)
	var sortRange func(lo, hi int)
	sortRange = func(lo, hi int) {
		if lo > hi {
			return
		}
		if lo == hi {
			r.rec.MarkSorted(lo)
			return
		}
		pivot := r.arr[hi]
		r.emit(step.Step{
			CurrentIndex: step.Int(hi),
			Operation:    fmt.Sprintf("Pivot %d", pivot),
			Line:         step.Int(1),
		})
		i := lo
		for j := lo; j < hi; j++ {
			r.emit(step.Step{
				CurrentIndex: step.Int(hi),
				Comparing:    step.NewIndexSet(j, hi),
				Operation:    fmt.Sprintf("Compare %d with pivot %d", r.arr[j], pivot),
				Line:         step.Int(2),
			})
			if r.arr[j] < pivot {
				if i != j {
					r.swap(i, j, 3)
				}
				i++
			}
		}
		if i != hi {
			r.swap(i, hi, 4)
		}
		r.rec.MarkSorted(i)
		sortRange(lo, i-1)
		sortRange(i+1, hi)
	}
	sortRange(0, len(r.arr)-1)
	return r.finish()
}

func heapSort(in Input) *step.Sequence {
	r := newSortRun(HeapSort, in)
	n := len(r.arr)
	for i := n/2 - 1; i >= 0; i-- {
		r.siftDown(i, n)
	}
	for end := n - 1; end > 0; end-- {
		r.swap(0, end, 4)
		r.rec.MarkSorted(end)
		r.siftDown(0, end)
	}
	return r.finish()
}

func (r *sortRun) siftDown(root, size int) {
	for {
		largest := root
		for _, child := range []int{2*root + 1, 2*root + 2} {
			if child < size && r.compare(child, largest, 1) {
				largest = child
			}
		}
		if largest == root {
			return
		}
		r.swap(root, largest, 2)
		root = largest
	}
}
