package step

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIndexSet_SortsAndDedups(t *testing.T) {
	s := NewIndexSet(3, 1, 3, 0)
	assert.Equal(t, IndexSet{0, 1, 3}, s)
	assert.True(t, s.Has(1))
	assert.False(t, s.Has(2))
	assert.Nil(t, NewIndexSet())
}

func TestIndexSet_WithDoesNotMutate(t *testing.T) {
	base := NewIndexSet(1)
	grown := base.With(0, 4)
	assert.Equal(t, IndexSet{1}, base)
	assert.Equal(t, IndexSet{0, 1, 4}, grown)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		wantErr bool
	}{
		{"ok", Step{Array: []int{1, 2}, Comparing: IndexSet{0, 1}, Operation: "compare"}, false},
		{"empty operation", Step{Array: []int{1}}, true},
		{"swap out of range", Step{Array: []int{1}, Swapping: IndexSet{1}, Operation: "swap"}, true},
		{"negative current", Step{Array: []int{1}, CurrentIndex: Int(-1), Operation: "x"}, true},
		{"empty array no indices", Step{Operation: "done"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.step.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRecorder_CopiesArray(t *testing.T) {
	r := NewRecorder("bubble-sort", []int{2, 1})
	arr := []int{2, 1}
	r.Emit(arr, Step{Operation: "start"})
	arr[0], arr[1] = arr[1], arr[0]
	r.Emit(arr, Step{Swapping: NewIndexSet(0, 1), Operation: "swap"})

	seq := r.Finish(arr, "done")
	require.Equal(t, 2, seq.Len())
	assert.Equal(t, []int{2, 1}, seq.First().Array)
	assert.Equal(t, []int{1, 2}, seq.Last().Array)
}

func TestRecorder_SortedIsSticky(t *testing.T) {
	r := NewRecorder("x", []int{1, 2, 3})
	r.MarkSorted(2)
	r.Emit([]int{1, 2, 3}, Step{Operation: "a"})
	r.Emit([]int{1, 2, 3}, Step{Sorted: IndexSet{0}, Operation: "b"})

	seq := r.Finish(nil, "done")
	assert.Equal(t, IndexSet{2}, seq.At(0).Sorted)
	assert.Equal(t, IndexSet{0, 2}, seq.At(1).Sorted)
}

func TestRecorder_FinishEmitsCompletionForEmptyRun(t *testing.T) {
	seq := NewRecorder("x", nil).Finish(nil, "nothing to do")
	require.Equal(t, 1, seq.Len())
	assert.Equal(t, "nothing to do", seq.Last().Operation)
}

func TestSequence_AtClamps(t *testing.T) {
	seq := &Sequence{Steps: []Step{{Operation: "a"}, {Operation: "b"}}}
	assert.Equal(t, "a", seq.At(-3).Operation)
	assert.Equal(t, "b", seq.At(9).Operation)
}

func TestStep_JSONOmitsEmptyOptionals(t *testing.T) {
	b, err := json.Marshal(Step{Array: []int{1}, Operation: "done"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"array":[1],"operation":"done"}`, string(b))
}
