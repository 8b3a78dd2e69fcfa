package step

import "slices"

// Sequence is the ordered, fully materialized list of steps for one
// (algorithm, input) pair. It is rebuilt whenever the input changes.
type Sequence struct {
	Algorithm string `json:"algorithm"`
	Input     []int  `json:"input"`
	Steps     []Step `json:"steps"`
}

// Len returns the number of steps.
func (s *Sequence) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Steps)
}

// At returns the step at index i, clamped to the valid range.
func (s *Sequence) At(i int) Step {
	if i < 0 {
		i = 0
	}
	if i >= len(s.Steps) {
		i = len(s.Steps) - 1
	}
	return s.Steps[i]
}

// First returns the first step.
func (s *Sequence) First() Step { return s.Steps[0] }

// Last returns the final step.
func (s *Sequence) Last() Step { return s.Steps[len(s.Steps)-1] }

// Recorder accumulates steps while a generator runs. Every emitted step gets
// its own copy of the working array, so later mutations never leak into
// earlier steps.
type Recorder struct {
	seq    *Sequence
	sorted IndexSet
}

// NewRecorder starts a sequence for algorithm with the raw input.
func NewRecorder(algorithm string, input []int) *Recorder {
	return &Recorder{
		seq: &Sequence{
			Algorithm: algorithm,
			Input:     slices.Clone(input),
		},
	}
}

// Emit appends a step built from arr and the fields of proto. The sticky
// sorted set is merged into proto.Sorted.
func (r *Recorder) Emit(arr []int, proto Step) {
	proto.Array = slices.Clone(arr)
	proto.Sorted = r.sorted.With(proto.Sorted...)
	if len(proto.Sorted) == 0 {
		proto.Sorted = nil
	}
	r.seq.Steps = append(r.seq.Steps, proto)
}

// MarkSorted adds indices to the sorted set carried by every later step.
func (r *Recorder) MarkSorted(indices ...int) {
	r.sorted = r.sorted.With(indices...)
}

// Len returns how many steps have been emitted so far.
func (r *Recorder) Len() int { return len(r.seq.Steps) }

// Finish returns the sequence. A run that emitted nothing still produces a
// single completion step.
func (r *Recorder) Finish(arr []int, operation string) *Sequence {
	if len(r.seq.Steps) == 0 {
		r.Emit(arr, Step{Operation: operation})
	}
	return r.seq
}
