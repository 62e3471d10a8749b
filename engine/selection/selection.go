package selection

import (
	"github.com/spaghettifunk/sculpt/engine/math"
)

// Weights provides one weight per vertex. A nil Weights means full strength.
type Weights interface {
	Len() int
	At(i int) float32
}

// SelectionSet holds one weight per vertex, across every section of a mesh
// in section order.
type SelectionSet struct {
	Weights []float32
}

// NewSelectionSet returns a set of size zero weights.
func NewSelectionSet(size int) *SelectionSet {
	s := &SelectionSet{}
	s.CreateSelectionSet(size)
	return s
}

// FromWeights wraps an existing slice without copying it.
func FromWeights(weights []float32) *SelectionSet {
	return &SelectionSet{Weights: weights}
}

// CreateSelectionSet discards the current weights and allocates size zeroes.
func (s *SelectionSet) CreateSelectionSet(size int) {
	if size < 0 {
		size = 0
	}
	s.Weights = make([]float32, size)
}

func (s *SelectionSet) Empty() {
	s.Weights = s.Weights[:0]
}

func (s *SelectionSet) SetAllWeights(weight float32) *SelectionSet {
	for i := range s.Weights {
		s.Weights[i] = weight
	}
	return s
}

// RandomizeWeights draws each weight from stream in [min, max). The stream
// advances.
func (s *SelectionSet) RandomizeWeights(stream *math.RandomStream, min, max float32) *SelectionSet {
	for i := range s.Weights {
		s.Weights[i] = stream.FRandRange(min, max)
	}
	return s
}

// Ease remaps every weight in place through fn.
func (s *SelectionSet) Ease(fn math.EasingFunc, steps int32, blendExp float32) *SelectionSet {
	for i, w := range s.Weights {
		s.Weights[i] = math.Ease(fn, w, steps, blendExp)
	}
	return s
}

func (s *SelectionSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Weights)
}

func (s *SelectionSet) At(i int) float32 {
	return s.Weights[i]
}

func (s *SelectionSet) Clone() *SelectionSet {
	if s == nil {
		return nil
	}
	weights := make([]float32, len(s.Weights))
	copy(weights, s.Weights)
	return &SelectionSet{Weights: weights}
}

// WeightAt returns the weight of vertex i, or 1 when no selection is given.
func WeightAt(sel Weights, i int) float32 {
	if sel == nil {
		return 1
	}
	return sel.At(i)
}

// IsNil reports whether sel is nil, including a typed nil *SelectionSet.
func IsNil(sel Weights) bool {
	if sel == nil {
		return true
	}
	if s, ok := sel.(*SelectionSet); ok && s == nil {
		return true
	}
	return false
}
