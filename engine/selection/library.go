package selection

import (
	"github.com/spaghettifunk/sculpt/engine/math"
)

// The functions below never modify their inputs. A nil input yields nil and
// operations on two sets produce a result as long as the shorter operand.

func mapUnary(value *SelectionSet, fn func(w float32) float32) *SelectionSet {
	if value == nil {
		return nil
	}
	result := NewSelectionSet(len(value.Weights))
	for i, w := range value.Weights {
		result.Weights[i] = fn(w)
	}
	return result
}

func mapBinary(a, b *SelectionSet, fn func(a, b float32) float32) *SelectionSet {
	if a == nil || b == nil {
		return nil
	}
	size := min(len(a.Weights), len(b.Weights))
	result := NewSelectionSet(size)
	for i := 0; i < size; i++ {
		result.Weights[i] = fn(a.Weights[i], b.Weights[i])
	}
	return result
}

func Clamp(value *SelectionSet, low, high float32) *SelectionSet {
	return mapUnary(value, func(w float32) float32 {
		return math.Clamp(w, low, high)
	})
}

func Ease(value *SelectionSet, fn math.EasingFunc, steps int32, blendExp float32) *SelectionSet {
	return mapUnary(value, func(w float32) float32 {
		return math.Ease(fn, w, steps, blendExp)
	})
}

func Add(a, b *SelectionSet) *SelectionSet {
	return mapBinary(a, b, func(x, y float32) float32 { return x + y })
}

func Subtract(a, b *SelectionSet) *SelectionSet {
	return mapBinary(a, b, func(x, y float32) float32 { return x - y })
}

func Multiply(a, b *SelectionSet) *SelectionSet {
	return mapBinary(a, b, func(x, y float32) float32 { return x * y })
}

// Divide follows IEEE-754 when b holds zeroes.
func Divide(a, b *SelectionSet) *SelectionSet {
	return mapBinary(a, b, func(x, y float32) float32 { return x / y })
}

func Max(a, b *SelectionSet) *SelectionSet {
	return mapBinary(a, b, func(x, y float32) float32 { return max(x, y) })
}

func Min(a, b *SelectionSet) *SelectionSet {
	return mapBinary(a, b, func(x, y float32) float32 { return min(x, y) })
}

func Lerp(a, b *SelectionSet, alpha float32) *SelectionSet {
	return mapBinary(a, b, func(x, y float32) float32 { return math.Lerp(x, y, alpha) })
}

func AddFloat(value *SelectionSet, f float32) *SelectionSet {
	return mapUnary(value, func(w float32) float32 { return w + f })
}

func SubtractFloat(value *SelectionSet, f float32) *SelectionSet {
	return mapUnary(value, func(w float32) float32 { return w - f })
}

// SubtractFromFloat returns f - w for every weight.
func SubtractFromFloat(f float32, value *SelectionSet) *SelectionSet {
	return mapUnary(value, func(w float32) float32 { return f - w })
}

func MultiplyFloat(value *SelectionSet, f float32) *SelectionSet {
	return mapUnary(value, func(w float32) float32 { return w * f })
}

func DivideFloat(value *SelectionSet, f float32) *SelectionSet {
	return mapUnary(value, func(w float32) float32 { return w / f })
}

func OneMinus(value *SelectionSet) *SelectionSet {
	return mapUnary(value, func(w float32) float32 { return 1 - w })
}

// Set returns a set of the same size with every weight equal to f.
func Set(value *SelectionSet, f float32) *SelectionSet {
	return mapUnary(value, func(float32) float32 { return f })
}

func Randomize(value *SelectionSet, stream *math.RandomStream, low, high float32) *SelectionSet {
	return mapUnary(value, func(float32) float32 { return stream.FRandRange(low, high) })
}

func MaxFloat(value *SelectionSet, f float32) *SelectionSet {
	return mapUnary(value, func(w float32) float32 { return max(w, f) })
}

func MinFloat(value *SelectionSet, f float32) *SelectionSet {
	return mapUnary(value, func(w float32) float32 { return min(w, f) })
}

func LerpFloat(value *SelectionSet, f float32, alpha float32) *SelectionSet {
	return mapUnary(value, func(w float32) float32 { return math.Lerp(w, f, alpha) })
}
