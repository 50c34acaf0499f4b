package editor

import "github.com/matzehuels/dashforge/pkg/errors"

// MoveItem returns a copy of items with the element at from removed and
// reinserted at to; the elements between the two positions shift by one.
// Moving from a to b and then from b to a restores the original order.
// The input slice is not modified.
func MoveItem[T any](items []T, from, to int) ([]T, error) {
	n := len(items)
	if from < 0 || from >= n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "move source %d out of range [0, %d)", from, n)
	}
	if to < 0 || to >= n {
		return nil, errors.New(errors.ErrCodeInvalidInput, "move target %d out of range [0, %d)", to, n)
	}

	out := make([]T, n)
	copy(out, items)
	if from == to {
		return out, nil
	}
	item := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = item
	return out, nil
}
