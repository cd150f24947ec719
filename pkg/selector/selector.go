// Package selector extracts column subsets from a table by name, by
// declared type, or by a caller-supplied per-column condition.
package selector

import (
	"fmt"

	"tablekit/pkg/frame"
)

// Condition evaluates a table and yields one boolean per column; true keeps
// the column. Implementations may compute any per-column aggregate.
type Condition interface {
	Mask(t *frame.Table) ([]bool, error)
}

// ConditionFunc adapts a bare function to the Condition interface.
type ConditionFunc func(t *frame.Table) ([]bool, error)

// Mask implements Condition.
func (f ConditionFunc) Mask(t *frame.Table) ([]bool, error) {
	return f(t)
}

// ByName returns a table restricted to exactly the given columns, in the
// given order. Any absent name is an error wrapping frame.ErrColumnNotFound.
func ByName(t *frame.Table, names []string) (*frame.Table, error) {
	cols := make([]*frame.Column, 0, len(names))
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, frame.ColumnNotFound(name)
		}
		cols = append(cols, c.Clone())
	}
	return frame.New(cols...)
}

// ByType returns every column whose declared type matches dtype.
func ByType(t *frame.Table, dtype frame.DType) *frame.Table {
	var cols []*frame.Column
	for i := 0; i < t.NumCols(); i++ {
		if c := t.ColumnAt(i); c.Type == dtype {
			cols = append(cols, c.Clone())
		}
	}
	out, _ := frame.New(cols...)
	return out
}

// ByCondition returns the columns where the condition's mask is true. The
// mask must carry exactly one boolean per column.
func ByCondition(t *frame.Table, cond Condition) (*frame.Table, error) {
	mask, err := cond.Mask(t)
	if err != nil {
		return nil, fmt.Errorf("evaluate condition: %w", err)
	}
	if len(mask) != t.NumCols() {
		return nil, frame.NewConfigError("condition",
			fmt.Sprintf("mask has %d entries for %d columns", len(mask), t.NumCols()))
	}
	var cols []*frame.Column
	for i := 0; i < t.NumCols(); i++ {
		if mask[i] {
			cols = append(cols, t.ColumnAt(i).Clone())
		}
	}
	return frame.New(cols...)
}
