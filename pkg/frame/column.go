package frame

import (
	"fmt"
	"time"
)

// Column is a named, typed sequence of cells. A nil cell is the missing
// marker. Integer dtypes store int64 cells and float dtypes float64 cells;
// Type records the declared logical width.
type Column struct {
	Name   string
	Type   DType
	Values []any
}

// NewColumn builds a column and checks every non-missing cell against the
// dtype's physical representation.
func NewColumn(name string, dtype DType, values []any) (*Column, error) {
	c := &Column{Name: name, Type: dtype, Values: values}
	for i, v := range values {
		if v == nil {
			continue
		}
		if !cellMatches(dtype, v) {
			return nil, fmt.Errorf("column %q: cell %d has type %T, want %s", name, i, v, dtype)
		}
	}
	return c, nil
}

func cellMatches(dtype DType, v any) bool {
	switch dtype {
	case Int8, Int16, Int32, Int64:
		_, ok := v.(int64)
		return ok
	case Float32, Float64:
		_, ok := v.(float64)
		return ok
	case Bool:
		_, ok := v.(bool)
		return ok
	case String, Categorical:
		_, ok := v.(string)
		return ok
	case DateTime:
		_, ok := v.(time.Time)
		return ok
	}
	return false
}

// Len returns the number of cells, missing included.
func (c *Column) Len() int {
	return len(c.Values)
}

// IsMissing reports whether the cell at row i is the missing marker.
func (c *Column) IsMissing(i int) bool {
	return c.Values[i] == nil
}

// NonMissingCount returns the number of cells holding a value.
func (c *Column) NonMissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v != nil {
			n++
		}
	}
	return n
}

// Float64At returns the cell at row i as a float64. The second result is
// false for missing or non-numeric cells.
func (c *Column) Float64At(i int) (float64, bool) {
	switch v := c.Values[i].(type) {
	case int64:
		return float64(v), true
	case float64:
		return v, true
	}
	return 0, false
}

// Floats returns the non-missing cells of a numeric column as float64s,
// together with the row index each value came from.
func (c *Column) Floats() ([]float64, []int) {
	var xs []float64
	var rows []int
	for i := range c.Values {
		if v, ok := c.Float64At(i); ok {
			xs = append(xs, v)
			rows = append(rows, i)
		}
	}
	return xs, rows
}

// DistinctCount returns the number of distinct non-missing values.
func (c *Column) DistinctCount() int {
	seen := make(map[any]struct{}, len(c.Values))
	for _, v := range c.Values {
		if v == nil {
			continue
		}
		seen[v] = struct{}{}
	}
	return len(seen)
}

// Clone returns a deep copy of the column.
func (c *Column) Clone() *Column {
	values := make([]any, len(c.Values))
	copy(values, c.Values)
	return &Column{Name: c.Name, Type: c.Type, Values: values}
}
