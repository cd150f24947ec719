package missing

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tablekit/pkg/frame"
)

// Statistic names an imputation statistic.
type Statistic string

const (
	Mean   Statistic = "mean"
	Median Statistic = "median"
	Mode   Statistic = "mode"
)

func (s Statistic) valid() bool {
	switch s {
	case Mean, Median, Mode:
		return true
	}
	return false
}

// Direction names the propagation direction for FillForwardOrBackward.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Interpolation names the curve fitted by FillByInterpolation.
type Interpolation string

const (
	Linear    Interpolation = "linear"
	Quadratic Interpolation = "quadratic"
	Cubic     Interpolation = "cubic"
)

// resolve maps a column subset to columns, defaulting to every column.
func resolve(t *frame.Table, columns []string) ([]*frame.Column, error) {
	if len(columns) == 0 {
		cols := make([]*frame.Column, t.NumCols())
		for i := range cols {
			cols[i] = t.ColumnAt(i)
		}
		return cols, nil
	}
	cols := make([]*frame.Column, 0, len(columns))
	for _, name := range columns {
		c, ok := t.Column(name)
		if !ok {
			return nil, frame.ColumnNotFound(name)
		}
		cols = append(cols, c)
	}
	return cols, nil
}

// RemoveColumns drops a column from the subset when its non-missing count
// falls below rows*(1-maxMissingRate), truncated to an integer. A rate of
// 1 keeps everything; rates outside [0, 1] are a configuration error.
func RemoveColumns(t *frame.Table, columns []string, maxMissingRate float64) (*frame.Table, error) {
	if maxMissingRate < 0 || maxMissingRate > 1 {
		return nil, frame.NewConfigError("max_missing_rate",
			fmt.Sprintf("must be between 0 and 1, got %g", maxMissingRate))
	}
	subset, err := resolve(t, columns)
	if err != nil {
		return nil, err
	}
	if maxMissingRate == 1 {
		return t.Clone(), nil
	}

	inSubset := make(map[string]struct{}, len(subset))
	for _, c := range subset {
		inSubset[c.Name] = struct{}{}
	}
	minNonMissing := int(float64(t.NumRows()) * (1 - maxMissingRate))

	var kept []*frame.Column
	for i := 0; i < t.NumCols(); i++ {
		c := t.ColumnAt(i)
		if _, checked := inSubset[c.Name]; checked && c.NonMissingCount() < minNonMissing {
			continue
		}
		kept = append(kept, c.Clone())
	}
	return frame.New(kept...)
}

// FillByConstant replaces missing cells in the subset with the given
// literal. The value is coerced to each column's cell type where possible;
// a column the value cannot inhabit is logged and skipped.
func FillByConstant(t *frame.Table, columns []string, value any) (*frame.Table, error) {
	subset, err := resolve(t, columns)
	if err != nil {
		return nil, err
	}
	for _, c := range subset {
		cell, ok := coerceCell(value, c.Type)
		if !ok {
			slog.Warn("Constant fill value does not fit column",
				slog.String("column", c.Name),
				slog.String("dtype", c.Type.String()))
			continue
		}
		for i := range c.Values {
			if c.Values[i] == nil {
				c.Values[i] = cell
			}
		}
	}
	return t, nil
}

// coerceCell converts a caller-supplied literal into the physical cell
// representation of dtype. Lossless numeric conversions are allowed.
func coerceCell(value any, dtype frame.DType) (any, bool) {
	if n, ok := value.(int); ok {
		value = int64(n)
	}
	switch dtype {
	case frame.Int8, frame.Int16, frame.Int32, frame.Int64:
		switch x := value.(type) {
		case int64:
			return x, true
		case float64:
			if x == float64(int64(x)) {
				return int64(x), true
			}
		}
	case frame.Float32, frame.Float64:
		switch x := value.(type) {
		case float64:
			return x, true
		case int64:
			return float64(x), true
		}
	case frame.Bool:
		if b, ok := value.(bool); ok {
			return b, true
		}
	case frame.String, frame.Categorical:
		if s, ok := value.(string); ok {
			return s, true
		}
	case frame.DateTime:
		if ts, ok := value.(time.Time); ok {
			return ts, true
		}
	}
	return nil, false
}

// FillForwardOrBackward propagates the nearest preceding (forward) or
// following (backward) non-missing value into each missing cell. Leading
// and trailing runs with no neighbor stay missing.
func FillForwardOrBackward(t *frame.Table, columns []string, dir Direction) (*frame.Table, error) {
	if dir != Forward && dir != Backward {
		return nil, frame.NewConfigError("direction", "must be forward or backward")
	}
	subset, err := resolve(t, columns)
	if err != nil {
		return nil, err
	}
	for _, c := range subset {
		if dir == Forward {
			var last any
			for i := 0; i < c.Len(); i++ {
				if c.Values[i] != nil {
					last = c.Values[i]
				} else if last != nil {
					c.Values[i] = last
				}
			}
		} else {
			var next any
			for i := c.Len() - 1; i >= 0; i-- {
				if c.Values[i] != nil {
					next = c.Values[i]
				} else if next != nil {
					c.Values[i] = next
				}
			}
		}
	}
	return t, nil
}

// groupKey encodes one row of the key columns for grouping and joining on
// missing-safe equality.
func groupKey(cols []*frame.Column, row int) string {
	var b strings.Builder
	for _, c := range cols {
		if c.Values[row] == nil {
			b.WriteString("\x01")
		} else {
			fmt.Fprintf(&b, "%v", c.Values[row])
		}
		b.WriteString("\x00")
	}
	return b.String()
}
