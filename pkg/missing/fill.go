package missing

import (
	"log/slog"

	"tablekit/internal/stats"
	"tablekit/pkg/frame"
)

// FillByStatistic replaces missing cells with the column's own mean,
// median, or mode computed over its non-missing values. Mean and median
// apply to numeric columns only; non-numeric columns in the subset are
// skipped. Mode applies to every dtype.
func FillByStatistic(t *frame.Table, columns []string, stat Statistic) (*frame.Table, error) {
	if !stat.valid() {
		return nil, frame.NewConfigError("method", "must be mean, median or mode")
	}
	subset, err := resolve(t, columns)
	if err != nil {
		return nil, err
	}
	for _, c := range subset {
		if !fillable(c) {
			continue
		}
		if stat == Mode {
			if mode, ok := stats.ModeAny(c.Values); ok {
				fillMissing(c, mode)
			}
			continue
		}
		if !c.Type.IsNumeric() {
			slog.Debug("Skipping non-numeric column for numeric fill",
				slog.String("column", c.Name),
				slog.String("method", string(stat)))
			continue
		}
		xs, _ := c.Floats()
		if len(xs) == 0 {
			continue
		}
		val := stats.Mean(xs)
		if stat == Median {
			val = stats.Median(xs)
		}
		promoteToFloat(c)
		fillMissing(c, val)
	}
	return t, nil
}

// FillByRolling replaces missing cells with the statistic of a sliding
// window of windowSize rows around each gap, anchored left or centered.
// A non-positive windowSize defaults to the column length, making the
// result equal to the global statistic. Windows clamp to the column
// bounds at fixed width; a window with no observed value leaves the cell
// missing.
func FillByRolling(t *frame.Table, columns []string, stat Statistic, windowSize int, center bool) (*frame.Table, error) {
	if !stat.valid() {
		return nil, frame.NewConfigError("method", "must be mean, median or mode")
	}
	subset, err := resolve(t, columns)
	if err != nil {
		return nil, err
	}
	rows := t.NumRows()
	if windowSize <= 0 || windowSize > rows {
		windowSize = rows
	}
	for _, c := range subset {
		if !fillable(c) {
			continue
		}
		if stat != Mode && !c.Type.IsNumeric() {
			slog.Debug("Skipping non-numeric column for numeric fill",
				slog.String("column", c.Name),
				slog.String("method", string(stat)))
			continue
		}
		if stat != Mode {
			promoteToFloat(c)
		}
		// Fill against a snapshot so already-filled cells do not feed
		// later windows.
		src := make([]any, len(c.Values))
		copy(src, c.Values)
		for i := range c.Values {
			if c.Values[i] != nil {
				continue
			}
			lo, hi := windowBounds(i, windowSize, rows, center)
			window := src[lo:hi]
			if stat == Mode {
				if mode, ok := stats.ModeAny(window); ok {
					c.Values[i] = mode
				}
				continue
			}
			var xs []float64
			for _, v := range window {
				if f, ok := v.(float64); ok {
					xs = append(xs, f)
				}
			}
			if len(xs) == 0 {
				continue
			}
			if stat == Median {
				c.Values[i] = stats.Median(xs)
			} else {
				c.Values[i] = stats.Mean(xs)
			}
		}
	}
	return t, nil
}

// windowBounds returns the half-open window [lo, hi) of fixed width around
// row i, clamped to [0, rows).
func windowBounds(i, width, rows int, center bool) (int, int) {
	lo := i - width + 1
	if center {
		lo = i - width/2
	}
	if lo < 0 {
		lo = 0
	}
	hi := lo + width
	if hi > rows {
		hi = rows
		lo = hi - width
		if lo < 0 {
			lo = 0
		}
	}
	return lo, hi
}

// FillByGroup replaces missing cells with the statistic computed within
// each group defined by the by columns. Groups with no observed value
// leave their cells missing.
func FillByGroup(t *frame.Table, columns []string, by []string, stat Statistic) (*frame.Table, error) {
	if !stat.valid() {
		return nil, frame.NewConfigError("method", "must be mean, median or mode")
	}
	if len(by) == 0 {
		return nil, frame.NewConfigError("by", "at least one grouping column is required")
	}
	byCols := make([]*frame.Column, 0, len(by))
	for _, name := range by {
		c, ok := t.Column(name)
		if !ok {
			return nil, frame.ColumnNotFound(name)
		}
		byCols = append(byCols, c)
	}
	subset, err := resolve(t, columns)
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]int, t.NumRows())
	for row := 0; row < t.NumRows(); row++ {
		k := groupKey(byCols, row)
		groups[k] = append(groups[k], row)
	}

	for _, c := range subset {
		if !fillable(c) {
			continue
		}
		if stat != Mode && !c.Type.IsNumeric() {
			slog.Debug("Skipping non-numeric column for numeric fill",
				slog.String("column", c.Name),
				slog.String("method", string(stat)))
			continue
		}
		if stat != Mode {
			promoteToFloat(c)
		}
		for _, rows := range groups {
			fillGroup(c, rows, stat)
		}
	}
	return t, nil
}

// fillGroup fills the missing cells among rows with the statistic of the
// observed cells among the same rows.
func fillGroup(c *frame.Column, rows []int, stat Statistic) {
	var observed []any
	var xs []float64
	hasMissing := false
	for _, r := range rows {
		v := c.Values[r]
		if v == nil {
			hasMissing = true
			continue
		}
		observed = append(observed, v)
		if f, ok := v.(float64); ok {
			xs = append(xs, f)
		}
	}
	if !hasMissing {
		return
	}

	var fill any
	switch stat {
	case Mode:
		mode, ok := stats.ModeAny(observed)
		if !ok {
			return
		}
		fill = mode
	case Median:
		if len(xs) == 0 {
			return
		}
		fill = stats.Median(xs)
	default:
		if len(xs) == 0 {
			return
		}
		fill = stats.Mean(xs)
	}
	for _, r := range rows {
		if c.Values[r] == nil {
			c.Values[r] = fill
		}
	}
}

// fillable reports whether the column has anything to fill.
func fillable(c *frame.Column) bool {
	return c.NonMissingCount() < c.Len()
}

// fillMissing writes v into every missing cell.
func fillMissing(c *frame.Column, v any) {
	for i := range c.Values {
		if c.Values[i] == nil {
			c.Values[i] = v
		}
	}
}

// promoteToFloat widens an integer column to Float64 so fractional fill
// values stay exact. Float and non-numeric columns are untouched.
func promoteToFloat(c *frame.Column) {
	if !c.Type.IsInteger() {
		return
	}
	for i, v := range c.Values {
		if n, ok := v.(int64); ok {
			c.Values[i] = float64(n)
		}
	}
	c.Type = frame.Float64
}
