package transform

import (
	"fmt"
	"log/slog"

	"tablekit/pkg/frame"

	"gonum.org/v1/gonum/floats"
)

// BinSpec describes how one column is discretized. Exactly one of Count
// (equal-width intervals) or Edges (explicit boundaries) must be set, and
// Labels must name each resulting interval in order.
type BinSpec struct {
	Count  int
	Edges  []float64
	Labels []string
}

func (s BinSpec) intervals() (int, error) {
	switch {
	case s.Count > 0 && len(s.Edges) > 0:
		return 0, fmt.Errorf("count and edges are mutually exclusive")
	case s.Count > 0:
		return s.Count, nil
	case len(s.Edges) >= 2:
		return len(s.Edges) - 1, nil
	}
	return 0, fmt.Errorf("need a positive count or at least two edges")
}

// BinColumns replaces each named column's values with the label of the
// interval they fall into. Intervals are right-closed; values outside all
// boundaries become missing. The binned column becomes Categorical. Specs
// are validated before any column is touched.
func BinColumns(t *frame.Table, specs map[string]BinSpec) (*frame.Table, error) {
	for name, spec := range specs {
		n, err := spec.intervals()
		if err != nil {
			return nil, frame.NewConfigError("bins", fmt.Sprintf("column %q: %v", name, err))
		}
		if len(spec.Labels) != n {
			return nil, frame.NewConfigError("labels",
				fmt.Sprintf("column %q: %d labels for %d intervals", name, len(spec.Labels), n))
		}
		if _, ok := t.Column(name); !ok {
			return nil, frame.ColumnNotFound(name)
		}
	}

	for name, spec := range specs {
		c, _ := t.Column(name)
		if !c.Type.IsNumeric() {
			slog.Warn("Skipping binning of non-numeric column",
				slog.String("column", name),
				slog.String("dtype", c.Type.String()))
			continue
		}
		binColumn(c, spec)
	}
	return t, nil
}

func binColumn(c *frame.Column, spec BinSpec) {
	edges := spec.Edges
	if spec.Count > 0 {
		xs, _ := c.Floats()
		if len(xs) == 0 {
			c.Type = frame.Categorical
			return
		}
		lo, hi := floats.Min(xs), floats.Max(xs)
		width := (hi - lo) / float64(spec.Count)
		edges = make([]float64, spec.Count+1)
		for i := range edges {
			edges[i] = lo + width*float64(i)
		}
		// The accumulated last edge can round strictly below hi,
		// which would drop the maximum; pin it to hi exactly.
		edges[spec.Count] = hi
		// Nudge the leftmost edge down so the minimum lands in the
		// first right-closed interval.
		if hi > lo {
			edges[0] = lo - (hi-lo)*0.001
		} else {
			edges[0] = lo - 0.001
			edges[spec.Count] = lo + 0.001
		}
	}

	for i := range c.Values {
		v, ok := c.Float64At(i)
		if !ok {
			c.Values[i] = nil
			continue
		}
		c.Values[i] = nil
		for j := 0; j+1 < len(edges); j++ {
			if v > edges[j] && v <= edges[j+1] {
				c.Values[i] = spec.Labels[j]
				break
			}
		}
	}
	c.Type = frame.Categorical
}
