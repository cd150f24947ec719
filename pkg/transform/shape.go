package transform

import (
	"strings"

	"tablekit/pkg/frame"
)

// RemoveConstantOrUniqueColumns drops every column whose distinct value
// count is exactly 1 (constant) or exactly the row count (fully unique),
// both uninformative for analysis. Missing cells do not count as a
// distinct value. The result is a new table; calling it twice yields the
// same table as calling it once.
func RemoveConstantOrUniqueColumns(t *frame.Table) *frame.Table {
	rows := t.NumRows()
	var kept []*frame.Column
	for i := 0; i < t.NumCols(); i++ {
		c := t.ColumnAt(i)
		distinct := c.DistinctCount()
		if distinct == 1 || distinct == rows {
			continue
		}
		kept = append(kept, c.Clone())
	}
	out, _ := frame.New(kept...)
	return out
}

// RemoveDuplicateRows returns a new table without rows that duplicate an
// earlier row when compared on the given columns, keeping the first
// occurrence. An empty column list compares on every column. Missing cells
// compare equal to each other.
func RemoveDuplicateRows(t *frame.Table, columns []string) (*frame.Table, error) {
	if len(columns) == 0 {
		columns = t.Names()
	}
	keyCols := make([]*frame.Column, 0, len(columns))
	for _, name := range columns {
		c, ok := t.Column(name)
		if !ok {
			return nil, frame.ColumnNotFound(name)
		}
		keyCols = append(keyCols, c)
	}

	seen := make(map[string]struct{}, t.NumRows())
	var keepRows []int
	for row := 0; row < t.NumRows(); row++ {
		key := rowKey(keyCols, row)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keepRows = append(keepRows, row)
	}
	return takeRows(t, keepRows)
}

// rowKey encodes the cells of one row into a collision-safe map key.
func rowKey(cols []*frame.Column, row int) string {
	var b strings.Builder
	for _, c := range cols {
		v := c.Values[row]
		if v == nil {
			b.WriteString("\x01")
		} else {
			b.WriteString(formatCell(v))
		}
		b.WriteString("\x00")
	}
	return b.String()
}

// takeRows builds a new table holding the given row positions in order.
func takeRows(t *frame.Table, rows []int) (*frame.Table, error) {
	cols := make([]*frame.Column, t.NumCols())
	for i := 0; i < t.NumCols(); i++ {
		src := t.ColumnAt(i)
		values := make([]any, 0, len(rows))
		for _, r := range rows {
			values = append(values, src.Values[r])
		}
		cols[i] = &frame.Column{Name: src.Name, Type: src.Type, Values: values}
	}
	return frame.New(cols...)
}
