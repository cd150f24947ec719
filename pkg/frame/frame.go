package frame

import (
	"fmt"
)

// Table is an ordered collection of equal-length named columns.
type Table struct {
	cols   []*Column
	byName map[string]int
}

// New builds a table from the given columns, enforcing unique names and a
// shared row count.
func New(cols ...*Column) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(cols))}
	for _, c := range cols {
		if err := t.AddColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddColumn appends a column. It errors on a duplicate name or a length
// that differs from the table's row count.
func (t *Table) AddColumn(c *Column) error {
	if _, exists := t.byName[c.Name]; exists {
		return fmt.Errorf("duplicate column name %q", c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.NumRows() {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.NumRows())
	}
	t.byName[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// NumRows returns the shared row count, zero for an empty table.
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// ColumnAt returns the column at position i.
func (t *Table) ColumnAt(i int) *Column {
	return t.cols[i]
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.Clone()
	}
	clone, _ := New(cols...)
	return clone
}
