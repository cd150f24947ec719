package transform

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"tablekit/pkg/frame"
)

// Direction selects how two tables are combined.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// JoinKind selects the relational join semantics for horizontal combination.
type JoinKind string

const (
	InnerJoin JoinKind = "inner"
	OuterJoin JoinKind = "outer"
	LeftJoin  JoinKind = "left"
	RightJoin JoinKind = "right"
)

// CombineOptions configures Combine. On is mandatory for horizontal
// combination; How defaults to outer.
type CombineOptions struct {
	Direction Direction `validate:"required,oneof=horizontal vertical"`
	How       JoinKind  `validate:"omitempty,oneof=inner outer left right"`
	On        []string
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Combine merges two tables. Horizontal performs a relational join of a and
// b on opts.On; vertical stacks b's rows under a's, aligning columns by
// name and padding one-sided columns with missing. Invalid options are
// rejected before any data is touched.
func Combine(a, b *frame.Table, opts CombineOptions) (*frame.Table, error) {
	if err := validate.Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, frame.NewConfigError(strings.ToLower(fe.Field()),
				"must be one of the supported values")
		}
		return nil, err
	}

	switch opts.Direction {
	case Horizontal:
		if len(opts.On) == 0 {
			return nil, frame.NewConfigError("on", "join columns are required for horizontal combination")
		}
		how := opts.How
		if how == "" {
			how = OuterJoin
		}
		return join(a, b, opts.On, how)
	case Vertical:
		return concat(a, b)
	}
	// Unreachable after validation, kept for safety.
	return nil, frame.NewConfigError("direction", "must be horizontal or vertical")
}

// join hash-joins a and b on the key columns. Overlapping non-key column
// names get _x/_y suffixes.
func join(a, b *frame.Table, on []string, how JoinKind) (*frame.Table, error) {
	aKeys := make([]*frame.Column, 0, len(on))
	bKeys := make([]*frame.Column, 0, len(on))
	for _, name := range on {
		ac, ok := a.Column(name)
		if !ok {
			return nil, frame.ColumnNotFound(name)
		}
		bc, ok := b.Column(name)
		if !ok {
			return nil, frame.ColumnNotFound(name)
		}
		aKeys = append(aKeys, ac)
		bKeys = append(bKeys, bc)
	}

	keySet := make(map[string]struct{}, len(on))
	for _, name := range on {
		keySet[name] = struct{}{}
	}
	overlap := make(map[string]struct{})
	for _, name := range b.Names() {
		if _, isKey := keySet[name]; isKey {
			continue
		}
		if _, ok := a.Column(name); ok {
			overlap[name] = struct{}{}
		}
	}

	// Index b's rows by key.
	bByKey := make(map[string][]int, b.NumRows())
	for row := 0; row < b.NumRows(); row++ {
		k := rowKey(bKeys, row)
		bByKey[k] = append(bByKey[k], row)
	}
	aByKey := make(map[string][]int, a.NumRows())
	for row := 0; row < a.NumRows(); row++ {
		k := rowKey(aKeys, row)
		aByKey[k] = append(aByKey[k], row)
	}

	// pairs holds matched row indices; -1 marks the padded side.
	type pair struct{ aRow, bRow int }
	var pairs []pair
	switch how {
	case RightJoin:
		for row := 0; row < b.NumRows(); row++ {
			matches := aByKey[rowKey(bKeys, row)]
			if len(matches) == 0 {
				pairs = append(pairs, pair{-1, row})
				continue
			}
			for _, ar := range matches {
				pairs = append(pairs, pair{ar, row})
			}
		}
	default:
		matchedB := make(map[int]struct{})
		for row := 0; row < a.NumRows(); row++ {
			matches := bByKey[rowKey(aKeys, row)]
			if len(matches) == 0 {
				if how != InnerJoin {
					pairs = append(pairs, pair{row, -1})
				}
				continue
			}
			for _, br := range matches {
				matchedB[br] = struct{}{}
				pairs = append(pairs, pair{row, br})
			}
		}
		if how == OuterJoin {
			for row := 0; row < b.NumRows(); row++ {
				if _, ok := matchedB[row]; !ok {
					pairs = append(pairs, pair{-1, row})
				}
			}
		}
	}

	var out []*frame.Column
	for i := 0; i < a.NumCols(); i++ {
		src := a.ColumnAt(i)
		name := src.Name
		_, isKey := keySet[name]
		if _, clash := overlap[name]; clash && !isKey {
			name += "_x"
		}
		values := make([]any, len(pairs))
		for p, pr := range pairs {
			if pr.aRow >= 0 {
				values[p] = src.Values[pr.aRow]
			} else if isKey {
				// Key cells on b-only rows come from b's key column.
				bc, _ := b.Column(src.Name)
				values[p] = bc.Values[pr.bRow]
			}
		}
		out = append(out, &frame.Column{Name: name, Type: src.Type, Values: values})
	}
	for i := 0; i < b.NumCols(); i++ {
		src := b.ColumnAt(i)
		if _, isKey := keySet[src.Name]; isKey {
			continue
		}
		name := src.Name
		if _, clash := overlap[name]; clash {
			name += "_y"
		}
		values := make([]any, len(pairs))
		for p, pr := range pairs {
			if pr.bRow >= 0 {
				values[p] = src.Values[pr.bRow]
			}
		}
		out = append(out, &frame.Column{Name: name, Type: src.Type, Values: values})
	}
	return frame.New(out...)
}

// concat stacks b's rows under a's, aligning by column name. Same-named
// columns with different dtypes are promoted: numeric pairs to Float64,
// anything else to String.
func concat(a, b *frame.Table) (*frame.Table, error) {
	names := a.Names()
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		seen[n] = struct{}{}
	}
	for _, n := range b.Names() {
		if _, ok := seen[n]; !ok {
			names = append(names, n)
		}
	}

	aRows, bRows := a.NumRows(), b.NumRows()
	cols := make([]*frame.Column, 0, len(names))
	for _, name := range names {
		ac, inA := a.Column(name)
		bc, inB := b.Column(name)

		var dtype frame.DType
		switch {
		case inA && inB && ac.Type == bc.Type:
			dtype = ac.Type
		case inA && inB && ac.Type.IsNumeric() && bc.Type.IsNumeric():
			dtype = frame.Float64
		case inA && inB:
			dtype = frame.String
		case inA:
			dtype = ac.Type
		default:
			dtype = bc.Type
		}

		values := make([]any, 0, aRows+bRows)
		values = appendPromoted(values, ac, aRows, dtype)
		values = appendPromoted(values, bc, bRows, dtype)
		cols = append(cols, &frame.Column{Name: name, Type: dtype, Values: values})
	}
	return frame.New(cols...)
}

// appendPromoted appends rows cells from c converted to dtype, or that many
// missing markers when c is nil.
func appendPromoted(values []any, c *frame.Column, rows int, dtype frame.DType) []any {
	if c == nil {
		for i := 0; i < rows; i++ {
			values = append(values, nil)
		}
		return values
	}
	for _, v := range c.Values {
		switch {
		case v == nil:
			values = append(values, nil)
		case dtype == c.Type:
			values = append(values, v)
		case dtype == frame.Float64:
			if n, ok := v.(int64); ok {
				values = append(values, float64(n))
			} else {
				values = append(values, v)
			}
		case dtype == frame.String:
			values = append(values, formatCell(v))
		default:
			values = append(values, v)
		}
	}
	return values
}
