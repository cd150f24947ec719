package transform

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"tablekit/pkg/frame"
)

// Target is the destination kind for ConvertColumns.
type Target int

const (
	TargetInt Target = iota
	TargetFloat
	TargetString
	TargetBool
	TargetDateTime
)

// String returns the lowercase name of the target kind.
func (tk Target) String() string {
	switch tk {
	case TargetInt:
		return "int"
	case TargetFloat:
		return "float"
	case TargetString:
		return "string"
	case TargetBool:
		return "bool"
	case TargetDateTime:
		return "datetime"
	}
	return "unknown"
}

// InferNumericDType picks the narrowest dtype that represents the column
// without loss. Integer columns get the smallest signed width whose range
// covers the observed minimum and maximum; float columns get Float32 only
// if every value round-trips exactly through single precision. Non-numeric
// and all-missing columns keep their declared type.
func InferNumericDType(c *frame.Column) frame.DType {
	switch {
	case c.Type.IsInteger():
		var min, max int64
		seen := false
		for _, v := range c.Values {
			n, ok := v.(int64)
			if !ok {
				continue
			}
			if !seen {
				min, max = n, n
				seen = true
				continue
			}
			if n < min {
				min = n
			}
			if n > max {
				max = n
			}
		}
		if !seen {
			return c.Type
		}
		switch {
		case min >= math.MinInt8 && max <= math.MaxInt8:
			return frame.Int8
		case min >= math.MinInt16 && max <= math.MaxInt16:
			return frame.Int16
		case min >= math.MinInt32 && max <= math.MaxInt32:
			return frame.Int32
		default:
			return frame.Int64
		}
	case c.Type.IsFloat():
		seen := false
		for _, v := range c.Values {
			f, ok := v.(float64)
			if !ok {
				continue
			}
			seen = true
			if float64(float32(f)) != f {
				return frame.Float64
			}
		}
		if !seen {
			return c.Type
		}
		return frame.Float32
	}
	return c.Type
}

// ConvertColumns casts each named column to the target kind, mutating the
// table in place. Int and Float targets are additionally narrowed through
// InferNumericDType; DateTime parses with automatic format inference and
// coerces unparseable cells to missing. A column that fails to convert is
// logged and skipped while the rest of the batch proceeds. Only an invalid
// target kind is a hard error.
func ConvertColumns(t *frame.Table, columns []string, target Target) (*frame.Table, error) {
	if target.String() == "unknown" {
		return nil, frame.NewConfigError("target", fmt.Sprintf("unsupported target kind %d", int(target)))
	}
	for _, name := range columns {
		c, ok := t.Column(name)
		if !ok {
			slog.Warn("Skipping conversion of unknown column", slog.String("column", name))
			continue
		}
		if err := convertColumn(c, target); err != nil {
			slog.Warn("Failed to convert column",
				slog.String("column", name),
				slog.String("target", target.String()),
				slog.String("error", err.Error()))
		}
	}
	return t, nil
}

func convertColumn(c *frame.Column, target Target) error {
	converted := make([]any, len(c.Values))
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		out, err := convertCell(v, target)
		if err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
		converted[i] = out
	}
	c.Values = converted
	switch target {
	case TargetInt:
		c.Type = frame.Int64
		c.Type = InferNumericDType(c)
	case TargetFloat:
		c.Type = frame.Float64
		c.Type = InferNumericDType(c)
	case TargetString:
		c.Type = frame.String
	case TargetBool:
		c.Type = frame.Bool
	case TargetDateTime:
		c.Type = frame.DateTime
	}
	return nil
}

func convertCell(v any, target Target) (any, error) {
	switch target {
	case TargetInt:
		switch x := v.(type) {
		case int64:
			return x, nil
		case float64:
			return int64(x), nil
		case bool:
			if x {
				return int64(1), nil
			}
			return int64(0), nil
		case string:
			n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as int", x)
			}
			return n, nil
		}
	case TargetFloat:
		switch x := v.(type) {
		case int64:
			return float64(x), nil
		case float64:
			return x, nil
		case bool:
			if x {
				return float64(1), nil
			}
			return float64(0), nil
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as float", x)
			}
			return f, nil
		}
	case TargetString:
		return formatCell(v), nil
	case TargetBool:
		switch x := v.(type) {
		case bool:
			return x, nil
		case int64:
			return x != 0, nil
		case float64:
			return x != 0, nil
		case string:
			b, err := strconv.ParseBool(strings.TrimSpace(x))
			if err != nil {
				return nil, fmt.Errorf("cannot parse %q as bool", x)
			}
			return b, nil
		}
	case TargetDateTime:
		switch x := v.(type) {
		case time.Time:
			return x, nil
		case string:
			ts, err := dateparse.ParseAny(strings.TrimSpace(x))
			if err != nil {
				// Unparseable cells coerce to missing instead of
				// failing the whole column.
				return nil, nil
			}
			return ts, nil
		default:
			return nil, nil
		}
	}
	return nil, fmt.Errorf("cannot convert %T to %s", v, target)
}

func formatCell(v any) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	}
	return fmt.Sprintf("%v", v)
}
