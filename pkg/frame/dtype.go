package frame

// DType identifies the declared type of a column.
type DType int

const (
	Int8 DType = iota
	Int16
	Int32
	Int64
	Float32
	Float64
	Bool
	String
	DateTime
	Categorical
)

var dtypeNames = map[DType]string{
	Int8:        "int8",
	Int16:       "int16",
	Int32:       "int32",
	Int64:       "int64",
	Float32:     "float32",
	Float64:     "float64",
	Bool:        "bool",
	String:      "string",
	DateTime:    "datetime",
	Categorical: "categorical",
}

// String returns the lowercase name of the dtype.
func (d DType) String() string {
	if name, ok := dtypeNames[d]; ok {
		return name
	}
	return "unknown"
}

// IsInteger reports whether the dtype is a signed integer width.
func (d DType) IsInteger() bool {
	switch d {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

// IsFloat reports whether the dtype is a floating-point width.
func (d DType) IsFloat() bool {
	return d == Float32 || d == Float64
}

// IsNumeric reports whether the dtype is integer or floating-point.
func (d DType) IsNumeric() bool {
	return d.IsInteger() || d.IsFloat()
}
