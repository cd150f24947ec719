// Package frame defines the in-memory table model shared by every tablekit
// package.
//
// A Table is an ordered collection of named, typed columns. All columns in a
// Table have the same length, column names are unique, and row identity is
// positional. A nil cell is the missing marker and is a valid inhabitant of
// every column type, independent of the declared type.
//
// Integer columns store their cells as int64 and float columns as float64
// regardless of the declared width; the DType records the logical width
// chosen by transform.InferNumericDType.
//
// Example usage:
//
//	age, _ := frame.NewColumn("age", frame.Int64, []any{int64(25), nil, int64(30)})
//	city, _ := frame.NewColumn("city", frame.String, []any{"Baghdad", "Basra", "Erbil"})
//	t, err := frame.New(age, city)
package frame
