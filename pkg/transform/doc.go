// Package transform contains the type and shape normalization operations:
// numeric width narrowing, batch type conversion, removal of degenerate
// columns and duplicate rows, table combination, and binning.
//
// Operations that rewrite cells (ConvertColumns, BinColumns, the fill
// family in pkg/missing) mutate the table in place and return it; the
// structural operations (RemoveConstantOrUniqueColumns, RemoveDuplicateRows,
// Combine) build and return a new table.
package transform
