// Package missing holds the missing-value resolution family: threshold
// based column removal and the fill strategies (global, rolling and
// grouped statistics, constants, forward/backward propagation, and
// interpolation).
//
// Every operation takes an optional column subset (nil selects every
// column) and touches only it. Enumerated method and direction arguments
// are validated before any data is mutated; a violation is returned as a
// *frame.ConfigError with the table left untouched. Mean and median fills
// on integer columns promote the column to Float64, matching the usual
// dataframe semantics.
package missing
