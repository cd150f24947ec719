// Package importer materializes tables from HTTP JSON endpoints and local
// delimited-text or spreadsheet files.
//
// Failures never panic and never escape as bare errors: every failure is a
// *Error carrying a Kind the caller can branch on (timeout, HTTP status,
// decode, I/O, unsupported extension), and each one is also logged through
// the importer's slog.Logger.
//
// Example usage:
//
//	imp, err := importer.New(nil, importer.Config{Timeout: 10 * time.Second})
//	t, err := imp.FromURL(ctx, "https://example.com/data.json")
//	t, err = imp.FromFile("data/prices.xlsx")
package importer
