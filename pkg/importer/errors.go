package importer

import "fmt"

// Kind discriminates import failures so callers can branch on the cause.
type Kind int

const (
	// KindTimeout is a request that exceeded the configured timeout.
	KindTimeout Kind = iota
	// KindHTTPStatus is a response with a non-2xx status code.
	KindHTTPStatus
	// KindDecode is malformed JSON, CSV, or spreadsheet content.
	KindDecode
	// KindIO is a network or filesystem failure.
	KindIO
	// KindUnsupported is a file extension the importer does not handle.
	KindUnsupported
)

// String returns the short name of the failure kind.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	case KindDecode:
		return "decode"
	case KindIO:
		return "io"
	case KindUnsupported:
		return "unsupported"
	}
	return "unknown"
}

// Error is the discriminated import failure. Source is the URL or file
// path; Status is set for KindHTTPStatus.
type Error struct {
	Kind   Kind
	Source string
	Status int
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Kind == KindHTTPStatus:
		return fmt.Sprintf("import %s: unexpected status %d", e.Source, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("import %s: %s: %v", e.Source, e.Kind, e.Err)
	}
	return fmt.Sprintf("import %s: %s", e.Source, e.Kind)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}
