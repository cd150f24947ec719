package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sort"
	"time"

	"tablekit/pkg/frame"
)

// DefaultTimeout bounds the URL fetch when Config.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// Config holds the importer's tunables. Timeout bounds FromURL; Delimiter,
// when non-zero, overrides the extension-derived field separator for
// delimited files.
type Config struct {
	Timeout   time.Duration
	Delimiter rune
}

// Importer fetches and parses tabular data.
type Importer struct {
	logger    *slog.Logger
	client    *http.Client
	delimiter rune
}

// New creates an importer. A nil logger falls back to slog.Default; a
// negative timeout is a configuration error.
func New(logger *slog.Logger, cfg Config) (*Importer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout < 0 {
		return nil, frame.NewConfigError("timeout", "must not be negative")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Importer{
		logger:    logger,
		client:    &http.Client{Timeout: timeout},
		delimiter: cfg.Delimiter,
	}, nil
}

// FromURL performs an HTTP GET and decodes a JSON object of objects into a
// table. The mapping is oriented index-first: each top-level key becomes a
// row and its value supplies that row's columns. The keys themselves are
// materialized as a leading "index" column, with rows sorted by key.
func (imp *Importer) FromURL(ctx context.Context, url string) (*frame.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, imp.fail(&Error{Kind: KindIO, Source: url, Err: err})
	}
	resp, err := imp.client.Do(req)
	if err != nil {
		kind := KindIO
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			kind = KindTimeout
		}
		return nil, imp.fail(&Error{Kind: kind, Source: url, Err: err})
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, imp.fail(&Error{Kind: KindHTTPStatus, Source: url, Status: resp.StatusCode})
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, imp.fail(&Error{Kind: KindIO, Source: url, Err: err})
	}

	var mapping map[string]map[string]any
	if err := json.Unmarshal(body, &mapping); err != nil {
		return nil, imp.fail(&Error{Kind: KindDecode, Source: url, Err: err})
	}

	t, err := tableFromMapping(mapping)
	if err != nil {
		return nil, imp.fail(&Error{Kind: KindDecode, Source: url, Err: err})
	}
	imp.logger.Info("Imported table from URL",
		slog.String("url", url),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))
	return t, nil
}

// fail logs the failure and returns it.
func (imp *Importer) fail(e *Error) error {
	imp.logger.Error("Import failed",
		slog.String("source", e.Source),
		slog.String("kind", e.Kind.String()),
		slog.String("error", e.Error()))
	return e
}

// tableFromMapping builds the index-first table. Rows sort by key; column
// order is first appearance across the sorted rows.
func tableFromMapping(mapping map[string]map[string]any) (*frame.Table, error) {
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var colNames []string
	seen := make(map[string]struct{})
	for _, k := range keys {
		for name := range mapping[k] {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				colNames = append(colNames, name)
			}
		}
	}
	// Map iteration order is random; keep column order stable.
	sort.Strings(colNames)

	index := &frame.Column{Name: "index", Type: frame.String, Values: make([]any, len(keys))}
	for i, k := range keys {
		index.Values[i] = k
	}
	cols := []*frame.Column{index}
	for _, name := range colNames {
		raw := make([]any, len(keys))
		for i, k := range keys {
			v, ok := mapping[k][name]
			if !ok || v == nil {
				continue
			}
			raw[i] = v
		}
		cols = append(cols, columnFromJSON(name, raw))
	}
	t, err := frame.New(cols...)
	if err != nil {
		return nil, fmt.Errorf("build table: %w", err)
	}
	return t, nil
}

// columnFromJSON types a column of decoded JSON scalars: all booleans give
// Bool, integral numbers Int64, numbers Float64, anything else String.
func columnFromJSON(name string, raw []any) *frame.Column {
	allBool, allNumber, allIntegral := true, true, true
	observed := false
	for _, v := range raw {
		if v == nil {
			continue
		}
		observed = true
		switch x := v.(type) {
		case bool:
			allNumber, allIntegral = false, false
		case float64:
			allBool = false
			if x != float64(int64(x)) {
				allIntegral = false
			}
		default:
			allBool, allNumber, allIntegral = false, false, false
		}
	}

	c := &frame.Column{Name: name, Values: make([]any, len(raw))}
	switch {
	case !observed:
		c.Type = frame.String
	case allBool:
		c.Type = frame.Bool
		for i, v := range raw {
			if v != nil {
				c.Values[i] = v.(bool)
			}
		}
	case allNumber && allIntegral:
		c.Type = frame.Int64
		for i, v := range raw {
			if v != nil {
				c.Values[i] = int64(v.(float64))
			}
		}
	case allNumber:
		c.Type = frame.Float64
		for i, v := range raw {
			if v != nil {
				c.Values[i] = v.(float64)
			}
		}
	default:
		c.Type = frame.String
		for i, v := range raw {
			if v != nil {
				c.Values[i] = stringifyJSON(v)
			}
		}
	}
	return c
}

// stringifyJSON renders a decoded JSON value; nested arrays and objects
// re-encode as compact JSON.
func stringifyJSON(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool, float64:
		return fmt.Sprintf("%v", x)
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}
