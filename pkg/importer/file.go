package importer

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"tablekit/pkg/frame"
)

// spreadsheet extensions handled by the excelize path.
var spreadsheetExts = map[string]struct{}{
	".xls": {}, ".xlsx": {}, ".xlsm": {}, ".xlsb": {},
	".odf": {}, ".ods": {}, ".odt": {},
}

// FromFile reads a local file, dispatching on its extension: .csv is
// comma-separated, .txt tab-separated (Config.Delimiter overrides both),
// and the common office formats go through the spreadsheet parser. An
// unrecognized extension is a KindUnsupported failure.
func (imp *Importer) FromFile(path string) (*frame.Table, error) {
	ext := strings.ToLower(filepath.Ext(path))

	var rows [][]string
	var err error
	switch {
	case ext == ".csv":
		rows, err = imp.readDelimited(path, ',')
	case ext == ".txt":
		rows, err = imp.readDelimited(path, '\t')
	default:
		if _, ok := spreadsheetExts[ext]; ok {
			rows, err = imp.readSheet(path)
			break
		}
		return nil, imp.fail(&Error{Kind: KindUnsupported, Source: path,
			Err: fmt.Errorf("unrecognized extension %q", ext)})
	}
	if err != nil {
		return nil, err
	}

	t, err := tableFromRows(rows)
	if err != nil {
		return nil, imp.fail(&Error{Kind: KindDecode, Source: path, Err: err})
	}
	imp.logger.Info("Imported table from file",
		slog.String("path", path),
		slog.Int("rows", t.NumRows()),
		slog.Int("columns", t.NumCols()))
	return t, nil
}

// readDelimited parses a delimited text file. The first record is the
// header. Short records are padded with missing cells.
func (imp *Importer) readDelimited(path string, delim rune) ([][]string, error) {
	if imp.delimiter != 0 {
		delim = imp.delimiter
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, imp.fail(&Error{Kind: KindIO, Source: path, Err: err})
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, imp.fail(&Error{Kind: KindDecode, Source: path, Err: err})
	}
	return rows, nil
}

// readSheet parses the first sheet of a spreadsheet file.
func (imp *Importer) readSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		kind := KindDecode
		if os.IsNotExist(err) {
			kind = KindIO
		}
		return nil, imp.fail(&Error{Kind: kind, Source: path, Err: err})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, imp.fail(&Error{Kind: KindDecode, Source: path,
			Err: fmt.Errorf("workbook has no sheets")})
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, imp.fail(&Error{Kind: KindDecode, Source: path, Err: err})
	}
	return rows, nil
}

// tableFromRows builds a typed table from header + data rows. Cell types
// are inferred per column: all-int64 cells give Int64, numeric Float64,
// boolean Bool, anything else String. Empty cells are missing.
func tableFromRows(rows [][]string) (*frame.Table, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}
	header := rows[0]
	data := rows[1:]

	cols := make([]*frame.Column, 0, len(header))
	for j, name := range header {
		raw := make([]any, len(data))
		for i, row := range data {
			if j >= len(row) {
				continue
			}
			cell := strings.TrimSpace(row[j])
			if cell == "" {
				continue
			}
			raw[i] = cell
		}
		cols = append(cols, columnFromStrings(strings.TrimSpace(name), raw))
	}
	return frame.New(cols...)
}

// columnFromStrings infers the narrow common type of raw string cells.
func columnFromStrings(name string, raw []any) *frame.Column {
	allInt, allFloat, allBool := true, true, true
	observed := false
	for _, v := range raw {
		if v == nil {
			continue
		}
		observed = true
		s := v.(string)
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			allFloat = false
		}
		if _, err := strconv.ParseBool(s); err != nil {
			allBool = false
		}
	}

	c := &frame.Column{Name: name, Values: make([]any, len(raw))}
	switch {
	case !observed:
		c.Type = frame.String
	case allInt:
		c.Type = frame.Int64
		for i, v := range raw {
			if v != nil {
				n, _ := strconv.ParseInt(v.(string), 10, 64)
				c.Values[i] = n
			}
		}
	case allFloat:
		c.Type = frame.Float64
		for i, v := range raw {
			if v != nil {
				f, _ := strconv.ParseFloat(v.(string), 64)
				c.Values[i] = f
			}
		}
	case allBool:
		c.Type = frame.Bool
		for i, v := range raw {
			if v != nil {
				b, _ := strconv.ParseBool(v.(string))
				c.Values[i] = b
			}
		}
	default:
		c.Type = frame.String
		copy(c.Values, raw)
	}
	return c
}
