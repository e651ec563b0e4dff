// export/export.go

// Package export converts batches of amounts to words and writes the results
// as CSV or Excel workbooks.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dalemusser/amountwords/words"
)

// Row is one conversion request. Empty Currency or Language fields take the
// defaults passed to Convert.
type Row struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency,omitempty"`
	Language string `json:"language,omitempty"`
}

// Result is a converted row. Err is set when the row could not be converted;
// the batch continues.
type Result struct {
	Row
	Words string `json:"words"`
	Err   error  `json:"-"`
}

// ErrorText returns the error message or "".
func (r Result) ErrorText() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

// Columns is the header row written by WriteCSV and WriteExcel.
var Columns = []string{"amount", "currency", "language", "words", "error"}

// Defaults fills empty row fields.
type Defaults struct {
	Currency string
	Language string
}

// Convert formats every row with e. Amounts are decimal strings in major
// units ("9.00"). Currency tokens are passed to the engine as strings, so e
// needs a mapping that resolves names or codes.
func Convert(e *words.Engine, rows []Row, def Defaults) []Result {
	out := make([]Result, 0, len(rows))
	for _, row := range rows {
		if row.Currency == "" {
			row.Currency = def.Currency
		}
		if row.Language == "" {
			row.Language = def.Language
		}

		res := Result{Row: row}
		amount, err := words.ParseAmount(row.Amount)
		if err != nil {
			res.Err = err
			out = append(out, res)
			continue
		}
		res.Words, res.Err = e.Format(amount, row.Currency, row.Language)
		out = append(out, res)
	}
	return out
}

// ReadRows reads amount,currency,language records. A first record whose
// first field is "amount" is treated as a header. Missing trailing fields
// are left empty.
func ReadRows(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []Row
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("export: read line %d: %w", line, err)
		}
		if line == 1 && len(rec) > 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "amount") {
			continue
		}
		if len(rec) == 0 || (len(rec) == 1 && strings.TrimSpace(rec[0]) == "") {
			continue
		}

		row := Row{Amount: strings.TrimSpace(rec[0])}
		if len(rec) > 1 {
			row.Currency = strings.TrimSpace(rec[1])
		}
		if len(rec) > 2 {
			row.Language = strings.TrimSpace(rec[2])
		}
		rows = append(rows, row)
	}
}

// Format is an output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts "csv" and "xlsx" (or "excel"), case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "":
		return FormatCSV, nil
	case "xlsx", "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("export: unknown format %q", s)
	}
}

// FormatFor picks the format from a file name's extension; anything other
// than .xlsx is CSV.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return FormatXLSX
	}
	return FormatCSV
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Write writes results in format f.
func Write(w io.Writer, f Format, results []Result) error {
	if f == FormatXLSX {
		return WriteExcel(w, results)
	}
	return WriteCSV(w, results)
}

// WriteCSV writes a header row and one record per result.
func WriteCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range results {
		if err := cw.Write(record(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// record is the row written for r, in Columns order. Caller-supplied fields
// go through escapeCell.
func record(r Result) []string {
	return []string{
		escapeCell(r.Amount),
		escapeCell(r.Currency),
		escapeCell(r.Language),
		strings.TrimSpace(r.Words),
		escapeCell(r.ErrorText()),
	}
}

// escapeCell prefixes a quote to values a spreadsheet would evaluate as a
// formula (leading =, +, -, @, tab or CR). Plain numbers such as "-3" are
// left alone.
func escapeCell(s string) string {
	if s == "" || !strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return s
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return s
	}
	return "'" + s
}
