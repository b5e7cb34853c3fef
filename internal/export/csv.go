// Package export renders records as semicolon-delimited text and appends
// the result to files.
package export

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Delimiter separates columns (European spreadsheet convention)
const Delimiter = ";"

// ErrEmptyInput is returned when there are no records to derive columns from
var ErrEmptyInput = errors.New("export: no records")

// Field is one named value of a record
type Field struct {
	Name  string
	Value string
}

// Record is anything that declares its exportable fields
type Record interface {
	Fields() []Field
}

// Export renders rows as a header line followed by one line per row.
//
// Columns are the field names of the first record minus excluded, sorted
// ascending. Every value is wrapped in double quotes with embedded quotes
// doubled, and every row line ends with a trailing delimiter.
func Export(rows []Record, excluded ...string) (string, error) {
	if len(rows) == 0 {
		return "", ErrEmptyInput
	}

	skip := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		skip[name] = true
	}

	var columns []string
	for _, f := range rows[0].Fields() {
		if !skip[f.Name] {
			columns = append(columns, f.Name)
		}
	}
	sort.Strings(columns)

	var b strings.Builder
	b.WriteString(strings.Join(columns, Delimiter))
	b.WriteString("\n")

	for _, row := range rows {
		values := make(map[string]string)
		for _, f := range row.Fields() {
			values[f.Name] = f.Value
		}
		for _, col := range columns {
			b.WriteString(quote(values[col]))
			b.WriteString(Delimiter)
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func quote(value string) string {
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// FileWriteError reports a failure to write an export file
type FileWriteError struct {
	Path string
	Err  error
}

func (e *FileWriteError) Error() string {
	return fmt.Sprintf("write export file %s: %v", e.Path, e.Err)
}

func (e *FileWriteError) Unwrap() error {
	return e.Err
}

// AppendFile appends content to path, creating the file if needed
func AppendFile(path, content string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return &FileWriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileWriteError{Path: path, Err: err}
	}
	return nil
}
