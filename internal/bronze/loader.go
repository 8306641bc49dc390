// Package bronze reads raw delimited extracts into in-memory string tables.
package bronze

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/awlake/medallion-pipeline/internal/logging"
)

// SourceNotFoundError reports a required bronze extract that is absent.
type SourceNotFoundError struct {
	Source string
	Dir    string
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source %s not found in %s", e.Source, e.Dir)
}

// Table is a raw bronze extract: a header and untyped string records.
type Table struct {
	Source  string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a table directly from a header and records.
func NewTable(source string, columns []string, rows [][]string) *Table {
	index := make(map[string]int, len(columns))
	for i, col := range columns {
		index[col] = i
	}
	return &Table{
		Source:  source,
		Columns: columns,
		Rows:    rows,
		index:   index,
	}
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Field returns the named column of a record, or "" when the table has no
// such column.
func (t *Table) Field(row []string, name string) string {
	i, ok := t.index[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// HasColumn reports whether the table carries the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Loader reads bronze extracts from a directory. Files are Latin-1 encoded
// CSV; a .csv.zst variant is decompressed transparently.
type Loader struct {
	dir  string
	zstd *zstd.Decoder
	log  *slog.Logger
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string) (*Loader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid bronze dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("bronze path %s is not a directory", dir)
	}

	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &Loader{
		dir:  dir,
		zstd: dec,
		log:  logging.Component("bronze"),
	}, nil
}

// Close releases decoder resources.
func (l *Loader) Close() {
	if l.zstd != nil {
		l.zstd.Close()
	}
}

// Load reads the extract for the given logical source name
// (<dir>/<name>.csv or <dir>/<name>.csv.zst).
func (l *Loader) Load(name string) (*Table, error) {
	data, err := l.readFile(name)
	if err != nil {
		return nil, err
	}

	table, err := parseCSV(name, data)
	if err != nil {
		return nil, err
	}

	l.log.Debug("loaded source", "source", name, "rows", table.Len())
	return table, nil
}

// LoadSales merges the yearly sales extracts into one logical table.
// Absent years are skipped (or fail the load when failOnMissing is set);
// zero found files is always an error.
func (l *Loader) LoadSales(years []int, failOnMissing bool) (*Table, error) {
	var merged *Table
	found := 0

	for _, year := range years {
		name := fmt.Sprintf("AdventureWorks_Sales_%d", year)
		t, err := l.Load(name)
		if err != nil {
			var notFound *SourceNotFoundError
			if errors.As(err, &notFound) {
				if failOnMissing {
					return nil, err
				}
				l.log.Warn("sales file missing, skipping", "source", name)
				continue
			}
			return nil, err
		}

		found++
		if merged == nil {
			merged = t
			merged.Source = "AdventureWorks_Sales"
			continue
		}
		merged.append(t)
	}

	if found == 0 {
		return nil, &SourceNotFoundError{Source: "AdventureWorks_Sales", Dir: l.dir}
	}
	return merged, nil
}

// append adds the rows of other, remapped by column name onto t's header.
func (t *Table) append(other *Table) {
	for _, row := range other.Rows {
		mapped := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			mapped[i] = other.Field(row, col)
		}
		t.Rows = append(t.Rows, mapped)
	}
}

// readFile reads the plain or zstd-compressed variant of a source file.
func (l *Loader) readFile(name string) ([]byte, error) {
	path := filepath.Join(l.dir, name+".csv")
	if data, err := os.ReadFile(path); err == nil {
		return data, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	zpath := path + ".zst"
	compressed, err := os.ReadFile(zpath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &SourceNotFoundError{Source: name, Dir: l.dir}
		}
		return nil, fmt.Errorf("read %s: %w", zpath, err)
	}

	data, err := l.zstd.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress %s: %w", zpath, err)
	}
	return data, nil
}

// parseCSV decodes Latin-1 CSV bytes into a Table.
func parseCSV(name string, data []byte) (*Table, error) {
	r := csv.NewReader(transform.NewReader(bytes.NewReader(data), charmap.ISO8859_1.NewDecoder()))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("source %s is empty", name)
		}
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		rows = append(rows, rec)
	}

	return NewTable(name, header, rows), nil
}
