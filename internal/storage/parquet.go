package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/parquet-go/parquet-go"

	"github.com/awlake/medallion-pipeline/internal/tables"
)

// WriteTable serializes rows to parquet and writes them to the store,
// replacing any prior version of the table. The returned TableInfo feeds
// the layer manifest.
func WriteTable[T any](ctx context.Context, store Store, table string, rows []T, compression string) (TableInfo, error) {
	var buf bytes.Buffer

	opts := []parquet.WriterOption{codecOption(compression)}
	if err := parquet.Write(&buf, rows, opts...); err != nil {
		return TableInfo{}, fmt.Errorf("encode %s: %w", table, err)
	}

	file := tables.ParquetFile(table)
	data := buf.Bytes()
	if err := store.WriteObject(ctx, file, data); err != nil {
		return TableInfo{}, fmt.Errorf("write %s: %w", table, err)
	}

	return TableInfo{
		File:     file,
		Checksum: tables.ComputeChecksum(data),
		RowCount: int64(len(rows)),
		ByteSize: int64(len(data)),
	}, nil
}

// ReadTable reads a parquet table written by an earlier stage. An absent
// file is reported as a MissingDependencyError for the given layer.
func ReadTable[T any](ctx context.Context, store Store, layer, table string) ([]T, error) {
	key := tables.ParquetFile(table)

	data, err := store.ReadObject(ctx, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || isNotFound(err) {
			return nil, &MissingDependencyError{Layer: layer, Table: table, Key: key}
		}
		return nil, err
	}

	rows, err := parquet.Read[T](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", table, err)
	}
	return rows, nil
}

// codecOption maps a configured compression name to a writer option.
// Unknown names fall back to snappy.
func codecOption(name string) parquet.WriterOption {
	switch name {
	case "zstd":
		return parquet.Compression(&parquet.Zstd)
	case "none":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		return parquet.Compression(&parquet.Snappy)
	}
}
