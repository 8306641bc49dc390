// Package storage persists layer tables and manifests to local disk or a
// blob bucket.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store abstracts a single layer directory (silver, gold, visualizations).
// Keys are file names within the layer; writes replace any prior object.
type Store interface {
	// WriteObject writes data to key, overwriting atomically where the
	// backend allows it.
	WriteObject(ctx context.Context, key string, data []byte) error

	// ReadObject reads the full object at key.
	ReadObject(ctx context.Context, key string) ([]byte, error)

	// Exists checks whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// URI returns the canonical URI for the given key.
	// For local: file:///path, GCS: gs://bucket/path, S3: s3://bucket/path
	URI(key string) string

	// Close releases any resources.
	Close() error
}

// MissingDependencyError reports an absent upstream table: a later stage
// required a file that an earlier stage has not produced.
type MissingDependencyError struct {
	Layer string
	Table string
	Key   string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing %s dependency: table %s (%s)", e.Layer, e.Table, e.Key)
}

// ManifestFile is the name of the per-layer manifest object.
const ManifestFile = "_manifest.json"

// Manifest describes the tables written to a layer in one run.
type Manifest struct {
	Layer     string               `json:"layer"`
	Tables    map[string]TableInfo `json:"tables"`
	Producer  ProducerInfo         `json:"producer"`
	RunID     string               `json:"run_id"`
	CreatedAt time.Time            `json:"created_at"`
}

// TableInfo describes a single table in the layer.
type TableInfo struct {
	File     string `json:"file"`
	Checksum string `json:"checksum"`
	RowCount int64  `json:"row_count"`
	ByteSize int64  `json:"byte_size"`
}

// ProducerInfo describes the software that produced the layer.
type ProducerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// WriteManifest marshals and writes the layer manifest.
func WriteManifest(ctx context.Context, store Store, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := store.WriteObject(ctx, ManifestFile, data); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// ReadManifest reads and unmarshals the layer manifest.
func ReadManifest(ctx context.Context, store Store) (*Manifest, error) {
	data, err := store.ReadObject(ctx, ManifestFile)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return &m, nil
}

// Config configures a layer store.
type Config struct {
	Backend string // "local" | "blob"

	// Local filesystem
	Dir string

	// Blob bucket (file://, gs://, s3://; also B2, R2, MinIO via s3)
	BucketURL string
	Prefix    string // key prefix within the bucket, e.g. "silver/"
}

// NewStore creates a layer store based on configuration.
func NewStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "local":
		if cfg.Dir == "" {
			return nil, fmt.Errorf("Dir required for local backend")
		}
		return NewLocalStore(cfg.Dir)
	case "blob":
		if cfg.BucketURL == "" {
			return nil, fmt.Errorf("BucketURL required for blob backend")
		}
		return NewBlobStore(ctx, cfg.BucketURL, cfg.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
