// Package silver turns bronze extracts into cleaned, typed parquet tables.
package silver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/awlake/medallion-pipeline/internal/bronze"
	"github.com/awlake/medallion-pipeline/internal/config"
	"github.com/awlake/medallion-pipeline/internal/logging"
	"github.com/awlake/medallion-pipeline/internal/storage"
	"github.com/awlake/medallion-pipeline/internal/tables"
)

// Transformer runs the bronze-to-silver stage: each source is loaded,
// cleaned, and fully rewritten to the silver store.
type Transformer struct {
	loader      *bronze.Loader
	store       storage.Store
	costRatio   float64
	salesYears  []int
	failMissing bool
	compression string
	producer    storage.ProducerInfo
	runID       string
	log         *slog.Logger
}

// New creates a bronze-to-silver transformer.
func New(loader *bronze.Loader, store storage.Store, cfg config.Config, producer storage.ProducerInfo, runID string) *Transformer {
	return &Transformer{
		loader:      loader,
		store:       store,
		costRatio:   cfg.Transform.CostRatio,
		salesYears:  cfg.Bronze.SalesYears,
		failMissing: cfg.Bronze.SalesMissingPolicy == config.PolicyFail,
		compression: cfg.Storage.Compression,
		producer:    producer,
		runID:       runID,
		log:         logging.Component("silver"),
	}
}

// Run processes all four sources and writes the silver manifest.
func (t *Transformer) Run(ctx context.Context) error {
	manifest := &storage.Manifest{
		Layer:     "silver",
		Tables:    make(map[string]storage.TableInfo),
		Producer:  t.producer,
		RunID:     t.runID,
		CreatedAt: time.Now().UTC(),
	}

	if err := t.processCalendar(ctx, manifest); err != nil {
		return err
	}
	if err := t.processCustomers(ctx, manifest); err != nil {
		return err
	}
	if err := t.processProducts(ctx, manifest); err != nil {
		return err
	}
	if err := t.processSales(ctx, manifest); err != nil {
		return err
	}

	if err := storage.WriteManifest(ctx, t.store, manifest); err != nil {
		return err
	}

	t.log.Info("bronze to silver complete", "tables", len(manifest.Tables))
	return nil
}

func (t *Transformer) processCalendar(ctx context.Context, m *storage.Manifest) error {
	raw, err := t.loader.Load(tables.CalendarTable)
	if err != nil {
		return err
	}

	rows, err := TransformCalendar(raw)
	if err != nil {
		return err
	}

	info, err := storage.WriteTable(ctx, t.store, tables.CalendarTable, rows, t.compression)
	if err != nil {
		return err
	}
	m.Tables[tables.CalendarTable] = info

	t.log.Info("calendar processed", "rows", len(rows))
	return nil
}

func (t *Transformer) processCustomers(ctx context.Context, m *storage.Manifest) error {
	raw, err := t.loader.Load(tables.CustomersTable)
	if err != nil {
		return err
	}

	rows, err := TransformCustomer(raw)
	if err != nil {
		return err
	}

	info, err := storage.WriteTable(ctx, t.store, tables.CustomersTable, rows, t.compression)
	if err != nil {
		return err
	}
	m.Tables[tables.CustomersTable] = info

	t.log.Info("customers processed", "rows", len(rows))
	return nil
}

func (t *Transformer) processProducts(ctx context.Context, m *storage.Manifest) error {
	raw, err := t.loader.Load(tables.ProductsTable)
	if err != nil {
		return err
	}

	rows, err := TransformProduct(raw)
	if err != nil {
		return err
	}

	info, err := storage.WriteTable(ctx, t.store, tables.ProductsTable, rows, t.compression)
	if err != nil {
		return err
	}
	m.Tables[tables.ProductsTable] = info

	t.log.Info("products processed", "rows", len(rows))
	return nil
}

func (t *Transformer) processSales(ctx context.Context, m *storage.Manifest) error {
	rawSales, err := t.loader.LoadSales(t.salesYears, t.failMissing)
	if err != nil {
		return err
	}

	// Pricing joins against the raw product extract, not the silver table.
	rawProducts, err := t.loader.Load(tables.ProductsTable)
	if err != nil {
		return fmt.Errorf("load products for pricing: %w", err)
	}

	rows, err := TransformSales(rawSales, rawProducts, t.costRatio)
	if err != nil {
		return err
	}

	info, err := storage.WriteTable(ctx, t.store, tables.SalesTable, rows, t.compression)
	if err != nil {
		return err
	}
	m.Tables[tables.SalesTable] = info

	t.log.Info("sales processed", "rows", len(rows))
	return nil
}
