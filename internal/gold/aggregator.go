// Package gold builds pre-aggregated business views from silver tables.
package gold

import (
	"context"
	"log/slog"
	"time"

	"github.com/awlake/medallion-pipeline/internal/logging"
	"github.com/awlake/medallion-pipeline/internal/storage"
	"github.com/awlake/medallion-pipeline/internal/tables"
)

// Aggregator runs the silver-to-gold stage: three join/group/sort views,
// each fully rebuilt on every run.
type Aggregator struct {
	silver      storage.Store
	gold        storage.Store
	compression string
	producer    storage.ProducerInfo
	runID       string
	log         *slog.Logger
}

// New creates a silver-to-gold aggregator.
func New(silver, gold storage.Store, compression string, producer storage.ProducerInfo, runID string) *Aggregator {
	return &Aggregator{
		silver:      silver,
		gold:        gold,
		compression: compression,
		producer:    producer,
		runID:       runID,
		log:         logging.Component("gold"),
	}
}

// Run builds all three views and writes the gold manifest.
// A missing silver input surfaces as a storage.MissingDependencyError;
// joins that match nothing produce empty views, which is not an error.
func (a *Aggregator) Run(ctx context.Context) error {
	sales, err := storage.ReadTable[tables.SalesRow](ctx, a.silver, "silver", tables.SalesTable)
	if err != nil {
		return err
	}

	manifest := &storage.Manifest{
		Layer:     "gold",
		Tables:    make(map[string]storage.TableInfo),
		Producer:  a.producer,
		RunID:     a.runID,
		CreatedAt: time.Now().UTC(),
	}

	products, err := storage.ReadTable[tables.ProductRow](ctx, a.silver, "silver", tables.ProductsTable)
	if err != nil {
		return err
	}
	summary := BuildSalesSummary(sales, products)
	info, err := storage.WriteTable(ctx, a.gold, tables.SalesSummaryView, summary, a.compression)
	if err != nil {
		return err
	}
	manifest.Tables[tables.SalesSummaryView] = info
	a.log.Info("sales summary created", "groups", len(summary))

	customers, err := storage.ReadTable[tables.CustomerRow](ctx, a.silver, "silver", tables.CustomersTable)
	if err != nil {
		return err
	}
	insights := BuildCustomerInsights(sales, customers)
	info, err = storage.WriteTable(ctx, a.gold, tables.CustomerInsightsView, insights, a.compression)
	if err != nil {
		return err
	}
	manifest.Tables[tables.CustomerInsightsView] = info
	a.log.Info("customer insights created", "groups", len(insights))

	calendar, err := storage.ReadTable[tables.CalendarRow](ctx, a.silver, "silver", tables.CalendarTable)
	if err != nil {
		return err
	}
	monthly := BuildMonthlySales(sales, calendar)
	info, err = storage.WriteTable(ctx, a.gold, tables.MonthlySalesView, monthly, a.compression)
	if err != nil {
		return err
	}
	manifest.Tables[tables.MonthlySalesView] = info
	a.log.Info("monthly sales created", "groups", len(monthly))

	if err := storage.WriteManifest(ctx, a.gold, manifest); err != nil {
		return err
	}

	a.log.Info("silver to gold complete", "views", len(manifest.Tables))
	return nil
}
