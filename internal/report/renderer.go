// Package report renders static chart images from the gold views.
package report

import (
	"context"
	"log/slog"

	"github.com/awlake/medallion-pipeline/internal/logging"
	"github.com/awlake/medallion-pipeline/internal/storage"
	"github.com/awlake/medallion-pipeline/internal/tables"
)

// Output image file names.
const (
	MonthlyTrendImage     = "monthly_sales_trend.png"
	TopProductsImage      = "top_products.png"
	CustomerSegmentsImage = "customer_segments.png"
)

// Renderer reads the gold views and writes chart images. It is a
// presentation collaborator: it only depends on the gold view schemas.
type Renderer struct {
	gold storage.Store
	viz  storage.Store
	log  *slog.Logger
}

// New creates a report renderer.
func New(gold, viz storage.Store) *Renderer {
	return &Renderer{
		gold: gold,
		viz:  viz,
		log:  logging.Component("report"),
	}
}

// Run renders all three images. Empty views are skipped with a warning
// rather than failing: an empty join result is a valid pipeline outcome.
func (r *Renderer) Run(ctx context.Context) error {
	monthly, err := storage.ReadTable[tables.MonthlySalesRow](ctx, r.gold, "gold", tables.MonthlySalesView)
	if err != nil {
		return err
	}
	if err := r.writeChart(ctx, MonthlyTrendImage, len(monthly) >= 2, func() ([]byte, error) {
		return renderMonthlyTrend(monthly)
	}); err != nil {
		return err
	}

	summary, err := storage.ReadTable[tables.SalesSummaryRow](ctx, r.gold, "gold", tables.SalesSummaryView)
	if err != nil {
		return err
	}
	if err := r.writeChart(ctx, TopProductsImage, len(summary) > 0, func() ([]byte, error) {
		return renderTopProducts(summary)
	}); err != nil {
		return err
	}

	insights, err := storage.ReadTable[tables.CustomerInsightRow](ctx, r.gold, "gold", tables.CustomerInsightsView)
	if err != nil {
		return err
	}
	if err := r.writeChart(ctx, CustomerSegmentsImage, len(insights) > 0, func() ([]byte, error) {
		return renderCustomerSegments(insights)
	}); err != nil {
		return err
	}

	r.log.Info("visualizations complete")
	return nil
}

func (r *Renderer) writeChart(ctx context.Context, name string, renderable bool, render func() ([]byte, error)) error {
	if !renderable {
		r.log.Warn("not enough data to render chart, skipping", "image", name)
		return nil
	}

	data, err := render()
	if err != nil {
		return err
	}
	if err := r.viz.WriteObject(ctx, name, data); err != nil {
		return err
	}

	r.log.Info("chart written", "image", name, "bytes", len(data))
	return nil
}
