package jobs

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"purchases/internal/core/ports"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// Column layout of the price file: name;description;price;quantity, no header.
const priceFileColumns = 4

// PriceAdjustmentJob periodically reads the price file and upserts each row
// into the product catalog. A bad row is logged and skipped; the job never
// aborts the file on a single failure.
type PriceAdjustmentJob struct {
	catalog  ports.ProductCatalog
	filePath string
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewPriceAdjustmentJob creates the price adjustment job. The schedule is a
// six-field cron expression with a seconds column.
func NewPriceAdjustmentJob(
	catalog ports.ProductCatalog, filePath, schedule string, logger *slog.Logger,
) *PriceAdjustmentJob {
	return &PriceAdjustmentJob{
		catalog:  catalog,
		filePath: filePath,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "price_adjustment_job"),
	}
}

// Start schedules the job. The file is not touched until the first tick.
func (j *PriceAdjustmentJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if runErr := j.Run(ctx); runErr != nil {
			j.logger.ErrorContext(ctx, "Price adjustment run failed", "error", runErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Price adjustment job started",
		"schedule", j.schedule, "file", j.filePath)
	return nil
}

// Stop stops the price adjustment job.
func (j *PriceAdjustmentJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Price adjustment job stopped")
}

// Run processes the whole price file once. Row-level failures are logged and
// counted but do not stop the remaining rows; Run only errors when the file
// itself cannot be read.
func (j *PriceAdjustmentJob) Run(ctx context.Context) error {
	file, err := os.Open(j.filePath)
	if err != nil {
		return fmt.Errorf("opening price file %s: %w", j.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = priceFileColumns

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("reading price file %s: %w", j.filePath, err)
	}

	processed := 0
	for line, row := range rows {
		if err := j.processRow(ctx, row); err != nil {
			j.logger.ErrorContext(ctx, "Skipping price row",
				"line", line+1, "product", row[0], "error", err)
			continue
		}
		processed++
	}

	j.logger.InfoContext(ctx, "Price adjustment run finished",
		"rows", len(rows), "processed", processed)
	return nil
}

func (j *PriceAdjustmentJob) processRow(ctx context.Context, row []string) error {
	price, err := decimal.NewFromString(row[2])
	if err != nil {
		return fmt.Errorf("parsing price %q: %w", row[2], err)
	}

	quantity, err := strconv.Atoi(row[3])
	if err != nil {
		return fmt.Errorf("parsing quantity %q: %w", row[3], err)
	}

	return j.catalog.SaveProduct(ctx, ports.ProductRecord{
		Name:        row[0],
		Description: row[1],
		Price:       price.Round(2),
		Quantity:    quantity,
	})
}
