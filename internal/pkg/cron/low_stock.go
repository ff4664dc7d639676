package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/guardforce-backend-go/internal/domain/inventory"
	"github.com/cmlabs-hris/guardforce-backend-go/internal/pkg/sse"
)

// LowStockJobs reports quantity-tracked items below their minimum.
type LowStockJobs struct {
	inventoryService inventory.InventoryService
	interval         time.Duration
	logger           *slog.Logger
	publisher        Publisher
}

func NewLowStockJobs(inventoryService inventory.InventoryService, interval time.Duration, logger *slog.Logger, publisher Publisher) *LowStockJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &LowStockJobs{
		inventoryService: inventoryService,
		interval:         interval,
		logger:           logger,
		publisher:        publisher,
	}
}

func (j *LowStockJobs) RegisterJobs(scheduler *Scheduler) error {
	return scheduler.AddJob("low_stock_alerts", j.interval, j.LowStockAlerts)
}

func (j *LowStockJobs) LowStockAlerts(ctx context.Context) error {
	items, err := j.inventoryService.ListLowStock(ctx)
	if err != nil {
		return err
	}

	for _, item := range items {
		j.logger.WarnContext(ctx, "Item below minimum stock",
			slog.String("item_code", item.ItemCode),
			slog.Int("quantity_on_hand", item.QuantityOnHand),
		)
		if j.publisher != nil {
			j.publisher.Publish(sse.Event{Topic: sse.TopicLowStock, Name: "low_stock", Data: item})
		}
	}
	j.logger.InfoContext(ctx, "Cron: low stock checked", "items", len(items))
	return nil
}
