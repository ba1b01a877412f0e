package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fieldtrace-io/fieldtrace/internal/config"
	mq "github.com/fieldtrace-io/fieldtrace/internal/infra/queue"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

// Notifier publishes change events after successful writes. Delivery is
// fire-and-forget from the writer's point of view: a publish failure is
// logged, never surfaced to the user whose write already succeeded.
type Notifier interface {
	RowChanged(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID)
	PhotoInserted(ctx context.Context, assetTable string, siteID uuid.UUID, assetID uuid.UUID)
}

type amqpNotifier struct {
	pub *mq.Publisher
	cfg *config.Config
	log *zap.Logger
}

func NewAMQPNotifier(pub *mq.Publisher, cfg *config.Config, log *zap.Logger) Notifier {
	return &amqpNotifier{pub: pub, cfg: cfg, log: log}
}

func (n *amqpNotifier) publish(ctx context.Context, ev ChangeEvent) {
	if err := n.pub.PublishJSON(ctx, n.cfg.RabbitMQ.Exchange, ev.RoutingKey(), ev); err != nil {
		n.log.Error("publish change event",
			zap.String("kind", string(ev.Kind)),
			zap.String("table", ev.Table),
			zap.String("asset_id", ev.AssetID.String()),
			zap.Error(err))
	}
}

func (n *amqpNotifier) RowChanged(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID) {
	n.publish(ctx, ChangeEvent{
		Kind:     EventRowChanged,
		Category: category,
		Table:    category.Table(),
		SiteID:   siteID,
		AssetID:  assetID,
		At:       time.Now().UTC(),
	})
}

func (n *amqpNotifier) PhotoInserted(ctx context.Context, assetTable string, siteID uuid.UUID, assetID uuid.UUID) {
	ev := ChangeEvent{
		Kind:    EventPhotoInserted,
		Table:   assetTable,
		SiteID:  siteID,
		AssetID: assetID,
		At:      time.Now().UTC(),
	}
	if c, ok := model.CategoryForTable(assetTable); ok {
		ev.Category = c
	}
	n.publish(ctx, ev)
}
