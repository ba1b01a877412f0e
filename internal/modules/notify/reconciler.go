package notify

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	mq "github.com/fieldtrace-io/fieldtrace/internal/infra/queue"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/repo"
)

// EventSink receives reconciled events for fan-out.
type EventSink interface {
	Deliver(ctx context.Context, ev ChangeEvent) error
}

// RedisSink republishes on a pub/sub channel so every hub instance
// (including other replicas) sees the event.
type RedisSink struct {
	rdb     *redis.Client
	channel string
}

func NewRedisSink(rdb *redis.Client, channel string) *RedisSink {
	return &RedisSink{rdb: rdb, channel: channel}
}

func (s *RedisSink) Deliver(ctx context.Context, ev ChangeEvent) error {
	raw, err := sonic.Marshal(ev)
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, s.channel, raw).Err()
}

const mailboxIdleTimeout = time.Minute

// Reconciler drains the durable change queue into per-asset mailboxes,
// each served by a single goroutine. Events for one row are therefore
// verified and fanned out in arrival order; events for different rows
// proceed independently.
type Reconciler struct {
	consumer *mq.Consumer
	assets   repo.AssetRepo
	sink     EventSink
	log      *zap.Logger

	mu        sync.Mutex
	mailboxes map[uuid.UUID]chan ChangeEvent
	wg        sync.WaitGroup
}

func NewReconciler(consumer *mq.Consumer, assets repo.AssetRepo, sink EventSink, log *zap.Logger) *Reconciler {
	return &Reconciler{
		consumer:  consumer,
		assets:    assets,
		sink:      sink,
		log:       log,
		mailboxes: make(map[uuid.UUID]chan ChangeEvent),
	}
}

// Run blocks consuming the queue until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) error {
	err := r.consumer.Handle(ctx, func(body []byte) error {
		var ev ChangeEvent
		if err := sonic.Unmarshal(body, &ev); err != nil {
			// Malformed payloads would requeue forever; drop them.
			r.log.Warn("drop malformed change event", zap.Error(err))
			return nil
		}
		r.Dispatch(ctx, ev)
		return nil
	})
	r.wg.Wait()
	return err
}

// Dispatch routes an event into its asset's mailbox, creating the
// mailbox and its drain goroutine on first use.
func (r *Reconciler) Dispatch(ctx context.Context, ev ChangeEvent) {
	r.mu.Lock()
	box, ok := r.mailboxes[ev.AssetID]
	if !ok {
		box = make(chan ChangeEvent, 64)
		r.mailboxes[ev.AssetID] = box
		r.wg.Add(1)
		go r.drain(ctx, ev.AssetID, box)
	}
	r.mu.Unlock()

	select {
	case box <- ev:
	default:
		// A full mailbox means the subscriber is far behind; the next
		// event carries the same "re-fetch this row" meaning anyway.
		r.log.Warn("mailbox full, dropping event", zap.String("asset_id", ev.AssetID.String()))
	}
}

func (r *Reconciler) drain(ctx context.Context, assetID uuid.UUID, box chan ChangeEvent) {
	defer r.wg.Done()
	idle := time.NewTimer(mailboxIdleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			r.remove(assetID)
			return
		case ev := <-box:
			if !idle.Stop() {
				select {
				case <-idle.C:
				default:
				}
			}
			idle.Reset(mailboxIdleTimeout)
			r.reconcile(ctx, ev)
		case <-idle.C:
			r.remove(assetID)
			// Drain anything that raced in while we were removing.
			for {
				select {
				case ev := <-box:
					r.reconcile(ctx, ev)
				default:
					return
				}
			}
		}
	}
}

func (r *Reconciler) remove(assetID uuid.UUID) {
	r.mu.Lock()
	delete(r.mailboxes, assetID)
	r.mu.Unlock()
}

// reconcile re-reads the row so the fanned-out event reflects committed
// state, then delivers it to the sink. A row-not-found is forwarded
// as-is: subscribers re-fetch and see whatever the table now holds.
func (r *Reconciler) reconcile(ctx context.Context, ev ChangeEvent) {
	if ev.Kind == EventRowChanged && ev.Category.Valid() {
		if _, err := r.assets.GetByID(ctx, ev.Category, ev.SiteID, ev.AssetID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn("reconcile re-fetch failed",
				zap.String("table", ev.Table),
				zap.String("asset_id", ev.AssetID.String()),
				zap.Error(err))
		}
	}
	if err := r.sink.Deliver(ctx, ev); err != nil {
		r.log.Error("deliver change event", zap.Error(err))
	}
}
