package notify

import (
	"context"
	"sync"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Subscriber is one live stream consumer, interested in a single site.
// Row-change events are filtered to that site; photo inserts pass
// through unfiltered.
type Subscriber struct {
	SiteID uuid.UUID
	Events chan ChangeEvent
}

// Hub fans reconciled change events out to websocket subscribers. It
// reads the Redis pub/sub channel, so events published by any replica
// reach subscribers connected to this one.
type Hub struct {
	rdb     *redis.Client
	channel string
	log     *zap.Logger

	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

func NewHub(rdb *redis.Client, channel string, log *zap.Logger) *Hub {
	return &Hub{
		rdb:     rdb,
		channel: channel,
		log:     log,
		subs:    make(map[*Subscriber]struct{}),
	}
}

// Subscribe registers interest in a site. The returned subscriber must
// be handed back to Unsubscribe on teardown; re-searching a new site
// means unsubscribe-then-subscribe, never two live subscriptions.
func (h *Hub) Subscribe(siteID uuid.UUID) *Subscriber {
	sub := &Subscriber{
		SiteID: siteID,
		Events: make(chan ChangeEvent, 32),
	}
	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.Events)
	}
	h.mu.Unlock()
}

// Broadcast delivers one event to every matching subscriber. Slow
// subscribers drop events rather than block the hub; the client's next
// re-fetch heals any gap.
func (h *Hub) Broadcast(ev ChangeEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for sub := range h.subs {
		if ev.Kind == EventRowChanged && ev.SiteID != sub.SiteID {
			continue
		}
		select {
		case sub.Events <- ev:
		default:
			h.log.Warn("subscriber lagging, event dropped",
				zap.String("site_id", sub.SiteID.String()))
		}
	}
}

// Deliver lets the hub act as an EventSink when running without Redis
// (single instance, tests).
func (h *Hub) Deliver(_ context.Context, ev ChangeEvent) error {
	h.Broadcast(ev)
	return nil
}

// Run consumes the Redis channel until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	pubsub := h.rdb.Subscribe(ctx, h.channel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var ev ChangeEvent
			if err := sonic.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				h.log.Warn("drop malformed fan-out payload", zap.Error(err))
				continue
			}
			h.Broadcast(ev)
		}
	}
}
