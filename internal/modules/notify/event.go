package notify

import (
	"time"

	"github.com/google/uuid"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

type EventKind string

const (
	// EventRowChanged covers both adds and saves on a category table.
	EventRowChanged EventKind = "row_changed"
	// EventPhotoInserted fires on every photo metadata insert. It is
	// delivered unfiltered; clients recompute their photo map.
	EventPhotoInserted EventKind = "photo_inserted"
)

// ChangeEvent is the wire shape on both the AMQP exchange and the
// Redis fan-out channel.
type ChangeEvent struct {
	Kind     EventKind      `json:"kind"`
	Category model.Category `json:"category,omitempty"`
	Table    string         `json:"table"`
	SiteID   uuid.UUID      `json:"site_id"`
	AssetID  uuid.UUID      `json:"asset_id"`
	At       time.Time      `json:"at"`
}

// RoutingKey places row changes under their table and photo inserts
// under a shared key, so consumers can bind selectively.
func (e ChangeEvent) RoutingKey() string {
	if e.Kind == EventPhotoInserted {
		return "change.photos"
	}
	return "change." + e.Table
}
