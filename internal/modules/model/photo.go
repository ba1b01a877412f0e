package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PhotoType distinguishes the two kinds of evidence shots taken per asset.
type PhotoType string

const (
	PhotoTypeSerial PhotoType = "serial"
	PhotoTypeTag    PhotoType = "tag"
)

func (t PhotoType) Valid() bool {
	return t == PhotoTypeSerial || t == PhotoTypeTag
}

// AssetPhoto is append-only metadata for an uploaded photo. Assets live
// in five separate tables, so ownership is the (AssetID, AssetTable)
// pair rather than a real foreign key. SignedURL is computed per fetch
// and never persisted.
type AssetPhoto struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssetID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_asset_photos_owner" json:"asset_id"`
	AssetTable string            `gorm:"size:64;not null;index:idx_asset_photos_owner" json:"asset_table"`
	SiteID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"site_id"`
	Type       PhotoType         `gorm:"size:16;not null" json:"type"`
	ObjectKey  string            `gorm:"size:512;not null" json:"object_key"`
	Meta       datatypes.JSONMap `gorm:"type:jsonb" swaggertype:"object" json:"meta,omitempty"`

	SignedURL string `gorm:"-" json:"signed_url,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (AssetPhoto) TableName() string { return "asset_photos" }
