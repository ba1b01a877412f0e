package model

import (
	"time"

	"github.com/google/uuid"
)

// CatalogProduct is one entry of the product catalog used for product
// number auto-fill. Category and EquipmentType are optional columns:
// older catalog imports carry only the product name.
type CatalogProduct struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Category      *string   `gorm:"size:64;index" json:"category,omitempty"`
	EquipmentType *string   `gorm:"size:128;index" json:"equipment_type,omitempty"`
	ProductName   string    `gorm:"size:256;not null;index" json:"product_name"`
	ProductNumber string    `gorm:"size:128;not null" json:"product_number"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (CatalogProduct) TableName() string { return "product_catalog" }
