package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is one of the five fixed asset classes. Each class is backed
// by its own table; rows are only unique within their table.
type Category string

const (
	CategoryAntenna      Category = "antenna"
	CategoryRadio        Category = "radio"
	CategoryTransmission Category = "transmission"
	CategoryPower        Category = "power"
	CategoryAncillary    Category = "ancillary"
)

func Categories() []Category {
	return []Category{
		CategoryAntenna,
		CategoryRadio,
		CategoryTransmission,
		CategoryPower,
		CategoryAncillary,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryAntenna, CategoryRadio, CategoryTransmission, CategoryPower, CategoryAncillary:
		return true
	}
	return false
}

// Table returns the backing table name for the category.
func (c Category) Table() string { return "assets_" + string(c) }

// CategoryForTable is the inverse of Table; ok is false for unknown names.
func CategoryForTable(table string) (Category, bool) {
	for _, c := range Categories() {
		if c.Table() == table {
			return c, true
		}
	}
	return "", false
}

// AssetRow is the shared row shape of the five category tables.
// SurveyDate is free text as entered in the field, not a parsed date.
type AssetRow struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SiteID        uuid.UUID `gorm:"type:uuid;not null;index" json:"site_id"`
	SurveyDate    string    `gorm:"size:64" json:"survey_date"`
	EquipmentType string    `gorm:"size:128;index" json:"equipment_type"`
	ProductName   string    `gorm:"size:256" json:"product_name"`
	ProductNumber string    `gorm:"size:128" json:"product_number"`
	SerialNumber  string    `gorm:"size:128" json:"serial_number"`
	TagNumber     string    `gorm:"size:128" json:"tag_number"`
	TagStatus     string    `gorm:"size:64" json:"tag_status"`
	Remarks       string    `gorm:"type:text" json:"remarks"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// UpdatableAssetColumns maps the JSON field names a draft save may carry
// to their columns. Anything else in a save payload is rejected.
var UpdatableAssetColumns = map[string]string{
	"survey_date":    "survey_date",
	"equipment_type": "equipment_type",
	"product_name":   "product_name",
	"product_number": "product_number",
	"serial_number":  "serial_number",
	"tag_number":     "tag_number",
	"tag_status":     "tag_status",
	"remarks":        "remarks",
}
