package model

import (
	"time"

	"github.com/google/uuid"
)

type Site struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name     string    `gorm:"size:256;not null;index" json:"name"`
	Code     string    `gorm:"size:64;not null;uniqueIndex" json:"code"`
	Location *string   `gorm:"size:256" json:"location,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Site) TableName() string { return "sites" }
