package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

type SiteRepo interface {
	Search(ctx context.Context, query string) ([]*model.Site, error)
	GetByID(ctx context.Context, siteID uuid.UUID) (*model.Site, error)
	Create(ctx context.Context, s *model.Site) error
}

type siteRepo struct{ db *gorm.DB }

func NewSiteRepo(db *gorm.DB) SiteRepo {
	return &siteRepo{db: db}
}

func (r *siteRepo) Search(ctx context.Context, query string) ([]*model.Site, error) {
	var sites []*model.Site
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?) OR LOWER(code) LIKE LOWER(?)", pattern, pattern).
		Order("code ASC").
		Find(&sites).Error
	if err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *siteRepo) GetByID(ctx context.Context, siteID uuid.UUID) (*model.Site, error) {
	var site model.Site
	err := r.db.WithContext(ctx).Where("id = ?", siteID).First(&site).Error
	if err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *siteRepo) Create(ctx context.Context, s *model.Site) error {
	return r.db.WithContext(ctx).Create(s).Error
}
