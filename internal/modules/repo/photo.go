package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

type PhotoRepo interface {
	// Create inserts a new metadata record; re-uploads append rather
	// than update in place.
	Create(ctx context.Context, p *model.AssetPhoto) error
	ListBySite(ctx context.Context, siteID uuid.UUID) ([]*model.AssetPhoto, error)
	ListByAsset(ctx context.Context, assetTable string, assetID uuid.UUID) ([]*model.AssetPhoto, error)
}

type photoRepo struct{ db *gorm.DB }

func NewPhotoRepo(db *gorm.DB) PhotoRepo {
	return &photoRepo{db: db}
}

func (r *photoRepo) Create(ctx context.Context, p *model.AssetPhoto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *photoRepo) ListBySite(ctx context.Context, siteID uuid.UUID) ([]*model.AssetPhoto, error) {
	var photos []*model.AssetPhoto
	err := r.db.WithContext(ctx).
		Where("site_id = ?", siteID).
		Order("created_at ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *photoRepo) ListByAsset(ctx context.Context, assetTable string, assetID uuid.UUID) ([]*model.AssetPhoto, error) {
	var photos []*model.AssetPhoto
	err := r.db.WithContext(ctx).
		Where("asset_table = ? AND asset_id = ?", assetTable, assetID).
		Order("created_at ASC").
		Find(&photos).Error
	if err != nil {
		return nil, err
	}
	return photos, nil
}
