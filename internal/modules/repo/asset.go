package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

type AssetRepo interface {
	ListBySite(ctx context.Context, category model.Category, siteID uuid.UUID) ([]*model.AssetRow, error)
	GetByID(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID) (*model.AssetRow, error)
	Create(ctx context.Context, category model.Category, row *model.AssetRow) error
	UpdateColumns(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID, columns map[string]interface{}) error
}

type assetRepo struct{ db *gorm.DB }

func NewAssetRepo(db *gorm.DB) AssetRepo {
	return &assetRepo{db: db}
}

func (r *assetRepo) ListBySite(ctx context.Context, category model.Category, siteID uuid.UUID) ([]*model.AssetRow, error) {
	var rows []*model.AssetRow
	err := r.db.WithContext(ctx).
		Table(category.Table()).
		Where("site_id = ?", siteID).
		Order("survey_date DESC, created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *assetRepo) GetByID(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID) (*model.AssetRow, error) {
	var row model.AssetRow
	err := r.db.WithContext(ctx).
		Table(category.Table()).
		Where("id = ? AND site_id = ?", assetID, siteID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *assetRepo) Create(ctx context.Context, category model.Category, row *model.AssetRow) error {
	return r.db.WithContext(ctx).Table(category.Table()).Create(row).Error
}

// UpdateColumns writes exactly the given columns; anything not in the
// map round-trips unchanged. Callers whitelist the keys beforehand.
func (r *assetRepo) UpdateColumns(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID, columns map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Table(category.Table()).
		Where("id = ? AND site_id = ?", assetID, siteID).
		Updates(columns).Error
}
