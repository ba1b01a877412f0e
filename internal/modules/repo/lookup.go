package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

// LookupRepo reads the three dropdown views plus the product catalog.
// The views are read-only; they exist so distinct-value queries do not
// leak the five-table layout into the service layer.
type LookupRepo interface {
	EquipmentTypes(ctx context.Context, category model.Category) ([]string, error)
	ProductNames(ctx context.Context, category model.Category, equipmentType string) ([]string, error)
	TagStatuses(ctx context.Context) ([]string, error)
	// ProductNumberFiltered resolves a catalog number scoped by category
	// and equipment type; both are optional catalog columns, so this
	// query can fail on older catalog imports.
	ProductNumberFiltered(ctx context.Context, category model.Category, equipmentType string, productName string) (string, error)
	// ProductNumberByName is the unfiltered fallback.
	ProductNumberByName(ctx context.Context, productName string) (string, error)
}

type lookupRepo struct{ db *gorm.DB }

func NewLookupRepo(db *gorm.DB) LookupRepo {
	return &lookupRepo{db: db}
}

func (r *lookupRepo) EquipmentTypes(ctx context.Context, category model.Category) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Table("v_equipment_types").
		Where("category = ?", category).
		Order("equipment_type ASC").
		Pluck("equipment_type", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *lookupRepo) ProductNames(ctx context.Context, category model.Category, equipmentType string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Table("v_product_names").
		Where("category = ? AND equipment_type = ?", category, equipmentType).
		Order("product_name ASC").
		Distinct().
		Pluck("product_name", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *lookupRepo) TagStatuses(ctx context.Context) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).
		Table("v_tag_statuses").
		Order("tag_status ASC").
		Pluck("tag_status", &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *lookupRepo) ProductNumberFiltered(ctx context.Context, category model.Category, equipmentType string, productName string) (string, error) {
	var product model.CatalogProduct
	err := r.db.WithContext(ctx).
		Where("category = ? AND equipment_type = ? AND product_name = ?", category, equipmentType, productName).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return product.ProductNumber, nil
}

func (r *lookupRepo) ProductNumberByName(ctx context.Context, productName string) (string, error) {
	var product model.CatalogProduct
	err := r.db.WithContext(ctx).
		Where("product_name = ?", productName).
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return product.ProductNumber, nil
}
