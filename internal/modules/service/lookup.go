package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/repo"
)

// OptionCache caches option lists under string keys. May be nil.
type OptionCache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, values []string)
}

// Selection is the dependent dropdown chain on an asset row:
// category -> equipment type -> product name -> product number.
type Selection struct {
	Category      model.Category `json:"category"`
	EquipmentType string         `json:"equipment_type"`
	ProductName   string         `json:"product_name"`
	ProductNumber string         `json:"product_number"`
}

// CascadeField names which selection the user just changed.
type CascadeField string

const (
	FieldCategory      CascadeField = "category"
	FieldEquipmentType CascadeField = "equipment_type"
	FieldProductName   CascadeField = "product_name"
)

// CascadeResult carries the cleared selection plus the resolved option
// lists. Warnings hold user-visible messages for lookups that failed;
// a failed lookup empties its list but never fails the whole resolve.
type CascadeResult struct {
	Selection      Selection `json:"selection"`
	EquipmentTypes []string  `json:"equipment_types"`
	ProductNames   []string  `json:"product_names"`
	Warnings       []string  `json:"warnings,omitempty"`
}

type LookupService interface {
	// EquipmentTypes returns the category's distinct values; a current
	// value missing from the list (legacy free text) is appended as a
	// synthetic extra option so it still displays.
	EquipmentTypes(ctx context.Context, category model.Category, current string) ([]string, error)
	ProductNames(ctx context.Context, category model.Category, equipmentType string, current string) ([]string, error)
	TagStatuses(ctx context.Context) ([]string, error)
	// ProductNumber auto-fills from the catalog, falling back to an
	// unfiltered lookup when the filtered one errors.
	ProductNumber(ctx context.Context, category model.Category, equipmentType string, productName string) (string, error)
	Cascade(ctx context.Context, sel Selection, changed CascadeField) (*CascadeResult, error)
}

type lookupService struct {
	lookups repo.LookupRepo
	cache   OptionCache
	log     *zap.Logger
}

func NewLookupService(lookups repo.LookupRepo, cache OptionCache, log *zap.Logger) LookupService {
	return &lookupService{lookups: lookups, cache: cache, log: log}
}

func (s *lookupService) cached(ctx context.Context, key string, fetch func() ([]string, error)) ([]string, error) {
	if s.cache != nil {
		if values, ok := s.cache.Get(ctx, key); ok {
			return values, nil
		}
	}
	values, err := fetch()
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Set(ctx, key, values)
	}
	return values, nil
}

// injectCurrent keeps legacy free-text selections displayable by
// appending them when the fetched list does not contain them.
func injectCurrent(values []string, current string) []string {
	if current == "" {
		return values
	}
	for _, v := range values {
		if v == current {
			return values
		}
	}
	return append(values, current)
}

func (s *lookupService) EquipmentTypes(ctx context.Context, category model.Category, current string) ([]string, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	values, err := s.cached(ctx, lookupCachePrefix+"equip:"+string(category), func() ([]string, error) {
		return s.lookups.EquipmentTypes(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return injectCurrent(values, current), nil
}

func (s *lookupService) ProductNames(ctx context.Context, category model.Category, equipmentType string, current string) ([]string, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	// No upstream selection means no valid downstream options.
	if equipmentType == "" {
		return []string{}, nil
	}
	values, err := s.cached(ctx, lookupCachePrefix+"prod:"+string(category)+":"+equipmentType, func() ([]string, error) {
		return s.lookups.ProductNames(ctx, category, equipmentType)
	})
	if err != nil {
		return nil, err
	}
	return injectCurrent(values, current), nil
}

func (s *lookupService) TagStatuses(ctx context.Context) ([]string, error) {
	return s.cached(ctx, lookupCachePrefix+"tag", func() ([]string, error) {
		return s.lookups.TagStatuses(ctx)
	})
}

func (s *lookupService) ProductNumber(ctx context.Context, category model.Category, equipmentType string, productName string) (string, error) {
	if productName == "" {
		return "", nil
	}
	number, err := s.lookups.ProductNumberFiltered(ctx, category, equipmentType, productName)
	if err == nil {
		return number, nil
	}
	s.log.Warn("filtered catalog lookup failed, retrying unfiltered",
		zap.String("product_name", productName), zap.Error(err))
	return s.lookups.ProductNumberByName(ctx, productName)
}

// Cascade clears every selection downstream of the changed field, then
// resolves the option lists for what remains. Clearing happens before
// any lookup runs, so a lookup failure can never resurrect a stale
// downstream value.
func (s *lookupService) Cascade(ctx context.Context, sel Selection, changed CascadeField) (*CascadeResult, error) {
	if !sel.Category.Valid() {
		return nil, fmt.Errorf("unknown category %q", sel.Category)
	}

	switch changed {
	case FieldCategory:
		sel.EquipmentType = ""
		sel.ProductName = ""
		sel.ProductNumber = ""
	case FieldEquipmentType:
		sel.ProductName = ""
		sel.ProductNumber = ""
	case FieldProductName:
		sel.ProductNumber = ""
	default:
		return nil, fmt.Errorf("unknown cascade field %q", changed)
	}

	result := &CascadeResult{Selection: sel}

	equipmentTypes, err := s.EquipmentTypes(ctx, sel.Category, sel.EquipmentType)
	if err != nil {
		result.EquipmentTypes = []string{}
		result.Warnings = append(result.Warnings, "failed to load equipment types: "+err.Error())
	} else {
		result.EquipmentTypes = equipmentTypes
	}

	productNames, err := s.ProductNames(ctx, sel.Category, sel.EquipmentType, sel.ProductName)
	if err != nil {
		result.ProductNames = []string{}
		result.Warnings = append(result.Warnings, "failed to load product names: "+err.Error())
	} else {
		result.ProductNames = productNames
	}

	if changed == FieldProductName && sel.ProductName != "" {
		number, err := s.ProductNumber(ctx, sel.Category, sel.EquipmentType, sel.ProductName)
		if err != nil {
			result.Warnings = append(result.Warnings, "failed to resolve product number: "+err.Error())
		} else {
			result.Selection.ProductNumber = number
		}
	}

	return result, nil
}
