package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/notify"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/repo"
)

const lookupCachePrefix = "lookup:"

// LookupInvalidator drops cached dropdown lists after a write. May be
// nil when running without a cache.
type LookupInvalidator interface {
	InvalidatePrefix(ctx context.Context, prefix string)
}

// SiteAssets is the result of the five-table fan-out for one site.
type SiteAssets struct {
	Categories map[model.Category][]*model.AssetRow `json:"categories"`
	Counts     map[model.Category]int               `json:"counts"`
}

type AssetService interface {
	// Overview fetches all five category tables in parallel and joins
	// before returning; one failing table fails the whole call.
	Overview(ctx context.Context, siteID uuid.UUID) (*SiteAssets, error)
	List(ctx context.Context, category model.Category, siteID uuid.UUID) ([]*model.AssetRow, error)
	Create(ctx context.Context, category model.Category, row *model.AssetRow) (*model.AssetRow, error)
	// Save persists exactly the given draft fields and returns the
	// re-read row. Unknown fields are rejected, not ignored.
	Save(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID, fields map[string]interface{}) (*model.AssetRow, error)
}

type assetService struct {
	assets   repo.AssetRepo
	sites    repo.SiteRepo
	notifier notify.Notifier
	inval    LookupInvalidator
}

func NewAssetService(assets repo.AssetRepo, sites repo.SiteRepo, notifier notify.Notifier, inval LookupInvalidator) AssetService {
	return &assetService{assets: assets, sites: sites, notifier: notifier, inval: inval}
}

func (s *assetService) Overview(ctx context.Context, siteID uuid.UUID) (*SiteAssets, error) {
	out := &SiteAssets{
		Categories: make(map[model.Category][]*model.AssetRow, 5),
		Counts:     make(map[model.Category]int, 5),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	for _, category := range model.Categories() {
		category := category
		g.Go(func() error {
			rows, err := s.assets.ListBySite(gctx, category, siteID)
			if err != nil {
				return fmt.Errorf("list %s: %w", category, err)
			}
			mu.Lock()
			out.Categories[category] = rows
			out.Counts[category] = len(rows)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *assetService) List(ctx context.Context, category model.Category, siteID uuid.UUID) ([]*model.AssetRow, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return s.assets.ListBySite(ctx, category, siteID)
}

func (s *assetService) Create(ctx context.Context, category model.Category, row *model.AssetRow) (*model.AssetRow, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if row.SiteID == uuid.Nil {
		return nil, errors.New("site id is required")
	}
	if _, err := s.sites.GetByID(ctx, row.SiteID); err != nil {
		return nil, fmt.Errorf("resolve site: %w", err)
	}

	row.ID = uuid.New()
	if err := s.assets.Create(ctx, category, row); err != nil {
		return nil, err
	}

	s.afterWrite(ctx, category, row.SiteID, row.ID)
	return row, nil
}

func (s *assetService) Save(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID, fields map[string]interface{}) (*model.AssetRow, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if len(fields) == 0 {
		return nil, errors.New("no fields to save")
	}

	columns := make(map[string]interface{}, len(fields))
	for field, value := range fields {
		column, ok := model.UpdatableAssetColumns[field]
		if !ok {
			return nil, fmt.Errorf("field %q is not editable", field)
		}
		str, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("field %q must be a string", field)
		}
		columns[column] = str
	}

	if err := s.assets.UpdateColumns(ctx, category, siteID, assetID, columns); err != nil {
		return nil, err
	}

	row, err := s.assets.GetByID(ctx, category, siteID, assetID)
	if err != nil {
		return nil, err
	}

	s.afterWrite(ctx, category, siteID, assetID)
	return row, nil
}

func (s *assetService) afterWrite(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID) {
	if s.inval != nil {
		s.inval.InvalidatePrefix(ctx, lookupCachePrefix)
	}
	if s.notifier != nil {
		s.notifier.RowChanged(ctx, category, siteID, assetID)
	}
}
