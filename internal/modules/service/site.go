package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/repo"
)

type SiteService interface {
	// Search matches on name or code. An empty query returns an empty
	// result without touching the database.
	Search(ctx context.Context, query string) ([]*model.Site, error)
	Get(ctx context.Context, siteID uuid.UUID) (*model.Site, error)
}

type siteService struct {
	sites repo.SiteRepo
}

func NewSiteService(sites repo.SiteRepo) SiteService {
	return &siteService{sites: sites}
}

func (s *siteService) Search(ctx context.Context, query string) ([]*model.Site, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*model.Site{}, nil
	}
	return s.sites.Search(ctx, query)
}

func (s *siteService) Get(ctx context.Context, siteID uuid.UUID) (*model.Site, error) {
	return s.sites.GetByID(ctx, siteID)
}
