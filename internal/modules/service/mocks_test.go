package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/fieldtrace-io/fieldtrace/internal/infra/blob"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

// MockAssetRepo is a mock implementation of repo.AssetRepo
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) ListBySite(ctx context.Context, category model.Category, siteID uuid.UUID) ([]*model.AssetRow, error) {
	args := m.Called(ctx, category, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AssetRow), args.Error(1)
}

func (m *MockAssetRepo) GetByID(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID) (*model.AssetRow, error) {
	args := m.Called(ctx, category, siteID, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AssetRow), args.Error(1)
}

func (m *MockAssetRepo) Create(ctx context.Context, category model.Category, row *model.AssetRow) error {
	args := m.Called(ctx, category, row)
	return args.Error(0)
}

func (m *MockAssetRepo) UpdateColumns(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID, columns map[string]interface{}) error {
	args := m.Called(ctx, category, siteID, assetID, columns)
	return args.Error(0)
}

// MockSiteRepo is a mock implementation of repo.SiteRepo
type MockSiteRepo struct {
	mock.Mock
}

func (m *MockSiteRepo) Search(ctx context.Context, query string) ([]*model.Site, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Site), args.Error(1)
}

func (m *MockSiteRepo) GetByID(ctx context.Context, siteID uuid.UUID) (*model.Site, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Site), args.Error(1)
}

func (m *MockSiteRepo) Create(ctx context.Context, s *model.Site) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

// MockPhotoRepo is a mock implementation of repo.PhotoRepo
type MockPhotoRepo struct {
	mock.Mock
}

func (m *MockPhotoRepo) Create(ctx context.Context, p *model.AssetPhoto) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPhotoRepo) ListBySite(ctx context.Context, siteID uuid.UUID) ([]*model.AssetPhoto, error) {
	args := m.Called(ctx, siteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AssetPhoto), args.Error(1)
}

func (m *MockPhotoRepo) ListByAsset(ctx context.Context, assetTable string, assetID uuid.UUID) ([]*model.AssetPhoto, error) {
	args := m.Called(ctx, assetTable, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.AssetPhoto), args.Error(1)
}

// MockLookupRepo is a mock implementation of repo.LookupRepo
type MockLookupRepo struct {
	mock.Mock
}

func (m *MockLookupRepo) EquipmentTypes(ctx context.Context, category model.Category) ([]string, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLookupRepo) ProductNames(ctx context.Context, category model.Category, equipmentType string) ([]string, error) {
	args := m.Called(ctx, category, equipmentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLookupRepo) TagStatuses(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockLookupRepo) ProductNumberFiltered(ctx context.Context, category model.Category, equipmentType string, productName string) (string, error) {
	args := m.Called(ctx, category, equipmentType, productName)
	return args.String(0), args.Error(1)
}

func (m *MockLookupRepo) ProductNumberByName(ctx context.Context, productName string) (string, error) {
	args := m.Called(ctx, productName)
	return args.String(0), args.Error(1)
}

// MockNotifier is a mock implementation of notify.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) RowChanged(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID) {
	m.Called(ctx, category, siteID, assetID)
}

func (m *MockNotifier) PhotoInserted(ctx context.Context, assetTable string, siteID uuid.UUID, assetID uuid.UUID) {
	m.Called(ctx, assetTable, siteID, assetID)
}

// MockBlobStore is a mock implementation of BlobStore
type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) UploadFormFile(ctx context.Context, key string, fileHeader *multipart.FileHeader) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, key, fileHeader)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

func (m *MockBlobStore) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}
