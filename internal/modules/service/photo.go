package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/fieldtrace-io/fieldtrace/internal/infra/blob"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/notify"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/repo"
	"github.com/fieldtrace-io/fieldtrace/internal/pkg/utils/objectkey"
)

// BlobStore is the slice of the S3 layer photos need.
type BlobStore interface {
	UploadFormFile(ctx context.Context, key string, fileHeader *multipart.FileHeader) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
}

// PhotoMap groups a site's photos by owning asset, keyed
// "{table}:{assetID}". Entries carry fresh signed URLs.
type PhotoMap map[string][]*model.AssetPhoto

func PhotoMapKey(assetTable string, assetID uuid.UUID) string {
	return assetTable + ":" + assetID.String()
}

type PhotoService interface {
	// Attach uploads to the deterministic object key and appends a new
	// metadata record. Re-uploading the same (asset, type, filename)
	// overwrites the object but still inserts a fresh record.
	Attach(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID, photoType model.PhotoType, fileHeader *multipart.FileHeader) (*model.AssetPhoto, error)
	// SiteMap resolves every photo of the site with a presigned URL.
	// One failed signing degrades that photo's URL to empty.
	SiteMap(ctx context.Context, siteID uuid.UUID) (PhotoMap, error)
	ListByAsset(ctx context.Context, category model.Category, assetID uuid.UUID) ([]*model.AssetPhoto, error)
}

type photoService struct {
	photos     repo.PhotoRepo
	assets     repo.AssetRepo
	store      BlobStore
	notifier   notify.Notifier
	presignTTL time.Duration
	log        *zap.Logger
}

func NewPhotoService(photos repo.PhotoRepo, assets repo.AssetRepo, store BlobStore, notifier notify.Notifier, presignTTL time.Duration, log *zap.Logger) PhotoService {
	if presignTTL <= 0 {
		presignTTL = time.Hour
	}
	return &photoService{
		photos:     photos,
		assets:     assets,
		store:      store,
		notifier:   notifier,
		presignTTL: presignTTL,
		log:        log,
	}
}

func (s *photoService) Attach(ctx context.Context, category model.Category, siteID uuid.UUID, assetID uuid.UUID, photoType model.PhotoType, fileHeader *multipart.FileHeader) (*model.AssetPhoto, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	if !photoType.Valid() {
		return nil, fmt.Errorf("unknown photo type %q", photoType)
	}
	if err := objectkey.ValidateFilename(fileHeader.Filename); err != nil {
		return nil, fmt.Errorf("invalid filename: %w", err)
	}

	// The asset must exist in its table before evidence can hang off it.
	if _, err := s.assets.GetByID(ctx, category, siteID, assetID); err != nil {
		return nil, fmt.Errorf("resolve asset: %w", err)
	}

	key := objectkey.Build(siteID, category.Table(), assetID, string(photoType), fileHeader.Filename)
	uploaded, err := s.store.UploadFormFile(ctx, key, fileHeader)
	if err != nil {
		return nil, fmt.Errorf("upload photo: %w", err)
	}

	photo := &model.AssetPhoto{
		ID:         uuid.New(),
		AssetID:    assetID,
		AssetTable: category.Table(),
		SiteID:     siteID,
		Type:       photoType,
		ObjectKey:  uploaded.Key,
		Meta: datatypes.JSONMap{
			"filename": fileHeader.Filename,
			"mime":     uploaded.MIME,
			"size":     uploaded.SizeB,
			"etag":     uploaded.ETag,
			"sha256":   uploaded.SHA256,
		},
	}
	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("create photo record: %w", err)
	}

	if s.notifier != nil {
		s.notifier.PhotoInserted(ctx, photo.AssetTable, siteID, assetID)
	}
	return photo, nil
}

func (s *photoService) SiteMap(ctx context.Context, siteID uuid.UUID) (PhotoMap, error) {
	photos, err := s.photos.ListBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	result := make(PhotoMap)
	for _, photo := range photos {
		s.sign(ctx, photo)
		key := PhotoMapKey(photo.AssetTable, photo.AssetID)
		result[key] = append(result[key], photo)
	}
	return result, nil
}

func (s *photoService) ListByAsset(ctx context.Context, category model.Category, assetID uuid.UUID) ([]*model.AssetPhoto, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	photos, err := s.photos.ListByAsset(ctx, category.Table(), assetID)
	if err != nil {
		return nil, err
	}
	for _, photo := range photos {
		s.sign(ctx, photo)
	}
	return photos, nil
}

func (s *photoService) sign(ctx context.Context, photo *model.AssetPhoto) {
	url, err := s.store.PresignGet(ctx, photo.ObjectKey, s.presignTTL)
	if err != nil {
		s.log.Warn("presign photo url",
			zap.String("object_key", photo.ObjectKey), zap.Error(err))
		photo.SignedURL = ""
		return
	}
	photo.SignedURL = url
}
