package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/fieldtrace-io/fieldtrace/internal/infra/blob"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

func TestPhotoService_Attach(t *testing.T) {
	siteID := uuid.New()
	assetID := uuid.New()
	header := &multipart.FileHeader{Filename: "front.jpg", Size: 2048}

	expectedKey := fmt.Sprintf("%s/assets_radio/%s/serial/front.jpg", siteID, assetID)

	t.Run("uploads to the deterministic key and records metadata", func(t *testing.T) {
		photos := &MockPhotoRepo{}
		assets := &MockAssetRepo{}
		store := &MockBlobStore{}
		notifier := &MockNotifier{}

		assets.On("GetByID", mock.Anything, model.CategoryRadio, siteID, assetID).
			Return(&model.AssetRow{ID: assetID, SiteID: siteID}, nil)
		store.On("UploadFormFile", mock.Anything, expectedKey, header).
			Return(&blob.UploadedMeta{
				Key:    expectedKey,
				ETag:   "\"abc\"",
				SHA256: "deadbeef",
				MIME:   "image/jpeg",
				SizeB:  2048,
			}, nil)
		photos.On("Create", mock.Anything, mock.MatchedBy(func(p *model.AssetPhoto) bool {
			return p.ObjectKey == expectedKey &&
				p.AssetTable == "assets_radio" &&
				p.Type == model.PhotoTypeSerial &&
				p.Meta["mime"] == "image/jpeg"
		})).Return(nil)
		notifier.On("PhotoInserted", mock.Anything, "assets_radio", siteID, assetID).Return()

		svc := NewPhotoService(photos, assets, store, notifier, 0, zap.NewNop())
		photo, err := svc.Attach(context.Background(), model.CategoryRadio, siteID, assetID,
			model.PhotoTypeSerial, header)

		assert.NoError(t, err)
		assert.Equal(t, expectedKey, photo.ObjectKey)
		photos.AssertExpectations(t)
		store.AssertExpectations(t)
		notifier.AssertExpectations(t)
	})

	t.Run("re-upload inserts a fresh record under the same key", func(t *testing.T) {
		photos := &MockPhotoRepo{}
		assets := &MockAssetRepo{}
		store := &MockBlobStore{}
		notifier := &MockNotifier{}

		assets.On("GetByID", mock.Anything, model.CategoryRadio, siteID, assetID).
			Return(&model.AssetRow{ID: assetID, SiteID: siteID}, nil)
		store.On("UploadFormFile", mock.Anything, expectedKey, header).
			Return(&blob.UploadedMeta{Key: expectedKey}, nil)
		photos.On("Create", mock.Anything, mock.Anything).Return(nil)
		notifier.On("PhotoInserted", mock.Anything, "assets_radio", siteID, assetID).Return()

		svc := NewPhotoService(photos, assets, store, notifier, 0, zap.NewNop())

		first, err := svc.Attach(context.Background(), model.CategoryRadio, siteID, assetID,
			model.PhotoTypeSerial, header)
		assert.NoError(t, err)
		second, err := svc.Attach(context.Background(), model.CategoryRadio, siteID, assetID,
			model.PhotoTypeSerial, header)
		assert.NoError(t, err)

		assert.Equal(t, first.ObjectKey, second.ObjectKey)
		assert.NotEqual(t, first.ID, second.ID)
		photos.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("missing asset blocks the upload", func(t *testing.T) {
		assets := &MockAssetRepo{}
		store := &MockBlobStore{}
		assets.On("GetByID", mock.Anything, model.CategoryRadio, siteID, assetID).
			Return(nil, errors.New("record not found"))

		svc := NewPhotoService(&MockPhotoRepo{}, assets, store, &MockNotifier{}, 0, zap.NewNop())
		_, err := svc.Attach(context.Background(), model.CategoryRadio, siteID, assetID,
			model.PhotoTypeSerial, header)

		assert.Error(t, err)
		store.AssertNotCalled(t, "UploadFormFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("path traversal filename is rejected", func(t *testing.T) {
		svc := NewPhotoService(&MockPhotoRepo{}, &MockAssetRepo{}, &MockBlobStore{}, &MockNotifier{}, 0, zap.NewNop())
		_, err := svc.Attach(context.Background(), model.CategoryRadio, siteID, assetID,
			model.PhotoTypeSerial, &multipart.FileHeader{Filename: "../../etc/passwd"})
		assert.Error(t, err)
	})

	t.Run("unknown photo type is rejected", func(t *testing.T) {
		svc := NewPhotoService(&MockPhotoRepo{}, &MockAssetRepo{}, &MockBlobStore{}, &MockNotifier{}, 0, zap.NewNop())
		_, err := svc.Attach(context.Background(), model.CategoryRadio, siteID, assetID,
			model.PhotoType("selfie"), header)
		assert.Error(t, err)
	})
}

func TestPhotoService_SiteMap(t *testing.T) {
	siteID := uuid.New()
	assetA := uuid.New()
	assetB := uuid.New()

	stored := []*model.AssetPhoto{
		{ID: uuid.New(), AssetID: assetA, AssetTable: "assets_radio", SiteID: siteID, Type: model.PhotoTypeSerial, ObjectKey: "k1"},
		{ID: uuid.New(), AssetID: assetA, AssetTable: "assets_radio", SiteID: siteID, Type: model.PhotoTypeTag, ObjectKey: "k2"},
		{ID: uuid.New(), AssetID: assetB, AssetTable: "assets_power", SiteID: siteID, Type: model.PhotoTypeSerial, ObjectKey: "k3"},
	}

	t.Run("groups by owning asset with signed urls", func(t *testing.T) {
		photos := &MockPhotoRepo{}
		store := &MockBlobStore{}
		photos.On("ListBySite", mock.Anything, siteID).Return(stored, nil)
		for _, p := range stored {
			store.On("PresignGet", mock.Anything, p.ObjectKey, mock.Anything).
				Return("https://signed/"+p.ObjectKey, nil)
		}

		svc := NewPhotoService(photos, &MockAssetRepo{}, store, &MockNotifier{}, 0, zap.NewNop())
		m, err := svc.SiteMap(context.Background(), siteID)

		assert.NoError(t, err)
		assert.Len(t, m, 2)
		assert.Len(t, m[PhotoMapKey("assets_radio", assetA)], 2)
		assert.Len(t, m[PhotoMapKey("assets_power", assetB)], 1)
		assert.Equal(t, "https://signed/k1", m[PhotoMapKey("assets_radio", assetA)][0].SignedURL)
	})

	t.Run("signing failure degrades that url to empty", func(t *testing.T) {
		photos := &MockPhotoRepo{}
		store := &MockBlobStore{}
		photos.On("ListBySite", mock.Anything, siteID).Return(stored[:2], nil)
		store.On("PresignGet", mock.Anything, "k1", mock.Anything).Return("", errors.New("sts expired"))
		store.On("PresignGet", mock.Anything, "k2", mock.Anything).Return("https://signed/k2", nil)

		svc := NewPhotoService(photos, &MockAssetRepo{}, store, &MockNotifier{}, 0, zap.NewNop())
		m, err := svc.SiteMap(context.Background(), siteID)

		assert.NoError(t, err)
		entries := m[PhotoMapKey("assets_radio", assetA)]
		assert.Empty(t, entries[0].SignedURL)
		assert.Equal(t, "https://signed/k2", entries[1].SignedURL)
	})
}
