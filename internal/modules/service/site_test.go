package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

func TestSiteService_Search(t *testing.T) {
	t.Run("empty query issues no repo call", func(t *testing.T) {
		sites := &MockSiteRepo{}

		svc := NewSiteService(sites)
		result, err := svc.Search(context.Background(), "")

		assert.NoError(t, err)
		assert.Empty(t, result)
		sites.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("whitespace-only query issues no repo call", func(t *testing.T) {
		sites := &MockSiteRepo{}

		svc := NewSiteService(sites)
		result, err := svc.Search(context.Background(), "   ")

		assert.NoError(t, err)
		assert.Empty(t, result)
		sites.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
	})

	t.Run("trims before searching", func(t *testing.T) {
		sites := &MockSiteRepo{}
		found := []*model.Site{{ID: uuid.New(), Name: "North Ridge", Code: "NR-01"}}
		sites.On("Search", mock.Anything, "ridge").Return(found, nil)

		svc := NewSiteService(sites)
		result, err := svc.Search(context.Background(), "  ridge ")

		assert.NoError(t, err)
		assert.Equal(t, found, result)
		sites.AssertExpectations(t)
	})
}
