package repo

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

func TestSiteRepo_Search(t *testing.T) {
	gdb := newTestDB(t)
	sites := NewSiteRepo(gdb)
	ctx := context.Background()

	for _, s := range []*model.Site{
		{ID: uuid.New(), Name: "North Ridge Tower", Code: "NR-01"},
		{ID: uuid.New(), Name: "South Ridge Tower", Code: "SR-02"},
		{ID: uuid.New(), Name: "Harbour Mast", Code: "HM-03"},
	} {
		assert.NoError(t, sites.Create(ctx, s))
	}

	t.Run("matches name case-insensitively", func(t *testing.T) {
		found, err := sites.Search(ctx, "RIDGE")
		assert.NoError(t, err)
		assert.Len(t, found, 2)
		// Ordered by code.
		assert.Equal(t, "NR-01", found[0].Code)
		assert.Equal(t, "SR-02", found[1].Code)
	})

	t.Run("matches code", func(t *testing.T) {
		found, err := sites.Search(ctx, "hm-")
		assert.NoError(t, err)
		assert.Len(t, found, 1)
		assert.Equal(t, "Harbour Mast", found[0].Name)
	})

	t.Run("no match is an empty list", func(t *testing.T) {
		found, err := sites.Search(ctx, "zzz")
		assert.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestSiteRepo_GetByID(t *testing.T) {
	gdb := newTestDB(t)
	sites := NewSiteRepo(gdb)
	ctx := context.Background()

	site := &model.Site{ID: uuid.New(), Name: "North Ridge Tower", Code: "NR-01"}
	assert.NoError(t, sites.Create(ctx, site))

	found, err := sites.GetByID(ctx, site.ID)
	assert.NoError(t, err)
	assert.Equal(t, site.Code, found.Code)

	_, err = sites.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
