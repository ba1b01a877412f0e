package objectkey

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestBuild(t *testing.T) {
	siteID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	assetID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	key := Build(siteID, "assets_radio", assetID, "serial", "front.jpg")
	expected := fmt.Sprintf("%s/assets_radio/%s/serial/front.jpg", siteID, assetID)
	assert.Equal(t, expected, key)

	// Same tuple, same key.
	assert.Equal(t, key, Build(siteID, "assets_radio", assetID, "serial", "front.jpg"))
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		wantErr  error
	}{
		{"valid name", "photo.jpg", nil},
		{"valid with spaces", "site survey 01.png", nil},
		{"empty", "", ErrEmptyFilename},
		{"parent traversal", "../../etc/passwd", ErrInvalidFilename},
		{"double dot in name", "photo..jpg", ErrInvalidFilename},
		{"forward slash", "a/b.jpg", ErrInvalidFilename},
		{"backslash", "a\\b.jpg", ErrInvalidFilename},
		{"null byte", "photo\x00.jpg", ErrInvalidFilename},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.filename)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain name untouched", "photo.jpg", "photo.jpg"},
		{"full windows path reduced to base", "C:\\Users\\tech\\photo.jpg", "photo.jpg"},
		{"unix path reduced to base", "/tmp/upload/photo.jpg", "photo.jpg"},
		{"null bytes replaced", "pho\x00to.jpg", "pho_to.jpg"},
		{"leading dot prefixed", ".hidden", "file_hidden"},
		{"whitespace trimmed", "  photo.jpg  ", "photo.jpg"},
		{"empty becomes placeholder", "", "upload"},
		{"path ending in separator", "dir/", "upload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}
