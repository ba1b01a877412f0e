package objectkey

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyFilename   = errors.New("filename cannot be empty")
	ErrInvalidFilename = errors.New("filename format is invalid")
)

// Build assembles the deterministic storage key for an asset photo:
// {siteID}/{table}/{assetID}/{photoType}/{filename}. Re-uploading the
// same tuple always lands on the same object.
func Build(siteID uuid.UUID, table string, assetID uuid.UUID, photoType string, filename string) string {
	return strings.Join([]string{
		siteID.String(),
		table,
		assetID.String(),
		photoType,
		SanitizeFilename(filename),
	}, "/")
}

// ValidateFilename rejects names that would break out of the key layout.
func ValidateFilename(name string) error {
	if name == "" {
		return ErrEmptyFilename
	}
	if strings.Contains(name, "..") {
		return ErrInvalidFilename
	}
	if strings.ContainsAny(name, "/\\") {
		return ErrInvalidFilename
	}
	if strings.Contains(name, "\x00") {
		return ErrInvalidFilename
	}
	return nil
}

// SanitizeFilename cleans a client-supplied filename into a safe key
// segment. Browsers sometimes send full paths; keep only the base name.
func SanitizeFilename(name string) string {
	if i := strings.LastIndexAny(name, "/\\"); i >= 0 {
		name = name[i+1:]
	}

	name = strings.ReplaceAll(name, "\x00", "_")
	name = strings.TrimSpace(name)

	// Keys starting with dots confuse some object browsers.
	if strings.HasPrefix(name, ".") {
		name = "file_" + strings.TrimLeft(name, ".")
	}
	if name == "" {
		name = "upload"
	}
	return name
}
