package utils

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// GenerateAssetName derives a storage-safe filename from an uploaded filename:
// the slugified base name, a short random suffix and the lowercased extension.
// "My Card!.PNG" becomes something like "my-card-1f3a9c2e.png".
func GenerateAssetName(uploadName string) string {
	base := filepath.Base(strings.ReplaceAll(uploadName, "\\", "/"))
	ext := strings.ToLower(filepath.Ext(base))
	stem := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if stem == "" {
		stem = "card"
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s-%s%s", stem, suffix, ext)
}
