// Package assets stores uploaded images on the local filesystem.
package assets

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/platefull/recipe-api/internal/core/domain"
)

var extensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store writes decoded image payloads under a media directory and hands back
// the relative path that gets persisted on the recipe.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(filepath.Join(dir, "recipes"), 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveDataURL decodes a "data:<mime>;base64,<payload>" URL and writes the
// bytes to a randomly named file. The payload is stored as-is.
func (s *Store) SaveDataURL(dataURL string) (string, error) {
	mime, payload, err := splitDataURL(dataURL)
	if err != nil {
		return "", err
	}

	ext, ok := extensions[mime]
	if !ok {
		return "", domain.Validationf("unsupported image type %q", mime)
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", domain.Validationf("image is not valid base64")
	}

	name, err := randomName()
	if err != nil {
		return "", err
	}

	rel := filepath.Join("recipes", name+ext)
	if err := os.WriteFile(filepath.Join(s.dir, rel), raw, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return rel, nil
}

func splitDataURL(dataURL string) (mime, payload string, err error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return "", "", domain.Validationf("image must be a data URL")
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", "", domain.Validationf("image must be a data URL")
	}
	mime, ok = strings.CutSuffix(header, ";base64")
	if !ok {
		return "", "", domain.Validationf("image data URL must be base64 encoded")
	}
	return mime, payload, nil
}

func randomName() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("random name: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}
