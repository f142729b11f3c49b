package assets

import (
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/platefull/recipe-api/internal/core/domain"
)

func TestStore_SaveDataURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	payload := []byte{0x89, 'P', 'N', 'G'}
	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	rel, err := store.SaveDataURL(dataURL)
	if err != nil {
		t.Fatalf("SaveDataURL returned error: %v", err)
	}
	if !strings.HasPrefix(rel, "recipes/") || !strings.HasSuffix(rel, ".png") {
		t.Fatalf("unexpected relative path: %q", rel)
	}

	got, err := os.ReadFile(filepath.Join(dir, rel))
	if err != nil {
		t.Fatalf("reading stored file: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("stored bytes differ from payload")
	}
}

func TestStore_SaveDataURL_Rejects(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore returned error: %v", err)
	}

	cases := []struct {
		name string
		in   string
	}{
		{"not a data URL", "https://example.com/image.png"},
		{"missing payload", "data:image/png;base64"},
		{"not base64 encoded", "data:image/png,rawbytes"},
		{"unsupported type", "data:text/html;base64,PGI+"},
		{"invalid base64", "data:image/png;base64,!!!"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.SaveDataURL(tc.in); !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}
