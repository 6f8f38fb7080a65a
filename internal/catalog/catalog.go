// Package catalog serves the read-only storefront data: the product image
// listing and the club-name lookup table.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/footkitshop/storefront/internal/config"
)

// imageExtensions are the file types exposed by the image listing
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

// fallbackClubMap is used when the clubs file is missing or unreadable
var fallbackClubMap = map[string]string{
	"1":   "PSG",
	"2":   "Real Madrid",
	"1.1": "Allemagne",
	"1.2": "France",
}

// ParseError indicates the clubs file exists but could not be decoded. The
// caller still gets the fallback map; the error reports the degradation.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Store reads catalog data from the filesystem at request time
type Store struct {
	imagesDir string
	clubsFile string
	logger    *zap.Logger
}

// NewStore creates a catalog store and ensures the images directory exists
func NewStore(cfg config.CatalogConfig, logger *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.ImagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create images dir: %w", err)
	}
	return &Store{
		imagesDir: cfg.ImagesDir,
		clubsFile: cfg.ClubsFile,
		logger:    logger,
	}, nil
}

// ImagesDir returns the directory static image requests are served from
func (s *Store) ImagesDir() string {
	return s.imagesDir
}

// ListImages returns the sorted filenames of all image assets
func (s *Store) ListImages() ([]string, error) {
	entries, err := os.ReadDir(s.imagesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read images dir: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if hasImageExtension(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

// ClubMap returns the club-name lookup table. When the clubs file is missing
// the built-in fallback is returned silently; when it exists but cannot be
// decoded the fallback is returned together with a *ParseError so the caller
// can log the degradation.
func (s *Store) ClubMap() (map[string]string, error) {
	data, err := os.ReadFile(s.clubsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return cloneMap(fallbackClubMap), nil
		}
		return cloneMap(fallbackClubMap), &ParseError{Path: s.clubsFile, Err: err}
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return cloneMap(fallbackClubMap), &ParseError{Path: s.clubsFile, Err: err}
	}

	// Keys and values both become strings regardless of the JSON types used.
	clubs := make(map[string]string, len(raw))
	for k, v := range raw {
		clubs[k] = fmt.Sprintf("%v", v)
	}

	return clubs, nil
}

func hasImageExtension(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
