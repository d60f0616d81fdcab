// Package file persists the resource catalog as YAML.
package file

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"

	"github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/faults"
)

var _ config.CatalogService = (*CatalogStore)(nil)

type CatalogStore struct {
	fs   afero.Fs
	path string
}

// NewCatalogStore binds an already resolved path on fs.
func NewCatalogStore(fs afero.Fs, path string) *CatalogStore {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &CatalogStore{fs: fs, path: path}
}

func (s *CatalogStore) Path() string {
	return s.path
}

// Load reads the catalog. A missing file is an empty catalog.
func (s *CatalogStore) Load() (config.Catalog, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Catalog{}, nil
		}
		return config.Catalog{}, internalError("failed to read resource catalog "+s.path, err)
	}
	catalog, err := decodeCatalog(data)
	if err != nil {
		return config.Catalog{}, err
	}
	if err := validateCatalog(catalog); err != nil {
		return config.Catalog{}, err
	}
	return catalog, nil
}

// Resolve loads the catalog and returns the named resource merged over the
// catalog defaults.
func (s *CatalogStore) Resolve(name string) (config.Resource, error) {
	catalog, err := s.Load()
	if err != nil {
		return config.Resource{}, err
	}
	return catalog.Resolve(name)
}

// Add appends resource to the catalog, or replaces the entry with the same
// name when replace is set.
func (s *CatalogStore) Add(resource config.Resource, replace bool) error {
	catalog, err := s.Load()
	if err != nil {
		return err
	}

	resource.Name = strings.TrimSpace(resource.Name)
	if resource.Name == "" {
		return validationError("resource name must not be empty", nil)
	}
	for idx, item := range catalog.Resources {
		if !strings.EqualFold(item.Name, resource.Name) {
			continue
		}
		if !replace {
			return validationError("resource "+resource.Name+" already exists", nil)
		}
		catalog.Resources[idx] = resource
		return s.Save(catalog)
	}
	catalog.Resources = append(catalog.Resources, resource)
	return s.Save(catalog)
}

// Save validates and atomically replaces the catalog file with mode 0600.
func (s *CatalogStore) Save(catalog config.Catalog) error {
	if err := validateCatalog(catalog); err != nil {
		return err
	}
	encoded, err := encodeCatalog(catalog)
	if err != nil {
		return internalError("failed to encode resource catalog", err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return internalError("failed to create resource catalog directory", err)
	}

	tempFile, err := afero.TempFile(s.fs, dir, ".restrecord-resources-*")
	if err != nil {
		return internalError("failed to create temporary resource catalog file", err)
	}
	tempPath := tempFile.Name()

	if _, err := tempFile.Write(encoded); err != nil {
		_ = tempFile.Close()
		_ = s.fs.Remove(tempPath)
		return internalError("failed to write resource catalog", err)
	}
	if err := tempFile.Close(); err != nil {
		_ = s.fs.Remove(tempPath)
		return internalError("failed to finalize resource catalog", err)
	}
	if err := s.fs.Chmod(tempPath, 0o600); err != nil {
		_ = s.fs.Remove(tempPath)
		return internalError("failed to set resource catalog permissions", err)
	}
	if err := s.fs.Rename(tempPath, s.path); err != nil {
		_ = s.fs.Remove(tempPath)
		return internalError("failed to replace resource catalog", err)
	}
	return nil
}

// validateCatalog rejects duplicate or empty names. Per-resource settings are
// validated when a client is built, after defaults and env overrides apply.
func validateCatalog(catalog config.Catalog) error {
	seen := map[string]struct{}{}
	for idx, item := range catalog.Resources {
		name := strings.ToLower(strings.TrimSpace(item.Name))
		if name == "" {
			return validationError("resource at index "+strconv.Itoa(idx)+" has no name", nil)
		}
		if _, exists := seen[name]; exists {
			return validationError("resource "+item.Name+" is defined more than once", nil)
		}
		seen[name] = struct{}{}
	}
	return nil
}

func validationError(message string, cause error) error {
	return faults.NewTypedError(faults.ValidationError, message, cause)
}

func internalError(message string, cause error) error {
	return faults.NewTypedError(faults.InternalError, message, cause)
}
