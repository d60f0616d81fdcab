package file

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/yamlutil"
)

func decodeCatalog(data []byte) (config.Catalog, error) {
	var catalog config.Catalog
	if len(bytes.TrimSpace(data)) == 0 {
		return catalog, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		return config.Catalog{}, validationError("invalid resource catalog yaml", err)
	}
	return catalog, nil
}

func encodeCatalog(catalog config.Catalog) ([]byte, error) {
	return yamlutil.Marshal(catalog)
}

// ResolveCatalogPath picks the explicit path, then the RESTRECORD_CONFIG
// environment variable, then the default under the home directory. A leading
// "~" is expanded and relative paths are anchored at the home directory.
func ResolveCatalogPath(explicitPath string) (string, error) {
	return resolveCatalogPath(explicitPath, os.Getenv, os.UserHomeDir)
}

func resolveCatalogPath(explicitPath string, getenv func(string) string, homeDir func() (string, error)) (string, error) {
	path := strings.TrimSpace(explicitPath)
	if path == "" {
		path = strings.TrimSpace(getenv(config.CatalogFileEnvVar))
	}
	if path == "" {
		path = config.DefaultCatalogPath
	}

	home, err := homeDir()
	if err != nil {
		return "", internalError("failed to resolve user home directory", err)
	}

	if path == "~" {
		path = home
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
	}

	cleanPath := filepath.Clean(path)
	if cleanPath == "." {
		return "", validationError("resource catalog path is invalid", errors.New("resolved to current directory"))
	}
	if !filepath.IsAbs(cleanPath) {
		cleanPath = filepath.Join(home, cleanPath)
	}
	return cleanPath, nil
}
