package config

type CatalogReader interface {
	Load() (Catalog, error)
	Resolve(name string) (Resource, error)
}

type CatalogWriter interface {
	Add(resource Resource, replace bool) error
	Save(catalog Catalog) error
}

// CatalogService is what the CLI needs from a persisted catalog.
type CatalogService interface {
	CatalogReader
	CatalogWriter
	Path() string
}
