package common

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/debugctx"
	"github.com/crmarques/restrecord/internal/providers/config/file"
	"github.com/crmarques/restrecord/record"
	"github.com/crmarques/restrecord/transport"
)

// CommandDependencies are the injectable collaborators of every command.
// Zero values select the real filesystem, process environment, catalog file
// and net/http transport.
type CommandDependencies struct {
	Fs        afero.Fs
	Catalog   config.CatalogService
	Transport transport.Transport
	LookupEnv func(string) (string, bool)
}

func (d CommandDependencies) FileSystem() afero.Fs {
	if d.Fs == nil {
		return afero.NewOsFs()
	}
	return d.Fs
}

// OpenCatalog returns the injected catalog or the YAML catalog selected by
// --config, $RESTRECORD_CONFIG or the default path.
func OpenCatalog(deps CommandDependencies, flags *GlobalFlags) (config.CatalogService, error) {
	if deps.Catalog != nil {
		return deps.Catalog, nil
	}
	explicit := ""
	if flags != nil {
		explicit = flags.Config
	}
	path, err := file.ResolveCatalogPath(explicit)
	if err != nil {
		return nil, err
	}
	return file.NewCatalogStore(deps.FileSystem(), path), nil
}

// ResolveResource loads the resource selected by --resource with environment
// overrides applied.
func ResolveResource(deps CommandDependencies, flags *GlobalFlags) (config.Resource, error) {
	catalog, err := OpenCatalog(deps, flags)
	if err != nil {
		return config.Resource{}, err
	}
	name := ""
	if flags != nil {
		name = flags.Resource
	}
	resource, err := catalog.Resolve(name)
	if err != nil {
		return config.Resource{}, err
	}
	if deps.LookupEnv != nil {
		return config.ApplyEnvLookup(resource, deps.LookupEnv), nil
	}
	return config.ApplyEnv(resource), nil
}

// OpenClient builds a record client for the selected resource.
func OpenClient(command *cobra.Command, deps CommandDependencies, flags *GlobalFlags) (*record.Client, error) {
	resource, err := ResolveResource(deps, flags)
	if err != nil {
		return nil, err
	}

	opts := []record.Option{
		record.WithFs(deps.FileSystem()),
		record.WithLogger(debugctx.Logger(command.Context())),
	}
	if deps.Transport != nil {
		opts = append(opts, record.WithTransport(deps.Transport))
	}
	return record.NewClient(resource, opts...)
}
