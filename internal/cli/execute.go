package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/crmarques/restrecord/config"
	"github.com/crmarques/restrecord/faults"
	"github.com/crmarques/restrecord/internal/cli/common"
	"github.com/crmarques/restrecord/transport"
)

// Dependencies lets callers replace the filesystem, catalog, transport and
// environment. The zero value runs against the real system.
type Dependencies struct {
	Fs        afero.Fs
	Catalog   config.CatalogService
	Transport transport.Transport
	LookupEnv func(string) (string, bool)
}

func (d Dependencies) commandDependencies() common.CommandDependencies {
	return common.CommandDependencies{
		Fs:        d.Fs,
		Catalog:   d.Catalog,
		Transport: d.Transport,
		LookupEnv: d.LookupEnv,
	}
}

func Execute(ctx context.Context, deps Dependencies) error {
	root := NewRootCommand(deps)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(root.ErrOrStderr(), strings.TrimSpace(err.Error()))
		return err
	}
	return nil
}

func ExitCodeForError(err error) int {
	if err == nil {
		return 0
	}

	var typedErr *faults.TypedError
	if !errors.As(err, &typedErr) {
		return 1
	}

	switch typedErr.Category {
	case faults.ValidationError, faults.InvalidMethodError:
		return 2
	case faults.NotFoundError:
		return 3
	case faults.AuthError:
		return 4
	case faults.ServerError:
		return 5
	case faults.TransportError:
		return 6
	default:
		return 1
	}
}
