package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/store"
)

// Info reports where the collection lives and how big it is.
type Info struct {
	Config  store.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = os.Stdout
	}

	if override := os.Getenv(store.ConfigPathEnv); override != "" {
		_, _ = fmt.Fprintf(out, "%s found on env, using %s\n", store.ConfigPathEnv, override)
	} else {
		_, _ = fmt.Fprintf(out, "%s env var not set\n", store.ConfigPathEnv)
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())

	if n.Service == nil || n.Service.Persistence == nil {
		return errors.New("info: failed to create persistence object")
	}
	books, err := n.Service.Books(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Books: %d\n", len(books))
	return nil
}
