package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/printers"
)

// Stats prints the collection totals.
type Stats struct {
	JSON bool
	Out  io.Writer

	Service *app.Service
}

func (n *Stats) Do(ctx context.Context) error {
	if n.Service == nil {
		return app.ErrNoPersistence
	}
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	st, err := n.Service.Stats(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		b, err := json.Marshal(st)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Stats(st)
	return nil
}
