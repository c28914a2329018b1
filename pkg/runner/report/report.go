package report

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/printers"
	"tableflip.dev/shelf/pkg/timeutil"
)

// Report lists chapters completed inside a recent window.
type Report struct {
	// Last is a window such as "1w" or "3d".
	Last string
	JSON bool
	Out  io.Writer
	Now  func() time.Time

	Service *app.Service
}

type jsonReport struct {
	Window string `json:"window"`
	app.ReportResult
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return app.ErrNoPersistence
	}
	out := n.Out
	if out == nil {
		out = os.Stdout
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}

	window, label, err := timeutil.ParseWindow(n.Last)
	if err != nil {
		return err
	}
	until := now()
	result, err := n.Service.Report(ctx, timeutil.Since(until, window), until)
	if err != nil {
		return err
	}

	if n.JSON {
		b, err := json.MarshalIndent(jsonReport{Window: label, ReportResult: result}, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))
		return nil
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Report(result, label)
	return nil
}
