package options

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/shelf/pkg/editor"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	// Out defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as a JSON object when --json is set and swallows
// it; otherwise err is returned unchanged.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	out := map[string]string{
		"error": err.Error(),
	}
	var verr *editor.ValidationError
	if errors.As(err, &verr) {
		out["field"] = verr.Field.String()
	}
	b, merr := json.Marshal(out)
	if merr != nil {
		return merr
	}
	w := o.Out
	if w == nil {
		w = color.Output
	}
	_, _ = fmt.Fprintln(w, string(b))
	return nil
}
