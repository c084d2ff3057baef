package parse

import (
	"encoding/json"
	"fmt"

	"github.com/kcmvp/urlq"
	"github.com/spf13/cobra"
)

type location struct {
	Path     string         `json:"path"`
	Fragment *string        `json:"fragment"`
	Query    *urlq.FieldMap `json:"query"`
}

// New returns the `parse` command.
func New() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <href>",
		Short: "Print the path, query fields and fragment of an address as JSON.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := urlq.ParseLocation(args[0])
			out := location{Path: loc.Path, Query: loc.Query}
			if f, ok := loc.Fragment.Get(); ok {
				out.Fragment = &f
			}
			bts, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return fmt.Errorf("encode location: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(bts))
			return err
		},
	}
}
