package set

import (
	"fmt"
	"io"

	"github.com/kcmvp/urlq"
	"github.com/kcmvp/urlq/cmd/internal"
	"github.com/kcmvp/urlq/store"
	"github.com/spf13/cobra"
)

const (
	flagSession = "session"
	flagSuffix  = "suffix"
)

// New returns the `set` command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <href> [json]",
		Short: "Set the fields of a JSON object on an address and print the resulting address.",
		Long: `Set the fields of a flat JSON object on an address. Array values are flattened and
repeated as key=value pairs. Pass "-" to read the object from stdin; no argument clears
the fields that are not kept from the address.

With --session the address is read from and written back to the configured datasource;
href is then the address a new session starts from.`,
		Example: `  urlq set 'https://example.com/list?page=2#top' '{"tag":["go","web"]}'
  urlq set --session tab-1 /list '{"q":"go"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: run,
	}
	cmd.Flags().String(flagSession, "", "session whose stored address is updated")
	cmd.Flags().Bool(flagSuffix, false, "print the suffix instead of the full address")
	internal.AddOptionFlags(cmd)
	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	href, raw := args[0], "null"
	if len(args) == 2 {
		raw = args[1]
	}
	if raw == "-" {
		bts, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		raw = string(bts)
	}
	res := urlq.ParseJSON(raw)
	if res.IsError() {
		return fmt.Errorf("query: %w", res.Error())
	}
	opts, err := internal.Options(cmd)
	if err != nil {
		return err
	}
	session, _ := cmd.Flags().GetString(flagSession)
	suffixOnly, _ := cmd.Flags().GetBool(flagSuffix)

	var out string
	if session == "" {
		loc := urlq.ParseLocation(href)
		w := urlq.WriterFunc(func(suffix, _ string) error {
			out = suffix
			if !suffixOnly {
				out = urlq.Resolve(loc, suffix)
			}
			return nil
		})
		if err := urlq.SetQuery(loc, res.MustGet(), w, opts...); err != nil {
			return err
		}
	} else {
		if out, err = setSession(cmd, session, href, res.MustGet(), opts); err != nil {
			return err
		}
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
	return err
}

func setSession(cmd *cobra.Command, id, home string, in urlq.Input, opts []urlq.Option) (string, error) {
	st, err := store.Default()
	if err != nil {
		return "", fmt.Errorf("open store: %w", err)
	}
	if err := st.Migrate(cmd.Context()); err != nil {
		return "", err
	}
	sess := st.Session(cmd.Context(), id, home)
	if err := urlq.Apply(sess, in, opts...); err != nil {
		return "", err
	}
	return sess.Href()
}
