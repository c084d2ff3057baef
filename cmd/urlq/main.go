package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/kcmvp/urlq/cmd/internal"
	"github.com/kcmvp/urlq/cmd/urlq/parse"
	"github.com/kcmvp/urlq/cmd/urlq/set"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "urlq",
		Short: "urlq sets query fields on an address.",
		Long: `urlq merges query fields into an address and prints the address that
replaces it, the way a browser application rewrites its location without a reload.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool(internal.FlagVerbose, false, "log every built address to stderr")
	root.AddCommand(set.New())
	root.AddCommand(parse.New())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		color.Red("Error: %v", err)
		os.Exit(1)
	}
}
