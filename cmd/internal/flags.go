package internal

import (
	"fmt"
	"log/slog"

	"github.com/kcmvp/urlq"
	"github.com/kcmvp/urlq/app"
	"github.com/kcmvp/urlq/store"
	"github.com/spf13/cobra"
)

const (
	FlagSaveOld   = "save-old"
	FlagSaveHash  = "save-hash"
	FlagSaveEmpty = "save-empty"
	FlagCollision = "collision"
	FlagTitle     = "title"
	FlagVerbose   = "verbose"
)

// AddOptionFlags registers the flags that override the configured urlq options.
func AddOptionFlags(cmd *cobra.Command) {
	d := urlq.DefaultOptions()
	cmd.Flags().Bool(FlagSaveOld, d.SaveOld, "merge with the query already in the address")
	cmd.Flags().Bool(FlagSaveHash, d.SaveHash, "keep the fragment of the address")
	cmd.Flags().Bool(FlagSaveEmpty, d.SaveEmptyFields, "keep fields with empty values")
	cmd.Flags().String(FlagCollision, d.Collision.String(), "how a key present in both queries is merged: keep-new or combine")
	cmd.Flags().String(FlagTitle, "", "title handed to the address writer")
}

// Options returns the urlq options of the application configuration overridden by the flags
// the user set explicitly. With --verbose the built addresses and the SQL of the store are
// logged to stderr.
func Options(cmd *cobra.Command) ([]urlq.Option, error) {
	res := app.Options()
	if res.IsError() {
		return nil, fmt.Errorf("load configuration: %w", res.Error())
	}
	opts := res.MustGet()
	flags := cmd.Flags()
	for name, opt := range map[string]func(bool) urlq.Option{
		FlagSaveOld:   urlq.WithSaveOld,
		FlagSaveHash:  urlq.WithSaveHash,
		FlagSaveEmpty: urlq.WithSaveEmptyFields,
	} {
		if !flags.Changed(name) {
			continue
		}
		b, err := flags.GetBool(name)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt(b))
	}
	if flags.Changed(FlagCollision) {
		s, _ := flags.GetString(FlagCollision)
		c, err := urlq.ParseCollision(s)
		if err != nil {
			return nil, err
		}
		opts = append(opts, urlq.WithCollision(c))
	}
	if flags.Changed(FlagTitle) {
		s, _ := flags.GetString(FlagTitle)
		opts = append(opts, urlq.WithTitle(s))
	}
	var logger *slog.Logger
	if verbose, _ := cmd.Flags().GetBool(FlagVerbose); verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, urlq.WithLogger(logger))
	}
	store.SetSQLLogger(logger)
	return opts, nil
}
