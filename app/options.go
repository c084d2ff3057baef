package app

import (
	"fmt"

	"github.com/kcmvp/urlq"
	"github.com/samber/mo"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	keySaveOld         = "urlq.saveOld"
	keySaveHash        = "urlq.saveHash"
	keySaveEmptyFields = "urlq.saveEmptyFields"
	keyCollision       = "urlq.collision"
	keyTitle           = "urlq.title"
)

// Options returns the urlq options configured in the `urlq` section of the
// application configuration. Keys that are not set keep the urlq defaults.
//
//	urlq:
//	  saveOld: true
//	  saveHash: true
//	  saveEmptyFields: false
//	  collision: combine
//	  title: Search
func Options() mo.Result[[]urlq.Option] {
	res := Config()
	if res.IsError() {
		return mo.Err[[]urlq.Option](res.Error())
	}
	return mo.TupleToResult(OptionsFrom(res.MustGet()))
}

// OptionsFrom reads the `urlq` section of v.
func OptionsFrom(v *viper.Viper) ([]urlq.Option, error) {
	var opts []urlq.Option
	flags := []struct {
		key string
		opt func(bool) urlq.Option
	}{
		{keySaveOld, urlq.WithSaveOld},
		{keySaveHash, urlq.WithSaveHash},
		{keySaveEmptyFields, urlq.WithSaveEmptyFields},
	}
	for _, f := range flags {
		if !v.IsSet(f.key) {
			continue
		}
		b, err := cast.ToBoolE(v.Get(f.key))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.key, err)
		}
		opts = append(opts, f.opt(b))
	}
	if v.IsSet(keyCollision) {
		c, err := urlq.ParseCollision(cast.ToString(v.Get(keyCollision)))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keyCollision, err)
		}
		opts = append(opts, urlq.WithCollision(c))
	}
	if v.IsSet(keyTitle) {
		opts = append(opts, urlq.WithTitle(cast.ToString(v.Get(keyTitle))))
	}
	return opts, nil
}
