package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

const (
	cfgName     = "application"
	testCfgName = "application_test"
)

var configExts = []string{".yml", ".yaml"}

var (
	cfg  *viper.Viper
	once sync.Once
)

// Config loads the application configuration.
//
// Rules:
//  1. Under `go test` it looks for application_test.yml, otherwise application.yml.
//  2. It searches the project root, the CWD and their ./config, in that order.
//
// A missing config file is not an error; an empty configuration is returned.
func Config() mo.Result[*viper.Viper] {
	once.Do(func() {
		cfg, _ = loadViper(false)
	})
	return lo.If(cfg == nil, mo.Err[*viper.Viper](fmt.Errorf("can not find application.yml"))).Else(mo.Ok(cfg))
}

func loadViper(required bool) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	addDefaultConfigPaths(v)

	name := cfgName
	if isTestProcess() {
		name = testCfgName
	}
	cwd, _ := os.Getwd()

	tryRead := func(cand string) bool {
		if _, err := os.Stat(cand); err == nil {
			v.SetConfigFile(cand)
			if err := v.ReadInConfig(); err == nil {
				return true
			}
		}
		return false
	}

	dirs := []string{cwd, filepath.Join(cwd, "config")}
	if root, ok := findProjectRoot(cwd); ok {
		dirs = append([]string{root, filepath.Join(root, "config")}, dirs...)
	}
	for _, dir := range dirs {
		for _, ext := range configExts {
			if tryRead(filepath.Join(dir, name+ext)) {
				return v, nil
			}
		}
	}

	v.SetConfigName(name)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !required && errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return v, nil
}

// addDefaultConfigPaths makes viper search the project root (nearest parent holding go.mod),
// the CWD and the ./config directory of both. Viper resolves relative paths against the CWD,
// which differs between `go test`, the IDE and an installed binary.
func addDefaultConfigPaths(v *viper.Viper) {
	cwd, err := os.Getwd()
	if err != nil {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		return
	}
	if root, ok := findProjectRoot(cwd); ok {
		v.AddConfigPath(root)
		v.AddConfigPath(filepath.Join(root, "config"))
	}
	v.AddConfigPath(cwd)
	v.AddConfigPath(filepath.Join(cwd, "config"))
}

// findProjectRoot walks upward from start until it finds a directory containing a go.mod.
func findProjectRoot(start string) (string, bool) {
	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// isTestProcess detects whether we are running under `go test`, first from the -test.* flags
// and then from the *_test.go frames on the stack.
func isTestProcess() bool {
	for _, a := range os.Args {
		if strings.HasPrefix(a, "-test.") {
			return true
		}
	}
	const maxFrames = 256
	pcs := make([]uintptr, maxFrames)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if strings.HasSuffix(f.File, "_test.go") {
			return true
		}
		if !more {
			break
		}
	}
	return false
}
