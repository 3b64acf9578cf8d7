package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	derrors "git.home.luguber.info/inful/siteconf/internal/foundation/errors"
)

//go:embed example.yaml
var exampleConfig []byte

// Example returns the starter configuration written by Init.
func Example() []byte {
	out := make([]byte, len(exampleConfig))
	copy(out, exampleConfig)
	return out
}

// Init writes the starter configuration to path. An existing file is only
// replaced when force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return derrors.ConfigError(fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", path)).
			WithContext("path", path).
			Build()
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to inspect config path").
			WithContext("path", path).
			Build()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to create config directory").
				WithContext("dir", dir).
				Build()
		}
	}
	if err := os.WriteFile(path, exampleConfig, 0o644); err != nil {
		return derrors.WrapError(err, derrors.CategoryFileSystem, "failed to write config file").
			WithContext("path", path).
			Build()
	}
	return nil
}
