package configutil

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

func localName(name string) string {
	prefix, ext := splitExt(filepath.Base(name))
	if ext == "" {
		return filepath.Join(filepath.Dir(name), prefix+".local")
	}
	return filepath.Join(filepath.Dir(name), fmt.Sprintf("%s.local.%s", prefix, ext))
}

func readLayer[T any](path string, out *T) (bool, error) {
	contents, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(contents) == 0 {
		return false, nil
	}

	var layer T
	err = json5.Unmarshal(contents, &layer)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	err = mergo.Merge(out, layer, mergo.WithOverride)
	if err != nil {
		return false, fmt.Errorf("merge %s: %w", path, err)
	}
	return true, nil
}

// ReadConfig reads a json5 configuration file on top of `defaults`.
//
// The following files are merged, where a higher number takes priority:
//  0. defaults
//  1. <name>.<ext>
//  2. <name>.local.<ext>
//
// If neither file exists the defaults are returned together with os.ErrNotExist.
func ReadConfig[T any](name string, defaults T) (T, error) {
	out := defaults

	foundDefault, err := readLayer(name, &out)
	if err != nil {
		return defaults, err
	}

	local := localName(name)
	foundLocal, err := readLayer(local, &out)
	if err != nil {
		return defaults, err
	}
	if foundLocal {
		slog.Debug("merging config with local overrides", "local", local)
	}

	if !foundDefault && !foundLocal {
		return defaults, os.ErrNotExist
	}
	return out, nil
}

// ReadOptional is ReadConfig that treats missing files as "use the defaults".
func ReadOptional[T any](name string, defaults T) (T, error) {
	out, err := ReadConfig(name, defaults)
	if os.IsNotExist(err) {
		return defaults, nil
	}
	return out, err
}

// ReadRecursively walks up the filesystem from the cwd until it finds
// a configuration file matching `name`.
func ReadRecursively[T any](name string, defaults T) (T, error) {
	root, err := filepath.Abs("/")
	if err != nil {
		return defaults, err
	}
	current, err := os.Getwd()
	if err != nil {
		return defaults, err
	}

	for {
		config, err := ReadConfig(filepath.Join(current, name), defaults)
		if err == nil {
			return config, nil
		}
		if !os.IsNotExist(err) {
			return defaults, err
		}
		if current == root {
			return defaults, os.ErrNotExist
		}
		current = filepath.Dir(current)
	}
}
