// Package iofs manages the directories and files xsdinfer reads and
// writes.
package iofs

import (
	_ "embed"
	"os"
	"path/filepath"

	"github.com/gnames/gnsys"
	"github.com/gnames/xsdinfer/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.CacheDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := gnsys.MakeDir(dir); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

// CreateFile creates or truncates path, making its parent directory
// when needed.
func CreateFile(path string) (*os.File, error) {
	if err := touchDir(filepath.Dir(path)); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, CreateFileError(path, err)
	}
	return f, nil
}

// WriteFile writes data to path, making its parent directory when
// needed.
func WriteFile(path string, data []byte) error {
	if err := touchDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WriteFileError(path, err)
	}
	return nil
}
