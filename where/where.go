// Package where resolves the directories and files anicat reads and writes.
// Directories are created on first lookup.
package where

import (
	"os"
	"path/filepath"

	"github.com/anisan-cli/anicat/constant"
	"github.com/anisan-cli/anicat/filesystem"
	"github.com/samber/lo"
)

// Environment variables overriding the platform defaults.
const (
	EnvConfigPath = "ANICAT_CONFIG_PATH"
	EnvCachePath  = "ANICAT_CACHE_PATH"
)

// Envs lists every path override, for `anicat env`.
var Envs = []string{EnvConfigPath, EnvCachePath}

func mkdir(path string) string {
	lo.Must0(filesystem.API().MkdirAll(path, os.ModePerm))
	return path
}

// resolve prefers the env override, then the platform directory from base, then a local fallback.
func resolve(env string, base func() (string, error)) string {
	if custom, ok := os.LookupEnv(env); ok && custom != "" {
		return mkdir(custom)
	}

	dir, err := base()
	if err != nil {
		return mkdir(filepath.Join(".", "."+constant.Anicat))
	}
	return mkdir(filepath.Join(dir, constant.Anicat))
}

// Config is the directory holding anicat.toml, the lists file and logs.
func Config() string {
	return resolve(EnvConfigPath, os.UserConfigDir)
}

// Cache is the directory for data that can be thrown away.
func Cache() string {
	return resolve(EnvCachePath, os.UserCacheDir)
}

func Logs() string {
	return mkdir(filepath.Join(Config(), "logs"))
}

// Lists is the JSON file with the anime, watch and filter lists.
func Lists() string {
	return filepath.Join(Config(), "lists.json")
}

// Browser is where the managed headless browser gets installed.
func Browser() string {
	return mkdir(filepath.Join(Cache(), "browser"))
}
