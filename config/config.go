// Package config registers every configuration key with its default and loads overrides
// from the environment and the toml config file through viper.
package config

import (
	"errors"
	"strings"

	"github.com/anisan-cli/anicat/constant"
	"github.com/anisan-cli/anicat/filesystem"
	"github.com/anisan-cli/anicat/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer maps config keys to environment variable suffixes.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup loads defaults, binds environment variables and reads the config file if there is one.
func Setup() error {
	viper.SetConfigName(constant.Anicat)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Anicat)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, k := range EnvExposed {
		viper.MustBindEnv(k)
	}

	viper.SetTypeByDefaultValue(true)
	for k, field := range Default {
		viper.SetDefault(k, field.Value)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return nil
	}
	return err
}

// Set parses raw for the field registered under k and stores the result in viper.
// Call Save to persist it.
func Set(k string, raw []string) (any, error) {
	field, err := Lookup(k)
	if err != nil {
		return nil, err
	}

	v, err := field.Parse(raw)
	if err != nil {
		return nil, err
	}

	viper.Set(k, v)
	return v, nil
}

// Restore sets k back to its default value. Call Save to persist it.
func Restore(k string) error {
	field, err := Lookup(k)
	if err != nil {
		return err
	}

	viper.Set(k, field.Value)
	return nil
}

// Save writes viper's state to the config file, creating it when missing.
func Save() error {
	err := viper.WriteConfig()
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return viper.SafeWriteConfig()
	}
	return err
}
