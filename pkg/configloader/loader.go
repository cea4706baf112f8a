// Package configloader builds cornlog configurations from the environment and from
// YAML documents using Viper.
//
// The storage toggles keep their historical names: LOG_STORE enables the daily file
// only when set to exactly "true", LOG_DIR selects its directory (default "logs",
// resolved against the working directory). Every other setting is read from
// <PREFIX>_LEVEL, <PREFIX>_COLOR_ENABLE, <PREFIX>_COLOR_FORCE_TTY, <PREFIX>_MAX_DEPTH
// and <PREFIX>_TIMEZONE, with CORNLOG as the default prefix.
package configloader

import (
	"bytes"
	"strings"

	"github.com/hyp3rd/ewrap"
	"github.com/spf13/viper"

	"github.com/hyp3rd/cornlog"
	"github.com/hyp3rd/cornlog/internal/constants"
)

// FromEnv loads configuration sourced from environment variables using the provided prefix.
func FromEnv(prefix string) (*cornlog.Config, error) {
	viperInstance := viper.New()

	err := bindEnvironment(viperInstance, normalizePrefix(prefix))
	if err != nil {
		return nil, err
	}

	raw, err := loadRawFromViper(viperInstance)
	if err != nil {
		return nil, err
	}

	return applyRaw(raw)
}

// FromYAML loads configuration from a YAML document provided as bytes.
func FromYAML(data []byte) (*cornlog.Config, error) {
	viperInstance := viper.New()
	viperInstance.SetConfigType("yaml")

	err := viperInstance.ReadConfig(bytes.NewReader(data))
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read YAML configuration")
	}

	raw, err := loadRawFromViper(viperInstance)
	if err != nil {
		return nil, err
	}

	return applyRaw(raw)
}

// FromFile loads configuration from a YAML file and merges environment overrides using the default prefix.
func FromFile(path string) (*cornlog.Config, error) {
	viperInstance := viper.New()

	err := bindEnvironment(viperInstance, constants.DefaultEnvPrefix)
	if err != nil {
		return nil, err
	}

	viperInstance.SetConfigFile(path)

	err = viperInstance.ReadInConfig()
	if err != nil {
		return nil, ewrap.Wrap(err, "failed to read configuration file").
			WithMetadata("path", path)
	}

	raw, err := loadRawFromViper(viperInstance)
	if err != nil {
		return nil, err
	}

	return applyRaw(raw)
}

// Load reads path when given, the environment otherwise.
func Load(path string) (*cornlog.Config, error) {
	if strings.TrimSpace(path) == "" {
		return FromEnv(constants.DefaultEnvPrefix)
	}

	return FromFile(path)
}

func loadRawFromViper(viperInstance *viper.Viper) (rawConfig, error) {
	var raw rawConfig

	// Re-set the values Viper only knows through environment bindings so that
	// nested keys are visible to Unmarshal.
	for _, key := range allKeys() {
		if !viperInstance.IsSet(key) {
			continue
		}

		viperInstance.Set(key, viperInstance.Get(key))
	}

	err := viperInstance.Unmarshal(&raw)
	if err != nil {
		return rawConfig{}, ewrap.Wrap(err, "failed to decode configuration")
	}

	raw.Store = strings.TrimSpace(viperInstance.GetString(constants.KeyStore))

	return raw, nil
}

func bindEnvironment(viperInstance *viper.Viper, prefix string) error {
	errorGroup := ewrap.NewErrorGroup()

	for key, env := range envNames(prefix) {
		err := viperInstance.BindEnv(key, env)
		if err != nil {
			errorGroup.Add(ewrap.Wrap(err, "failed to bind environment key").
				WithMetadata("key", key).
				WithMetadata("env", env))
		}
	}

	if errorGroup.HasErrors() {
		return errorGroup
	}

	return nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return constants.DefaultEnvPrefix
	}

	prefix = strings.TrimSuffix(prefix, "_")
	prefix = strings.ReplaceAll(prefix, "-", "_")

	return strings.ToUpper(prefix)
}
