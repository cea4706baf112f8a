package configloader

import (
	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/cornlog"
	"github.com/hyp3rd/cornlog/internal/constants"
	"github.com/hyp3rd/cornlog/internal/utils"
)

type rawConfig struct {
	// Store is only enabled by the exact string "true".
	Store    string `mapstructure:"-"                yaml:"store"`
	Dir      string `mapstructure:"dir"              yaml:"dir"`
	Level    string `mapstructure:"level"            yaml:"level"`
	MaxDepth *int   `mapstructure:"max_depth"        yaml:"max_depth"`
	Timezone string `mapstructure:"timezone"         yaml:"timezone"`
	Color    struct {
		Enable   *bool `mapstructure:"enable"    yaml:"enable"`
		ForceTTY *bool `mapstructure:"force_tty" yaml:"force_tty"`
	} `mapstructure:"color" yaml:"color"`
}

func applyRaw(raw rawConfig) (*cornlog.Config, error) {
	cfg := cornlog.DefaultConfig()

	cfg.Store = raw.Store == "true"

	if raw.Dir != "" {
		cfg.Dir = raw.Dir
	}

	dir, err := utils.ResolveDir(cfg.Dir)
	if err != nil {
		return nil, err
	}

	cfg.Dir = dir

	if raw.Level != "" {
		level, err := cornlog.ParseLevel(raw.Level)
		if err != nil {
			return nil, ewrap.Wrap(err, "invalid level").WithMetadata("level", raw.Level)
		}

		cfg.Level = level
	}

	if raw.MaxDepth != nil {
		if *raw.MaxDepth <= 0 {
			return nil, ewrap.New("max depth must be positive").WithMetadata("max_depth", *raw.MaxDepth)
		}

		cfg.MaxDepth = *raw.MaxDepth
	}

	if raw.Timezone != "" {
		loc, err := cornlog.LoadLocation(raw.Timezone)
		if err != nil {
			return nil, err
		}

		cfg.Location = loc
	}

	if raw.Color.Enable != nil {
		cfg.Color.Enable = *raw.Color.Enable
	}

	if raw.Color.ForceTTY != nil {
		cfg.Color.ForceTTY = *raw.Color.ForceTTY
	}

	return &cfg, nil
}

func allKeys() []string {
	return []string{
		constants.KeyStore,
		constants.KeyDir,
		constants.KeyLevel,
		constants.KeyColorEnable,
		constants.KeyColorForceTTY,
		constants.KeyMaxDepth,
		constants.KeyTimezone,
	}
}

// envNames maps each key to its environment variable. Storage keys are shared
// with other tools and carry no prefix.
func envNames(prefix string) map[string]string {
	return map[string]string{
		constants.KeyStore:         constants.EnvStore,
		constants.KeyDir:           constants.EnvDir,
		constants.KeyLevel:         prefix + "_" + constants.EnvLevelSuffix,
		constants.KeyColorEnable:   prefix + "_" + constants.EnvColorEnableSuffix,
		constants.KeyColorForceTTY: prefix + "_" + constants.EnvColorForceSuffix,
		constants.KeyMaxDepth:      prefix + "_" + constants.EnvMaxDepthSuffix,
		constants.KeyTimezone:      prefix + "_" + constants.EnvTimezoneSuffix,
	}
}
