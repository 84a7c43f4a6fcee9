package config

import (
	"errors"

	"github.com/kkyr/fig"
)

const EnvPrefix = "SLIDECAST"

// LoadConfig loads the configuration from an optional config.yaml
// found in the current directory or ./configs.
// Environment variables with the SLIDECAST_ prefix override file
// values; params should be in uppercase separated with _.
func LoadConfig(config any) error {
	err := fig.Load(config, fig.Dirs(".", "configs"), fig.UseEnv(EnvPrefix))
	if err != nil && errors.Is(err, fig.ErrFileNotFound) {
		return fig.Load(config, fig.IgnoreFile(), fig.UseEnv(EnvPrefix))
	}
	return err
}
