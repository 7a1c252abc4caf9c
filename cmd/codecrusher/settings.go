package main

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var validate = validator.New()

// settings controls the tool itself. The run configuration (provider, model
// and so on) is resolved by the config package and never comes from here.
type settings struct {
	Env    string    `mapstructure:"env"`
	Log    logConfig `mapstructure:"log"`
	Output string    `mapstructure:"output" validate:"required,oneof=text json yaml"`
	Quiet  bool      `mapstructure:"quiet"`
}

type logConfig struct {
	Level string `mapstructure:"level"`
}

// flagToViperKey maps CLI flag names to viper settings keys.
// Flags missing from this map are not settings.
var flagToViperKey = map[string]string{
	"log-level": "log.level",
	"output":    "output",
	"quiet":     "quiet",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("log.level", "info")
	v.SetDefault("output", "text")
	v.SetDefault("quiet", false)
}

// bindFlags binds explicitly set setting flags to viper keys.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey, ok := flagToViperKey[f.Name]
		if !ok || !f.Changed {
			return
		}
		_ = v.BindPFlag(viperKey, f)
	})
}

// loadSettings resolves settings from defaults, CODECRUSHER_* environment
// variables and flags, in increasing precedence.
func loadSettings(v *viper.Viper, flags *pflag.FlagSet) (*settings, error) {
	setDefaults(v)

	v.SetEnvPrefix("CODECRUSHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindFlags(v, flags)

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, &usageError{err: fmt.Errorf("unmarshal settings: %w", err)}
	}

	if err := validate.Struct(&s); err != nil {
		return nil, &usageError{err: fmt.Errorf("validate settings: %w", err)}
	}

	return &s, nil
}
