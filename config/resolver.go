package config

import (
	"errors"
	"log/slog"

	"github.com/sagarc03/codecrusher"
)

// Resolver loads the config file and merges it with command-line arguments,
// logging every problem it recovers from.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver returns a Resolver that logs to logger.
// A nil logger uses slog.Default().
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// LoadFile reads the config file at path. It never fails: a missing or
// unreadable file yields an empty FileConfig, and invalid fields are dropped.
func (r *Resolver) LoadFile(path string) FileConfig {
	cfg, fieldErrs, err := ReadFile(path)
	switch {
	case errors.Is(err, ErrConfigNotFound):
		r.logger.Warn("config file not found", "file", path)
		return FileConfig{}
	case errors.Is(err, ErrConfigMalformed):
		r.logger.Error("error parsing config file", "file", path, "err", err)
		return FileConfig{}
	case err != nil:
		r.logger.Error("error loading config file", "file", path, "err", err)
		return FileConfig{}
	}

	for _, fe := range fieldErrs {
		r.logger.Warn("invalid config field", "field", fe.Field, "value", fe.Value, "reason", fe.Reason)
	}

	if len(cfg.Extra) > 0 {
		r.logger.Debug("passing through unknown config keys", "keys", cfg.ExtraKeys())
	}

	r.logger.Info("loaded configuration", "file", path)
	return cfg
}

// Resolve loads the config file named by args and merges it with args.
func (r *Resolver) Resolve(args Args) codecrusher.Config {
	fileCfg := r.LoadFile(args.ConfigFile())
	cfg := Merge(args, fileCfg)

	fields := cfg.Fields()
	r.logger.Info("final configuration", "fields", len(fields))
	for _, f := range fields {
		r.logger.Info("config value", "key", f.Key, "value", f.Value)
	}

	return cfg
}
