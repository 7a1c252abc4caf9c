// Package config resolves the CodeCrusher run configuration.
//
// The package loads a JSON configuration file, reads command-line flags and
// merges the two into a codecrusher.Config.
//
// # Configuration Precedence
//
// Each field is resolved independently (highest wins):
//
//  1. Command-line flag, when the user supplied it
//  2. Configuration file value, when present and valid
//  3. Otherwise the field is absent
//
// There are no defaults and no environment variable overrides.
//
// # File Loading
//
// LoadFile never fails. A missing file is logged as a warning, a file that is
// not valid JSON is logged as an error, and in both cases the result is an
// empty FileConfig. Recognized keys with a value of the wrong type (or, for
// provider, outside the supported set) are dropped with a warning. Unknown
// keys are kept in FileConfig.Extra without being examined.
//
// # File Schema
//
//	{
//	  "provider": "mistral",
//	  "model": "mistral-7b",
//	  "max_retries": 3,
//	  "timeout": 30,
//	  "use_cache": true,
//	  "default_tags": ["api", "backend"],
//	  "default_prompt_text": "Refactor this function"
//	}
//
// default_tags and default_prompt_text are exposed as tags and prompt in the
// resolved configuration.
//
// # Usage
//
//	fs := pflag.NewFlagSet("codecrusher", pflag.ContinueOnError)
//	config.RegisterFlags(fs)
//	_ = fs.Parse(os.Args[1:])
//
//	args, err := config.ArgsFromFlags(fs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg := config.NewResolver(slog.Default()).Resolve(args)
package config
