// Package codecrusher holds the domain types for the CodeCrusher command-line
// tool: the set of supported AI providers and the resolved run configuration.
//
// A run configuration is built fresh on every invocation from two sources,
// a JSON configuration file and command-line flags. Flags take precedence
// over the file, field by field. A field that neither source supplies (or
// that the file supplies with an invalid value) is absent from the result;
// absence is distinct from a zero value.
//
// # Key Components
//
//   - Provider: closed set of supported providers (mistral, openai)
//   - Config: the resolved configuration with optional fields
//   - Field: a single present key/value pair in canonical output order
//
// # Example Usage
//
//	fileCfg := config.NewResolver(logger).LoadFile("codecrusher.config.json")
//	args := config.ArgsFromFlags(cmd.Flags())
//	cfg := config.Merge(args, fileCfg)
//
//	for _, f := range cfg.Fields() {
//	    fmt.Printf("%s: %v\n", f.Key, f.Value)
//	}
//
// See the config package for loading and merging, and the output package for
// rendering a Config as text, JSON or YAML.
package codecrusher
