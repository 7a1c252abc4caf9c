package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/sagarc03/codecrusher"
)

// Flag names.
const (
	FlagConfig     = "config"
	FlagProvider   = "provider"
	FlagModel      = "model"
	FlagMaxRetries = "max-retries"
	FlagTimeout    = "timeout"
	FlagUseCache   = "use-cache"
	FlagNoCache    = "no-cache"
	FlagPrompt     = "prompt"
	FlagTags       = "tags"
)

// Args holds the configuration flags the user supplied.
// A nil field means the flag was not given.
type Args struct {
	ConfigPath string
	Provider   *codecrusher.Provider
	Model      *string
	MaxRetries *int
	Timeout    *int
	UseCache   bool
	NoCache    bool
	Prompt     *string
	Tags       []string
}

// ConfigFile returns the config file path to load.
func (a Args) ConfigFile() string {
	if a.ConfigPath == "" {
		return DefaultPath
	}
	return a.ConfigPath
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to configuration file (default: "+DefaultPath+")")
	fs.String(FlagProvider, "", "AI provider to use ("+strings.Join(codecrusher.ProviderNames(), " or ")+")")
	fs.String(FlagModel, "", "model to use (e.g., mistral-7b, gpt-4-turbo)")
	fs.Int(FlagMaxRetries, 0, "maximum number of retries for API calls")
	fs.Int(FlagTimeout, 0, "timeout in seconds for API calls")
	fs.Bool(FlagUseCache, false, "use cache for API calls")
	fs.Bool(FlagNoCache, false, "disable cache for API calls (wins over --use-cache)")
	fs.String(FlagPrompt, "", "prompt text for code generation")
	fs.StringArray(FlagTags, nil, "tags for the generated code (--tags t1 t2 ...)")
}

// ArgsFromFlags builds Args from a parsed flag set.
// Only flags the user explicitly set are recorded. An unsupported
// --provider value returns an error wrapping codecrusher.ErrInvalidProvider.
func ArgsFromFlags(fs *pflag.FlagSet) (Args, error) {
	var (
		a   Args
		err error
	)

	if a.ConfigPath, err = fs.GetString(FlagConfig); err != nil {
		return Args{}, fmt.Errorf("read --%s: %w", FlagConfig, err)
	}

	if fs.Changed(FlagProvider) {
		s, err := fs.GetString(FlagProvider)
		if err != nil {
			return Args{}, fmt.Errorf("read --%s: %w", FlagProvider, err)
		}
		p, err := codecrusher.ParseProvider(s)
		if err != nil {
			return Args{}, fmt.Errorf("--%s: %w", FlagProvider, err)
		}
		a.Provider = &p
	}

	if fs.Changed(FlagModel) {
		s, err := fs.GetString(FlagModel)
		if err != nil {
			return Args{}, fmt.Errorf("read --%s: %w", FlagModel, err)
		}
		a.Model = &s
	}

	if fs.Changed(FlagMaxRetries) {
		n, err := fs.GetInt(FlagMaxRetries)
		if err != nil {
			return Args{}, fmt.Errorf("read --%s: %w", FlagMaxRetries, err)
		}
		a.MaxRetries = &n
	}

	if fs.Changed(FlagTimeout) {
		n, err := fs.GetInt(FlagTimeout)
		if err != nil {
			return Args{}, fmt.Errorf("read --%s: %w", FlagTimeout, err)
		}
		a.Timeout = &n
	}

	if a.UseCache, err = fs.GetBool(FlagUseCache); err != nil {
		return Args{}, fmt.Errorf("read --%s: %w", FlagUseCache, err)
	}
	if a.NoCache, err = fs.GetBool(FlagNoCache); err != nil {
		return Args{}, fmt.Errorf("read --%s: %w", FlagNoCache, err)
	}

	// An empty --prompt does not override the file.
	prompt, err := fs.GetString(FlagPrompt)
	if err != nil {
		return Args{}, fmt.Errorf("read --%s: %w", FlagPrompt, err)
	}
	if prompt != "" {
		a.Prompt = &prompt
	}

	if a.Tags, err = fs.GetStringArray(FlagTags); err != nil {
		return Args{}, fmt.Errorf("read --%s: %w", FlagTags, err)
	}
	if len(a.Tags) == 0 {
		a.Tags = nil
	}

	return a, nil
}
