package config

import (
	"slices"

	"github.com/sagarc03/codecrusher"
)

// Merge resolves the final configuration from command-line args and the
// config file. A flag the user gave always wins over the file; a field
// neither source provides stays unset. The result shares no memory with
// either input.
//
// use_cache is resolved in order: file value, then --use-cache forces true,
// then --no-cache forces false. When both flags are given --no-cache wins.
func Merge(args Args, file FileConfig) codecrusher.Config {
	cfg := codecrusher.Config{
		Provider:   clonePtr(file.Provider),
		Model:      clonePtr(file.Model),
		MaxRetries: clonePtr(file.MaxRetries),
		Timeout:    clonePtr(file.Timeout),
		UseCache:   clonePtr(file.UseCache),
		Prompt:     clonePtr(file.DefaultPromptText),
		Tags:       slices.Clone(file.DefaultTags),
	}

	if args.Provider != nil {
		cfg.Provider = clonePtr(args.Provider)
	}
	if args.Model != nil {
		cfg.Model = clonePtr(args.Model)
	}
	if args.MaxRetries != nil {
		cfg.MaxRetries = clonePtr(args.MaxRetries)
	}
	if args.Timeout != nil {
		cfg.Timeout = clonePtr(args.Timeout)
	}
	if args.UseCache {
		cfg.UseCache = codecrusher.Ptr(true)
	}
	if args.NoCache {
		cfg.UseCache = codecrusher.Ptr(false)
	}
	if args.Prompt != nil {
		cfg.Prompt = clonePtr(args.Prompt)
	}
	if len(args.Tags) > 0 {
		cfg.Tags = slices.Clone(args.Tags)
	}

	return cfg
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
