package codecrusher

import (
	"fmt"
	"strings"
)

type Provider string

const (
	ProviderMistral Provider = "mistral"
	ProviderOpenAI  Provider = "openai"
)

// Providers lists every supported provider in declaration order.
var Providers = []Provider{ProviderMistral, ProviderOpenAI}

func (p Provider) IsValid() bool {
	switch p {
	case ProviderMistral, ProviderOpenAI:
		return true
	default:
		return false
	}
}

// ParseProvider is the single check for provider names from the config
// file, flags and the init prompts.
func ParseProvider(s string) (Provider, error) {
	p := Provider(s)
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %s (valid providers: %s)", ErrInvalidProvider, s, strings.Join(ProviderNames(), ", "))
	}
	return p, nil
}

// ProviderNames returns the supported provider names as plain strings.
func ProviderNames() []string {
	names := make([]string, len(Providers))
	for i, p := range Providers {
		names[i] = string(p)
	}
	return names
}

// Keys of the resolved configuration, in output order.
const (
	KeyProvider   = "provider"
	KeyModel      = "model"
	KeyMaxRetries = "max_retries"
	KeyTimeout    = "timeout"
	KeyUseCache   = "use_cache"
	KeyPrompt     = "prompt"
	KeyTags       = "tags"
)

// Config is the resolved configuration for a single run.
// A nil field (or a nil Tags slice) means the field is unset.
// An empty but non-nil Tags slice is a present, empty tag list.
type Config struct {
	Provider   *Provider
	Model      *string
	MaxRetries *int
	Timeout    *int
	UseCache   *bool
	Prompt     *string
	Tags       []string
}

// Field is a single present configuration entry.
type Field struct {
	Key   string
	Value any
}

// Fields returns the present fields of c in canonical order.
// Values are dereferenced; Tags is returned as a copy.
func (c Config) Fields() []Field {
	var fields []Field
	if c.Provider != nil {
		fields = append(fields, Field{Key: KeyProvider, Value: string(*c.Provider)})
	}
	if c.Model != nil {
		fields = append(fields, Field{Key: KeyModel, Value: *c.Model})
	}
	if c.MaxRetries != nil {
		fields = append(fields, Field{Key: KeyMaxRetries, Value: *c.MaxRetries})
	}
	if c.Timeout != nil {
		fields = append(fields, Field{Key: KeyTimeout, Value: *c.Timeout})
	}
	if c.UseCache != nil {
		fields = append(fields, Field{Key: KeyUseCache, Value: *c.UseCache})
	}
	if c.Prompt != nil {
		fields = append(fields, Field{Key: KeyPrompt, Value: *c.Prompt})
	}
	if c.Tags != nil {
		fields = append(fields, Field{Key: KeyTags, Value: append([]string{}, c.Tags...)})
	}
	return fields
}

// IsEmpty reports whether no field is set.
func (c Config) IsEmpty() bool {
	return len(c.Fields()) == 0
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
