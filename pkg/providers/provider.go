package providers

import (
	"context"

	"github.com/mercator-hq/routecore/pkg/capabilities"
)

// GenerateRequest is the provider-agnostic shape of a single generation
// call. Concrete providers translate it into their own
// wire format, omitting fields the target model's capabilities do not
// support.
type GenerateRequest struct {
	// Prompt is the user message content.
	Prompt string

	// SystemPrompt is optional; sent only if the model supports it.
	SystemPrompt string

	// Temperature is the caller-requested value; providers compute the
	// effective value via ModelCapabilities.EffectiveTemperature before
	// placing it on the wire.
	Temperature float64

	// MaxOutputTokens caps the response length; zero means provider
	// default.
	MaxOutputTokens int

	// Images are inline image attachments, included only if the model
	// supports images.
	Images [][]byte

	// ThinkingBudgetPercent is a percentage (0-100) of the model's
	// MaxThinkingTokens, used by providers whose extended-thinking
	// models take a reasoning effort rather than a raw token count.
	ThinkingBudgetPercent int

	// Extras carries provider-specific passthrough parameters (seed,
	// stop sequences) that travel regardless of temperature support.
	Extras map[string]any
}

// GenerateResult is the provider-agnostic shape of a completed
// generation.
type GenerateResult struct {
	Content      string
	InputTokens  int
	OutputTokens int
	TotalTokens  int
	ModelName    string
	FriendlyName string
	Provider     capabilities.ProviderKind
	Metadata     map[string]string
}

// Provider is the interface every concrete back-end implements.
// A Provider owns one ProviderKind's worth of models, alias resolution,
// and wire shaping; it does not know about restriction policy beyond
// consulting it during Generate, and it does not know about the
// registry that owns it.
type Provider interface {
	// Kind returns the provider's tag.
	Kind() capabilities.ProviderKind

	// Capabilities returns the capability record for nameOrAlias after
	// resolution, or false if the model is unknown to this provider.
	Capabilities(nameOrAlias string) (capabilities.ModelCapabilities, bool)

	// ListModels returns canonical names allowed under current
	// restriction policy. Aliases are not included.
	ListModels() []string

	// ListAllKnownModels returns canonicals ∪ aliases, lowercased, with
	// no restriction filtering applied; used only by restriction
	// validation.
	ListAllKnownModels() []string

	// Validate reports whether nameOrAlias is a model this provider
	// recognizes.
	Validate(nameOrAlias string) bool

	// ResolveModelName resolves an alias to its canonical name,
	// case-insensitively. Unknown input is returned unchanged.
	ResolveModelName(nameOrAlias string) string

	// SupportsThinking reports whether nameOrAlias supports extended
	// thinking.
	SupportsThinking(nameOrAlias string) bool

	// EffectiveTemperature returns the wire-ready temperature for a
	// caller-requested value, or false if the model omits temperature
	// entirely.
	EffectiveTemperature(nameOrAlias string, requested float64) (float64, bool)

	// Generate resolves, validates, shapes, and issues one generation
	// call, retrying per the classifier and backoff schedule.
	Generate(ctx context.Context, nameOrAlias string, req GenerateRequest) (GenerateResult, error)

	// CountTokens estimates the token count of text for a given model,
	// falling back to the file-type heuristic when the provider
	// has no exact tokenizer.
	CountTokens(text string, nameOrAlias string) int

	// Close releases any pooled transport.
	Close() error
}
