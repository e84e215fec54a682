package capabilities

import (
	"encoding/json"
	"fmt"
	"os"
)

// registryEntry is the on-disk shape of one custom-models registry
// record. Field names mirror the JSON registry format exactly.
type registryEntry struct {
	CanonicalName            string   `json:"canonical_name"`
	Aliases                  []string `json:"aliases"`
	ContextWindow            int      `json:"context_window"`
	MaxOutputTokens          int      `json:"max_output_tokens"`
	SupportsSystemPrompt     bool     `json:"supports_system_prompt"`
	SupportsStreaming        bool     `json:"supports_streaming"`
	SupportsImages           bool     `json:"supports_images"`
	SupportsFunctionCalling  bool     `json:"supports_function_calling"`
	SupportsTemperature      bool     `json:"supports_temperature"`
	SupportsExtendedThinking bool     `json:"supports_extended_thinking"`
	MaxImageMB               float64  `json:"max_image_mb"`
	MaxThinkingTokens        int      `json:"max_thinking_tokens"`
	TemperatureConstraint    string   `json:"temperature_constraint"`
	Description              string   `json:"description"`
	IsCustom                 bool     `json:"is_custom"`
}

// LoadRegistryFile reads the custom-models JSON registry at path and
// builds a Table for kind. Both
// malformed JSON and duplicate aliases are fatal at startup, unlike the
// source, which sometimes only warns and falls back to an empty
// registry.
func LoadRegistryFile(kind ProviderKind, path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("capabilities: reading custom-models registry %q: %w", path, err)
	}

	var entries []registryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("capabilities: parsing custom-models registry %q: %w", path, err)
	}

	models := make([]ModelCapabilities, 0, len(entries))
	seenAlias := make(map[string]string, len(entries))
	for _, e := range entries {
		for _, a := range e.Aliases {
			lower := lowerASCII(a)
			if prev, dup := seenAlias[lower]; dup {
				return nil, fmt.Errorf("capabilities: duplicate alias %q in registry %q (used by %q and %q)", a, path, prev, e.CanonicalName)
			}
			seenAlias[lower] = e.CanonicalName
		}

		models = append(models, ModelCapabilities{
			Provider:                 kind,
			CanonicalName:            e.CanonicalName,
			FriendlyName:             e.CanonicalName,
			Aliases:                  e.Aliases,
			ContextWindow:            e.ContextWindow,
			MaxOutputTokens:          e.MaxOutputTokens,
			SupportsSystemPrompt:     e.SupportsSystemPrompt,
			SupportsStreaming:        e.SupportsStreaming,
			SupportsImages:           e.SupportsImages,
			SupportsFunctionCalling:  e.SupportsFunctionCalling,
			SupportsTemperature:      e.SupportsTemperature,
			SupportsExtendedThinking: e.SupportsExtendedThinking,
			IsCustom:                 e.IsCustom,
			MaxImageMB:               e.MaxImageMB,
			MaxThinkingTokens:        e.MaxThinkingTokens,
			Temperature:              NewTemperatureConstraint(e.TemperatureConstraint),
		})
	}

	return NewTable(kind, models)
}

// GenericCapabilities returns a conservative capability record for a
// model name the registry does not recognize. The aggregator uses this
// so that unknown models still route and validate, with IsCustom marking
// the record as advisory rather than authoritative.
func GenericCapabilities(kind ProviderKind, nameOrAlias string) ModelCapabilities {
	return ModelCapabilities{
		Provider:             kind,
		CanonicalName:        nameOrAlias,
		FriendlyName:         nameOrAlias,
		ContextWindow:        32_000,
		MaxOutputTokens:      4_096,
		SupportsSystemPrompt: true,
		SupportsStreaming:    true,
		SupportsTemperature:  true,
		IsCustom:             true,
		Temperature:          NewRangeTemperature(0.0, 2.0, 0.7),
	}
}
