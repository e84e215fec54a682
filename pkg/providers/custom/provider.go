package custom

import (
	"context"
	"fmt"
	"strings"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/restriction"
)

// localIndicators are substrings in an unregistered model name that
// mark it as intended for a local inference server.
var localIndicators = []string{"local", "ollama", "vllm", "lmstudio"}

// cloudPrefixes are name prefixes that mark a model as belonging to a
// cloud provider family, and cloudAliases are the bare alias forms
// those families are commonly requested by. Either match means the name
// must never land on a local endpoint that happens to be configured.
var (
	cloudPrefixes = []string{
		"r1", "chat-core", "vertex-", "spark", "gateway-", "vendor.",
		"flagship",
	}
	cloudAliases = []string{"flash", "pro", "core", "mini"}
)

// looksLikeCloudModel reports whether a registry-unknown name matches a
// recognizable cloud model family.
func looksLikeCloudModel(name string) bool {
	lower := strings.ToLower(name)
	for _, prefix := range cloudPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	for _, alias := range cloudAliases {
		if lower == alias {
			return true
		}
	}
	return false
}

// Provider is the Custom concrete back-end.
type Provider struct {
	*providers.Base
	http    *providers.HTTPProvider
	apiKey  string
	baseURL string
}

// New constructs a Custom provider. registryPath, if set, is the same
// custom-models JSON registry the Aggregator reads; entries with
// IsCustom true are this provider's authoritative catalog.
func New(cfg providers.ProviderConfig, registryPath string, restrictionSvc *restriction.Service) (*Provider, error) {
	if cfg.Name == "" {
		cfg.Name = string(capabilities.Custom)
	}
	if cfg.BaseURL == "" {
		return nil, &providers.ConfigError{Provider: string(capabilities.Custom), Field: "base_url", Message: "a base URL is required for the custom provider"}
	}
	if cfg.APIKey == "" {
		cfg.APIKey = "dummy-key-for-unauthenticated-endpoint"
	}

	var table *capabilities.Table
	if registryPath != "" {
		loaded, err := capabilities.LoadRegistryFile(capabilities.Custom, registryPath)
		if err != nil {
			return nil, fmt.Errorf("custom: %w", err)
		}
		table = loaded
	} else {
		empty, err := capabilities.NewTable(capabilities.Custom, nil)
		if err != nil {
			return nil, err
		}
		table = empty
	}

	http := providers.NewHTTPProvider(cfg)
	base := providers.NewBase(capabilities.Custom, table, restrictionSvc, http)
	base.Fallback = func(nameOrAlias string) (capabilities.ModelCapabilities, bool) {
		clean := providers.StripTag(nameOrAlias)
		lower := strings.ToLower(clean)
		for _, indicator := range localIndicators {
			if strings.Contains(lower, indicator) {
				return capabilities.GenericCapabilities(capabilities.Custom, clean), true
			}
		}
		if !strings.Contains(clean, "/") && !looksLikeCloudModel(clean) {
			return capabilities.GenericCapabilities(capabilities.Custom, clean), true
		}
		return capabilities.ModelCapabilities{}, false
	}

	return &Provider{Base: base, http: http, apiKey: cfg.APIKey, baseURL: cfg.BaseURL}, nil
}

// ResolveModelName resolves through the registry first, then strips a
// trailing ":tag" suffix for Ollama-style references and retries.
func (p *Provider) ResolveModelName(nameOrAlias string) string {
	if resolved := p.Base.ResolveModelName(nameOrAlias); resolved != nameOrAlias {
		return resolved
	}
	if stripped := providers.StripTag(nameOrAlias); stripped != nameOrAlias {
		return p.Base.ResolveModelName(stripped)
	}
	return nameOrAlias
}

// Validate accepts registry-known custom models, names with a local
// indicator, and vendor-prefix-free names that do not match a
// recognizable cloud model family; it rejects everything else so
// requests for cloud models route to the Aggregator (or fail) rather
// than landing on a local endpoint.
func (p *Provider) Validate(nameOrAlias string) bool {
	if caps, ok := p.Base.Capabilities(nameOrAlias); ok {
		return caps.IsCustom
	}

	clean := providers.StripTag(nameOrAlias)
	if clean != nameOrAlias {
		if caps, ok := p.Base.Capabilities(clean); ok {
			return caps.IsCustom
		}
	}

	lower := strings.ToLower(clean)
	for _, indicator := range localIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}

	return !strings.Contains(clean, "/") && !looksLikeCloudModel(clean)
}

// Capabilities returns the registry record when present, or a
// generic-conservative record for any name Validate accepts.
func (p *Provider) Capabilities(nameOrAlias string) (capabilities.ModelCapabilities, bool) {
	resolved := p.ResolveModelName(nameOrAlias)
	if caps, ok := p.Base.Capabilities(resolved); ok {
		return caps, true
	}
	if !p.Validate(nameOrAlias) {
		return capabilities.ModelCapabilities{}, false
	}
	return capabilities.GenericCapabilities(capabilities.Custom, resolved), true
}

// Generate shapes and issues the chat-completions call for a validated
// local model name.
func (p *Provider) Generate(ctx context.Context, nameOrAlias string, req providers.GenerateRequest) (providers.GenerateResult, error) {
	if !p.Validate(nameOrAlias) {
		return providers.GenerateResult{}, &providers.ModelNotFoundError{Provider: string(capabilities.Custom), Model: nameOrAlias}
	}
	canonical := p.ResolveModelName(nameOrAlias)
	caps, _ := p.Capabilities(canonical)

	if err := p.CheckRestriction(canonical, nameOrAlias); err != nil {
		return providers.GenerateResult{}, err
	}

	effectiveTemp, temperatureOK := caps.EffectiveTemperature(req.Temperature)
	payload := providers.BuildChatPayload(canonical, req, caps, effectiveTemp, temperatureOK)

	headers := map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", p.apiKey),
	}

	url := p.baseURL + "/chat/completions"
	return providers.DoChatCompletion(ctx, p.http, url, headers, payload, capabilities.Custom, canonical, caps.FriendlyName)
}
