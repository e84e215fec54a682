package nativec

import (
	"context"
	"fmt"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/restriction"
)

// Provider is the NativeC concrete back-end.
type Provider struct {
	*providers.Base
	http    *providers.HTTPProvider
	apiKey  string
	baseURL string
}

// New constructs a NativeC provider.
func New(cfg providers.ProviderConfig, restrictionSvc *restriction.Service) *Provider {
	if cfg.Name == "" {
		cfg.Name = string(capabilities.NativeC)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.nativec.example/v1"
	}

	http := providers.NewHTTPProvider(cfg)
	table := newTable()
	base := providers.NewBase(capabilities.NativeC, table, restrictionSvc, http)

	return &Provider{Base: base, http: http, apiKey: cfg.APIKey, baseURL: baseURL}
}

// Generate is the common resolve-shape-send path with no endpoint-routing or
// reasoning-budget quirks.
func (p *Provider) Generate(ctx context.Context, nameOrAlias string, req providers.GenerateRequest) (providers.GenerateResult, error) {
	canonical := p.ResolveModelName(nameOrAlias)
	caps, ok := p.Capabilities(canonical)
	if !ok {
		return providers.GenerateResult{}, &providers.ModelNotFoundError{Provider: string(capabilities.NativeC), Model: nameOrAlias}
	}
	if err := p.CheckRestriction(canonical, nameOrAlias); err != nil {
		return providers.GenerateResult{}, err
	}

	effectiveTemp, temperatureOK := caps.EffectiveTemperature(req.Temperature)
	payload := providers.BuildChatPayload(canonical, req, caps, effectiveTemp, temperatureOK)

	headers := map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", p.apiKey),
	}

	url := p.baseURL + "/chat/completions"
	return providers.DoChatCompletion(ctx, p.http, url, headers, payload, capabilities.NativeC, canonical, caps.FriendlyName)
}
