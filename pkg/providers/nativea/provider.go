package nativea

import (
	"context"
	"fmt"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/restriction"
)

// Provider is the NativeA concrete back-end: bearer-authenticated
// chat-completions with a static model table.
type Provider struct {
	*providers.Base
	http    *providers.HTTPProvider
	apiKey  string
	baseURL string
}

// New constructs a NativeA provider from a ProviderConfig (BaseURL and
// APIKey drive wire shaping; Name/Timeout/MaxRetries/etc. drive the
// underlying HTTPProvider). restrictionSvc may be nil when no
// restriction policy is in effect.
func New(cfg providers.ProviderConfig, restrictionSvc *restriction.Service) *Provider {
	if cfg.Name == "" {
		cfg.Name = string(capabilities.NativeA)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.nativea.example/v1"
	}

	http := providers.NewHTTPProvider(cfg)
	table := newTable()
	base := providers.NewBase(capabilities.NativeA, table, restrictionSvc, http)

	return &Provider{Base: base, http: http, apiKey: cfg.APIKey, baseURL: baseURL}
}

// Generate resolves nameOrAlias, enforces restriction policy, shapes the
// request according to the model's capability flags, and issues the
// chat-completions call.
func (p *Provider) Generate(ctx context.Context, nameOrAlias string, req providers.GenerateRequest) (providers.GenerateResult, error) {
	canonical := p.ResolveModelName(nameOrAlias)
	caps, ok := p.Capabilities(canonical)
	if !ok {
		return providers.GenerateResult{}, &providers.ModelNotFoundError{Provider: string(capabilities.NativeA), Model: nameOrAlias}
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
	return providers.DoChatCompletion(ctx, p.http, url, headers, payload, capabilities.NativeA, canonical, caps.FriendlyName)
}
