package aggregator

import (
	"context"
	"fmt"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/restriction"
)

// Provider is the Aggregator concrete back-end. Unlike the native
// providers, its model table is sourced at startup from a JSON registry
// file rather than a compiled-in literal, and any name the
// registry omits still resolves via a generic-conservative capability
// record so the aggregator can proxy to models it has no specific
// knowledge of.
type Provider struct {
	*providers.Base
	http    *providers.HTTPProvider
	apiKey  string
	baseURL string
}

// New constructs an Aggregator provider. registryPath points at the
// custom-models JSON registry (empty registries are valid: the
// aggregator still functions purely off the generic fallback).
func New(cfg providers.ProviderConfig, registryPath string, restrictionSvc *restriction.Service) (*Provider, error) {
	if cfg.Name == "" {
		cfg.Name = string(capabilities.Aggregator)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.aggregator.example/v1"
	}

	var table *capabilities.Table
	if registryPath != "" {
		loaded, err := capabilities.LoadRegistryFile(capabilities.Aggregator, registryPath)
		if err != nil {
			return nil, fmt.Errorf("aggregator: %w", err)
		}
		table = loaded
	} else {
		empty, err := capabilities.NewTable(capabilities.Aggregator, nil)
		if err != nil {
			return nil, err
		}
		table = empty
	}

	http := providers.NewHTTPProvider(cfg)
	base := providers.NewBase(capabilities.Aggregator, table, restrictionSvc, http)
	base.Fallback = func(nameOrAlias string) (capabilities.ModelCapabilities, bool) {
		return capabilities.GenericCapabilities(capabilities.Aggregator, nameOrAlias), true
	}

	return &Provider{Base: base, http: http, apiKey: cfg.APIKey, baseURL: baseURL}, nil
}

// Generate accepts any model name: registry-known names use their
// recorded capabilities, everything else proxies through the
// generic-conservative fallback.
func (p *Provider) Generate(ctx context.Context, nameOrAlias string, req providers.GenerateRequest) (providers.GenerateResult, error) {
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
	return providers.DoChatCompletion(ctx, p.http, url, headers, payload, capabilities.Aggregator, canonical, caps.FriendlyName)
}
