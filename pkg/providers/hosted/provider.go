package hosted

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/restriction"
)

// Provider is the Hosted concrete back-end. Authentication uses an
// "Api-Key" header rather than a bearer token, and each deployment is
// addressed at its own URL path; a per-deployment HTTPProvider is
// cached behind one mutex, held for both lookup and creation, so repeated
// calls for the same deployment reuse one connection pool.
type Provider struct {
	*providers.Base
	baseCfg providers.ProviderConfig
	baseURL string
	apiKey  string

	deploymentsMu sync.Mutex
	deployments   map[string]*providers.HTTPProvider
}

// New constructs a Hosted provider.
func New(cfg providers.ProviderConfig, restrictionSvc *restriction.Service) *Provider {
	if cfg.Name == "" {
		cfg.Name = string(capabilities.Hosted)
	}
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://gateway.hosted.example"
	}

	table := newTable()
	// The restriction-aware listing methods and alias resolution come
	// from Base; Base's own http field stays nil since requests go
	// through per-deployment clients instead.
	base := providers.NewBase(capabilities.Hosted, table, restrictionSvc, nil)

	return &Provider{
		Base:        base,
		baseCfg:     cfg,
		baseURL:     baseURL,
		apiKey:      cfg.APIKey,
		deployments: make(map[string]*providers.HTTPProvider),
	}
}

// deploymentClient returns the cached HTTPProvider for a deployment,
// constructing and caching one on first use.
func (p *Provider) deploymentClient(deployment string) *providers.HTTPProvider {
	p.deploymentsMu.Lock()
	defer p.deploymentsMu.Unlock()

	if client, ok := p.deployments[deployment]; ok {
		return client
	}

	cfg := p.baseCfg
	cfg.Name = fmt.Sprintf("%s/%s", p.baseCfg.Name, deployment)
	cfg.BaseURL = fmt.Sprintf("%s/openai/deployments/%s", p.baseURL, deployment)
	client := providers.NewHTTPProvider(cfg)
	p.deployments[deployment] = client
	return client
}

// Generate routes through the resolved canonical model's
// deployment-specific client and authenticates with an Api-Key header
// instead of Authorization.
func (p *Provider) Generate(ctx context.Context, nameOrAlias string, req providers.GenerateRequest) (providers.GenerateResult, error) {
	canonical := p.ResolveModelName(nameOrAlias)
	caps, ok := p.Capabilities(canonical)
	if !ok {
		return providers.GenerateResult{}, &providers.ModelNotFoundError{Provider: string(capabilities.Hosted), Model: nameOrAlias}
	}
	if err := p.CheckRestriction(canonical, nameOrAlias); err != nil {
		return providers.GenerateResult{}, err
	}

	effectiveTemp, temperatureOK := caps.EffectiveTemperature(req.Temperature)
	payload := providers.BuildChatPayload(canonical, req, caps, effectiveTemp, temperatureOK)

	headers := map[string]string{
		"Api-Key": p.apiKey,
	}

	client := p.deploymentClient(canonical)
	return providers.DoChatCompletion(ctx, client, client.GetConfig().BaseURL+"/chat/completions", headers, payload, capabilities.Hosted, canonical, caps.FriendlyName)
}

// Close releases every cached deployment client's pooled transport, in
// addition to Base's (nil) transport.
func (p *Provider) Close() error {
	p.deploymentsMu.Lock()
	defer p.deploymentsMu.Unlock()

	var firstErr error
	for _, client := range p.deployments {
		if err := client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
