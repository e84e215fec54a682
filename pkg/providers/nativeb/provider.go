package nativeb

import (
	"context"
	"fmt"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/restriction"
)

// Provider is the NativeB concrete back-end.
type Provider struct {
	*providers.Base
	http    *providers.HTTPProvider
	apiKey  string
	baseURL string
}

// New constructs a NativeB provider.
func New(cfg providers.ProviderConfig, restrictionSvc *restriction.Service) *Provider {
	if cfg.Name == "" {
		cfg.Name = string(capabilities.NativeB)
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.nativeb.example/v1"
	}

	http := providers.NewHTTPProvider(cfg)
	table := newTable()
	base := providers.NewBase(capabilities.NativeB, table, restrictionSvc, http)

	return &Provider{Base: base, http: http, apiKey: cfg.APIKey, baseURL: baseURL}
}

// Generate routes to the flagship message-list endpoint or the
// lightweight composite-input endpoint depending on the resolved
// canonical name, and converts ThinkingBudgetPercent into an absolute
// thinking-token count before shaping the wire payload.
func (p *Provider) Generate(ctx context.Context, nameOrAlias string, req providers.GenerateRequest) (providers.GenerateResult, error) {
	canonical := p.ResolveModelName(nameOrAlias)
	caps, ok := p.Capabilities(canonical)
	if !ok {
		return providers.GenerateResult{}, &providers.ModelNotFoundError{Provider: string(capabilities.NativeB), Model: nameOrAlias}
	}
	if err := p.CheckRestriction(canonical, nameOrAlias); err != nil {
		return providers.GenerateResult{}, err
	}

	effectiveTemp, temperatureOK := caps.EffectiveTemperature(req.Temperature)
	payload := providers.BuildChatPayload(canonical, req, caps, effectiveTemp, temperatureOK)

	if caps.SupportsExtendedThinking && req.ThinkingBudgetPercent > 0 {
		payload["thinking_budget_tokens"] = thinkingBudgetTokens(caps.MaxThinkingTokens, req.ThinkingBudgetPercent)
	}

	headers := map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", p.apiKey),
	}

	if responsesEndpointModels[canonical] {
		return p.generateViaResponsesEndpoint(ctx, canonical, req, caps, headers, payload)
	}

	url := p.baseURL + "/chat/completions"
	return providers.DoChatCompletion(ctx, p.http, url, headers, payload, capabilities.NativeB, canonical, caps.FriendlyName)
}

// responsesPayload is the lightweight endpoint's wire shape: a single
// composite input string instead of a role-tagged message list.
type responsesPayload struct {
	Model   string `json:"model"`
	Input   string `json:"input"`
	Options map[string]any `json:"options,omitempty"`
}

type responsesResult struct {
	OutputText string `json:"output_text"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
		TotalTokens  int `json:"total_tokens"`
	} `json:"usage"`
}

// generateViaResponsesEndpoint combines system and user prompt into a
// single composite input string, matching the lightweight model's
// endpoint contract (the source combines these with a blank-line join
// rather than separate message roles).
func (p *Provider) generateViaResponsesEndpoint(ctx context.Context, canonical string, req providers.GenerateRequest, caps capabilities.ModelCapabilities, headers map[string]string, chatPayload map[string]any) (providers.GenerateResult, error) {
	input := req.Prompt
	if req.SystemPrompt != "" {
		input = req.SystemPrompt + "\n\n" + req.Prompt
	}
	options := map[string]any{}
	for _, key := range []string{"temperature", "max_tokens", "thinking_budget_tokens"} {
		if v, ok := chatPayload[key]; ok {
			options[key] = v
		}
	}

	reqPayload := responsesPayload{Model: canonical, Input: input, Options: options}

	var resp responsesResult
	url := p.baseURL + "/responses"
	if err := p.http.DoJSONRequest(ctx, "POST", url, reqPayload, &resp, headers); err != nil {
		return providers.GenerateResult{}, err
	}

	return providers.GenerateResult{
		Content:      resp.OutputText,
		InputTokens:  resp.Usage.InputTokens,
		OutputTokens: resp.Usage.OutputTokens,
		TotalTokens:  resp.Usage.TotalTokens,
		ModelName:    canonical,
		FriendlyName: caps.FriendlyName,
		Provider:     capabilities.NativeB,
	}, nil
}
