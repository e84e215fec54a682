package tooldriver

import (
	"context"
	"fmt"
	"time"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	routecontext "github.com/mercator-hq/routecore/pkg/context"
	"github.com/mercator-hq/routecore/pkg/conversation"
	"github.com/mercator-hq/routecore/pkg/diffengine"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/registry"
	"github.com/mercator-hq/routecore/pkg/restriction"
	"github.com/mercator-hq/routecore/pkg/sandbox"
	"github.com/mercator-hq/routecore/pkg/selection"
)

// MetricsSink receives per-request latency, status, and token events from
// Driver.Run. It is satisfied structurally by *metrics.Collector.
type MetricsSink interface {
	RecordRequest(provider, model, status string, duration time.Duration, tokens int)
	RecordProviderLatency(provider, model string, latencySeconds float64)
}

// precommitDiffOptions translates a tool-facing PrecommitOptions into
// the context assembler's DiffOptions, or nil when the call isn't a
// precommit diff pass.
func precommitDiffOptions(p *PrecommitOptions) *routecontext.DiffOptions {
	if p == nil {
		return nil
	}
	return &routecontext.DiffOptions{
		Root:       p.Root,
		Mode:       p.Mode,
		CompareRef: p.CompareRef,
		MaxDepth:   p.MaxDepth,
	}
}

// Driver orchestrates one tool call end to end. It holds no
// per-call state; every field is shared across concurrent
// calls.
type Driver struct {
	registry    *registry.Registry
	selector    *selection.Selector
	restriction *restriction.Service
	assembler   *routecontext.Assembler
	store       *conversation.Store
	validator   *sandbox.Validator
	metrics     MetricsSink
}

// SetMetrics wires sink into Run's per-request latency/status/token
// recording. Passing nil disables metrics recording.
func (d *Driver) SetMetrics(sink MetricsSink) {
	d.metrics = sink
}

// New wires a Driver from its dependencies. restrictionSvc and store may
// be nil: a nil restriction service allows every model, and a nil store
// disables continuation recording entirely.
func New(reg *registry.Registry, restrictionSvc *restriction.Service, store *conversation.Store, validator *sandbox.Validator) *Driver {
	return &Driver{
		registry:    reg,
		selector:    selection.New(reg),
		restriction: restrictionSvc,
		assembler:   routecontext.New(store),
		store:       store,
		validator:   validator,
	}
}

// Run executes one tool call: validate, resolve the model, assemble
// context, generate, record turns.
func (d *Driver) Run(ctx context.Context, req Request) (*Response, error) {
	if err := validatePromptSize(req.Prompt); err != nil {
		return nil, wrap(err, req.ToolName, "", "")
	}

	kind, modelName, provider, err := d.resolveModel(req)
	if err != nil {
		return nil, wrap(err, req.ToolName, req.Model, "")
	}

	caps, ok := provider.Capabilities(modelName)
	if !ok {
		err := fmt.Errorf("tooldriver: model %q unexpectedly missing capabilities after resolution", modelName)
		return nil, wrap(err, req.ToolName, req.Model, string(kind))
	}

	if d.restriction != nil && !d.restriction.IsAllowed(kind, provider.ResolveModelName(modelName), req.Model) {
		err := &providers.PolicyError{Provider: string(kind), Model: req.Model}
		return nil, wrap(err, req.ToolName, req.Model, string(kind))
	}

	diffOpts := req.Precommit
	if diffOpts != nil {
		resolvedRoot, err := validateRequestPath(d.validator, diffOpts.Root)
		if err != nil {
			return nil, wrap(err, req.ToolName, req.Model, string(kind))
		}
		rooted := *diffOpts
		rooted.Root = resolvedRoot
		diffOpts = &rooted
	}

	effectiveTemp, tempSupported := provider.EffectiveTemperature(modelName, req.Temperature)

	assembled, err := d.assembler.Assemble(ctx, routecontext.Request{
		ContinuationID: req.ContinuationID,
		RequestedFiles: req.Files,
		DirectCode:     req.DirectCode,
		SystemPrompt:   req.SystemPrompt,
		UserPrompt:     req.Prompt,
		Validator:      d.validator,
		Extensions:     sandbox.CodeExtensions,
		Diffs:          precommitDiffOptions(diffOpts),
		DiffBudget:     diffengine.DiffBudgetReserve,
	}, caps)
	if err != nil {
		return nil, wrap(err, req.ToolName, req.Model, string(kind))
	}

	genReq := providers.GenerateRequest{
		Prompt:                assembled.Prompt,
		SystemPrompt:          req.SystemPrompt,
		ThinkingBudgetPercent: req.ThinkingBudgetPercent,
	}
	if tempSupported {
		genReq.Temperature = effectiveTemp
	}

	start := time.Now()
	result, err := provider.Generate(ctx, modelName, genReq)
	latency := time.Since(start)
	if d.metrics != nil {
		status := "success"
		tokens := 0
		if err != nil {
			status = "error"
		} else {
			tokens = result.TotalTokens
		}
		d.metrics.RecordRequest(string(kind), modelName, status, latency, tokens)
		d.metrics.RecordProviderLatency(string(kind), modelName, latency.Seconds())
	}
	if err != nil {
		return nil, wrap(err, req.ToolName, req.Model, string(kind))
	}

	threadID := assembled.ThreadID
	if d.store != nil && req.SupportsContinuation {
		threadID = d.recordTurns(ctx, req, result, assembled, kind)
	}

	return &Response{
		Result:   result,
		Metadata: metadataFor(req.ToolName, req.Model, kind),
		ThreadID: threadID,
	}, nil
}

// resolveModel picks the model for a call: a concrete caller-supplied
// name is used as-is; an empty Model with a non-empty AutoCategory
// defers to the selector.
func (d *Driver) resolveModel(req Request) (capabilities.ProviderKind, string, providers.Provider, error) {
	if req.Model != "" {
		provider, ok := d.registry.ProviderForModel(req.Model)
		if !ok {
			err := &selection.NoAcceptableModelError{
				Category:        selection.ToolModelCategory(req.AutoCategory),
				AvailableModels: d.registry.AvailableModels(),
			}
			return "", "", nil, err
		}
		return provider.Kind(), provider.ResolveModelName(req.Model), provider, nil
	}

	kind, modelName, err := d.selector.SelectModel(selection.ToolModelCategory(req.AutoCategory))
	if err != nil {
		return "", "", nil, err
	}
	provider, ok := d.registry.Provider(kind)
	if !ok {
		return "", "", nil, fmt.Errorf("tooldriver: selected provider %q no longer registered", kind)
	}
	return kind, modelName, provider, nil
}

// recordTurns persists the user/assistant exchange under the thread id
// when the tool supports continuation. Creates a fresh
// thread on a first call, or appends under an existing continuation id.
// It returns the thread id used, or "" if persistence failed.
func (d *Driver) recordTurns(ctx context.Context, req Request, result providers.GenerateResult, assembled *routecontext.Assembled, kind capabilities.ProviderKind) string {
	threadID := req.ContinuationID
	if threadID == "" {
		id, err := d.store.CreateThread(ctx, req.ToolName, req.Prompt)
		if err != nil {
			return ""
		}
		threadID = id
	}

	_ = d.store.AddTurn(ctx, threadID, conversation.Turn{
		Role:          "user",
		Content:       req.Prompt,
		FilesEmbedded: assembled.FilesEmbedded,
		ToolName:      req.ToolName,
		ModelName:     req.Model,
		Provider:      kind,
	})
	_ = d.store.AddTurn(ctx, threadID, conversation.Turn{
		Role:      "assistant",
		Content:   result.Content,
		ToolName:  req.ToolName,
		ModelName: result.ModelName,
		Provider:  kind,
	})
	return threadID
}
