package tooldriver

import (
	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/providers"
)

// Metadata is attached to every response, success or
// failure.
type Metadata struct {
	ToolName     string `json:"tool_name"`
	ModelUsed    string `json:"model_used"`
	ProviderUsed string `json:"provider_used,omitempty"`
}

// Response is a successful tool call's result.
type Response struct {
	Result   providers.GenerateResult
	Metadata Metadata
	ThreadID string
}

func metadataFor(toolName, modelUsed string, providerUsed capabilities.ProviderKind) Metadata {
	return Metadata{
		ToolName:     toolName,
		ModelUsed:    modelUsed,
		ProviderUsed: string(providerUsed),
	}
}
