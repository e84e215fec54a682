package transport

import (
	"errors"

	"github.com/mercator-hq/routecore/pkg/tooldriver"
)

// Status is the outcome tag on every tool result envelope.
type Status string

const (
	StatusSuccess               Status = "success"
	StatusError                 Status = "error"
	StatusResendPrompt          Status = "resend_prompt"
	StatusRequiresClarification Status = "requires_clarification"
	StatusContinuationAvailable Status = "continuation_available"
)

// Envelope is the single JSON object every tool call returns, on both
// success and failure paths.
type Envelope struct {
	Status      Status         `json:"status"`
	Content     string         `json:"content"`
	ContentType string         `json:"content_type"`
	Metadata    map[string]any `json:"metadata"`
}

func successEnvelope(resp *tooldriver.Response) *Envelope {
	md := map[string]any{
		"tool_name":     resp.Metadata.ToolName,
		"model_used":    resp.Metadata.ModelUsed,
		"provider_used": resp.Metadata.ProviderUsed,
	}
	status := StatusSuccess
	if resp.ThreadID != "" {
		status = StatusContinuationAvailable
		md["continuation_id"] = resp.ThreadID
	}
	return &Envelope{
		Status:      status,
		Content:     resp.Result.Content,
		ContentType: "text",
		Metadata:    md,
	}
}

// errorEnvelope maps a driver failure onto the envelope. An oversized
// prompt becomes "resend_prompt" so the host knows to shrink and retry
// rather than report a hard failure; everything else is "error" with
// the kind in metadata.
func errorEnvelope(toolName string, err error) *Envelope {
	md := map[string]any{"tool_name": toolName}

	var driverErr *tooldriver.DriverError
	if !errors.As(err, &driverErr) {
		kind := tooldriver.KindInternal
		var invalidErr *tooldriver.InvalidRequestError
		if errors.As(err, &invalidErr) {
			kind = tooldriver.KindInvalidRequest
		}
		md["error_kind"] = string(kind)
		return &Envelope{Status: StatusError, Content: err.Error(), ContentType: "text", Metadata: md}
	}

	if driverErr.ModelUsed != "" {
		md["model_used"] = driverErr.ModelUsed
	}
	if driverErr.ProviderUsed != "" {
		md["provider_used"] = driverErr.ProviderUsed
	}
	md["error_kind"] = string(driverErr.Kind)

	status := StatusError
	var tooLarge *tooldriver.TooLargeError
	if errors.As(err, &tooLarge) && tooLarge.What == "prompt" {
		status = StatusResendPrompt
	}

	return &Envelope{
		Status:      status,
		Content:     driverErr.Message,
		ContentType: "text",
		Metadata:    md,
	}
}
