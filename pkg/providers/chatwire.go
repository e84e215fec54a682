package providers

import (
	"context"
	"fmt"

	"github.com/mercator-hq/routecore/pkg/capabilities"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// BuildChatPayload shapes req into the OpenAI-compatible wire format
// according to caps' capability flags: temperature
// and its coupled parameters are omitted entirely when
// SupportsTemperature is false, and images/system prompt are included
// only when the model supports them.
func BuildChatPayload(canonical string, req GenerateRequest, caps capabilities.ModelCapabilities, effectiveTemp float64, temperatureOK bool) map[string]any {
	var messages []chatMessage
	if req.SystemPrompt != "" && caps.SupportsSystemPrompt {
		messages = append(messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	payload := map[string]any{
		"model":    canonical,
		"messages": messages,
	}

	if temperatureOK {
		payload["temperature"] = effectiveTemp
		if v, ok := req.Extras["top_p"]; ok {
			payload["top_p"] = v
		}
		if v, ok := req.Extras["frequency_penalty"]; ok {
			payload["frequency_penalty"] = v
		}
		if v, ok := req.Extras["presence_penalty"]; ok {
			payload["presence_penalty"] = v
		}
		if req.MaxOutputTokens > 0 {
			payload["max_tokens"] = req.MaxOutputTokens
		}
	}

	// seed and stop travel regardless of temperature support.
	if v, ok := req.Extras["seed"]; ok {
		payload["seed"] = v
	}
	if v, ok := req.Extras["stop"]; ok {
		payload["stop"] = v
	}

	return payload
}

// DoChatCompletion issues an OpenAI-compatible chat-completions call and
// normalizes the response into a GenerateResult. It is the shared wire
// path for providers without endpoint-routing quirks.
func DoChatCompletion(ctx context.Context, http *HTTPProvider, url string, headers map[string]string, payload map[string]any, kind capabilities.ProviderKind, canonical, friendlyName string) (GenerateResult, error) {
	var resp chatResponse
	if err := http.DoJSONRequest(ctx, "POST", url, payload, &resp, headers); err != nil {
		return GenerateResult{}, err
	}
	if len(resp.Choices) == 0 {
		return GenerateResult{}, &ParseError{Provider: string(kind), Cause: fmt.Errorf("response contained no choices")}
	}

	return GenerateResult{
		Content:      resp.Choices[0].Message.Content,
		InputTokens:  resp.Usage.PromptTokens,
		OutputTokens: resp.Usage.CompletionTokens,
		TotalTokens:  resp.Usage.TotalTokens,
		ModelName:    canonical,
		FriendlyName: friendlyName,
		Provider:     kind,
		Metadata: map[string]string{
			"finish_reason": resp.Choices[0].FinishReason,
		},
	}, nil
}
