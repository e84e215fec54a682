package providers

import (
	"testing"

	"github.com/mercator-hq/routecore/pkg/capabilities"
)

func chatCaps(supportsTemp bool) capabilities.ModelCapabilities {
	return capabilities.ModelCapabilities{
		Provider:             capabilities.NativeA,
		CanonicalName:        "rc-chat-1",
		SupportsSystemPrompt: true,
		SupportsTemperature:  supportsTemp,
	}
}

func TestBuildChatPayloadOmitsTemperatureFamilyWhenUnsupported(t *testing.T) {
	req := GenerateRequest{
		Prompt:          "hi",
		MaxOutputTokens: 256,
		Extras: map[string]any{
			"top_p":             0.9,
			"frequency_penalty": 0.1,
			"presence_penalty":  0.2,
			"seed":              42,
			"stop":              []string{"\n"},
		},
	}

	payload := BuildChatPayload("rc-chat-1", req, chatCaps(false), 0.7, false)

	for _, banned := range []string{"temperature", "top_p", "frequency_penalty", "presence_penalty", "max_tokens"} {
		if _, ok := payload[banned]; ok {
			t.Errorf("payload carries %q for a temperature-less model", banned)
		}
	}
	if payload["seed"] != 42 {
		t.Error("seed must travel regardless of temperature support")
	}
	if _, ok := payload["stop"]; !ok {
		t.Error("stop must travel regardless of temperature support")
	}
}

func TestBuildChatPayloadCarriesTemperatureFamilyWhenSupported(t *testing.T) {
	req := GenerateRequest{
		Prompt:          "hi",
		MaxOutputTokens: 256,
		Extras:          map[string]any{"top_p": 0.9},
	}

	payload := BuildChatPayload("rc-chat-1", req, chatCaps(true), 0.7, true)

	if payload["temperature"] != 0.7 {
		t.Errorf("temperature = %v, want 0.7", payload["temperature"])
	}
	if payload["top_p"] != 0.9 {
		t.Errorf("top_p = %v, want 0.9", payload["top_p"])
	}
	if payload["max_tokens"] != 256 {
		t.Errorf("max_tokens = %v, want 256", payload["max_tokens"])
	}
}

func TestBuildChatPayloadSystemPromptGatedByCapability(t *testing.T) {
	req := GenerateRequest{Prompt: "hi", SystemPrompt: "be brief"}

	caps := chatCaps(true)
	payload := BuildChatPayload("rc-chat-1", req, caps, 0.7, true)
	messages := payload["messages"].([]chatMessage)
	if len(messages) != 2 || messages[0].Role != "system" {
		t.Errorf("messages = %+v, want system+user", messages)
	}

	caps.SupportsSystemPrompt = false
	payload = BuildChatPayload("rc-chat-1", req, caps, 0.7, true)
	messages = payload["messages"].([]chatMessage)
	if len(messages) != 1 || messages[0].Role != "user" {
		t.Errorf("messages = %+v, want user only", messages)
	}
}
