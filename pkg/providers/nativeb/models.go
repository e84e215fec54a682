package nativeb

import "github.com/mercator-hq/routecore/pkg/capabilities"

// thinkingBudgets maps a named reasoning effort to the fraction of a
// model's MaxThinkingTokens to request, mirroring the source's
// THINKING_BUDGETS table. Callers pass a raw percentage in
// GenerateRequest.ThinkingBudgetPercent instead of a named tier; these
// constants document the tiers that percentage space was chosen to
// cover.
const (
	ThinkingMinimal = 0.5
	ThinkingLow     = 8.0
	ThinkingMedium  = 33.0
	ThinkingHigh    = 67.0
	ThinkingMax     = 100.0
)

// modelTable lists NativeB's fixed catalog. Both models support
// extended thinking; the reasoning flagship "pro" disallows temperature
// entirely and is steered only through its thinking budget, while
// "flash" accepts a 0.0-2.0 temperature range and additionally routes
// through a lightweight single-composite-input endpoint rather than the
// flagship's message-list endpoint (see provider.go's
// responsesEndpointModels).
var modelTable = []capabilities.ModelCapabilities{
	{
		CanonicalName:            "vertex-flash-1",
		FriendlyName:             "NativeB (Flash)",
		Aliases:                  []string{"flash"},
		ContextWindow:            1_048_576,
		MaxOutputTokens:          65_536,
		SupportsSystemPrompt:     true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsTemperature:      true,
		Temperature:              capabilities.NewRangeTemperature(0, 2, 0.7),
		SupportsExtendedThinking: true,
		MaxThinkingTokens:        24_576,
	},
	{
		CanonicalName:            "vertex-pro-1",
		FriendlyName:             "NativeB (Pro)",
		Aliases:                  []string{"pro"},
		ContextWindow:            1_048_576,
		MaxOutputTokens:          65_536,
		SupportsSystemPrompt:     true,
		SupportsStreaming:        true,
		SupportsFunctionCalling:  true,
		SupportsTemperature:      false,
		Temperature:              capabilities.FixedTemperature{Value: 1.0},
		SupportsExtendedThinking: true,
		MaxThinkingTokens:        32_768,
	},
}

// responsesEndpointModels names canonical models that route to the
// lightweight composite-input endpoint instead of the flagship's
// message-list endpoint.
var responsesEndpointModels = map[string]bool{
	"vertex-flash-1": true,
}

func newTable() *capabilities.Table {
	table, err := capabilities.NewTable(capabilities.NativeB, modelTable)
	if err != nil {
		panic(err)
	}
	return table
}

// thinkingBudgetTokens converts a requested percentage (0-100) into an
// absolute token count bounded by the model's ceiling.
func thinkingBudgetTokens(maxThinkingTokens int, percent int) int {
	if percent <= 0 {
		return 0
	}
	if percent > 100 {
		percent = 100
	}
	return maxThinkingTokens * percent / 100
}
