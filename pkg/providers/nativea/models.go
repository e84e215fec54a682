package nativea

import "github.com/mercator-hq/routecore/pkg/capabilities"

// modelTable lists NativeA's fixed catalog. Reasoning-tier models are
// fixed at temperature 1.0 and decline the parameter entirely, matching
// a provider family where its strongest reasoning models accept no
// temperature at all; its general-purpose model takes a full 0-2 range.
var modelTable = []capabilities.ModelCapabilities{
	{
		CanonicalName:           "r1",
		FriendlyName:            "NativeA (R1)",
		Aliases:                 []string{"r1-mini"},
		ContextWindow:           200_000,
		MaxOutputTokens:         100_000,
		SupportsSystemPrompt:    true,
		SupportsStreaming:       true,
		SupportsImages:          true,
		MaxImageMB:              20.0,
		SupportsFunctionCalling: true,
		SupportsTemperature:     false,
		Temperature:             capabilities.FixedTemperature{Value: 1.0},
	},
	{
		CanonicalName:           "r1-pro",
		FriendlyName:            "NativeA (R1 Pro)",
		Aliases:                 nil,
		ContextWindow:           200_000,
		MaxOutputTokens:         100_000,
		SupportsSystemPrompt:    true,
		SupportsStreaming:       true,
		SupportsImages:          true,
		MaxImageMB:              20.0,
		SupportsFunctionCalling: true,
		SupportsTemperature:     false,
		Temperature:             capabilities.FixedTemperature{Value: 1.0},
	},
	{
		CanonicalName:           "chat-core-4.1",
		FriendlyName:            "NativeA (Chat Core 4.1)",
		Aliases:                 []string{"core", "chat-core"},
		ContextWindow:           1_000_000,
		MaxOutputTokens:         32_768,
		SupportsSystemPrompt:    true,
		SupportsStreaming:       true,
		SupportsImages:          true,
		MaxImageMB:              20.0,
		SupportsFunctionCalling: true,
		SupportsTemperature:     true,
		Temperature:             capabilities.NewRangeTemperature(0, 2, 0.7),
	},
}

func newTable() *capabilities.Table {
	table, err := capabilities.NewTable(capabilities.NativeA, modelTable)
	if err != nil {
		// modelTable is a fixed literal; a collision here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return table
}
