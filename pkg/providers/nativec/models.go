package nativec

import "github.com/mercator-hq/routecore/pkg/capabilities"

// modelTable lists NativeC's fixed catalog, grounded on a provider with
// a plain, uniform model family: both variants share a context window
// and take the full 0-2 temperature range, differing only in latency
// and cost.
var modelTable = []capabilities.ModelCapabilities{
	{
		CanonicalName:           "spark-3",
		FriendlyName:            "NativeC (Spark 3)",
		Aliases:                 []string{"spark", "spark3"},
		ContextWindow:           131_072,
		MaxOutputTokens:         131_072,
		SupportsSystemPrompt:    true,
		SupportsStreaming:       true,
		SupportsFunctionCalling: true,
		SupportsTemperature:     true,
		Temperature:             capabilities.NewRangeTemperature(0, 2, 0.7),
	},
	{
		CanonicalName:           "spark-3-fast",
		FriendlyName:            "NativeC (Spark 3 Fast)",
		Aliases:                 []string{"spark-fast", "spark3fast"},
		ContextWindow:           131_072,
		MaxOutputTokens:         131_072,
		SupportsSystemPrompt:    true,
		SupportsStreaming:       true,
		SupportsFunctionCalling: true,
		SupportsTemperature:     true,
		Temperature:             capabilities.NewRangeTemperature(0, 2, 0.7),
	},
}

func newTable() *capabilities.Table {
	table, err := capabilities.NewTable(capabilities.NativeC, modelTable)
	if err != nil {
		panic(err)
	}
	return table
}
