package hosted

import "github.com/mercator-hq/routecore/pkg/capabilities"

// modelTable lists Hosted's fixed catalog: deployments proxying several
// upstream vendors' models behind one gateway. Deployment names are
// either "gateway-<model>-<yyyy>-<mm>" or "<vendor>.<model>-v<version>",
// and the variant that exposes extended thinking carries an explicit
// "-with-thinking" suffix.
var modelTable = []capabilities.ModelCapabilities{
	{
		CanonicalName:        "gateway-r1-2025-04",
		FriendlyName:         "Hosted (R1)",
		Aliases:              []string{"r1"},
		ContextWindow:        200_000,
		SupportsSystemPrompt: true,
		SupportsStreaming:    true,
		SupportsImages:       true,
		SupportsTemperature:  true,
		Temperature:          capabilities.NewRangeTemperature(0, 2, 0.7),
	},
	{
		CanonicalName:        "vendor.flagship-v1",
		FriendlyName:         "Hosted (Flagship)",
		Aliases:              []string{"flagship"},
		ContextWindow:        200_000,
		SupportsSystemPrompt: true,
		SupportsStreaming:    true,
		SupportsImages:       true,
		SupportsTemperature:  true,
		Temperature:          capabilities.NewRangeTemperature(0, 2, 0.7),
	},
	{
		CanonicalName:            "vendor.flagship-v1-with-thinking",
		FriendlyName:             "Hosted (Flagship, thinking)",
		Aliases:                  []string{"flagship-thinking"},
		ContextWindow:            200_000,
		SupportsSystemPrompt:     true,
		SupportsStreaming:        true,
		SupportsImages:           true,
		SupportsTemperature:      true,
		Temperature:              capabilities.NewRangeTemperature(0, 2, 0.7),
		SupportsExtendedThinking: true,
		MaxThinkingTokens:        32_768,
	},
	{
		CanonicalName:        "gateway-flash-2025-05",
		FriendlyName:         "Hosted (Flash)",
		Aliases:              []string{"flash"},
		ContextWindow:        1_000_000,
		SupportsSystemPrompt: true,
		SupportsStreaming:    true,
		SupportsImages:       true,
		SupportsTemperature:  true,
		Temperature:          capabilities.NewRangeTemperature(0, 2, 0.7),
	},
}

func newTable() *capabilities.Table {
	table, err := capabilities.NewTable(capabilities.Hosted, modelTable)
	if err != nil {
		panic(err)
	}
	return table
}
