package selection

// ToolModelCategory is the speed/quality tier a tool declares for its
// own calls. A tool that supplies no concrete model name relies on the
// Selector to pick one from this category.
type ToolModelCategory string

const (
	// FastResponse favors low latency over reasoning depth.
	FastResponse ToolModelCategory = "fast_response"

	// Balanced is the default tier for general-purpose calls.
	Balanced ToolModelCategory = "balanced"

	// ExtendedReasoning favors reasoning depth and context size over
	// latency.
	ExtendedReasoning ToolModelCategory = "extended_reasoning"
)

// String satisfies fmt.Stringer.
func (c ToolModelCategory) String() string {
	return string(c)
}
