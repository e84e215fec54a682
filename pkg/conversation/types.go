package conversation

import (
	"time"

	"github.com/mercator-hq/routecore/pkg/capabilities"
)

// Turn is one appended exchange in a Thread. ToolName, ModelName,
// and Provider record which tool/model produced this specific turn,
// which may differ from the Thread's own ToolName on a cross-tool
// continuation.
type Turn struct {
	Role          string                    `json:"role"`
	Content       string                    `json:"content"`
	FilesEmbedded []string                  `json:"files_embedded,omitempty"`
	ToolName      string                    `json:"tool_name"`
	ModelName     string                    `json:"model_name,omitempty"`
	Provider      capabilities.ProviderKind `json:"provider,omitempty"`
	Timestamp     time.Time                 `json:"timestamp"`
}

// Thread is a persisted conversation: an ordered append log of Turns
// plus the initial context the first tool call created it with. A
// Thread's ToolName may differ from any individual Turn's ToolName
//.
type Thread struct {
	ID             string    `json:"id"`
	ToolName       string    `json:"tool_name"`
	InitialContext string    `json:"initial_context"`
	Turns          []Turn    `json:"turns"`
	CreatedAt      time.Time `json:"created_at"`
	LastUpdated    time.Time `json:"last_updated"`
}

// FilesEmbedded returns the union of every turn's FilesEmbedded, used to
// compute the assembler's already-embedded deduplication set.
func (t *Thread) FilesEmbedded() map[string]bool {
	out := make(map[string]bool)
	for _, turn := range t.Turns {
		for _, f := range turn.FilesEmbedded {
			out[f] = true
		}
	}
	return out
}
