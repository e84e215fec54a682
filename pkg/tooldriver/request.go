package tooldriver

import (
	"github.com/mercator-hq/routecore/pkg/diffengine"
	"github.com/mercator-hq/routecore/pkg/sandbox"
)

// MaxPromptChars is the early size gate applied before any model
// resolution or context assembly is attempted.
const MaxPromptChars = 60000

// Request is one tool call's caller-supplied arguments, already parsed
// against the tool's own schema (schema validation is the tool's
// concern; the driver only applies the cross-cutting gates).
type Request struct {
	ToolName             string
	Prompt               string
	SystemPrompt         string
	Model                string
	AutoCategory         string
	Temperature          float64
	ContinuationID       string
	Files                []string
	DirectCode           string
	SupportsContinuation bool

	// ThinkingBudgetPercent is forwarded to providers whose models take
	// a reasoning budget as a percentage of their thinking-token
	// ceiling. Zero means the provider default.
	ThinkingBudgetPercent int

	// Precommit, when set, asks the assembler to weave a diff section
	// ahead of file context. Only the precommit
	// tool sets this.
	Precommit *PrecommitOptions
}

// PrecommitOptions selects the repository root and diff-extraction mode
// for the precommit tool's diff engine pass.
type PrecommitOptions struct {
	Root       string
	Mode       diffengine.Mode
	CompareRef string
	MaxDepth   int
}

// validatePromptSize applies the hard prompt-size ceiling. Exceeding it
// returns TooLargeError rather than attempting the call, matching the
// "resend_prompt" status callers expect for oversized prompts.
func validatePromptSize(prompt string) error {
	if len(prompt) > MaxPromptChars {
		return &TooLargeError{What: "prompt", Limit: MaxPromptChars, Got: len(prompt)}
	}
	return nil
}

// validateRequestPath resolves a caller-supplied path through the
// sandbox validator and additionally rejects self-ingestion of the
// server's own source tree.
func validateRequestPath(v *sandbox.Validator, path string) (string, error) {
	resolved, err := v.ValidatePath(path)
	if err != nil {
		return "", err
	}
	if sandbox.IsSignatureDirectory(resolved) {
		return "", &SelfIngestError{Path: path}
	}
	return resolved, nil
}
