package context

import (
	stdcontext "context"
	"strings"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/conversation"
	"github.com/mercator-hq/routecore/pkg/sandbox"
)

// Request describes one tool call's inputs to the assembler.
type Request struct {
	ContinuationID string
	RequestedFiles []string
	DirectCode     string
	SystemPrompt   string
	UserPrompt     string
	Splits         []Split
	Validator      *sandbox.Validator
	Extensions     map[string]bool
	LineNumbers    bool

	// Diffs, when non-nil, weaves a precommit diff section ahead of
	// packed file content. DiffBudget is reserved from
	// the overall content budget before files are packed; unused
	// reservation flows back to file packing.
	Diffs      *DiffOptions
	DiffBudget int
}

// Assembled is the prompt text ready to hand to a provider, plus the
// bookkeeping the tool driver needs to record the resulting turn.
type Assembled struct {
	Prompt         string
	FilesEmbedded  []string
	FilesSkipped   []string
	ThreadID       string
	AlreadyEmbedded map[string]bool
}

// Assembler builds provider prompts, dedup'ing against a
// continuation thread's already-embedded files and packing the
// remainder into the selected model's content budget.
type Assembler struct {
	store *conversation.Store
}

// New wraps a conversation Store. Pass nil for a store to disable
// continuation lookups entirely (every call behaves as a fresh thread).
func New(store *conversation.Store) *Assembler {
	return &Assembler{store: store}
}

// Assemble builds the full prompt for one tool call.
func (a *Assembler) Assemble(ctx stdcontext.Context, req Request, caps capabilities.ModelCapabilities) (*Assembled, error) {
	var thread *conversation.Thread
	alreadyEmbedded := make(map[string]bool)

	if req.ContinuationID != "" && a.store != nil {
		t, err := a.store.ResolveContinuation(ctx, req.ContinuationID)
		if err == nil && t != nil {
			thread = t
			alreadyEmbedded = thread.FilesEmbedded()
		}
		// A missing or expired continuation id degrades to a fresh
		// thread rather than failing the call.
	}

	newFiles := NewFiles(req.RequestedFiles, alreadyEmbedded)

	budget := ContentBudget(caps.ContextWindow)
	conversationTokens := ConversationContextTokens(thread)
	budget -= conversationTokens
	if budget < 0 {
		budget = 0
	}

	var diffSection string
	if req.Diffs != nil {
		diffBudget := req.DiffBudget
		if diffBudget <= 0 || diffBudget > budget {
			diffBudget = budget
		}
		var remaining int
		diffSection, _, remaining = buildDiffSection(*req.Diffs, diffBudget)
		budget -= diffBudget - remaining
		if budget < 0 {
			budget = 0
		}
	}

	packResult := sandbox.ReadFilesToBudget(req.Validator, newFiles, req.DirectCode, sandbox.PackOptions{
		MaxTokens:    budget,
		LineNumbers:  req.LineNumbers,
		MaxFileBytes: sandbox.DefaultMaxFileBytes,
		Extensions:   req.Extensions,
	})

	var b strings.Builder
	if convoSection := RenderConversationContext(thread); convoSection != "" {
		b.WriteString(convoSection)
		b.WriteString("\n\n")
	}
	if diffSection != "" {
		b.WriteString(diffSection)
		b.WriteString("\n\n")
	}
	b.WriteString(packResult.Content)
	if packResult.Content != "" {
		b.WriteString("\n\n")
	}
	b.WriteString(req.SystemPrompt)
	b.WriteString("\n\n")
	b.WriteString(req.UserPrompt)

	threadID := req.ContinuationID
	if thread != nil {
		threadID = thread.ID
	}

	return &Assembled{
		Prompt:          b.String(),
		FilesEmbedded:   packResult.FilesRead,
		FilesSkipped:    packResult.FilesSkipped,
		ThreadID:        threadID,
		AlreadyEmbedded: alreadyEmbedded,
	}, nil
}
