package context

import (
	"fmt"
	"strings"

	"github.com/mercator-hq/routecore/pkg/conversation"
	"github.com/mercator-hq/routecore/pkg/sandbox"
)

// conversationContextHeader and footer bracket the compact prior-turns
// summary prepended to a continuation prompt.
const (
	conversationContextHeader = "--- BEGIN CONVERSATION_CONTEXT ---"
	conversationContextFooter = "--- END CONVERSATION_CONTEXT ---"

	// briefTextLimit bounds how much of a turn's content is quoted in
	// the summary, keeping the section itself cheap against the budget.
	briefTextLimit = 200
)

// RenderConversationContext builds the compact CONVERSATION_CONTEXT
// section for a thread's prior turns: role, tool, model, and a
// truncated excerpt of each turn's content.
func RenderConversationContext(thread *conversation.Thread) string {
	if thread == nil || len(thread.Turns) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(conversationContextHeader)
	b.WriteByte('\n')
	for i, turn := range thread.Turns {
		b.WriteString(fmt.Sprintf("[%d] role=%s tool=%s model=%s: %s\n",
			i+1, turn.Role, turn.ToolName, turn.ModelName, brief(turn.Content)))
	}
	b.WriteString(conversationContextFooter)
	return b.String()
}

func brief(content string) string {
	content = strings.TrimSpace(content)
	if len(content) <= briefTextLimit {
		return content
	}
	return content[:briefTextLimit] + "..."
}

// ConversationContextTokens returns the token cost of a conversation
// context section, for reserving it against the content budget.
func ConversationContextTokens(thread *conversation.Thread) int {
	return sandbox.EstimateTokens(RenderConversationContext(thread))
}
