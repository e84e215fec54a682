package transport

import (
	"sort"

	"github.com/mercator-hq/routecore/pkg/diffengine"
	"github.com/mercator-hq/routecore/pkg/selection"
)

// Temperature defaults by tool temperament.
const (
	temperatureAnalytical = 0.2
	temperatureBalanced   = 0.5
	temperatureCreative   = 0.7
)

// thinkingModePercent maps the caller-facing thinking_mode tier onto a
// percentage of the model's thinking-token ceiling.
var thinkingModePercent = map[string]int{
	"minimal": 1,
	"low":     8,
	"medium":  33,
	"high":    67,
	"max":     100,
}

// Tool is one entry in the catalog: everything the loop needs to list
// the tool, validate a call, and hand it to the driver. SystemPrompt is
// opaque to the rest of the system.
type Tool struct {
	Name                 string
	Description          string
	Category             selection.ToolModelCategory
	DefaultTemperature   float64
	SystemPrompt         string
	SupportsContinuation bool
	IsPrecommit          bool
}

// defaultTools is the shipped catalog. Order is the order tools/list
// presents them in.
func defaultTools() []Tool {
	return []Tool{
		{
			Name: "chat",
			Description: "General collaborative chat: brainstorm, compare approaches, get a " +
				"second opinion, or talk through a problem with optional file context.",
			Category:             selection.Balanced,
			DefaultTemperature:   temperatureBalanced,
			SupportsContinuation: true,
			SystemPrompt: "You are a senior engineering collaborator. Engage directly with the " +
				"question, ground your answer in any provided files, and say so plainly when " +
				"you are uncertain or when the provided context is insufficient.",
		},
		{
			Name: "thinkdeep",
			Description: "Extended reasoning on a hard problem: architecture decisions, tricky " +
				"bugs, design trade-offs. Slower and more thorough than chat.",
			Category:             selection.ExtendedReasoning,
			DefaultTemperature:   temperatureCreative,
			SupportsContinuation: true,
			SystemPrompt: "Work the problem from first principles. Enumerate the plausible " +
				"approaches, weigh them against the constraints visible in the provided " +
				"context, and commit to a recommendation with its failure modes stated.",
		},
		{
			Name: "codereview",
			Description: "Review code for bugs, security issues, and maintainability problems, " +
				"ranked by severity with concrete fixes.",
			Category:             selection.ExtendedReasoning,
			DefaultTemperature:   temperatureAnalytical,
			SupportsContinuation: true,
			SystemPrompt: "Review the provided code. Report findings ordered by severity " +
				"(critical, high, medium, low), each with the file and line it anchors to, " +
				"why it is wrong, and the smallest fix. Do not pad with style nits unless asked.",
		},
		{
			Name: "debug",
			Description: "Root-cause a specific error or misbehavior from symptoms, logs, and " +
				"relevant source files.",
			Category:             selection.ExtendedReasoning,
			DefaultTemperature:   temperatureAnalytical,
			SupportsContinuation: true,
			SystemPrompt: "Diagnose the reported failure. Form ranked hypotheses from the " +
				"evidence, identify the minimal additional observation that would " +
				"discriminate between them, and propose the fix for the leading hypothesis.",
		},
		{
			Name: "analyze",
			Description: "Explore and explain a codebase: structure, data flow, dependencies, " +
				"and how a given concern is implemented.",
			Category:             selection.Balanced,
			DefaultTemperature:   temperatureAnalytical,
			SupportsContinuation: true,
			SystemPrompt: "Analyze the provided files and answer the question about them. " +
				"Describe what the code actually does, not what its names suggest; cite " +
				"specific files and functions for every claim.",
		},
		{
			Name: "precommit",
			Description: "Validate pending source-control changes before committing: reviews " +
				"staged/unstaged diffs across all repositories under a path.",
			Category:             selection.ExtendedReasoning,
			DefaultTemperature:   temperatureAnalytical,
			SupportsContinuation: true,
			IsPrecommit:          true,
			SystemPrompt: "Review the pending changes in the provided diffs. Check that the " +
				"changes are complete, self-consistent, and free of debugging leftovers, " +
				"secrets, and unintended files. Report blockers separately from suggestions.",
		},
		{
			Name: "testgen",
			Description: "Generate tests for given code, following the conventions of any " +
				"provided example tests.",
			Category:             selection.ExtendedReasoning,
			DefaultTemperature:   temperatureAnalytical,
			SupportsContinuation: true,
			SystemPrompt: "Write tests for the code under test. Cover the happy path, the " +
				"documented edge cases, and the failure paths; match the framework and " +
				"naming conventions of the example tests when examples are provided.",
		},
		{
			Name: "refactor",
			Description: "Propose staged refactorings for code smells, decomposition, and " +
				"modernization opportunities.",
			Category:             selection.ExtendedReasoning,
			DefaultTemperature:   temperatureAnalytical,
			SupportsContinuation: true,
			SystemPrompt: "Identify refactoring opportunities in the provided code, ordered " +
				"so that each step leaves the code working. For each: what to change, why " +
				"it pays for itself, and the risk of the transformation.",
		},
	}
}

// inputSchema builds the tool's JSON schema. When autoMode is set the
// "model" property is required and enumerates availableModels, so hosts
// surface model selection to the end user instead of silently relying
// on a server-side default.
func (t Tool) inputSchema(autoMode bool, availableModels []string) map[string]any {
	props := map[string]any{
		"prompt": map[string]any{
			"type":        "string",
			"description": "The question or task for the model.",
		},
		"continuation_id": map[string]any{
			"type":        "string",
			"description": "Thread id from a prior response to continue that conversation.",
		},
		"files": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Absolute paths of files or directories to include as context.",
		},
		"temperature": map[string]any{
			"type":    "number",
			"minimum": 0,
			"maximum": 2,
		},
		"thinking_mode": map[string]any{
			"type": "string",
			"enum": []string{"minimal", "low", "medium", "high", "max"},
		},
		"use_websearch": map[string]any{
			"type": "boolean",
		},
	}

	model := map[string]any{"type": "string"}
	required := []string{"prompt"}
	if autoMode {
		enum := append([]string(nil), availableModels...)
		sort.Strings(enum)
		model["enum"] = enum
		required = append(required, "model")
	}
	props["model"] = model

	if t.IsPrecommit {
		props["path"] = map[string]any{
			"type":        "string",
			"description": "Absolute path to search for repositories with pending changes.",
		}
		props["compare_to"] = map[string]any{
			"type":        "string",
			"description": "Ref to diff against instead of the staged/unstaged sets.",
		}
		props["include_staged"] = map[string]any{"type": "boolean"}
		props["include_unstaged"] = map[string]any{"type": "boolean"}
		required = append(required, "path")
	}

	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

// diffMode derives the diff-extraction mode from the precommit
// arguments: an explicit compare_to ref wins, unstaged-only requests
// select the working-tree mode, everything else defaults to staged.
func diffMode(args *toolArguments) (diffengine.Mode, string) {
	if args.CompareTo != "" {
		return diffengine.CompareToRef, args.CompareTo
	}
	staged := args.IncludeStaged == nil || *args.IncludeStaged
	unstaged := args.IncludeUnstaged != nil && *args.IncludeUnstaged
	if !staged && unstaged {
		return diffengine.IncludeUnstaged, ""
	}
	return diffengine.IncludeStaged, ""
}
