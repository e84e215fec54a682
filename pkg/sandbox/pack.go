package sandbox

import (
	"fmt"
	"os"
	"strings"
)

// DefaultMaxFileBytes is the oversize threshold beyond which a file
// becomes a stub instead of being read in full.
const DefaultMaxFileBytes = 1_000_000

// maxSkippedFilesListed bounds the skipped-files footer.
const maxSkippedFilesListed = 10

// PackOptions configures ReadFilesToBudget.
type PackOptions struct {
	// MaxTokens is the total token budget available for packed content.
	MaxTokens int

	// Reserve is subtracted from MaxTokens before packing begins,
	// leaving headroom for the prompt and the model's reply.
	Reserve int

	// LineNumbers turns on a right-aligned line-number prefix per file.
	// Off by default for backward compatibility.
	LineNumbers bool

	// MaxFileBytes overrides DefaultMaxFileBytes; zero means default.
	MaxFileBytes int

	// Extensions filters directory-walk expansion; nil defaults to
	// CodeExtensions.
	Extensions map[string]bool
}

// PackResult is ReadFilesToBudget's return value.
type PackResult struct {
	// Content is the assembled blob, ready to append to a prompt.
	Content string

	// Summary is a short, human-readable account of what was packed.
	Summary string

	// FilesRead lists every file whose content was embedded.
	FilesRead []string

	// FilesSkipped lists every expanded file that did not fit the budget.
	FilesSkipped []string
}

// ReadFilesToBudget expands paths, optionally includes directCode, and
// packs file content into maxTokens (after subtracting reserve),
// wrapping each file with BEGIN/END FILE delimiters. It never
// aborts on a single bad file: inaccessible, oversize, or non-file
// entries become inline stubs instead.
func ReadFilesToBudget(v *Validator, paths []string, directCode string, opts PackOptions) PackResult {
	maxFileBytes := opts.MaxFileBytes
	if maxFileBytes <= 0 {
		maxFileBytes = DefaultMaxFileBytes
	}

	available := opts.MaxTokens - opts.Reserve
	var contentParts []string
	var summaryParts []string
	var filesRead, filesSkipped []string
	totalTokens := 0

	if directCode != "" {
		formatted := fmt.Sprintf("\n--- BEGIN DIRECT CODE ---\n%s\n--- END DIRECT CODE ---\n", directCode)
		codeTokens := EstimateTokens(formatted)
		if codeTokens <= available-totalTokens {
			contentParts = append(contentParts, formatted)
			totalTokens += codeTokens
			preview := directCode
			if len(preview) > 50 {
				preview = preview[:50] + "..."
			}
			summaryParts = append(summaryParts, fmt.Sprintf("Direct code: %s", preview))
		} else {
			summaryParts = append(summaryParts, "Direct code skipped (too large)")
		}
	}

	expanded := ExpandPaths(v, paths, opts.Extensions)
	if len(expanded) == 0 && len(paths) > 0 {
		contentParts = append(contentParts, fmt.Sprintf("\n--- NO FILES FOUND ---\nProvided paths: %s\n--- END ---\n", strings.Join(paths, ", ")))
	}

	for _, path := range expanded {
		if totalTokens >= available {
			filesSkipped = append(filesSkipped, path)
			continue
		}

		formatted, tokens := packOneFile(path, maxFileBytes, opts.LineNumbers)
		if totalTokens+tokens <= available {
			contentParts = append(contentParts, formatted)
			totalTokens += tokens
			filesRead = append(filesRead, path)
		} else {
			filesSkipped = append(filesSkipped, path)
		}
	}

	if len(filesRead) > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("Read %d file(s)", len(filesRead)))
	}
	if len(filesSkipped) > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("Skipped %d file(s) (token limit)", len(filesSkipped)))
	}
	if totalTokens > 0 {
		summaryParts = append(summaryParts, fmt.Sprintf("~%d tokens used", totalTokens))
	}

	if len(filesSkipped) > 0 {
		var b strings.Builder
		b.WriteString("\n\n--- SKIPPED FILES (TOKEN LIMIT) ---\n")
		fmt.Fprintf(&b, "Total skipped: %d\n", len(filesSkipped))
		limit := filesSkipped
		if len(limit) > maxSkippedFilesListed {
			limit = limit[:maxSkippedFilesListed]
		}
		for _, f := range limit {
			fmt.Fprintf(&b, "  - %s\n", f)
		}
		if len(filesSkipped) > maxSkippedFilesListed {
			fmt.Fprintf(&b, "  ... and %d more\n", len(filesSkipped)-maxSkippedFilesListed)
		}
		b.WriteString("--- END SKIPPED FILES ---\n")
		contentParts = append(contentParts, b.String())
	}

	summary := "No input provided"
	if len(summaryParts) > 0 {
		summary = strings.Join(summaryParts, " | ")
	}

	return PackResult{
		Content:      strings.Join(contentParts, "\n\n"),
		Summary:      summary,
		FilesRead:    filesRead,
		FilesSkipped: filesSkipped,
	}
}

// packOneFile reads and wraps a single already-validated file path,
// producing an error stub instead of failing when the file is oversize,
// missing, or otherwise unreadable.
func packOneFile(path string, maxFileBytes int, lineNumbers bool) (string, int) {
	info, err := os.Stat(path)
	if err != nil {
		content := fmt.Sprintf("\n--- FILE NOT FOUND: %s ---\nError: %v\n--- END FILE ---\n", path, err)
		return content, EstimateTokens(content)
	}
	if !info.Mode().IsRegular() {
		content := fmt.Sprintf("\n--- NOT A FILE: %s ---\nError: path is not a regular file\n--- END FILE ---\n", path)
		return content, EstimateTokens(content)
	}
	if info.Size() > int64(maxFileBytes) {
		content := fmt.Sprintf("\n--- FILE TOO LARGE: %s ---\nFile size: %d bytes (max: %d)\n--- END FILE ---\n", path, info.Size(), maxFileBytes)
		return content, EstimateTokens(content)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		content := fmt.Sprintf("\n--- ERROR ACCESSING FILE: %s ---\nError: %v\n--- END FILE ---\n", path, err)
		return content, EstimateTokens(content)
	}

	text := normalizeLineEndings(string(raw))
	if lineNumbers {
		text = addLineNumbers(text)
	}

	formatted := fmt.Sprintf("\n--- BEGIN FILE: %s ---\n%s\n--- END FILE: %s ---\n", path, text, path)
	return formatted, EstimateTokens(formatted)
}

// normalizeLineEndings collapses CRLF and lone CR to LF so line
// numbering stays stable across file origin OSes.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// addLineNumbers prefixes each line with a right-aligned, 1-based line
// number. The field width is at least 4 digits, growing to 5 once the
// file has 10,000 or more lines.
func addLineNumbers(text string) string {
	lines := strings.Split(text, "\n")
	width := 4
	if len(lines) >= 10_000 {
		width = 5
	}

	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%*d│ %s", width, i+1, line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
