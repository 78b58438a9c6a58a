// Package prompt composes the analysis prompts handed back to the calling
// agent. The wording and heading structure of the generated text is a
// contract: downstream consumers key off the section names.
package prompt

import (
	"fmt"
	"strings"
)

// Library holds the analysis dimensions available for prompt generation:
// the built-in ten plus any custom dimensions loaded from disk.
type Library struct {
	order  []string
	blocks map[string]string
}

// NewLibrary returns a Library seeded with the built-in dimensions.
func NewLibrary() *Library {
	l := &Library{
		order:  make([]string, 0, len(builtinOrder)),
		blocks: make(map[string]string, len(builtinOrder)),
	}
	for _, key := range builtinOrder {
		l.order = append(l.order, key)
		l.blocks[key] = builtinDimensions[key]
	}
	return l
}

// Keys returns all dimension keys in presentation order.
func (l *Library) Keys() []string {
	keys := make([]string, len(l.order))
	copy(keys, l.order)
	return keys
}

// Has reports whether a dimension key is known.
func (l *Library) Has(key string) bool {
	_, ok := l.blocks[key]
	return ok
}

// add registers a dimension block. The caller has already validated the key.
func (l *Library) add(key, block string) {
	l.order = append(l.order, key)
	l.blocks[key] = block
}

// FormatDimensions renders dimension description blocks for inclusion in a
// prompt. With no keys it renders every known dimension in presentation
// order; otherwise the requested ones in caller order. Unknown keys are
// silently skipped.
func (l *Library) FormatDimensions(keys []string) string {
	if len(keys) == 0 {
		keys = l.order
	}

	var b strings.Builder
	for _, key := range keys {
		block, ok := l.blocks[key]
		if !ok {
			continue
		}
		b.WriteString(block)
		b.WriteString("\n\n")
	}
	return b.String()
}

// Generate builds the complete analysis prompt for one piece of code.
// originalCode is optional; when present the prompt gains a comparison
// section. focus narrows the dimensions, nil means all of them.
func (l *Library) Generate(code, language, originalCode string, focus []string) string {
	var b strings.Builder

	b.WriteString("# Code Quality Analysis\n\n")
	b.WriteString("You are performing a comprehensive code quality analysis on the provided code.\n")
	b.WriteString("Your task is to identify potential quality issues across multiple dimensions and provide\n")
	b.WriteString("constructive feedback to improve the code.\n\n")

	b.WriteString("## Code to Analyze\n\n")
	writeFence(&b, language, code)

	if originalCode != "" {
		b.WriteString("## Original Code (for comparison)\n\n")
		writeFence(&b, language, originalCode)
		b.WriteString("When analyzing, pay particular attention to changes between the original and new code.\n")
		b.WriteString("Identify any regressions, unintended modifications, or improvements.\n\n")
	}

	b.WriteString("## Analysis Dimensions\n\n")
	b.WriteString("Analyze the code for the following quality dimensions:\n\n")
	b.WriteString(l.FormatDimensions(focus))

	b.WriteString("## Instructions\n\n")
	b.WriteString("1. For each applicable dimension, identify specific issues in the code\n")
	b.WriteString("2. Provide a severity level for each issue (Critical, High, Medium, Low)\n")
	b.WriteString("3. Explain why each issue is problematic, with reference to specific line numbers\n")
	b.WriteString("4. Suggest concrete improvements to address each issue\n")
	b.WriteString("5. If no issues are found in a dimension, explicitly state that\n\n")

	b.WriteString("## Response Format\n\n")
	b.WriteString("Organize your analysis by dimension as follows:\n\n")
	b.WriteString("### [Dimension Name]\n\n")
	b.WriteString("**Issues Found**: [Yes/No]\n\n")
	b.WriteString("[If issues are found, list each one as follows]\n\n")
	b.WriteString("- **Issue**: [Brief description]\n")
	b.WriteString("- **Severity**: [Critical/High/Medium/Low]\n")
	b.WriteString("- **Location**: [Line number(s)]\n")
	b.WriteString("- **Explanation**: [Why this is a problem]\n")
	b.WriteString("- **Recommendation**: [Specific improvement suggestion]\n\n")

	b.WriteString("## Final Summary\n\n")
	b.WriteString("After analyzing all dimensions, provide a concise summary of:\n")
	b.WriteString("1. The most critical issues to address\n")
	b.WriteString("2. Overall code quality assessment\n")
	b.WriteString("3. Key recommendations for improvement\n")

	return b.String()
}

func writeFence(b *strings.Builder, language, code string) {
	fmt.Fprintf(b, "```%s\n", language)
	b.WriteString(code)
	b.WriteString("\n```\n\n")
}
