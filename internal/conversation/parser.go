// Package conversation turns lines typed into the shell into intents.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/hammamikhairi/barmate/internal/domain"
	"github.com/hammamikhairi/barmate/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentParser = (*KeywordParser)(nil)

// KeywordParser matches shell input to intents using keywords and simple
// patterns. Capture groups become the intent's Args.
type KeywordParser struct {
	log      *logger.Logger
	patterns []patternRule
}

type patternRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// NewKeywordParser creates a keyword-based intent parser.
func NewKeywordParser(log *logger.Logger) *KeywordParser {
	p := &KeywordParser{log: log}
	p.patterns = []patternRule{
		{regexp.MustCompile(`(?i)^(?:ingredients|inventory|inv|stock|i)$`), domain.IntentListIngredients},
		{regexp.MustCompile(`(?i)^(?:add\s+ingredient|ai|buy)\s+(.+)$`), domain.IntentAddIngredient},
		{regexp.MustCompile(`(?i)^(?:set|have)\s+(.+?)\s+(\S+)$`), domain.IntentEditIngredient},
		{regexp.MustCompile(`(?i)^(?:delete\s+ingredient|rm\s+ingredient|di)\s+(.+)$`), domain.IntentDeleteIngredient},
		{regexp.MustCompile(`(?i)^(?:recipes|list|ls|r)$`), domain.IntentListRecipes},
		{regexp.MustCompile(`(?i)^(?:show|view|open)\s+(.+)$`), domain.IntentShowRecipe},
		{regexp.MustCompile(`(?i)^(?:add\s+recipe|ar|mix)\s+([^:]+?)\s*:\s*(.+)$`), domain.IntentAddRecipe},
		{regexp.MustCompile(`(?i)^(?:delete\s+recipe|rm\s+recipe|dr)\s+(.+)$`), domain.IntentDeleteRecipe},
		{regexp.MustCompile(`(?i)^sort(?:\s+by)?(?:\s+(\S+))?(?:\s+(asc|desc|ascending|descending))?$`), domain.IntentSortRecipes},
		{regexp.MustCompile(`(?i)^(?:in-stock|instock|available|can\s+make|toggle)$`), domain.IntentToggleInStock},
		{regexp.MustCompile(`(?i)^(?:help|h|\?)$`), domain.IntentHelp},
		{regexp.MustCompile(`(?i)^(?:quit|exit|q|bye)$`), domain.IntentQuit},
	}
	return p
}

// Parse converts user input into an intent. Only the ends of the line are
// trimmed, so names keep their inner spacing. Unmatched input yields
// IntentUnknown with the trimmed line as its only argument.
func (p *KeywordParser) Parse(ctx context.Context, input string) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}

	p.log.Debug("parsing input: %q", trimmed)

	for _, rule := range p.patterns {
		m := rule.regex.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		p.log.Debug("matched intent: %s", rule.intent)

		in := &domain.Intent{Type: rule.intent}
		for _, g := range m[1:] {
			in.Args = append(in.Args, strings.TrimSpace(g))
		}
		if rule.intent == domain.IntentAddRecipe {
			in.Args = append(in.Args[:1], splitItems(in.Args[1])...)
		}
		return in, nil
	}

	p.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Args: []string{trimmed}}, nil
}

// splitItems breaks "gin=2, lime=1" into its comma-separated specs.
func splitItems(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
