// Package categorizer assigns a spending category to a parsed transaction.
// A deterministic keyword pass runs first; only when no keyword of any
// category matches does the caller fall back to the AI completion service.
package categorizer

import (
	"regexp"
	"sort"
	"strings"

	"gastonauta/internal/models"
)

// ModelKeyword marks results produced by the keyword pass.
const ModelKeyword = "keyword"

// Result is one categorization outcome: the winning category name, how sure
// the matcher is, and which model produced it.
type Result struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Model      string  `json:"model"`
}

// DefaultPriorities ranks the stock Chilean categories. Specific commerce
// categories come before generic ones because generic keyword sets (most of
// all "servicios") false-positive inside text that a specific category
// describes better. Lower rank wins.
var DefaultPriorities = map[string]int{
	"supermercado":    0,
	"combustible":     1,
	"restaurante":     2,
	"transporte":      3,
	"entretenimiento": 4,
	"servicios":       5,
}

const (
	// unlistedRank places user-created categories between the known
	// specific ones and the catch-all.
	unlistedRank = 50
	catchAllRank = 100
)

// DefaultCatchAll is the category checked last and used when the AI response
// cannot be mapped to a known name.
const DefaultCatchAll = "Otros"

// KeywordMatcher matches transaction text against per-category keyword
// lists in a fixed priority order. The priority table and catch-all name
// are injected at construction so tests and callers never share state.
type KeywordMatcher struct {
	priorities map[string]int
	catchAll   string
}

func NewKeywordMatcher(priorities map[string]int, catchAll string) *KeywordMatcher {
	p := make(map[string]int, len(priorities))
	for name, rank := range priorities {
		p[strings.ToLower(name)] = rank
	}
	if catchAll == "" {
		catchAll = DefaultCatchAll
	}
	return &KeywordMatcher{priorities: p, catchAll: strings.ToLower(catchAll)}
}

// NewDefaultKeywordMatcher builds a matcher with the stock priority table.
func NewDefaultKeywordMatcher() *KeywordMatcher {
	return NewKeywordMatcher(DefaultPriorities, DefaultCatchAll)
}

func (m *KeywordMatcher) rank(name string) int {
	lower := strings.ToLower(name)
	if lower == m.catchAll {
		return catchAllRank
	}
	if r, ok := m.priorities[lower]; ok {
		return r
	}
	return unlistedRank
}

// Match scans body and merchant text against every category's keywords in
// priority order. A word-boundary hit wins with confidence 1.0; a plain
// substring hit with 0.9. Returns nil when nothing matches, which signals
// the caller to fall back to the AI categorizer.
//
// Substring matching is deliberately permissive: a short keyword can match
// inside an unrelated longer word. Only the word-boundary tier avoids that.
func (m *KeywordMatcher) Match(bodyPlain, merchant string, categories []models.Category) *Result {
	search := strings.ToLower(bodyPlain + " " + merchant)
	if strings.TrimSpace(search) == "" {
		return nil
	}

	ordered := make([]models.Category, len(categories))
	copy(ordered, categories)
	sort.SliceStable(ordered, func(i, j int) bool {
		return m.rank(ordered[i].Name) < m.rank(ordered[j].Name)
	})

	for _, cat := range ordered {
		for _, keyword := range cat.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword == "" {
				continue
			}

			// Keywords are user-supplied free text; metacharacters
			// must not leak into the pattern.
			re, err := regexp.Compile(`\b` + regexp.QuoteMeta(keyword) + `\b`)
			if err == nil && re.MatchString(search) {
				return &Result{Category: cat.Name, Confidence: 1.0, Model: ModelKeyword}
			}
			if strings.Contains(search, keyword) {
				return &Result{Category: cat.Name, Confidence: 0.9, Model: ModelKeyword}
			}
		}
	}

	return nil
}
