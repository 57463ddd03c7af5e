package assistant

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Parsed is the result of running the free-text transaction heuristics.
type Parsed struct {
	Complete bool  // amount and type both detected
	HasAny   bool  // at least one field detected
	Data     Draft // the detected fields
}

// Parser extracts a candidate amount, type, category and date from a
// free-text sentence. This is heuristic keyword matching, not a grammar:
// with ambiguous input the first match wins and no confidence is exposed
// beyond the Complete/HasAny flags.
type Parser struct {
	amountRe  *regexp.Regexp
	incomeRe  *regexp.Regexp
	expenseRe *regexp.Regexp
	isoDateRe *regexp.Regexp
	category  *categoryEngine
}

// categoryRule maps a category key to the words that imply it. The slice
// order below is the detection priority.
type categoryRule struct {
	Key   string
	Words []string
}

var categoryRules = []categoryRule{
	{Key: "food", Words: []string{"food", "groceries", "grocery", "restaurant", "lunch", "dinner"}},
	{Key: "rent", Words: []string{"rent"}},
	{Key: "transport", Words: []string{"transport", "bus", "train", "uber", "taxi", "fuel", "petrol", "gas"}},
	{Key: "shopping", Words: []string{"shopping", "clothes", "amazon", "store"}},
	{Key: "bills", Words: []string{"bill", "bills", "electric", "power", "water", "internet"}},
	{Key: "health", Words: []string{"health", "doctor", "pharmacy", "medicine"}},
	{Key: "entertainment", Words: []string{"movie", "netflix", "game", "entertainment"}},
}

// NewParser compiles the parsing patterns and the category engine.
func NewParser() *Parser {
	return &Parser{
		amountRe:  regexp.MustCompile(`(?:\$)?(\d+(?:\.\d{1,2})?)`),
		incomeRe:  regexp.MustCompile(`income|salary|earned|received`),
		expenseRe: regexp.MustCompile(`spent|spend|pay|paid|expense|bought|buy`),
		isoDateRe: regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`),
		category:  newCategoryEngine(categoryRules),
	}
}

// Parse runs the heuristics over the sentence.
func (p *Parser) Parse(text string) Parsed {
	t := Normalize(text)

	var draft Draft

	if m := p.amountRe.FindStringSubmatch(t); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			draft.Amount = &v
		}
	}

	// Income words take priority when both classes are present.
	if p.incomeRe.MatchString(t) {
		draft.Type = TypeIncome
	} else if p.expenseRe.MatchString(t) {
		draft.Type = TypeExpense
	}

	draft.Category = p.category.Match(t)

	switch {
	case strings.Contains(t, "today"):
		draft.Date = "today"
	case strings.Contains(t, "yesterday"):
		draft.Date = "yesterday"
	default:
		if m := p.isoDateRe.FindStringSubmatch(t); m != nil {
			draft.Date = m[1]
		}
	}

	return Parsed{
		Complete: draft.Amount != nil && draft.Type != "",
		HasAny:   draft.Amount != nil || draft.Type != "" || draft.Category != "" || draft.Date != "",
		Data:     draft,
	}
}

// categoryEngine finds category words as substrings in a single pass using
// an Aho-Corasick automaton. All words share one automaton; each pattern
// index maps back to the position of its category in the rule list, and the
// lowest position among the hits wins, which preserves the rule-order
// priority of a sequential scan.
type categoryEngine struct {
	matcher *ahocorasick.Matcher
	ruleIdx []int    // pattern index -> rule position
	keys    []string // rule position -> category key
}

func newCategoryEngine(rules []categoryRule) *categoryEngine {
	e := &categoryEngine{keys: make([]string, len(rules))}

	var words []string
	for i, rule := range rules {
		e.keys[i] = rule.Key
		for _, w := range rule.Words {
			words = append(words, w)
			e.ruleIdx = append(e.ruleIdx, i)
		}
	}

	e.matcher = ahocorasick.NewStringMatcher(words)
	return e
}

// Match returns the highest-priority category whose word list has a
// substring hit in text, or "" when nothing matches.
func (e *categoryEngine) Match(text string) string {
	hits := e.matcher.Match([]byte(text))
	if len(hits) == 0 {
		return ""
	}

	best := len(e.keys)
	for _, h := range hits {
		if h >= 0 && h < len(e.ruleIdx) && e.ruleIdx[h] < best {
			best = e.ruleIdx[h]
		}
	}
	if best == len(e.keys) {
		return ""
	}
	return e.keys[best]
}
