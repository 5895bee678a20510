package keywords

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Match is the verdict for one post text. Trigger and exclusion matching are
// both computed: exclusion always wins, but callers get the full picture for
// logging and audit.
type Match struct {
	Triggers   []string
	Excluded   bool
	Exclusions []string
	Language   string // ISO code of the first detected language, empty if none
}

type trigger struct {
	folded   string
	display  string
	langCode string // set when the phrase was expanded from a template
}

type exclusion struct {
	folded  string
	display string
}

// Matcher performs case-insensitive phrase matching against the configured
// trigger, exclusion, and language tables. It is pure: the same text always
// yields the same Match.
type Matcher struct {
	caser      cases.Caser
	triggers   []trigger
	exclusions []exclusion
	languages  []Language
}

// NewMatcher builds a matcher. Templates are expanded once per language name
// and alias, template-major, and the expanded phrases precede the literal
// triggers in match order.
func NewMatcher(templates, triggers, exclusions []string, languages []Language) *Matcher {
	caser := cases.Fold()

	m := &Matcher{
		caser:     caser,
		languages: languages,
	}

	for _, tpl := range templates {
		for _, lang := range languages {
			names := append([]string{lang.Name}, lang.Aliases...)
			for _, name := range names {
				phrase := strings.ReplaceAll(tpl, LanguagePlaceholder, strings.ToLower(name))
				m.triggers = append(m.triggers, trigger{
					folded:   caser.String(phrase),
					display:  phrase,
					langCode: lang.Code,
				})
			}
		}
	}

	for _, kw := range triggers {
		m.triggers = append(m.triggers, trigger{folded: caser.String(kw), display: kw})
	}

	for _, kw := range exclusions {
		m.exclusions = append(m.exclusions, exclusion{folded: caser.String(kw), display: kw})
	}

	return m
}

// Default returns a matcher over the built-in keyword and language tables.
func Default() *Matcher {
	return NewMatcher(TriggerTemplates(), TriggerKeywords(), ExcludeKeywords(), Languages())
}

// Match evaluates the text against all tables.
func (m *Matcher) Match(text string) Match {
	folded := m.caser.String(text)

	var result Match

	for _, ex := range m.exclusions {
		if strings.Contains(folded, ex.folded) {
			result.Exclusions = append(result.Exclusions, ex.display)
		}
	}

	result.Excluded = len(result.Exclusions) > 0

	templatedLangs := make(map[string]bool)

	for _, tr := range m.triggers {
		if !strings.Contains(folded, tr.folded) {
			continue
		}

		result.Triggers = append(result.Triggers, tr.display)

		if tr.langCode != "" {
			templatedLangs[tr.langCode] = true
		}
	}

	result.Language = m.detectLanguage(folded, templatedLangs)

	return result
}

// detectLanguage returns the code of the first configured language with any
// evidence in the text: a templated trigger match, its English name or alias,
// its native name, or its ISO code as a whole token. First configured match
// wins; the table order is the tie-break policy.
func (m *Matcher) detectLanguage(folded string, templatedLangs map[string]bool) string {
	tokens := tokenSet(folded)

	for _, lang := range m.languages {
		if templatedLangs[lang.Code] {
			return lang.Code
		}

		if strings.Contains(folded, m.caser.String(lang.Name)) {
			return lang.Code
		}

		matched := false
		for _, alias := range lang.Aliases {
			if strings.Contains(folded, m.caser.String(alias)) {
				matched = true
				break
			}
		}
		if matched {
			return lang.Code
		}

		if strings.Contains(folded, m.caser.String(lang.NativeName)) {
			return lang.Code
		}

		// Codes only match whole tokens so "ja" cannot fire inside
		// unrelated words.
		if tokens[m.caser.String(lang.Code)] {
			return lang.Code
		}
	}

	return ""
}

func tokenSet(s string) map[string]bool {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})

	set := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		set[tok] = true
	}

	return set
}
