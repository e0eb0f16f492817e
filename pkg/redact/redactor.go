package redact

import (
	"slices"
	"strings"
)

// Redactor masks sensitive values in free text. It is immutable and safe for
// concurrent use.
type Redactor struct {
	rules []compiledRule
}

// span is a half-open byte range of the input to replace.
type span struct {
	start, end int
}

// New compiles rules. Order only matters for Rules; every rule is applied.
func New(rules ...Rule) (*Redactor, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		c, err := r.compile()
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, c)
	}
	return &Redactor{rules: compiled}, nil
}

// MustNew is like New but panics on an invalid rule.
func MustNew(rules ...Rule) *Redactor {
	r, err := New(rules...)
	if err != nil {
		panic(err)
	}
	return r
}

// Default returns a Redactor with DefaultRules.
func Default() *Redactor {
	return MustNew(DefaultRules()...)
}

// Rules returns the rule names in the order they were given.
func (r *Redactor) Rules() []string {
	names := make([]string, len(r.rules))
	for i, c := range r.rules {
		names[i] = c.name
	}
	return names
}

// Mask returns text with every sensitive value replaced by Placeholder.
//
// All rules are matched against the original text, so one rule's output can
// never be re-matched by another. The masked groups of all matches are
// merged when they overlap or touch, so a value nested in another (a token
// inside a cookie header) never splits the outer mask, and the result is
// assembled in a single pass.
func (r *Redactor) Mask(text string) string {
	if r == nil || len(r.rules) == 0 || text == "" {
		return text
	}

	var spans []span
	for _, rule := range r.rules {
		for _, m := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			gs, ge := m[2*rule.group], m[2*rule.group+1]
			if gs < 0 || gs == ge {
				continue
			}
			spans = append(spans, span{start: gs, end: ge})
		}
	}
	if len(spans) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, s := range merge(spans) {
		b.WriteString(text[last:s.start])
		b.WriteString(Placeholder)
		last = s.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// merge sorts spans and joins the ones that overlap or are adjacent.
func merge(spans []span) []span {
	slices.SortFunc(spans, func(a, b span) int {
		if a.start != b.start {
			return a.start - b.start
		}
		return a.end - b.end
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		cur := &merged[len(merged)-1]
		if s.start <= cur.end {
			cur.end = max(cur.end, s.end)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
