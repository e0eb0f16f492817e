package redact

import (
	"fmt"
	"regexp"
)

// Placeholder replaces every masked value.
const Placeholder = "******"

// Rule masks one capture group of every match of Pattern. Text of the match
// outside that group (the key, the scheme, closing quotes) is preserved.
type Rule struct {
	Name      string `yaml:"name"`
	Pattern   string `yaml:"pattern"`
	MaskGroup int    `yaml:"mask_group"`
}

type compiledRule struct {
	name  string
	re    *regexp.Regexp
	group int
}

func (r Rule) compile() (compiledRule, error) {
	if r.Name == "" {
		return compiledRule{}, fmt.Errorf("%w: rule without a name", ErrInvalidRule)
	}
	re, err := regexp.Compile(r.Pattern)
	if err != nil {
		return compiledRule{}, fmt.Errorf("%w: %s: %v", ErrInvalidRule, r.Name, err)
	}
	if r.MaskGroup < 1 || r.MaskGroup > re.NumSubexp() {
		return compiledRule{}, fmt.Errorf("%w: %s: mask_group %d out of range 1..%d",
			ErrInvalidRule, r.Name, r.MaskGroup, re.NumSubexp())
	}
	return compiledRule{name: r.Name, re: re, group: r.MaskGroup}, nil
}

// DefaultRules returns the baseline rule set.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "query-token", Pattern: `(?i)(token=)([^&"'\s;]+)`, MaskGroup: 2},
		{Name: "authorization", Pattern: `(?i)(authorization:\s*)(bearer\s+)?(\S+)`, MaskGroup: 3},
		{Name: "cookie-header", Pattern: `(?i)(cookie:\s*)([^"'\n]+)`, MaskGroup: 2},
		{Name: "set-cookie-header", Pattern: `(?i)(set-cookie:\s*)([^"'\n]+)`, MaskGroup: 2},
		{Name: "json-token", Pattern: `(?i)("?token"?\s*:\s*"?)([^"'\s,}]+)("?)`, MaskGroup: 2},
		{Name: "json-cookie", Pattern: `(?i)("?cookies?"?\s*:\s*"?)([^"'\n,}]+)("?)`, MaskGroup: 2},
	}
}
