package redact

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// LoadRules reads extra rules from a YAML file:
//
//	rules:
//	  - name: api-key
//	    pattern: '(?i)(x-api-key:\s*)(\S+)'
//	    mask_group: 2
//
// Rules are validated but returned uncompiled so callers can order them.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadingRules, err)
	}

	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Join(ErrParsingRules, err)
	}
	for _, r := range f.Rules {
		if _, err := r.compile(); err != nil {
			return nil, err
		}
	}
	return f.Rules, nil
}

// FromFile returns a Redactor with DefaultRules followed by the rules in
// path. An empty path yields Default.
func FromFile(path string) (*Redactor, error) {
	if path == "" {
		return Default(), nil
	}
	extra, err := LoadRules(path)
	if err != nil {
		return nil, err
	}
	return New(append(DefaultRules(), extra...)...)
}
