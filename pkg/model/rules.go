package model

import (
	"fmt"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	ValidationRuleRequired  = "required"
	ValidationRuleEmail     = "email"
	ValidationRuleMin       = "min"
	ValidationRuleMax       = "max"
	ValidationRuleMinLength = "minLength"
	ValidationRuleMaxLength = "maxLength"
	ValidationRulePattern   = "pattern"
)

// ValidationRule is a single declarative constraint. Numeric bounds and
// length limits encode their threshold in Params["value"]; pattern rules keep
// the expression in Params["pattern"].
type ValidationRule struct {
	Kind   string            `json:"kind" yaml:"kind"`
	Params map[string]string `json:"params,omitempty" yaml:"params,omitempty"`
}

// CompileRules folds rules into one Predicate that passes only when every
// rule passes. An empty rule list yields a predicate that accepts anything.
func CompileRules(rules []ValidationRule) (Predicate, error) {
	checks := make([]Predicate, 0, len(rules))
	for _, rule := range rules {
		check, err := compileRule(rule)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check)
	}
	return func(v Value) bool {
		for _, check := range checks {
			if !check(v) {
				return false
			}
		}
		return true
	}, nil
}

func compileRule(rule ValidationRule) (Predicate, error) {
	switch rule.Kind {
	case ValidationRuleRequired:
		return func(v Value) bool {
			return strings.TrimSpace(v.String()) != ""
		}, nil
	case ValidationRuleEmail:
		return func(v Value) bool {
			addr, err := mail.ParseAddress(v.String())
			return err == nil && addr.Address == v.String()
		}, nil
	case ValidationRuleMinLength, ValidationRuleMaxLength:
		limit, err := strconv.Atoi(strings.TrimSpace(rule.Params["value"]))
		if err != nil {
			return nil, fmt.Errorf("model: rule %s: invalid value %q", rule.Kind, rule.Params["value"])
		}
		if rule.Kind == ValidationRuleMinLength {
			return func(v Value) bool { return utf8.RuneCountInString(v.String()) >= limit }, nil
		}
		return func(v Value) bool { return utf8.RuneCountInString(v.String()) <= limit }, nil
	case ValidationRuleMin, ValidationRuleMax:
		bound, err := strconv.ParseFloat(strings.TrimSpace(rule.Params["value"]), 64)
		if err != nil {
			return nil, fmt.Errorf("model: rule %s: invalid value %q", rule.Kind, rule.Params["value"])
		}
		isMin := rule.Kind == ValidationRuleMin
		return func(v Value) bool {
			n, ok := numericValue(v)
			if !ok {
				return false
			}
			if isMin {
				return n >= bound
			}
			return n <= bound
		}, nil
	case ValidationRulePattern:
		expr := rule.Params["pattern"]
		if expr == "" {
			return nil, fmt.Errorf("model: rule pattern: expression is required")
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("model: rule pattern: %w", err)
		}
		return func(v Value) bool { return re.MatchString(v.String()) }, nil
	default:
		return nil, fmt.Errorf("model: unknown validation rule %q", rule.Kind)
	}
}

func numericValue(v Value) (float64, bool) {
	if n, ok := v.Number(); ok {
		return n, true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	return n, err == nil
}
