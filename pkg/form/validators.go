package form

import (
	"regexp"
	"strconv"

	"github.com/goliatone/go-formstate/pkg/model"
)

// Required accepts any value that is not blank.
func Required() model.Predicate {
	return mustCompile(model.ValidationRule{Kind: model.ValidationRuleRequired})
}

// Email accepts a bare address such as "ada@example.com".
func Email() model.Predicate {
	return mustCompile(model.ValidationRule{Kind: model.ValidationRuleEmail})
}

// MinLength accepts values with at least n characters.
func MinLength(n int) model.Predicate {
	return mustCompile(model.ValidationRule{
		Kind:   model.ValidationRuleMinLength,
		Params: map[string]string{"value": strconv.Itoa(n)},
	})
}

// MaxLength accepts values with at most n characters.
func MaxLength(n int) model.Predicate {
	return mustCompile(model.ValidationRule{
		Kind:   model.ValidationRuleMaxLength,
		Params: map[string]string{"value": strconv.Itoa(n)},
	})
}

// Matches accepts values matching re.
func Matches(re *regexp.Regexp) model.Predicate {
	return func(v model.Value) bool {
		return re.MatchString(v.String())
	}
}

// All accepts a value only when every predicate does.
func All(predicates ...model.Predicate) model.Predicate {
	return func(v model.Value) bool {
		for _, predicate := range predicates {
			if predicate != nil && !predicate(v) {
				return false
			}
		}
		return true
	}
}

// Always accepts everything. Useful for fields that only need the
// registration shape.
func Always() model.Predicate {
	return func(model.Value) bool { return true }
}

func mustCompile(rule model.ValidationRule) model.Predicate {
	predicate, err := model.CompileRules([]model.ValidationRule{rule})
	if err != nil {
		panic(err)
	}
	return predicate
}
