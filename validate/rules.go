package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// RuleFunc evaluates a single rule against a field value. The full record
// is provided for cross-field rules. A nil return means valid; otherwise
// the error carries the message fragment appended to the display name.
type RuleFunc func(value any, record map[string]any, params []string) error

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	nameRe     = regexp.MustCompile(`^[a-zA-Z0-9\s]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	alphaRe    = regexp.MustCompile(`^[a-zA-Z]+$`)
	numericRe  = regexp.MustCompile(`^[0-9]+$`)
	alphanumRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	decimalRe  = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	urlRe      = regexp.MustCompile(`^(https?://[^\s$.?#].[^\s]*)$`)
)

type ruleError struct {
	msg string
}

func (e *ruleError) Error() string {
	return e.msg
}

func fail(format string, args ...any) error {
	return &ruleError{msg: fmt.Sprintf(format, args...)}
}

// builtin describes one registered rule: its evaluator and how many
// parameters its spec must carry.
type builtin struct {
	fn     RuleFunc
	params int
}

var builtins = map[string]builtin{
	"required":       {fn: ruleRequired},
	"isNumber":       {fn: ruleIsNumber},
	"isString":       {fn: ruleIsString},
	"minLength":      {fn: ruleMinLength, params: 1},
	"maxLength":      {fn: ruleMaxLength, params: 1},
	"email":          {fn: regexRule(emailRe, "Must be a valid email address")},
	"phoneNumber":    {fn: regexRule(phoneRe, "Must be a valid phone number")},
	"name":           {fn: regexRule(nameRe, "Name must contain only letters, numbers and spaces")},
	"username":       {fn: regexRule(usernameRe, "Username can only contain letters, numbers, and underscores")},
	"alpha":          {fn: regexRule(alphaRe, "Must contain only letters")},
	"numeric":        {fn: regexRule(numericRe, "Must be numeric")},
	"alphanum":       {fn: regexRule(alphanumRe, "Must be alphanumeric")},
	"decimal":        {fn: regexRule(decimalRe, "Must be a decimal number")},
	"sameAs":         {fn: ruleSameAs, params: 1},
	"minValue":       {fn: ruleMinValue, params: 1},
	"maxValue":       {fn: ruleMaxValue, params: 1},
	"url":            {fn: regexRule(urlRe, "Must be a valid URL")},
	"integer":        {fn: ruleInteger},
	"requiredUnless": {fn: ruleRequiredUnless, params: 2},
	"requiredIf":     {fn: ruleRequiredIf, params: 2},
}

func ruleRequired(value any, _ map[string]any, _ []string) error {
	if value == nil || value == "" {
		return fail("Field is required")
	}
	return nil
}

func ruleIsNumber(value any, _ map[string]any, _ []string) error {
	if _, ok := toFloat(value); !ok {
		return fail("Must be a number")
	}
	if _, isString := value.(string); isString {
		return fail("Must be a number")
	}
	return nil
}

func ruleIsString(value any, _ map[string]any, _ []string) error {
	if _, ok := value.(string); !ok {
		return fail("Must be a string")
	}
	return nil
}

// Lengths count characters, not bytes, so multibyte input is not penalized.
func ruleMinLength(value any, _ map[string]any, params []string) error {
	min, _ := strconv.Atoi(params[0])
	s, ok := value.(string)
	if !ok || utf8.RuneCountInString(s) < min {
		return fail("Must be at least %s characters long", params[0])
	}
	return nil
}

func ruleMaxLength(value any, _ map[string]any, params []string) error {
	max, _ := strconv.Atoi(params[0])
	s, ok := value.(string)
	if !ok || utf8.RuneCountInString(s) > max {
		return fail("Must be no more than %s characters long", params[0])
	}
	return nil
}

func regexRule(re *regexp.Regexp, message string) RuleFunc {
	return func(value any, _ map[string]any, _ []string) error {
		if !re.MatchString(stringify(value)) {
			return fail("%s", message)
		}
		return nil
	}
}

func ruleSameAs(value any, record map[string]any, params []string) error {
	other := record[params[0]]
	if stringify(value) != stringify(other) {
		return fail("Must be the same as %s", params[0])
	}
	return nil
}

func ruleMinValue(value any, _ map[string]any, params []string) error {
	min, _ := strconv.ParseFloat(params[0], 64)
	v, ok := toFloat(value)
	if !ok || v < min {
		return fail("Must be at least %s", params[0])
	}
	return nil
}

func ruleMaxValue(value any, _ map[string]any, params []string) error {
	max, _ := strconv.ParseFloat(params[0], 64)
	v, ok := toFloat(value)
	if !ok || v > max {
		return fail("Must be no more than %s", params[0])
	}
	return nil
}

func ruleInteger(value any, _ map[string]any, _ []string) error {
	if _, isString := value.(string); isString {
		return fail("Must be an integer")
	}
	v, ok := toFloat(value)
	if !ok || v != float64(int64(v)) {
		return fail("Must be an integer")
	}
	return nil
}

func ruleRequiredUnless(value any, record map[string]any, params []string) error {
	if stringify(record[params[0]]) != params[1] {
		return ruleRequired(value, record, nil)
	}
	return nil
}

func ruleRequiredIf(value any, record map[string]any, params []string) error {
	if stringify(record[params[0]]) == params[1] {
		return ruleRequired(value, record, nil)
	}
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
