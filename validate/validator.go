package validate

import (
	"fmt"
	"strings"
)

// Rule is a structured rule descriptor: a rule name plus its parameters.
// Descriptors are built once at configuration time; Validate never parses
// rule strings.
type Rule struct {
	Name   string
	Params []string
}

// ParseRule converts a string spec such as "minLength(3)" or
// "requiredIf(otherField, value)" into a structured Rule. Bare names
// parse to a Rule with no parameters.
func ParseRule(spec string) Rule {
	open := strings.IndexByte(spec, '(')
	if open < 0 {
		return Rule{Name: strings.TrimSpace(spec)}
	}

	name := strings.TrimSpace(spec[:open])
	raw := spec[open+1:]
	if end := strings.LastIndexByte(raw, ')'); end >= 0 {
		raw = raw[:end]
	}

	var params []string
	for _, p := range strings.Split(raw, ",") {
		params = append(params, strings.TrimSpace(p))
	}
	return Rule{Name: name, Params: params}
}

type compiledRule struct {
	rule Rule
	fn   RuleFunc
}

// Validator evaluates per-field rule chains against a data record.
// It is not safe for concurrent use; each form owns its instance.
type Validator struct {
	rules      map[string][]compiledRule
	fieldOrder []string
	fieldNames map[string]string
	custom     map[string]RuleFunc
	errors     map[string]string
}

// New returns an empty validator. Configure it with Register, SetRules
// (or SetRuleList), and SetFieldNames before calling Validate.
func New() *Validator {
	return &Validator{
		rules:      map[string][]compiledRule{},
		fieldNames: map[string]string{},
		custom:     map[string]RuleFunc{},
		errors:     map[string]string{},
	}
}

// Register adds a custom rule under the given name. Custom rules
// participate identically to built-ins and must be registered before the
// rule chains that reference them are set.
func (v *Validator) Register(name string, fn RuleFunc) {
	v.custom[name] = fn
}

// SetFieldNames sets display names used in generated error messages.
// Fields without an entry fall back to the field name itself.
func (v *Validator) SetFieldNames(names map[string]string) {
	v.fieldNames = map[string]string{}
	for k, n := range names {
		v.fieldNames[k] = n
	}
}

// SetRules parses and compiles string rule specs per field. An unknown
// rule name or a wrong parameter count is a configuration error and is
// returned here, not reported as a validation failure.
func (v *Validator) SetRules(rules map[string][]string) error {
	structured := make(map[string][]Rule, len(rules))
	for field, specs := range rules {
		list := make([]Rule, 0, len(specs))
		for _, spec := range specs {
			list = append(list, ParseRule(spec))
		}
		structured[field] = list
	}
	return v.SetRuleList(structured)
}

// SetRuleList compiles structured rule descriptors per field.
func (v *Validator) SetRuleList(rules map[string][]Rule) error {
	compiled := make(map[string][]compiledRule, len(rules))
	order := make([]string, 0, len(rules))
	for field, list := range rules {
		chain := make([]compiledRule, 0, len(list))
		for _, r := range list {
			fn, err := v.resolve(field, r)
			if err != nil {
				return err
			}
			chain = append(chain, compiledRule{rule: r, fn: fn})
		}
		compiled[field] = chain
		order = append(order, field)
	}

	v.rules = compiled
	v.fieldOrder = order
	return nil
}

func (v *Validator) resolve(field string, r Rule) (RuleFunc, error) {
	if fn, ok := v.custom[r.Name]; ok {
		return fn, nil
	}
	b, ok := builtins[r.Name]
	if !ok {
		return nil, fmt.Errorf("validate: unknown rule %q for field %q", r.Name, field)
	}
	if len(r.Params) != b.params {
		return nil, fmt.Errorf("validate: rule %q for field %q takes %d parameter(s), got %d",
			r.Name, field, b.params, len(r.Params))
	}
	return b.fn, nil
}

// Validate runs every configured rule chain against record. It returns
// whether all fields passed, plus a map covering every key of record:
// the empty string for valid fields and no-rule fields, or the error
// message for the first failed rule. The per-field results stay queryable
// through Get until the next Validate or Reset.
func (v *Validator) Validate(record map[string]any) (bool, map[string]string) {
	v.Reset()

	failed := 0
	for _, field := range v.fieldOrder {
		value := record[field]
		for _, cr := range v.rules[field] {
			err := cr.fn(value, record, cr.rule.Params)
			if err == nil {
				continue
			}
			display := v.fieldNames[field]
			if display == "" {
				display = field
			}
			v.errors[field] = display + " " + err.Error()
			failed++
			break
		}
	}

	result := make(map[string]string, len(record))
	for field := range record {
		result[field] = v.errors[field]
	}
	for field, msg := range v.errors {
		result[field] = msg
	}
	return failed == 0, result
}

// Get returns the last recorded error for a field, or the empty string.
func (v *Validator) Get(field string) string {
	return v.errors[field]
}

// Reset clears all recorded errors.
func (v *Validator) Reset() {
	v.errors = map[string]string{}
}
