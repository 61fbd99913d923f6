package password

import (
	"fmt"
	"strings"
)

// Default policy bounds applied when a [Policy] leaves fields unset.
const (
	DefaultMinLength = 8
	DefaultMaxLength = 64
)

// Policy is a password policy descriptor. The JSON field names match the
// payload shape of the remote authentication service settings. Length is
// a [min, max] pair, both inclusive; a nil Length and nil class flags
// fall back to the defaults.
type Policy struct {
	Length    []int `json:"LENGTH,omitempty"`
	Symbols   *bool `json:"SYMBOLS,omitempty"`
	Numbers   *bool `json:"NUMBERS,omitempty"`
	Lowercase *bool `json:"LOWERCASE,omitempty"`
	Uppercase *bool `json:"UPPERCASE,omitempty"`
}

// symbolSet is the punctuation accepted as a symbol character.
const symbolSet = `!@#$%^&*(),.?":{}|<>`

type resolvedPolicy struct {
	minLength int
	maxLength int
	symbols   bool
	numbers   bool
	lowercase bool
	uppercase bool
}

func (p Policy) resolve() resolvedPolicy {
	r := resolvedPolicy{
		minLength: DefaultMinLength,
		maxLength: DefaultMaxLength,
		symbols:   true,
		numbers:   true,
	}
	if len(p.Length) > 0 {
		r.minLength = p.Length[0]
	}
	if len(p.Length) > 1 {
		r.maxLength = p.Length[1]
	}
	if p.Symbols != nil {
		r.symbols = *p.Symbols
	}
	if p.Numbers != nil {
		r.numbers = *p.Numbers
	}
	if p.Lowercase != nil {
		r.lowercase = *p.Lowercase
	}
	if p.Uppercase != nil {
		r.uppercase = *p.Uppercase
	}
	return r
}

// Check validates a password against the merged policy. It returns nil
// when every rule passes, or an error describing the first violated rule,
// evaluated in the fixed order length, numbers, symbols, lowercase,
// uppercase.
func Check(password string, policy Policy) error {
	r := policy.resolve()

	if len(password) < r.minLength || len(password) > r.maxLength {
		return fmt.Errorf("must be between %d and %d characters long", r.minLength, r.maxLength)
	}
	if r.numbers && !strings.ContainsAny(password, "0123456789") {
		return fmt.Errorf("must contain at least one number")
	}
	if r.symbols && !strings.ContainsAny(password, symbolSet) {
		return fmt.Errorf("must contain at least one symbol (e.g., !, @, #, etc.)")
	}
	if r.lowercase && !strings.ContainsAny(password, "abcdefghijklmnopqrstuvwxyz") {
		return fmt.Errorf("must contain at least one lowercase letter")
	}
	if r.uppercase && !strings.ContainsAny(password, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		return fmt.Errorf("must contain at least one uppercase letter")
	}
	return nil
}

// Describe renders the merged policy as one requirements sentence: a
// length clause followed by the required character classes joined with
// oxford-comma punctuation, in the fixed order lowercase, uppercase,
// numbers, symbols.
func Describe(policy Policy) string {
	r := policy.resolve()

	var length string
	switch {
	case r.minLength > 0 && r.maxLength > 0 && r.minLength == r.maxLength:
		length = fmt.Sprintf("exactly %d characters", r.minLength)
	case r.minLength > 0 && r.maxLength > 0:
		length = fmt.Sprintf("between %d and %d characters", r.minLength, r.maxLength)
	case r.minLength > 0:
		length = fmt.Sprintf("at least %d characters", r.minLength)
	case r.maxLength > 0:
		length = fmt.Sprintf("no more than %d characters", r.maxLength)
	}

	var classes []string
	if r.lowercase {
		classes = append(classes, "lowercase letters")
	}
	if r.uppercase {
		classes = append(classes, "uppercase letters")
	}
	if r.numbers {
		classes = append(classes, "numbers")
	}
	if r.symbols {
		classes = append(classes, "special characters")
	}

	var with string
	switch len(classes) {
	case 0:
	case 1:
		with = " with " + classes[0]
	case 2:
		with = " with " + classes[0] + " and " + classes[1]
	default:
		with = " with " + strings.Join(classes[:len(classes)-1], ", ") + ", and " + classes[len(classes)-1]
	}

	return "must be " + length + with + "."
}
