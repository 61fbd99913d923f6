// Package validate implements a rule-driven object validator.
//
// Rules are configured per field as an ordered chain, either by name
// ("required", "email") or with a parenthesized parameter list
// ("minLength(3)", "sameAs(password)"). Rule specs are compiled into
// structured descriptors when they are set; an unknown rule name is a
// configuration error surfaced at that point, never during Validate.
//
// Validation short-circuits each field's chain at its first failing rule
// and produces a result map covering every key of the input record: the
// empty string for valid fields, or "<display name> <message>" for the
// first failure.
package validate
