package internal

import "strings"

// ToBoolean coerces loosely-typed flag values. Booleans pass through;
// strings accept true/yes and false/no case-insensitively. The second
// return is false for anything unrecognized.
func ToBoolean(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(t) {
		case "true", "yes":
			return true, true
		case "false", "no":
			return false, true
		}
	}
	return false, false
}
