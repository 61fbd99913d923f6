package authui

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrClientMissing is returned when no authentication client was supplied.
	ErrClientMissing = errors.New("authentication client missing")
	// ErrConfigInvalid is returned when the merged configuration is unusable.
	ErrConfigInvalid = errors.New("invalid configuration")
	// ErrSettingsTimeout is returned when remote settings never became available.
	ErrSettingsTimeout = errors.New("settings load timed out")
	// ErrNotInitialized is returned by actions invoked before Initialize succeeded.
	ErrNotInitialized = errors.New("widget not initialized")
	// ErrInitFailed is returned when Initialize is called on a permanently failed instance.
	ErrInitFailed = errors.New("initialization failed permanently")
	// ErrNoSessionStore is returned by snapshot persistence without a configured store.
	ErrNoSessionStore = errors.New("no session store configured")
	// ErrNoFileStore is returned by photo upload without a configured file store.
	ErrNoFileStore = errors.New("no file store configured")
)

// User-facing messages. Remote error-description codes resolve to these via
// a static table; unrecognized codes and unexpected failures fall back to
// per-flow defaults or MsgGeneric. Raw errors are logged, never displayed.
const (
	MsgGeneric               = "Unable to continue. Please try again later."
	MsgRequirePasswordChange = "Password change is required to continue"
	MsgInvalidEmailSignup    = "Unable to signup. Invalid Email/Password or Email exists already."
	MsgInvalidPassword       = "Invalid Password"
	MsgLoginError            = "Unable to login. Invalid Email/Password"
	MsgConfigError           = "Config Error"
	MsgSettingsError         = "Settings Error"
)

var errorMessages = map[string]string{
	"GENERIC":                 MsgGeneric,
	"REQUIRE_PASSWORD_CHANGE": MsgRequirePasswordChange,
	"INVALID_EMAIL_SIGNUP":    MsgInvalidEmailSignup,
	"INVALID_PASSWORD":        MsgInvalidPassword,
	"LOGIN_ERROR":             MsgLoginError,
	"CONFIG_ERROR":            MsgConfigError,
	"SETTINGS_ERROR":          MsgSettingsError,
}

// messageForCode maps a remote error-description code to its user-facing
// message, falling back to the flow's default for unrecognized codes.
func messageForCode(code, fallback string) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return fallback
}

// MissingFieldsError reports which required form fields were empty before a
// remote call was attempted. The user still sees the generic message; the
// typed error gives the embedding host the field-level detail.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}
