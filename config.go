package authui

import (
	"fmt"
	"time"

	"github.com/singlebase/authui/internal"
)

// SigninCallback is invoked with the user record after any action reaches an
// authenticated state, when no redirect URL is configured.
type SigninCallback func(user User) error

// SignoutCallback is invoked after a completed sign-out, when no signout
// redirect URL is configured.
type SignoutCallback func() error

// Config is the widget configuration. Caller-supplied values are merged
// over defaults at Build time and are immutable afterwards except through
// UpdateConfig.
type Config struct {
	StyleRoundButton         bool
	ShowBackButton           bool
	ShowSignupButton         bool
	ShowForgotPasswordButton bool
	ShowSocialLogin          bool
	ShowPasswordHint         bool

	EditFullName     bool
	EditPhoneNumber  bool
	EditProfilePhoto bool

	AllowUpdateProfile      bool
	AllowChangeEmail        bool
	AllowChangePassword     bool
	AllowChangeProfilePhoto bool

	// Exactly one of SigninRedirectURL and SigninCallback must be set.
	SigninRedirectURL string
	SigninCallback    SigninCallback

	SignoutRedirectURL string
	SignoutCallback    SignoutCallback

	Lang    string
	Locales map[string]map[string]any
	Theme   map[string]any

	// Settings polling during initialization.
	SettingsPollInterval time.Duration
	SettingsPollTimeout  time.Duration

	Audit   AuditConfig
	Metrics MetricsConfig
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process action counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		StyleRoundButton:         true,
		ShowBackButton:           true,
		ShowSignupButton:         true,
		ShowForgotPasswordButton: true,
		ShowSocialLogin:          false,
		ShowPasswordHint:         false,

		EditFullName:     true,
		EditPhoneNumber:  true,
		EditProfilePhoto: true,

		AllowUpdateProfile:      true,
		AllowChangeEmail:        true,
		AllowChangePassword:     true,
		AllowChangeProfilePhoto: true,

		Lang:    "en",
		Locales: map[string]map[string]any{},
		Theme:   map[string]any{},

		SettingsPollInterval: 250 * time.Millisecond,
		SettingsPollTimeout:  5 * time.Second,

		Audit:   AuditConfig{Enabled: true, BufferSize: 64, DropIfFull: true},
		Metrics: MetricsConfig{Enabled: true},
	}
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Locales = make(map[string]map[string]any, len(cfg.Locales))
	for lang, bundle := range cfg.Locales {
		out.Locales[lang] = internal.CloneMap(bundle)
	}
	out.Theme = internal.CloneMap(cfg.Theme)
	return out
}

// Validate reports whether the merged configuration is usable. Exactly one
// of SigninRedirectURL and SigninCallback must be configured.
func (c Config) Validate() error {
	hasURL := c.SigninRedirectURL != ""
	hasCallback := c.SigninCallback != nil
	if hasURL == hasCallback {
		return fmt.Errorf("%w: exactly one of SigninRedirectURL and SigninCallback must be set", ErrConfigInvalid)
	}
	if c.SettingsPollInterval <= 0 {
		return fmt.Errorf("%w: SettingsPollInterval must be positive", ErrConfigInvalid)
	}
	if c.SettingsPollTimeout < c.SettingsPollInterval {
		return fmt.Errorf("%w: SettingsPollTimeout must cover at least one poll interval", ErrConfigInvalid)
	}
	return nil
}

// ConfigPatch is a partial configuration update. Nil fields leave the
// current value untouched; Locales and Theme deep-merge into the existing
// mappings instead of replacing them.
type ConfigPatch struct {
	StyleRoundButton         *bool
	ShowBackButton           *bool
	ShowSignupButton         *bool
	ShowForgotPasswordButton *bool
	ShowSocialLogin          *bool
	ShowPasswordHint         *bool

	EditFullName     *bool
	EditPhoneNumber  *bool
	EditProfilePhoto *bool

	AllowUpdateProfile      *bool
	AllowChangeEmail        *bool
	AllowChangePassword     *bool
	AllowChangeProfilePhoto *bool

	SigninRedirectURL  *string
	SigninCallback     SigninCallback
	SignoutRedirectURL *string
	SignoutCallback    SignoutCallback

	Lang    *string
	Locales map[string]map[string]any
	Theme   map[string]any

	SettingsPollInterval *time.Duration
	SettingsPollTimeout  *time.Duration
}

// Bool returns a pointer for use in a [ConfigPatch].
func Bool(v bool) *bool { return &v }

// String returns a pointer for use in a [ConfigPatch].
func String(v string) *string { return &v }

// Duration returns a pointer for use in a [ConfigPatch].
func Duration(v time.Duration) *time.Duration { return &v }

// apply merges the patch over cfg and returns the result. Neither cfg nor
// the patch's maps are mutated.
func (p ConfigPatch) apply(cfg Config) Config {
	out := cloneConfig(cfg)

	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setBool(&out.StyleRoundButton, p.StyleRoundButton)
	setBool(&out.ShowBackButton, p.ShowBackButton)
	setBool(&out.ShowSignupButton, p.ShowSignupButton)
	setBool(&out.ShowForgotPasswordButton, p.ShowForgotPasswordButton)
	setBool(&out.ShowSocialLogin, p.ShowSocialLogin)
	setBool(&out.ShowPasswordHint, p.ShowPasswordHint)
	setBool(&out.EditFullName, p.EditFullName)
	setBool(&out.EditPhoneNumber, p.EditPhoneNumber)
	setBool(&out.EditProfilePhoto, p.EditProfilePhoto)
	setBool(&out.AllowUpdateProfile, p.AllowUpdateProfile)
	setBool(&out.AllowChangeEmail, p.AllowChangeEmail)
	setBool(&out.AllowChangePassword, p.AllowChangePassword)
	setBool(&out.AllowChangeProfilePhoto, p.AllowChangeProfilePhoto)

	if p.SigninRedirectURL != nil {
		out.SigninRedirectURL = *p.SigninRedirectURL
	}
	if p.SigninCallback != nil {
		out.SigninCallback = p.SigninCallback
	}
	if p.SignoutRedirectURL != nil {
		out.SignoutRedirectURL = *p.SignoutRedirectURL
	}
	if p.SignoutCallback != nil {
		out.SignoutCallback = p.SignoutCallback
	}
	if p.Lang != nil {
		out.Lang = *p.Lang
	}
	if p.SettingsPollInterval != nil {
		out.SettingsPollInterval = *p.SettingsPollInterval
	}
	if p.SettingsPollTimeout != nil {
		out.SettingsPollTimeout = *p.SettingsPollTimeout
	}

	// Locale overlays merge per language so a partial bundle for one
	// language never erases its siblings.
	for lang, bundle := range p.Locales {
		if existing, ok := out.Locales[lang]; ok {
			out.Locales[lang] = internal.Merge(existing, bundle)
		} else {
			out.Locales[lang] = internal.CloneMap(bundle)
		}
	}
	if len(p.Theme) > 0 {
		out.Theme = internal.Merge(out.Theme, p.Theme)
	}

	return out
}
