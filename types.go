package authui

import (
	"context"
	"io"

	"github.com/singlebase/authui/password"
)

// InitState tracks the lifecycle of a widget instance. A failed
// initialization is terminal: the instance never retries on its own.
type InitState int

const (
	// InitPending is the state before Initialize completes.
	InitPending InitState = 0
	// InitReady means remote settings loaded and the widget is usable.
	InitReady InitState = 1
	// InitFailed means initialization failed permanently for this instance.
	InitFailed InitState = -1
)

// OTPIntent tags an OTP request with the flow it authorizes.
type OTPIntent string

const (
	// OTPIntentSignin is an OTP requested as a sign-in second factor.
	OTPIntentSignin OTPIntent = "signin"
	// OTPIntentChangePassword is an OTP authorizing a password change or reset.
	OTPIntentChangePassword OTPIntent = "change_password"
	// OTPIntentChangeEmail is an OTP authorizing an email change.
	OTPIntentChangeEmail OTPIntent = "change_email"
	// OTPIntentInvite is an OTP verifying an invited email address.
	OTPIntentInvite OTPIntent = "invite"
)

// NextAction identifies the single deferred step that runs when the user
// confirms an OTP code. Zero or one can be pending at a time; setting a new
// one overwrites any previous pending action. The tagged form keeps state
// serializable and inspectable.
type NextAction uint8

const (
	// NextActionNone means no step is pending on the OTP view.
	NextActionNone NextAction = iota
	// NextActionSubmitSignin completes a sign-in with the entered OTP.
	NextActionSubmitSignin
	// NextActionGotoResetPassword advances to the reset-password view.
	NextActionGotoResetPassword
	// NextActionGotoInviteUpdate advances to the invite account-update view.
	NextActionGotoInviteUpdate
	// NextActionSubmitChangeEmail completes an email change with the entered OTP.
	NextActionSubmitChangeEmail
	// NextActionSubmitChangePassword completes a password change with the entered OTP.
	NextActionSubmitChangePassword
)

// User is the remote user record as returned by the authentication service.
// The widget treats it as opaque data and only hands it to the success
// callback.
type User map[string]any

// ResultError carries the opaque error-description code a remote call
// returned. Codes are mapped to user-facing messages; the raw code is
// never shown to the user.
type ResultError struct {
	Description string `json:"description"`
}

// Result is the uniform outcome shape of every network-calling client
// operation.
type Result struct {
	OK    bool           `json:"ok"`
	Data  map[string]any `json:"data,omitempty"`
	Error *ResultError   `json:"error,omitempty"`
}

// Code returns the error-description code, or "" when the result carries none.
func (r Result) Code() string {
	if r.Error == nil {
		return ""
	}
	return r.Error.Description
}

// Credentials is the payload for credentialed client calls. Zero-valued
// fields are omitted on the wire.
type Credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password,omitempty"`
	OTP         string `json:"otp,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Name        string `json:"name,omitempty"`
	Surname     string `json:"surname,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	GrantType   string `json:"grant_type,omitempty"`
}

// OTPRequest asks the service to send a one-time password for an intent.
type OTPRequest struct {
	Email  string    `json:"email"`
	Intent OTPIntent `json:"intent"`
}

// Client is the contract the host must satisfy. Settings returns nil until
// the client finishes negotiating with its backend; the controller polls it
// during initialization. An error return from any call stands for a
// transport-level failure and is never surfaced to the user directly.
type Client interface {
	Settings() *Settings
	IsAuthenticated(ctx context.Context) bool
	GetUser(ctx context.Context) (User, error)
	SignOut(ctx context.Context) error
	SignInWithPassword(ctx context.Context, creds Credentials) (Result, error)
	SignUpWithPassword(ctx context.Context, creds Credentials) (Result, error)
	SendOTP(ctx context.Context, req OTPRequest) (Result, error)
	UpdateAccount(ctx context.Context, payload map[string]any) (Result, error)
	UpdateProfile(ctx context.Context, payload map[string]any) (Result, error)
	RefreshSession(ctx context.Context) (Result, error)
}

// UploadResult is the outcome of a file-store upload.
type UploadResult struct {
	URL string `json:"url"`
}

// UploadOptions carries optional metadata for a file-store upload.
type UploadOptions struct {
	ContentType string
	Public      bool
}

// FileStore is the optional host-supplied accessor for profile photo uploads.
type FileStore interface {
	Upload(ctx context.Context, name string, r io.Reader, opts UploadOptions) (UploadResult, error)
}

// EmailSettings is the email-provider section of the remote settings payload.
type EmailSettings struct {
	Enabled                         bool            `json:"enabled"`
	AuthenticationMethod            string          `json:"authentication_method"`
	AccountUpdateVerificationMethod string          `json:"account_update_verification_method"`
	VerifyEmailOnSignup             bool            `json:"verify_email_on_signup"`
	PasswordRecoveryMethod          string          `json:"password_recovery_method"`
	PasswordPolicyName              string          `json:"password_policy_name"`
	PasswordPolicy                  password.Policy `json:"password_policy"`
}

// Settings is the remote-service settings payload.
type Settings struct {
	Enabled              bool           `json:"enabled"`
	EnableEmailProvider  bool           `json:"enable_email_provider"`
	AllowEmailSignup     bool           `json:"allow_email_signup"`
	EnableOAuthProviders bool           `json:"enable_oauth_providers"`
	AllowOAuthSignup     bool           `json:"allow_oauth_signup"`
	EmailSettings        EmailSettings  `json:"email_settings"`
	OAuthProviders       map[string]any `json:"oauth_providers,omitempty"`
}

// MFA reports whether the service authenticates with an OTP second factor.
func (s *Settings) MFA() bool {
	return s != nil && s.EmailSettings.AuthenticationMethod == "otp"
}

// Form holds the flat field buffers backing the widget's inputs. Fields are
// cleared at flow boundaries; sensitive fields (password, password2, otp)
// are additionally reset after every credentialed call.
type Form struct {
	DisplayName string `json:"display_name,omitempty"`
	Name        string `json:"name,omitempty"`
	Surname     string `json:"surname,omitempty"`
	Email       string `json:"email,omitempty"`
	Password    string `json:"password,omitempty"`
	Password2   string `json:"password2,omitempty"`
	OTP         string `json:"otp,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
	NewEmail    string `json:"new_email,omitempty"`
}

// ResetSensitive clears the fields that must never survive a credentialed call.
func (f *Form) ResetSensitive() {
	f.Password = ""
	f.Password2 = ""
	f.OTP = ""
}
