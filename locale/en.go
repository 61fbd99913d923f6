package locale

// builtinEN is the default English bundle shipped with the widget.
var builtinEN = map[string]any{
	"login": map[string]any{
		"title":           "Sign in",
		"email":           "Email",
		"password":        "Password",
		"submit":          "Sign in",
		"forgot_password": "Forgot password?",
		"signup":          "Create an account",
		"continue":        "Continue",
	},
	"signup": map[string]any{
		"title":        "Create your account",
		"display_name": "Display name",
		"email":        "Email",
		"password":     "Password",
		"password2":    "Confirm password",
		"submit":       "Sign up",
	},
	"otp": map[string]any{
		"title":    "Verification code",
		"subtitle": "Enter the code we sent to your email",
		"submit":   "Continue",
	},
	"lost_password": map[string]any{
		"title":  "Reset your password",
		"email":  "Email",
		"submit": "Send code",
	},
	"reset_password": map[string]any{
		"title":     "Choose a new password",
		"otp":       "Verification code",
		"password":  "New password",
		"password2": "Confirm new password",
		"submit":    "Reset password",
	},
	"invite": map[string]any{
		"title":  "Accept your invitation",
		"email":  "Email",
		"submit": "Continue",
	},
	"account": map[string]any{
		"title":           "Account",
		"update_profile":  "Update profile",
		"change_email":    "Change email",
		"change_password": "Change password",
		"change_photo":    "Change profile photo",
		"signout":         "Sign out",
	},
	"common": map[string]any{
		"back":    "Back",
		"cancel":  "Cancel",
		"save":    "Save",
		"loading": "Loading...",
	},
}
