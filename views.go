package authui

import "fmt"

// View identifies one named screen of the widget.
type View string

const (
	// ViewError is the fallback screen for non-recoverable action failures.
	ViewError View = "error"
	// ViewUnauthorized is shown when the session is no longer valid.
	ViewUnauthorized View = "unauthorized"
	// ViewLogin is the email/password sign-in screen.
	ViewLogin View = "login"
	// ViewLoginSuccess is shown after an authenticated state is reached.
	ViewLoginSuccess View = "login-success"
	// ViewOTP is the one-time-password entry screen.
	ViewOTP View = "otp"
	// ViewSignup is the account creation screen.
	ViewSignup View = "signup"
	// ViewLostPassword starts the password recovery flow.
	ViewLostPassword View = "lost-password"
	// ViewResetPassword collects the new password plus OTP.
	ViewResetPassword View = "reset-password"
	// ViewInviteEmail starts the invited-email verification flow.
	ViewInviteEmail View = "invite-email"
	// ViewInviteEmailUpdateAccount completes an invited account.
	ViewInviteEmailUpdateAccount View = "invite-email-update-account"
	// ViewAccountInfo is the authenticated account overview.
	ViewAccountInfo View = "account-info"
	// ViewChangeEmail collects the new email address.
	ViewChangeEmail View = "change-email"
	// ViewChangePassword collects the replacement password.
	ViewChangePassword View = "change-password"
	// ViewUpdateProfile edits profile fields.
	ViewUpdateProfile View = "update-profile"
	// ViewChangeProfilePhoto uploads a new profile photo.
	ViewChangeProfilePhoto View = "change-profile-photo"
)

// viewUnchanged marks a transition outcome that keeps the current view.
const viewUnchanged View = ""

// Views returns the declared view identifiers.
func Views() []View {
	return []View{
		ViewError,
		ViewUnauthorized,
		ViewLogin,
		ViewLoginSuccess,
		ViewOTP,
		ViewSignup,
		ViewLostPassword,
		ViewResetPassword,
		ViewInviteEmail,
		ViewInviteEmailUpdateAccount,
		ViewAccountInfo,
		ViewChangeEmail,
		ViewChangePassword,
		ViewUpdateProfile,
		ViewChangeProfilePhoto,
	}
}

// ValidView reports whether v is one of the declared view identifiers.
func ValidView(v View) bool {
	for _, known := range Views() {
		if v == known {
			return true
		}
	}
	return false
}

// trigger names a controller action for transition lookup.
type trigger string

const (
	triggerSigninOTPRequested         trigger = "signin_otp_requested"
	triggerSubmitSignin               trigger = "submit_signin"
	triggerSignupOTPRequested         trigger = "signup_otp_requested"
	triggerSubmitSignup               trigger = "submit_signup"
	triggerLostPassword               trigger = "lost_password"
	triggerResetPassword              trigger = "reset_password"
	triggerInviteEmail                trigger = "invite_email"
	triggerInviteUpdateAccount        trigger = "invite_update_account"
	triggerUpdateProfile              trigger = "update_profile"
	triggerChangeEmailOTPRequested    trigger = "change_email_otp_requested"
	triggerSubmitChangeEmail          trigger = "submit_change_email"
	triggerChangePasswordOTPRequested trigger = "change_password_otp_requested"
	triggerSubmitChangePassword       trigger = "submit_change_password"
	triggerUploadProfilePhoto         trigger = "upload_profile_photo"
	triggerSignout                    trigger = "signout"
)

// transition is one row of the state machine: the view reached on a
// successful outcome and the one reached on a handled failure.
// viewUnchanged keeps the current view.
type transition struct {
	onSuccess View
	onFailure View
}

// transitions is the explicit state machine. Build validates it against the
// declared view enum before any controller is handed out.
var transitions = map[trigger]transition{
	triggerSigninOTPRequested:         {onSuccess: ViewOTP, onFailure: viewUnchanged},
	triggerSubmitSignin:               {onSuccess: ViewLoginSuccess, onFailure: ViewLogin},
	triggerSignupOTPRequested:         {onSuccess: ViewOTP, onFailure: viewUnchanged},
	triggerSubmitSignup:               {onSuccess: viewUnchanged, onFailure: ViewSignup},
	triggerLostPassword:               {onSuccess: ViewOTP, onFailure: viewUnchanged},
	triggerResetPassword:              {onSuccess: ViewLogin, onFailure: viewUnchanged},
	triggerInviteEmail:                {onSuccess: ViewOTP, onFailure: viewUnchanged},
	triggerInviteUpdateAccount:        {onSuccess: ViewLogin, onFailure: viewUnchanged},
	triggerUpdateProfile:              {onSuccess: ViewAccountInfo, onFailure: ViewUnauthorized},
	triggerChangeEmailOTPRequested:    {onSuccess: ViewOTP, onFailure: viewUnchanged},
	triggerSubmitChangeEmail:          {onSuccess: ViewAccountInfo, onFailure: ViewError},
	triggerChangePasswordOTPRequested: {onSuccess: ViewOTP, onFailure: viewUnchanged},
	triggerSubmitChangePassword:       {onSuccess: ViewAccountInfo, onFailure: ViewError},
	triggerUploadProfilePhoto:         {onSuccess: ViewAccountInfo, onFailure: ViewAccountInfo},
	triggerSignout:                    {onSuccess: ViewLogin, onFailure: ViewLogin},
}

// pendingActionViews maps the goto-style pending actions to their target views.
var pendingActionViews = map[NextAction]View{
	NextActionGotoResetPassword: ViewResetPassword,
	NextActionGotoInviteUpdate:  ViewInviteEmailUpdateAccount,
}

// entryViews are the unauthenticated screens initialization may leave for
// login-success when a user is already signed in. A view the host set
// deliberately is never hijacked.
var entryViews = map[View]bool{
	viewUnchanged:    true,
	ViewLogin:        true,
	ViewSignup:       true,
	ViewLostPassword: true,
}

// validateTransitions checks the table against the declared view enum:
// every referenced view must be declared, and every declared view must be
// reachable as a transition target, a pending-action target, or an entry view.
func validateTransitions() error {
	reachable := map[View]bool{}

	for trig, t := range transitions {
		for _, v := range []View{t.onSuccess, t.onFailure} {
			if v == viewUnchanged {
				continue
			}
			if !ValidView(v) {
				return fmt.Errorf("transition %q targets undeclared view %q", trig, v)
			}
			reachable[v] = true
		}
	}
	for action, v := range pendingActionViews {
		if !ValidView(v) {
			return fmt.Errorf("pending action %d targets undeclared view %q", action, v)
		}
		reachable[v] = true
	}
	for v := range entryViews {
		reachable[v] = true
	}
	// Screens reached only by host navigation.
	for _, v := range []View{ViewInviteEmail, ViewChangeEmail, ViewChangePassword, ViewUpdateProfile, ViewChangeProfilePhoto} {
		reachable[v] = true
	}

	for _, v := range Views() {
		if !reachable[v] {
			return fmt.Errorf("view %q is unreachable in the transition table", v)
		}
	}
	return nil
}

// next resolves the view a trigger produces for the given outcome.
func next(trig trigger, success bool) (View, error) {
	t, ok := transitions[trig]
	if !ok {
		return viewUnchanged, fmt.Errorf("no transition declared for trigger %q", trig)
	}
	if success {
		return t.onSuccess, nil
	}
	return t.onFailure, nil
}
