package internaldefs

import (
	"github.com/singlebase/authui"
)

// CounterDef binds a widget counter to its published metric name.
type CounterDef struct {
	ID   authui.MetricID
	Name string
	Help string
}

// HistogramDef binds a widget histogram to its published metric name.
type HistogramDef struct {
	ID   authui.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in publication order.
var CounterDefs = []CounterDef{
	{ID: authui.MetricInitSuccess, Name: "authui_init_success_total", Help: "Completed widget initializations."},
	{ID: authui.MetricInitFailure, Name: "authui_init_failure_total", Help: "Permanently failed widget initializations."},
	{ID: authui.MetricSigninSuccess, Name: "authui_signin_success_total", Help: "Completed sign-ins."},
	{ID: authui.MetricSigninFailure, Name: "authui_signin_failure_total", Help: "Rejected or failed sign-ins."},
	{ID: authui.MetricSignupSuccess, Name: "authui_signup_success_total", Help: "Completed sign-ups."},
	{ID: authui.MetricSignupFailure, Name: "authui_signup_failure_total", Help: "Rejected or failed sign-ups."},
	{ID: authui.MetricOTPRequested, Name: "authui_otp_requested_total", Help: "One-time password send requests."},
	{ID: authui.MetricOTPContinue, Name: "authui_otp_continue_total", Help: "OTP continue actions."},
	{ID: authui.MetricLostPasswordRequest, Name: "authui_lost_password_request_total", Help: "Started password recoveries."},
	{ID: authui.MetricResetPasswordSuccess, Name: "authui_reset_password_success_total", Help: "Completed password resets."},
	{ID: authui.MetricResetPasswordFailure, Name: "authui_reset_password_failure_total", Help: "Failed password resets."},
	{ID: authui.MetricInviteRequest, Name: "authui_invite_request_total", Help: "Started invite verifications."},
	{ID: authui.MetricInviteComplete, Name: "authui_invite_complete_total", Help: "Completed invite account updates."},
	{ID: authui.MetricProfileUpdateSuccess, Name: "authui_profile_update_success_total", Help: "Completed profile updates."},
	{ID: authui.MetricProfileUpdateFailure, Name: "authui_profile_update_failure_total", Help: "Failed profile updates."},
	{ID: authui.MetricEmailChangeSuccess, Name: "authui_email_change_success_total", Help: "Completed email changes."},
	{ID: authui.MetricEmailChangeFailure, Name: "authui_email_change_failure_total", Help: "Failed email changes."},
	{ID: authui.MetricPasswordChangeSuccess, Name: "authui_password_change_success_total", Help: "Completed password changes."},
	{ID: authui.MetricPasswordChangeFailure, Name: "authui_password_change_failure_total", Help: "Failed password changes."},
	{ID: authui.MetricPhotoUploadSuccess, Name: "authui_photo_upload_success_total", Help: "Completed profile photo uploads."},
	{ID: authui.MetricPhotoUploadFailure, Name: "authui_photo_upload_failure_total", Help: "Failed profile photo uploads."},
	{ID: authui.MetricSignout, Name: "authui_signout_total", Help: "Sign-outs."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: authui.MetricActionLatency, Name: "authui_action_latency_seconds", Help: "Action latency histogram."},
}

// HistogramBounds are the upper bucket bounds in Prometheus label form.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix are the bounds in metric-name-safe form for backends
// without native histogram labels.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into cumulative counts; the
// last element is the total sample count.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
