package authui

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
)

func TestMFASigninRequestsOTPOnly(t *testing.T) {
	fc := newFakeClient(true)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewLogin)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "pw"

	ok, err := ctrl.SigninWithPassword(context.Background())
	if err != nil || !ok {
		t.Fatalf("SigninWithPassword = %v, %v", ok, err)
	}

	if fc.called("SignInWithPassword") != 0 {
		t.Fatal("credentials submitted before OTP confirmation")
	}
	if fc.called("SendOTP") != 1 {
		t.Fatalf("SendOTP calls = %d", fc.called("SendOTP"))
	}
	if fc.otpRequests[0].Intent != OTPIntentSignin {
		t.Fatalf("intent = %q", fc.otpRequests[0].Intent)
	}
	if ctrl.CurrentView() != ViewOTP {
		t.Fatalf("view = %q, want otp", ctrl.CurrentView())
	}
	if ctrl.PendingAction() != NextActionSubmitSignin {
		t.Fatalf("pending = %d", ctrl.PendingAction())
	}
}

func TestNonMFASigninSubmitsDirectly(t *testing.T) {
	fc := newFakeClient(false)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewLogin)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "pw"
	fc.user = User{"email": "a@b.co"}

	ok, err := ctrl.SigninWithPassword(context.Background())
	if err != nil || !ok {
		t.Fatalf("SigninWithPassword = %v, %v", ok, err)
	}

	if fc.called("SendOTP") != 0 {
		t.Fatal("OTP requested without MFA")
	}
	if fc.called("SignInWithPassword") != 1 {
		t.Fatal("credentials not submitted")
	}
	if ctrl.CurrentView() != ViewLoginSuccess {
		t.Fatalf("view = %q, want login-success", ctrl.CurrentView())
	}
	if ctrl.Form().Password != "" {
		t.Fatal("password retained after submission")
	}
}

func TestOTPContinueCompletesSignin(t *testing.T) {
	fc := newFakeClient(true)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewLogin)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "pw"

	if _, err := ctrl.SigninWithPassword(context.Background()); err != nil {
		t.Fatalf("SigninWithPassword: %v", err)
	}
	ctrl.Form().Password = "pw"
	ctrl.Form().OTP = "123456"
	fc.user = User{"email": "a@b.co"}

	ok, err := ctrl.OTPCallToAction(context.Background())
	if err != nil || !ok {
		t.Fatalf("OTPCallToAction = %v, %v", ok, err)
	}

	if len(fc.signinCreds) != 1 || fc.signinCreds[0].OTP != "123456" {
		t.Fatalf("signin creds = %+v", fc.signinCreds)
	}
	if ctrl.CurrentView() != ViewLoginSuccess {
		t.Fatalf("view = %q", ctrl.CurrentView())
	}
	if ctrl.PendingAction() != NextActionNone {
		t.Fatal("pending action not cleared after success")
	}

	// A second continue tap is a no-op.
	ok, err = ctrl.OTPCallToAction(context.Background())
	if err != nil || ok {
		t.Fatalf("repeated continue = %v, %v", ok, err)
	}
	if fc.called("SignInWithPassword") != 1 {
		t.Fatal("signin resubmitted after pending action cleared")
	}
}

func TestOTPContinueKeepsPendingOnFailure(t *testing.T) {
	fc := newFakeClient(true)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "pw"

	if _, err := ctrl.SigninWithPassword(context.Background()); err != nil {
		t.Fatalf("SigninWithPassword: %v", err)
	}

	fc.signinResult = failResult("LOGIN_ERROR")
	ctrl.Form().Password = "pw"
	ctrl.Form().OTP = "000000"
	ok, err := ctrl.OTPCallToAction(context.Background())
	if err != nil || ok {
		t.Fatalf("OTPCallToAction = %v, %v", ok, err)
	}
	if ctrl.PendingAction() != NextActionSubmitSignin {
		t.Fatal("pending action dropped after failed attempt")
	}
}

func TestSubmitSigninFailureMapsErrorCode(t *testing.T) {
	fc := newFakeClient(false)
	fc.user = nil
	fc.signinResult = failResult("REQUIRE_PASSWORD_CHANGE")
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewLogin)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "pw"

	ok, err := ctrl.SubmitSigninWithPassword(context.Background())
	if err != nil || ok {
		t.Fatalf("SubmitSigninWithPassword = %v, %v", ok, err)
	}
	if ctrl.CurrentView() != ViewLogin {
		t.Fatalf("view = %q, want login", ctrl.CurrentView())
	}
	if ctrl.Error() != MsgRequirePasswordChange {
		t.Fatalf("error = %q", ctrl.Error())
	}
}

func TestSubmitSigninUnknownCodeFallsBack(t *testing.T) {
	fc := newFakeClient(false)
	fc.user = nil
	fc.signinResult = failResult("SOMETHING_NEW")
	ctrl := newTestController(t, fc)
	ctrl.Form().Email = "a@b.co"

	if _, err := ctrl.SubmitSigninWithPassword(context.Background()); err != nil {
		t.Fatalf("SubmitSigninWithPassword: %v", err)
	}
	if ctrl.Error() != MsgLoginError {
		t.Fatalf("error = %q, want login fallback", ctrl.Error())
	}
}

func TestSubmitSigninTransportFailure(t *testing.T) {
	fc := newFakeClient(false)
	fc.user = nil
	fc.signinErr = errors.New("connection refused")
	ctrl := newTestController(t, fc)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "pw"

	ok, err := ctrl.SubmitSigninWithPassword(context.Background())
	if err != nil || ok {
		t.Fatalf("SubmitSigninWithPassword = %v, %v", ok, err)
	}
	if ctrl.CurrentView() != ViewLogin {
		t.Fatalf("view = %q", ctrl.CurrentView())
	}
	if ctrl.Error() != MsgGeneric {
		t.Fatalf("error = %q, want generic", ctrl.Error())
	}
	if ctrl.Form().Password != "" {
		t.Fatal("password retained after transport failure")
	}
}

func TestMFASignupCreatesAccountThenQueuesSignin(t *testing.T) {
	fc := newFakeClient(true)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewSignup)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "pw"
	ctrl.Form().DisplayName = "Alex"

	ok, err := ctrl.SignupWithPassword(context.Background())
	if err != nil || !ok {
		t.Fatalf("SignupWithPassword = %v, %v", ok, err)
	}

	if fc.called("SignUpWithPassword") != 1 || fc.called("SendOTP") != 1 {
		t.Fatalf("calls = %v", fc.calls)
	}
	if ctrl.CurrentView() != ViewOTP || ctrl.PendingAction() != NextActionSubmitSignin {
		t.Fatalf("view = %q, pending = %d", ctrl.CurrentView(), ctrl.PendingAction())
	}
	// Name defaults to the display name, surname falls back to it too.
	creds := fc.signupCreds[0]
	if creds.Name != "Alex" || creds.Surname != "Alex" {
		t.Fatalf("creds = %+v", creds)
	}
}

func TestSignupRejectionMapsMessage(t *testing.T) {
	fc := newFakeClient(false)
	fc.user = nil
	fc.signupResult = failResult("NOT_A_KNOWN_CODE")
	ctrl := newTestController(t, fc)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "pw"

	ok, err := ctrl.SubmitSignupWithPassword(context.Background())
	if err != nil || ok {
		t.Fatalf("SubmitSignupWithPassword = %v, %v", ok, err)
	}
	if ctrl.CurrentView() != ViewSignup {
		t.Fatalf("view = %q", ctrl.CurrentView())
	}
	if ctrl.Error() != MsgInvalidEmailSignup {
		t.Fatalf("error = %q", ctrl.Error())
	}
}

func TestLostPasswordFlow(t *testing.T) {
	fc := newFakeClient(true)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewLostPassword)
	ctrl.Form().Email = "a@b.co"

	ok, err := ctrl.SubmitLostPassword(context.Background())
	if err != nil || !ok {
		t.Fatalf("SubmitLostPassword = %v, %v", ok, err)
	}
	if fc.otpRequests[0].Intent != OTPIntentChangePassword {
		t.Fatalf("intent = %q", fc.otpRequests[0].Intent)
	}
	if ctrl.CurrentView() != ViewOTP || ctrl.PendingAction() != NextActionGotoResetPassword {
		t.Fatalf("view = %q, pending = %d", ctrl.CurrentView(), ctrl.PendingAction())
	}

	// Continue advances to the reset screen without a network call.
	before := len(fc.calls)
	ok, err = ctrl.OTPCallToAction(context.Background())
	if err != nil || !ok {
		t.Fatalf("OTPCallToAction = %v, %v", ok, err)
	}
	if ctrl.CurrentView() != ViewResetPassword {
		t.Fatalf("view = %q", ctrl.CurrentView())
	}
	if len(fc.calls) != before {
		t.Fatal("goto action made a network call")
	}

	ctrl.Form().OTP = "123456"
	ctrl.Form().Password = "NewPass12!"
	ok, err = ctrl.SubmitResetPassword(context.Background())
	if err != nil || !ok {
		t.Fatalf("SubmitResetPassword = %v, %v", ok, err)
	}
	payload := fc.accountPayloads[0]
	if payload["new_password"] != "NewPass12!" || payload["intent"] != "change_password" {
		t.Fatalf("payload = %+v", payload)
	}
	if ctrl.CurrentView() != ViewLogin {
		t.Fatalf("view = %q, want login", ctrl.CurrentView())
	}
}

func TestResetPasswordMissingFields(t *testing.T) {
	fc := newFakeClient(true)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewResetPassword)

	ok, err := ctrl.SubmitResetPassword(context.Background())
	if ok {
		t.Fatal("expected failure")
	}

	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 3 {
		t.Fatalf("missing fields = %v", missing.Fields)
	}
	if ctrl.Error() != MsgGeneric {
		t.Fatalf("error = %q, want generic", ctrl.Error())
	}
	if fc.called("UpdateAccount") != 0 {
		t.Fatal("network call made despite missing fields")
	}
}

func TestInviteFlow(t *testing.T) {
	fc := newFakeClient(true)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewInviteEmail)
	ctrl.Form().Email = "invited@b.co"

	ok, err := ctrl.SubmitInviteEmail(context.Background())
	if err != nil || !ok {
		t.Fatalf("SubmitInviteEmail = %v, %v", ok, err)
	}
	if fc.otpRequests[0].Intent != OTPIntentInvite {
		t.Fatalf("intent = %q", fc.otpRequests[0].Intent)
	}

	if _, err := ctrl.OTPCallToAction(context.Background()); err != nil {
		t.Fatalf("OTPCallToAction: %v", err)
	}
	if ctrl.CurrentView() != ViewInviteEmailUpdateAccount {
		t.Fatalf("view = %q", ctrl.CurrentView())
	}

	ctrl.Form().Password = "NewPass12!"
	ctrl.Form().DisplayName = "Invited"
	ctrl.Form().OTP = "123456"
	ok, err = ctrl.SubmitInviteEmailUpdateAccount(context.Background())
	if err != nil || !ok {
		t.Fatalf("SubmitInviteEmailUpdateAccount = %v, %v", ok, err)
	}

	creds := fc.signinCreds[0]
	if creds.GrantType != "otp" || creds.OTP != "123456" || creds.Name != "Invited" {
		t.Fatalf("creds = %+v", creds)
	}
	if ctrl.CurrentView() != ViewLogin {
		t.Fatalf("view = %q, want login", ctrl.CurrentView())
	}
}

func TestUpdateProfileFailureGoesUnauthorized(t *testing.T) {
	fc := newFakeClient(false)
	fc.profileResult = failResult("GENERIC")
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewUpdateProfile)
	ctrl.Form().DisplayName = "Alex"

	ok, err := ctrl.UpdateProfile(context.Background())
	if err != nil || ok {
		t.Fatalf("UpdateProfile = %v, %v", ok, err)
	}
	if ctrl.CurrentView() != ViewUnauthorized {
		t.Fatalf("view = %q, want unauthorized", ctrl.CurrentView())
	}
	if ctrl.Error() == "" {
		t.Fatal("expected error message")
	}
}

func TestChangeEmailMFAFlow(t *testing.T) {
	fc := newFakeClient(true)
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewChangeEmail)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().NewEmail = "new@b.co"

	ok, err := ctrl.ChangeEmail(context.Background())
	if err != nil || !ok {
		t.Fatalf("ChangeEmail = %v, %v", ok, err)
	}
	if fc.otpRequests[len(fc.otpRequests)-1].Intent != OTPIntentChangeEmail {
		t.Fatal("wrong OTP intent")
	}
	if ctrl.PendingAction() != NextActionSubmitChangeEmail {
		t.Fatalf("pending = %d", ctrl.PendingAction())
	}

	ctrl.Form().OTP = "123456"
	ok, err = ctrl.OTPCallToAction(context.Background())
	if err != nil || !ok {
		t.Fatalf("OTPCallToAction = %v, %v", ok, err)
	}
	payload := fc.accountPayloads[0]
	if payload["new_email"] != "new@b.co" || payload["intent"] != "change_email" || payload["otp"] != "123456" {
		t.Fatalf("payload = %+v", payload)
	}
	if ctrl.CurrentView() != ViewAccountInfo {
		t.Fatalf("view = %q", ctrl.CurrentView())
	}
	if ctrl.Form().Email != "new@b.co" {
		t.Fatal("form email not advanced to the new address")
	}
}

func TestSubmitChangePasswordFailureGoesErrorView(t *testing.T) {
	fc := newFakeClient(false)
	fc.accountResult = failResult("INVALID_PASSWORD")
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewChangePassword)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "short"

	ok, err := ctrl.SubmitChangePassword(context.Background())
	if err != nil || ok {
		t.Fatalf("SubmitChangePassword = %v, %v", ok, err)
	}
	if ctrl.CurrentView() != ViewError {
		t.Fatalf("view = %q, want error", ctrl.CurrentView())
	}
	if ctrl.Error() != MsgInvalidPassword {
		t.Fatalf("error = %q", ctrl.Error())
	}
}

func TestSignoutAlwaysReturnsToLogin(t *testing.T) {
	fc := newFakeClient(false)
	fc.authenticated = true
	fc.signoutErr = errors.New("network down")
	ctrl := newTestController(t, fc)
	ctrl.Form().Email = "a@b.co"

	ok, err := ctrl.Signout(context.Background())
	if err != nil || !ok {
		t.Fatalf("Signout = %v, %v", ok, err)
	}
	if ctrl.CurrentView() != ViewLogin {
		t.Fatalf("view = %q, want login", ctrl.CurrentView())
	}
	if ctrl.Form().Email != "" {
		t.Fatal("form not cleared on signout")
	}
}

func TestLoadingFalseAfterEveryAction(t *testing.T) {
	fc := newFakeClient(true)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.Form().Email = "a@b.co"
	ctrl.Form().Password = "pw"

	run := func(name string, fn func(context.Context) (bool, error)) {
		t.Helper()
		_, _ = fn(context.Background())
		if ctrl.Loading() {
			t.Fatalf("loading stuck true after %s", name)
		}
	}

	run("signin", ctrl.SigninWithPassword)
	fc.sendOTPResult = failResult("GENERIC")
	run("signin failure", ctrl.SigninWithPassword)
	fc.sendOTPErr = errors.New("boom")
	run("signin transport failure", ctrl.SigninWithPassword)
	fc.sendOTPErr = nil
	fc.sendOTPResult = okResult()
	run("reset password missing fields", ctrl.SubmitResetPassword)
	run("signout", ctrl.Signout)
	run("otp continue", ctrl.OTPCallToAction)
}

func TestPanickingClientLeavesCleanState(t *testing.T) {
	fc := newFakeClient(false)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.Form().Email = "a@b.co"

	panicking := func(context.Context) (bool, error) {
		panic("client blew up")
	}
	ok, err := ctrl.action(context.Background(), "test_action", panicking)
	if ok || err != nil {
		t.Fatalf("action = %v, %v", ok, err)
	}
	if ctrl.Loading() {
		t.Fatal("loading stuck true after panic")
	}
	if ctrl.Error() != MsgGeneric {
		t.Fatalf("error = %q, want generic", ctrl.Error())
	}
}

func TestErrorClearedAtActionStart(t *testing.T) {
	fc := newFakeClient(false)
	fc.user = nil
	fc.signinResult = failResult("LOGIN_ERROR")
	ctrl := newTestController(t, fc)
	ctrl.Form().Email = "a@b.co"

	if _, err := ctrl.SubmitSigninWithPassword(context.Background()); err != nil {
		t.Fatalf("SubmitSigninWithPassword: %v", err)
	}
	if ctrl.Error() == "" {
		t.Fatal("expected error after rejection")
	}

	fc.signinResult = okResult()
	fc.user = User{"email": "a@b.co"}
	if _, err := ctrl.SubmitSigninWithPassword(context.Background()); err != nil {
		t.Fatalf("SubmitSigninWithPassword: %v", err)
	}
	if ctrl.Error() != "" {
		t.Fatalf("stale error %q survived a successful action", ctrl.Error())
	}
}

func TestActionMetricsCounted(t *testing.T) {
	fc := newFakeClient(true)
	fc.user = nil
	ctrl := newTestController(t, fc)
	ctrl.Form().Email = "a@b.co"

	if _, err := ctrl.SigninWithPassword(context.Background()); err != nil {
		t.Fatalf("SigninWithPassword: %v", err)
	}
	if got := ctrl.Metrics().Value(MetricOTPRequested); got != 1 {
		t.Fatalf("otp requested metric = %d", got)
	}
	if got := ctrl.Metrics().Value(MetricInitSuccess); got != 1 {
		t.Fatalf("init success metric = %d", got)
	}
}

type fakeFileStore struct {
	mu     sync.Mutex
	result UploadResult
	err    error

	names []string
	opts  []UploadOptions
}

func (f *fakeFileStore) Upload(_ context.Context, name string, _ io.Reader, opts UploadOptions) (UploadResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.names = append(f.names, name)
	f.opts = append(f.opts, opts)
	return f.result, f.err
}

func newUploadController(t *testing.T, fc *fakeClient, fs FileStore) *Controller {
	t.Helper()

	ctrl, err := New().
		WithClient(fc).
		WithFileStore(fs).
		WithConfigPatch(ConfigPatch{SigninCallback: func(User) error { return nil }}).
		WithConfigPatch(fastPollPatch()).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(ctrl.Close)

	if err := ctrl.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	return ctrl
}

func TestUploadProfilePhotoSuccess(t *testing.T) {
	fc := newFakeClient(false)
	fs := &fakeFileStore{result: UploadResult{URL: "https://cdn.example.com/p.jpg"}}
	ctrl := newUploadController(t, fc, fs)
	ctrl.SetView(ViewUpdateProfile)

	ok, err := ctrl.UploadProfilePhoto(context.Background(), "", strings.NewReader("img"))
	if err != nil || !ok {
		t.Fatalf("UploadProfilePhoto = %v, %v", ok, err)
	}

	// An empty name gets a generated object name.
	if len(fs.names) != 1 || fs.names[0] == "" {
		t.Fatalf("upload names = %v", fs.names)
	}
	if !fs.opts[0].Public {
		t.Fatal("upload not marked public")
	}
	if len(fc.profilePayloads) != 1 || fc.profilePayloads[0]["photo_url"] != "https://cdn.example.com/p.jpg" {
		t.Fatalf("profile payloads = %+v", fc.profilePayloads)
	}
	if fc.called("RefreshSession") != 1 {
		t.Fatalf("RefreshSession calls = %d", fc.called("RefreshSession"))
	}
	if ctrl.Form().PhotoURL != "https://cdn.example.com/p.jpg" {
		t.Fatalf("form photo url = %q", ctrl.Form().PhotoURL)
	}
	if ctrl.CurrentView() != ViewAccountInfo {
		t.Fatalf("view = %q, want account-info", ctrl.CurrentView())
	}
	if got := ctrl.Metrics().Value(MetricPhotoUploadSuccess); got != 1 {
		t.Fatalf("upload success metric = %d", got)
	}
}

func TestUploadProfilePhotoKeepsGivenName(t *testing.T) {
	fc := newFakeClient(false)
	fs := &fakeFileStore{result: UploadResult{URL: "https://cdn.example.com/p.jpg"}}
	ctrl := newUploadController(t, fc, fs)

	if _, err := ctrl.UploadProfilePhoto(context.Background(), "avatar.png", strings.NewReader("img")); err != nil {
		t.Fatalf("UploadProfilePhoto: %v", err)
	}
	if len(fs.names) != 1 || fs.names[0] != "avatar.png" {
		t.Fatalf("upload names = %v", fs.names)
	}
}

func TestUploadProfilePhotoStoreFailure(t *testing.T) {
	fc := newFakeClient(false)
	fs := &fakeFileStore{err: errors.New("bucket unavailable")}
	ctrl := newUploadController(t, fc, fs)
	ctrl.SetView(ViewUpdateProfile)

	ok, err := ctrl.UploadProfilePhoto(context.Background(), "avatar.png", strings.NewReader("img"))
	if err != nil || ok {
		t.Fatalf("UploadProfilePhoto = %v, %v", ok, err)
	}

	// The view still lands on account-info and the message survives the move.
	if ctrl.CurrentView() != ViewAccountInfo {
		t.Fatalf("view = %q, want account-info", ctrl.CurrentView())
	}
	if ctrl.Error() != MsgGeneric {
		t.Fatalf("error = %q, want generic", ctrl.Error())
	}
	if fc.called("UpdateProfile") != 0 {
		t.Fatal("profile updated despite failed upload")
	}
	if got := ctrl.Metrics().Value(MetricPhotoUploadFailure); got != 1 {
		t.Fatalf("upload failure metric = %d", got)
	}
}

func TestUploadProfilePhotoWithoutFileStore(t *testing.T) {
	fc := newFakeClient(false)
	ctrl := newTestController(t, fc)
	ctrl.SetView(ViewUpdateProfile)

	ok, err := ctrl.UploadProfilePhoto(context.Background(), "avatar.png", strings.NewReader("img"))
	if err != nil || ok {
		t.Fatalf("UploadProfilePhoto = %v, %v", ok, err)
	}
	if ctrl.CurrentView() != ViewAccountInfo {
		t.Fatalf("view = %q, want account-info", ctrl.CurrentView())
	}
	if ctrl.Error() != MsgGeneric {
		t.Fatalf("error = %q, want generic", ctrl.Error())
	}
	if fc.called("UpdateProfile") != 0 {
		t.Fatal("profile updated without a file store")
	}
}

func TestContinueWithLoginRefiresCallback(t *testing.T) {
	fc := newFakeClient(false)
	fc.user = nil

	var (
		mu   sync.Mutex
		seen []User
	)
	ctrl, err := New().
		WithClient(fc).
		WithConfigPatch(ConfigPatch{SigninCallback: func(u User) error {
			mu.Lock()
			seen = append(seen, u)
			mu.Unlock()
			return nil
		}}).
		WithConfigPatch(fastPollPatch()).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(ctrl.Close)
	if err := ctrl.Initialize(context.Background()); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	fc.user = User{"email": "a@b.co"}
	ok, err := ctrl.ContinueWithLogin(context.Background())
	if err != nil || !ok {
		t.Fatalf("ContinueWithLogin = %v, %v", ok, err)
	}

	// A second tap fires the callback again with the same user.
	ok, err = ctrl.ContinueWithLogin(context.Background())
	if err != nil || !ok {
		t.Fatalf("repeated ContinueWithLogin = %v, %v", ok, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(seen) != 2 {
		t.Fatalf("callback fired %d times, want 2", len(seen))
	}
	for _, u := range seen {
		if u["email"] != "a@b.co" {
			t.Fatalf("callback user = %+v", u)
		}
	}
}

func TestContinueWithLoginNoSession(t *testing.T) {
	fc := newFakeClient(false)
	fc.user = nil
	ctrl := newTestController(t, fc)

	ok, err := ctrl.ContinueWithLogin(context.Background())
	if err != nil || ok {
		t.Fatalf("ContinueWithLogin = %v, %v", ok, err)
	}
}

func TestMissingFieldsErrorNamesFields(t *testing.T) {
	err := requiredFields(map[string]string{"email": " ", "otp": "1"}, "email", "otp", "password")
	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if strings.Join(missing.Fields, ",") != "email,password" {
		t.Fatalf("fields = %v", missing.Fields)
	}
}
