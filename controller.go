package authui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/singlebase/authui/locale"
	"github.com/singlebase/authui/session"
)

// Controller owns the state of one widget instance and drives the view
// state machine. All mutation goes through its methods; the presentation
// layer observes changes via Subscribe or Snapshot.
//
// A Controller is driven by a single goroutine at a time: the surrounding
// UI is expected to disable inputs while Loading reports true, and no two
// actions run concurrently. Subscribe and Snapshot are safe to call from
// other goroutines insofar as they only read between actions.
type Controller struct {
	id        string
	client    Client
	files     FileStore
	config    Config
	logger    zerolog.Logger
	audit     *auditDispatcher
	metrics   *Metrics
	snapshots *session.Store
	locales   *locale.Store

	initialized  InitState
	loading      bool
	errMsg       string
	view         View
	form         Form
	redirectTo   string
	settings     *Settings
	mfa          bool
	passwordHint string
	pending      NextAction

	subMu   sync.Mutex
	subs    map[int]func(Snapshot)
	nextSub int
}

// InstanceID returns the identifier under which snapshots are persisted.
func (c *Controller) InstanceID() string { return c.id }

// Initialized returns the initialization state of this instance.
func (c *Controller) Initialized() InitState { return c.initialized }

// Loading reports whether an action is in flight.
func (c *Controller) Loading() bool { return c.loading }

// Error returns the current user-facing error message, or "".
func (c *Controller) Error() string { return c.errMsg }

// CurrentView returns the active view.
func (c *Controller) CurrentView() View { return c.view }

// Form returns the live form buffer for the UI to bind inputs to.
func (c *Controller) Form() *Form { return &c.form }

// MFA reports whether the service requires an OTP second factor.
func (c *Controller) MFA() bool { return c.mfa }

// PasswordHint returns the human-readable password policy sentence derived
// when settings loaded.
func (c *Controller) PasswordHint() string { return c.passwordHint }

// PendingAction returns the step queued behind the OTP view.
func (c *Controller) PendingAction() NextAction { return c.pending }

// SettingsData returns the loaded remote settings, nil before Initialize.
func (c *Controller) SettingsData() *Settings { return c.settings }

// Config returns a copy of the active configuration.
func (c *Controller) Config() Config { return cloneConfig(c.config) }

// Metrics exposes the in-process counters.
func (c *Controller) Metrics() *Metrics { return c.metrics }

// MetricsSnapshot copies the current counters and histograms, for exporters.
func (c *Controller) MetricsSnapshot() MetricsSnapshot { return c.metrics.Snapshot() }

// AuditDropped returns how many audit events were discarded on backpressure.
func (c *Controller) AuditDropped() uint64 { return c.audit.Dropped() }

// Close flushes and stops the audit dispatcher.
func (c *Controller) Close() { c.audit.Close() }

// SetView switches to a declared view and clears the error message.
// Undeclared views are ignored.
func (c *Controller) SetView(v View) {
	if !ValidView(v) {
		c.logger.Warn().Str("view", string(v)).Msg("ignoring undeclared view")
		return
	}
	c.setView(v)
	c.notify()
}

func (c *Controller) setView(v View) {
	c.view = v
	c.errMsg = ""
}

func (c *Controller) setError(msg string) {
	c.errMsg = msg
}

func (c *Controller) setLoading(loading bool) {
	c.loading = loading
}

// ClearForm resets every form field.
func (c *Controller) ClearForm() {
	c.form = Form{}
	c.notify()
}

// ConsumeRedirect returns the pending redirect target and clears it. The
// host is responsible for performing the navigation.
func (c *Controller) ConsumeRedirect() string {
	target := c.redirectTo
	c.redirectTo = ""
	return target
}

// UpdateConfig merges the patch over the current configuration. Locale
// overlays merge per language before the general merge so a partial bundle
// never erases sibling languages. Returns a copy of the result.
func (c *Controller) UpdateConfig(patch ConfigPatch) Config {
	for lang, bundle := range patch.Locales {
		c.locales.Merge(lang, bundle)
	}
	if patch.Lang != nil {
		c.locales.SetLang(*patch.Lang)
	}
	c.config = patch.apply(c.config)
	c.notify()
	return cloneConfig(c.config)
}

// Translate resolves a dot-separated path in the active language bundle.
func (c *Controller) Translate(path string) (string, bool) {
	return c.locales.Translate(path)
}

// SetLang switches the active translation language.
func (c *Controller) SetLang(lang string) {
	c.locales.SetLang(lang)
	c.config.Lang = lang
	c.notify()
}

// Snapshot returns an immutable copy of the observable state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		InstanceID:    c.id,
		Initialized:   c.initialized,
		Loading:       c.loading,
		Error:         c.errMsg,
		View:          c.view,
		Form:          c.form,
		RedirectTo:    c.redirectTo,
		MFA:           c.mfa,
		PasswordHint:  c.passwordHint,
		PendingAction: c.pending,
		Lang:          c.locales.Lang(),
	}
}

// Subscribe registers an observer invoked with a fresh Snapshot after every
// state change. The returned function unsubscribes.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subs, id)
	}
}

func (c *Controller) notify() {
	c.subMu.Lock()
	if len(c.subs) == 0 {
		c.subMu.Unlock()
		return
	}
	fns := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	snap := c.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

// SaveSnapshot persists the controller state under its instance ID so a
// server-side embedding can resume the flow later. Sensitive form fields
// are stripped before the write.
func (c *Controller) SaveSnapshot(ctx context.Context, ttl time.Duration) error {
	if c.snapshots == nil {
		return ErrNoSessionStore
	}
	snap := c.Snapshot()
	snap.Form.ResetSensitive()
	return c.snapshots.Save(ctx, c.id, snap, ttl)
}

// RestoreSnapshot loads a previously saved snapshot into this instance. The
// flow-level fields (view, form, pending action, error, language) are
// restored; initialization state is not, so Initialize must still run.
func (c *Controller) RestoreSnapshot(ctx context.Context, instanceID string) error {
	if c.snapshots == nil {
		return ErrNoSessionStore
	}
	var snap Snapshot
	if err := c.snapshots.Load(ctx, instanceID, &snap); err != nil {
		return err
	}

	c.view = snap.View
	c.form = snap.Form
	c.pending = snap.PendingAction
	c.errMsg = snap.Error
	if snap.Lang != "" {
		c.locales.SetLang(snap.Lang)
	}
	c.notify()
	return nil
}

// action wraps every handler with the shared discipline: the error message
// clears on entry, loading is restored on every exit path including panics,
// unexpected failures collapse to the generic message, and the outcome is
// audited and counted. Only *MissingFieldsError reaches the caller.
func (c *Controller) action(ctx context.Context, name string, fn func(context.Context) (bool, error)) (ok bool, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.initialized != InitReady {
		return false, ErrNotInitialized
	}

	c.setError("")
	c.setLoading(true)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			c.logger.Error().Interface("panic", r).Str("action", name).Msg("action panicked")
			c.setError(MsgGeneric)
			ok, err = false, nil
		}
		c.setLoading(false)
		c.metrics.Observe(MetricActionLatency, time.Since(start))
		c.emitAudit(ctx, name, ok)
		c.notify()
	}()

	ok, err = fn(ctx)
	if err != nil {
		var missing *MissingFieldsError
		if errors.As(err, &missing) {
			c.setError(MsgGeneric)
			return false, err
		}
		c.logger.Error().Err(err).Str("action", name).Msg("action failed")
		c.setError(MsgGeneric)
		ok, err = false, nil
	}
	return ok, err
}

func (c *Controller) emitAudit(ctx context.Context, action string, success bool) {
	c.audit.Emit(ctx, AuditEvent{
		Timestamp:  time.Now().UTC(),
		InstanceID: c.id,
		Action:     action,
		View:       c.view,
		Success:    success,
		Error:      c.errMsg,
	})
}

// applyNext moves to the view the transition table declares for the trigger
// and outcome. An unchanged target keeps the current view and error.
func (c *Controller) applyNext(trig trigger, success bool) {
	v, err := next(trig, success)
	if err != nil {
		c.logger.Error().Err(err).Msg("transition lookup failed")
		return
	}
	if v != viewUnchanged {
		c.setView(v)
	}
}

// gotoOTP applies the trigger's success transition (the OTP view) with the
// given step queued behind it. Setting a new pending action overwrites any
// previous one.
func (c *Controller) gotoOTP(trig trigger, pending NextAction) {
	c.applyNext(trig, true)
	c.pending = pending
	c.metrics.Inc(MetricOTPRequested)
}

// signinSuccess completes an authenticated state: either a redirect target
// is published for the host to consume, or the configured callback runs.
func (c *Controller) signinSuccess(ctx context.Context, user User) error {
	_ = ctx
	if c.config.SigninRedirectURL != "" {
		c.redirectTo = c.config.SigninRedirectURL
		return nil
	}
	if c.config.SigninCallback != nil {
		return c.config.SigninCallback(user)
	}
	return ErrConfigInvalid
}

// requiredFields reports the named entries that are empty or blank.
func requiredFields(values map[string]string, names ...string) error {
	var missing []string
	for _, name := range names {
		if strings.TrimSpace(values[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
