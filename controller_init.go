package authui

import (
	"context"
	"errors"

	"github.com/singlebase/authui/internal"
	"github.com/singlebase/authui/password"
)

// Initialize loads remote settings and brings the instance to a usable
// state. The client may still be negotiating with its backend, in which
// case settings readiness is polled at the configured interval until the
// configured timeout. Any failure here is permanent for this instance: the
// state moves to InitFailed and no partial UI should be rendered.
//
// When a user is already authenticated, the view advances to login-success
// only if the current view is one of the unauthenticated entry screens; a
// view the host set deliberately is never hijacked.
func (c *Controller) Initialize(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	switch c.initialized {
	case InitReady:
		return nil
	case InitFailed:
		return ErrInitFailed
	}

	fail := func(err error) error {
		c.initialized = InitFailed
		c.metrics.Inc(MetricInitFailure)
		c.logger.Error().Err(err).Msg("initialization failed")
		c.emitAudit(ctx, "initialize", false)
		c.notify()
		return err
	}

	if c.client == nil {
		return fail(ErrClientMissing)
	}
	if err := c.config.Validate(); err != nil {
		return fail(err)
	}

	settings := c.client.Settings()
	if settings == nil {
		c.logger.Info().Msg("waiting for client settings")
		err := internal.WaitUntil(ctx, func() bool {
			return c.client.Settings() != nil
		}, c.config.SettingsPollInterval, c.config.SettingsPollTimeout)
		if err != nil {
			if errors.Is(err, internal.ErrWaitTimeout) {
				return fail(ErrSettingsTimeout)
			}
			return fail(err)
		}
		settings = c.client.Settings()
	}

	c.loadSettings(settings)
	c.initialized = InitReady
	c.metrics.Inc(MetricInitSuccess)
	c.logger.Info().Bool("mfa", c.mfa).Msg("ready")

	user, err := c.client.GetUser(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("could not load current user")
	} else if len(user) > 0 && entryViews[c.view] {
		c.setView(ViewLoginSuccess)
		if cbErr := c.signinSuccess(ctx, user); cbErr != nil {
			c.logger.Error().Err(cbErr).Msg("signin success callback failed")
		}
	}

	c.emitAudit(ctx, "initialize", true)
	c.notify()
	return nil
}

// loadSettings stores the settings payload and computes the two derived
// fields exactly once: the MFA flag and the password policy hint.
func (c *Controller) loadSettings(s *Settings) {
	c.settings = s
	c.mfa = s.MFA()
	c.passwordHint = password.Describe(s.EmailSettings.PasswordPolicy)
}
