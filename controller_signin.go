package authui

import "context"

// SigninWithPassword starts the sign-in flow. Under MFA it requests an OTP
// for the signin intent, queues the real submission behind the OTP view,
// and returns; otherwise it submits the credentials directly.
func (c *Controller) SigninWithPassword(ctx context.Context) (bool, error) {
	return c.action(ctx, "signin_with_password", func(ctx context.Context) (bool, error) {
		if !c.mfa {
			return c.submitSignin(ctx)
		}

		res, err := c.client.SendOTP(ctx, OTPRequest{Email: c.form.Email, Intent: OTPIntentSignin})
		if err != nil {
			return false, err
		}
		if !res.OK {
			c.setError(MsgGeneric)
			c.form.ResetSensitive()
			c.metrics.Inc(MetricSigninFailure)
			return false, nil
		}

		c.gotoOTP(triggerSigninOTPRequested, NextActionSubmitSignin)
		return true, nil
	})
}

// SubmitSigninWithPassword submits the buffered credentials, including the
// OTP code under MFA. On success the view moves to login-success and the
// configured redirect or callback fires; on failure the view returns to
// login with a mapped error message.
func (c *Controller) SubmitSigninWithPassword(ctx context.Context) (bool, error) {
	return c.action(ctx, "submit_signin_with_password", c.submitSignin)
}

func (c *Controller) submitSignin(ctx context.Context) (bool, error) {
	creds := Credentials{
		Email:    c.form.Email,
		Password: c.form.Password,
	}
	if c.mfa {
		creds.OTP = c.form.OTP
	}

	res, err := c.client.SignInWithPassword(ctx, creds)
	c.form.ResetSensitive()
	if err != nil {
		c.logger.Error().Err(err).Msg("signin transport failure")
		c.applyNext(triggerSubmitSignin, false)
		c.setError(MsgGeneric)
		c.metrics.Inc(MetricSigninFailure)
		return false, nil
	}

	if !res.OK {
		c.logger.Debug().Str("code", res.Code()).Msg("signin rejected")
		c.applyNext(triggerSubmitSignin, false)
		c.setError(messageForCode(res.Code(), MsgLoginError))
		c.metrics.Inc(MetricSigninFailure)
		return false, nil
	}

	user, err := c.client.GetUser(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("user lookup after signin failed")
	}
	c.applyNext(triggerSubmitSignin, true)
	c.metrics.Inc(MetricSigninSuccess)
	if cbErr := c.signinSuccess(ctx, user); cbErr != nil {
		c.logger.Error().Err(cbErr).Msg("signin success callback failed")
	}
	return true, nil
}

// ContinueWithLogin re-fires the success redirect or callback for a user
// who is already authenticated.
func (c *Controller) ContinueWithLogin(ctx context.Context) (bool, error) {
	return c.action(ctx, "continue_with_login", func(ctx context.Context) (bool, error) {
		user, err := c.client.GetUser(ctx)
		if err != nil {
			return false, err
		}
		if len(user) == 0 {
			return false, nil
		}
		if cbErr := c.signinSuccess(ctx, user); cbErr != nil {
			c.logger.Error().Err(cbErr).Msg("signin success callback failed")
		}
		return true, nil
	})
}

// Signout signs the user out best-effort and returns to the login view.
// Remote errors are swallowed; the view transition always happens.
func (c *Controller) Signout(ctx context.Context) (bool, error) {
	return c.action(ctx, "signout", func(ctx context.Context) (bool, error) {
		if c.client.IsAuthenticated(ctx) {
			if err := c.client.SignOut(ctx); err != nil {
				c.logger.Warn().Err(err).Msg("signout failed")
			}
		}

		c.applyNext(triggerSignout, true)
		c.form = Form{}
		c.pending = NextActionNone
		c.metrics.Inc(MetricSignout)

		if c.config.SignoutRedirectURL != "" {
			c.redirectTo = c.config.SignoutRedirectURL
		} else if c.config.SignoutCallback != nil {
			if err := c.config.SignoutCallback(); err != nil {
				c.logger.Error().Err(err).Msg("signout callback failed")
			}
		}
		return true, nil
	})
}
