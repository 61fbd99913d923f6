package authui

import "context"

// SignupWithPassword starts account creation. Under MFA the account is
// created first, then an OTP is requested for the signin intent and the
// sign-in submission is queued behind the OTP view. Without MFA it is a
// plain submission.
func (c *Controller) SignupWithPassword(ctx context.Context) (bool, error) {
	return c.action(ctx, "signup_with_password", func(ctx context.Context) (bool, error) {
		if !c.mfa {
			return c.submitSignup(ctx)
		}

		ok, err := c.submitSignup(ctx)
		if err != nil {
			return false, err
		}
		if !ok {
			if c.errMsg == "" {
				c.setError(MsgGeneric)
			}
			return false, nil
		}

		res, err := c.client.SendOTP(ctx, OTPRequest{Email: c.form.Email, Intent: OTPIntentSignin})
		if err != nil {
			return false, err
		}
		if !res.OK {
			c.setError(MsgGeneric)
			return false, nil
		}

		c.gotoOTP(triggerSignupOTPRequested, NextActionSubmitSignin)
		return true, nil
	})
}

// SubmitSignupWithPassword creates the account from the buffered form. It
// reports success without forcing a view change; on failure the view moves
// to signup with a mapped error message.
func (c *Controller) SubmitSignupWithPassword(ctx context.Context) (bool, error) {
	return c.action(ctx, "submit_signup_with_password", c.submitSignup)
}

func (c *Controller) submitSignup(ctx context.Context) (bool, error) {
	// Name falls back to the display name, surname to whichever is set.
	surname := c.form.Surname
	if surname == "" {
		surname = c.form.DisplayName
	}
	creds := Credentials{
		Email:       c.form.Email,
		Password:    c.form.Password,
		DisplayName: c.form.DisplayName,
		Name:        c.form.DisplayName,
		Surname:     surname,
	}

	res, err := c.client.SignUpWithPassword(ctx, creds)
	if err != nil {
		c.logger.Error().Err(err).Msg("signup transport failure")
		c.form.ResetSensitive()
		c.setError(MsgGeneric)
		c.metrics.Inc(MetricSignupFailure)
		return false, nil
	}

	if !res.OK {
		c.logger.Debug().Str("code", res.Code()).Msg("signup rejected")
		c.form.ResetSensitive()
		c.applyNext(triggerSubmitSignup, false)
		c.setError(messageForCode(res.Code(), MsgInvalidEmailSignup))
		c.metrics.Inc(MetricSignupFailure)
		return false, nil
	}

	c.metrics.Inc(MetricSignupSuccess)
	return true, nil
}
