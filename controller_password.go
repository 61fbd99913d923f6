package authui

import "context"

// SubmitLostPassword starts password recovery: an OTP is requested for the
// change_password intent and the reset-password view is queued behind the
// OTP confirmation.
func (c *Controller) SubmitLostPassword(ctx context.Context) (bool, error) {
	return c.action(ctx, "submit_lost_password", func(ctx context.Context) (bool, error) {
		res, err := c.client.SendOTP(ctx, OTPRequest{Email: c.form.Email, Intent: OTPIntentChangePassword})
		if err != nil {
			return false, err
		}
		if !res.OK {
			c.setError(MsgGeneric)
			return false, nil
		}

		c.gotoOTP(triggerLostPassword, NextActionGotoResetPassword)
		c.metrics.Inc(MetricLostPasswordRequest)
		return true, nil
	})
}

// SubmitResetPassword completes password recovery with the buffered email,
// OTP, and new password. Missing fields fail before any network call: the
// user sees the generic message and the caller gets a *MissingFieldsError
// naming the fields.
func (c *Controller) SubmitResetPassword(ctx context.Context) (bool, error) {
	return c.action(ctx, "submit_reset_password", func(ctx context.Context) (bool, error) {
		err := requiredFields(map[string]string{
			"email":    c.form.Email,
			"otp":      c.form.OTP,
			"password": c.form.Password,
		}, "email", "otp", "password")
		if err != nil {
			c.metrics.Inc(MetricResetPasswordFailure)
			return false, err
		}

		res, err := c.client.UpdateAccount(ctx, map[string]any{
			"email":        c.form.Email,
			"otp":          c.form.OTP,
			"new_password": c.form.Password,
			"intent":       string(OTPIntentChangePassword),
		})
		if err != nil {
			c.metrics.Inc(MetricResetPasswordFailure)
			return false, err
		}
		if !res.OK {
			c.setError(MsgGeneric)
			c.metrics.Inc(MetricResetPasswordFailure)
			return false, nil
		}

		c.form.ResetSensitive()
		c.applyNext(triggerResetPassword, true)
		c.metrics.Inc(MetricResetPasswordSuccess)
		return true, nil
	})
}

// ChangePassword starts an authenticated password change. Under MFA an OTP
// is requested for the change_password intent and the submission is queued
// behind the OTP view; otherwise it submits directly.
func (c *Controller) ChangePassword(ctx context.Context) (bool, error) {
	return c.action(ctx, "change_password", func(ctx context.Context) (bool, error) {
		if !c.mfa {
			return c.submitChangePassword(ctx)
		}

		res, err := c.client.SendOTP(ctx, OTPRequest{Email: c.form.Email, Intent: OTPIntentChangePassword})
		if err != nil {
			return false, err
		}
		if !res.OK {
			c.setError(MsgGeneric)
			return false, nil
		}

		c.gotoOTP(triggerChangePasswordOTPRequested, NextActionSubmitChangePassword)
		return true, nil
	})
}

// SubmitChangePassword submits the replacement password. On success the
// view moves to account-info and the success callback fires; on failure the
// view moves to the error screen with a mapped message.
func (c *Controller) SubmitChangePassword(ctx context.Context) (bool, error) {
	return c.action(ctx, "submit_change_password", c.submitChangePassword)
}

func (c *Controller) submitChangePassword(ctx context.Context) (bool, error) {
	payload := map[string]any{
		"email":        c.form.Email,
		"new_password": c.form.Password,
		"intent":       string(OTPIntentChangePassword),
	}
	if c.mfa {
		payload["otp"] = c.form.OTP
	}

	res, err := c.client.UpdateAccount(ctx, payload)
	c.form.ResetSensitive()
	if err != nil {
		c.logger.Error().Err(err).Msg("change password transport failure")
		c.applyNext(triggerSubmitChangePassword, false)
		c.setError(MsgGeneric)
		c.metrics.Inc(MetricPasswordChangeFailure)
		return false, nil
	}
	if !res.OK {
		c.applyNext(triggerSubmitChangePassword, false)
		c.setError(messageForCode(res.Code(), MsgGeneric))
		c.metrics.Inc(MetricPasswordChangeFailure)
		return false, nil
	}

	c.applyNext(triggerSubmitChangePassword, true)
	c.metrics.Inc(MetricPasswordChangeSuccess)

	user, err := c.client.GetUser(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("user lookup after password change failed")
	} else if cbErr := c.signinSuccess(ctx, user); cbErr != nil {
		c.logger.Error().Err(cbErr).Msg("signin success callback failed")
	}
	return true, nil
}
