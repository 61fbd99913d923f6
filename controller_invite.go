package authui

import "context"

// SubmitInviteEmail starts the invited-email flow: an OTP is requested for
// the invite intent and the account-update view is queued behind the OTP
// confirmation.
func (c *Controller) SubmitInviteEmail(ctx context.Context) (bool, error) {
	return c.action(ctx, "submit_invite_email", func(ctx context.Context) (bool, error) {
		res, err := c.client.SendOTP(ctx, OTPRequest{Email: c.form.Email, Intent: OTPIntentInvite})
		if err != nil {
			return false, err
		}
		if !res.OK {
			c.setError(MsgGeneric)
			return false, nil
		}

		c.gotoOTP(triggerInviteEmail, NextActionGotoInviteUpdate)
		c.metrics.Inc(MetricInviteRequest)
		return true, nil
	})
}

// SubmitInviteEmailUpdateAccount completes an invited account: the profile
// fields and new password are submitted as an OTP-granted sign-in. On
// success the view returns to login.
func (c *Controller) SubmitInviteEmailUpdateAccount(ctx context.Context) (bool, error) {
	return c.action(ctx, "submit_invite_email_update_account", func(ctx context.Context) (bool, error) {
		name := c.form.Name
		if name == "" {
			name = c.form.DisplayName
		}
		creds := Credentials{
			Email:       c.form.Email,
			Password:    c.form.Password,
			DisplayName: c.form.DisplayName,
			Name:        name,
			Surname:     c.form.Surname,
			PhoneNumber: c.form.PhoneNumber,
			GrantType:   "otp",
			OTP:         c.form.OTP,
		}

		res, err := c.client.SignInWithPassword(ctx, creds)
		if err != nil {
			return false, err
		}
		if !res.OK {
			c.setError(MsgGeneric)
			return false, nil
		}

		c.form.ResetSensitive()
		c.applyNext(triggerInviteUpdateAccount, true)
		c.metrics.Inc(MetricInviteComplete)
		return true, nil
	})
}
