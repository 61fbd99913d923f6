package authui

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// UpdateProfile submits the editable profile fields. On success the view
// moves to account-info; on failure to unauthorized with an error message.
func (c *Controller) UpdateProfile(ctx context.Context) (bool, error) {
	return c.action(ctx, "update_profile", func(ctx context.Context) (bool, error) {
		payload := map[string]any{
			"display_name": c.form.DisplayName,
		}
		if c.config.EditFullName {
			payload["name"] = c.form.Name
			payload["surname"] = c.form.Surname
		}
		if c.config.EditPhoneNumber {
			payload["phone_number"] = c.form.PhoneNumber
		}
		if c.form.PhotoURL != "" {
			payload["photo_url"] = c.form.PhotoURL
		}

		res, err := c.client.UpdateProfile(ctx, payload)
		if err != nil {
			c.logger.Error().Err(err).Msg("profile update transport failure")
			c.applyNext(triggerUpdateProfile, false)
			c.setError(MsgGeneric)
			c.metrics.Inc(MetricProfileUpdateFailure)
			return false, nil
		}
		if !res.OK {
			c.applyNext(triggerUpdateProfile, false)
			c.setError(messageForCode(res.Code(), MsgGeneric))
			c.metrics.Inc(MetricProfileUpdateFailure)
			return false, nil
		}

		c.applyNext(triggerUpdateProfile, true)
		c.metrics.Inc(MetricProfileUpdateSuccess)
		return true, nil
	})
}

// ChangeEmail starts an email change. Under MFA an OTP is requested for the
// change_email intent and the submission is queued behind the OTP view;
// otherwise it submits directly.
func (c *Controller) ChangeEmail(ctx context.Context) (bool, error) {
	return c.action(ctx, "change_email", func(ctx context.Context) (bool, error) {
		if !c.mfa {
			return c.submitChangeEmail(ctx)
		}

		res, err := c.client.SendOTP(ctx, OTPRequest{Email: c.form.Email, Intent: OTPIntentChangeEmail})
		if err != nil {
			return false, err
		}
		if !res.OK {
			c.setError(MsgGeneric)
			return false, nil
		}

		c.gotoOTP(triggerChangeEmailOTPRequested, NextActionSubmitChangeEmail)
		return true, nil
	})
}

// SubmitChangeEmail submits the new email address. On success the view
// moves to account-info and the success callback fires; on failure the view
// moves to the error screen with a mapped message.
func (c *Controller) SubmitChangeEmail(ctx context.Context) (bool, error) {
	return c.action(ctx, "submit_change_email", c.submitChangeEmail)
}

func (c *Controller) submitChangeEmail(ctx context.Context) (bool, error) {
	payload := map[string]any{
		"email":     c.form.Email,
		"new_email": c.form.NewEmail,
		"intent":    string(OTPIntentChangeEmail),
	}
	if c.mfa {
		payload["otp"] = c.form.OTP
	}

	res, err := c.client.UpdateAccount(ctx, payload)
	c.form.ResetSensitive()
	if err != nil {
		c.logger.Error().Err(err).Msg("change email transport failure")
		c.applyNext(triggerSubmitChangeEmail, false)
		c.setError(MsgGeneric)
		c.metrics.Inc(MetricEmailChangeFailure)
		return false, nil
	}
	if !res.OK {
		c.applyNext(triggerSubmitChangeEmail, false)
		c.setError(messageForCode(res.Code(), MsgGeneric))
		c.metrics.Inc(MetricEmailChangeFailure)
		return false, nil
	}

	c.form.Email = c.form.NewEmail
	c.form.NewEmail = ""
	c.applyNext(triggerSubmitChangeEmail, true)
	c.metrics.Inc(MetricEmailChangeSuccess)

	user, err := c.client.GetUser(ctx)
	if err != nil {
		c.logger.Warn().Err(err).Msg("user lookup after email change failed")
	} else if cbErr := c.signinSuccess(ctx, user); cbErr != nil {
		c.logger.Error().Err(cbErr).Msg("signin success callback failed")
	}
	return true, nil
}

// UploadProfilePhoto uploads the photo through the host file store, records
// the resulting URL on the profile, and refreshes the session. The view
// returns to account-info regardless of outcome.
func (c *Controller) UploadProfilePhoto(ctx context.Context, name string, r io.Reader) (bool, error) {
	return c.action(ctx, "upload_profile_photo", func(ctx context.Context) (bool, error) {
		// The view returns to account-info on every path; the transition
		// runs before the error message is set so the message survives.
		uploadFailed := func(err error, msg string) (bool, error) {
			c.logger.Error().Err(err).Msg(msg)
			c.applyNext(triggerUploadProfilePhoto, false)
			c.setError(MsgGeneric)
			c.metrics.Inc(MetricPhotoUploadFailure)
			return false, nil
		}

		if c.files == nil {
			return uploadFailed(ErrNoFileStore, "photo upload unavailable")
		}

		if name == "" {
			name = uuid.NewString()
		}

		uploaded, err := c.files.Upload(ctx, name, r, UploadOptions{Public: true})
		if err != nil || uploaded.URL == "" {
			return uploadFailed(err, "photo upload failed")
		}

		res, err := c.client.UpdateProfile(ctx, map[string]any{"photo_url": uploaded.URL})
		if err != nil || !res.OK {
			return uploadFailed(err, "photo url update failed")
		}

		c.form.PhotoURL = uploaded.URL
		if _, err := c.client.RefreshSession(ctx); err != nil {
			c.logger.Warn().Err(err).Msg("session refresh after upload failed")
		}
		c.applyNext(triggerUploadProfilePhoto, true)
		c.metrics.Inc(MetricPhotoUploadSuccess)
		return true, nil
	})
}
