package authui

import "context"

// OTPCallToAction runs the step queued behind the OTP view. With nothing
// pending it is a no-op reporting false. The pending action is cleared
// after its first successful run, so repeated continue taps are idempotent;
// a failed run keeps it pending for retry with a corrected code.
func (c *Controller) OTPCallToAction(ctx context.Context) (bool, error) {
	return c.action(ctx, "otp_call_to_action", func(ctx context.Context) (bool, error) {
		if c.pending == NextActionNone {
			return false, nil
		}
		c.metrics.Inc(MetricOTPContinue)

		var (
			ok  bool
			err error
		)
		switch c.pending {
		case NextActionSubmitSignin:
			ok, err = c.submitSignin(ctx)
		case NextActionSubmitChangeEmail:
			ok, err = c.submitChangeEmail(ctx)
		case NextActionSubmitChangePassword:
			ok, err = c.submitChangePassword(ctx)
		case NextActionGotoResetPassword, NextActionGotoInviteUpdate:
			c.setView(pendingActionViews[c.pending])
			ok = true
		default:
			c.logger.Error().Uint8("action", uint8(c.pending)).Msg("unknown pending action")
			c.setError(MsgGeneric)
			return false, nil
		}

		if err != nil {
			return false, err
		}
		if ok {
			c.pending = NextActionNone
		}
		return ok, nil
	})
}
