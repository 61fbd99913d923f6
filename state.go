package authui

// Snapshot is an immutable copy of the observable widget state. It is plain
// serializable data: the pending OTP step is a tagged value, settings and
// callbacks are excluded. Subscribers receive a fresh Snapshot after every
// state change.
type Snapshot struct {
	InstanceID    string     `json:"instance_id"`
	Initialized   InitState  `json:"initialized"`
	Loading       bool       `json:"loading"`
	Error         string     `json:"error,omitempty"`
	View          View       `json:"view,omitempty"`
	Form          Form       `json:"form"`
	RedirectTo    string     `json:"redirect_to,omitempty"`
	MFA           bool       `json:"mfa"`
	PasswordHint  string     `json:"password_hint,omitempty"`
	PendingAction NextAction `json:"pending_action"`
	Lang          string     `json:"lang"`
}
