// Package authui is a headless client-side authentication widget: a view
// state controller that drives a multi-screen sign-in, sign-up, and
// account-management flow against a host-supplied authentication client.
//
// The controller owns the state of one widget instance (current view, form
// buffers, configuration, remote settings, translations) and steps an
// explicit state machine across roughly fifteen views, including the
// OTP step-up flows used when the service authenticates with a one-time
// password. Rendering is out of scope: the host binds inputs to the form
// buffer, invokes the action methods, and observes state through Subscribe
// or Snapshot.
//
// A Controller is built once and initialized once:
//
//	ctrl, err := authui.New().
//	        WithClient(client).
//	        WithConfig(cfg).
//	        Build()
//	if err != nil { ... }
//	if err := ctrl.Initialize(ctx); err != nil { ... }
//
// Every action clears the error message on entry, restores the loading flag
// on every exit path, maps remote error codes to fixed user-facing
// messages, and never lets an unexpected failure escape as anything but the
// generic message.
//
// Subpackages: validate holds the generic rule-based field validator,
// password the policy check and hint text, locale the translation bundles,
// session the Redis-backed snapshot store, and client a reference HTTP
// implementation of the Client contract.
package authui
