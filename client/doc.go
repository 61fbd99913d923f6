// Package client is a reference HTTP implementation of the authui.Client
// contract. It speaks the uniform result envelope the widget expects
// ({ok, data, error:{description}}), attaches a bearer access token when
// one is held, and answers IsAuthenticated locally from the token's expiry
// claim without a network round trip.
//
// Settings returns nil until Negotiate has fetched the remote settings
// payload; the widget controller polls for that during initialization.
package client
