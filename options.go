// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lyskom

import "go.uber.org/zap"

// An Option configures a Client at Dial time.
type Option func(*options)

type options struct {
	user     string
	hostname string
	log      *zap.SugaredLogger
}

// WithUser sets the username sent in the client's half of the connection
// handshake. If unset, Dial uses "guest".
func WithUser(user string) Option {
	return func(o *options) { o.user = user }
}

// WithHostname sets the hostname sent in the client's half of the
// connection handshake. If unset, Dial uses "unknown".
func WithHostname(host string) Option {
	return func(o *options) { o.hostname = host }
}

// WithLogger attaches a logger for connection lifecycle and dispatch
// events. If unset, a Client logs nothing.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) { o.log = log }
}

func newOptions(opts []Option) *options {
	o := &options{user: "guest", hostname: "unknown"}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
