// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package lyskom implements a client for LysKOM Protocol A, a
// text-based, pipelined RPC protocol historically spoken over a plain TCP
// socket. A [Client] owns one connection: it performs the server's opening
// handshake, assigns each outgoing call a reference number, and routes
// incoming reply, error, and asynchronous-message frames back to their
// callers as the token stream is read.
//
// # Calling conventions
//
// Call sends one RPC and blocks for its reply:
//
//	cl, err := lyskom.Dial(ctx, "tcp", "kom.example.org:4894", lyskom.WithUser("guest"))
//	...
//	reply, err := cl.Call(ctx, "login", schema.NewRecord(
//	    "person", schema.Int64(4711),
//	    "passwd", schema.Str("hamligt"),
//	    "invisible", schema.Boolean(false),
//	))
//
// Protocol A is pipelined: a caller may have many Call invocations
// in flight on the same Client at once, from as many goroutines as it
// likes; the Client serializes writes and fans incoming replies back out by
// reference number.
//
// # Asynchronous messages
//
// A server only delivers the asynchronous message kinds a client has
// opted into with the acceptAsync call. Register a handler with OnAsync
// before or after making that call; messages that arrive before any handler
// is registered for their kind are dropped, not queued.
package lyskom
