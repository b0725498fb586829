// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lyskom

import "fmt"

// A RequestError reports that the server refused an otherwise
// well-formed request. It carries the wire error code, its catalogue name,
// and the status word Protocol A attaches to every error reply.
type RequestError struct {
	RefNo     int64
	Code      int
	ErrorName string
	Status    int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("lyskom: request %d: %s (status %d)", e.RefNo, e.ErrorName, e.Status)
}

// A ServerError reports an out-of-band "%%" server message: a condition
// the server considered severe enough to announce outside the normal
// reply/error framing, typically fatal to the connection.
type ServerError struct {
	Text string
}

func (e *ServerError) Error() string { return "lyskom: server error: " + e.Text }

// A ClosedError is returned by any call made on, or already pending against,
// a Client whose Close method has run. A call whose request is sent after
// the read loop has stopped on a fatal error also fails with a ClosedError.
type ClosedError struct{}

func (ClosedError) Error() string { return "lyskom: client is closed" }
