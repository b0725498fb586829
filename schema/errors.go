// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package schema

import (
	"fmt"

	"github.com/lyskom-go/lyskom/token"
)

// A ClientError reports a mistake made by the calling program, detected
// before any bytes reached the wire: a missing field, a value of the wrong
// kind, or a string that cannot be Latin-1 encoded. It is distinct from a
// [token.ProtocolError], which reports a malformed byte stream, and from an
// on-wire error reply, which reports the server's refusal of an otherwise
// well-formed request.
type ClientError struct {
	Path string // innermost field name or array index, e.g. "flags" or "[1]"; enclosing names are not included
	Msg  string
}

func (e *ClientError) Error() string {
	if e.Path == "" {
		return "schema: " + e.Msg
	}
	return fmt.Sprintf("schema: %s: %s", e.Path, e.Msg)
}

func clientErrf(path, format string, args ...any) error {
	return &ClientError{Path: path, Msg: fmt.Sprintf(format, args...)}
}

// protoErrWantKind reports a malformed wire value: a token of the wrong
// kind where a given schema expected one of its own. Unlike a ClientError,
// this always means the server sent bytes that do not match the schema
// catalogue, so it is reported as a *token.ProtocolError.
func protoErrWantKind(want string, wantKind, gotKind token.Kind) error {
	return &token.ProtocolError{Msg: fmt.Sprintf("%s: want %s, got %s", want, wantKind, gotKind)}
}
