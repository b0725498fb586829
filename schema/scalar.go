// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package schema

import (
	"strconv"

	"github.com/lyskom-go/lyskom/token"
)

// Empty describes a value with no wire representation at all: the request
// schema of a call that takes no parameters, or the response schema of a
// reply with no result fields.
type Empty struct{}

// Kind implements [Schema].
func (Empty) Kind() Kind { return EmptyKind }

// NewParser implements [Schema].
func (Empty) NewParser() Parser { return emptyParser{} }

// Format implements [Schema]. It writes nothing.
func (Empty) Format(*Writer, Value) error { return nil }

type emptyParser struct{}

func (emptyParser) Feed(*Queue) (Value, bool, error) { return Record{}, true, nil }

// Int32 describes a signed integer field, carried as a plain decimal
// integer token on the wire.
type Int32 struct{}

// Kind implements [Schema].
func (Int32) Kind() Kind { return Int32Kind }

// NewParser implements [Schema].
func (Int32) NewParser() Parser { return &int32Parser{} }

// Format implements [Schema].
func (Int32) Format(w *Writer, v Value) error {
	n, ok := v.(Int64)
	if !ok {
		return clientErrf("", "want schema.Int64, got %T", v)
	}
	w.writeString(strconv.FormatInt(int64(n), 10))
	return nil
}

type int32Parser struct{}

func (int32Parser) Feed(q *Queue) (Value, bool, error) {
	tok, ok := q.Pop()
	if !ok {
		return nil, false, nil
	}
	if tok.Kind != token.Int {
		return nil, false, protoErrWantKind("int32", token.Int, tok.Kind)
	}
	return Int64(tok.Int), true, nil
}

// Bool describes a boolean field, carried as the integer 0 or 1.
type Bool struct{}

// Kind implements [Schema].
func (Bool) Kind() Kind { return BoolKind }

// NewParser implements [Schema].
func (Bool) NewParser() Parser { return &boolParser{} }

// Format implements [Schema].
func (Bool) Format(w *Writer, v Value) error {
	b, ok := v.(Boolean)
	if !ok {
		return clientErrf("", "want schema.Boolean, got %T", v)
	}
	if b {
		w.writeString("1")
	} else {
		w.writeString("0")
	}
	return nil
}

type boolParser struct{}

func (boolParser) Feed(q *Queue) (Value, bool, error) {
	tok, ok := q.Pop()
	if !ok {
		return nil, false, nil
	}
	if tok.Kind != token.Int {
		return nil, false, protoErrWantKind("bool", token.Int, tok.Kind)
	}
	return Boolean(tok.Int != 0), true, nil
}
