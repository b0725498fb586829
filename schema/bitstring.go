// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package schema

import (
	"fmt"

	"github.com/lyskom-go/lyskom/token"
)

// Bitstring describes a fixed-width sequence of named flags, carried on the
// wire as a single integer token whose decimal digits are reinterpreted as
// a string of '0'/'1' characters (see [token.Token].Raw). Names gives the
// flag at each position, left to right; Width may exceed len(Names), in
// which case the trailing positions are reserved and always read or
// written as zero.
type Bitstring struct {
	Names []string
	Width int
}

// Kind implements [Schema].
func (Bitstring) Kind() Kind { return BitstringKind }

// NewParser implements [Schema].
func (b Bitstring) NewParser() Parser { return &bitstringParser{schema: b} }

// Format implements [Schema].
func (b Bitstring) Format(w *Writer, v Value) error {
	bits, ok := v.(Bits)
	if !ok {
		return clientErrf("", "want schema.Bits, got %T", v)
	}
	digits := make([]byte, b.Width)
	for i := range digits {
		digits[i] = '0'
	}
	for i, name := range b.Names {
		if i >= b.Width {
			break
		}
		if bits.Get(name) {
			digits[i] = '1'
		}
	}
	w.writeRaw(digits)
	return nil
}

type bitstringParser struct {
	schema Bitstring
}

func (p *bitstringParser) Feed(q *Queue) (Value, bool, error) {
	tok, ok := q.Pop()
	if !ok {
		return nil, false, nil
	}
	if tok.Kind != token.Int {
		return nil, false, protoErrWantKind("bitstring", token.Int, tok.Kind)
	}
	if len(tok.Raw) != p.schema.Width {
		return nil, false, &token.ProtocolError{
			Msg: fmt.Sprintf("bitstring width mismatch: want %d digits, got %d", p.schema.Width, len(tok.Raw)),
		}
	}
	set := make(map[string]bool, len(p.schema.Names))
	for i, name := range p.schema.Names {
		if i >= len(tok.Raw) {
			break
		}
		set[name] = tok.Raw[i] == '1'
	}
	return Bits{Names: p.schema.Names, Set: set}, true, nil
}
