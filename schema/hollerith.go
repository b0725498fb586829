// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package schema

import (
	"strconv"

	"github.com/lyskom-go/lyskom/internal/latin1"
	"github.com/lyskom-go/lyskom/token"
)

// HollerithString describes a counted byte string field, carried on the
// wire as "<n>H<n bytes>". Conventionally those bytes are Latin-1 text, but
// the schema itself is agnostic: [Bytes] values pass the payload through
// unmodified, and only the [Str] convenience value goes through Latin-1
// encoding or decoding.
type HollerithString struct{}

// Kind implements [Schema].
func (HollerithString) Kind() Kind { return HollerithStringKind }

// NewParser implements [Schema].
func (HollerithString) NewParser() Parser { return &hollerithParser{} }

// Format implements [Schema]. v may be a [Bytes] (written verbatim) or a
// [Str] (Latin-1 encoded first).
func (HollerithString) Format(w *Writer, v Value) error {
	var raw []byte
	switch t := v.(type) {
	case Bytes:
		raw = []byte(t)
	case Str:
		enc, err := latin1.Encode(string(t))
		if err != nil {
			return clientErrf("", "encoding Hollerith payload: %v", err)
		}
		raw = enc
	default:
		return clientErrf("", "want schema.Bytes or schema.Str, got %T", v)
	}
	piece := make([]byte, 0, len(raw)+12)
	piece = strconv.AppendInt(piece, int64(len(raw)), 10)
	piece = append(piece, 'H')
	piece = append(piece, raw...)
	w.writeRaw(piece)
	return nil
}

type hollerithParser struct{}

func (hollerithParser) Feed(q *Queue) (Value, bool, error) {
	tok, ok := q.Pop()
	if !ok {
		return nil, false, nil
	}
	if tok.Kind != token.String {
		return nil, false, protoErrWantKind("string", token.String, tok.Kind)
	}
	return Bytes(tok.Str), true, nil
}
