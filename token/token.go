// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package token

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid    Kind = iota // invalid or absent token
	Int                    // integer: decimal digits
	Float                  // a float: digits "." digits
	String                 // a Hollerith-counted byte string
	OpenBrace              // "{"
	CloseBrace             // "}"
	Star                   // "*"
	Equals                 // "="
	Percent                // "%"
	Colon                  // ":"
)

var kindStr = [...]string{
	Invalid:    "invalid token",
	Int:        "integer",
	Float:      "float",
	String:     "string",
	OpenBrace:  `"{"`,
	CloseBrace: `"}"`,
	Star:       `"*"`,
	Equals:     `"="`,
	Percent:    `"%"`,
	Colon:      `":"`,
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[k]
}

// A Token is a single lexical unit of the Protocol A wire grammar.
//
// For an Int token, Raw holds the undecoded decimal digits exactly as they
// appeared on the wire (including any leading zeroes); this lets a Bitstring
// schema reinterpret the same digits as flag positions without forcing the
// tokenizer to guess ahead of time whether a given integer will be used as a
// scalar or a bit-string.
//
// For a String token, Str is a zero-copy view into the Tokenizer's internal
// buffer: the bytes are never decoded or transcoded by the tokenizer, and
// remain valid for as long as the caller retains the slice, since the
// Tokenizer never writes over bytes it has already consumed.
type Token struct {
	Kind  Kind
	Int   int64
	Raw   []byte
	Float float64
	Str   []byte
}

func (t Token) String() string {
	switch t.Kind {
	case Int:
		return fmt.Sprintf("Int(%d)", t.Int)
	case Float:
		return fmt.Sprintf("Float(%g)", t.Float)
	case String:
		return fmt.Sprintf("String(%dH)", len(t.Str))
	default:
		return t.Kind.String()
	}
}

// EventKind identifies what a Tokenizer produced from a chunk of input.
type EventKind byte

const (
	// EventToken reports that Event.Token is a newly lexed token.
	EventToken EventKind = iota
	// EventHandshake reports that the server handshake preface was seen.
	EventHandshake
	// EventServerError reports an out-of-band "%%" server message. Event.Text
	// holds the message text, excluding the leading "%%" and the newline.
	EventServerError
	// EventEnd reports that End was called and the input is exhausted.
	EventEnd
)

// An Event is one unit of output from feeding a Tokenizer.
type Event struct {
	Kind  EventKind
	Token Token
	Text  string
}

// A ProtocolError reports that the input violated the Protocol A wire
// grammar, or ended with unparseable residue. It is always fatal: a
// Tokenizer that has reported a ProtocolError must not be fed further data.
type ProtocolError struct {
	Offset int // byte offset within the current buffer, for diagnostics
	Msg    string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error at offset %d: %s", e.Offset, e.Msg)
}

func protoErrf(offset int, format string, args ...any) *ProtocolError {
	return &ProtocolError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}
