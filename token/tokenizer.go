// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package token

import (
	"bytes"
	"strconv"
)

const handshakeLiteral = "LysKOM\n"

// A Tokenizer converts a stream of arbitrarily-chunked bytes into Protocol A
// tokens. It owns no I/O: callers push bytes in with Feed and signal the end
// of the stream with End. A Tokenizer is not safe for concurrent use; the
// byte-stream adapter that feeds it must serialize calls (see the session
// package's single-logical-executor requirement).
type Tokenizer struct {
	expectHandshake bool
	handshakeDone   bool

	buf   []byte
	fatal error
	ended bool
}

// New constructs a Tokenizer. If expectHandshake is true, the tokenizer
// consumes the "LysKOM\n" server preface before producing any Token event.
func New(expectHandshake bool) *Tokenizer {
	return &Tokenizer{expectHandshake: expectHandshake, handshakeDone: !expectHandshake}
}

// Feed appends chunk to the tokenizer's input and returns the Events that
// became available as a result. Feed returns a *ProtocolError if the input
// seen so far cannot be a prefix of any well-formed stream; once that
// happens the Tokenizer is dead and must not be fed again.
func (t *Tokenizer) Feed(chunk []byte) ([]Event, error) {
	if t.fatal != nil {
		return nil, t.fatal
	}
	if t.ended {
		return nil, protoErrf(0, "input fed after End")
	}
	t.buf = append(t.buf, chunk...)
	return t.drain(false)
}

// End signals that the byte stream has closed. Any trailing bytes are
// re-examined with a single synthetic whitespace byte appended, to flush a
// final integer or float that was only ambiguous for lack of a terminator.
// Any residue after that is a fatal *ProtocolError.
func (t *Tokenizer) End() ([]Event, error) {
	if t.fatal != nil {
		return nil, t.fatal
	}
	if t.ended {
		return nil, nil
	}
	t.ended = true
	t.buf = append(t.buf, ' ')
	evs, err := t.drain(true)
	if err != nil {
		return evs, err
	}
	if len(t.buf) != 0 {
		err := protoErrf(0, "unexpected end of stream with %d byte(s) pending", len(t.buf))
		t.fatal = err
		return evs, err
	}
	return append(evs, Event{Kind: EventEnd}), nil
}

// drain lexes as many complete tokens as possible out of t.buf. atEnd
// indicates the synthetic end-of-stream whitespace has already been
// appended, so a need-more-input result discovered here is an error instead
// of a suspension.
func (t *Tokenizer) drain(atEnd bool) ([]Event, error) {
	var evs []Event
	for {
		if !t.handshakeDone {
			ev, consumed, needMore, err := t.stepHandshake()
			t.buf = t.buf[consumed:]
			if err != nil {
				t.fatal = err
				return evs, err
			}
			if needMore {
				if atEnd {
					err := protoErrf(0, "incomplete handshake preface")
					t.fatal = err
					return evs, err
				}
				return evs, nil
			}
			if ev != nil {
				evs = append(evs, *ev)
			}
			continue
		}

		ev, consumed, needMore, err := t.step()
		t.buf = t.buf[consumed:]
		if err != nil {
			t.fatal = err
			return evs, err
		}
		if needMore {
			if atEnd && len(t.buf) == 0 {
				// Only trailing whitespace was pending; nothing to flush.
				return evs, nil
			}
			if atEnd {
				err := protoErrf(0, "incomplete token at end of stream")
				t.fatal = err
				return evs, err
			}
			return evs, nil
		}
		evs = append(evs, *ev)
	}
}

// stepHandshake consumes bytes until the literal "LysKOM\n" preface is
// matched, or reports a fatal error as soon as the accumulated prefix
// diverges from it.
func (t *Tokenizer) stepHandshake() (ev *Event, consumed int, needMore bool, err error) {
	n := len(handshakeLiteral)
	if len(t.buf) < n {
		if len(t.buf) > 0 && string(t.buf) != handshakeLiteral[:len(t.buf)] {
			return nil, 0, false, protoErrf(0, "bad handshake preface %q", t.buf)
		}
		// Special-case the server-error escape arriving instead of a
		// handshake: a fatal condition, not merely ambiguous.
		if len(t.buf) >= 2 && t.buf[0] == '%' && t.buf[1] == '%' {
			return nil, 0, false, protoErrf(0, "server error during handshake")
		}
		return nil, 0, true, nil
	}
	if string(t.buf[:n]) != handshakeLiteral {
		return nil, 0, false, protoErrf(0, "bad handshake preface %q", t.buf[:n])
	}
	t.handshakeDone = true
	return &Event{Kind: EventHandshake}, n, false, nil
}

// step attempts to lex a single token (or out-of-band server error) from the
// front of t.buf. It returns the number of bytes to drop from the front of
// the buffer regardless of whether a token was produced.
func (t *Tokenizer) step() (ev *Event, consumed int, needMore bool, err error) {
	i := 0
	for i < len(t.buf) && isSpace(t.buf[i]) {
		i++
	}
	if i == len(t.buf) {
		return nil, i, true, nil
	}
	b := t.buf[i]

	if b == '%' {
		if i+1 == len(t.buf) {
			return nil, i, true, nil // could be "%%"; wait for one more byte
		}
		if t.buf[i+1] == '%' {
			return t.stepServerError(i)
		}
		return &Event{Kind: EventToken, Token: Token{Kind: Percent}}, i + 1, false, nil
	}

	if sk, ok := selfDelim(b); ok {
		return &Event{Kind: EventToken, Token: Token{Kind: sk}}, i + 1, false, nil
	}

	if isDigit(b) {
		return t.stepNumberOrString(i)
	}

	return nil, i, false, protoErrf(i, "unexpected byte %q", b)
}

func (t *Tokenizer) stepServerError(start int) (ev *Event, consumed int, needMore bool, err error) {
	nl := bytes.IndexByte(t.buf[start+2:], '\n')
	if nl < 0 {
		return nil, start, true, nil
	}
	text := string(t.buf[start+2 : start+2+nl])
	return &Event{Kind: EventServerError, Text: text}, start + 2 + nl + 1, false, nil
}

func (t *Tokenizer) stepNumberOrString(start int) (ev *Event, consumed int, needMore bool, err error) {
	j := start
	for j < len(t.buf) && isDigit(t.buf[j]) {
		j++
	}
	if j == len(t.buf) {
		return nil, start, true, nil // digit run might continue in the next chunk
	}
	digits := t.buf[start:j]

	switch t.buf[j] {
	case 'H':
		n, ok := parseUint(digits)
		if !ok {
			return nil, start, false, protoErrf(start, "invalid Hollerith count %q", digits)
		}
		payloadStart := j + 1
		if len(t.buf) < payloadStart+n {
			return nil, start, true, nil // payload not fully buffered yet
		}
		str := t.buf[payloadStart : payloadStart+n]
		return &Event{Kind: EventToken, Token: Token{Kind: String, Str: str}}, payloadStart + n, false, nil

	case '.':
		return t.stepFloat(start, j)

	default:
		if !isSpace(t.buf[j]) {
			return nil, start, false, protoErrf(start, "integer not terminated by whitespace")
		}
		v, ok := parseUint(digits)
		if !ok {
			return nil, start, false, protoErrf(start, "invalid integer %q", digits)
		}
		raw := append([]byte(nil), digits...)
		return &Event{Kind: EventToken, Token: Token{Kind: Int, Int: int64(v), Raw: raw}}, j, false, nil
	}
}

// stepFloat continues lexing after an integer part followed by a ".".
// dot is the index of the "." byte in t.buf.
func (t *Tokenizer) stepFloat(start, dot int) (ev *Event, consumed int, needMore bool, err error) {
	k := dot + 1
	for k < len(t.buf) && isDigit(t.buf[k]) {
		k++
	}
	if k == dot+1 {
		if k == len(t.buf) {
			return nil, start, true, nil // fractional digits not arrived yet
		}
		return nil, start, false, protoErrf(start, "float has no fractional digits")
	}
	if k == len(t.buf) {
		return nil, start, true, nil // fractional run might continue
	}
	if !isSpace(t.buf[k]) {
		return nil, start, false, protoErrf(start, "float not terminated by whitespace")
	}
	text := t.buf[start:k]
	f, err2 := strconv.ParseFloat(string(text), 64)
	if err2 != nil {
		return nil, start, false, protoErrf(start, "invalid float %q: %v", text, err2)
	}
	return &Event{Kind: EventToken, Token: Token{Kind: Float, Float: f}}, k, false, nil
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }

func selfDelim(b byte) (Kind, bool) {
	switch b {
	case '{':
		return OpenBrace, true
	case '}':
		return CloseBrace, true
	case '*':
		return Star, true
	case '=':
		return Equals, true
	case ':':
		return Colon, true
	}
	return Invalid, false
}

func parseUint(digits []byte) (int, bool) {
	if len(digits) == 0 || len(digits) > 18 {
		return 0, false
	}
	n, err := strconv.ParseInt(string(digits), 10, 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
