// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package schema

import (
	"strconv"

	"github.com/lyskom-go/lyskom/token"
)

// Array describes a homogeneous, length-prefixed sequence of one element
// schema. On the wire it is "<n> { <n elements> }", or "<n> *" for a
// "length only" array in which the server reports how many elements exist
// without sending their values.
type Array struct {
	Elem Schema
}

// Kind implements [Schema].
func (Array) Kind() Kind { return ArrayKind }

// NewParser implements [Schema].
func (a Array) NewParser() Parser { return &arrayParser{schema: a} }

// Format implements [Schema]. Array always writes the full "{ elements }"
// form; the "length only" encoding is a parse-side accommodation for
// servers electing to omit element data; a client always has concrete
// values to send.
func (a Array) Format(w *Writer, v Value) error {
	seq, ok := v.(Seq)
	if !ok {
		return clientErrf("", "want schema.Seq, got %T", v)
	}
	if seq.Elems == nil && seq.Len > 0 {
		return clientErrf("", "array has no elements to format (length-only value)")
	}
	w.writeString(strconv.Itoa(len(seq.Elems)))
	w.writeString("{")
	for i, el := range seq.Elems {
		if err := a.Elem.Format(w, el); err != nil {
			if ce, ok := err.(*ClientError); ok && ce.Path == "" {
				ce.Path = "[" + strconv.Itoa(i) + "]"
				return ce
			}
			return err
		}
	}
	w.writeString("}")
	return nil
}

type arrayMode byte

const (
	arrayModeUndetermined arrayMode = iota
	arrayModeLengthOnly
	arrayModeWithElems
)

// arrayParser tolerates suspension at any point: before the length arrives,
// before the "{"/"*" disambiguator arrives, between elements, and before the
// closing "}".
type arrayParser struct {
	schema Array

	haveLen bool
	n       int
	mode    arrayMode

	idx   int
	elems []Value
	sub   Parser
}

func (p *arrayParser) Feed(q *Queue) (Value, bool, error) {
	if !p.haveLen {
		tok, ok := q.Pop()
		if !ok {
			return nil, false, nil
		}
		if tok.Kind != token.Int {
			return nil, false, protoErrWantKind("array length", token.Int, tok.Kind)
		}
		p.n = int(tok.Int)
		p.haveLen = true
	}

	if p.mode == arrayModeUndetermined {
		tok, ok := q.Pop()
		if !ok {
			return nil, false, nil
		}
		switch tok.Kind {
		case token.Star:
			return Seq{Len: p.n, Elems: nil}, true, nil
		case token.OpenBrace:
			p.mode = arrayModeWithElems
		default:
			return nil, false, protoErrWantKind("array body", token.OpenBrace, tok.Kind)
		}
	}

	for p.idx < p.n {
		if p.sub == nil {
			p.sub = p.schema.Elem.NewParser()
		}
		val, done, err := p.sub.Feed(q)
		if err != nil {
			return nil, false, err
		}
		if !done {
			return nil, false, nil
		}
		p.elems = append(p.elems, val)
		p.sub = nil
		p.idx++
	}

	tok, ok := q.Pop()
	if !ok {
		return nil, false, nil
	}
	if tok.Kind != token.CloseBrace {
		return nil, false, protoErrWantKind("array close", token.CloseBrace, tok.Kind)
	}
	return Seq{Len: p.n, Elems: p.elems}, true, nil
}
