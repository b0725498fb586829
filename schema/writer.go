// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package schema

// A Writer accumulates the wire encoding of a request. Every call after the
// first one prepends a single space, so callers never need to think about
// separators: whoever writes the reference number as the very first piece
// of output gets it unprefixed, and everything written after that -- the
// RPC number, then every field -- automatically gets its leading space.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer { return &Writer{} }

func (w *Writer) writeRaw(b []byte) {
	if len(w.buf) > 0 {
		w.buf = append(w.buf, ' ')
	}
	w.buf = append(w.buf, b...)
}

func (w *Writer) writeString(s string) { w.writeRaw([]byte(s)) }

// WriteField appends one space-separated piece of output, such as a
// reference number or an RPC number, ahead of the fields a [Schema].Format
// call writes for the request body.
func (w *Writer) WriteField(s string) { w.writeString(s) }

// WriteTerminator appends the record separator that ends a request, with no
// leading space.
func (w *Writer) WriteTerminator() { w.buf = append(w.buf, '\n') }

// Bytes returns the accumulated wire bytes. The slice aliases the Writer's
// internal buffer and must be copied before the Writer is reused.
func (w *Writer) Bytes() []byte { return w.buf }
