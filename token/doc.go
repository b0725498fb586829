// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package token implements a lexical tokenizer for LysKOM Protocol A.
//
// # Feeding
//
// A Tokenizer does not own a reader: the byte-stream adapter feeds it
// arbitrarily-chunked data by calling Feed, and signals the end of input by
// calling End. Each call returns the Events the new data made available, or
// reports a fatal error if the input is not well-formed.
//
//	t := token.New(true)
//	for chunk := range incoming {
//	   evs, err := t.Feed(chunk)
//	   if err != nil {
//	      log.Fatalf("tokenize: %v", err)
//	   }
//	   for _, ev := range evs {
//	      handle(ev)
//	   }
//	}
//
// A call to Feed may produce zero events if the buffered bytes do not yet
// form a complete token; the Tokenizer resumes from exactly that state on
// the next call. This property holds for arbitrary chunk boundaries,
// including in the middle of a digit run, a Hollerith count, or a Hollerith
// payload.
//
// # Handshake
//
// When constructed with expectHandshake true, the Tokenizer consumes bytes
// until it has seen the literal "LysKOM\n" before producing any Token event.
// On success it reports a single EventHandshake. Any 7-byte prefix that does
// not match is a fatal [ProtocolError].
//
// # Server errors
//
// At any point in normal mode, a line beginning with "%%" is an out-of-band
// server error: the tokenizer reports an EventServerError carrying the text
// up to (not including) the terminating newline, and resumes tokenizing
// after it. A server error seen while awaiting the handshake is fatal.
package token
