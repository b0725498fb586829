// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package schema

import "github.com/lyskom-go/lyskom/token"

// A Queue is a FIFO of tokens waiting to be consumed by a [Parser]. The
// dispatcher appends newly-arrived tokens to the back; a Parser pops from
// the front until either it has enough tokens to produce a value, or the
// queue runs dry and it must suspend.
type Queue struct {
	toks []token.Token
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue { return &Queue{} }

// Push appends a token to the back of the queue.
func (q *Queue) Push(t token.Token) { q.toks = append(q.toks, t) }

// Pop removes and returns the token at the front of the queue. The second
// result is false if the queue is currently empty.
func (q *Queue) Pop() (token.Token, bool) {
	if len(q.toks) == 0 {
		return token.Token{}, false
	}
	t := q.toks[0]
	q.toks = q.toks[1:]
	return t, true
}

// Len reports how many tokens are currently buffered.
func (q *Queue) Len() int { return len(q.toks) }

// A Parser is the resumable, stateful counterpart to a [Schema]'s NewParser
// method. One Parser value exists per in-flight value of its schema; it is
// fed tokens a few at a time, across as many calls as the caller has tokens
// available, and keeps whatever partial progress it has made between calls.
//
// Feed pops zero or more tokens from q. If it has not yet seen enough
// tokens to know the value is complete, it returns (nil, false, nil),
// having consumed whatever tokens it could make use of; the caller must
// call Feed again once more tokens are available, and the Parser picks up
// exactly where it left off. A non-nil error is always fatal: a Parser that
// has returned an error must not be fed again.
type Parser interface {
	Feed(q *Queue) (Value, bool, error)
}
