// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lyskom

import (
	"fmt"
	"io"

	"github.com/lyskom-go/lyskom/catalog"
	"github.com/lyskom-go/lyskom/schema"
	"github.com/lyskom-go/lyskom/token"
)

// readLoop owns the connection's read side for the Client's lifetime: it
// feeds bytes to the tokenizer, routes the resulting events through the
// frame dispatcher, and performs the one write the read side is
// responsible for, the client's half of the connection handshake. It is
// the Client's single logical reader; all mutation of dispatch state
// happens here, unsynchronized, while the pending-call table and the async
// handler table are guarded by c.mu since callers reach them from other
// goroutines.
func (c *Client) readLoop(o *options, ready chan error) {
	defer close(c.done)

	tok := token.New(true)
	q := schema.NewQueue()
	st := &dispatchState{}
	signaled := false

	signal := func(err error) {
		if !signaled {
			signaled = true
			ready <- err
		}
	}

	fail := func(err error) {
		signal(err)
		c.failAll(err)
	}

	buf := make([]byte, 4096)
	for {
		n, rerr := c.conn.Read(buf)
		if n > 0 {
			evs, ferr := tok.Feed(buf[:n])
			if err := c.handleEvents(evs, q, st, o, &signaled, ready); err != nil {
				fail(err)
				return
			}
			if ferr != nil {
				fail(ferr)
				return
			}
		}
		if rerr != nil {
			if c.State() == Closed {
				fail(ClosedError{})
			} else {
				if rerr == io.EOF {
					rerr = io.ErrUnexpectedEOF
				}
				fail(rerr)
			}
			return
		}
	}
}

// handleEvents applies one Feed call's worth of tokenizer events to the
// client's dispatch state. The handshake is special: it is the one frame
// the read loop answers on the wire itself, rather than handing to a
// caller's pending call.
func (c *Client) handleEvents(evs []token.Event, q *schema.Queue, st *dispatchState, o *options, signaled *bool, ready chan error) error {
	for _, ev := range evs {
		switch ev.Kind {
		case token.EventHandshake:
			if err := c.writeFrame(clientHandshake(o.user, o.hostname)); err != nil {
				return err
			}
			if !*signaled {
				*signaled = true
				ready <- nil
			}
		case token.EventServerError:
			return &ServerError{Text: ev.Text}
		case token.EventToken:
			q.Push(ev.Token)
			if err := c.pump(q, st); err != nil {
				return err
			}
		case token.EventEnd:
			// Not produced on a live connection; Close tears down the read
			// side by closing the socket instead of calling Tokenizer.End.
		}
	}
	return nil
}

// frameKind identifies which of the three top-level wire frames the
// dispatcher is currently parsing the body of.
type frameKind int

const (
	frameNone frameKind = iota
	frameReply
	frameError
	frameAsync
)

// dispatchState carries whatever partial progress the frame dispatcher has
// made across Feed calls. It is owned exclusively by readLoop's goroutine.
type dispatchState struct {
	frame frameKind

	haveRef bool
	refNo   int64

	haveCode bool
	code     int

	haveNumParams bool
	numParams     int
	haveMsgNum    bool
	msgNum        int

	parser schema.Parser
	pc     *pendingCall

	// skipRemaining counts the raw tokens still to be discarded for an async
	// message whose wire number the catalogue does not recognize. Protocol A
	// declares numParams precisely so an unfamiliar message can be skipped
	// token-for-token without understanding its payload shape.
	skipRemaining int
}

// pump drains as many tokens as q currently has buffered, advancing the
// frame dispatcher and resolving pending calls or firing async handlers as
// complete frames are recognized. It returns nil, having consumed what it
// could, as soon as q runs dry mid-frame; dispatchState preserves exactly
// enough to resume on the next call.
func (c *Client) pump(q *schema.Queue, st *dispatchState) error {
	for {
		if st.frame == frameNone {
			t, ok := q.Pop()
			if !ok {
				return nil
			}
			switch t.Kind {
			case token.Equals:
				st.frame = frameReply
			case token.Percent:
				st.frame = frameError
			case token.Colon:
				st.frame = frameAsync
			default:
				return &token.ProtocolError{Msg: fmt.Sprintf("unexpected %v at top level", t.Kind)}
			}
			continue
		}

		switch st.frame {
		case frameReply:
			if done, err := c.pumpReply(q, st); err != nil || !done {
				return err
			}
		case frameError:
			if done, err := c.pumpError(q, st); err != nil || !done {
				return err
			}
		case frameAsync:
			if done, err := c.pumpAsync(q, st); err != nil || !done {
				return err
			}
		}
		*st = dispatchState{}
	}
}

func (c *Client) pumpReply(q *schema.Queue, st *dispatchState) (bool, error) {
	if !st.haveRef {
		t, ok := q.Pop()
		if !ok {
			return false, nil
		}
		if t.Kind != token.Int {
			return false, protoErrWantInt("reply reference number", t.Kind)
		}
		st.refNo, st.haveRef = t.Int, true

		c.mu.Lock()
		pc := c.pending[st.refNo]
		delete(c.pending, st.refNo)
		c.mu.Unlock()
		if pc == nil {
			return false, &token.ProtocolError{Msg: fmt.Sprintf("reply to unknown reference number %d", st.refNo)}
		}
		st.pc = pc
		st.parser = pc.rpc.Reply.NewParser()
	}

	val, done, err := st.parser.Feed(q)
	if err != nil || !done {
		return false, err
	}
	st.pc.result <- callResult{val: val}
	return true, nil
}

func (c *Client) pumpError(q *schema.Queue, st *dispatchState) (bool, error) {
	if !st.haveRef {
		t, ok := q.Pop()
		if !ok {
			return false, nil
		}
		if t.Kind != token.Int {
			return false, protoErrWantInt("error reference number", t.Kind)
		}
		st.refNo, st.haveRef = t.Int, true
	}
	if !st.haveCode {
		t, ok := q.Pop()
		if !ok {
			return false, nil
		}
		if t.Kind != token.Int {
			return false, protoErrWantInt("error code", t.Kind)
		}
		st.code, st.haveCode = int(t.Int), true
	}
	t, ok := q.Pop()
	if !ok {
		return false, nil
	}
	if t.Kind != token.Int {
		return false, protoErrWantInt("error status", t.Kind)
	}
	status := int(t.Int)

	c.mu.Lock()
	pc := c.pending[st.refNo]
	delete(c.pending, st.refNo)
	c.mu.Unlock()
	if pc != nil {
		name := catalog.Name(st.code)
		if name == "" {
			name = fmt.Sprintf("error-%d", st.code)
		}
		pc.result <- callResult{err: &RequestError{RefNo: st.refNo, Code: st.code, ErrorName: name, Status: status}}
	} else if c.log != nil {
		c.log.Warnw("error reply for unknown reference number", "refNo", st.refNo, "code", st.code)
	}
	return true, nil
}

func (c *Client) pumpAsync(q *schema.Queue, st *dispatchState) (bool, error) {
	if !st.haveNumParams {
		t, ok := q.Pop()
		if !ok {
			return false, nil
		}
		if t.Kind != token.Int {
			return false, protoErrWantInt("async parameter count", t.Kind)
		}
		st.numParams, st.haveNumParams = int(t.Int), true
	}
	if !st.haveMsgNum {
		t, ok := q.Pop()
		if !ok {
			return false, nil
		}
		if t.Kind != token.Int {
			return false, protoErrWantInt("async message number", t.Kind)
		}
		st.msgNum, st.haveMsgNum = int(t.Int), true

		if desc, ok := catalog.LookupAsync(st.msgNum); ok {
			st.parser = desc.Schema.NewParser()
		} else {
			// An unrecognized message kind is forward compatibility, not an
			// error: numParams tells us exactly how many raw tokens to
			// discard to resynchronize, with no need to understand their
			// shape.
			st.skipRemaining = st.numParams
		}
	}
	if st.parser == nil {
		for st.skipRemaining > 0 {
			if _, ok := q.Pop(); !ok {
				return false, nil
			}
			st.skipRemaining--
		}
		c.dispatchAsync(st.msgNum, nil)
		return true, nil
	}

	val, done, err := st.parser.Feed(q)
	if err != nil || !done {
		return false, err
	}
	c.dispatchAsync(st.msgNum, val)
	return true, nil
}

func (c *Client) dispatchAsync(number int, val schema.Value) {
	c.mu.Lock()
	h := c.async[number]
	c.mu.Unlock()
	if h != nil {
		h(val)
	} else if c.log != nil {
		c.log.Debugw("no handler registered for async message", "number", number)
	}
}

// failAll resolves every still-pending call with err. It is called once the
// read side has observed a fatal condition: a *token.ProtocolError, a
// *ServerError, or the connection closing unexpectedly.
func (c *Client) failAll(err error) {
	c.mu.Lock()
	pending := c.pending
	c.pending = make(map[int64]*pendingCall)
	c.mu.Unlock()
	for _, pc := range pending {
		pc.result <- callResult{err: err}
	}
	if c.log != nil {
		c.log.Errorw("connection failed", "error", err)
	}
}

func protoErrWantInt(what string, got token.Kind) error {
	return &token.ProtocolError{Msg: fmt.Sprintf("%s: want integer, got %s", what, got)}
}
