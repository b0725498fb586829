// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lyskom

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lyskom-go/lyskom/catalog"
	"github.com/lyskom-go/lyskom/schema"
)

// State reports where a Client is in its connection lifecycle.
type State int32

const (
	Connecting State = iota
	Open
	Closed
)

func (s State) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// A Client is one session with a LysKOM Protocol A server. Methods on a
// Client are safe to call concurrently from multiple goroutines; the
// protocol itself is pipelined, so many calls may be in flight at once.
type Client struct {
	conn net.Conn
	log  *zap.SugaredLogger

	state atomic.Int32

	wmu sync.Mutex // serializes writes to conn

	mu      sync.Mutex
	nextRef int64
	pending map[int64]*pendingCall
	async   map[int]func(schema.Value)

	closeOnce sync.Once
	closeErr  error
	done      chan struct{}
}

type pendingCall struct {
	rpc    catalog.RPC
	result chan callResult
}

type callResult struct {
	val schema.Value
	err error
}

// Dial opens a TCP connection to a LysKOM Protocol A server and performs
// the initial handshake. The returned Client is in the Open state once
// Dial returns successfully.
func Dial(ctx context.Context, network, addr string, opts ...Option) (*Client, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, network, addr)
	if err != nil {
		return nil, fmt.Errorf("lyskom: dial: %w", err)
	}
	return newClient(ctx, conn, opts...)
}

func newClient(ctx context.Context, conn net.Conn, opts ...Option) (*Client, error) {
	o := newOptions(opts)
	c := &Client{
		conn:    conn,
		log:     o.log,
		pending: make(map[int64]*pendingCall),
		async:   make(map[int]func(schema.Value)),
		done:    make(chan struct{}),
	}
	c.state.Store(int32(Connecting))

	ready := make(chan error, 1)
	go c.readLoop(o, ready)

	select {
	case err := <-ready:
		if err != nil {
			conn.Close()
			return nil, err
		}
	case <-ctx.Done():
		conn.Close()
		return nil, ctx.Err()
	}
	c.state.Store(int32(Open))
	return c, nil
}

// State reports the Client's current lifecycle state.
func (c *Client) State() State { return State(c.state.Load()) }

// Call invokes the named RPC with the given parameters and blocks for its
// reply. The name must be registered in the catalogue; params must match
// the shape the catalogue declares for that RPC's request.
func (c *Client) Call(ctx context.Context, name string, params schema.Value) (schema.Value, error) {
	rpc, ok := catalog.ByName(name)
	if !ok {
		return nil, fmt.Errorf("lyskom: unknown RPC %q", name)
	}
	return c.call(ctx, rpc, params)
}

func (c *Client) call(ctx context.Context, rpc catalog.RPC, params schema.Value) (schema.Value, error) {
	if c.State() == Closed {
		return nil, ClosedError{}
	}

	refNo := c.allocRef()

	w := schema.NewWriter()
	w.WriteField(strconv.FormatInt(refNo, 10))
	w.WriteField(strconv.Itoa(rpc.Number))
	if err := rpc.Request.Format(w, params); err != nil {
		return nil, err
	}
	w.WriteTerminator()

	pc := &pendingCall{rpc: rpc, result: make(chan callResult, 1)}
	c.mu.Lock()
	c.pending[refNo] = pc
	c.mu.Unlock()

	if err := c.writeFrame(w.Bytes()); err != nil {
		c.mu.Lock()
		delete(c.pending, refNo)
		c.mu.Unlock()
		if c.State() == Closed {
			return nil, ClosedError{}
		}
		return nil, err
	}

	select {
	case res := <-pc.result:
		return res.val, res.err
	case <-ctx.Done():
		c.mu.Lock()
		delete(c.pending, refNo)
		c.mu.Unlock()
		return nil, ctx.Err()
	case <-c.done:
		return nil, ClosedError{}
	}
}

// OnAsync registers handler to be invoked, on the Client's internal read
// goroutine, for every asynchronous message of the given wire number. A
// handler registered for a number the server has not been told to send
// via acceptAsync simply never fires. Registering nil removes a previously
// registered handler.
func (c *Client) OnAsync(number int, handler func(schema.Value)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if handler == nil {
		delete(c.async, number)
		return
	}
	c.async[number] = handler
}

// Close shuts down the connection. It is idempotent and safe to call from
// any goroutine except from within an OnAsync handler: Close waits for the
// read loop to finish, and the read loop is the goroutine that runs the
// handler, so a Close called there never returns. If the
// connection supports half-close, Close shuts down the write side only and
// lets the read loop drain replies to requests already sent before the
// socket closes fully; any call that had not yet been sent, or that is
// still pending once the connection finally closes, fails with a
// ClosedError.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.state.Store(int32(Closed))

		var writeErr error
		halfClosed := false
		if cw, ok := c.conn.(interface{ CloseWrite() error }); ok {
			writeErr, halfClosed = cw.CloseWrite(), true
		} else {
			writeErr = c.conn.Close()
		}

		<-c.done // let the read loop drain replies to already-sent requests

		var closeErr error
		if halfClosed {
			closeErr = c.conn.Close()
		}

		var syncErr error
		if c.log != nil {
			syncErr = c.log.Sync()
		}
		c.closeErr = multierr.Combine(writeErr, closeErr, syncErr)
	})
	return c.closeErr
}

func (c *Client) allocRef() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	ref := c.nextRef
	c.nextRef++
	return ref
}

func (c *Client) writeFrame(b []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err := c.conn.Write(b)
	return err
}

func clientHandshake(user, host string) []byte {
	payload := user + "%" + host
	return []byte(fmt.Sprintf("A%dH%s\n", len(payload), payload))
}
