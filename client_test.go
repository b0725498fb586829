// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lyskom

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"github.com/lyskom-go/lyskom/schema"
)

// fakeServer wraps the server half of a net.Pipe with a line reader, for
// tests that play the role of a LysKOM server by hand.
type fakeServer struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
}

func newFakeServer(t *testing.T, conn net.Conn) *fakeServer {
	return &fakeServer{t: t, conn: conn, r: bufio.NewReader(conn)}
}

func (s *fakeServer) writeLine(line string) {
	s.t.Helper()
	if _, err := s.conn.Write([]byte(line)); err != nil {
		s.t.Fatalf("write %q: %v", line, err)
	}
}

func (s *fakeServer) readLine() string {
	s.t.Helper()
	line, err := s.r.ReadString('\n')
	if err != nil {
		s.t.Fatalf("read line: %v", err)
	}
	return line
}

func dialFake(t *testing.T) (*Client, *fakeServer) {
	t.Helper()
	clientConn, serverConn := net.Pipe()
	srv := newFakeServer(t, serverConn)

	type dialResult struct {
		cl  *Client
		err error
	}
	result := make(chan dialResult, 1)
	go func() {
		cl, err := newClient(context.Background(), clientConn, WithUser("zaphod"), WithHostname("heartofgold"))
		result <- dialResult{cl, err}
	}()

	srv.writeLine("LysKOM\n")
	hello := srv.readLine()
	if hello != "A18Hzaphod%heartofgold\n" {
		t.Fatalf("client handshake = %q, want A18Hzaphod%%heartofgold\\n", hello)
	}

	res := <-result
	if res.err != nil {
		t.Fatalf("newClient: %v", res.err)
	}
	return res.cl, srv
}

func TestLoginRoundTrip(t *testing.T) {
	cl, srv := dialFake(t)
	defer cl.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		srv.readLine() // "0 62 4711 7Hsecret1 0\n"
		srv.writeLine("=0\n")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := cl.Call(ctx, "login", schema.NewRecord(
		"person", schema.Int64(4711),
		"passwd", schema.Str("secret1"),
		"invisible", schema.Boolean(false),
	))
	if err != nil {
		t.Fatalf("Call(login): %v", err)
	}
	<-done
}

func TestLogoutRequestBytes(t *testing.T) {
	cl, srv := dialFake(t)
	defer cl.Close()

	go func() {
		line := srv.readLine() // "0 1\n"
		if line != "0 1\n" {
			t.Errorf("logout request = %q, want %q", line, "0 1\n")
		}
		srv.writeLine("=" + line[:1] + "\n")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := cl.Call(ctx, "logout", schema.Record{}); err != nil {
		t.Fatalf("Call(logout): %v", err)
	}
}

func TestErrorReply(t *testing.T) {
	cl, srv := dialFake(t)
	defer cl.Close()

	go func() {
		srv.readLine() // "0 62 ..."
		srv.writeLine("%0 4 0\n")
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := cl.Call(ctx, "login", schema.NewRecord(
		"person", schema.Int64(4711),
		"passwd", schema.Str("wrong"),
		"invisible", schema.Boolean(false),
	))
	if err == nil {
		t.Fatal("expected a RequestError")
	}
	re, ok := err.(*RequestError)
	if !ok {
		t.Fatalf("error is %T, want *RequestError", err)
	}
	if re.Code != 4 {
		t.Errorf("Code = %d, want 4 (invalid-password)", re.Code)
	}
	if re.ErrorName != "invalid-password" {
		t.Errorf("ErrorName = %q, want invalid-password", re.ErrorName)
	}
	if got := re.Error(); got == "" {
		t.Error("Error() returned empty string")
	}
}

func TestAsyncDispatch(t *testing.T) {
	cl, srv := dialFake(t)
	defer cl.Close()

	recv := make(chan schema.Value, 1)
	cl.OnAsync(12, func(v schema.Value) { recv <- v })

	srv.writeLine(":3 12 4711 22 6Hgazonk\n")

	select {
	case v := <-recv:
		rec, ok := v.(schema.Record)
		if !ok {
			t.Fatalf("async value is %T, want schema.Record", v)
		}
		msg, _ := rec.Get("message")
		if string(msg.(schema.Bytes)) != "gazonk" {
			t.Errorf("message = %q, want gazonk", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for async dispatch")
	}
}

func TestAsyncDispatchSkipsUnknownMessage(t *testing.T) {
	cl, srv := dialFake(t)
	defer cl.Close()

	recv := make(chan schema.Value, 1)
	cl.OnAsync(12, func(v schema.Value) { recv <- v })

	// An unrecognized async kind (999) with two parameters: the dispatcher
	// must skip exactly those two tokens and keep parsing the next frame,
	// rather than tearing down the connection.
	srv.writeLine(":2 999 4711 22\n")
	srv.writeLine(":3 12 4711 22 6Hgazonk\n")

	select {
	case v := <-recv:
		rec, ok := v.(schema.Record)
		if !ok {
			t.Fatalf("async value is %T, want schema.Record", v)
		}
		msg, _ := rec.Get("message")
		if string(msg.(schema.Bytes)) != "gazonk" {
			t.Errorf("message = %q, want gazonk", msg)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the known async message after an unknown one")
	}
	if cl.State() != Open {
		t.Errorf("State() = %v, want Open (unknown async message must not close the session)", cl.State())
	}
}

func TestCloseFailsPendingCalls(t *testing.T) {
	cl, srv := dialFake(t)
	_ = srv

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		_, err := cl.Call(ctx, "logout", schema.Record{})
		errCh <- err
	}()

	// Give the call time to register before closing.
	time.Sleep(20 * time.Millisecond)
	if err := cl.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case err := <-errCh:
		if err == nil {
			t.Fatal("expected an error after Close")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for pending call to fail")
	}

	if cl.State() != Closed {
		t.Errorf("State() = %v, want Closed", cl.State())
	}
}
