// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package token_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/lyskom-go/lyskom/token"
)

func feedAll(t *testing.T, tok *token.Tokenizer, chunks []string) []token.Event {
	t.Helper()
	var all []token.Event
	for _, c := range chunks {
		evs, err := tok.Feed([]byte(c))
		if err != nil {
			t.Fatalf("Feed(%q): unexpected error: %v", c, err)
		}
		all = append(all, evs...)
	}
	evs, err := tok.End()
	if err != nil {
		t.Fatalf("End: unexpected error: %v", err)
	}
	return append(all, evs...)
}

func kinds(evs []token.Event) []token.EventKind {
	var ks []token.EventKind
	for _, e := range evs {
		ks = append(ks, e.Kind)
	}
	return ks
}

func TestTokenizerBasic(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"empty", "", nil},
		{"punct", "{ } * = % :", []token.Kind{
			token.OpenBrace, token.CloseBrace, token.Star, token.Equals, token.Percent, token.Colon,
		}},
		{"ints", "0 17 4711", []token.Kind{token.Int, token.Int, token.Int}},
		{"string", "3Hfoo", []token.Kind{token.String}},
		{"mixed", "10 62 4711 7Hsecret1 1", []token.Kind{
			token.Int, token.Int, token.Int, token.String, token.Int,
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			tok := token.New(false)
			evs := feedAll(t, tok, []string{test.input})
			var got []token.Kind
			for _, e := range evs {
				if e.Kind == token.EventToken {
					got = append(got, e.Token.Kind)
				}
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTokenizerFloat(t *testing.T) {
	tok := token.New(false)
	evs := feedAll(t, tok, []string{"3.5 "})
	var got float64
	for _, e := range evs {
		if e.Kind == token.EventToken && e.Token.Kind == token.Float {
			got = e.Token.Float
		}
	}
	if got != 3.5 {
		t.Errorf("float = %v, want 3.5", got)
	}
}

func TestTokenizerHandshake(t *testing.T) {
	tok := token.New(true)
	evs := feedAll(t, tok, []string{"Lys", "KOM\n10 "})
	if len(evs) < 2 {
		t.Fatalf("too few events: %+v", evs)
	}
	if evs[0].Kind != token.EventHandshake {
		t.Errorf("first event = %v, want EventHandshake", evs[0].Kind)
	}
	if evs[1].Kind != token.EventToken || evs[1].Token.Kind != token.Int || evs[1].Token.Int != 10 {
		t.Errorf("second event = %+v, want Int(10)", evs[1])
	}
}

func TestTokenizerBadHandshake(t *testing.T) {
	tok := token.New(true)
	_, err := tok.Feed([]byte("Nope\n"))
	if err == nil {
		t.Fatal("expected a protocol error for a bad handshake preface")
	}
}

func TestTokenizerServerError(t *testing.T) {
	tok := token.New(false)
	evs := feedAll(t, tok, []string{"%%out of cheese\n10 "})
	if len(evs) != 3 {
		t.Fatalf("got %d events, want 3: %+v", len(evs), evs)
	}
	if evs[0].Kind != token.EventServerError || evs[0].Text != "out of cheese" {
		t.Errorf("event[0] = %+v, want ServerError(out of cheese)", evs[0])
	}
}

func TestTokenizerArrayLiteral(t *testing.T) {
	tok := token.New(false)
	evs := feedAll(t, tok, []string{"12 80 3 { 12 8 4 }"})
	got := kinds(evs)
	want := []token.EventKind{
		token.EventToken, token.EventToken, token.EventToken, token.EventToken,
		token.EventToken, token.EventToken, token.EventToken, token.EventToken,
		token.EventEnd,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
}

// TestTokenizerChunkInvariant checks that for any chunking of a
// well-formed input, the token sequence produced is identical to
// tokenizing the whole thing in one piece.
func TestTokenizerChunkInvariant(t *testing.T) {
	const input = `11 62 4711 7Hs3cr3t1 1`

	oneShot := token.New(false)
	want, err := oneShot.Feed([]byte(input))
	if err != nil {
		t.Fatalf("one-shot feed: %v", err)
	}
	endEv, err := oneShot.End()
	if err != nil {
		t.Fatalf("one-shot end: %v", err)
	}
	want = append(want, endEv...)

	for split := 0; split <= len(input); split++ {
		tok := token.New(false)
		got := feedAll(t, tok, []string{input[:split], input[split:]})
		if len(got) != len(want) {
			t.Fatalf("split at %d: got %d events, want %d", split, len(got), len(want))
		}
		for i := range want {
			if got[i].Kind != want[i].Kind {
				t.Fatalf("split at %d, event %d: kind = %v, want %v", split, i, got[i].Kind, want[i].Kind)
			}
			if got[i].Kind == token.EventToken {
				if got[i].Token.Kind != want[i].Token.Kind {
					t.Fatalf("split at %d, event %d: token kind = %v, want %v", split, i, got[i].Token.Kind, want[i].Token.Kind)
				}
				if got[i].Token.Kind == token.Int && got[i].Token.Int != want[i].Token.Int {
					t.Fatalf("split at %d, event %d: int = %v, want %v", split, i, got[i].Token.Int, want[i].Token.Int)
				}
				if got[i].Token.Kind == token.String && string(got[i].Token.Str) != string(want[i].Token.Str) {
					t.Fatalf("split at %d, event %d: string = %q, want %q", split, i, got[i].Token.Str, want[i].Token.Str)
				}
			}
		}
	}
}

func TestTokenizerHollerithAcrossChunks(t *testing.T) {
	tok := token.New(false)
	evs := feedAll(t, tok, []string{"6Hgaz", "onk "})
	var got string
	for _, e := range evs {
		if e.Kind == token.EventToken && e.Token.Kind == token.String {
			got = string(e.Token.Str)
		}
	}
	if got != "gazonk" {
		t.Errorf("string = %q, want %q", got, "gazonk")
	}
}

func TestTokenizerUnterminatedIsFatal(t *testing.T) {
	tok := token.New(false)
	if _, err := tok.Feed([]byte("4711}")); err == nil {
		t.Fatal("expected a protocol error for an unterminated integer")
	}
}
