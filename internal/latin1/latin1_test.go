// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package latin1_test

import (
	"testing"

	"github.com/lyskom-go/lyskom/internal/latin1"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		s    string
		want []byte
	}{
		{"", nil},
		{"gazonk", []byte("gazonk")},
		{"hämligt", []byte{'h', 0xE4, 'm', 'l', 'i', 'g', 't'}},
	}
	for _, test := range tests {
		got, err := latin1.Encode(test.s)
		if err != nil {
			t.Fatalf("Encode(%q): %v", test.s, err)
		}
		if string(got) != string(test.want) {
			t.Errorf("Encode(%q) = %v, want %v", test.s, got, test.want)
		}
		back := latin1.Decode(got)
		if back != test.s {
			t.Errorf("Decode(Encode(%q)) = %q", test.s, back)
		}
	}
}

func TestEncodeRejectsNonLatin1(t *testing.T) {
	if _, err := latin1.Encode("héllo €"); err == nil {
		t.Fatal("expected an error for a Euro sign, which is outside Latin-1")
	}
}
