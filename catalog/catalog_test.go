// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catalog_test

import (
	"testing"

	"github.com/lyskom-go/lyskom/catalog"
)

func TestErrorNames(t *testing.T) {
	if got, want := catalog.Name(4), "invalid-password"; got != want {
		t.Errorf("Name(4) = %q, want %q", got, want)
	}
	if got, want := catalog.Name(0), "no-error"; got != want {
		t.Errorf("Name(0) = %q, want %q", got, want)
	}
	if got := catalog.Name(9999); got != "" {
		t.Errorf("Name(9999) = %q, want empty", got)
	}
}

func TestRPCLookup(t *testing.T) {
	for _, tc := range []struct {
		number int
		name   string
	}{
		{1, "logout"},
		{62, "login"},
		{80, "acceptAsync"},
		{89, "createPerson"},
	} {
		rpc, ok := catalog.Lookup(tc.number)
		if !ok {
			t.Fatalf("Lookup(%d): not found", tc.number)
		}
		if rpc.Name != tc.name {
			t.Errorf("Lookup(%d).Name = %q, want %q", tc.number, rpc.Name, tc.name)
		}
		byName, ok := catalog.ByName(tc.name)
		if !ok || byName.Number != tc.number {
			t.Errorf("ByName(%q) = %+v, ok=%v, want Number=%d", tc.name, byName, ok, tc.number)
		}
	}
}

func TestAsyncLookup(t *testing.T) {
	a, ok := catalog.LookupAsync(12)
	if !ok || a.Name != "send-message" {
		t.Fatalf("LookupAsync(12) = %+v, ok=%v, want send-message", a, ok)
	}
}
