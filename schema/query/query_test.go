package query_test

import (
	"testing"

	"github.com/lyskom-go/lyskom/schema"
	"github.com/lyskom-go/lyskom/schema/query"
)

func testValue() schema.Value {
	return schema.NewRecord(
		"confNo", schema.Int64(17),
		"name", schema.Str("Testarea"),
		"members", schema.Seq{Len: 2, Elems: []schema.Value{
			schema.Int64(4711), schema.Int64(4712),
		}},
		"lengthOnly", schema.Seq{Len: 3},
	)
}

func TestConst(t *testing.T) {
	tests := []struct {
		name  string
		query query.Query
		want  schema.Value
	}{
		{"String", query.String("foo"), schema.Str("foo")},
		{"Integer", query.Integer(17), schema.Int64(17)},
		{"True", query.Bool(true), schema.Boolean(true)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := query.Eval(testValue(), tc.query)
			if err != nil {
				t.Fatalf("Eval: %v", err)
			}
			if got != tc.want {
				t.Errorf("result = %#v, want %#v", got, tc.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	got, err := query.Eval(testValue(), query.Path("members", 1))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != schema.Int64(4712) {
		t.Errorf("result = %v, want 4712", got)
	}
}

func TestPathNegativeIndex(t *testing.T) {
	got, err := query.Eval(testValue(), query.Path("members", -1))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != schema.Int64(4712) {
		t.Errorf("result = %v, want 4712", got)
	}
}

func TestLengthOnlyArrayFails(t *testing.T) {
	if _, err := query.Eval(testValue(), query.Path("lengthOnly", 0)); err == nil {
		t.Fatal("expected an error indexing a length-only array")
	}
}

func TestLen(t *testing.T) {
	got, err := query.Eval(testValue(), query.Seq{query.Path("members"), query.Len()})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != schema.Int64(2) {
		t.Errorf("Len = %v, want 2", got)
	}
}

func TestEach(t *testing.T) {
	got, err := query.Eval(testValue(), query.Seq{
		query.Path("members"),
		query.Each(query.Path()),
	})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	seq, ok := got.(schema.Seq)
	if !ok || len(seq.Elems) != 2 {
		t.Fatalf("result = %#v, want a 2-element array", got)
	}
}

func TestAlt(t *testing.T) {
	got, err := query.Eval(testValue(), query.Alt{
		query.Path("nonesuch"),
		query.Path("name"),
	})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if got != schema.Str("Testarea") {
		t.Errorf("result = %v, want Testarea", got)
	}
}

func TestRecordConstructor(t *testing.T) {
	got, err := query.Eval(testValue(), query.Record{
		"id":   query.Path("confNo"),
		"name": query.Path("name"),
	})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	rec, ok := got.(schema.Record)
	if !ok {
		t.Fatalf("result = %T, want schema.Record", got)
	}
	if v, ok := rec.Get("id"); !ok || v != schema.Int64(17) {
		t.Errorf("id = %v, want 17", v)
	}
}

func TestArrayConstructor(t *testing.T) {
	got, err := query.Eval(testValue(), query.Array{
		query.Path("confNo"),
		query.Path("name"),
	})
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	seq, ok := got.(schema.Seq)
	if !ok || len(seq.Elems) != 2 {
		t.Fatalf("result = %#v, want a 2-element array", got)
	}
}
