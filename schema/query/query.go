// Package query implements structural queries over parsed [schema.Value]
// trees.
//
// A query describes a syntactic substructure of a parsed Protocol A value,
// such as a record field, array element, or a path through the tree.
// Evaluating a query against a concrete value traverses the structure the
// query describes and returns the resulting value.
//
// The simplest query is for a "path", a sequence of field names and/or
// array indices that describes a path from the root of a value. For
// example, given a parsed ConfZInfoList reply, the query
//
//	query.Path(1, "name")
//
// yields the name field of the second element.
package query

import (
	"errors"
	"fmt"

	"github.com/lyskom-go/lyskom/schema"
)

// Eval evaluates the given query beginning from root, returning the
// resulting value or an error.
func Eval(root schema.Value, q Query) (schema.Value, error) {
	return q.eval(root)
}

// A Query describes a traversal of a schema.Value.
type Query interface {
	eval(schema.Value) (schema.Value, error)
}

// Path traverses a sequence of nested field names or array indices from the
// root. If no keys are specified, the root is returned. Each key must be
// either a string or an int, or Path will panic.
func Path(keys ...any) Query {
	pq := make(Seq, len(keys))
	for i, key := range keys {
		switch t := key.(type) {
		case string:
			pq[i] = fieldKey(t)
		case int:
			pq[i] = nthQuery(t)
		default:
			panic("invalid key")
		}
	}
	return pq
}

type fieldKey string

func (f fieldKey) eval(v schema.Value) (schema.Value, error) {
	rec, ok := v.(schema.Record)
	if !ok {
		return nil, fmt.Errorf("got %T, want record", v)
	}
	val, ok := rec.Get(string(f))
	if !ok {
		return nil, fmt.Errorf("field %q not found", f)
	}
	return val, nil
}

type nthQuery int

func (nq nthQuery) eval(v schema.Value) (schema.Value, error) {
	seq, ok := v.(schema.Seq)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	if seq.Elems == nil {
		return nil, errors.New("array has no elements (length-only form)")
	}
	idx := int(nq)
	if idx < 0 {
		idx += len(seq.Elems)
	}
	if idx < 0 || idx >= len(seq.Elems) {
		return nil, fmt.Errorf("index %d out of range (0..%d)", nq, len(seq.Elems))
	}
	return seq.Elems[idx], nil
}

// Slice selects a slice of an array from offsets lo to hi. The range
// includes lo but excludes hi. Negative offsets select from the end of the
// array. If hi == 0, the length of the array is used.
func Slice(lo, hi int) Query { return sliceQuery{lo, hi} }

type sliceQuery struct{ lo, hi int }

func (q sliceQuery) eval(v schema.Value) (schema.Value, error) {
	seq, ok := v.(schema.Seq)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	if seq.Elems == nil {
		return nil, errors.New("array has no elements (length-only form)")
	}
	n := len(seq.Elems)
	lox := q.lo
	if lox < 0 {
		lox += n
	}
	hix := q.hi
	if hix <= 0 {
		hix += n
	}
	if lox < 0 || lox >= n {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.lo, n)
	} else if hix < 0 || hix > n {
		return nil, fmt.Errorf("index %d out of range (0..%d)", q.hi, n)
	} else if lox > hix {
		return nil, fmt.Errorf("index start %d > end %d", q.lo, q.hi)
	}
	return schema.Seq{Len: hix - lox, Elems: seq.Elems[lox:hix]}, nil
}

// Len returns an integer representing the length of the root: the number of
// fields of a Record, the number of elements of a Seq, or the byte length of
// a Bytes or Str.
func Len() Query { return lenQuery{} }

type lenQuery struct{}

func (lenQuery) eval(v schema.Value) (schema.Value, error) {
	switch t := v.(type) {
	case schema.Record:
		return schema.Int64(len(t.Fields)), nil
	case schema.Seq:
		return schema.Int64(t.Len), nil
	case schema.Bytes:
		return schema.Int64(len(t)), nil
	case schema.Str:
		return schema.Int64(len(t)), nil
	default:
		return nil, fmt.Errorf("cannot take length of %T", v)
	}
}

// Seq is a sequential composition of queries. An empty Seq selects the
// root; otherwise, each query is applied to the result selected by the
// previous query in the sequence.
type Seq []Query

func (q Seq) eval(v schema.Value) (schema.Value, error) {
	cur := v
	for _, sq := range q {
		next, err := sq.eval(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Alt is a query that selects among a sequence of alternatives. The result
// of the first alternative that does not report an error is returned. If
// there are no alternatives, the query fails on all inputs.
type Alt []Query

func (q Alt) eval(v schema.Value) (schema.Value, error) {
	for _, alt := range q {
		if w, err := alt.eval(v); err == nil {
			return w, nil
		}
	}
	return nil, errors.New("no matching alternatives")
}

// Each applies a query to each element of an array and returns an array of
// the resulting values (in full, non-length-only form). It fails if the
// input is not an array with elements.
func Each(q Query) Query { return eachQuery{q} }

type eachQuery struct{ Query }

func (q eachQuery) eval(v schema.Value) (schema.Value, error) {
	seq, ok := v.(schema.Seq)
	if !ok {
		return nil, fmt.Errorf("got %T, want array", v)
	}
	if seq.Elems == nil {
		return nil, errors.New("array has no elements (length-only form)")
	}
	out := make([]schema.Value, len(seq.Elems))
	for i, elt := range seq.Elems {
		w, err := q.Query.eval(elt)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = w
	}
	return schema.Seq{Len: len(out), Elems: out}, nil
}

// Record constructs a record with the given field names mapped to the
// results of matching the query values against its input.
type Record map[string]Query

func (r Record) eval(v schema.Value) (schema.Value, error) {
	var out schema.Record
	for name, q := range r {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("match %q: %w", name, err)
		}
		out.Fields = append(out.Fields, schema.Field{Name: name, Value: val})
	}
	return out, nil
}

// Array constructs an array with the values produced by matching the given
// queries against its input.
type Array []Query

func (a Array) eval(v schema.Value) (schema.Value, error) {
	out := make([]schema.Value, len(a))
	for i, q := range a {
		val, err := q.eval(v)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		out[i] = val
	}
	return schema.Seq{Len: len(out), Elems: out}, nil
}

// A String query ignores its input and returns the given string.
func String(s string) Query { return constQuery{schema.Str(s)} }

// An Integer query ignores its input and returns the given integer.
func Integer(z int64) Query { return constQuery{schema.Int64(z)} }

// A Bool query ignores its input and returns the given bool.
func Bool(b bool) Query { return constQuery{schema.Boolean(b)} }

type constQuery struct{ schema.Value }

func (c constQuery) eval(_ schema.Value) (schema.Value, error) { return c.Value, nil }
