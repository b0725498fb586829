// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package schema implements the declarative type schemas that describe how
// to parse and format one protocol element of LysKOM Protocol A: scalars,
// Hollerith strings, bit-strings, fixed structures, and homogeneous arrays.
// Schemas compose recursively by value, not by inheritance; see [Schema].
package schema

import "fmt"

// Kind identifies which variant of the schema sum type a [Schema] or
// [Value] is.
type Kind byte

const (
	EmptyKind Kind = iota
	Int32Kind
	BoolKind
	HollerithStringKind
	BitstringKind
	StructureKind
	ArrayKind
)

func (k Kind) String() string {
	switch k {
	case EmptyKind:
		return "empty"
	case Int32Kind:
		return "int32"
	case BoolKind:
		return "bool"
	case HollerithStringKind:
		return "string"
	case BitstringKind:
		return "bitstring"
	case StructureKind:
		return "structure"
	case ArrayKind:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
}

// A Schema describes how to parse and format one protocol element. Its
// concrete type is one of [Empty], [Int32], [Bool], [HollerithString],
// [Bitstring], [Structure], or [Array].
type Schema interface {
	// Kind reports which schema variant this is.
	Kind() Kind

	// NewParser returns a fresh, stateful parser for one value of this
	// schema. A new parser must be constructed for every message; parsers
	// are not reusable once they have started consuming tokens.
	NewParser() Parser

	// Format writes the wire encoding of v to w, or returns a [ClientError]
	// if v does not match the shape this schema describes.
	Format(w *Writer, v Value) error
}

// A Value is the parsed result of one schema. Its concrete type is one of
// [Int64], [Boolean], [Str], [Bytes], [Bits], [Record], or [Seq].
type Value interface {
	Kind() Kind
}

// Int64 is the parsed or to-be-formatted value of an [Int32] schema.
type Int64 int64

// Kind implements [Value].
func (Int64) Kind() Kind { return Int32Kind }

// Boolean is the parsed or to-be-formatted value of a [Bool] schema.
type Boolean bool

// Kind implements [Value].
func (Boolean) Kind() Kind { return BoolKind }

// Bytes is the parsed value of a [HollerithString] schema: the raw,
// undecoded payload bytes of a Hollerith string, as received on the wire.
type Bytes []byte

// Kind implements [Value].
func (Bytes) Kind() Kind { return HollerithStringKind }

// Str is a convenience [Value] for formatting a [HollerithString] field
// from a Go string. It is Latin-1 encoded at format time; [Bytes] is used
// instead when the caller already has raw, pre-encoded payload bytes (for
// example, a value round-tripped from a previous parse).
type Str string

// Kind implements [Value].
func (Str) Kind() Kind { return HollerithStringKind }

// Bits is the parsed or to-be-formatted value of a [Bitstring] schema.
type Bits struct {
	// Names lists the flag names in wire position order, as declared by the
	// schema that produced or will format this value.
	Names []string
	// Set records which named flags are true. A missing entry is false.
	Set map[string]bool
}

// Kind implements [Value].
func (Bits) Kind() Kind { return BitstringKind }

// Get reports whether the named flag is set. It returns false for any name
// not declared by the originating schema.
func (b Bits) Get(name string) bool { return b.Set[name] }

// Field is one named member of a [Record].
type Field struct {
	Name  string
	Value Value
}

// Record is the parsed or to-be-formatted value of a [Structure] schema.
type Record struct {
	Fields []Field
}

// Kind implements [Value].
func (Record) Kind() Kind { return StructureKind }

// Get returns the named field's value, or false if no such field exists.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// NewRecord builds a Record from an ordered list of (name, value) pairs. It
// panics if args has an odd length or a non-string key, the same contract
// [fmt.Sprintf]-style helpers use; callers construct Records at a handful of
// call sites, so this trades a little safety for a lot less boilerplate.
func NewRecord(args ...any) Record {
	if len(args)%2 != 0 {
		panic("schema.NewRecord: odd number of arguments")
	}
	fields := make([]Field, 0, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		name, ok := args[i].(string)
		if !ok {
			panic("schema.NewRecord: key is not a string")
		}
		val, ok := args[i+1].(Value)
		if !ok {
			panic("schema.NewRecord: value does not implement schema.Value")
		}
		fields = append(fields, Field{Name: name, Value: val})
	}
	return Record{Fields: fields}
}

// Seq is the parsed or to-be-formatted value of an [Array] schema. Elems is
// nil if the array was received in "length only" form (a bare length
// followed by "*"); Len still reports the declared length in that case.
type Seq struct {
	Len   int
	Elems []Value
}

// Kind implements [Value].
func (Seq) Kind() Kind { return ArrayKind }
