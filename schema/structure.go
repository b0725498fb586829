// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package schema

// StructField is one named member of a [Structure] schema.
type StructField struct {
	Name   string
	Schema Schema
}

// Structure describes a fixed, ordered sequence of named fields, each of
// which may itself be any schema, including another Structure or an
// [Array]. There is no structural delimiter on the wire for a Structure: its
// fields are simply written, and read back, one after another.
type Structure struct {
	Fields []StructField
}

// Kind implements [Schema].
func (Structure) Kind() Kind { return StructureKind }

// NewParser implements [Schema].
func (s Structure) NewParser() Parser {
	return &structureParser{schema: s}
}

// Format implements [Schema].
func (s Structure) Format(w *Writer, v Value) error {
	rec, ok := v.(Record)
	if !ok {
		return clientErrf("", "want schema.Record, got %T", v)
	}
	for _, f := range s.Fields {
		val, ok := rec.Get(f.Name)
		if !ok {
			return clientErrf(f.Name, "missing required field")
		}
		if err := f.Schema.Format(w, val); err != nil {
			if ce, ok := err.(*ClientError); ok && ce.Path == "" {
				ce.Path = f.Name
				return ce
			}
			return err
		}
	}
	return nil
}

// structureParser parses the fields of a Structure one at a time,
// remembering which field is in progress across suspensions so a partially
// consumed sub-value is never lost when the token queue runs dry.
type structureParser struct {
	schema Structure
	idx    int
	sub    Parser
	fields []Field
}

func (p *structureParser) Feed(q *Queue) (Value, bool, error) {
	for p.idx < len(p.schema.Fields) {
		f := p.schema.Fields[p.idx]
		if p.sub == nil {
			p.sub = f.Schema.NewParser()
		}
		val, done, err := p.sub.Feed(q)
		if err != nil {
			return nil, false, err
		}
		if !done {
			return nil, false, nil
		}
		p.fields = append(p.fields, Field{Name: f.Name, Value: val})
		p.sub = nil
		p.idx++
	}
	return Record{Fields: p.fields}, true, nil
}
