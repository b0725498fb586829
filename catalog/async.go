// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catalog

import "github.com/lyskom-go/lyskom/schema"

// Async describes one asynchronous message kind: its wire number, its name
// for logging, and the schema of its parameters. A server only ever sends
// an Async message the client has opted into via acceptAsync.
type Async struct {
	Number int
	Name   string
	Schema schema.Schema
}

// Asyncs is the asynchronous-message catalogue, indexed by wire number.
var Asyncs = map[int]Async{
	12: {
		Number: 12,
		Name:   "send-message",
		Schema: schema.Structure{Fields: []schema.StructField{
			{Name: "recipient", Schema: schema.Int32{}},
			{Name: "sender", Schema: schema.Int32{}},
			{Name: "message", Schema: schema.HollerithString{}},
		}},
	},
	13: {
		Number: 13,
		Name:   "logout",
		Schema: schema.Structure{Fields: []schema.StructField{
			{Name: "person", Schema: schema.Int32{}},
			{Name: "session", Schema: schema.Int32{}},
		}},
	},
	14: {
		Number: 14,
		Name:   "login",
		Schema: schema.Structure{Fields: []schema.StructField{
			{Name: "person", Schema: schema.Int32{}},
			{Name: "session", Schema: schema.Int32{}},
		}},
	},
	0: {
		Number: 0,
		Name:   "new-name",
		Schema: schema.Structure{Fields: []schema.StructField{
			{Name: "confNo", Schema: schema.Int32{}},
			{Name: "oldName", Schema: schema.HollerithString{}},
			{Name: "newName", Schema: schema.HollerithString{}},
		}},
	},
}

// LookupAsync returns the Async descriptor for a wire number, or false if
// the catalogue has no entry for it. An unrecognized number is not itself
// fatal to a session: see the dispatcher's forward-compatible handling of
// unknown async messages.
func LookupAsync(number int) (Async, bool) {
	a, ok := Asyncs[number]
	return a, ok
}
