// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catalog

import "github.com/lyskom-go/lyskom/schema"

// RPC describes one client-initiated call: its wire number, its name for
// logging, the schema of the parameters the client sends, and the schema of
// the result the server replies with on success.
type RPC struct {
	Number  int
	Name    string
	Request schema.Schema
	Reply   schema.Schema
}

// RPCs is the call catalogue, indexed by wire number. It is not exhaustive;
// it covers session control, the login family, and enough of the
// conference/person/text surface to exercise every schema shape.
var RPCs = map[int]RPC{
	1: {
		Number:  1,
		Name:    "logout",
		Request: schema.Empty{},
		Reply:   schema.Empty{},
	},
	62: {
		Number: 62,
		Name:   "login",
		Request: schema.Structure{Fields: []schema.StructField{
			{Name: "person", Schema: schema.Int32{}},
			{Name: "passwd", Schema: schema.HollerithString{}},
			{Name: "invisible", Schema: schema.Bool{}},
		}},
		Reply: schema.Empty{},
	},
	80: {
		Number: 80,
		Name:   "acceptAsync",
		Request: schema.Structure{Fields: []schema.StructField{
			{Name: "requestList", Schema: schema.Array{Elem: schema.Int32{}}},
		}},
		Reply: schema.Empty{},
	},
	81: {
		Number:  81,
		Name:    "queryAsync",
		Request: schema.Empty{},
		Reply: schema.Structure{Fields: []schema.StructField{
			{Name: "acceptedAsync", Schema: schema.Array{Elem: schema.Int32{}}},
		}},
	},
	89: {
		Number: 89,
		Name:   "createPerson",
		Request: schema.Structure{Fields: []schema.StructField{
			{Name: "name", Schema: schema.HollerithString{}},
			{Name: "passwd", Schema: schema.HollerithString{}},
			{Name: "flags", Schema: PersonalFlags},
			{Name: "auxItems", Schema: AuxItemList},
		}},
		Reply: schema.Structure{Fields: []schema.StructField{
			{Name: "personNo", Schema: schema.Int32{}},
		}},
	},
	49: {
		Number: 49,
		Name:   "lookupZName",
		Request: schema.Structure{Fields: []schema.StructField{
			{Name: "name", Schema: schema.HollerithString{}},
			{Name: "wantPersons", Schema: schema.Bool{}},
			{Name: "wantConfs", Schema: schema.Bool{}},
		}},
		Reply: schema.Structure{Fields: []schema.StructField{
			{Name: "matches", Schema: ConfZInfoList},
		}},
	},
	53: {
		Number: 53,
		Name:   "sendMessage",
		Request: schema.Structure{Fields: []schema.StructField{
			{Name: "recipient", Schema: schema.Int32{}},
			{Name: "message", Schema: schema.HollerithString{}},
		}},
		Reply: schema.Empty{},
	},
	86: {
		Number: 86,
		Name:   "createText",
		Request: schema.Structure{Fields: []schema.StructField{
			{Name: "text", Schema: schema.HollerithString{}},
			{Name: "miscInfo", Schema: MiscInfoList},
			{Name: "auxItems", Schema: AuxItemList},
		}},
		Reply: schema.Structure{Fields: []schema.StructField{
			{Name: "textNo", Schema: schema.Int32{}},
		}},
	},
}

// Lookup returns the RPC descriptor for a wire number, or false if the
// catalogue has no entry for it.
func Lookup(number int) (RPC, bool) {
	rpc, ok := RPCs[number]
	return rpc, ok
}

// ByName returns the RPC descriptor with the given name, or false if none
// matches. It scans the table linearly on every lookup; the session's Call
// method looks up its RPC this way once per call.
func ByName(name string) (RPC, bool) {
	for _, rpc := range RPCs {
		if rpc.Name == name {
			return rpc, true
		}
	}
	return RPC{}, false
}
