// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catalog

import "github.com/lyskom-go/lyskom/schema"

// PersonalFlags is the bit-string schema for a Person's flag set. Only the
// first position is named here; the remaining seven are reserved.
var PersonalFlags = schema.Bitstring{
	Names: []string{"unreadIsSecret"},
	Width: 8,
}

// AuxItemFlags is the bit-string schema attached to every AuxItem.
var AuxItemFlags = schema.Bitstring{
	Names: []string{"deleted", "inherit", "secret", "hideCreator", "dontGarb"},
	Width: 8,
}

// ConfType is the bit-string schema describing what kind of conference a
// ConfZInfo names.
var ConfType = schema.Bitstring{
	Names: []string{"rdProt", "originalLetter", "secret", "letterBox"},
	Width: 4,
}

// AuxItem is the schema of one element of an aux-item array, attached to
// conferences, persons, and texts to carry extensible metadata without a
// protocol version bump.
var AuxItem = schema.Structure{Fields: []schema.StructField{
	{Name: "tag", Schema: schema.Int32{}},
	{Name: "flags", Schema: AuxItemFlags},
	{Name: "inheritLimit", Schema: schema.Int32{}},
	{Name: "data", Schema: schema.HollerithString{}},
}}

// AuxItemList is the schema of an aux-item array, as carried by
// createPerson, createConf, and the various set-*-aux-items calls.
var AuxItemList = schema.Array{Elem: AuxItem}

// ConfZInfo is a compact conference summary, as returned by lookupZName.
var ConfZInfo = schema.Structure{Fields: []schema.StructField{
	{Name: "name", Schema: schema.HollerithString{}},
	{Name: "type", Schema: ConfType},
	{Name: "confNo", Schema: schema.Int32{}},
}}

// ConfZInfoList is the schema of an array of ConfZInfo, as returned by
// lookupZName.
var ConfZInfoList = schema.Array{Elem: ConfZInfo}

// MiscInfo is one routing annotation attached to a text: a recipient, a
// comment-to, a footnote-of, and so on. Kind is left as a bare integer
// rather than an enum of named constants, since MiscInfo's tag space is
// one of the few parts of the catalogue genuinely still growing upstream.
var MiscInfo = schema.Structure{Fields: []schema.StructField{
	{Name: "kind", Schema: schema.Int32{}},
	{Name: "data", Schema: schema.Int32{}},
}}

// MiscInfoList is the schema of an array of MiscInfo, as carried by
// createText.
var MiscInfoList = schema.Array{Elem: MiscInfo}
