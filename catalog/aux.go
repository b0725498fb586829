// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package catalog

// Aux-item tag constants. An aux item's tag selects its meaning; the
// payload format for a given tag is a convention between client and
// server, not something Protocol A itself constrains.
const (
	AuxContentType     = 1
	AuxFastReply       = 2
	AuxCrossReference  = 3
	AuxNoComments      = 4
	AuxPersonalComment = 5
	AuxRequestConfirm  = 6
	AuxReadConfirm     = 7
	AuxRedirect        = 8
	AuxXFace           = 9
	AuxAltName         = 10
	AuxMXAuthor        = 11
	AuxMXFrom          = 12
	AuxMXReplyTo       = 13
)

// AuxItemTagName maps a tag constant to a human-readable name, mainly for
// logging.
var AuxItemTagName = map[int]string{
	AuxContentType:     "content-type",
	AuxFastReply:       "fast-reply",
	AuxCrossReference:  "cross-reference",
	AuxNoComments:      "no-comments",
	AuxPersonalComment: "personal-comment",
	AuxRequestConfirm:  "request-confirm",
	AuxReadConfirm:     "read-confirm",
	AuxRedirect:        "redirect",
	AuxXFace:           "x-face",
	AuxAltName:         "alt-name",
	AuxMXAuthor:        "mx-author",
	AuxMXFrom:          "mx-from",
	AuxMXReplyTo:       "mx-reply-to",
}
