// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package catalog is data, not code: the table of RPCs, asynchronous
// message kinds, wire error codes, and aux-item tags defined by LysKOM
// Protocol A. None of it is exhaustive — LysKOM has grown calls for three
// decades — but it covers enough of the surface to drive real sessions and
// to exercise every shape the schema package supports.
package catalog

// ErrorName maps a Protocol A error code to its symbolic name. 0 means no
// error; a code absent from this map still round-trips through a
// lyskom.RequestError, it just has no friendlier name than the number itself.
var ErrorName = map[int]string{
	0:  "no-error",
	2:  "not-implemented",
	3:  "obsolete-call",
	4:  "invalid-password",
	5:  "string-too-long",
	6:  "login-first",
	7:  "login-disallowed",
	8:  "conference-zero",
	9:  "undefined-conference",
	10: "undefined-person",
	11: "access-denied",
	12: "permission-denied",
	13: "not-member",
	14: "no-such-text",
	15: "text-zero",
	16: "no-such-local-text",
	17: "local-text-zero",
	18: "bad-name",
	19: "index-out-of-range",
	20: "conference-exists",
	21: "person-exists",
	22: "secret-public",
	23: "letterbox",
	24: "ldb-error",
	25: "illegal-misc",
	26: "illegal-info-type",
	27: "already-recipient",
	28: "already-comment",
	29: "already-footnote",
	30: "recipient-limit",
	31: "comment-limit",
	32: "footnote-limit",
	33: "mark-limit",
	34: "not-recipient",
	35: "not-comment",
	36: "not-footnote",
	37: "not-author",
	38: "no-connect",
	39: "out-of-memory",
	40: "server-is-crazy",
	41: "client-is-crazy",
	42: "undefined-session",
	43: "regexp-error",
	44: "not-marked",
	45: "temporary-failure",
	46: "long-array",
	47: "anonymous-rejected",
	48: "illegal-aux-item",
	49: "aux-item-permission",
	50: "unknown-async",
	51: "internal-error",
	52: "feature-disabled",
	53: "message-not-sent",
	54: "invalid-membership-type",
	55: "invalid-range",
	56: "invalid-range-list",
	57: "undefined-measurement",
	58: "priority-denied",
	59: "weight-denied",
	60: "weight-zero",
	61: "bad-bool",
}

// Name returns the symbolic name for an error code, or "" if the catalogue
// has nothing registered for it.
func Name(code int) string { return ErrorName[code] }
