package parsers

import (
	ejson "encoding/json"

	jsoniter "github.com/json-iterator/go"
)

// json is this package's JSON codec: jsoniter configured to match
// encoding/json's semantics exactly (map key ordering on encode, matching
// error types), but several times faster on the hot decode path — every
// JSON-based format parser here decodes payloads that can run into the
// hundreds of megabytes.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// RawMessage re-exports encoding/json's type so format structs can defer
// decoding of a sub-object without pulling in two different RawMessage
// types.
type RawMessage = ejson.RawMessage
