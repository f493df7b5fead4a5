// Package protoargs flattens protobuf-encoded messages into a flat list of
// (path, value) arguments, driven only by a descriptor pool read at
// runtime. No generated Go types are needed.
//
// A Parser walks the wire bytes of one message, looks each field tag up in
// the pool and reports every scalar leaf to a Delegate under two keys: the
// indexed key ("children[1].value") and the flat key ("children.value").
// Nested messages recurse; repeated fields get a per-tag index; enums are
// reported by name when the value is known and as an integer otherwise.
//
// # Overrides
//
// Parser.AddParsingOverride takes over handling of one flat key. An override
// runs instead of the default handling, including for message fields, and
// may report any values it likes. It receives the Key of the occurrence it
// handles, so repeated and packed elements keep their indices.
//
// # Flattener
//
// Parser is not safe for concurrent use. Flattener wraps a descriptor pool
// and Config, hands each call its own parser, and adds structured logging,
// Prometheus metrics, OpenTelemetry spans and ULID arg set IDs. Its
// ArgsHandler plugs the flattener into a Watermill router: payloads whose
// protobuf type name travels in the MetadataKeyTypeName header come out as
// JSON encoded ArgSet messages.
//
// # Delegates
//
// Recorder collects arguments in order, JSON builds a document keyed by the
// indexed key, Logging traces each value, Multi fans out and Counting feeds
// a metrics observer.
package protoargs
