package handlers

// Metadata keys read and written by the args handler.
const (
	// MetadataKeyTypeName names the fully-qualified protobuf type of the
	// payload. Required on incoming messages.
	MetadataKeyTypeName = "protoargs_type_name"

	// MetadataKeyArgSetID is set on outgoing messages to the arg set ID.
	MetadataKeyArgSetID = "protoargs_arg_set_id"

	// MetadataKeyCorrelationID tracks related messages across services.
	MetadataKeyCorrelationID = "correlation_id"
)
