/*
Package runtime hosts the Flattener, the concurrent service built on top of
the args parser.

# Package Structure

## Flattener (flattener.go)

Flattener owns a descriptor pool, a validated Config and a base parser that
carries the registered parsing overrides. Each call borrows a parser clone
from a sync.Pool, so Flatten and FlattenTo are safe for concurrent use.
Overrides are frozen after the first call.

Every call is wrapped in an OpenTelemetry span and, when metrics are
enabled, counted in Prometheus.

## Router wiring (flattener_router.go)

ArgsHandler and AddArgsHandler expose the Flattener as a Watermill handler
that turns protobuf payloads into JSON encoded ArgSet messages.

# Sub-packages

  - args/: Path builder, message walker, field dispatcher and overrides
  - config/: Flattener configuration with validation
  - delegates/: Delegate implementations (recorder, JSON, logging, fan-out, counting)
  - descriptors/: Descriptor pool over protoreflect and descriptorpb
  - errors/: Sentinel errors and error types
  - handlers/: Watermill handler building and metadata keys
  - ids/: ULID generation for arg set IDs
  - jsoncodec/: JSON marshaling utilities
  - logging/: Logger interface and adapters
  - metadata/: Message metadata utilities
  - metrics/: Prometheus collectors
  - wire/: Protobuf wire-format field decoder

# Usage Example

	f, err := protoargs.NewFlattener(pool, &protoargs.Config{MetricsEnabled: true}, logger, protoargs.FlattenerDependencies{})
	if err != nil {
		return err
	}
	set, err := f.Flatten(ctx, "acme.orders.OrderCreated", payload)
*/
package runtime
