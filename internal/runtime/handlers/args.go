package handlers

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	errspkg "github.com/drblury/protoargs/internal/runtime/errors"
	loggingpkg "github.com/drblury/protoargs/internal/runtime/logging"
	metadatapkg "github.com/drblury/protoargs/internal/runtime/metadata"
)

// FlattenFunc flattens payload as typeName and returns the arg set ID with
// its encoded form.
type FlattenFunc func(ctx context.Context, typeName string, payload []byte) (id string, encoded []byte, err error)

// BuildArgsHandler returns a Watermill handler that flattens each incoming
// message and emits the encoded arg set. The incoming metadata is carried
// over and the arg set ID is added under MetadataKeyArgSetID.
func BuildArgsHandler(flatten FlattenFunc, logger loggingpkg.ServiceLogger) (message.HandlerFunc, error) {
	if flatten == nil {
		return nil, errspkg.ErrFlattenRequired
	}
	if logger == nil {
		return nil, errspkg.ErrLoggerRequired
	}

	return func(msg *message.Message) ([]*message.Message, error) {
		md := metadatapkg.FromWatermill(msg.Metadata)
		typeName := md[MetadataKeyTypeName]
		if typeName == "" {
			return nil, fmt.Errorf("message %s: %w", msg.UUID, errspkg.ErrTypeNameRequired)
		}

		id, encoded, err := flatten(msg.Context(), typeName, msg.Payload)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", msg.UUID, err)
		}

		out := message.NewMessage(id, encoded)
		out.Metadata = metadatapkg.ToWatermill(md.With(MetadataKeyArgSetID, id))
		out.SetContext(msg.Context())

		logger.Debug("Flattened message payload", loggingpkg.LogFields{
			"message_uuid":   msg.UUID,
			"type_name":      typeName,
			"arg_set_id":     id,
			"correlation_id": md[MetadataKeyCorrelationID],
		})
		return []*message.Message{out}, nil
	}, nil
}
