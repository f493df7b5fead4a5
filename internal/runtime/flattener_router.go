package runtime

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	errspkg "github.com/drblury/protoargs/internal/runtime/errors"
	handlerpkg "github.com/drblury/protoargs/internal/runtime/handlers"
	jsoncodecpkg "github.com/drblury/protoargs/internal/runtime/jsoncodec"
)

// ArgsHandler returns a Watermill handler that flattens each consumed
// message into a JSON encoded ArgSet. The payload type is read from the
// handlers.MetadataKeyTypeName header.
func (f *Flattener) ArgsHandler() (message.HandlerFunc, error) {
	return handlerpkg.BuildArgsHandler(f.flattenEncoded, f.Logger)
}

// AddArgsHandler registers the args handler on router. Messages consumed
// from consumeTopic are published to Conf.ArgsTopic.
func (f *Flattener) AddArgsHandler(router *message.Router, handlerName, consumeTopic string, sub message.Subscriber, pub message.Publisher) error {
	if router == nil {
		return errspkg.ErrRouterRequired
	}
	if consumeTopic == "" || f.Conf.ArgsTopic == "" {
		return errspkg.ErrTopicRequired
	}
	handler, err := f.ArgsHandler()
	if err != nil {
		return err
	}
	router.AddHandler(handlerName, consumeTopic, sub, f.Conf.ArgsTopic, pub, handler)
	return nil
}

func (f *Flattener) flattenEncoded(ctx context.Context, typeName string, payload []byte) (string, []byte, error) {
	set, err := f.Flatten(ctx, typeName, payload)
	if err != nil {
		return "", nil, err
	}
	encoded, err := jsoncodecpkg.Marshal(set)
	if err != nil {
		return "", nil, fmt.Errorf("encode arg set %s: %w", set.ID, err)
	}
	return set.ID, encoded, nil
}
