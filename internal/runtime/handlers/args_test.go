package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errspkg "github.com/drblury/protoargs/internal/runtime/errors"
	loggingpkg "github.com/drblury/protoargs/internal/runtime/logging"
)

func TestBuildArgsHandlerEmitsArgSet(t *testing.T) {
	var gotType string
	var gotPayload []byte
	handler, err := BuildArgsHandler(func(ctx context.Context, typeName string, payload []byte) (string, []byte, error) {
		gotType = typeName
		gotPayload = payload
		return "01HARGSET", []byte(`{"args":[]}`), nil
	}, loggingpkg.NewNopServiceLogger())
	require.NoError(t, err)

	msg := message.NewMessage("in-1", []byte{0x08, 0x05})
	msg.Metadata = message.Metadata{
		MetadataKeyTypeName:      "pkg.Event",
		MetadataKeyCorrelationID: "corr",
	}

	out, err := handler(msg)
	require.NoError(t, err)
	require.Len(t, out, 1)

	assert.Equal(t, "pkg.Event", gotType)
	assert.Equal(t, []byte{0x08, 0x05}, gotPayload)
	assert.Equal(t, "01HARGSET", out[0].UUID)
	assert.Equal(t, `{"args":[]}`, string(out[0].Payload))
	assert.Equal(t, "01HARGSET", out[0].Metadata.Get(MetadataKeyArgSetID))
	assert.Equal(t, "corr", out[0].Metadata.Get(MetadataKeyCorrelationID))
	assert.Equal(t, "pkg.Event", out[0].Metadata.Get(MetadataKeyTypeName))

	assert.Empty(t, msg.Metadata.Get(MetadataKeyArgSetID), "incoming metadata is not mutated")
}

func TestBuildArgsHandlerRequiresTypeName(t *testing.T) {
	called := false
	handler, err := BuildArgsHandler(func(context.Context, string, []byte) (string, []byte, error) {
		called = true
		return "", nil, nil
	}, loggingpkg.NewNopServiceLogger())
	require.NoError(t, err)

	_, err = handler(message.NewMessage("in-2", nil))
	assert.ErrorIs(t, err, errspkg.ErrTypeNameRequired)
	assert.False(t, called)
}

func TestBuildArgsHandlerPropagatesFlattenError(t *testing.T) {
	boom := errors.New("boom")
	handler, err := BuildArgsHandler(func(context.Context, string, []byte) (string, []byte, error) {
		return "", nil, boom
	}, loggingpkg.NewNopServiceLogger())
	require.NoError(t, err)

	msg := message.NewMessage("in-3", nil)
	msg.Metadata.Set(MetadataKeyTypeName, "pkg.Event")
	_, err = handler(msg)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "in-3")
}

func TestBuildArgsHandlerValidatesArguments(t *testing.T) {
	_, err := BuildArgsHandler(nil, loggingpkg.NewNopServiceLogger())
	assert.ErrorIs(t, err, errspkg.ErrFlattenRequired)

	_, err = BuildArgsHandler(func(context.Context, string, []byte) (string, []byte, error) {
		return "", nil, nil
	}, nil)
	assert.ErrorIs(t, err, errspkg.ErrLoggerRequired)
}
