package descriptors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/types/descriptorpb"
	"google.golang.org/protobuf/types/known/structpb"

	descpkg "github.com/drblury/protoargs/internal/runtime/descriptors"
	"github.com/drblury/protoargs/internal/runtime/testschema"
)

func TestProtoPoolIndexesMessagesAndEnums(t *testing.T) {
	pool := testschema.Pool()

	idx, ok := pool.FindDescriptorIdx(testschema.EventType)
	require.True(t, ok)
	event := pool.DescriptorAt(idx)
	assert.Equal(t, testschema.EventType, event.FullName())
	assert.False(t, event.IsEnum())

	tags, ok := event.FindFieldByTag(testschema.TagTags)
	require.True(t, ok)
	assert.Equal(t, "tags", tags.Name)
	assert.True(t, tags.Repeated)
	assert.Equal(t, descriptorpb.FieldDescriptorProto_TYPE_STRING, tags.Type)
	assert.Equal(t, testschema.EventType, tags.Owner)

	child, ok := event.FindFieldByTag(testschema.TagChild)
	require.True(t, ok)
	assert.True(t, child.IsMessage())
	assert.Equal(t, testschema.ChildType, child.ResolvedTypeName)

	level, ok := event.FindFieldByTag(testschema.TagLevel)
	require.True(t, ok)
	assert.Equal(t, testschema.LevelType, level.ResolvedTypeName)

	_, ok = event.FindFieldByTag(999)
	assert.False(t, ok)

	enumIdx, ok := pool.FindDescriptorIdx(testschema.LevelType)
	require.True(t, ok)
	enum := pool.DescriptorAt(enumIdx)
	assert.True(t, enum.IsEnum())
	name, ok := enum.FindEnumString(2)
	require.True(t, ok)
	assert.Equal(t, "LEVEL_WARN", name)
	_, ok = enum.FindEnumString(42)
	assert.False(t, ok)
}

func TestProtoPoolAcceptsLeadingDot(t *testing.T) {
	pool := testschema.Pool()
	a, ok := pool.FindDescriptorIdx("." + testschema.ChildType)
	require.True(t, ok)
	b, ok := pool.FindDescriptorIdx(testschema.ChildType)
	require.True(t, ok)
	assert.Equal(t, a, b)
}

func TestProtoPoolAttachesExtensions(t *testing.T) {
	pool := testschema.Pool()
	idx, ok := pool.FindDescriptorIdx(testschema.EventType)
	require.True(t, ok)

	ext, ok := pool.DescriptorAt(idx).FindFieldByTag(testschema.TagExtNote)
	require.True(t, ok)
	assert.True(t, ext.Extension)
	assert.Equal(t, "ext_note", ext.Name)
	assert.Equal(t, testschema.EventType, ext.Owner)
}

func TestProtoPoolPendingExtensionOrdering(t *testing.T) {
	set := testschema.FileDescriptorSet()
	base := set.File[0]

	extFile := &descriptorpb.FileDescriptorProto{
		Name:       proto.String("test/ext.proto"),
		Package:    proto.String("test.ext"),
		Syntax:     proto.String("proto2"),
		Dependency: []string{"test/args.proto"},
		Extension: []*descriptorpb.FieldDescriptorProto{{
			Name:     proto.String("trace_id"),
			Number:   proto.Int32(150),
			Type:     descriptorpb.FieldDescriptorProto_TYPE_UINT64.Enum(),
			Label:    descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
			Extendee: proto.String("." + testschema.EventType),
		}},
	}
	files, err := protodesc.NewFiles(&descriptorpb.FileDescriptorSet{
		File: []*descriptorpb.FileDescriptorProto{base, extFile},
	})
	require.NoError(t, err)

	extFD, err := files.FindFileByPath("test/ext.proto")
	require.NoError(t, err)
	baseFD, err := files.FindFileByPath("test/args.proto")
	require.NoError(t, err)

	pool := descpkg.NewProtoPool()
	pool.AddFileDescriptor(extFD)
	pool.AddFileDescriptor(baseFD)

	idx, ok := pool.FindDescriptorIdx(testschema.EventType)
	require.True(t, ok)
	ext, ok := pool.DescriptorAt(idx).FindFieldByTag(150)
	require.True(t, ok)
	assert.True(t, ext.Extension)
	assert.Equal(t, "trace_id", ext.Name)
}

func TestProtoPoolAddFileDescriptorSetError(t *testing.T) {
	bad := &descriptorpb.FileDescriptorSet{File: []*descriptorpb.FileDescriptorProto{{
		Name:       proto.String("broken.proto"),
		Dependency: []string{"missing.proto"},
	}}}
	err := descpkg.NewProtoPool().AddFileDescriptorSet(bad)
	assert.Error(t, err)
}

func TestProtoPoolFromGeneratedTypes(t *testing.T) {
	pool := descpkg.NewProtoPool()
	pool.AddFileDescriptor((&structpb.Value{}).ProtoReflect().Descriptor().ParentFile())

	idx, ok := pool.FindDescriptorIdx("google.protobuf.Value")
	require.True(t, ok)
	f, ok := pool.DescriptorAt(idx).FindFieldByTag(3)
	require.True(t, ok)
	assert.Equal(t, "string_value", f.Name)

	nullIdx, ok := pool.FindDescriptorIdx("google.protobuf.NullValue")
	require.True(t, ok)
	name, ok := pool.DescriptorAt(nullIdx).FindEnumString(0)
	require.True(t, ok)
	assert.Equal(t, "NULL_VALUE", name)
}

func TestManualDescriptors(t *testing.T) {
	msg := descpkg.NewMessageDescriptor(".pkg.Msg", descpkg.FieldDescriptor{
		Name:             "kind",
		Number:           1,
		Type:             descriptorpb.FieldDescriptorProto_TYPE_ENUM,
		ResolvedTypeName: ".pkg.Kind",
	})
	assert.Equal(t, "pkg.Msg", msg.FullName())
	assert.Equal(t, 1, msg.Fields())

	f, ok := msg.FindFieldByTag(1)
	require.True(t, ok)
	assert.Equal(t, "pkg.Msg", f.Owner)
	assert.Equal(t, "pkg.Kind", f.ResolvedTypeName)

	pool := descpkg.NewProtoPool()
	first := pool.AddDescriptor(msg)
	second := pool.AddDescriptor(descpkg.NewEnumDescriptor("pkg.Kind", map[int32]string{1: "ONE"}))
	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, pool.Len())
}
