// Package testschema provides a small proto2 schema and payload builders
// shared by the runtime tests.
package testschema

import (
	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"

	descpkg "github.com/drblury/protoargs/internal/runtime/descriptors"
)

const (
	Package   = "test.args"
	EventType = Package + ".Event"
	ChildType = Package + ".Child"
	LevelType = Package + ".Level"
)

// Event field tags.
const (
	TagA        = 1
	TagTags     = 2
	TagChild    = 3
	TagChildren = 4
	TagLevel    = 5
	TagDelta    = 6
	TagBigDelta = 7
	TagCount    = 8
	TagTotal    = 9
	TagOK       = 10
	TagRatio    = 11
	TagScore    = 12
	TagBlob     = 13
	TagF32      = 14
	TagSF64     = 15
	TagWide     = 16
	TagSecret   = 17
	TagXS       = 18
	TagSamples  = 19
	TagExtNote  = 100
)

// Child field tags.
const (
	TagChildValue = 1
	TagChildLabel = 2
)

func field(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type, label descriptorpb.FieldDescriptorProto_Label, typeName string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(number),
		Type:   typ.Enum(),
		Label:  label.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String("." + typeName)
	}
	return f
}

func optional(name string, number int32, typ descriptorpb.FieldDescriptorProto_Type) *descriptorpb.FieldDescriptorProto {
	return field(name, number, typ, descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL, "")
}

// FileDescriptorSet returns the descriptor set for test/args.proto.
func FileDescriptorSet() *descriptorpb.FileDescriptorSet {
	const (
		opt = descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
		rep = descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	)

	ext := optional("ext_note", TagExtNote, descriptorpb.FieldDescriptorProto_TYPE_STRING)
	ext.Extendee = proto.String("." + EventType)

	file := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("test/args.proto"),
		Package: proto.String(Package),
		Syntax:  proto.String("proto2"),
		EnumType: []*descriptorpb.EnumDescriptorProto{{
			Name: proto.String("Level"),
			Value: []*descriptorpb.EnumValueDescriptorProto{
				{Name: proto.String("LEVEL_UNSPECIFIED"), Number: proto.Int32(0)},
				{Name: proto.String("LEVEL_INFO"), Number: proto.Int32(1)},
				{Name: proto.String("LEVEL_WARN"), Number: proto.Int32(2)},
			},
		}},
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String("Child"),
				Field: []*descriptorpb.FieldDescriptorProto{
					optional("value", TagChildValue, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					optional("label", TagChildLabel, descriptorpb.FieldDescriptorProto_TYPE_STRING),
				},
			},
			{
				Name: proto.String("Event"),
				Field: []*descriptorpb.FieldDescriptorProto{
					optional("a", TagA, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					field("tags", TagTags, descriptorpb.FieldDescriptorProto_TYPE_STRING, rep, ""),
					field("child", TagChild, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, opt, ChildType),
					field("children", TagChildren, descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, rep, ChildType),
					field("level", TagLevel, descriptorpb.FieldDescriptorProto_TYPE_ENUM, opt, LevelType),
					optional("delta", TagDelta, descriptorpb.FieldDescriptorProto_TYPE_SINT32),
					optional("big_delta", TagBigDelta, descriptorpb.FieldDescriptorProto_TYPE_SINT64),
					optional("count", TagCount, descriptorpb.FieldDescriptorProto_TYPE_UINT32),
					optional("total", TagTotal, descriptorpb.FieldDescriptorProto_TYPE_UINT64),
					optional("ok", TagOK, descriptorpb.FieldDescriptorProto_TYPE_BOOL),
					optional("ratio", TagRatio, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE),
					optional("score", TagScore, descriptorpb.FieldDescriptorProto_TYPE_FLOAT),
					optional("blob", TagBlob, descriptorpb.FieldDescriptorProto_TYPE_BYTES),
					optional("f32", TagF32, descriptorpb.FieldDescriptorProto_TYPE_FIXED32),
					optional("sf64", TagSF64, descriptorpb.FieldDescriptorProto_TYPE_SFIXED64),
					optional("wide", TagWide, descriptorpb.FieldDescriptorProto_TYPE_INT64),
					optional("secret", TagSecret, descriptorpb.FieldDescriptorProto_TYPE_INT32),
					field("xs", TagXS, descriptorpb.FieldDescriptorProto_TYPE_INT32, rep, ""),
					field("samples", TagSamples, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, rep, ""),
				},
				ExtensionRange: []*descriptorpb.DescriptorProto_ExtensionRange{
					{Start: proto.Int32(100), End: proto.Int32(200)},
				},
			},
		},
		Extension: []*descriptorpb.FieldDescriptorProto{ext},
	}

	return &descriptorpb.FileDescriptorSet{File: []*descriptorpb.FileDescriptorProto{file}}
}

// Pool returns a ProtoPool populated with the test schema. It panics if the
// schema fails to build.
func Pool() *descpkg.ProtoPool {
	pool := descpkg.NewProtoPool()
	if err := pool.AddFileDescriptorSet(FileDescriptorSet()); err != nil {
		panic(err)
	}
	return pool
}

// Builder appends protobuf wire fields.
type Builder struct {
	buf []byte
}

func (b *Builder) Varint(tag uint32, v uint64) *Builder {
	b.buf = protowire.AppendTag(b.buf, protowire.Number(tag), protowire.VarintType)
	b.buf = protowire.AppendVarint(b.buf, v)
	return b
}

func (b *Builder) Int(tag uint32, v int64) *Builder {
	return b.Varint(tag, uint64(v))
}

func (b *Builder) ZigZag(tag uint32, v int64) *Builder {
	return b.Varint(tag, protowire.EncodeZigZag(v))
}

func (b *Builder) Fixed32(tag uint32, v uint32) *Builder {
	b.buf = protowire.AppendTag(b.buf, protowire.Number(tag), protowire.Fixed32Type)
	b.buf = protowire.AppendFixed32(b.buf, v)
	return b
}

func (b *Builder) Fixed64(tag uint32, v uint64) *Builder {
	b.buf = protowire.AppendTag(b.buf, protowire.Number(tag), protowire.Fixed64Type)
	b.buf = protowire.AppendFixed64(b.buf, v)
	return b
}

func (b *Builder) Bytes(tag uint32, v []byte) *Builder {
	b.buf = protowire.AppendTag(b.buf, protowire.Number(tag), protowire.BytesType)
	b.buf = protowire.AppendBytes(b.buf, v)
	return b
}

func (b *Builder) String(tag uint32, v string) *Builder {
	return b.Bytes(tag, []byte(v))
}

// PackedVarints appends vs as one packed repeated varint field.
func (b *Builder) PackedVarints(tag uint32, vs ...uint64) *Builder {
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, v)
	}
	return b.Bytes(tag, packed)
}

// PackedFixed64s appends vs as one packed repeated 64-bit field.
func (b *Builder) PackedFixed64s(tag uint32, vs ...uint64) *Builder {
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendFixed64(packed, v)
	}
	return b.Bytes(tag, packed)
}

func (b *Builder) Message(tag uint32, nested *Builder) *Builder {
	return b.Bytes(tag, nested.Build())
}

func (b *Builder) Build() []byte {
	return b.buf
}

// NewBuilder starts an empty payload.
func NewBuilder() *Builder {
	return &Builder{}
}
