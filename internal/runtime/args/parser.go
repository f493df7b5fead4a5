// Package args flattens protobuf-encoded messages into key/value pairs using
// descriptors supplied at runtime.
//
// A Parser walks the wire fields of a message, looks each tag up in the
// descriptor pool and forwards scalar values to a Delegate under a Key built
// from the field path, e.g. "child.values[2].name". Nested messages are
// walked recursively; registered overrides can take over any field path.
package args

import (
	"maps"
	"slices"
	"strconv"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/descriptorpb"

	descpkg "github.com/drblury/protoargs/internal/runtime/descriptors"
	errspkg "github.com/drblury/protoargs/internal/runtime/errors"
	"github.com/drblury/protoargs/internal/runtime/wire"
)

// DefaultKeyPrefixCapacity is the number of bytes preallocated for each of
// the two key paths.
const DefaultKeyPrefixCapacity = 64

// ParsingOverride takes over handling of a field path. key is the path of
// the occurrence being handled, including repeated indices. The error is
// returned as-is from the enclosing ParseMessage call.
type ParsingOverride func(key Key, field wire.Field, delegate Delegate) error

// Option customises a Parser.
type Option func(*Parser)

// WithKeyPrefixCapacity changes the preallocated key path capacity.
func WithKeyPrefixCapacity(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.capacity = n
		}
	}
}

// Parser flattens messages. It keeps a single key path accumulator, so one
// Parser must not be used from several goroutines at once; use Clone to get
// an independent parser sharing the same pool and overrides.
type Parser struct {
	pool      descpkg.Pool
	overrides map[string]ParsingOverride
	prefix    keyPrefix
	capacity  int
	depth     int
}

// NewParser returns a parser resolving types in pool.
func NewParser(pool descpkg.Pool, opts ...Option) *Parser {
	if pool == nil {
		panic(errspkg.ErrPoolRequired)
	}
	p := &Parser{
		pool:      pool,
		overrides: make(map[string]ParsingOverride),
		capacity:  DefaultKeyPrefixCapacity,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	p.prefix = newKeyPrefix(p.capacity)
	return p
}

// AddParsingOverride registers fn for the exact flat key, replacing any
// previous registration. A nil fn removes the override.
func (p *Parser) AddParsingOverride(flatKey string, fn ParsingOverride) {
	if fn == nil {
		delete(p.overrides, flatKey)
		return
	}
	p.overrides[flatKey] = fn
}

// Clone returns a parser with its own key path and a copy of the current
// overrides.
func (p *Parser) Clone() *Parser {
	return &Parser{
		pool:      p.pool,
		overrides: maps.Clone(p.overrides),
		prefix:    newKeyPrefix(p.capacity),
		capacity:  p.capacity,
	}
}

// ParseMessage flattens the message of type typeName encoded in b.
//
// allowedFields limits the top-level tags that are reflected; nil reflects
// every field. Extension fields are always reflected. Nested messages are
// reflected in full. Unknown tags are skipped. Packed repeated scalars are
// expanded so every element gets its own index. The first error aborts the
// walk.
func (p *Parser) ParseMessage(b []byte, typeName string, allowedFields []uint32, delegate Delegate) error {
	if delegate == nil {
		return errspkg.ErrDelegateRequired
	}
	if p.depth == 0 {
		p.prefix.reset()
	}
	p.depth++
	defer func() { p.depth-- }()

	idx, ok := p.pool.FindDescriptorIdx(typeName)
	if !ok {
		return errspkg.DescriptorNotFound(typeName)
	}
	descriptor := p.pool.DescriptorAt(idx)

	var repeated map[uint32]int
	decoder := wire.NewDecoder(b)
	for f := decoder.ReadField(); f.Valid(); f = decoder.ReadField() {
		field, ok := descriptor.FindFieldByTag(f.ID())
		if !ok {
			// Unknown field, possibly an extension we have no descriptor for.
			continue
		}

		allowed := field.Extension || allowedFields == nil || slices.Contains(allowedFields, f.ID())
		if !allowed {
			continue
		}

		if !field.Repeated {
			if err := p.ParseField(field, 0, f, delegate); err != nil {
				return err
			}
			continue
		}

		if repeated == nil {
			repeated = make(map[uint32]int)
		}
		items := []wire.Field{f}
		if elem, ok := packedWireType(field.Type); ok && f.Type() == protowire.BytesType {
			items = f.Packed(elem)
		}
		for _, item := range items {
			if err := p.ParseField(field, repeated[f.ID()], item, delegate); err != nil {
				return err
			}
			repeated[f.ID()]++
		}
	}
	return nil
}

// ParseField handles one occurrence of a field. repeatedIndex is the
// position of this occurrence among the field's values and is only used
// when the field is repeated.
func (p *Parser) ParseField(field *descpkg.FieldDescriptor, repeatedIndex int, f wire.Field, delegate Delegate) error {
	p.depth++
	defer func() { p.depth-- }()

	part := field.Name
	if field.Repeated {
		part += "[" + strconv.Itoa(repeatedIndex) + "]"
	}

	releaseKey := appendScoped(&p.prefix.key, part)
	defer releaseKey()
	releaseFlat := appendScoped(&p.prefix.flat, field.Name)
	defer releaseFlat()

	if override, ok := p.overrides[string(p.prefix.flat)]; ok {
		return override(p.prefix.current(), f, delegate)
	}

	if field.IsMessage() {
		return p.ParseMessage(f.Bytes(), field.ResolvedTypeName, nil, delegate)
	}
	return p.parseSimpleField(field, f, delegate)
}

// CurrentKey returns the key path at the current position. It matches the
// key passed to a running override.
func (p *Parser) CurrentKey() Key {
	return p.prefix.current()
}

func (p *Parser) parseSimpleField(field *descpkg.FieldDescriptor, f wire.Field, delegate Delegate) error {
	key := p.prefix.current()
	switch field.Type {
	case descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		delegate.AddInteger(key, int64(f.AsInt32()))
	case descriptorpb.FieldDescriptorProto_TYPE_SINT32:
		delegate.AddInteger(key, int64(f.AsSint32()))
	case descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
		descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		delegate.AddInteger(key, f.AsInt64())
	case descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		delegate.AddInteger(key, f.AsSint64())
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32:
		delegate.AddUnsignedInteger(key, uint64(f.AsUint32()))
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		delegate.AddUnsignedInteger(key, f.AsUint64())
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		delegate.AddBoolean(key, f.AsBool())
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		delegate.AddDouble(key, f.AsDouble())
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		delegate.AddDouble(key, float64(f.AsFloat()))
	case descriptorpb.FieldDescriptorProto_TYPE_STRING,
		descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		delegate.AddString(key, f.AsString())
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		p.addEnum(field, f, key, delegate)
	default:
		return &errspkg.UnsupportedFieldTypeError{
			Field:    field.Name,
			TypeName: field.Owner,
			Kind:     field.Type,
		}
	}
	return nil
}

// addEnum emits the symbolic name of an enum value, falling back to the
// integer when the enum type or the value is unknown.
func (p *Parser) addEnum(field *descpkg.FieldDescriptor, f wire.Field, key Key, delegate Delegate) {
	value := f.AsInt32()
	idx, ok := p.pool.FindDescriptorIdx(field.ResolvedTypeName)
	if !ok {
		delegate.AddInteger(key, int64(value))
		return
	}
	name, ok := p.pool.DescriptorAt(idx).FindEnumString(value)
	if !ok {
		delegate.AddInteger(key, int64(value))
		return
	}
	delegate.AddString(key, name)
}

// packedWireType reports the element wire type of a scalar kind that may be
// sent packed. Strings, bytes and messages are never packed.
func packedWireType(kind descriptorpb.FieldDescriptorProto_Type) (protowire.Type, bool) {
	switch kind {
	case descriptorpb.FieldDescriptorProto_TYPE_INT32,
		descriptorpb.FieldDescriptorProto_TYPE_INT64,
		descriptorpb.FieldDescriptorProto_TYPE_UINT32,
		descriptorpb.FieldDescriptorProto_TYPE_UINT64,
		descriptorpb.FieldDescriptorProto_TYPE_SINT32,
		descriptorpb.FieldDescriptorProto_TYPE_SINT64,
		descriptorpb.FieldDescriptorProto_TYPE_BOOL,
		descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return protowire.VarintType, true
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED32,
		descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return protowire.Fixed32Type, true
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED64,
		descriptorpb.FieldDescriptorProto_TYPE_SFIXED64,
		descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return protowire.Fixed64Type, true
	default:
		return 0, false
	}
}
