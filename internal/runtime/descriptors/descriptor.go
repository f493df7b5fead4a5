// Package descriptors holds the runtime schema used by the args parser: a
// pool of message and enum descriptors addressed by fully-qualified name.
package descriptors

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// FieldDescriptor describes one field of a message as seen by the parser.
type FieldDescriptor struct {
	Name   string
	Number uint32
	Type   descriptorpb.FieldDescriptorProto_Type
	// Owner is the fully-qualified name of the message the field belongs
	// to. For extensions it is the extended message.
	Owner     string
	Repeated  bool
	Extension bool
	// ResolvedTypeName names the message or enum type of the field. Empty
	// for scalar fields.
	ResolvedTypeName string
}

// IsMessage reports whether the field holds a nested message.
func (f *FieldDescriptor) IsMessage() bool {
	return f.Type == descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
}

// Descriptor is either a message (fields by tag) or an enum (names by value).
type Descriptor struct {
	fullName   string
	enum       bool
	fields     map[uint32]*FieldDescriptor
	enumValues map[int32]string
}

// NewMessageDescriptor builds a message descriptor from explicit fields.
// Owner is filled in for fields that leave it empty.
func NewMessageDescriptor(fullName string, fields ...FieldDescriptor) *Descriptor {
	d := &Descriptor{
		fullName: normalizeName(fullName),
		fields:   make(map[uint32]*FieldDescriptor, len(fields)),
	}
	for _, f := range fields {
		d.AddField(f)
	}
	return d
}

// NewEnumDescriptor builds an enum descriptor mapping values to names.
func NewEnumDescriptor(fullName string, values map[int32]string) *Descriptor {
	d := &Descriptor{
		fullName:   normalizeName(fullName),
		enum:       true,
		enumValues: make(map[int32]string, len(values)),
	}
	for v, name := range values {
		d.enumValues[v] = name
	}
	return d
}

func (d *Descriptor) FullName() string { return d.fullName }
func (d *Descriptor) IsEnum() bool     { return d.enum }

// AddField registers f under its tag, replacing any previous field with the
// same number.
func (d *Descriptor) AddField(f FieldDescriptor) {
	if d.fields == nil {
		d.fields = make(map[uint32]*FieldDescriptor)
	}
	if f.Owner == "" {
		f.Owner = d.fullName
	}
	f.ResolvedTypeName = normalizeName(f.ResolvedTypeName)
	d.fields[f.Number] = &f
}

// FindFieldByTag returns the field declared with tag.
func (d *Descriptor) FindFieldByTag(tag uint32) (*FieldDescriptor, bool) {
	f, ok := d.fields[tag]
	return f, ok
}

// FindEnumString returns the symbolic name of an enum value.
func (d *Descriptor) FindEnumString(value int32) (string, bool) {
	name, ok := d.enumValues[value]
	return name, ok
}

// Fields returns the number of fields known for the message.
func (d *Descriptor) Fields() int { return len(d.fields) }

func normalizeName(name string) string {
	return strings.TrimPrefix(name, ".")
}
