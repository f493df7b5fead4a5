package descriptors

import (
	"fmt"

	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// Pool is the lookup contract the parser needs from a schema registry.
type Pool interface {
	FindDescriptorIdx(fullName string) (int, bool)
	DescriptorAt(idx int) *Descriptor
}

// ProtoPool indexes descriptors from the protobuf reflection API. It is not
// safe for concurrent mutation; populate it before handing it to parsers.
type ProtoPool struct {
	descriptors []*Descriptor
	index       map[string]int

	// extensions whose extendee has not been added yet
	pending map[string][]FieldDescriptor
}

// NewProtoPool returns an empty pool.
func NewProtoPool() *ProtoPool {
	return &ProtoPool{
		index:   make(map[string]int),
		pending: make(map[string][]FieldDescriptor),
	}
}

// FindDescriptorIdx resolves a fully-qualified type name. A leading "." is
// accepted.
func (p *ProtoPool) FindDescriptorIdx(fullName string) (int, bool) {
	idx, ok := p.index[normalizeName(fullName)]
	return idx, ok
}

// DescriptorAt returns the descriptor stored at idx.
func (p *ProtoPool) DescriptorAt(idx int) *Descriptor {
	return p.descriptors[idx]
}

// Len returns the number of indexed descriptors.
func (p *ProtoPool) Len() int { return len(p.descriptors) }

// AddDescriptor stores d, replacing any descriptor with the same name, and
// returns its index.
func (p *ProtoPool) AddDescriptor(d *Descriptor) int {
	if !d.enum {
		for _, ext := range p.pending[d.fullName] {
			d.AddField(ext)
		}
		delete(p.pending, d.fullName)
	}
	if idx, ok := p.index[d.fullName]; ok {
		p.descriptors[idx] = d
		return idx
	}
	p.descriptors = append(p.descriptors, d)
	idx := len(p.descriptors) - 1
	p.index[d.fullName] = idx
	return idx
}

// AddFileDescriptorSet builds the files of set with protodesc and indexes
// every message, enum and extension they declare.
func (p *ProtoPool) AddFileDescriptorSet(set *descriptorpb.FileDescriptorSet) error {
	files, err := protodesc.NewFiles(set)
	if err != nil {
		return fmt.Errorf("protoargs: building descriptor set: %w", err)
	}
	p.AddFiles(files)
	return nil
}

// AddFiles indexes every file of a registry, for example
// protoregistry.GlobalFiles.
func (p *ProtoPool) AddFiles(files *protoregistry.Files) {
	files.RangeFiles(func(fd protoreflect.FileDescriptor) bool {
		p.AddFileDescriptor(fd)
		return true
	})
}

// AddFileDescriptor indexes the types declared in a single file. Types that
// are already indexed are left untouched.
func (p *ProtoPool) AddFileDescriptor(fd protoreflect.FileDescriptor) {
	p.addMessages(fd.Messages())
	p.addEnums(fd.Enums())
	p.addExtensions(fd.Extensions())
}

func (p *ProtoPool) addMessages(msgs protoreflect.MessageDescriptors) {
	for i := 0; i < msgs.Len(); i++ {
		md := msgs.Get(i)
		if _, ok := p.index[string(md.FullName())]; !ok {
			p.AddDescriptor(messageDescriptor(md))
		}
		p.addMessages(md.Messages())
		p.addEnums(md.Enums())
		p.addExtensions(md.Extensions())
	}
}

func (p *ProtoPool) addEnums(enums protoreflect.EnumDescriptors) {
	for i := 0; i < enums.Len(); i++ {
		ed := enums.Get(i)
		if _, ok := p.index[string(ed.FullName())]; ok {
			continue
		}
		values := make(map[int32]string, ed.Values().Len())
		for j := 0; j < ed.Values().Len(); j++ {
			v := ed.Values().Get(j)
			// aliases keep the first declared name
			if _, seen := values[int32(v.Number())]; !seen {
				values[int32(v.Number())] = string(v.Name())
			}
		}
		p.AddDescriptor(NewEnumDescriptor(string(ed.FullName()), values))
	}
}

func (p *ProtoPool) addExtensions(exts protoreflect.ExtensionDescriptors) {
	for i := 0; i < exts.Len(); i++ {
		xd := exts.Get(i)
		f := fieldDescriptor(xd)
		extendee := f.Owner
		if idx, ok := p.index[extendee]; ok {
			p.descriptors[idx].AddField(f)
			continue
		}
		p.pending[extendee] = append(p.pending[extendee], f)
	}
}

func messageDescriptor(md protoreflect.MessageDescriptor) *Descriptor {
	fields := md.Fields()
	d := NewMessageDescriptor(string(md.FullName()))
	for i := 0; i < fields.Len(); i++ {
		d.AddField(fieldDescriptor(fields.Get(i)))
	}
	return d
}

func fieldDescriptor(fd protoreflect.FieldDescriptor) FieldDescriptor {
	f := FieldDescriptor{
		Name:      string(fd.Name()),
		Number:    uint32(fd.Number()),
		Type:      descriptorpb.FieldDescriptorProto_Type(fd.Kind()),
		Owner:     string(fd.ContainingMessage().FullName()),
		Repeated:  fd.Cardinality() == protoreflect.Repeated,
		Extension: fd.IsExtension(),
	}
	switch {
	case fd.Message() != nil:
		f.ResolvedTypeName = string(fd.Message().FullName())
	case fd.Enum() != nil:
		f.ResolvedTypeName = string(fd.Enum().FullName())
	}
	return f
}
