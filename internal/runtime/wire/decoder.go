// Package wire tokenizes protobuf-encoded buffers into fields with typed
// accessors. It performs no schema lookups: callers decide how to read a
// field from its descriptor.
package wire

import (
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field is one decoded (tag, value) pair. Numeric wire types keep their raw
// 64-bit payload; length-delimited fields keep a sub-slice of the buffer.
type Field struct {
	id    protowire.Number
	typ   protowire.Type
	value uint64
	data  []byte
	valid bool
}

// Valid reports whether the field was decoded. The zero Field is invalid.
func (f Field) Valid() bool { return f.valid }

// ID returns the field tag.
func (f Field) ID() uint32 { return uint32(f.id) }

// Type returns the wire type the field was encoded with.
func (f Field) Type() protowire.Type { return f.typ }

func (f Field) AsInt32() int32   { return int32(f.value) }
func (f Field) AsInt64() int64   { return int64(f.value) }
func (f Field) AsUint32() uint32 { return uint32(f.value) }
func (f Field) AsUint64() uint64 { return f.value }
func (f Field) AsBool() bool     { return f.value != 0 }

func (f Field) AsSint32() int32 {
	return int32(protowire.DecodeZigZag(uint64(uint32(f.value))))
}

func (f Field) AsSint64() int64 {
	return protowire.DecodeZigZag(f.value)
}

func (f Field) AsDouble() float64 {
	return math.Float64frombits(f.value)
}

func (f Field) AsFloat() float32 {
	return math.Float32frombits(uint32(f.value))
}

// AsString interprets the raw bytes of a length-delimited field as text.
func (f Field) AsString() string { return string(f.data) }

// Bytes returns the payload of a length-delimited field. The slice aliases
// the decoder's buffer.
func (f Field) Bytes() []byte { return f.data }

// NewVarintField builds a varint-encoded field, mostly for override tests.
func NewVarintField(id uint32, v uint64) Field {
	return Field{id: protowire.Number(id), typ: protowire.VarintType, value: v, valid: true}
}

// NewBytesField builds a length-delimited field.
func NewBytesField(id uint32, b []byte) Field {
	return Field{id: protowire.Number(id), typ: protowire.BytesType, data: b, valid: true}
}

// Packed splits a packed repeated field into one field per element, each
// carrying f's tag and the element wire type elem. Malformed trailing bytes
// end the sequence, as they do in Decoder.
func (f Field) Packed(elem protowire.Type) []Field {
	var out []Field
	b := f.data
	for len(b) > 0 {
		item := Field{id: f.id, typ: elem, valid: true}
		var n int
		switch elem {
		case protowire.VarintType:
			item.value, n = protowire.ConsumeVarint(b)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(b)
			item.value = uint64(v)
		case protowire.Fixed64Type:
			item.value, n = protowire.ConsumeFixed64(b)
		default:
			return out
		}
		if n < 0 {
			return out
		}
		out = append(out, item)
		b = b[n:]
	}
	return out
}

// Decoder reads fields sequentially from a buffer.
type Decoder struct {
	buf []byte
}

// NewDecoder returns a decoder positioned at the start of b.
func NewDecoder(b []byte) *Decoder {
	return &Decoder{buf: b}
}

// ReadField returns the next field. An invalid field marks the end of the
// buffer; truncated or malformed trailing bytes also end the sequence and
// are dropped. Group-encoded fields are consumed and skipped.
func (d *Decoder) ReadField() Field {
	for len(d.buf) > 0 {
		num, typ, n := protowire.ConsumeTag(d.buf)
		if n < 0 {
			return d.stop()
		}
		rest := d.buf[n:]

		f := Field{id: num, typ: typ, valid: true}
		switch typ {
		case protowire.VarintType:
			v, m := protowire.ConsumeVarint(rest)
			if m < 0 {
				return d.stop()
			}
			f.value = v
			n = m
		case protowire.Fixed32Type:
			v, m := protowire.ConsumeFixed32(rest)
			if m < 0 {
				return d.stop()
			}
			f.value = uint64(v)
			n = m
		case protowire.Fixed64Type:
			v, m := protowire.ConsumeFixed64(rest)
			if m < 0 {
				return d.stop()
			}
			f.value = v
			n = m
		case protowire.BytesType:
			v, m := protowire.ConsumeBytes(rest)
			if m < 0 {
				return d.stop()
			}
			f.data = v
			n = m
		case protowire.StartGroupType:
			m := protowire.ConsumeFieldValue(num, typ, rest)
			if m < 0 {
				return d.stop()
			}
			d.buf = rest[m:]
			continue
		default:
			return d.stop()
		}
		d.buf = rest[n:]
		return f
	}
	return Field{}
}

func (d *Decoder) stop() Field {
	d.buf = nil
	return Field{}
}

// Fields collects every remaining field. Handy in tests and overrides that
// need to look at a nested payload as a whole.
func (d *Decoder) Fields() []Field {
	var out []Field
	for f := d.ReadField(); f.Valid(); f = d.ReadField() {
		out = append(out, f)
	}
	return out
}
