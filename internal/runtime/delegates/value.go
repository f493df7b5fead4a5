// Package delegates provides args.Delegate implementations: an in-memory
// args table, a JSON document builder, a logging sink, a fan-out and a
// counting decorator.
package delegates

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/drblury/protoargs/internal/runtime/jsoncodec"
)

// ValueType identifies which variant of Value is set.
type ValueType uint8

const (
	ValueTypeInt ValueType = iota + 1
	ValueTypeUint
	ValueTypeBool
	ValueTypeReal
	ValueTypeString
)

func (t ValueType) String() string {
	switch t {
	case ValueTypeInt:
		return "int"
	case ValueTypeUint:
		return "uint"
	case ValueTypeBool:
		return "bool"
	case ValueTypeReal:
		return "real"
	case ValueTypeString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is one scalar stored in the args table.
type Value struct {
	Type   ValueType
	Int    int64
	Uint   uint64
	Bool   bool
	Real   float64
	String string
}

func IntValue(v int64) Value     { return Value{Type: ValueTypeInt, Int: v} }
func UintValue(v uint64) Value   { return Value{Type: ValueTypeUint, Uint: v} }
func BoolValue(v bool) Value     { return Value{Type: ValueTypeBool, Bool: v} }
func RealValue(v float64) Value  { return Value{Type: ValueTypeReal, Real: v} }
func StringValue(v string) Value { return Value{Type: ValueTypeString, String: v} }

// Interface returns the Go value held by v.
func (v Value) Interface() any {
	switch v.Type {
	case ValueTypeInt:
		return v.Int
	case ValueTypeUint:
		return v.Uint
	case ValueTypeBool:
		return v.Bool
	case ValueTypeReal:
		return v.Real
	case ValueTypeString:
		return v.String
	default:
		return nil
	}
}

// Text renders v for logs and debugging.
func (v Value) Text() string {
	switch v.Type {
	case ValueTypeInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueTypeUint:
		return strconv.FormatUint(v.Uint, 10)
	case ValueTypeBool:
		return strconv.FormatBool(v.Bool)
	case ValueTypeReal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case ValueTypeString:
		return v.String
	default:
		return fmt.Sprintf("<%s>", v.Type)
	}
}

type jsonValue struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// MarshalJSON encodes v as {"type": ..., "value": ...}.
func (v Value) MarshalJSON() ([]byte, error) {
	value := v.Interface()
	if v.Type == ValueTypeReal {
		value = jsonReal(v.Real)
	}
	return jsoncodec.Marshal(jsonValue{Type: v.Type.String(), Value: value})
}

// jsonReal returns f unchanged when it is finite. NaN and the infinities
// have no JSON number form and are written as "NaN", "+Inf" and "-Inf".
func jsonReal(f float64) any {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "+Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	default:
		return f
	}
}

func parseJSONReal(raw []byte) (float64, error) {
	var text string
	if len(raw) > 0 && raw[0] == '"' {
		if err := jsoncodec.Unmarshal(raw, &text); err != nil {
			return 0, err
		}
		switch text {
		case "NaN", "+Inf", "-Inf":
			return strconv.ParseFloat(text, 64)
		default:
			return 0, fmt.Errorf("invalid real %q", text)
		}
	}
	var f float64
	err := jsoncodec.Unmarshal(raw, &f)
	return f, err
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	}
	if err := jsoncodec.Unmarshal(b, &raw); err != nil {
		return err
	}

	var out Value
	var target any
	switch raw.Type {
	case "int":
		out.Type, target = ValueTypeInt, &out.Int
	case "uint":
		out.Type, target = ValueTypeUint, &out.Uint
	case "bool":
		out.Type, target = ValueTypeBool, &out.Bool
	case "real":
		f, err := parseJSONReal(raw.Value)
		if err != nil {
			return fmt.Errorf("delegates: decode real value: %w", err)
		}
		*v = RealValue(f)
		return nil
	case "string":
		out.Type, target = ValueTypeString, &out.String
	default:
		return fmt.Errorf("delegates: unknown value type %q", raw.Type)
	}
	if err := jsoncodec.Unmarshal(raw.Value, target); err != nil {
		return fmt.Errorf("delegates: decode %s value: %w", raw.Type, err)
	}
	*v = out
	return nil
}
