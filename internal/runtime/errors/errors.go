package errors

import (
	sterrors "errors"
	"fmt"

	"google.golang.org/protobuf/types/descriptorpb"
)

var (
	ErrDescriptorNotFound = sterrors.New("protoargs: failed to find proto descriptor")
	ErrPoolRequired       = sterrors.New("protoargs: descriptor pool is required")
	ErrDelegateRequired   = sterrors.New("protoargs: delegate is required")
	ErrTypeNameRequired   = sterrors.New("protoargs: message type name is required")
	ErrOverrideRequired   = sterrors.New("protoargs: parsing override function is required")
	ErrConfigRequired     = sterrors.New("protoargs: configuration is required")
	ErrLoggerRequired     = sterrors.New("protoargs: logger is required")
	ErrOverridesFrozen    = sterrors.New("protoargs: parsing overrides must be registered before the first flatten call")
	ErrFlattenRequired    = sterrors.New("protoargs: flatten function is required")
	ErrRouterRequired     = sterrors.New("protoargs: router is required")
	ErrTopicRequired      = sterrors.New("protoargs: topic is required")
)

// DescriptorNotFound wraps ErrDescriptorNotFound with the type name that
// could not be resolved.
func DescriptorNotFound(typeName string) error {
	return fmt.Errorf("%w: %q", ErrDescriptorNotFound, typeName)
}

// UnsupportedFieldTypeError is returned when a field's declared type has no
// scalar representation in the args table.
type UnsupportedFieldTypeError struct {
	Field    string
	TypeName string
	Kind     descriptorpb.FieldDescriptorProto_Type
}

func (e *UnsupportedFieldTypeError) Error() string {
	return fmt.Sprintf(
		"protoargs: tried to write value of type field %s (in proto type %s) which has type enum %d",
		e.Field, e.TypeName, int32(e.Kind),
	)
}

// ConfigValidationError wraps configuration validation failures.
type ConfigValidationError struct {
	Err error
}

func (e ConfigValidationError) Error() string {
	return "protoargs: invalid configuration: " + e.Err.Error()
}

func (e ConfigValidationError) Unwrap() error {
	return e.Err
}

// NewConfigValidationError returns nil when err is nil.
func NewConfigValidationError(err error) error {
	if err == nil {
		return nil
	}
	return ConfigValidationError{Err: err}
}
