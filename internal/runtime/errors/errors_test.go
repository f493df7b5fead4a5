package errors

import (
	"errors"
	"testing"

	"google.golang.org/protobuf/types/descriptorpb"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrDescriptorNotFound", ErrDescriptorNotFound, "protoargs: failed to find proto descriptor"},
		{"ErrPoolRequired", ErrPoolRequired, "protoargs: descriptor pool is required"},
		{"ErrDelegateRequired", ErrDelegateRequired, "protoargs: delegate is required"},
		{"ErrTypeNameRequired", ErrTypeNameRequired, "protoargs: message type name is required"},
		{"ErrOverrideRequired", ErrOverrideRequired, "protoargs: parsing override function is required"},
		{"ErrConfigRequired", ErrConfigRequired, "protoargs: configuration is required"},
		{"ErrLoggerRequired", ErrLoggerRequired, "protoargs: logger is required"},
		{"ErrOverridesFrozen", ErrOverridesFrozen, "protoargs: parsing overrides must be registered before the first flatten call"},
		{"ErrFlattenRequired", ErrFlattenRequired, "protoargs: flatten function is required"},
		{"ErrRouterRequired", ErrRouterRequired, "protoargs: router is required"},
		{"ErrTopicRequired", ErrTopicRequired, "protoargs: topic is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestDescriptorNotFound(t *testing.T) {
	err := DescriptorNotFound("pkg.Missing")
	if !errors.Is(err, ErrDescriptorNotFound) {
		t.Fatalf("expected ErrDescriptorNotFound, got %v", err)
	}
	want := `protoargs: failed to find proto descriptor: "pkg.Missing"`
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnsupportedFieldTypeError(t *testing.T) {
	var err error = &UnsupportedFieldTypeError{
		Field:    "payload",
		TypeName: "pkg.Event",
		Kind:     descriptorpb.FieldDescriptorProto_TYPE_GROUP,
	}

	want := "protoargs: tried to write value of type field payload (in proto type pkg.Event) which has type enum 10"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var typed *UnsupportedFieldTypeError
	if !errors.As(err, &typed) {
		t.Fatalf("expected errors.As to match, got %T", err)
	}
	if typed.Field != "payload" {
		t.Errorf("Field = %q, want payload", typed.Field)
	}
}

func TestConfigValidationError(t *testing.T) {
	inner := errors.New("invalid capacity")
	err := ConfigValidationError{Err: inner}

	want := "protoargs: invalid configuration: invalid capacity"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if unwrapped := err.Unwrap(); unwrapped != inner {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, inner)
	}
}

func TestNewConfigValidationError(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		if err := NewConfigValidationError(nil); err != nil {
			t.Errorf("NewConfigValidationError(nil) = %v, want nil", err)
		}
	})

	t.Run("errors.Is works with wrapped error", func(t *testing.T) {
		inner := errors.New("specific error")
		err := NewConfigValidationError(inner)

		var cfgErr ConfigValidationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigValidationError, got %T", err)
		}
		if !errors.Is(err, inner) {
			t.Error("errors.Is should match wrapped error")
		}
	})
}
