// Package jsoncodec encodes arg sets and delegate output with sonic.
package jsoncodec

import (
	"io"

	"github.com/bytedance/sonic"
)

// Map keys are sorted so the same args always encode to the same bytes.
var defaultConfig = sonic.Config{
	SortMapKeys:      true,
	CompactMarshaler: true,
}.Froze()

func Marshal(v any) ([]byte, error) {
	return defaultConfig.Marshal(v)
}

func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return defaultConfig.MarshalIndent(v, prefix, indent)
}

func Unmarshal(data []byte, v any) error {
	return defaultConfig.Unmarshal(data, v)
}

func Encode(w io.Writer, v any) error {
	return defaultConfig.NewEncoder(w).Encode(v)
}
