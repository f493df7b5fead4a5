package delegates

import (
	"io"

	"github.com/drblury/protoargs/internal/runtime/args"
	"github.com/drblury/protoargs/internal/runtime/jsoncodec"
)

// JSON collects values into a flat object keyed by the indexed key, e.g.
// {"child.value": 7, "tags[0]": "x"}. Non-finite doubles are stored as the
// strings "NaN", "+Inf" and "-Inf".
type JSON struct {
	values map[string]any
}

var _ args.Delegate = (*JSON)(nil)

func NewJSON() *JSON {
	return &JSON{values: make(map[string]any)}
}

func (j *JSON) set(key args.Key, v any) {
	if j.values == nil {
		j.values = make(map[string]any)
	}
	j.values[key.Key] = v
}

func (j *JSON) AddInteger(key args.Key, value int64)          { j.set(key, value) }
func (j *JSON) AddUnsignedInteger(key args.Key, value uint64) { j.set(key, value) }
func (j *JSON) AddBoolean(key args.Key, value bool)           { j.set(key, value) }
func (j *JSON) AddDouble(key args.Key, value float64)         { j.set(key, jsonReal(value)) }
func (j *JSON) AddString(key args.Key, value string)          { j.set(key, value) }

// Values exposes the collected object.
func (j *JSON) Values() map[string]any { return j.values }

// Bytes encodes the collected object with sorted keys.
func (j *JSON) Bytes() ([]byte, error) {
	if j.values == nil {
		return []byte("{}"), nil
	}
	return jsoncodec.Marshal(j.values)
}

// Encode writes the collected object to w.
func (j *JSON) Encode(w io.Writer) error {
	if j.values == nil {
		return jsoncodec.Encode(w, map[string]any{})
	}
	return jsoncodec.Encode(w, j.values)
}
