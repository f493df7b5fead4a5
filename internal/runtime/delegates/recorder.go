package delegates

import (
	"github.com/drblury/protoargs/internal/runtime/args"
)

// Arg is one row of the args table.
type Arg struct {
	FlatKey string `json:"flat_key"`
	Key     string `json:"key"`
	Value   Value  `json:"value"`
}

// Recorder is an in-memory args table. Rows keep the order in which the
// parser emitted them.
type Recorder struct {
	args  []Arg
	byKey map[string]int
}

var _ args.Delegate = (*Recorder)(nil)

// NewRecorder returns an empty table.
func NewRecorder() *Recorder {
	return &Recorder{byKey: make(map[string]int)}
}

func (r *Recorder) add(key args.Key, v Value) {
	if r.byKey == nil {
		r.byKey = make(map[string]int)
	}
	r.byKey[key.Key] = len(r.args)
	r.args = append(r.args, Arg{FlatKey: key.FlatKey, Key: key.Key, Value: v})
}

func (r *Recorder) AddInteger(key args.Key, value int64)          { r.add(key, IntValue(value)) }
func (r *Recorder) AddUnsignedInteger(key args.Key, value uint64) { r.add(key, UintValue(value)) }
func (r *Recorder) AddBoolean(key args.Key, value bool)           { r.add(key, BoolValue(value)) }
func (r *Recorder) AddDouble(key args.Key, value float64)         { r.add(key, RealValue(value)) }
func (r *Recorder) AddString(key args.Key, value string)          { r.add(key, StringValue(value)) }

// Args returns the recorded rows. The slice must not be modified.
func (r *Recorder) Args() []Arg { return r.args }

// Len returns the number of rows.
func (r *Recorder) Len() int { return len(r.args) }

// Get returns the value stored under the indexed key. If the same key was
// emitted twice, the last value wins.
func (r *Recorder) Get(key string) (Value, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return Value{}, false
	}
	return r.args[idx].Value, true
}

// ByFlatKey returns every row sharing flatKey, in emission order.
func (r *Recorder) ByFlatKey(flatKey string) []Arg {
	var out []Arg
	for _, a := range r.args {
		if a.FlatKey == flatKey {
			out = append(out, a)
		}
	}
	return out
}

// Reset empties the table, keeping allocated capacity.
func (r *Recorder) Reset() {
	r.args = r.args[:0]
	clear(r.byKey)
}
