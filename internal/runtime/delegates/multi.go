package delegates

import "github.com/drblury/protoargs/internal/runtime/args"

// Multi forwards every value to each delegate in order. Nil entries are
// dropped.
type Multi []args.Delegate

func NewMulti(ds ...args.Delegate) Multi {
	out := make(Multi, 0, len(ds))
	for _, d := range ds {
		if d != nil {
			out = append(out, d)
		}
	}
	return out
}

func (m Multi) AddInteger(key args.Key, value int64) {
	for _, d := range m {
		d.AddInteger(key, value)
	}
}

func (m Multi) AddUnsignedInteger(key args.Key, value uint64) {
	for _, d := range m {
		d.AddUnsignedInteger(key, value)
	}
}

func (m Multi) AddBoolean(key args.Key, value bool) {
	for _, d := range m {
		d.AddBoolean(key, value)
	}
}

func (m Multi) AddDouble(key args.Key, value float64) {
	for _, d := range m {
		d.AddDouble(key, value)
	}
}

func (m Multi) AddString(key args.Key, value string) {
	for _, d := range m {
		d.AddString(key, value)
	}
}
