package args

// Delegate receives every flattened value. Implementations decide how the
// values are stored; the parser never inspects what they do.
type Delegate interface {
	AddInteger(key Key, value int64)
	AddUnsignedInteger(key Key, value uint64)
	AddBoolean(key Key, value bool)
	AddDouble(key Key, value float64)
	AddString(key Key, value string)
}
