package delegates

import "github.com/drblury/protoargs/internal/runtime/args"

// ArgObserver is notified of every value passing through a Counting
// delegate.
type ArgObserver interface {
	ObserveArg(valueType string)
}

// Counting reports each value type to an observer before forwarding it.
type Counting struct {
	next     args.Delegate
	observer ArgObserver
	count    int
}

var _ args.Delegate = (*Counting)(nil)

func NewCounting(next args.Delegate, observer ArgObserver) *Counting {
	return &Counting{next: next, observer: observer}
}

// Count returns the number of values seen so far.
func (c *Counting) Count() int { return c.count }

func (c *Counting) observe(t ValueType) {
	c.count++
	if c.observer != nil {
		c.observer.ObserveArg(t.String())
	}
}

func (c *Counting) AddInteger(key args.Key, value int64) {
	c.observe(ValueTypeInt)
	c.next.AddInteger(key, value)
}

func (c *Counting) AddUnsignedInteger(key args.Key, value uint64) {
	c.observe(ValueTypeUint)
	c.next.AddUnsignedInteger(key, value)
}

func (c *Counting) AddBoolean(key args.Key, value bool) {
	c.observe(ValueTypeBool)
	c.next.AddBoolean(key, value)
}

func (c *Counting) AddDouble(key args.Key, value float64) {
	c.observe(ValueTypeReal)
	c.next.AddDouble(key, value)
}

func (c *Counting) AddString(key args.Key, value string) {
	c.observe(ValueTypeString)
	c.next.AddString(key, value)
}
