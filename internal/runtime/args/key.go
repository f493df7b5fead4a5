package args

// Key locates one value in the args table. FlatKey joins field names only,
// so every element of a repeated field shares it; Key adds an [index]
// suffix to repeated segments and is unique per value.
type Key struct {
	FlatKey string
	Key     string
}

// NewKey returns a Key whose flat and indexed forms are identical.
func NewKey(k string) Key {
	return Key{FlatKey: k, Key: k}
}

// NewFlatKey returns a Key with distinct flat and indexed forms.
func NewFlatKey(flatKey, key string) Key {
	return Key{FlatKey: flatKey, Key: key}
}

func (k Key) String() string {
	if k.FlatKey == k.Key {
		return k.Key
	}
	return k.Key + " (" + k.FlatKey + ")"
}

// keyPrefix is the path accumulator shared by one parser's call stack.
type keyPrefix struct {
	flat []byte
	key  []byte
}

func newKeyPrefix(capacity int) keyPrefix {
	return keyPrefix{
		flat: make([]byte, 0, capacity),
		key:  make([]byte, 0, capacity),
	}
}

func (p *keyPrefix) current() Key {
	return Key{FlatKey: string(p.flat), Key: string(p.key)}
}

func (p *keyPrefix) reset() {
	p.flat = p.flat[:0]
	p.key = p.key[:0]
}

// appendScoped appends part to *dest, dot-separated unless *dest is empty,
// and returns a func that truncates *dest back to its previous length.
func appendScoped(dest *[]byte, part string) (release func()) {
	oldLen := len(*dest)
	if oldLen > 0 {
		*dest = append(*dest, '.')
	}
	*dest = append(*dest, part...)
	return func() { *dest = (*dest)[:oldLen] }
}
