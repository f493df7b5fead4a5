// Package metadata carries the headers that travel with flattened payloads.
package metadata

import "maps"

// Metadata holds string headers attached to a payload or arg set.
type Metadata map[string]string

// Clone returns a shallow copy. The result is never nil.
func (m Metadata) Clone() Metadata {
	if len(m) == 0 {
		return Metadata{}
	}
	return maps.Clone(m)
}

// With returns a copy of m with key set to value.
func (m Metadata) With(key, value string) Metadata {
	cloned := make(Metadata, len(m)+1)
	maps.Copy(cloned, m)
	cloned[key] = value
	return cloned
}

// Merge returns a copy of m overlaid with entries.
func (m Metadata) Merge(entries Metadata) Metadata {
	cloned := make(Metadata, len(m)+len(entries))
	maps.Copy(cloned, m)
	maps.Copy(cloned, entries)
	return cloned
}

// Pairs builds Metadata from alternating key/value arguments. A trailing
// key without a value is ignored.
func Pairs(kv ...string) Metadata {
	md := make(Metadata, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		md[kv[i]] = kv[i+1]
	}
	return md
}
