// Package ids generates arg set identifiers.
package ids

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewArgSetID returns a time-sortable ULID for a flattened message. IDs
// created by one process are strictly increasing.
func NewArgSetID() string {
	return newArgSetIDAt(time.Now())
}

func newArgSetIDAt(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// ArgSetTime extracts the creation time encoded in an arg set ID.
func ArgSetTime(id string) (time.Time, error) {
	parsed, err := ulid.ParseStrict(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
