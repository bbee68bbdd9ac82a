// ABOUTME: Unique identifier suppliers for new records
// ABOUTME: Monotonic ULIDs by default, random UUIDs as an alternative
package idgen

import (
	"crypto/rand"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// Supplier returns a new identifier on every call.
type Supplier func() string

// ULID returns a supplier of lowercase, time-sortable ULIDs. The monotonic
// entropy source guarantees uniqueness within the process even when two ids
// are minted in the same millisecond.
func ULID() Supplier {
	var mu sync.Mutex
	entropy := ulid.Monotonic(rand.Reader, 0)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String())
	}
}

// UUID returns a supplier of random v4 UUIDs.
func UUID() Supplier {
	return func() string {
		return uuid.New().String()
	}
}

// ByName resolves a supplier from its configuration name.
func ByName(name string) (Supplier, error) {
	switch strings.ToLower(name) {
	case "", "ulid":
		return ULID(), nil
	case "uuid":
		return UUID(), nil
	default:
		return nil, fmt.Errorf("unknown id scheme %q (valid: ulid, uuid)", name)
	}
}
