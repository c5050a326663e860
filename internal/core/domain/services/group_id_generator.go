package services

import (
	"fmt"
	"strconv"
	"sync"
	"time"
)

// groupIDWidth is the fixed width of a delivery group id: a timestamp at
// millisecond precision in the form yyyyMMddHHmmssSSS.
const groupIDWidth = 17

// GroupIDGenerator mints delivery group ids from the current timestamp at
// millisecond precision, formatted as a fixed-width string. Two groups minted
// within the same millisecond would collide on the raw timestamp, so the
// generator keeps the last issued id and bumps the candidate until it is
// strictly greater. Ids issued by one generator are therefore unique and
// monotonically increasing.
//
// GroupIDGenerator is safe for concurrent use.
type GroupIDGenerator struct {
	mu   sync.Mutex
	last string
}

// NewGroupIDGenerator creates a generator ready to mint group ids.
func NewGroupIDGenerator() *GroupIDGenerator {
	return &GroupIDGenerator{}
}

// Next returns a new delivery group id, strictly greater than any id this
// generator issued before.
func (g *GroupIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	candidate := now.Format("20060102150405") + fmt.Sprintf("%03d", now.Nanosecond()/int(time.Millisecond))

	if g.last != "" && candidate <= g.last {
		candidate = increment(g.last)
	}

	g.last = candidate
	return candidate
}

// increment treats the fixed-width id as a number and adds one, preserving
// the width. The id space (17 digits) fits in an int64.
func increment(id string) string {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		// Ids are always generator-produced digits; this cannot happen
		// outside of memory corruption.
		panic(fmt.Sprintf("malformed group id %q: %v", id, err))
	}
	return fmt.Sprintf("%0*d", groupIDWidth, n+1)
}
