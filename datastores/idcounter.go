package datastores

import "sync/atomic"

// IDCounter hands out monotonically increasing [ContactID]s.
// It is safe for concurrent use.
type IDCounter struct {
	v atomic.Int64
}

func NewIDCounter(start ContactID) *IDCounter {
	c := new(IDCounter)
	c.v.Store(start)
	return c
}

// Next increments the counter and returns its previous value.
func (c *IDCounter) Next() ContactID { return c.v.Add(1) - 1 }

// Resume replaces the counter value with highest so that the next call to
// [IDCounter.Next] returns highest. It is meant to be called once after
// restoring persisted contacts; going backwards gives up uniqueness.
func (c *IDCounter) Resume(highest ContactID) { c.v.Store(highest) }

// Current returns the value the next call to [IDCounter.Next] would return.
func (c *IDCounter) Current() ContactID { return c.v.Load() }
