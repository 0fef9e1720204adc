// Package cacherepair retries cache writes that failed on the request path.
//
// A failed write is published as a PopulateRequested event. The consumer
// applies the write again with whatever is left of the original TTL. Since
// mappings never change once created, a late write can never install
// incorrect data.
package cacherepair

import "time"

// TopicPopulate is the topic carrying failed cache writes.
const TopicPopulate = "cache.populate"

// PopulateRequested describes a cache write that should be applied again.
type PopulateRequested struct {
	Key         string        `json:"key"`
	Value       string        `json:"value"`
	TTL         time.Duration `json:"ttl"`
	RequestedAt time.Time     `json:"requestedAt"`
}
