package services

import (
	"purchases/internal/core/domain/model/purchase"
)

// Batch is one delivery group produced by partitioning: a minted group id and
// the purchases assigned to it, in input order.
type Batch struct {
	GroupID   string
	Purchases []*purchase.Purchase
}

// DeliveryGrouper is a domain service that partitions paid purchases into
// delivery groups by postal-code locality.
//
// The input must already be ordered ascending by zip code (lexicographic
// string order); the partitioning is a single linear pass that opens a new
// group whenever the zip-code prefix differs from the immediately preceding
// purchase's prefix. Because the sort key is the zip code itself, purchases
// sharing a prefix are always contiguous, so each prefix run becomes exactly
// one group.
type DeliveryGrouper struct {
	groupIDs *GroupIDGenerator
}

// NewDeliveryGrouper creates a grouper minting ids from the given generator.
func NewDeliveryGrouper(groupIDs *GroupIDGenerator) DeliveryGrouper {
	return DeliveryGrouper{groupIDs: groupIDs}
}

// Partition splits zip-ordered purchases into contiguous delivery groups.
// An empty input produces no batches and mints no group ids.
func (g DeliveryGrouper) Partition(purchases []*purchase.Purchase) []Batch {
	batches := make([]Batch, 0)
	if len(purchases) == 0 {
		return batches
	}

	currentPrefix := purchases[0].ZipCode().Prefix()
	current := Batch{GroupID: g.groupIDs.Next()}

	for _, p := range purchases {
		if prefix := p.ZipCode().Prefix(); prefix != currentPrefix {
			batches = append(batches, current)
			current = Batch{GroupID: g.groupIDs.Next()}
			currentPrefix = prefix
		}
		current.Purchases = append(current.Purchases, p)
	}

	return append(batches, current)
}
