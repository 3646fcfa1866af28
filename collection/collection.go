// Package collection holds the consumer-side accumulation of resolved
// tokens. A Collection is mutated only by applying the worker's messages in
// the order they arrive; readers never race the writer because there is
// exactly one, the goroutine draining the worker channel.
package collection

import (
	"fmt"

	"github.com/tranvictor/nftmeta/metadata"
)

// Stats is the aggregate progress of a resolution session. Total is
// unknown (known=false) until enumeration determines the supply; open-ended
// collections may never know it.
type Stats struct {
	Resolved   int
	Failed     int
	Total      uint64
	TotalKnown bool
}

type Failure struct {
	TokenID uint64
	Reason  string
}

type Collection struct {
	// display identity, filled from the resolved interface or the book
	Name    string
	Address string

	order    []uint64
	tokens   map[uint64]*metadata.TokenMetadata
	failures []Failure
	stats    Stats
}

func NewCollection(name, address string) *Collection {
	return &Collection{
		Name:    name,
		Address: address,
		tokens:  map[uint64]*metadata.TokenMetadata{},
	}
}

// Add appends a resolved token. Insertion order is completion order, not
// numeric id order. A duplicate id is rejected: the worker guarantees each
// id is attempted once, so a duplicate means a bug upstream.
func (c *Collection) Add(token *metadata.TokenMetadata) error {
	if token == nil {
		return fmt.Errorf("nil token")
	}
	if _, found := c.tokens[token.ID]; found {
		return fmt.Errorf("token %d is already in the collection", token.ID)
	}
	c.tokens[token.ID] = token
	c.order = append(c.order, token.ID)
	c.stats.Resolved++
	return nil
}

func (c *Collection) RecordFailure(tokenID uint64, reason string) {
	c.failures = append(c.failures, Failure{TokenID: tokenID, Reason: reason})
	c.stats.Failed++
}

func (c *Collection) SetTotal(total uint64) {
	c.stats.Total = total
	c.stats.TotalKnown = true
}

func (c *Collection) Stats() Stats {
	return c.stats
}

func (c *Collection) Failures() []Failure {
	return c.failures
}

// Get returns the token with the given id, if resolved.
func (c *Collection) Get(tokenID uint64) (*metadata.TokenMetadata, bool) {
	t, found := c.tokens[tokenID]
	return t, found
}

// Tokens returns the resolved tokens in insertion order.
func (c *Collection) Tokens() []*metadata.TokenMetadata {
	result := make([]*metadata.TokenMetadata, 0, len(c.order))
	for _, id := range c.order {
		result = append(result, c.tokens[id])
	}
	return result
}

func (c *Collection) Len() int {
	return len(c.order)
}
