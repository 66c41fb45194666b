// Package catalog holds the normalized offering set. The catalog is
// read-mostly: ingestion replaces or appends under a write lock, solves read
// a snapshot and never mutate offerings.
package catalog

import (
	"sync"

	"github.com/schedulepro/schedule-pro-api/internal/models"
)

// Catalog owns the normalized offerings for a term.
type Catalog struct {
	mu        sync.RWMutex
	offerings []*models.Offering
	crns      map[string]struct{}
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{crns: make(map[string]struct{})}
}

// Replace swaps the entire offering set.
func (c *Catalog) Replace(offerings []*models.Offering) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offerings = append([]*models.Offering(nil), offerings...)
	c.crns = make(map[string]struct{}, len(offerings))
	for _, offering := range offerings {
		c.crns[offering.CRN] = struct{}{}
	}
}

// Append adds offerings whose CRN is not yet present and returns how many
// were added.
func (c *Catalog) Append(offerings []*models.Offering) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	added := 0
	for _, offering := range offerings {
		if _, exists := c.crns[offering.CRN]; exists {
			continue
		}
		c.crns[offering.CRN] = struct{}{}
		c.offerings = append(c.offerings, offering)
		added++
	}
	return added
}

// Offerings returns a snapshot slice. The offerings themselves are immutable
// and shared; the slice is the caller's.
func (c *Catalog) Offerings() []*models.Offering {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*models.Offering(nil), c.offerings...)
}

// SectionCount is the number of offerings in the catalog.
func (c *Catalog) SectionCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.offerings)
}

// CourseCount is the number of distinct course keys in the catalog.
func (c *Catalog) CourseCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make(map[string]struct{}, len(c.offerings))
	for _, offering := range c.offerings {
		keys[offering.CourseKey] = struct{}{}
	}
	return len(keys)
}

// CourseKeys returns the set of distinct course keys.
func (c *Catalog) CourseKeys() map[string]struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make(map[string]struct{}, len(c.offerings))
	for _, offering := range c.offerings {
		keys[offering.CourseKey] = struct{}{}
	}
	return keys
}

// Empty reports whether no offerings are loaded.
func (c *Catalog) Empty() bool {
	return c.SectionCount() == 0
}
