// Package bloom provides probabilistic set membership for catalog URLs and
// stored image keys.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter is a concurrency-safe Bloom filter over strings. A negative
// answer is exact; a positive answer may be a false positive.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add adds key to the filter.
func (f *Filter) Add(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(key)
}

// Test reports whether key might be in the filter.
func (f *Filter) Test(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(key)
}

// TestAndAdd reports whether key might already be in the filter, then adds it.
func (f *Filter) TestAndAdd(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(key)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}
