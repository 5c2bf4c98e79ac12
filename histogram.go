package huffpack

import (
	"fmt"
)

// alphabetSize is the number of distinct symbols a byte stream can contain.
const alphabetSize = 256

// Histogram counts how often each byte value occurs in the input.
type Histogram struct {
	counts   [alphabetSize]uint64
	total    uint64
	distinct int
}

// NewHistogram builds a Histogram from a single pass over data.
//
// Returns ErrEmptyInput if data is empty.
func NewHistogram(data []byte) (*Histogram, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("count frequencies: %w", ErrEmptyInput)
	}
	var h Histogram
	h.Add(data)
	return &h, nil
}

// Add folds another chunk of input into the histogram.  Adding an empty
// chunk is a no-op.
func (h *Histogram) Add(data []byte) {
	for _, b := range data {
		if h.counts[b] == 0 {
			h.distinct++
		}
		h.counts[b]++
	}
	h.total += uint64(len(data))
}

// Count returns the number of occurrences recorded for sym.
func (h *Histogram) Count(sym byte) uint64 {
	return h.counts[sym]
}

// Total returns the number of bytes recorded so far.
func (h *Histogram) Total() uint64 {
	return h.total
}

// Distinct returns the number of byte values with a non-zero count.
func (h *Histogram) Distinct() int {
	return h.distinct
}
