package mocks

import (
	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	// IntnResults is a queue of results to return from Intn
	IntnResults []int
	intnIndex   int

	// StringResults is a queue of results to return from String
	StringResults []string
	stringIndex   int

	// Fallback answers once a queue is exhausted. If nil, Intn returns 0
	// and String returns the empty string.
	Fallback random.Random
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result (wrapped into [0, n)), then defers to the fallback
func (r *MockRandom) Intn(n int) int {
	if r.intnIndex >= len(r.IntnResults) {
		if r.Fallback != nil {
			return r.Fallback.Intn(n)
		}
		return 0
	}
	result := r.IntnResults[r.intnIndex]
	r.intnIndex++
	if n > 0 {
		result %= n
	}
	return result
}

// String returns the next queued result, then defers to the fallback
func (r *MockRandom) String(length int, alphabet string) string {
	if r.stringIndex >= len(r.StringResults) {
		if r.Fallback != nil {
			return r.Fallback.String(length, alphabet)
		}
		return ""
	}
	result := r.StringResults[r.stringIndex]
	r.stringIndex++
	return result
}

// QueueIntn adds values to the Intn result queue
func (r *MockRandom) QueueIntn(values ...int) {
	r.IntnResults = append(r.IntnResults, values...)
}

// QueuePlacement queues the three draws the grid generator makes per
// placement attempt: direction index, start X, start Y
func (r *MockRandom) QueuePlacement(direction, x, y int) {
	r.QueueIntn(direction, x, y)
}

// QueueString adds values to the String result queue
func (r *MockRandom) QueueString(values ...string) {
	r.StringResults = append(r.StringResults, values...)
}

// Consumed returns how many Intn results have been taken from the queue
func (r *MockRandom) Consumed() int {
	return r.intnIndex
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.IntnResults = nil
	r.intnIndex = 0
	r.StringResults = nil
	r.stringIndex = 0
}
