package mock

import (
	"context"
	"fmt"
)

// MockVisionDescriber is a test double for ai.VisionDescriber.
// It allows custom behavior injection via a function field.
type MockVisionDescriber struct {
	// DescribeFunc is called by Describe if set.
	// If nil, uses default deterministic behavior.
	DescribeFunc func(ctx context.Context, image []byte, mimeType, contextText string) (string, error)

	callCount int
}

// NewMockVisionDescriber creates a mock describer with default behavior.
func NewMockVisionDescriber() *MockVisionDescriber {
	return &MockVisionDescriber{}
}

// Describe returns a deterministic description derived from the inputs.
func (m *MockVisionDescriber) Describe(ctx context.Context, image []byte, mimeType, contextText string) (string, error) {
	m.callCount++

	if m.DescribeFunc != nil {
		return m.DescribeFunc(ctx, image, mimeType, contextText)
	}

	return fmt.Sprintf("an image of type %s (%d bytes) related to %s", mimeType, len(image), contextText), nil
}

// CallCount returns the number of times Describe was called.
func (m *MockVisionDescriber) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockVisionDescriber) Reset() {
	m.callCount = 0
	m.DescribeFunc = nil
}
