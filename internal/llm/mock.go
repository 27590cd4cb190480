package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockReply is one canned result for a Mock.
type MockReply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Mock is a deterministic Provider for tests. It replays replies in order
// and records every request.
type Mock struct {
	mu      sync.Mutex
	replies []MockReply
	calls   []Request
}

// NewMock creates a Mock that answers with replies in order.
func NewMock(replies ...MockReply) *Mock {
	return &Mock{replies: replies}
}

func (m *Mock) Name() string  { return ProviderMock }
func (m *Mock) Model() string { return "mock" }

// Complete returns the next reply, or ErrUnavailable once they run out.
// Content is checked against req.Schema like a real provider would.
func (m *Mock) Complete(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)
	if len(m.replies) == 0 {
		return nil, &ProviderError{Provider: ProviderMock, Kind: ErrUnavailable}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	if err := req.Schema.check(ProviderMock, r.Content); err != nil {
		return nil, err
	}
	return &Response{Content: r.Content, Usage: r.Usage, Model: "mock"}, nil
}

// Queue appends replies.
func (m *Mock) Queue(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Calls returns a copy of the requests received so far.
func (m *Mock) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}
