package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/tactiz/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestAuditRecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMock(MockReply{Content: json.RawMessage(`{}`), Usage: Usage{InputTokens: 12, OutputTokens: 7}})
	p := WithAudit(mock, repo, nil)

	_, err := p.Complete(WithPurpose(context.Background(), "coach"), Request{})
	require.NoError(t, err)

	require.Len(t, repo.events, 1)
	ev := repo.events[0]
	assert.Equal(t, "mock", ev.Provider)
	assert.Equal(t, "coach", ev.Purpose)
	assert.Equal(t, 12, ev.InputTokens)
	assert.Equal(t, 7, ev.OutputTokens)
	assert.True(t, ev.Success)
}

func TestAuditRecordsFailure(t *testing.T) {
	repo := &recordingRepo{}
	p := WithAudit(NewMock(), repo, nil)

	_, err := p.Complete(context.Background(), Request{})
	require.Error(t, err)

	require.Len(t, repo.events, 1)
	assert.False(t, repo.events[0].Success)
	assert.Equal(t, "unknown", repo.events[0].Purpose)
	assert.Contains(t, repo.events[0].ErrorMessage, "provider unavailable")
}

func TestAuditWriteFailureDoesNotFailRequest(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	repo := &recordingRepo{err: errors.New("disk full")}
	p := WithAudit(NewMock(MockReply{Content: json.RawMessage(`{}`)}), repo, zap.New(core))

	_, err := p.Complete(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.FilterMessage("failed to record llm request event").Len())
}

func TestAuditWithStore(t *testing.T) {
	s, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	p := WithAudit(NewMock(MockReply{Content: json.RawMessage(`{}`)}), s.EventRepo(), nil)
	_, err = p.Complete(context.Background(), Request{})
	require.NoError(t, err)

	seq, err := s.EventRepo().LatestSequence(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)
}
