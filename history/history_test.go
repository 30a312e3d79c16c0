package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAppendAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	r1 := NewRecord("s1", "q1", "a1", "rag", "RAG (document search)")
	r2 := NewRecord("s1", "q2", "a2", "direct", "Direct (internal knowledge)")
	r3 := NewRecord("s2", "q3", "a3", "direct", "Direct (internal knowledge)")

	require.NoError(t, s.Append(ctx, r1))
	require.NoError(t, s.Append(ctx, r2))
	require.NoError(t, s.Append(ctx, r3))

	records, err := s.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "q1", records[0].Question)
	assert.Equal(t, "q2", records[1].Question)

	other, err := s.List(ctx, "s2")
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestMemoryStoreClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Append(ctx, NewRecord("s1", "q", "a", "rag", "")))
	require.NoError(t, s.Clear(ctx, "s1"))

	records, err := s.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestNewRecordPopulatesIDAndTime(t *testing.T) {
	r := NewRecord("s1", "q", "a", "rag", "label")
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, "s1", r.SessionID)
}
