package audit

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStoreNewestFirst(t *testing.T) {
	store := NewInMemoryStore(10)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Append(ctx, Event{OrgName: fmt.Sprintf("org-%d", i)}))
	}

	events, err := store.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "org-4", events[0].OrgName)
	assert.Equal(t, "org-2", events[2].OrgName)
}

func TestInMemoryStoreBounded(t *testing.T) {
	store := NewInMemoryStore(3)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		require.NoError(t, store.Append(ctx, Event{OrgName: fmt.Sprintf("org-%d", i)}))
	}

	events, err := store.ListRecent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 3)
	// Oldest entries were evicted.
	assert.Equal(t, "org-9", events[0].OrgName)
	assert.Equal(t, "org-7", events[2].OrgName)
}

func TestPublisherStampsTimestamp(t *testing.T) {
	store := NewInMemoryStore(10)
	pub := NewPublisher(store)

	require.NoError(t, pub.Emit(context.Background(), Event{OrgName: "Acme"}))

	events, err := pub.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Timestamp.IsZero())

	// An explicit timestamp is preserved.
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, pub.Emit(context.Background(), Event{OrgName: "Acme", Timestamp: at}))
	events, err = pub.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, at, events[0].Timestamp)
}
