package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swasthsetu/internal/models/db_models"
)

func alert(title string) db_models.Alert {
	return db_models.Alert{BaseModel: db_models.BaseModel{ID: uuid.New()}, Title: title}
}

func TestLastMessageWins(t *testing.T) {
	ctx := context.Background()
	hub := NewMemoryHub()

	sub, err := hub.Subscribe(ctx, nil)
	require.NoError(t, err)
	defer sub.Close()

	for _, title := range []string{"first", "second", "third"} {
		require.NoError(t, hub.Publish(ctx, alert(title)))
	}

	select {
	case got := <-sub.C():
		assert.Equal(t, "third", got.Title)
	case <-time.After(time.Second):
		t.Fatal("no alert delivered")
	}

	select {
	case got := <-sub.C():
		t.Fatalf("unexpected extra alert %q", got.Title)
	default:
	}
}

func TestSubscriptionFilter(t *testing.T) {
	ctx := context.Background()
	hub := NewMemoryHub()
	mine := uuid.New()

	sub, err := hub.Subscribe(ctx, func(a db_models.Alert) bool {
		return a.MigrantID == nil || *a.MigrantID == mine
	})
	require.NoError(t, err)
	defer sub.Close()

	other := uuid.New()
	scoped := alert("someone else")
	scoped.MigrantID = &other
	require.NoError(t, hub.Publish(ctx, scoped))

	select {
	case got := <-sub.C():
		t.Fatalf("filtered alert delivered: %q", got.Title)
	default:
	}

	require.NoError(t, hub.Publish(ctx, alert("broadcast")))
	assert.Equal(t, "broadcast", (<-sub.C()).Title)
}

func TestCloseStopsForwarding(t *testing.T) {
	ctx := context.Background()
	hub := NewMemoryHub()

	sub, err := hub.Subscribe(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, hub.subscribers())

	sub.Close()
	sub.Close()
	assert.Equal(t, 0, hub.subscribers())

	require.NoError(t, hub.Publish(ctx, alert("late")))
	select {
	case <-sub.C():
		t.Fatal("alert delivered after close")
	default:
	}
	_, open := <-sub.Done()
	assert.False(t, open)
}

func TestContextCancelUnsubscribes(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewMemoryHub()

	sub, err := hub.Subscribe(ctx, nil)
	require.NoError(t, err)

	cancel()
	select {
	case <-sub.Done():
	case <-time.After(time.Second):
		t.Fatal("subscription not closed on cancel")
	}
	assert.Eventually(t, func() bool { return hub.subscribers() == 0 }, time.Second, 10*time.Millisecond)
}
