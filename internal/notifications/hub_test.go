package notifications

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"mural/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEventuallyTimeout = time.Second
	testPollInterval      = 10 * time.Millisecond
)

func TestHub_RegisterUnregister(t *testing.T) {
	hub := NewHub()

	clientA, err := hub.Register("u1", nil)
	require.NoError(t, err)
	clientB, err := hub.Register("u1", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, hub.ConnectionCount("u1"))

	hub.Unregister("u1", clientA)
	assert.Equal(t, 1, hub.ConnectionCount("u1"))

	// double unregister is harmless
	hub.Unregister("u1", clientA)
	assert.Equal(t, 1, hub.ConnectionCount("u1"))

	hub.Unregister("u1", clientB)
	assert.Equal(t, 0, hub.ConnectionCount("u1"))

	_ = hub.Shutdown(context.Background())
}

func TestHub_PerUserConnectionLimit(t *testing.T) {
	hub := NewHub()

	for i := 0; i < maxConnsPerUser; i++ {
		_, err := hub.Register("u1", nil)
		require.NoError(t, err)
	}

	_, err := hub.Register("u1", nil)
	assert.Error(t, err)

	// other users are unaffected
	_, err = hub.Register("u2", nil)
	assert.NoError(t, err)

	_ = hub.Shutdown(context.Background())
}

func TestHub_WiredToNotifierDeliversPerUser(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer func() { _ = rdb.Close() }()

	notifier := NewNotifier(rdb)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var delivered int32
	var lastUser atomic.Value
	require.NoError(t, notifier.StartPatternSubscriber(ctx, func(userID, payload string) {
		lastUser.Store(userID)
		atomic.AddInt32(&delivered, 1)
	}))

	require.NoError(t, notifier.PublishNotification(context.Background(), &models.Notification{
		ID:      "n1",
		UserID:  "owner-7",
		Message: "Someone liked your post: Sunset",
	}))

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&delivered) >= 1
	}, testEventuallyTimeout, testPollInterval)
	assert.Equal(t, "owner-7", lastUser.Load())
}

func TestNotifier_NilRedisIsNoop(t *testing.T) {
	t.Parallel()
	n := NewNotifier(nil)

	assert.NoError(t, n.PublishNotification(context.Background(), &models.Notification{UserID: "u1"}))
	assert.NoError(t, n.StartPatternSubscriber(context.Background(), func(string, string) {}))
}
