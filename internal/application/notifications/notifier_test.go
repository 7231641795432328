package notifications

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"wasteline-backend/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeSender) SendWelcome(ctx context.Context, toEmail, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, toEmail)
	return nil
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestNotifyRegistered(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sender := &fakeSender{}
	d := &Dispatcher{Sender: sender, Rdb: rdb}

	d.NotifyRegistered(&domain.User{
		ID:       7,
		FullName: "Ani Wijaya",
		Email:    "ani@example.com",
		Role:     domain.RoleResident,
	})

	require.Eventually(t, func() bool {
		return sender.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		n, _ := rdb.LLen(context.Background(), RegistrationQueueKey()).Result()
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)

	raw, err := rdb.RPop(context.Background(), RegistrationQueueKey()).Result()
	require.NoError(t, err)
	var event RegisteredEvent
	require.NoError(t, json.Unmarshal([]byte(raw), &event))
	assert.Equal(t, uint(7), event.UserID)
	assert.Equal(t, "ani@example.com", event.Email)
	assert.Equal(t, domain.RoleResident, event.Role)
}

func TestNotifyRegistered_NilDeps(t *testing.T) {
	var d *Dispatcher
	d.NotifyRegistered(&domain.User{ID: 1})

	// No Redis, no sender: still must not panic or block.
	d = &Dispatcher{}
	d.NotifyRegistered(&domain.User{ID: 1, Email: "a@b.co"})
	time.Sleep(20 * time.Millisecond)
}

func TestBrevoClient_NoKeyIsNoop(t *testing.T) {
	c := &BrevoClient{}
	assert.NoError(t, c.SendWelcome(context.Background(), "a@b.co", "A"))
}
