package notifications

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	got []string
}

func (r *recorder) handle(payload []byte) {
	r.got = append(r.got, string(payload))
}

func TestMemoryChannel_NoEcho(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()
	a, b := hub.Connect(), hub.Connect()

	var ra, rb recorder
	_, err := a.Subscribe(ctx, "update-event", ra.handle)
	require.NoError(t, err)
	_, err = b.Subscribe(ctx, "update-event", rb.handle)
	require.NoError(t, err)

	require.NoError(t, a.Publish(ctx, "update-event", []byte("m1")))
	require.NoError(t, b.Publish(ctx, "update-event", []byte("m2")))

	assert.Equal(t, []string{"m2"}, ra.got)
	assert.Equal(t, []string{"m1"}, rb.got)
}

func TestMemoryChannel_Topics(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()
	a, b := hub.Connect(), hub.Connect()

	var rb recorder
	_, err := b.Subscribe(ctx, "update-event", rb.handle)
	require.NoError(t, err)

	require.NoError(t, a.Publish(ctx, "other", []byte("ignored")))
	assert.Empty(t, rb.got)
}

func TestMemoryChannel_SubscriptionClose(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()
	a, b := hub.Connect(), hub.Connect()

	var first, second recorder
	sub, err := b.Subscribe(ctx, "update-event", first.handle)
	require.NoError(t, err)
	_, err = b.Subscribe(ctx, "update-event", second.handle)
	require.NoError(t, err)
	assert.Equal(t, "update-event", sub.Topic())

	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())
	require.NoError(t, a.Publish(ctx, "update-event", []byte("m1")))

	assert.Empty(t, first.got)
	assert.Equal(t, []string{"m1"}, second.got)

	require.NoError(t, b.Unsubscribe("update-event"))
	require.NoError(t, a.Publish(ctx, "update-event", []byte("m2")))
	assert.Equal(t, []string{"m1"}, second.got)
}

func TestMemoryChannel_Closed(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()
	a, b := hub.Connect(), hub.Connect()

	var rb recorder
	_, err := b.Subscribe(ctx, "update-event", rb.handle)
	require.NoError(t, err)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	require.NoError(t, a.Publish(ctx, "update-event", []byte("m1")))
	assert.Empty(t, rb.got)

	_, err = b.Subscribe(ctx, "update-event", rb.handle)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, b.Publish(ctx, "update-event", nil), ErrClosed)
}

func TestMemoryChannel_PayloadCopied(t *testing.T) {
	ctx := context.Background()
	hub := NewHub()
	a, b := hub.Connect(), hub.Connect()

	var rb recorder
	_, err := b.Subscribe(ctx, "t", rb.handle)
	require.NoError(t, err)

	payload := []byte("m1")
	require.NoError(t, a.Publish(ctx, "t", payload))
	payload[0] = 'x'

	assert.Equal(t, []string{"m1"}, rb.got)
}
