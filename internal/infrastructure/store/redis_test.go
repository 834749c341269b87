package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) Gateway {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	s, err := NewRedisStore(client, "test", testSpecs...)
	require.NoError(t, err)
	return s
}

func TestRedisStore(t *testing.T) {
	runGatewaySuite(t, newTestRedisStore)
}

func TestRedisStore_KeyLayout(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	s, err := NewRedisStore(client, "cat", testSpecs...)
	require.NoError(t, err)
	ctx := context.Background()

	id, err := s.Insert(ctx, "authors", Document{"name": "Jemisin"})
	require.NoError(t, err)

	assert.Equal(t, id, mr.HGet("cat:authors:uniq:name", "Jemisin"))
	assert.True(t, mr.Exists("cat:authors:docs"))
	members, err := mr.ZMembers("cat:authors:order")
	require.NoError(t, err)
	assert.Equal(t, []string{id}, members)

	_, err = s.DeleteByID(ctx, "authors", id)
	require.NoError(t, err)
	assert.Empty(t, mr.HGet("cat:authors:uniq:name", "Jemisin"))
}

func TestRedisStore_PingFailsWhenServerIsDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	s, err := NewRedisStore(client, "", testSpecs...)
	require.NoError(t, err)

	mr.Close()
	assert.Error(t, s.Ping(context.Background()))
}
