package cache

import (
	"context"
	"io"
	"testing"

	"health-wheel/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSessionOptions(t *testing.T) {
	opts, err := SessionOptions(config.RedisConfig{Host: "cache", Port: "6380", DB: 2})
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)

	opts, err = SessionOptions(config.RedisConfig{URL: "redis://:secret@sessions:6379/3", Host: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, "sessions:6379", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, 3, opts.DB)

	_, err = SessionOptions(config.RedisConfig{URL: "http://nope"})
	assert.Error(t, err)
}

func TestNewSessionClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewSessionClient(context.Background(), config.RedisConfig{URL: "redis://" + mr.Addr()}, quietLogger())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	_, err = NewSessionClient(context.Background(), config.RedisConfig{Host: "127.0.0.1", Port: "1"}, quietLogger())
	assert.ErrorContains(t, err, "failed to connect to session store")
}
