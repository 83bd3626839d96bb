package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-solver/testing/suite"
)

func TestNewRedisStorage(t *testing.T) {
	t.Run("Connects to a running redis", func(t *testing.T) {
		ctx, st := suite.New(t)

		// When: connecting to the container address
		redisStorage, err := NewRedisStorage(ctx, st.Storage.Options().Addr)

		// Then: the connection should be usable and closable
		require.NoError(t, err)
		require.NoError(t, redisStorage.Connection.Set(ctx, "ping", "pong", 0).Err())
		assert.Equal(t, "pong", redisStorage.Connection.Get(ctx, "ping").Val())
		assert.NoError(t, redisStorage.Close())
	})

	t.Run("Error on unreachable address", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		// When: connecting to a port nothing listens on
		redisStorage, err := NewRedisStorage(ctx, "127.0.0.1:1")

		// Then: an error should be returned
		require.Error(t, err)
		assert.Nil(t, redisStorage)
	})
}
