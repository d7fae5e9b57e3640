package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/profile-directory/internal/config"
	"github.com/redmonkez12/profile-directory/internal/logging"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:            "0",
			Env:             "prod",
			ReadTimeout:     time.Second,
			WriteTimeout:    time.Second,
			ShutdownTimeout: time.Second,
		},
		Store:    config.StoreConfig{Driver: config.DriverMemory},
		Password: config.PasswordConfig{MemoryKiB: 1024, Iterations: 1, Parallelism: 1},
	}
}

func TestNewAndRunWithMemoryStore(t *testing.T) {
	a, err := New(context.Background(), memoryConfig(), logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, a.Run(ctx))
}

func TestNewRejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Driver = "sqlite"

	_, err := New(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store driver")
}

func TestCloseRunsInReverseOrder(t *testing.T) {
	var order []int
	a := &App{closers: []func() error{
		func() error { order = append(order, 1); return nil },
		func() error { order = append(order, 2); return errors.New("redis close") },
		func() error { order = append(order, 3); return nil },
	}}

	err := a.Close()
	require.Error(t, err)
	assert.Equal(t, []int{3, 2, 1}, order)

	// second close is a no-op
	assert.NoError(t, a.Close())
}
