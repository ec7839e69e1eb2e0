package cache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

func TestOverviewKey(t *testing.T) {
	assert.Equal(t, "dashboard:overview:c1", OverviewKey("c1"))
}

func TestNoop(t *testing.T) {
	var c Noop
	v, ok, err := c.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.NoError(t, c.Set(context.Background(), "c1", &dto.DashboardOverviewDTO{}))
	c.Invalidate(context.Background(), "c1")
}

func TestRedisOverviewCache_Unreachable(t *testing.T) {
	var buf bytes.Buffer
	c := NewRedisOverviewCache(Options{Addr: "127.0.0.1:1", TTL: time.Minute}, logger.NewWithWriter(&buf, "debug"))
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	_, ok, err := c.Get(ctx, "c1")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "c1", &dto.DashboardOverviewDTO{ProductCount: 1}))
	assert.NoError(t, c.Set(ctx, "c1", nil))

	c.Invalidate(ctx, "c1")
	assert.Contains(t, buf.String(), "invalidación fallida")
}
