package poolkit_test

import (
	"context"
	"embed"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	_ "github.com/viant/afs/embed"

	"github.com/poolkit/poolkit"
	"github.com/poolkit/poolkit/service/allocator"
	"github.com/poolkit/poolkit/service/registry"
)

//go:embed testdata/*
var embedFS embed.FS

func TestService(t *testing.T) {
	r := registry.New()
	srv := poolkit.New(
		poolkit.WithRegistry(r),
		poolkit.WithProbe(func() int { return 8 }),
	)

	ctx := context.Background()
	assert.Nil(t, srv.Init(ctx))
	defer srv.Shutdown()

	// Repeated Init is a no-op returning the first outcome.
	assert.Nil(t, srv.Init(ctx))

	compute := srv.Pool(allocator.PoolCompute)
	assert.NotNil(t, compute)
	assert.Equal(t, 4, compute.WorkerCount())
	assert.Equal(t, 2, srv.Pool(allocator.PoolIO).WorkerCount())
	assert.Equal(t, 2, srv.Pool(allocator.PoolAsyncCompute).WorkerCount())

	var ran int64
	assert.Nil(t, compute.Submit(ctx, func(ctx context.Context) {
		atomic.AddInt64(&ran, 1)
	}))
	assert.Eventually(t, func() bool {
		return atomic.LoadInt64(&ran) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestService_ConfigURL(t *testing.T) {
	r := registry.New()
	srv := poolkit.New(
		poolkit.WithRegistry(r),
		poolkit.WithProbe(func() int { return 64 }),
		poolkit.WithMetaFsOptions(&embedFS),
		poolkit.WithMetaBaseURL("embed:///testdata"),
		poolkit.WithConfigURL("pools.yaml"),
	)

	ctx := context.Background()
	assert.Nil(t, srv.Init(ctx))
	defer srv.Shutdown()

	// The file caps the total at 6 threads no matter how many cores the
	// probe reports.
	assert.Equal(t, 6, srv.Config().Allocation.MaxTotalThreads)
	assert.Equal(t, 2, srv.Pool("IO").WorkerCount())
	assert.Equal(t, 2, srv.Pool("AsyncCompute").WorkerCount())
	assert.Equal(t, 2, srv.Pool("Compute").WorkerCount())
}

func TestService_EnvTotalThreads(t *testing.T) {
	t.Setenv(poolkit.EnvTotalThreads, "6")

	cfg := poolkit.DefaultConfig()
	assert.Equal(t, 6, cfg.Allocation.MinTotalThreads)
	assert.Equal(t, 6, cfg.Allocation.MaxTotalThreads)
}

func TestService_InvalidConfig(t *testing.T) {
	cfg := poolkit.DefaultConfig()
	cfg.Allocation.Pools[0].Policies.Assignment.Percent = -1

	srv := poolkit.New(
		poolkit.WithRegistry(registry.New()),
		poolkit.WithProbe(func() int { return 4 }),
		poolkit.WithConfig(cfg),
	)
	assert.Error(t, srv.Init(context.Background()))
}
