// Package poolkit sizes and creates a fixed set of named worker pools from a
// single machine-wide thread budget.
//
// A declarative configuration gives each pool a sizing rule - a minimum and
// maximum thread count plus a percentage of the total budget - and a panic
// policy.  At start-up the Service clamps the probed logical core count into
// the configured bounds and walks the pools in declared order, handing each
// its share of whatever budget remains; the last pool conventionally targets
// 100% and absorbs the remainder.  Created pools are registered as
// process-wide singletons: a pool that already exists keeps its original
// size, so end-users wanting full control can simply pre-create a pool.
//
//	srv := poolkit.New()
//	if err := srv.Init(ctx); err != nil {
//		log.Fatal(err)
//	}
//	compute := srv.Pool(allocator.PoolCompute)
//	_ = compute.Submit(ctx, func(ctx context.Context) {
//		// ... heavy work ...
//	})
//
// For more details see the individual sub-packages.
package poolkit
