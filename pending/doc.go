// Package pending runs calls in the background and hands back a
// [Result] that can be waited on later.
//
// A single call is started with [Go]:
//
//	r := pending.Go(ctx, func(ctx context.Context) (any, error) {
//		return getUserPost(ctx, "4", "5")
//	})
//	// ... do other work ...
//	v, err := r.Get()
//
// Several calls can share a [Queue], which bounds how many run at once
// and collects every failure for [Queue.Wait]:
//
//	q := pending.NewQueue(4)
//	a := q.Start(ctx, fetchA)
//	b := q.Start(ctx, fetchB)
//	err := q.Wait() // blocks until both finish
//
// Results complete in whatever order the calls finish, not the order
// they were started.
package pending
