// Package loop provides the single-threaded task loop the runtime runs on.
//
// A Loop has two queues. Tasks come from Post and are how other goroutines
// hand work back; microtasks come from Queue and run after the current task
// finishes, before the next task. Promise models a pending asynchronous
// result, for example a handler that fetches data before returning the next
// vnode: Then callbacks always run as microtasks on the loop.
//
//	lp := loop.New()
//	p := lp.Go(ctx, fetch)
//	p.Then(func(v any, err error) error { ... })
//	err := lp.Run(ctx)
package loop
