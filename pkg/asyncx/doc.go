// Package asyncx provides the small set of concurrency primitives the
// generation service relies on.
//
// # Timeout
//
// [WithTimeout] runs a blocking call under a deadline and returns
// context.DeadlineExceeded when the call does not finish in time. The
// engine uses it to bound the single remote backend attempt.
//
//	text, err := asyncx.WithTimeout(ctx, 30*time.Second, func(ctx context.Context) (string, error) {
//	    return backend.Complete(ctx, completion)
//	})
//
// # Worker Pool
//
// [Pool] limits concurrency to a fixed number of workers and returns results
// in input order. Batch generation uses it so a large batch does not open an
// unbounded number of backend calls.
//
//	results, err := asyncx.Pool(ctx, 4, requests, func(ctx context.Context, r Request) (Result, error) {
//	    return engine.Generate(ctx, r)
//	})
package asyncx
