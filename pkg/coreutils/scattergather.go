/*
 * Copyright (c) 2025-present unTill Software Development Group B.V.
 * @author Denis Gribanov
 */

package coreutils

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// ScatterGather concurrently maps every element of the source slice with the
// mapper function and feeds the produced values to the gatherer.
//
//   - source        – slice with the values to process
//   - workers       – size of the worker pool (≤ 0 defaults to 1)
//   - mapper(IN)    – transformation that may return an error. On the first
//     error the remaining work is cancelled and the error is
//     propagated to the caller
//   - gatherer(OUT) – accumulation step that receives the mapped values. Runs
//     in a single goroutine, so it does not need its own
//     synchronization
//
// The function returns when every value has been gathered, when any mapper
// returns an error or when ctx is cancelled. In that case the first error is
// returned.
func ScatterGather[IN any, OUT any](
	ctx context.Context,
	source []IN,
	workers int,
	mapper func(IN) (OUT, error),
	gatherer func(OUT),
) error {
	if workers <= 0 {
		workers = 1
	}

	g, workCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	results := make(chan OUT)
	gathered := make(chan struct{})
	go func() {
		defer close(gathered)
		for out := range results {
			gatherer(out)
		}
	}()

	for _, in := range source {
		in := in
		if workCtx.Err() != nil {
			break
		}
		g.Go(func() error {
			out, err := mapper(in)
			if err != nil {
				return err
			}
			select {
			case results <- out:
			case <-workCtx.Done():
			}
			return nil
		})
	}

	err := g.Wait()
	close(results)
	<-gathered

	if err == nil {
		err = ctx.Err()
	}
	return err
}
