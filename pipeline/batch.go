package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/vision-works/go-regions/extract"
	"github.com/vision-works/go-regions/images"
)

// Request pairs one frame with the forward-pass outputs produced for it.
type Request struct {
	// The forward-pass output tensors for the frame.
	Outputs [][][]float32
	// The original source frame.
	Frame *images.Frame
}

// RunBatch processes independent requests concurrently, each as its own full
// pipeline invocation owning its own Set and Segments. Nothing is shared
// between invocations, so no locking is involved; parallelism is bounded by
// workers (GOMAXPROCS when workers <= 0).
//
// Results line up with requests by index. The first error cancels the
// remaining requests via the group context and is returned; cancellation is
// only observed between requests since a single invocation has no blocking
// points.
func (p *Pipeline) RunBatch(ctx context.Context, requests []Request, workers int) ([]*extract.Segments, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*extract.Segments, len(requests))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			segments, err := p.Run(req.Outputs, req.Frame)
			if err != nil {
				return err
			}
			results[i] = segments
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
